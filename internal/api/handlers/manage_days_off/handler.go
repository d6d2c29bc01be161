package manage_days_off

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	"github.com/Mkaniukov/carwash-crm/internal/service/settings"
	"github.com/Mkaniukov/carwash-crm/internal/service/settings/models"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleAdd POST /api/v1/schedules/{scheduleId}/days-off/{date}
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /schedules/{id}/days-off/{date}", h.service.AddDayOff)
}

// HandleRemove DELETE /api/v1/schedules/{scheduleId}/days-off/{date}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "DELETE /schedules/{id}/days-off/{date}", h.service.RemoveDayOff)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	apply func(ctx context.Context, scheduleID int64, day string) (*models.SettingsResponse, error),
) {
	scheduleID, err := handlers.PathInt64(r, "scheduleId")
	if err != nil {
		h.logger.Warn("%s - Invalid schedule ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	day := mux.Vars(r)["date"]
	result, err := apply(r.Context(), scheduleID, day)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidDate), errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid date: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("%s - Failed: schedule_id=%d, day=%s, error=%v", route, scheduleID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Days off updated: schedule_id=%d, day=%s", route, scheduleID, day)
	handlers.RespondJSON(w, http.StatusOK, result)
}
