package update_schedule_settings

import (
	"errors"
	"net/http"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	"github.com/Mkaniukov/carwash-crm/internal/api/middleware"
	"github.com/Mkaniukov/carwash-crm/internal/service/settings"
	"github.com/Mkaniukov/carwash-crm/internal/service/settings/models"
)

const (
	msgInvalidScheduleID  = "некорректный ID расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректные рабочие часы или дни"
	msgInvalidInput       = "некорректные параметры расписания"
	msgUnauthorized       = "требуется аутентификация"
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

// Handle PUT /api/v1/schedules/{scheduleId}/settings
// Только владелец
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staff, ok := middleware.StaffFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	scheduleID, err := handlers.PathInt64(r, "scheduleId")
	if err != nil {
		h.logger.Warn("PUT /schedules/{id}/settings - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedules/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ScheduleID = scheduleID
	req.UserID = staff.ID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidSchedule):
			h.logger.Warn("PUT /schedules/{id}/settings - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /schedules/{id}/settings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /schedules/{id}/settings - Failed to update settings: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedules/{id}/settings - Settings updated: schedule_id=%d, user_id=%d", scheduleID, staff.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
