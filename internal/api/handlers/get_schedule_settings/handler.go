package get_schedule_settings

import (
	"net/http"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
)

const msgInvalidScheduleID = "некорректный ID расписания"

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

// Handle GET /api/v1/schedules/{scheduleId}/settings
// Публичный: календарю нужны рабочие часы и дни
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := handlers.PathInt64(r, "scheduleId")
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/settings - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	settings, err := h.service.Get(r.Context(), scheduleID)
	if err != nil {
		h.logger.Error("GET /schedules/{id}/settings - Failed to get settings: schedule_id=%d, error=%v", scheduleID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, settings)
}
