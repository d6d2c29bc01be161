package get_occupied_intervals

import (
	"net/http"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/{scheduleId}/bookings/by-date?date=YYYY-MM-DD
// Публичный календарь: только занятые интервалы, без данных клиентов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := handlers.PathInt64(r, "scheduleId")
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/bookings/by-date - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/bookings/by-date - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	intervals, err := h.service.OccupiedByDate(r.Context(), scheduleID, date)
	if err != nil {
		h.logger.Error("GET /schedules/{id}/bookings/by-date - Failed to get intervals: schedule_id=%d, error=%v",
			scheduleID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, intervals)
}
