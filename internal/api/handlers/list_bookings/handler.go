package list_bookings

import (
	"errors"
	"net/http"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	"github.com/Mkaniukov/carwash-crm/internal/service/bookings"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidQuery      = "некорректные параметры: from, to в формате YYYY-MM-DD"
	msgInvalidRange      = "начало периода должно быть не позже конца"
	msgInvalidStatus     = "некорректный статус"
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

// Handle GET /api/v1/schedules/{scheduleId}/bookings
// Query params: from (required), to, status, includeCanceled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := handlers.PathInt64(r, "scheduleId")
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/bookings - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	req, err := ToServiceRequest(r, scheduleID)
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListByRange(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidScheduleID)

		default:
			h.logger.Error("GET /schedules/{id}/bookings - Failed to list bookings: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules/{id}/bookings - Bookings retrieved: schedule_id=%d, count=%d",
		scheduleID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
