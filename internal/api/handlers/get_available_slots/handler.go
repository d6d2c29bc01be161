package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	getAvailableSlots "github.com/Mkaniukov/carwash-crm/internal/usecase/get_available_slots"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidDuration   = "некорректная длительность"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound   = "услуга не найдена"
	msgDateInPast        = "дата уже прошла"
	msgDateTooFar        = "дата слишком далеко в будущем"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/{scheduleId}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceId или durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := handlers.PathInt64(r, "scheduleId")
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/available-slots - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceID, err := handlers.QueryOptionalInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(scheduleID, date, serviceID, r.URL.Query().Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /schedules/{id}/available-slots - Service not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /schedules/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrScheduleMisconfigured):
			h.logger.Error("GET /schedules/{id}/available-slots - Schedule misconfigured: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)

		default:
			h.logger.Error("GET /schedules/{id}/available-slots - Failed to get slots: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules/{id}/available-slots - Slots retrieved: schedule_id=%d, date=%s, slots_count=%d",
		scheduleID, r.URL.Query().Get("date"), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
