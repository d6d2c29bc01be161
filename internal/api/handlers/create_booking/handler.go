package create_booking

import (
	"errors"
	"net/http"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	"github.com/Mkaniukov/carwash-crm/internal/api/middleware"
	createBooking "github.com/Mkaniukov/carwash-crm/internal/usecase/create_booking"
)

const (
	msgInvalidScheduleID   = "некорректный ID расписания"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartTime    = "некорректное время начала, ожидается YYYY-MM-DDTHH:MM:SS"
	msgServiceNotFound     = "услуга не найдена"
	msgScheduleClosed      = "в этот день мойка не работает"
	msgOutsideWorkingHours = "выбранное время выходит за рабочие часы"
	msgDateTooFar          = "запись на эту дату ещё не открыта"
	msgTooLateToBook       = "на это время уже нельзя записаться"
	msgInvalidInput        = "некорректные данные бронирования"
	msgUnauthorized        = "требуется аутентификация"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedules/{scheduleId}/bookings
// Публичная запись клиента с сайта
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := handlers.PathInt64(r, "scheduleId")
	if err != nil {
		h.logger.Warn("POST /schedules/{id}/bookings - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(scheduleID)
	if err != nil {
		h.logger.Warn("POST /schedules/{id}/bookings - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	h.execute(w, r, "POST /schedules/{id}/bookings", useCaseReq)
}

// HandleStaff POST /api/v1/schedules/{scheduleId}/staff-bookings
// Запись сотрудником: без ограничений по времени уведомления и горизонту записи
func (h *Handler) HandleStaff(w http.ResponseWriter, r *http.Request) {
	staff, ok := middleware.StaffFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	scheduleID, err := handlers.PathInt64(r, "scheduleId")
	if err != nil {
		h.logger.Warn("POST /schedules/{id}/staff-bookings - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req StaffBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules/{id}/staff-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(scheduleID, staff.ID)
	if err != nil {
		h.logger.Warn("POST /schedules/{id}/staff-bookings - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	h.execute(w, r, "POST /schedules/{id}/staff-bookings", useCaseReq)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, req *createBooking.Request) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("%s - Slot conflict: schedule_id=%d, start=%s", route, req.ScheduleID, req.StartTime)
			handlers.RespondConflict(w)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Warn("%s - Store unavailable: schedule_id=%d, error=%v", route, req.ScheduleID, err)
			handlers.RespondServiceUnavailable(w)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("%s - Service not found: service_id=%d", route, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrScheduleClosed):
			handlers.RespondBadRequest(w, msgScheduleClosed)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrScheduleMisconfigured):
			h.logger.Error("%s - Schedule misconfigured: schedule_id=%d, error=%v", route, req.ScheduleID, err)
			handlers.RespondInternalError(w)

		default:
			h.logger.Error("%s - Failed to create booking: schedule_id=%d, error=%v", route, req.ScheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking created: booking_id=%d, schedule_id=%d, source=%s",
		route, result.ID, result.ScheduleID, result.Source)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
