package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	"github.com/Mkaniukov/carwash-crm/internal/api/middleware"
	"github.com/Mkaniukov/carwash-crm/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidLink      = "ссылка для отмены недействительна"
	msgNotFound         = "бронирование не найдено"
	msgCannotCancel     = "бронирование не может быть отменено"
	msgStatusChanged    = "бронирование уже изменено, обновите страницу"
	msgUnauthorized     = "требуется аутентификация"
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

// Handle POST /api/v1/bookings/{bookingId}/cancel
// Отмена сотрудником
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staff, ok := middleware.StaffFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.CancelByStaff(r.Context(), bookingID, staff.ID)
	if err != nil {
		h.respondError(w, "POST /bookings/{id}/cancel", err, msgNotFound)
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: booking_id=%d, staff_id=%d", bookingID, staff.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByToken POST /api/v1/bookings/cancel/{token}
// Отмена клиентом по ссылке из письма
func (h *Handler) HandleByToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		handlers.RespondBadRequest(w, msgInvalidLink)
		return
	}

	result, err := h.service.CancelByToken(r.Context(), token)
	if err != nil {
		h.respondError(w, "POST /bookings/cancel/{token}", err, msgInvalidLink)
		return
	}

	h.logger.Info("POST /bookings/cancel/{token} - Booking cancelled by client: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found", route)
		handlers.RespondNotFound(w, notFoundMsg)

	case errors.Is(err, bookings.ErrCannotCancel):
		h.logger.Warn("%s - Cannot cancel: %v", route, err)
		handlers.RespondBadRequest(w, msgCannotCancel)

	case errors.Is(err, bookings.ErrStatusChanged):
		h.logger.Warn("%s - Booking changed concurrently: %v", route, err)
		handlers.RespondConflictMessage(w, msgStatusChanged)

	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, notFoundMsg)

	default:
		h.logger.Error("%s - Failed to cancel booking: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
