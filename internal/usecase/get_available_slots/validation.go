package get_available_slots

import (
	"fmt"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && req.DurationMinutes != nil {
		return fmt.Errorf("%w: serviceId and durationMinutes are mutually exclusive", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		d := *req.DurationMinutes
		if d <= 0 || d > domain.MaxServiceDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between 1 and %d", ErrInvalidInput, domain.MaxServiceDurationMinutes)
		}
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше окна бронирования
func validateDate(date, now time.Time, settings *domain.ScheduleSettings) error {
	if domain.DateOnly(date).Before(domain.DateOnly(now)) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, domain.ISODate(date))
	}

	if latest, limited := settings.LatestBookableDate(now); limited && domain.DateOnly(date).After(latest) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	return nil
}
