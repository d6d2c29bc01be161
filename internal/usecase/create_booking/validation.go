package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name is longer than %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if _, err := domain.ParseBookingSource(string(req.Source)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSchedule проверяет рабочий день и попадание интервала в рабочие часы
func validateSchedule(schedule *domain.WorkingSchedule, start, end time.Time) error {
	if !schedule.IsWorkingDay(start) {
		return fmt.Errorf("%w: %s", ErrScheduleClosed, domain.ISODate(start))
	}

	if !schedule.Contains(start, end) {
		return fmt.Errorf("%w: %s-%s, open %s-%s", ErrOutsideWorkingHours,
			start.Format(domain.TimeFormat), end.Format(domain.TimeFormat),
			schedule.StartOfDay().HHMM(), schedule.EndOfDay().HHMM())
	}

	return nil
}

// validatePolicy проверяет, что время не прошло, соблюдены minBookingNoticeMinutes
// и окно advanceBookingDays
func validatePolicy(start, now time.Time, settings *domain.ScheduleSettings) error {
	if start.Before(now) {
		return fmt.Errorf("%w: %s is in the past", ErrTooLateToBook, start.Format(domain.DateTimeFormat))
	}

	if start.Before(settings.EarliestBookableStart(now)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, settings.MinBookingNoticeMinutes)
	}

	if latest, limited := settings.LatestBookableDate(now); limited && domain.DateOnly(start).After(latest) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	return nil
}
