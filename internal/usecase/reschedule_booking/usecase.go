package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mkaniukov/carwash-crm/internal/claim"
	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/internal/integrations/notifier"
)

// UseCase use case для переноса бронирования сотрудником
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	guard        SlotGuard
	notifier     Notifier
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	guard SlotGuard,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		guard:        guard,
		notifier:     notifier,
		logger:       logger,
	}
}

// Execute переносит бронирование на новое время той же длительности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, new start=%s, staff=%d",
		req.BookingID, req.NewStartTime.Format(domain.DateTimeFormat), req.StaffID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.NewStartTime.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Переносить можно только ещё не начатые активные бронирования
	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d has status %s", booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotReschedule, booking.Status)
	}

	// 4. Получаем настройки расписания
	settings, err := uc.settingsRepo.Get(ctx, booking.ScheduleID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.logger.Error("RescheduleBooking: failed to get settings for schedule=%d: %v", booking.ScheduleID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultScheduleSettings(booking.ScheduleID)
	}

	schedule, err := settings.WorkingSchedule()
	if err != nil {
		uc.logger.Error("RescheduleBooking: schedule=%d is misconfigured: %v", booking.ScheduleID, err)
		return nil, fmt.Errorf("%w: schedule=%d: %v", ErrScheduleMisconfigured, booking.ScheduleID, err)
	}

	// 5. Проверяем новый интервал по расписанию
	duration := booking.DurationMinutes()
	newEnd := domain.AddMinutes(req.NewStartTime, duration)
	if !schedule.IsWorkingDay(req.NewStartTime) {
		return nil, fmt.Errorf("%w: %s", ErrScheduleClosed, domain.ISODate(req.NewStartTime))
	}
	if !schedule.Contains(req.NewStartTime, newEnd) {
		return nil, fmt.Errorf("%w: %s-%s", ErrOutsideWorkingHours,
			req.NewStartTime.Format(domain.TimeFormat), newEnd.Format(domain.TimeFormat))
	}

	// 6. Переносим под защитой guard
	start, end, err := uc.guard.TryMoveBooking(ctx, booking.ScheduleID, booking.ID, req.NewStartTime, duration)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict), errors.Is(err, ErrStoreUnavailable):
			uc.logger.Warn("RescheduleBooking: booking id=%d not moved: %v", booking.ID, err)
			return nil, err
		case errors.Is(err, claim.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		default:
			uc.logger.Error("RescheduleBooking: failed to move booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to move booking: %v", ErrInternal, err)
		}
	}

	booking.StartTime = start
	booking.EndTime = end

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s", booking.ID, start.Format(domain.DateTimeFormat))

	// 7. Уведомление клиента не влияет на результат
	if err := uc.notifier.NotifyWithGracefulDegradation(ctx, notifier.EventBookingRescheduled, booking); err != nil {
		uc.logger.Warn("RescheduleBooking: notification skipped for booking id=%d: %v", booking.ID, err)
	}

	return &Response{
		ID:         booking.ID,
		ScheduleID: booking.ScheduleID,
		StartTime:  start,
		EndTime:    end,
		Status:     string(booking.Status),
	}, nil
}
