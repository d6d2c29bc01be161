package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mkaniukov/carwash-crm/internal/availability"
	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	serviceRepo  ServiceRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		serviceRepo:  serviceRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: schedule=%d, date=%s", req.ScheduleID, domain.ISODate(req.Date))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	// 3. Получаем настройки расписания
	settings, err := uc.settingsRepo.Get(ctx, req.ScheduleID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings for schedule=%d: %v", req.ScheduleID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		uc.logger.Info("GetAvailableSlots: using default settings for schedule=%d", req.ScheduleID)
		settings = domain.DefaultScheduleSettings(req.ScheduleID)
	}

	schedule, err := settings.WorkingSchedule()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: schedule=%d is misconfigured: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: schedule=%d: %v", ErrScheduleMisconfigured, req.ScheduleID, err)
	}

	// 4. Определяем длительность услуги
	duration := domain.DefaultServiceDurationMinutes
	switch {
	case req.ServiceID != nil:
		service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		duration = service.DurationMinutes
	case req.DurationMinutes != nil:
		duration = *req.DurationMinutes
	}

	// 5. Валидация даты с учетом настроек
	if err := validateDate(date, now, settings); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	response := &Response{
		ScheduleID:      req.ScheduleID,
		Date:            date,
		DurationMinutes: duration,
		Slots:           []Slot{},
	}

	// 6. Выходной или нерабочий день
	if !schedule.IsWorkingDay(date) {
		uc.logger.Info("GetAvailableSlots: schedule=%d is closed on %s", req.ScheduleID, domain.ISODate(date))
		return response, nil
	}

	// 7. Получаем бронирования на этот день
	bookings, err := uc.bookingRepo.ListOccupying(ctx, req.ScheduleID, schedule.OpensAt(date), schedule.ClosesAt(date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Вычисляем свободные слоты
	slots, err := availability.Compute(schedule, domain.SlotRequest{
		Date:                   date,
		ServiceDurationMinutes: duration,
		IntervalMinutes:        settings.SlotIntervalMinutes,
	}, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	// 9. Сегодня нельзя записаться на прошедшее время и раньше minBookingNoticeMinutes
	if domain.SameDay(date, now) {
		slots = applyNotice(slots, settings.EarliestBookableStart(now))
	}

	response.Slots = toResponseSlots(slots)

	uc.logger.Info("GetAvailableSlots: %d slots for schedule=%d, date=%s, duration=%d",
		len(response.Slots), req.ScheduleID, domain.ISODate(date), duration)

	return response, nil
}
