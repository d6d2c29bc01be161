package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/internal/integrations/notifier"
)

// UseCase use case для создания бронирования
type UseCase struct {
	guard        SlotGuard
	settingsRepo SettingsRepository
	serviceRepo  ServiceRepository
	notifier     Notifier
	timeProvider TimeProvider
	tokens       TokenGenerator
	logger       Logger
}

type uuidTokens struct{}

func (uuidTokens) NewToken() string {
	return uuid.NewString()
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	guard SlotGuard,
	settingsRepo SettingsRepository,
	serviceRepo ServiceRepository,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		guard:        guard,
		settingsRepo: settingsRepo,
		serviceRepo:  serviceRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		tokens:       uuidTokens{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и запись выполняются guard'ом атомарно для расписания.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: schedule=%d, service=%d, start=%s, source=%s",
		req.ScheduleID, req.ServiceID, req.StartTime.Format(domain.DateTimeFormat), req.Source)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем настройки расписания
	settings, err := uc.settingsRepo.Get(ctx, req.ScheduleID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.logger.Error("CreateBooking: failed to get settings for schedule=%d: %v", req.ScheduleID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultScheduleSettings(req.ScheduleID)
	}

	schedule, err := settings.WorkingSchedule()
	if err != nil {
		uc.logger.Error("CreateBooking: schedule=%d is misconfigured: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: schedule=%d: %v", ErrScheduleMisconfigured, req.ScheduleID, err)
	}

	// 5. Проверяем рабочий день и часы работы
	start := req.StartTime
	end := domain.AddMinutes(start, service.DurationMinutes)
	if err := validateSchedule(schedule, start, end); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	// 6. Ограничения по времени записи действуют только для клиентов
	if !req.IsStaff() {
		if err := validatePolicy(start, now, settings); err != nil {
			uc.logger.Warn("CreateBooking: policy validation failed: %v", err)
			return nil, err
		}
	}

	// 7. Захватываем слот и сохраняем бронирование
	draft := &domain.Booking{
		ServiceID:    service.ID,
		ClientName:   strings.TrimSpace(req.ClientName),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        req.Email,
		ServiceName:  service.Name,
		ServicePrice: service.Price,
		Status:       domain.StatusConfirmed,
		Source:       req.Source,
		CancelToken:  uc.tokens.NewToken(),
		CreatedBy:    req.CreatedBy,
	}

	created, err := uc.guard.TryClaimSlot(ctx, req.ScheduleID, start, service.DurationMinutes, draft)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict):
			uc.logger.Warn("CreateBooking: slot %s is taken: %v", start.Format(domain.DateTimeFormat), err)
			return nil, err
		case errors.Is(err, ErrStoreUnavailable):
			uc.logger.Error("CreateBooking: store unavailable: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: failed to claim slot: %v", err)
			return nil, fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	// 8. Уведомление клиента не влияет на результат
	if err := uc.notifier.NotifyWithGracefulDegradation(ctx, notifier.EventBookingCreated, created); err != nil {
		uc.logger.Warn("CreateBooking: notification skipped for booking id=%d: %v", created.ID, err)
	}

	return &Response{
		ID:           created.ID,
		ScheduleID:   created.ScheduleID,
		ServiceID:    created.ServiceID,
		ClientName:   created.ClientName,
		Phone:        created.Phone,
		Email:        created.Email,
		StartTime:    created.StartTime,
		EndTime:      created.EndTime,
		Status:       string(created.Status),
		Source:       string(created.Source),
		CancelToken:  created.CancelToken,
		ServiceName:  created.ServiceName,
		ServicePrice: created.ServicePrice,
		CreatedAt:    created.CreatedAt,
	}, nil
}
