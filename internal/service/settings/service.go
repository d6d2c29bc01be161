package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/internal/service/settings/models"
	"github.com/Mkaniukov/carwash-crm/pkg/types"
)

// Service сервис для работы с настройками расписания
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get возвращает настройки расписания
// Если настройки ещё не сохранялись, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, scheduleID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for schedule=%d", scheduleID)

	settings, err := s.load(ctx, "Get", scheduleID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSettings(settings), nil
}

// Update частично обновляет настройки расписания
// Итоговая конфигурация проверяется целиком перед сохранением
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for schedule=%d by user=%d", req.ScheduleID, req.UserID)

	// 1. Получаем текущие настройки
	settings, err := s.load(ctx, "Update", req.ScheduleID)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения
	if err := applyUpdate(settings, req); err != nil {
		s.logger.Warn("Update: invalid request for schedule=%d: %v", req.ScheduleID, err)
		return nil, err
	}

	// 3. Валидируем итоговую конфигурацию
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed for schedule=%d: %v", req.ScheduleID, err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: failed to save settings for schedule=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings for schedule=%d saved", req.ScheduleID)
	return models.FromDomainSettings(saved), nil
}

// AddDayOff добавляет выходной день (YYYY-MM-DD)
func (s *Service) AddDayOff(ctx context.Context, scheduleID int64, day string) (*models.SettingsResponse, error) {
	s.logger.Info("AddDayOff: schedule=%d, day=%s", scheduleID, day)

	day, err := normalizeDay(day)
	if err != nil {
		s.logger.Warn("AddDayOff: %v", err)
		return nil, err
	}

	if err := s.settingsRepo.AddDayOff(ctx, scheduleID, day); err != nil {
		s.logger.Error("AddDayOff: failed to add day off for schedule=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: AddDayOff - repository error: %v", ErrInternal, err)
	}

	return s.Get(ctx, scheduleID)
}

// RemoveDayOff удаляет выходной день. Удаление отсутствующего дня не является ошибкой
func (s *Service) RemoveDayOff(ctx context.Context, scheduleID int64, day string) (*models.SettingsResponse, error) {
	s.logger.Info("RemoveDayOff: schedule=%d, day=%s", scheduleID, day)

	day, err := normalizeDay(day)
	if err != nil {
		s.logger.Warn("RemoveDayOff: %v", err)
		return nil, err
	}

	if err := s.settingsRepo.RemoveDayOff(ctx, scheduleID, day); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("RemoveDayOff: failed to remove day off for schedule=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: RemoveDayOff - repository error: %v", ErrInternal, err)
	}

	return s.Get(ctx, scheduleID)
}

func (s *Service) load(ctx context.Context, op string, scheduleID int64) (*domain.ScheduleSettings, error) {
	if scheduleID <= 0 {
		return nil, fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	settings, err := s.settingsRepo.Get(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("%s: no settings for schedule=%d, using defaults", op, scheduleID)
			return domain.DefaultScheduleSettings(scheduleID), nil
		}
		s.logger.Error("%s: failed to get settings for schedule=%d: %v", op, scheduleID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return settings, nil
}

func applyUpdate(settings *domain.ScheduleSettings, req *models.UpdateSettingsRequest) error {
	if req.WorkStart != nil {
		start, err := types.NewTimeStringFromString(*req.WorkStart)
		if err != nil {
			return fmt.Errorf("%w: work_start: %v", ErrInvalidSchedule, err)
		}
		settings.WorkStart = start
	}
	if req.WorkEnd != nil {
		end, err := types.NewTimeStringFromString(*req.WorkEnd)
		if err != nil {
			return fmt.Errorf("%w: work_end: %v", ErrInvalidSchedule, err)
		}
		settings.WorkEnd = end
	}
	if req.WorkingDays != nil {
		weekdays, err := req.WorkingDays.ToDomain()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		settings.WorkingDays = weekdays
	}
	if req.SlotIntervalMinutes != nil {
		settings.SlotIntervalMinutes = *req.SlotIntervalMinutes
	}
	if req.MinBookingNoticeMinutes != nil {
		settings.MinBookingNoticeMinutes = *req.MinBookingNoticeMinutes
	}
	if req.AdvanceBookingDays != nil {
		settings.AdvanceBookingDays = *req.AdvanceBookingDays
	}
	return nil
}

// validateSettings валидирует параметры расписания
func validateSettings(settings *domain.ScheduleSettings) error {
	if _, err := settings.WorkingSchedule(); err != nil {
		return err
	}

	if settings.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || settings.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slot_interval_minutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if settings.MinBookingNoticeMinutes < 0 || settings.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min_booking_notice_minutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}

	if settings.AdvanceBookingDays < 0 || settings.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance_booking_days must be between 0 and %d (0 = unlimited)",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	return nil
}

func normalizeDay(day string) (string, error) {
	date, err := domain.ParseISODate(day)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return domain.ISODate(date), nil
}
