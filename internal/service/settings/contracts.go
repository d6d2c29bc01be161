package settings

import (
	"context"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context, scheduleID int64) (*domain.ScheduleSettings, error)
	Upsert(ctx context.Context, settings *domain.ScheduleSettings) (*domain.ScheduleSettings, error)
	AddDayOff(ctx context.Context, scheduleID int64, day string) error
	RemoveDayOff(ctx context.Context, scheduleID int64, day string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
