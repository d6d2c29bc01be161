package manage_days_off

import (
	"context"

	"github.com/Mkaniukov/carwash-crm/internal/service/settings/models"
)

type SettingsService interface {
	AddDayOff(ctx context.Context, scheduleID int64, day string) (*models.SettingsResponse, error)
	RemoveDayOff(ctx context.Context, scheduleID int64, day string) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
