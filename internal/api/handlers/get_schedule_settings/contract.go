package get_schedule_settings

import (
	"context"

	"github.com/Mkaniukov/carwash-crm/internal/service/settings/models"
)

type SettingsService interface {
	Get(ctx context.Context, scheduleID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
