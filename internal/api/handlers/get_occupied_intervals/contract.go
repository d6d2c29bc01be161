package get_occupied_intervals

import (
	"context"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/service/bookings/models"
)

type BookingService interface {
	OccupiedByDate(ctx context.Context, scheduleID int64, date time.Time) ([]models.OccupiedInterval, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
