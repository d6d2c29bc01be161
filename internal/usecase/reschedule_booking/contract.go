package reschedule_booking

import (
	"context"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// SlotGuard перенос бронирования без пересечений
type SlotGuard interface {
	TryMoveBooking(ctx context.Context, scheduleID, bookingID int64, newStart time.Time, durationMinutes int) (time.Time, time.Time, error)
}

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context, scheduleID int64) (*domain.ScheduleSettings, error)
}

// Notifier отправка уведомлений клиенту
type Notifier interface {
	NotifyWithGracefulDegradation(ctx context.Context, eventType string, booking *domain.Booking) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
