package bookings

import (
	"context"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCancelToken(ctx context.Context, token string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	// UpdateStatus меняет статус, только если текущий статус равен from
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// Notifier интерфейс клиента уведомлений
type Notifier interface {
	NotifyWithGracefulDegradation(ctx context.Context, eventType string, booking *domain.Booking) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
