package claim

import (
	"context"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// Store хранилище бронирований, над которым работает guard
type Store interface {
	// ListOccupying возвращает неотменённые бронирования расписания, пересекающиеся с [from, to)
	ListOccupying(ctx context.Context, scheduleID int64, from, to time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	UpdateTimes(ctx context.Context, id int64, start, end time.Time) error
}

// Unlock освобождает блокировку. Повторный вызов ничего не делает.
type Unlock func()

// Locker взаимное исключение по ключу
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics получатель исходов попыток занять слот
type Metrics interface {
	ObserveSlotClaim(outcome string, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
