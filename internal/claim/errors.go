package claim

import (
	"errors"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

var (
	// ErrSlotConflict слот пересекается с существующим бронированием
	ErrSlotConflict = domain.ErrSlotConflict

	// ErrStoreUnavailable хранилище или блокировка недоступны, либо истёк таймаут
	ErrStoreUnavailable = domain.ErrStoreUnavailable

	// ErrBookingNotFound переносимое бронирование не найдено
	ErrBookingNotFound = errors.New("claim: booking not found")

	// ErrInvalidClaim некорректные параметры захвата
	ErrInvalidClaim = errors.New("claim: invalid claim parameters")

	// ErrLockNotAcquired блокировку не удалось взять до истечения контекста
	ErrLockNotAcquired = errors.New("claim: lock not acquired")
)
