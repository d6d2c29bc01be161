package bookings

import (
	"errors"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotCancel возвращается, когда бронирование уже завершено или отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrStatusChanged возвращается, когда статус бронирования изменили параллельно
	ErrStatusChanged = domain.ErrStatusChanged

	// ErrInvalidStatus возвращается при недопустимом статусе или переходе
	ErrInvalidStatus = domain.ErrInvalidStatus

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается, когда начало периода не раньше конца
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
