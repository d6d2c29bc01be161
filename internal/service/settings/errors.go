package settings

import (
	"errors"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidSchedule возвращается, если рабочее время или дни заданы некорректно
	ErrInvalidSchedule = domain.ErrConfiguration

	// ErrInvalidDate возвращается при некорректной дате выходного
	ErrInvalidDate = errors.New("invalid date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
