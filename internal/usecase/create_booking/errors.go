package create_booking

import (
	"errors"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrScheduleClosed возвращается, когда в этот день мойка не работает
	ErrScheduleClosed = errors.New("create_booking: schedule is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("create_booking: interval is outside working hours")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается для прошедшего времени или при нарушении minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotConflict слот уже занят
	ErrSlotConflict = domain.ErrSlotConflict

	// ErrStoreUnavailable хранилище недоступно, попытку можно повторить
	ErrStoreUnavailable = domain.ErrStoreUnavailable

	// ErrScheduleMisconfigured сохранённые настройки расписания нарушают инварианты
	ErrScheduleMisconfigured = domain.ErrConfiguration

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
