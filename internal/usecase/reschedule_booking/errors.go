package reschedule_booking

import (
	"errors"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrCannotReschedule возвращается для отменённых, завершённых и начатых бронирований
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrScheduleClosed возвращается, когда в этот день мойка не работает
	ErrScheduleClosed = errors.New("reschedule_booking: schedule is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("reschedule_booking: interval is outside working hours")

	// ErrSlotConflict новое время занято
	ErrSlotConflict = domain.ErrSlotConflict

	// ErrStoreUnavailable хранилище недоступно, попытку можно повторить
	ErrStoreUnavailable = domain.ErrStoreUnavailable

	// ErrScheduleMisconfigured сохранённые настройки расписания нарушают инварианты
	ErrScheduleMisconfigured = domain.ErrConfiguration

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
