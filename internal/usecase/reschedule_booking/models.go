package reschedule_booking

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID    int64     // ID бронирования
	NewStartTime time.Time // Новое начало, локальное время без зоны
	StaffID      int64     // ID сотрудника, выполняющего перенос
}

// Response модель ответа с новым интервалом
type Response struct {
	ID         int64
	ScheduleID int64
	StartTime  time.Time
	EndTime    time.Time
	Status     string
}
