package get_available_slots

import "time"

// Request модель запроса доступных слотов.
// Длительность берётся из услуги, либо из DurationMinutes, либо по умолчанию.
type Request struct {
	ScheduleID      int64     // ID расписания
	Date            time.Time // Дата (без времени)
	ServiceID       *int64    // ID услуги (опционально)
	DurationMinutes *int      // Явная длительность (опционально)
}

// Response модель ответа со списком слотов
type Response struct {
	ScheduleID      int64
	Date            time.Time
	DurationMinutes int
	Slots           []Slot
}

// Slot свободный интервал [StartTime, EndTime)
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}
