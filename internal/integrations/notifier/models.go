package notifier

// Типы событий бронирования
const (
	EventBookingCreated     = "booking_created"
	EventBookingCanceled    = "booking_canceled"
	EventBookingRescheduled = "booking_rescheduled"
)

// BookingEvent уведомление о бронировании для клиента
type BookingEvent struct {
	Event       string  `json:"event"`
	BookingID   int64   `json:"booking_id"`
	ScheduleID  int64   `json:"schedule_id"`
	ClientName  string  `json:"client_name"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`
	ServiceName string  `json:"service_name"`
	StartTime   string  `json:"start_time"` // YYYY-MM-DDTHH:MM:SS без зоны
	EndTime     string  `json:"end_time"`
	CancelToken string  `json:"cancel_token,omitempty"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
