package create_booking

import (
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ScheduleID int64                // ID расписания
	ServiceID  int64                // ID услуги
	ClientName string               // Имя клиента
	Phone      string               // Телефон
	Email      *string              // Email для уведомлений (опционально)
	StartTime  time.Time            // Начало, локальное время без зоны
	Source     domain.BookingSource // website для клиентов, worker/phone для персонала
	CreatedBy  *int64               // ID сотрудника, создавшего запись
}

// IsStaff запись создаёт сотрудник
func (r *Request) IsStaff() bool {
	return r.Source != domain.SourceWebsite
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	ScheduleID  int64
	ServiceID   int64
	ClientName  string
	Phone       string
	Email       *string
	StartTime   time.Time
	EndTime     time.Time
	Status      string
	Source      string
	CancelToken string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice int

	CreatedAt time.Time
}
