package reschedule_booking

import (
	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	"github.com/Mkaniukov/carwash-crm/internal/domain"
	rescheduleBooking "github.com/Mkaniukov/carwash-crm/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartTime string `json:"start_time" validate:"required"` // "2025-10-15T11:00:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID         int64  `json:"id"`
	ScheduleID int64  `json:"schedule_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Status     string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(bookingID, staffID int64) (*rescheduleBooking.Request, error) {
	start, err := handlers.ParseDateTime(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:    bookingID,
		NewStartTime: start,
		StaffID:      staffID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:         resp.ID,
		ScheduleID: resp.ScheduleID,
		StartTime:  resp.StartTime.Format(domain.DateTimeFormat),
		EndTime:    resp.EndTime.Format(domain.DateTimeFormat),
		Status:     resp.Status,
	}
}
