package create_booking

import (
	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	"github.com/Mkaniukov/carwash-crm/internal/domain"
	createBooking "github.com/Mkaniukov/carwash-crm/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model для клиентов сайта
type CreateBookingRequest struct {
	ClientName string  `json:"client_name" validate:"required,max=200"`
	Phone      string  `json:"phone" validate:"required,max=50"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	ServiceID  int64   `json:"service_id" validate:"required,gt=0"`
	StartTime  string  `json:"start_time" validate:"required"` // "2025-10-15T10:00:00"
}

// StaffBookingRequest HTTP request model для записи сотрудником (по телефону или на месте)
type StaffBookingRequest struct {
	CreateBookingRequest
	Source string `json:"source,omitempty" validate:"omitempty,oneof=worker phone"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	ScheduleID   int64   `json:"schedule_id"`
	ServiceID    int64   `json:"service_id"`
	ServiceName  string  `json:"service_name"`
	ServicePrice int     `json:"service_price"`
	ClientName   string  `json:"client_name"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email,omitempty"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Status       string  `json:"status"`
	Source       string  `json:"source"`
	CancelToken  string  `json:"cancel_token"`
	CreatedAt    string  `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(scheduleID int64) (*createBooking.Request, error) {
	start, err := handlers.ParseDateTime(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ScheduleID: scheduleID,
		ServiceID:  r.ServiceID,
		ClientName: r.ClientName,
		Phone:      r.Phone,
		Email:      r.Email,
		StartTime:  start,
		Source:     domain.SourceWebsite,
	}, nil
}

// ToUseCaseRequest конвертирует запрос сотрудника; по умолчанию источник worker
func (r *StaffBookingRequest) ToUseCaseRequest(scheduleID, staffID int64) (*createBooking.Request, error) {
	req, err := r.CreateBookingRequest.ToUseCaseRequest(scheduleID)
	if err != nil {
		return nil, err
	}

	req.Source = domain.SourceWorker
	if r.Source != "" {
		req.Source = domain.BookingSource(r.Source)
	}
	req.CreatedBy = &staffID

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		ScheduleID:   resp.ScheduleID,
		ServiceID:    resp.ServiceID,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		ClientName:   resp.ClientName,
		Phone:        resp.Phone,
		Email:        resp.Email,
		StartTime:    resp.StartTime.Format(domain.DateTimeFormat),
		EndTime:      resp.EndTime.Format(domain.DateTimeFormat),
		Status:       resp.Status,
		Source:       resp.Source,
		CancelToken:  resp.CancelToken,
		CreatedAt:    resp.CreatedAt.Format(domain.DateTimeFormat),
	}
}
