package models

import (
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// Request модели

// ListByRangeRequest запрос на получение бронирований расписания за период
type ListByRangeRequest struct {
	ScheduleID      int64
	From            time.Time // включительно
	To              time.Time // не включительно
	Status          *string
	IncludeCanceled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListByRangeRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	from, to := r.From, r.To
	filter := domain.BookingsFilter{
		ScheduleID:      r.ScheduleID,
		From:            &from,
		To:              &to,
		IncludeCanceled: r.IncludeCanceled,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса бронирования сотрудником
type UpdateStatusRequest struct {
	BookingID int64
	StaffID   int64
	Status    string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64   `json:"id"`
	ScheduleID   int64   `json:"schedule_id"`
	ServiceID    int64   `json:"service_id"`
	ClientName   string  `json:"client_name"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email,omitempty"`
	ServiceName  string  `json:"service_name"`
	ServicePrice int     `json:"service_price"`
	StartTime    string  `json:"start_time"` // "2025-10-15T10:00:00"
	EndTime      string  `json:"end_time"`
	Status       string  `json:"status"`
	Source       string  `json:"source"`
	CreatedBy    *int64  `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// OccupiedInterval занятый интервал без персональных данных клиента
type OccupiedInterval struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID,
		ScheduleID:   b.ScheduleID,
		ServiceID:    b.ServiceID,
		ClientName:   b.ClientName,
		Phone:        b.Phone,
		Email:        b.Email,
		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		StartTime:    b.StartTime.Format(domain.DateTimeFormat),
		EndTime:      b.EndTime.Format(domain.DateTimeFormat),
		Status:       string(b.Status),
		Source:       string(b.Source),
		CreatedBy:    b.CreatedBy,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if dto := FromDomainBooking(b); dto != nil {
			resp.Bookings = append(resp.Bookings, *dto)
		}
	}

	return resp
}

// FromDomainOccupied оставляет от бронирований только занятые интервалы
func FromDomainOccupied(bookings []*domain.Booking) []OccupiedInterval {
	intervals := make([]OccupiedInterval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, OccupiedInterval{
			StartTime: b.StartTime.Format(domain.DateTimeFormat),
			EndTime:   b.EndTime.Format(domain.DateTimeFormat),
			Status:    string(b.Status),
		})
	}
	return intervals
}
