package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusRequested        BookingStatus = "requested"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusCheckedIn        BookingStatus = "checked_in"
	StatusCompleted        BookingStatus = "completed"
	StatusCanceledByClient BookingStatus = "canceled_by_client"
	StatusCanceledByStaff  BookingStatus = "canceled_by_staff"
)

// BookingSource tells who created the booking
type BookingSource string

const (
	SourceWebsite BookingSource = "website"
	SourceWorker  BookingSource = "worker"
	SourcePhone   BookingSource = "phone"
)

var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusRequested: {StatusConfirmed, StatusCheckedIn, StatusCanceledByClient, StatusCanceledByStaff},
	StatusConfirmed: {StatusCheckedIn, StatusCompleted, StatusCanceledByClient, StatusCanceledByStaff},
	StatusCheckedIn: {StatusCompleted, StatusCanceledByStaff},
}

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusRequested, StatusConfirmed, StatusCheckedIn, StatusCompleted,
		StatusCanceledByClient, StatusCanceledByStaff:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsCanceled reports whether the status releases the booked interval
func (s BookingStatus) IsCanceled() bool {
	return s == StatusCanceledByClient || s == StatusCanceledByStaff
}

// CanTransitionTo reports whether the status may change to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseBookingSource converts a raw string into a known source
func ParseBookingSource(s string) (BookingSource, error) {
	source := BookingSource(s)
	switch source {
	case SourceWebsite, SourceWorker, SourcePhone:
		return source, nil
	}
	return "", fmt.Errorf("invalid booking source %q", s)
}

// Booking represents a car wash appointment
type Booking struct {
	ID         int64
	ScheduleID int64
	ServiceID  int64

	ClientName string
	Phone      string
	Email      *string

	// Denormalized service data for history
	ServiceName  string
	ServicePrice int

	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus
	Source    BookingSource

	CancelToken string
	CreatedBy   *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesTime returns true if the booking blocks its interval
func (b *Booking) OccupiesTime() bool {
	return !b.Status.IsCanceled()
}

// IsCanceled returns true if the booking has been canceled
func (b *Booking) IsCanceled() bool {
	return b.Status.IsCanceled()
}

// IsFinal returns true if the booking can no longer change
func (b *Booking) IsFinal() bool {
	return b.Status.IsCanceled() || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsFinal()
}

// CanBeRescheduled returns true if the booking can be moved to another time
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusRequested || b.Status == StatusConfirmed
}

// Overlaps reports whether the booking occupies any part of [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.OccupiesTime() && Overlaps(start, end, b.StartTime, b.EndTime)
}

// DurationMinutes returns the booked length in minutes
func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}

// BookingsFilter filter for booking listings
type BookingsFilter struct {
	ScheduleID      int64          // Required
	From            *time.Time     // start_time >= From (optional)
	To              *time.Time     // start_time < To (optional)
	Status          *BookingStatus // optional
	IncludeCanceled bool           // include canceled_by_* bookings
}

// Matches reports whether the booking satisfies the filter
func (f BookingsFilter) Matches(b *Booking) bool {
	if b.ScheduleID != f.ScheduleID {
		return false
	}
	if f.From != nil && b.StartTime.Before(*f.From) {
		return false
	}
	if f.To != nil && !b.StartTime.Before(*f.To) {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	return f.IncludeCanceled || b.OccupiesTime()
}
