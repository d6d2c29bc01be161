package domain

import (
	"fmt"
	"time"
)

// Slot candidate appointment interval [StartTime, EndTime)
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

// NewSlot builds a slot of the given length
func NewSlot(start time.Time, durationMinutes int) Slot {
	return Slot{StartTime: start, EndTime: AddMinutes(start, durationMinutes)}
}

// Label formats the start as HH:MM
func (s Slot) Label() string {
	return s.StartTime.Format(TimeFormat)
}

// DurationMinutes returns the slot length
func (s Slot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}

// SlotRequest parameters of an availability query
type SlotRequest struct {
	Date                   time.Time
	ServiceDurationMinutes int
	IntervalMinutes        int
}

// Validate checks that both durations are positive
func (r SlotRequest) Validate() error {
	if r.ServiceDurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive, got %d", ErrInvalidSlotRequest, r.ServiceDurationMinutes)
	}
	if r.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %d", ErrInvalidSlotRequest, r.IntervalMinutes)
	}
	return nil
}
