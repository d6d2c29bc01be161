package availability

import (
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// FilterAvailable drops every candidate whose interval [s, s+duration) overlaps an
// occupying booking. Canceled bookings are ignored. Touching intervals do not
// conflict. The input slice is not modified and the order is preserved.
func FilterAvailable(rawSlots []time.Time, durationMinutes int, bookings []*domain.Booking) []time.Time {
	occupying := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil && b.OccupiesTime() {
			occupying = append(occupying, b)
		}
	}

	result := make([]time.Time, 0, len(rawSlots))
	for _, start := range rawSlots {
		end := domain.AddMinutes(start, durationMinutes)
		if !overlapsAny(start, end, occupying) {
			result = append(result, start)
		}
	}

	return result
}

// FitWithinDay drops candidates that would end after closesAt
func FitWithinDay(rawSlots []time.Time, durationMinutes int, closesAt time.Time) []time.Time {
	result := make([]time.Time, 0, len(rawSlots))
	for _, start := range rawSlots {
		if !domain.AddMinutes(start, durationMinutes).After(closesAt) {
			result = append(result, start)
		}
	}
	return result
}

// NotBefore drops candidates starting before cutoff
func NotBefore(rawSlots []time.Time, cutoff time.Time) []time.Time {
	result := make([]time.Time, 0, len(rawSlots))
	for _, start := range rawSlots {
		if !start.Before(cutoff) {
			result = append(result, start)
		}
	}
	return result
}

// Conflicts returns the occupying bookings that overlap [start, end)
func Conflicts(start, end time.Time, bookings []*domain.Booking) []*domain.Booking {
	var result []*domain.Booking
	for _, b := range bookings {
		if b != nil && b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	return result
}

func overlapsAny(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if domain.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
