package availability

import (
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// Compute returns the bookable slots for a request: the raw grid, trimmed so every
// slot ends by closing time, minus slots overlapping occupying bookings.
// Slots are returned in ascending order.
func Compute(schedule *domain.WorkingSchedule, req domain.SlotRequest, bookings []*domain.Booking) ([]domain.Slot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	starts, err := GenerateSlots(schedule, req.Date, req.IntervalMinutes)
	if err != nil {
		return nil, err
	}

	starts = FitWithinDay(starts, req.ServiceDurationMinutes, schedule.ClosesAt(req.Date))
	starts = FilterAvailable(starts, req.ServiceDurationMinutes, bookings)

	return toSlots(starts, req.ServiceDurationMinutes), nil
}

// Labels formats slot starts as HH:MM
func Labels(slots []domain.Slot) []string {
	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.Label()
	}
	return labels
}

func toSlots(starts []time.Time, durationMinutes int) []domain.Slot {
	slots := make([]domain.Slot, len(starts))
	for i, start := range starts {
		slots[i] = domain.NewSlot(start, durationMinutes)
	}
	return slots
}
