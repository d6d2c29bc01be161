package availability

import (
	"fmt"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// GenerateSlots builds the raw grid of candidate start times for a date:
// start of day, then every intervalMinutes while the candidate is before end of day.
// Non-working days and days off yield an empty list. Service duration is not
// considered here.
func GenerateSlots(schedule *domain.WorkingSchedule, date time.Time, intervalMinutes int) ([]time.Time, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %d", domain.ErrInvalidSlotRequest, intervalMinutes)
	}

	if !schedule.IsWorkingDay(date) {
		return []time.Time{}, nil
	}

	opensAt := schedule.OpensAt(date)
	closesAt := schedule.ClosesAt(date)

	capacity := int(closesAt.Sub(opensAt)/time.Minute)/intervalMinutes + 1
	slots := make([]time.Time, 0, capacity)

	for current := opensAt; current.Before(closesAt); current = domain.AddMinutes(current, intervalMinutes) {
		slots = append(slots, current)
	}

	return slots, nil
}
