package get_available_slots

import (
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/availability"
	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// applyNotice убирает слоты, начинающиеся раньше cutoff.
// Слоты отсортированы по возрастанию, поэтому отбрасывается префикс.
func applyNotice(slots []domain.Slot, cutoff time.Time) []domain.Slot {
	starts := make([]time.Time, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}

	kept := availability.NotBefore(starts, cutoff)
	return slots[len(slots)-len(kept):]
}

func toResponseSlots(slots []domain.Slot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return result
}
