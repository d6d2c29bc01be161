package domain

import (
	"errors"

	"github.com/Mkaniukov/carwash-crm/pkg/types"
)

var (
	// ErrConfiguration is returned when a working schedule violates its invariants
	ErrConfiguration = errors.New("domain: invalid schedule configuration")

	// ErrInvalidTimeFormat is returned for unparseable time-of-day or date strings
	ErrInvalidTimeFormat = types.ErrInvalidTimeFormat

	// ErrInvalidSlotRequest is returned for non-positive durations or intervals
	ErrInvalidSlotRequest = errors.New("domain: invalid slot request")

	// ErrSlotConflict is returned when the requested interval overlaps an existing booking
	ErrSlotConflict = errors.New("domain: slot is already taken")

	// ErrStoreUnavailable is returned when the booking store or lock cannot be reached in time
	ErrStoreUnavailable = errors.New("domain: booking store unavailable")

	// ErrNotFound is wrapped by storage-level not-found errors
	ErrNotFound = errors.New("domain: not found")

	// ErrStatusChanged is returned when a booking no longer has the status a write expected
	ErrStatusChanged = errors.New("domain: booking status changed concurrently")

	// ErrInvalidStatus is returned for unknown booking statuses or forbidden transitions
	ErrInvalidStatus = errors.New("domain: invalid booking status")
)
