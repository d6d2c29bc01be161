package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingStatus(t *testing.T) {
	for _, s := range append(append([]BookingStatus{}, OccupyingStatuses...), CanceledStatuses...) {
		got, err := ParseBookingStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseBookingStatus("no_show")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, StatusRequested.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCheckedIn))
	assert.True(t, StatusCheckedIn.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCanceledByClient))

	assert.False(t, StatusCompleted.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCanceledByClient.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCheckedIn.CanTransitionTo(StatusCanceledByClient))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusRequested))
}

func TestBooking_Occupancy(t *testing.T) {
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: start, EndTime: start.Add(time.Hour), Status: StatusConfirmed}

	assert.True(t, b.OccupiesTime())
	assert.Equal(t, 60, b.DurationMinutes())
	assert.True(t, b.Overlaps(start.Add(-time.Minute), start.Add(time.Minute)))
	assert.False(t, b.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)))

	b.Status = StatusCanceledByStaff
	assert.False(t, b.OccupiesTime())
	assert.False(t, b.Overlaps(start, start.Add(time.Hour)))
	assert.False(t, b.CanBeCancelled())
}

func TestBookingsFilter_Matches(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	active := &Booking{ScheduleID: 1, StartTime: day.Add(10 * time.Hour), Status: StatusConfirmed}
	canceled := &Booking{ScheduleID: 1, StartTime: day.Add(11 * time.Hour), Status: StatusCanceledByClient}
	tomorrow := &Booking{ScheduleID: 1, StartTime: next.Add(9 * time.Hour), Status: StatusConfirmed}
	other := &Booking{ScheduleID: 2, StartTime: day.Add(10 * time.Hour), Status: StatusConfirmed}

	filter := BookingsFilter{ScheduleID: 1, From: &day, To: &next}
	assert.True(t, filter.Matches(active))
	assert.False(t, filter.Matches(canceled))
	assert.False(t, filter.Matches(tomorrow))
	assert.False(t, filter.Matches(other))

	filter.IncludeCanceled = true
	assert.True(t, filter.Matches(canceled))

	status := StatusCanceledByClient
	filter.Status = &status
	assert.False(t, filter.Matches(active))
	assert.True(t, filter.Matches(canceled))
}
