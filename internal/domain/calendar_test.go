package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mkaniukov/carwash-crm/pkg/types"
)

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date string
		want Weekday
	}{
		{"2025-10-13", Monday},
		{"2025-10-15", Wednesday},
		{"2025-10-18", Saturday},
		{"2025-10-19", Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := ParseISODate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, WeekdayOf(date))
		})
	}
}

func TestCombine(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	got, err := Combine(date, types.MustTimeString("09:30"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC), got)

	// время на дате игнорируется
	withClock := time.Date(2025, 10, 15, 17, 45, 0, 0, time.UTC)
	got, err = Combine(withClock, types.MustTimeString("08:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC), got)

	_, err = Combine(date, types.TimeString("25:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestAddMinutes(t *testing.T) {
	start := time.Date(2025, 10, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 10, 16, 0, 15, 0, 0, time.UTC), AddMinutes(start, 45))
	assert.Equal(t, time.Date(2025, 10, 15, 23, 0, 0, 0, time.UTC), AddMinutes(start, -30))
}

func TestISODate(t *testing.T) {
	date := time.Date(2025, 3, 7, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-07", ISODate(date))

	parsed, err := ParseISODate("2025-03-07")
	require.NoError(t, err)
	assert.Equal(t, DateOnly(date), parsed)

	_, err = ParseISODate("07.03.2025")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestParseLocalDateTime(t *testing.T) {
	got, err := ParseLocalDateTime("2025-10-15T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC), got)

	got, err = ParseLocalDateTime("2025-10-15T10:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC), got)

	_, err = ParseLocalDateTime("2025-10-15 10:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 10, 15, h, m, 0, 0, time.UTC) }

	assert.True(t, Overlaps(at(9, 59), at(10, 1), at(10, 0), at(11, 0)))
	assert.False(t, Overlaps(at(9, 0), at(10, 0), at(10, 0), at(11, 0)), "touching at the end")
	assert.False(t, Overlaps(at(11, 0), at(12, 0), at(10, 0), at(11, 0)), "touching at the start")
	assert.True(t, Overlaps(at(10, 15), at(10, 45), at(10, 0), at(11, 0)), "contained")
	assert.True(t, Overlaps(at(9, 0), at(12, 0), at(10, 0), at(11, 0)), "containing")
}
