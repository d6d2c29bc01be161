package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/internal/infra/storage/memory"
	"github.com/Mkaniukov/carwash-crm/pkg/logger"
	"github.com/Mkaniukov/carwash-crm/pkg/ptr"
	"github.com/Mkaniukov/carwash-crm/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type failingBookings struct{}

func (failingBookings) ListOccupying(context.Context, int64, time.Time, time.Time) ([]*domain.Booking, error) {
	return nil, errors.New("connection reset")
}

// wednesday 2025-10-15
var wednesday = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func at(date time.Time, h, m int) time.Time {
	return date.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func labels(slots []Slot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.StartTime.Format(domain.TimeFormat)
	}
	return result
}

type fixture struct {
	uc       *UseCase
	bookings *memory.BookingStore
	settings *memory.SettingsStore
	services *memory.ServiceStore
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		bookings: memory.NewBookingStore(),
		settings: memory.NewSettingsStore(),
		services: memory.NewServiceStore(),
	}

	settings := domain.DefaultScheduleSettings(1)
	settings.WorkStart = types.MustTimeString("09:00")
	settings.WorkEnd = types.MustTimeString("12:00")
	_, err := f.settings.Upsert(context.Background(), settings)
	require.NoError(t, err)

	_, err = f.bookings.Create(context.Background(), &domain.Booking{
		ScheduleID: 1,
		StartTime:  at(wednesday, 10, 0),
		EndTime:    at(wednesday, 11, 0),
		Status:     domain.StatusConfirmed,
	})
	require.NoError(t, err)

	f.uc = NewUseCase(f.bookings, f.settings, f.services, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func TestUseCase_Execute(t *testing.T) {
	dayBefore := at(wednesday.AddDate(0, 0, -1), 8, 0)

	t.Run("ThirtyMinutes", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday})
		require.NoError(t, err)

		assert.Equal(t, 30, resp.DurationMinutes)
		assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, labels(resp.Slots))
	})

	t.Run("SixtyMinutes", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday, DurationMinutes: ptr.Ptr(60)})
		require.NoError(t, err)

		assert.Equal(t, []string{"09:00", "11:00"}, labels(resp.Slots))
		assert.Equal(t, at(wednesday, 10, 0), resp.Slots[0].EndTime)
	})

	t.Run("ServiceDuration", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		service, err := f.services.Create(context.Background(), &domain.Service{Name: "Komplettpflege", DurationMinutes: 60})
		require.NoError(t, err)

		resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday, ServiceID: &service.ID})
		require.NoError(t, err)
		assert.Equal(t, 60, resp.DurationMinutes)
		assert.Equal(t, []string{"09:00", "11:00"}, labels(resp.Slots))
	})

	t.Run("UnknownService", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		_, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday, ServiceID: ptr.Ptr(int64(99))})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("DayOff", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		require.NoError(t, f.settings.AddDayOff(context.Background(), 1, "2025-10-15"))

		resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("Weekend", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday.AddDate(0, 0, 3)})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("TodayHidesPastSlots", func(t *testing.T) {
		f := newFixture(t, at(wednesday, 9, 10))
		resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday})
		require.NoError(t, err)
		assert.Equal(t, []string{"09:30", "11:00", "11:30"}, labels(resp.Slots))
	})

	t.Run("PastDate", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		_, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday.AddDate(0, 0, -2)})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("TooFarInFuture", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		settings, err := f.settings.Get(context.Background(), 1)
		require.NoError(t, err)
		settings.AdvanceBookingDays = 7
		_, err = f.settings.Upsert(context.Background(), settings)
		require.NoError(t, err)

		_, err = f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday.AddDate(0, 0, 14)})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("DefaultSettings", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 2, Date: wednesday})
		require.NoError(t, err)

		// 07:30-18:00 с шагом 30 минут
		require.Len(t, resp.Slots, 21)
		assert.Equal(t, "07:30", labels(resp.Slots)[0])
		assert.Equal(t, "17:30", labels(resp.Slots)[20])
	})

	t.Run("InvalidInput", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		_, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday, DurationMinutes: ptr.Ptr(0)})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday, ServiceID: ptr.Ptr(int64(1)), DurationMinutes: ptr.Ptr(30)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		f := newFixture(t, dayBefore)
		f.uc.bookingRepo = failingBookings{}
		_, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 1, Date: wednesday})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
