package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mkaniukov/carwash-crm/internal/claim"
	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/internal/infra/storage/memory"
	"github.com/Mkaniukov/carwash-crm/internal/service/bookings/models"
	"github.com/Mkaniukov/carwash-crm/pkg/logger"
	"github.com/Mkaniukov/carwash-crm/pkg/ptr"
	"github.com/Mkaniukov/carwash-crm/pkg/txmanager"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (n *recordingNotifier) NotifyWithGracefulDegradation(_ context.Context, eventType string, _ *domain.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
	return n.err
}

type brokenRepo struct {
	BookingRepository
}

func (brokenRepo) GetByID(context.Context, int64) (*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func (brokenRepo) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

// interleavingRepo выполняет afterGet один раз сразу после чтения бронирования,
// как параллельный запрос между чтением и записью статуса
type interleavingRepo struct {
	*memory.BookingStore
	afterGet func()
}

func (r *interleavingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := r.BookingStore.GetByID(ctx, id)
	if hook := r.afterGet; hook != nil {
		r.afterGet = nil
		hook()
	}
	return b, err
}

var day = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func seed(t *testing.T, store *memory.BookingStore, start time.Time, status domain.BookingStatus, token string) *domain.Booking {
	t.Helper()
	b, err := store.Create(context.Background(), &domain.Booking{
		ScheduleID:  1,
		ServiceID:   1,
		ClientName:  "Anna",
		Phone:       "+49 170 0000000",
		ServiceName: "Basic",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Status:      status,
		Source:      domain.SourceWebsite,
		CancelToken: token,
	})
	require.NoError(t, err)
	return b
}

func TestService_GetByID(t *testing.T) {
	store := memory.NewBookingStore()
	svc := NewService(store, &recordingNotifier{}, logger.NewNop())
	b := seed(t, store, at(10, 0), domain.StatusConfirmed, "t1")

	resp, err := svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15T10:00:00", resp.StartTime)
	assert.Equal(t, "2025-10-15T11:00:00", resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewService(brokenRepo{}, &recordingNotifier{}, logger.NewNop()).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_ListByRange(t *testing.T) {
	store := memory.NewBookingStore()
	svc := NewService(store, &recordingNotifier{}, logger.NewNop())
	seed(t, store, at(12, 0), domain.StatusConfirmed, "a")
	seed(t, store, at(9, 0), domain.StatusRequested, "b")
	seed(t, store, at(14, 0), domain.StatusCanceledByClient, "c")
	seed(t, store, at(24+9, 0), domain.StatusConfirmed, "d")

	tests := []struct {
		name    string
		req     models.ListByRangeRequest
		want    []string
		wantErr error
	}{
		{
			name: "ActiveOnly",
			req:  models.ListByRangeRequest{ScheduleID: 1, From: day, To: day.AddDate(0, 0, 1)},
			want: []string{"2025-10-15T09:00:00", "2025-10-15T12:00:00"},
		},
		{
			name: "IncludeCanceled",
			req:  models.ListByRangeRequest{ScheduleID: 1, From: day, To: day.AddDate(0, 0, 1), IncludeCanceled: true},
			want: []string{"2025-10-15T09:00:00", "2025-10-15T12:00:00", "2025-10-15T14:00:00"},
		},
		{
			name: "ByStatus",
			req:  models.ListByRangeRequest{ScheduleID: 1, From: day, To: day.AddDate(0, 0, 2), Status: ptr.Ptr("confirmed")},
			want: []string{"2025-10-15T12:00:00", "2025-10-16T09:00:00"},
		},
		{
			name:    "EmptyRange",
			req:     models.ListByRangeRequest{ScheduleID: 1, From: day, To: day},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "UnknownStatus",
			req:     models.ListByRangeRequest{ScheduleID: 1, From: day, To: day.AddDate(0, 0, 1), Status: ptr.Ptr("booked")},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.ListByRange(context.Background(), &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got := make([]string, 0, len(resp.Bookings))
			for _, b := range resp.Bookings {
				got = append(got, b.StartTime)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_OccupiedByDate(t *testing.T) {
	store := memory.NewBookingStore()
	svc := NewService(store, &recordingNotifier{}, logger.NewNop())
	seed(t, store, at(10, 0), domain.StatusConfirmed, "a")
	seed(t, store, at(13, 0), domain.StatusCanceledByStaff, "b")

	intervals, err := svc.OccupiedByDate(context.Background(), 1, at(15, 30))
	require.NoError(t, err)
	assert.Equal(t, []models.OccupiedInterval{
		{StartTime: "2025-10-15T10:00:00", EndTime: "2025-10-15T11:00:00", Status: "confirmed"},
	}, intervals)

	intervals, err = svc.OccupiedByDate(context.Background(), 2, day)
	require.NoError(t, err)
	assert.Empty(t, intervals)

	_, err = NewService(brokenRepo{}, &recordingNotifier{}, logger.NewNop()).OccupiedByDate(context.Background(), 1, day)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_CancelByToken(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBookingStore()
	n := &recordingNotifier{}
	svc := NewService(store, n, logger.NewNop())
	b := seed(t, store, at(10, 0), domain.StatusConfirmed, "secret")

	resp, err := svc.CancelByToken(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceledByClient), resp.Status)
	assert.Equal(t, []string{"booking_canceled"}, n.events)

	stored, err := store.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, stored.OccupiesTime())

	_, err = svc.CancelByToken(ctx, "secret")
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = svc.CancelByToken(ctx, "unknown")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.CancelByToken(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CancelByStaff(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBookingStore()
	n := &recordingNotifier{err: errors.New("notifier down")}
	svc := NewService(store, n, logger.NewNop())
	active := seed(t, store, at(10, 0), domain.StatusCheckedIn, "a")
	done := seed(t, store, at(12, 0), domain.StatusCompleted, "b")

	resp, err := svc.CancelByStaff(ctx, active.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceledByStaff), resp.Status)

	_, err = svc.CancelByStaff(ctx, done.ID, 7)
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = svc.CancelByStaff(ctx, 404, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBookingStore()
	n := &recordingNotifier{}
	svc := NewService(store, n, logger.NewNop())
	b := seed(t, store, at(10, 0), domain.StatusRequested, "a")

	steps := []struct {
		status  string
		wantErr error
	}{
		{status: "confirmed"},
		{status: "requested", wantErr: ErrInvalidStatus},
		{status: "checked_in"},
		{status: "canceled_by_client", wantErr: ErrInvalidStatus},
		{status: "completed"},
		{status: "canceled_by_staff", wantErr: ErrInvalidStatus},
		{status: "booked", wantErr: ErrInvalidStatus},
	}

	for _, step := range steps {
		t.Run(step.status, func(t *testing.T) {
			resp, err := svc.UpdateStatus(ctx, &models.UpdateStatusRequest{BookingID: b.ID, StaffID: 1, Status: step.status})
			if step.wantErr != nil {
				assert.ErrorIs(t, err, step.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, step.status, resp.Status)
		})
	}

	other := seed(t, store, at(14, 0), domain.StatusConfirmed, "b")
	resp, err := svc.UpdateStatus(ctx, &models.UpdateStatusRequest{BookingID: other.ID, Status: "canceled_by_staff"})
	require.NoError(t, err)
	assert.Equal(t, "canceled_by_staff", resp.Status)
	assert.Equal(t, []string{"booking_canceled"}, n.events)
}

func TestService_UpdateStatusAfterConcurrentCancel(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBookingStore()
	repo := &interleavingRepo{BookingStore: store}
	svc := NewService(repo, &recordingNotifier{}, logger.NewNop())
	guard := claim.NewGuard(store, claim.NewLocalLocker(), txmanager.Nop{}, time.Second, logger.NewNop())

	a := seed(t, store, at(10, 0), domain.StatusConfirmed, "tok-a")

	var reclaimed *domain.Booking
	repo.afterGet = func() {
		_, err := svc.CancelByToken(ctx, "tok-a")
		require.NoError(t, err)

		reclaimed, err = guard.TryClaimSlot(ctx, 1, at(10, 0), 60, &domain.Booking{
			ClientName: "Boris",
			Status:     domain.StatusConfirmed,
			Source:     domain.SourceWebsite,
		})
		require.NoError(t, err)
	}

	_, err := svc.UpdateStatus(ctx, &models.UpdateStatusRequest{BookingID: a.ID, StaffID: 7, Status: "checked_in"})
	assert.ErrorIs(t, err, ErrStatusChanged)

	occupying, err := store.ListOccupying(ctx, 1, at(10, 0), at(11, 0))
	require.NoError(t, err)
	require.Len(t, occupying, 1)
	assert.Equal(t, reclaimed.ID, occupying[0].ID)

	got, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceledByClient, got.Status)
}

func TestService_CancelAfterConcurrentCompletion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBookingStore()
	repo := &interleavingRepo{BookingStore: store}
	n := &recordingNotifier{}
	svc := NewService(repo, n, logger.NewNop())

	b := seed(t, store, at(10, 0), domain.StatusCheckedIn, "tok-b")
	repo.afterGet = func() {
		require.NoError(t, store.UpdateStatus(ctx, b.ID, domain.StatusCheckedIn, domain.StatusCompleted))
	}

	_, err := svc.CancelByStaff(ctx, b.ID, 7)
	assert.ErrorIs(t, err, ErrStatusChanged)

	got, err := store.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Empty(t, n.events)
}
