package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/internal/infra/storage/memory"
	"github.com/Mkaniukov/carwash-crm/internal/service/settings/models"
	"github.com/Mkaniukov/carwash-crm/pkg/logger"
	"github.com/Mkaniukov/carwash-crm/pkg/ptr"
)

type brokenRepo struct {
	SettingsRepository
}

func (brokenRepo) Get(context.Context, int64) (*domain.ScheduleSettings, error) {
	return nil, errors.New("connection refused")
}

func TestService_GetDefaults(t *testing.T) {
	svc := NewService(memory.NewSettingsStore(), logger.NewNop())

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "07:30:00", resp.WorkStart)
	assert.Equal(t, "18:00:00", resp.WorkEnd)
	assert.Equal(t, "0,1,2,3,4", resp.WorkingDays.String())
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.SlotIntervalMinutes)
	assert.Empty(t, resp.DaysOff)

	_, err = svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewService(brokenRepo{}, logger.NewNop()).Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSettingsStore()
	svc := NewService(store, logger.NewNop())

	days := models.WorkingDays{0, 1, 2, 3, 4, 5}
	resp, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		ScheduleID:  1,
		WorkStart:   ptr.Ptr("09:00"),
		WorkEnd:     ptr.Ptr("12:00"),
		WorkingDays: &days,
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", resp.WorkStart)
	assert.Equal(t, "12:00:00", resp.WorkEnd)
	assert.Equal(t, "0,1,2,3,4,5", resp.WorkingDays.String())

	stored, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday,
		domain.Thursday, domain.Friday, domain.Saturday}, stored.WorkingDays)

	// частичное обновление не трогает остальные поля
	resp, err = svc.Update(ctx, &models.UpdateSettingsRequest{ScheduleID: 1, MinBookingNoticeMinutes: ptr.Ptr(60)})
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", resp.WorkStart)
	assert.Equal(t, 60, resp.MinBookingNoticeMinutes)

	empty := models.WorkingDays{}
	tests := []struct {
		name    string
		req     models.UpdateSettingsRequest
		wantErr error
	}{
		{name: "StartAfterEnd", req: models.UpdateSettingsRequest{WorkStart: ptr.Ptr("13:00")}, wantErr: ErrInvalidSchedule},
		{name: "BadClock", req: models.UpdateSettingsRequest{WorkEnd: ptr.Ptr("25:00")}, wantErr: ErrInvalidSchedule},
		{name: "NoWorkingDays", req: models.UpdateSettingsRequest{WorkingDays: &empty}, wantErr: ErrInvalidSchedule},
		{name: "DayOutOfRange", req: models.UpdateSettingsRequest{WorkingDays: &models.WorkingDays{7}}, wantErr: ErrInvalidSchedule},
		{name: "TinyInterval", req: models.UpdateSettingsRequest{SlotIntervalMinutes: ptr.Ptr(1)}, wantErr: ErrInvalidInput},
		{name: "NegativeNotice", req: models.UpdateSettingsRequest{MinBookingNoticeMinutes: ptr.Ptr(-5)}, wantErr: ErrInvalidInput},
		{name: "AdvanceTooLong", req: models.UpdateSettingsRequest{AdvanceBookingDays: ptr.Ptr(1000)}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.ScheduleID = 1
			_, err := svc.Update(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// неудачные обновления не сохраняются
	current, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", current.WorkStart)
	assert.Equal(t, 60, current.MinBookingNoticeMinutes)
}

func TestService_DaysOff(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewSettingsStore(), logger.NewNop())

	resp, err := svc.AddDayOff(ctx, 1, "2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-24"}, resp.DaysOff)

	resp, err = svc.AddDayOff(ctx, 1, "2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-24"}, resp.DaysOff)

	_, err = svc.AddDayOff(ctx, 1, "24.12.2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	resp, err = svc.RemoveDayOff(ctx, 1, "2025-12-24")
	require.NoError(t, err)
	assert.Empty(t, resp.DaysOff)

	_, err = svc.RemoveDayOff(ctx, 2, "2025-12-24")
	assert.NoError(t, err)
}

func TestWorkingDays_JSON(t *testing.T) {
	var req models.UpdateSettingsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"working_days":"0, 2,4"}`), &req))
	assert.Equal(t, models.WorkingDays{0, 2, 4}, *req.WorkingDays)

	require.NoError(t, json.Unmarshal([]byte(`{"working_days":[5,6]}`), &req))
	assert.Equal(t, models.WorkingDays{5, 6}, *req.WorkingDays)

	assert.Error(t, json.Unmarshal([]byte(`{"working_days":"mon"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"working_days":3}`), &req))

	data, err := json.Marshal(models.PublicSettingsResponse{WorkStart: "07:30:00", WorkEnd: "18:00:00", WorkingDays: models.WorkingDays{0, 1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"work_start":"07:30:00","work_end":"18:00:00","working_days":"0,1"}`, string(data))

	weekdays, err := models.WorkingDays{0, 6}.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, []domain.Weekday{domain.Monday, domain.Sunday}, weekdays)
}
