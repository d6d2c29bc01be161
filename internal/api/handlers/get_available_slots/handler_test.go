package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/Mkaniukov/carwash-crm/internal/usecase/get_available_slots"
	"github.com/Mkaniukov/carwash-crm/pkg/logger"
)

type stubUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	start := req.Date.Add(9 * time.Hour)
	return &getAvailableSlots.Response{
		ScheduleID:      req.ScheduleID,
		Date:            req.Date,
		DurationMinutes: 30,
		Slots:           []getAvailableSlots.Slot{{StartTime: start, EndTime: start.Add(30 * time.Minute)}},
	}, nil
}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/schedules/{scheduleId}/available-slots", NewHandler(uc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(uc, "/schedules/1/available-slots?date=2025-10-15&durationMinutes=60")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-10-15", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2025-10-15T09:00:00", resp.Slots[0].StartTime)
	assert.Equal(t, "09:00", resp.Slots[0].Label)

	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 60, *uc.got.DurationMinutes)
	assert.Nil(t, uc.got.ServiceID)

	// дата с временем из календаря принимается, время отбрасывается
	rec = serve(uc, "/schedules/1/available-slots?date=2025-10-15T00:00:00.000Z&serviceId=4")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got.ServiceID)
	assert.Equal(t, int64(4), *uc.got.ServiceID)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), uc.got.Date)
}

func TestHandler_HandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "MissingDate", target: "/schedules/1/available-slots", want: http.StatusBadRequest},
		{name: "BadDate", target: "/schedules/1/available-slots?date=15.10.2025", want: http.StatusBadRequest},
		{name: "BadSchedule", target: "/schedules/0/available-slots?date=2025-10-15", want: http.StatusBadRequest},
		{name: "BadDuration", target: "/schedules/1/available-slots?date=2025-10-15&durationMinutes=x", want: http.StatusBadRequest},
		{name: "ServiceNotFound", target: "/schedules/1/available-slots?date=2025-10-15&serviceId=9", err: getAvailableSlots.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "Past", target: "/schedules/1/available-slots?date=2020-01-01", err: getAvailableSlots.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "Misconfigured", target: "/schedules/1/available-slots?date=2025-10-15", err: getAvailableSlots.ErrScheduleMisconfigured, want: http.StatusInternalServerError},
		{name: "Internal", target: "/schedules/1/available-slots?date=2025-10-15", err: getAvailableSlots.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&stubUseCase{err: tt.err}, tt.target).Code)
		})
	}
}
