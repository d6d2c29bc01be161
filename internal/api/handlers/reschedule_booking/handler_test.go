package reschedule_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mkaniukov/carwash-crm/internal/api/middleware"
	"github.com/Mkaniukov/carwash-crm/internal/domain"
	rescheduleBooking "github.com/Mkaniukov/carwash-crm/internal/usecase/reschedule_booking"
	"github.com/Mkaniukov/carwash-crm/pkg/logger"
)

type stubUseCase struct {
	got *rescheduleBooking.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &rescheduleBooking.Response{
		ID:         req.BookingID,
		ScheduleID: 1,
		StartTime:  req.NewStartTime,
		EndTime:    req.NewStartTime.Add(time.Hour),
		Status:     string(domain.StatusConfirmed),
	}, nil
}

func newRouter(uc RescheduleBookingUseCase) *mux.Router {
	h := NewHandler(uc, logger.NewNop())
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}/reschedule", h.Handle).Methods(http.MethodPatch)
	return r
}

func staffRequest(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "4")
	req.Header.Set(middleware.HeaderUserRole, "worker")
	return req
}

const validBody = `{"start_time":"2025-10-15T11:00:00"}`

func TestHandler_Handle(t *testing.T) {
	uc := &stubUseCase{}
	rec := httptest.NewRecorder()

	newRouter(uc).ServeHTTP(rec, staffRequest("/bookings/5/reschedule", validBody))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RescheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2025-10-15T11:00:00", resp.StartTime)
	assert.Equal(t, "2025-10-15T12:00:00", resp.EndTime)

	assert.Equal(t, int64(5), uc.got.BookingID)
	assert.Equal(t, int64(4), uc.got.StaffID)
	assert.Equal(t, time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC), uc.got.NewStartTime)
}

func TestHandler_HandleErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		err  error
		want int
	}{
		{name: "Conflict", err: fmt.Errorf("move: %w", rescheduleBooking.ErrSlotConflict), want: http.StatusConflict},
		{name: "Unavailable", err: fmt.Errorf("move: %w", rescheduleBooking.ErrStoreUnavailable), want: http.StatusServiceUnavailable},
		{name: "NotFound", err: rescheduleBooking.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "CannotReschedule", err: rescheduleBooking.ErrCannotReschedule, want: http.StatusBadRequest},
		{name: "Closed", err: rescheduleBooking.ErrScheduleClosed, want: http.StatusBadRequest},
		{name: "OutsideHours", err: rescheduleBooking.ErrOutsideWorkingHours, want: http.StatusBadRequest},
		{name: "Misconfigured", err: rescheduleBooking.ErrScheduleMisconfigured, want: http.StatusInternalServerError},
		{name: "Internal", err: rescheduleBooking.ErrInternal, want: http.StatusInternalServerError},
		{name: "BadBookingID", path: "/bookings/abc/reschedule", want: http.StatusBadRequest},
		{name: "MissingStartTime", body: `{}`, want: http.StatusBadRequest},
		{name: "BadStartTime", body: `{"start_time":"15.10.2025 11:00"}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = "/bookings/5/reschedule"
			}
			body := tt.body
			if body == "" {
				body = validBody
			}

			rec := httptest.NewRecorder()
			newRouter(&stubUseCase{err: tt.err}).ServeHTTP(rec, staffRequest(path, body))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_RequiresStaff(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/5/reschedule", strings.NewReader(validBody))

	newRouter(&stubUseCase{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
