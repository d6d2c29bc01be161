package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/pkg/logger"
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          7,
		ScheduleID:  1,
		ClientName:  "Anna",
		Phone:       "+49 170 0000000",
		ServiceName: "Außenwäsche",
		StartTime:   time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC),
		CancelToken: "abc",
	}
}

func TestClient_NotifyWithGracefulDegradation(t *testing.T) {
	var received BookingEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications/bookings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, true, logger.NewNop())
	err := client.NotifyWithGracefulDegradation(context.Background(), EventBookingCreated, testBooking())
	require.NoError(t, err)

	assert.Equal(t, EventBookingCreated, received.Event)
	assert.Equal(t, int64(7), received.BookingID)
	assert.Equal(t, "2025-10-15T10:00:00", received.StartTime)
	assert.Equal(t, "abc", received.CancelToken)
}

func TestClient_Degraded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, true, logger.NewNop())
	err := client.NotifyWithGracefulDegradation(context.Background(), EventBookingCanceled, testBooking())
	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestClient_Disabled(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, false, logger.NewNop())
	assert.NoError(t, client.NotifyWithGracefulDegradation(context.Background(), EventBookingCreated, testBooking()))
}
