package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// Client клиент сервиса уведомлений (письма клиентам о бронированиях)
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента. Выключенный клиент ничего не отправляет.
func NewClient(baseURL string, timeout time.Duration, enabled bool, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет событие в сервис уведомлений
func (c *Client) Send(ctx context.Context, event *BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to encode event: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications/bookings", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// NotifyWithGracefulDegradation отправляет уведомление о бронировании.
// Недоступность сервиса не должна ломать бронирование, поэтому ошибка
// только логируется и возвращается как ErrServiceDegraded.
func (c *Client) NotifyWithGracefulDegradation(ctx context.Context, eventType string, booking *domain.Booking) error {
	if !c.enabled {
		return nil
	}

	event := &BookingEvent{
		Event:       eventType,
		BookingID:   booking.ID,
		ScheduleID:  booking.ScheduleID,
		ClientName:  booking.ClientName,
		Phone:       booking.Phone,
		Email:       booking.Email,
		ServiceName: booking.ServiceName,
		StartTime:   booking.StartTime.Format(domain.DateTimeFormat),
		EndTime:     booking.EndTime.Format(domain.DateTimeFormat),
		CancelToken: booking.CancelToken,
	}

	if err := c.Send(ctx, event); err != nil {
		c.log.Error("Notifier unavailable, applying graceful degradation for booking_id=%d event=%s: %v",
			booking.ID, eventType, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, booking.ID, err)
	}

	c.log.Info("Notification sent for booking_id=%d event=%s", booking.ID, eventType)
	return nil
}
