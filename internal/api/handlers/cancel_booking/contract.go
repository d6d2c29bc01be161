package cancel_booking

import (
	"context"

	"github.com/Mkaniukov/carwash-crm/internal/service/bookings/models"
)

type BookingService interface {
	CancelByStaff(ctx context.Context, bookingID, staffID int64) (*models.BookingResponse, error)
	CancelByToken(ctx context.Context, token string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
