package list_bookings

import (
	"context"

	"github.com/Mkaniukov/carwash-crm/internal/service/bookings/models"
)

type BookingService interface {
	ListByRange(ctx context.Context, req *models.ListByRangeRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
