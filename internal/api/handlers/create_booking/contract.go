package create_booking

import (
	"context"

	createBooking "github.com/Mkaniukov/carwash-crm/internal/usecase/create_booking"
)

// CreateBookingUseCase захват слота и создание бронирования (публично и персоналом)
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
