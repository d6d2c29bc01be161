package export_bookings

import (
	"context"
	"io"
	"time"
)

type ExportService interface {
	Bookings(ctx context.Context, scheduleID int64, from, to time.Time, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
