package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

const (
	sheetName = "Bookings"

	// MaxRangeDays максимальная длина периода выгрузки
	MaxRangeDays = 366
)

var columns = []string{
	"ID", "Дата", "Начало", "Конец", "Клиент", "Телефон", "Email",
	"Услуга", "Цена", "Статус", "Источник",
}

// Service выгрузка бронирований в xlsx для владельца
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса выгрузки
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// FileName имя файла выгрузки за период
func FileName(from, to time.Time) string {
	return fmt.Sprintf("bookings_%s_%s.xlsx", domain.ISODate(from), domain.ISODate(to))
}

// Bookings пишет в w книгу с бронированиями расписания за период [from, to).
// Отменённые бронирования попадают в выгрузку, но не в итоговую выручку
func (s *Service) Bookings(ctx context.Context, scheduleID int64, from, to time.Time, w io.Writer) error {
	s.logger.Info("Bookings: exporting schedule=%d from=%s to=%s", scheduleID, domain.ISODate(from), domain.ISODate(to))

	// 1. Проверяем период
	if !from.Before(to) {
		return ErrInvalidTimeRange
	}
	if to.Sub(from) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: at most %d days", ErrRangeTooLong, MaxRangeDays)
	}

	// 2. Получаем бронирования
	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		ScheduleID:      scheduleID,
		From:            &from,
		To:              &to,
		IncludeCanceled: true,
	})
	if err != nil {
		s.logger.Error("Bookings: failed to list bookings for schedule=%d: %v", scheduleID, err)
		return fmt.Errorf("%w: Bookings - repository error: %v", ErrInternal, err)
	}

	// 3. Собираем книгу
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Bookings: failed to close workbook: %v", err)
		}
	}()

	if err := writeSheet(f, bookings); err != nil {
		s.logger.Error("Bookings: failed to build workbook: %v", err)
		return fmt.Errorf("%w: Bookings - build workbook: %v", ErrInternal, err)
	}

	// 4. Отдаём файл
	if err := f.Write(w); err != nil {
		s.logger.Error("Bookings: failed to write workbook: %v", err)
		return fmt.Errorf("%w: Bookings - write workbook: %v", ErrInternal, err)
	}

	s.logger.Info("Bookings: exported %d bookings for schedule=%d", len(bookings), scheduleID)
	return nil
}

func writeSheet(f *excelize.File, bookings []*domain.Booking) error {
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	if err := writeRow(f, 1, toCells(columns)); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	revenue := 0
	row := 2
	for _, b := range bookings {
		var email string
		if b.Email != nil {
			email = *b.Email
		}

		cells := []interface{}{
			b.ID,
			domain.ISODate(b.StartTime),
			b.StartTime.Format(domain.TimeFormat),
			b.EndTime.Format(domain.TimeFormat),
			b.ClientName,
			b.Phone,
			email,
			b.ServiceName,
			b.ServicePrice,
			string(b.Status),
			string(b.Source),
		}
		if err := writeRow(f, row, cells); err != nil {
			return err
		}

		if b.OccupiesTime() {
			revenue += b.ServicePrice
		}
		row++
	}

	// Итоговая строка
	if err := writeRow(f, row, []interface{}{"Итого", len(bookings), "", "", "", "", "", "", revenue}); err != nil {
		return err
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "D", 12)
	_ = f.SetColWidth(sheetName, "E", "H", 22)
	_ = f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	return nil
}

func writeRow(f *excelize.File, row int, cells []interface{}) error {
	for i, value := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
