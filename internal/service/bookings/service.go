package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/internal/integrations/notifier"
	"github.com/Mkaniukov/carwash-crm/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListByRange получает бронирования расписания за период [From, To)
// Отменённые бронирования включаются только по запросу
func (s *Service) ListByRange(ctx context.Context, req *models.ListByRangeRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByRange: schedule=%d, from=%s, to=%s, includeCanceled=%v",
		req.ScheduleID, req.From.Format(domain.DateTimeFormat), req.To.Format(domain.DateTimeFormat), req.IncludeCanceled)

	// 1. Валидируем период
	if req.ScheduleID <= 0 {
		return nil, fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}
	if !req.From.Before(req.To) {
		s.logger.Warn("ListByRange: invalid range %s - %s", req.From, req.To)
		return nil, ErrInvalidTimeRange
	}

	// 2. Собираем фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByRange: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	// 3. Получаем бронирования
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByRange: failed to list bookings for schedule=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: ListByRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByRange: found %d bookings for schedule=%d", len(bookings), req.ScheduleID)
	return models.FromDomainBookingList(bookings), nil
}

// OccupiedByDate возвращает занятые интервалы дня для публичного календаря
func (s *Service) OccupiedByDate(ctx context.Context, scheduleID int64, date time.Time) ([]models.OccupiedInterval, error) {
	s.logger.Info("OccupiedByDate: schedule=%d, date=%s", scheduleID, domain.ISODate(date))

	from := domain.DateOnly(date)
	to := from.AddDate(0, 0, 1)

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		ScheduleID: scheduleID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		s.logger.Error("OccupiedByDate: failed to list bookings for schedule=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: OccupiedByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOccupied(bookings), nil
}

// CancelByToken отменяет бронирование по ссылке из письма клиента
func (s *Service) CancelByToken(ctx context.Context, token string) (*models.BookingResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: cancel token is required", ErrInvalidInput)
	}

	s.logger.Info("CancelByToken: cancelling booking by client link")

	booking, err := s.bookingRepo.GetByCancelToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("CancelByToken: unknown cancel token")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CancelByToken: failed to get booking: %v", err)
		return nil, fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, err)
	}

	return s.cancel(ctx, "CancelByToken", booking, domain.StatusCanceledByClient)
}

// CancelByStaff отменяет бронирование от имени сотрудника
func (s *Service) CancelByStaff(ctx context.Context, bookingID, staffID int64) (*models.BookingResponse, error) {
	s.logger.Info("CancelByStaff: cancelling booking id=%d by staff=%d", bookingID, staffID)

	booking, err := s.getBooking(ctx, "CancelByStaff", bookingID)
	if err != nil {
		return nil, err
	}

	return s.cancel(ctx, "CancelByStaff", booking, domain.StatusCanceledByStaff)
}

// UpdateStatus переводит бронирование в новый статус по таблице переходов
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d to status=%s by staff=%d", req.BookingID, req.Status, req.StaffID)

	// 1. Проверяем статус
	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := s.getBooking(ctx, "UpdateStatus", req.BookingID)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем переход
	if !booking.Status.CanTransitionTo(status) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, status, booking.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, booking.Status, status)
	}

	// 4. Отмена идёт через общий путь с уведомлением
	if status.IsCanceled() {
		return s.cancel(ctx, "UpdateStatus", booking, status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, status); err != nil {
		return nil, s.mapUpdateError("UpdateStatus", booking.ID, err)
	}

	booking.Status = status
	s.logger.Info("UpdateStatus: booking id=%d is now %s", booking.ID, status)

	return models.FromDomainBooking(booking), nil
}

func (s *Service) cancel(ctx context.Context, op string, booking *domain.Booking, status domain.BookingStatus) (*models.BookingResponse, error) {
	if !booking.CanBeCancelled() {
		s.logger.Warn("%s: booking id=%d has final status %s", op, booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, booking.Status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, status); err != nil {
		return nil, s.mapUpdateError(op, booking.ID, err)
	}

	booking.Status = status
	s.logger.Info("%s: booking id=%d cancelled with status %s", op, booking.ID, status)

	if err := s.notifier.NotifyWithGracefulDegradation(ctx, notifier.EventBookingCanceled, booking); err != nil {
		s.logger.Warn("%s: notification skipped for booking id=%d: %v", op, booking.ID, err)
	}

	return models.FromDomainBooking(booking), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: failed to get booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return booking, nil
}

func (s *Service) mapUpdateError(op string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("%s: booking id=%d disappeared before update", op, id)
		return ErrBookingNotFound
	}
	if errors.Is(err, domain.ErrStatusChanged) {
		s.logger.Warn("%s: booking id=%d was changed concurrently: %v", op, id, err)
		return fmt.Errorf("%w: booking id=%d", ErrStatusChanged, id)
	}
	s.logger.Error("%s: failed to update booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
