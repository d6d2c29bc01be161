package claim

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/availability"
	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/pkg/metrics"
)

const lockKeyPrefix = "schedule:"

// Guard сериализует захват слотов в пределах одного расписания.
// Из пересекающихся одновременных попыток успешна не больше чем одна.
// Разные расписания друг друга не блокируют.
type Guard struct {
	store     Store
	locker    Locker
	txManager TransactionManager
	metrics   Metrics
	timeout   time.Duration
	logger    Logger
}

// NewGuard создает guard. timeout ограничивает всю попытку целиком,
// включая ожидание блокировки. При timeout <= 0 попытку ограничивает только
// контекст вызова. Из конфигурации приходит положительное значение: пустой или
// нулевой [claim] timeout_ms заменяется на 3000 мс.
func NewGuard(store Store, locker Locker, txManager TransactionManager, timeout time.Duration, logger Logger) *Guard {
	return &Guard{
		store:     store,
		locker:    locker,
		txManager: txManager,
		timeout:   timeout,
		logger:    logger,
	}
}

// WithMetrics включает учёт исходов в метриках
func (g *Guard) WithMetrics(m Metrics) *Guard {
	g.metrics = m
	return g
}

// TryClaimSlot перечитывает актуальные бронирования расписания, проверяет пересечение
// с [slotStart, slotStart+duration) и сохраняет draft как новое бронирование.
// Возвращает созданное бронирование либо ErrSlotConflict / ErrStoreUnavailable.
func (g *Guard) TryClaimSlot(
	ctx context.Context,
	scheduleID int64,
	slotStart time.Time,
	durationMinutes int,
	draft *domain.Booking,
) (*domain.Booking, error) {
	if durationMinutes <= 0 || draft == nil {
		return nil, fmt.Errorf("%w: duration=%d", ErrInvalidClaim, durationMinutes)
	}

	start := slotStart
	end := domain.AddMinutes(start, durationMinutes)

	var created *domain.Booking
	err := g.critical(ctx, scheduleID, func(txCtx context.Context) error {
		// 1. Читаем актуальные бронирования внутри критической секции
		existing, err := g.store.ListOccupying(txCtx, scheduleID, start, end)
		if err != nil {
			return fmt.Errorf("%w: TryClaimSlot - list bookings: %v", ErrStoreUnavailable, err)
		}

		// 2. Проверяем пересечение
		if conflicts := availability.Conflicts(start, end, existing); len(conflicts) > 0 {
			return fmt.Errorf("%w: %s-%s overlaps booking id=%d",
				ErrSlotConflict, start.Format(domain.DateTimeFormat), end.Format(domain.TimeFormat), conflicts[0].ID)
		}

		// 3. Сохраняем бронирование
		booking := *draft
		booking.ScheduleID = scheduleID
		booking.StartTime = start
		booking.EndTime = end

		saved, err := g.store.Create(txCtx, &booking)
		if err != nil {
			return fmt.Errorf("%w: TryClaimSlot - create booking: %v", ErrStoreUnavailable, err)
		}

		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info("TryClaimSlot: schedule=%d claimed %s+%dm booking id=%d",
		scheduleID, start.Format(domain.DateTimeFormat), durationMinutes, created.ID)
	return created, nil
}

// TryMoveBooking переносит бронирование на новое время с теми же гарантиями,
// что и TryClaimSlot. Само переносимое бронирование конфликтом не считается.
func (g *Guard) TryMoveBooking(
	ctx context.Context,
	scheduleID int64,
	bookingID int64,
	newStart time.Time,
	durationMinutes int,
) (time.Time, time.Time, error) {
	if durationMinutes <= 0 || bookingID <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: booking=%d duration=%d", ErrInvalidClaim, bookingID, durationMinutes)
	}

	start := newStart
	end := domain.AddMinutes(start, durationMinutes)

	err := g.critical(ctx, scheduleID, func(txCtx context.Context) error {
		existing, err := g.store.ListOccupying(txCtx, scheduleID, start, end)
		if err != nil {
			return fmt.Errorf("%w: TryMoveBooking - list bookings: %v", ErrStoreUnavailable, err)
		}

		others := make([]*domain.Booking, 0, len(existing))
		for _, b := range existing {
			if b.ID != bookingID {
				others = append(others, b)
			}
		}

		if conflicts := availability.Conflicts(start, end, others); len(conflicts) > 0 {
			return fmt.Errorf("%w: %s-%s overlaps booking id=%d",
				ErrSlotConflict, start.Format(domain.DateTimeFormat), end.Format(domain.TimeFormat), conflicts[0].ID)
		}

		if err := g.store.UpdateTimes(txCtx, bookingID, start, end); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: TryMoveBooking - update booking: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	g.logger.Info("TryMoveBooking: schedule=%d moved booking id=%d to %s+%dm",
		scheduleID, bookingID, start.Format(domain.DateTimeFormat), durationMinutes)
	return start, end, nil
}

// critical выполняет fn под блокировкой расписания в сериализуемой транзакции
func (g *Guard) critical(ctx context.Context, scheduleID int64, fn func(ctx context.Context) error) error {
	began := time.Now()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	err := g.lockAndRun(ctx, scheduleID, fn)
	err = g.classify(ctx, scheduleID, err)
	g.observe(err, time.Since(began))
	return err
}

func (g *Guard) lockAndRun(ctx context.Context, scheduleID int64, fn func(ctx context.Context) error) error {
	unlock, err := g.locker.Lock(ctx, LockKey(scheduleID))
	if err != nil {
		return fmt.Errorf("%w: acquire lock for schedule=%d: %v", ErrStoreUnavailable, scheduleID, err)
	}
	defer unlock()

	return g.txManager.DoSerializable(ctx, fn)
}

// classify сводит любую ошибку к конфликту, отсутствию бронирования или недоступности хранилища
func (g *Guard) classify(ctx context.Context, scheduleID int64, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrSlotConflict):
		g.logger.Warn("Guard: schedule=%d conflict: %v", scheduleID, err)
		return err
	case errors.Is(err, ErrBookingNotFound):
		g.logger.Warn("Guard: schedule=%d booking not found", scheduleID)
		return err
	case errors.Is(err, ErrStoreUnavailable):
		g.logger.Error("Guard: schedule=%d store unavailable: %v", scheduleID, err)
		return err
	case ctx.Err() != nil:
		g.logger.Error("Guard: schedule=%d claim deadline exceeded: %v", scheduleID, err)
		return fmt.Errorf("%w: deadline exceeded: %v", ErrStoreUnavailable, err)
	default:
		g.logger.Error("Guard: schedule=%d transaction failed: %v", scheduleID, err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

func (g *Guard) observe(err error, duration time.Duration) {
	if g.metrics == nil || errors.Is(err, ErrBookingNotFound) {
		return
	}
	outcome := metrics.ClaimOutcomeWon
	switch {
	case errors.Is(err, ErrSlotConflict):
		outcome = metrics.ClaimOutcomeConflict
	case err != nil:
		outcome = metrics.ClaimOutcomeUnavailable
	}
	g.metrics.ObserveSlotClaim(outcome, duration)
}

// LockKey ключ блокировки расписания
func LockKey(scheduleID int64) string {
	return lockKeyPrefix + strconv.FormatInt(scheduleID, 10)
}
