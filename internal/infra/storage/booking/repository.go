package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/pkg/dbmetrics"
	"github.com/Mkaniukov/carwash-crm/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"schedule_id",
	"service_id",
	"client_name",
	"phone",
	"email",
	"service_name",
	"service_price",
	"start_time",
	"end_time",
	"status",
	"source",
	"cancel_token",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"schedule_id",
			"service_id",
			"client_name",
			"phone",
			"email",
			"service_name",
			"service_price",
			"start_time",
			"end_time",
			"status",
			"source",
			"cancel_token",
			"created_by",
		).
		Values(
			booking.ScheduleID,
			booking.ServiceID,
			booking.ClientName,
			booking.Phone,
			booking.Email,
			booking.ServiceName,
			booking.ServicePrice,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Source,
			booking.CancelToken,
			booking.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *booking
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCancelToken получает бронирование по токену отмены из письма клиенту
func (r *Repository) GetByCancelToken(ctx context.Context, token string) (*domain.Booking, error) {
	if token == "" {
		return nil, ErrBookingNotFound
	}
	return r.getOne(ctx, "GetByCancelToken", squirrel.Eq{"cancel_token": token})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// List получает бронирования расписания по фильтру, отсортированные по времени начала
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListOccupying получает неотменённые бронирования расписания, пересекающиеся с [from, to).
//
// Внутри транзакции сначала берётся pg_advisory_xact_lock по расписанию, а строки
// читаются с FOR UPDATE. Так два экземпляра сервиса не могут одновременно пройти
// проверку пересечения для одного расписания даже без внешней блокировки.
func (r *Repository) ListOccupying(ctx context.Context, scheduleID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	inTx := dbmetrics.IsInTransaction(ctx)

	if inTx {
		if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", scheduleID); err != nil {
			return nil, fmt.Errorf("%w: ListOccupying - schedule=%d: %v", ErrLockSchedule, scheduleID, err)
		}
	}

	query, args, err := occupyingQuery(scheduleID, from, to, inTx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus меняет статус from -> to.
// Если статус уже изменился, возвращает domain.ErrStatusChanged.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	query, args, err := updateStatusQuery(id, from, to)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	err = r.execUpdate(ctx, "UpdateStatus", query, args)
	if !errors.Is(err, ErrBookingNotFound) {
		return err
	}

	// Ни одна строка не обновлена: бронирования нет или статус уже другой
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return getErr
	}
	return fmt.Errorf("%w: UpdateStatus - booking id=%d is no longer %s", domain.ErrStatusChanged, id, from)
}

// UpdateTimes переносит бронирование на новый интервал
func (r *Repository) UpdateTimes(ctx context.Context, id int64, start, end time.Time) error {
	query, args, err := psqlbuilder.Update(table).
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateTimes - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "UpdateTimes", query, args)
}

func (r *Repository) execUpdate(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func listQuery(filter domain.BookingsFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"schedule_id": filter.ScheduleID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	// Конкретный статус важнее флага отменённых
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCanceled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.CanceledStatuses)})
	}

	return selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
}

func updateStatusQuery(id int64, from, to domain.BookingStatus) (string, []interface{}, error) {
	return psqlbuilder.Update(table).
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(from)}).
		ToSql()
}

func occupyingQuery(scheduleID int64, from, to time.Time, forUpdate bool) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		Where(squirrel.NotEq{"status": statusStrings(domain.CanceledStatuses)}).
		OrderBy("start_time ASC", "id ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder.ToSql()
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		email                sql.NullString
		createdBy            sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ScheduleID,
		&booking.ServiceID,
		&booking.ClientName,
		&booking.Phone,
		&email,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Source,
		&booking.CancelToken,
		&createdBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		booking.Email = &email.String
	}
	if createdBy.Valid {
		booking.CreatedBy = &createdBy.Int64
	}
	booking.StartTime = wallClock(booking.StartTime)
	booking.EndTime = wallClock(booking.EndTime)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// wallClock приводит timestamp without time zone к UTC-локации,
// в которой работает остальной код
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
