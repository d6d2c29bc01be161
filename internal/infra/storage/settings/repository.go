package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/pkg/dbmetrics"
	"github.com/Mkaniukov/carwash-crm/pkg/psqlbuilder"
)

const (
	settingsTable = "schedule_settings"
	daysOffTable  = "schedule_days_off"
)

const upsertSuffix = `ON CONFLICT (schedule_id) DO UPDATE SET
	work_start = EXCLUDED.work_start,
	work_end = EXCLUDED.work_end,
	working_days = EXCLUDED.working_days,
	slot_interval_minutes = EXCLUDED.slot_interval_minutes,
	min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
	advance_booking_days = EXCLUDED.advance_booking_days,
	updated_at = NOW()
RETURNING updated_at`

// Repository репозиторий настроек расписания и выходных дней
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки расписания вместе с выходными днями
func (r *Repository) Get(ctx context.Context, scheduleID int64) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"schedule_id",
		"work_start",
		"work_end",
		"working_days",
		"slot_interval_minutes",
		"min_booking_notice_minutes",
		"advance_booking_days",
		"updated_at",
	).
		From(settingsTable).
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings    domain.ScheduleSettings
		workingDays pq.Int64Array
		updatedAt   sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ScheduleID,
		&settings.WorkStart,
		&settings.WorkEnd,
		&workingDays,
		&settings.SlotIntervalMinutes,
		&settings.MinBookingNoticeMinutes,
		&settings.AdvanceBookingDays,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	settings.WorkingDays = make([]domain.Weekday, 0, len(workingDays))
	for _, d := range workingDays {
		settings.WorkingDays = append(settings.WorkingDays, domain.Weekday(d))
	}
	settings.UpdatedAt = updatedAt.Time

	daysOff, err := r.listDaysOff(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	settings.DaysOff = daysOff

	return &settings, nil
}

// Upsert создает или обновляет часы работы и политику бронирования.
// Выходные дни хранятся отдельно и не затрагиваются.
func (r *Repository) Upsert(ctx context.Context, settings *domain.ScheduleSettings) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	workingDays := make(pq.Int64Array, len(settings.WorkingDays))
	for i, d := range settings.WorkingDays {
		workingDays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert(settingsTable).
		Columns(
			"schedule_id",
			"work_start",
			"work_end",
			"working_days",
			"slot_interval_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			settings.ScheduleID,
			settings.WorkStart,
			settings.WorkEnd,
			workingDays,
			settings.SlotIntervalMinutes,
			settings.MinBookingNoticeMinutes,
			settings.AdvanceBookingDays,
		).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	saved := *settings
	saved.UpdatedAt = updatedAt.Time

	daysOff, err := r.listDaysOff(ctx, settings.ScheduleID)
	if err != nil {
		return nil, err
	}
	saved.DaysOff = daysOff

	return &saved, nil
}

// AddDayOff отмечает дату выходной. Повторное добавление ничего не меняет.
// Если настроек ещё нет, сохраняются настройки по умолчанию.
func (r *Repository) AddDayOff(ctx context.Context, scheduleID int64, day string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	defaults := domain.DefaultScheduleSettings(scheduleID)
	workingDays := make(pq.Int64Array, len(defaults.WorkingDays))
	for i, d := range defaults.WorkingDays {
		workingDays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert(settingsTable).
		Columns("schedule_id", "work_start", "work_end", "working_days",
			"slot_interval_minutes", "min_booking_notice_minutes", "advance_booking_days").
		Values(defaults.ScheduleID, defaults.WorkStart, defaults.WorkEnd, workingDays,
			defaults.SlotIntervalMinutes, defaults.MinBookingNoticeMinutes, defaults.AdvanceBookingDays).
		Suffix("ON CONFLICT (schedule_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddDayOff - build defaults query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddDayOff - insert defaults: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Insert(daysOffTable).
		Columns("schedule_id", "day").
		Values(scheduleID, day).
		Suffix("ON CONFLICT (schedule_id, day) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddDayOff - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddDayOff - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveDayOff снимает отметку выходного. Отсутствующая дата не считается ошибкой.
func (r *Repository) RemoveDayOff(ctx context.Context, scheduleID int64, day string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(daysOffTable).
		Where(squirrel.Eq{"schedule_id": scheduleID, "day": day}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveDayOff - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveDayOff - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) listDaysOff(ctx context.Context, scheduleID int64) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day").
		From(daysOffTable).
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listDaysOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listDaysOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]string, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: listDaysOff - scan row: %v", ErrScanRow, err)
		}
		days = append(days, day.Format(domain.DateFormat))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listDaysOff - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}
