package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var hoursColumns = []string{
	"weekday",
	"open_time",
	"close_time",
	"slot_granularity_minutes",
}

// Repository репозиторий часов работы и выходных дней
type Repository struct {
	db        DBExecutor
	txManager TxManager
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor, txManager TxManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// GetBusinessHours получает часы работы на день недели
func (r *Repository) GetBusinessHours(ctx context.Context, weekday domain.Weekday) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("business_hours").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - build select query: %v", ErrBuildQuery, err)
	}

	hours, err := scanHours(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - scan row: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ListBusinessHours получает часы работы на всю неделю
func (r *Repository) ListBusinessHours(ctx context.Context) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("business_hours").
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BusinessHours, 0, 7)
	for rows.Next() {
		hours, err := scanHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBusinessHours - scan row: %v", ErrScanRow, err)
		}
		result = append(result, hours)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceBusinessHours заменяет расписание целиком
func (r *Repository) ReplaceBusinessHours(ctx context.Context, hours []*domain.BusinessHours) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		if _, err := executor.ExecContext(txCtx, "DELETE FROM business_hours"); err != nil {
			return fmt.Errorf("%w: ReplaceBusinessHours - execute delete: %v", ErrExecQuery, err)
		}
		if len(hours) == 0 {
			return nil
		}

		insert := psqlbuilder.Insert("business_hours").Columns(hoursColumns...)
		for _, h := range hours {
			insert = insert.Values(int(h.Weekday), h.OpenTime, h.CloseTime, h.SlotGranularityMinutes)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceBusinessHours - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceBusinessHours - execute insert: %v", ErrExecQuery, err)
		}

		return nil
	})
}

// GetHolidays получает выходные дни в периоде [from, to]; nil - без ограничения
func (r *Repository) GetHolidays(ctx context.Context, from, to *time.Time) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("holiday_date", "reason").
		From("holidays").
		OrderBy("holiday_date ASC")
	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"holiday_date": domain.DateOnly(*from)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"holiday_date": domain.DateOnly(*to)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.Date, &h.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetHolidays - scan row: %v", ErrScanRow, err)
		}
		h.Date = domain.DateOnly(h.Date)
		result = append(result, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceHolidays заменяет список выходных целиком
func (r *Repository) ReplaceHolidays(ctx context.Context, holidays []*domain.Holiday) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		if _, err := executor.ExecContext(txCtx, "DELETE FROM holidays"); err != nil {
			return fmt.Errorf("%w: ReplaceHolidays - execute delete: %v", ErrExecQuery, err)
		}
		if len(holidays) == 0 {
			return nil
		}

		insert := psqlbuilder.Insert("holidays").
			Columns("holiday_date", "reason").
			Suffix("ON CONFLICT (holiday_date) DO UPDATE SET reason = EXCLUDED.reason")
		for _, h := range holidays {
			insert = insert.Values(domain.DateOnly(h.Date), h.Reason)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceHolidays - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceHolidays - execute insert: %v", ErrExecQuery, err)
		}

		return nil
	})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHours(row rowScanner) (*domain.BusinessHours, error) {
	var (
		h       domain.BusinessHours
		weekday int
	)

	if err := row.Scan(&weekday, &h.OpenTime, &h.CloseTime, &h.SlotGranularityMinutes); err != nil {
		return nil, err
	}
	h.Weekday = domain.Weekday(weekday)

	return &h, nil
}
