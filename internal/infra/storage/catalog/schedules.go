package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var scheduleColumns = []string{"staff_id", "weekday", "start_time", "end_time", "is_working"}

// GetStaffSchedules получает графики всех мастеров на день недели
func (r *Repository) GetStaffSchedules(ctx context.Context, weekday domain.Weekday) ([]domain.StaffSchedule, error) {
	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("staff_schedules").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("staff_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffSchedules - build select query: %v", ErrBuildQuery, err)
	}

	return r.querySchedules(ctx, "GetStaffSchedules", query, args)
}

// GetStaffSchedule получает недельный график мастера
func (r *Repository) GetStaffSchedule(ctx context.Context, staffID int64) ([]domain.StaffSchedule, error) {
	if _, err := r.GetStaffByID(ctx, staffID); err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffSchedule - build select query: %v", ErrBuildQuery, err)
	}

	return r.querySchedules(ctx, "GetStaffSchedule", query, args)
}

// ReplaceStaffSchedule заменяет недельный график мастера в одной транзакции
func (r *Repository) ReplaceStaffSchedule(ctx context.Context, staffID int64, schedule []domain.StaffSchedule) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := r.GetStaffByID(txCtx, staffID); err != nil {
			return err
		}

		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Delete("staff_schedules").
			Where(squirrel.Eq{"staff_id": staffID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceStaffSchedule - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceStaffSchedule - execute delete: %v", ErrExecQuery, err)
		}

		if len(schedule) == 0 {
			return nil
		}

		insert := psqlbuilder.Insert("staff_schedules").Columns(scheduleColumns...)
		for _, day := range schedule {
			insert = insert.Values(staffID, int(day.Weekday), day.StartTime, day.EndTime, day.IsWorking)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceStaffSchedule - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceStaffSchedule - execute insert: %v", ErrExecQuery, err)
		}

		return nil
	})
}

func (r *Repository) querySchedules(ctx context.Context, op, query string, args []interface{}) ([]domain.StaffSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]domain.StaffSchedule, 0)
	for rows.Next() {
		var (
			s       domain.StaffSchedule
			weekday int
		)
		if err := rows.Scan(&s.StaffID, &weekday, &s.StartTime, &s.EndTime, &s.IsWorking); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		s.Weekday = domain.Weekday(weekday)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return result, nil
}
