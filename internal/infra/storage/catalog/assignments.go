package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// GetStaffServiceAssignments получает назначения мастеров на услугу
func (r *Repository) GetStaffServiceAssignments(ctx context.Context, serviceID int64) ([]domain.StaffService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id", "service_id").
		From("staff_services").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("staff_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffServiceAssignments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffServiceAssignments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.StaffService, 0)
	for rows.Next() {
		var a domain.StaffService
		if err := rows.Scan(&a.StaffID, &a.ServiceID); err != nil {
			return nil, fmt.Errorf("%w: GetStaffServiceAssignments - scan row: %v", ErrScanRow, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStaffServiceAssignments - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetStaffServices получает ID услуг, назначенных мастеру
func (r *Repository) GetStaffServices(ctx context.Context, staffID int64) ([]int64, error) {
	if _, err := r.GetStaffByID(ctx, staffID); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_id").
		From("staff_services").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("service_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetStaffServices - scan row: %v", ErrScanRow, err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStaffServices - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceStaffServices заменяет набор услуг мастера в одной транзакции
func (r *Repository) ReplaceStaffServices(ctx context.Context, staffID int64, serviceIDs []int64) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := r.GetStaffByID(txCtx, staffID); err != nil {
			return err
		}
		for _, id := range serviceIDs {
			if _, err := r.GetServiceByID(txCtx, id); err != nil {
				return err
			}
		}

		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Delete("staff_services").
			Where(squirrel.Eq{"staff_id": staffID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceStaffServices - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceStaffServices - execute delete: %v", ErrExecQuery, err)
		}

		if len(serviceIDs) == 0 {
			return nil
		}

		insert := psqlbuilder.Insert("staff_services").
			Columns("staff_id", "service_id").
			Suffix("ON CONFLICT DO NOTHING")
		for _, id := range serviceIDs {
			insert = insert.Values(staffID, id)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceStaffServices - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceStaffServices - execute insert: %v", ErrExecQuery, err)
		}

		return nil
	})
}
