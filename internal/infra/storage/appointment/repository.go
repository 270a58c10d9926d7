package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие проигранную гонку за интервал
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
	pgLockNotAvailable   = "55P03"
	pgSerializationFail  = "40001"
)

var columns = []string{
	"id",
	"service_id",
	"staff_id",
	"pool_unit",
	"customer_name",
	"customer_phone",
	"appointment_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"service_name",
	"status",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db          DBExecutor
	txManager   TxManager
	lockTimeout time.Duration
}

// NewRepository создает новый экземпляр репозитория записей.
// lockTimeout ограничивает ожидание строковых блокировок при вставке.
func NewRepository(db DBExecutor, txManager TxManager, lockTimeout time.Duration) *Repository {
	return &Repository{
		db:          db,
		txManager:   txManager,
		lockTimeout: lockTimeout,
	}
}

// GetAppointmentByID получает запись по ID
func (r *Repository) GetAppointmentByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// GetAppointmentsForDate получает неотмененные записи на дату
func (r *Repository) GetAppointmentsForDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"appointment_date": domain.DateOnly(date)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentsForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListAppointments получает записи с фильтрацией по периоду и статусу
func (r *Repository) ListAppointments(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		OrderBy("appointment_date ASC, start_time ASC, id ASC")

	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": domain.DateOnly(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": domain.DateOnly(*filter.DateTo)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAppointments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAppointments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// InsertAppointmentIfNoOverlap в одной транзакции перечитывает записи на дату,
// выбирает свободного мастера (или единицу пула) и вставляет запись.
// Exclusion constraints гарантируют отсутствие пересечений при параллельных вставках.
func (r *Repository) InsertAppointmentIfNoOverlap(ctx context.Context, appointment *domain.Appointment, placement domain.Placement) (*domain.Appointment, error) {
	var created *domain.Appointment

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		if r.lockTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
			if _, err := executor.ExecContext(txCtx, stmt); err != nil {
				return fmt.Errorf("%w: InsertAppointmentIfNoOverlap - set lock timeout: %v", ErrExecQuery, err)
			}
		}

		existing, err := r.GetAppointmentsForDate(txCtx, appointment.Date)
		if err != nil {
			return err
		}

		candidate := *appointment
		candidate.Date = domain.DateOnly(appointment.Date)
		candidate.Status = domain.StatusPending

		if len(placement.StaffIDs) > 0 {
			staffID, ok := domain.FirstFreeStaff(placement.StaffIDs, existing, candidate.StartTime, candidate.EndTime)
			if !ok {
				return ErrSlotTaken
			}
			candidate.StaffID = &staffID
			candidate.PoolUnit = nil
		} else {
			unit, ok := domain.FirstFreePoolUnit(candidate.ServiceID, placement.PoolSize, existing, candidate.StartTime, candidate.EndTime)
			if !ok {
				return ErrSlotTaken
			}
			candidate.StaffID = nil
			candidate.PoolUnit = &unit
		}

		query, args, err := psqlbuilder.Insert("appointments").
			Columns(
				"service_id",
				"staff_id",
				"pool_unit",
				"customer_name",
				"customer_phone",
				"appointment_date",
				"start_time",
				"end_time",
				"duration_minutes",
				"service_name",
				"status",
				"note",
			).
			Values(
				candidate.ServiceID,
				candidate.StaffID,
				candidate.PoolUnit,
				candidate.CustomerName,
				candidate.CustomerPhone,
				candidate.Date,
				candidate.StartTime,
				candidate.EndTime,
				candidate.DurationMinutes,
				candidate.ServiceName,
				candidate.Status,
				candidate.Note,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: InsertAppointmentIfNoOverlap - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		err = executor.QueryRowContext(txCtx, query, args...).Scan(&candidate.ID, &createdAt, &updatedAt)
		if err != nil {
			if isSlotConflict(err) {
				return fmt.Errorf("%w: %v", ErrSlotTaken, err)
			}
			return fmt.Errorf("%w: InsertAppointmentIfNoOverlap - execute insert: %v", ErrExecQuery, err)
		}

		candidate.CreatedAt = createdAt.Time
		candidate.UpdatedAt = updatedAt.Time
		created = &candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateAppointmentStatus меняет статус, только если текущий равен from.
// false означает, что запись не найдена или статус уже изменен.
func (r *Repository) UpdateAppointmentStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateAppointmentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isSlotConflict(err) {
			return false, fmt.Errorf("%w: %v", ErrSlotTaken, err)
		}
		return false, fmt.Errorf("%w: UpdateAppointmentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateAppointmentStatus - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// isSlotConflict проверяет, что ошибка PostgreSQL означает занятый интервал
func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case pgExclusionViolation, pgUniqueViolation, pgLockNotAvailable, pgSerializationFail:
		return true
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		staffID              sql.NullInt64
		poolUnit             sql.NullInt32
		note                 sql.NullString
		status               string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.ServiceID,
		&staffID,
		&poolUnit,
		&a.CustomerName,
		&a.CustomerPhone,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.DurationMinutes,
		&a.ServiceName,
		&status,
		&note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if staffID.Valid {
		id := staffID.Int64
		a.StaffID = &id
	}
	if poolUnit.Valid {
		unit := int(poolUnit.Int32)
		a.PoolUnit = &unit
	}
	if note.Valid {
		n := note.String
		a.Note = &n
	}
	a.Status = domain.AppointmentStatus(status)
	a.Date = domain.DateOnly(a.Date)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
