package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

var testDate = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	db := dbmetrics.Wrap(raw, nil)
	return NewRepository(db, txmanager.NewTransactionManager(db), 2*time.Second), mock
}

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func newCandidate() *domain.Appointment {
	return &domain.Appointment{
		ServiceID:       3,
		CustomerName:    "Anna",
		CustomerPhone:   "+66000000",
		Date:            testDate,
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		ServiceName:     "Haircut",
	}
}

func TestRepository_GetAppointmentByID(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(appointmentRows().AddRow(
			5, 3, 2, nil, "Anna", "+66000000", testDate, "10:00:00", "11:00:00", 60, "Haircut", "confirmed", "window seat", now, now,
		))

	a, err := repo.GetAppointmentByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), a.ID)
	require.NotNil(t, a.StaffID)
	assert.Equal(t, int64(2), *a.StaffID)
	assert.Nil(t, a.PoolUnit)
	assert.Equal(t, "10:00", a.StartTime.String())
	assert.Equal(t, "11:00", a.EndTime.String())
	assert.Equal(t, domain.StatusConfirmed, a.Status)
	require.NotNil(t, a.Note)
	assert.Equal(t, "window seat", *a.Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAppointmentByID_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM appointments").WillReturnRows(appointmentRows())

	_, err := repo.GetAppointmentByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_ListAppointments_AppliesFilter(t *testing.T) {
	repo, mock := newTestRepository(t)
	status := domain.StatusPending
	to := testDate.AddDate(0, 0, 7)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE appointment_date >= \\$1 AND appointment_date <= \\$2 AND status = \\$3 ORDER BY appointment_date ASC").
		WithArgs(testDate, to, "pending").
		WillReturnRows(appointmentRows())

	items, err := repo.ListAppointments(context.Background(), domain.AppointmentsFilter{
		DateFrom: &testDate,
		DateTo:   &to,
		Status:   &status,
	})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfNoOverlap_PicksFreeStaff(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL lock_timeout = '2000ms'").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE appointment_date = \\$1 AND status <> \\$2").
		WithArgs(testDate, "cancelled").
		WillReturnRows(appointmentRows().AddRow(
			9, 3, 1, nil, "Bob", "1", testDate, "10:30:00", "11:30:00", 60, "Haircut", "pending", nil, now, now,
		))
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(int64(3), int64(2), nil, "Anna", "+66000000", testDate, "10:00", "11:00", 60, "Haircut", "pending", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(10, now, now))
	mock.ExpectCommit()

	created, err := repo.InsertAppointmentIfNoOverlap(context.Background(), newCandidate(), domain.Placement{StaffIDs: []int64{1, 2}})
	require.NoError(t, err)

	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, int64(2), *created.StaffID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfNoOverlap_NoFreeUnit(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL lock_timeout").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WillReturnRows(appointmentRows().AddRow(
			9, 3, nil, 1, "Bob", "1", testDate, "10:00:00", "11:00:00", 60, "Haircut", "confirmed", nil, now, now,
		))
	mock.ExpectRollback()

	_, err := repo.InsertAppointmentIfNoOverlap(context.Background(), newCandidate(), domain.Placement{PoolSize: 1})
	assert.ErrorIs(t, err, domain.ErrSlotNoLongerAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfNoOverlap_ExclusionViolation(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL lock_timeout").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM appointments").WillReturnRows(appointmentRows())
	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})
	mock.ExpectRollback()

	_, err := repo.InsertAppointmentIfNoOverlap(context.Background(), newCandidate(), domain.Placement{PoolSize: 1})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfNoOverlap_InternalError(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL lock_timeout").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM appointments").WillReturnRows(appointmentRows())
	mock.ExpectQuery("INSERT INTO appointments").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.InsertAppointmentIfNoOverlap(context.Background(), newCandidate(), domain.Placement{PoolSize: 1})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, domain.ErrSlotNoLongerAvailable)
}

func TestRepository_UpdateAppointmentStatus(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE appointments SET status = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2 AND status = \\$3").
		WithArgs("confirmed", int64(5), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE appointments").
		WithArgs("confirmed", int64(5), "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateAppointmentStatus(context.Background(), 5, domain.StatusPending, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateAppointmentStatus(context.Background(), 5, domain.StatusPending, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}
