package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	db := dbmetrics.Wrap(raw, nil)
	return NewRepository(db, txmanager.NewTransactionManager(db)), mock
}

func TestRepository_GetBusinessHours(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT weekday, open_time, close_time, slot_granularity_minutes FROM business_hours WHERE weekday = \\$1").
		WithArgs(0).
		WillReturnRows(sqlmock.NewRows(hoursColumns).AddRow(0, "09:00:00", "17:00:00", 30))

	hours, err := repo.GetBusinessHours(context.Background(), domain.Monday)
	require.NoError(t, err)
	assert.Equal(t, domain.Monday, hours.Weekday)
	assert.Equal(t, "09:00", hours.OpenTime.String())
	assert.Equal(t, "17:00", hours.CloseTime.String())
	assert.Equal(t, 30, hours.SlotGranularityMinutes)
}

func TestRepository_GetBusinessHours_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM business_hours").WillReturnRows(sqlmock.NewRows(hoursColumns))

	_, err := repo.GetBusinessHours(context.Background(), domain.Sunday)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_ReplaceBusinessHours(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM business_hours").WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec("INSERT INTO business_hours").
		WithArgs(0, "09:00", "17:00", 30, 5, "10:00", "14:00", 60).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.ReplaceBusinessHours(context.Background(), []*domain.BusinessHours{
		{Weekday: domain.Monday, OpenTime: "09:00", CloseTime: "17:00", SlotGranularityMinutes: 30},
		{Weekday: domain.Saturday, OpenTime: "10:00", CloseTime: "14:00", SlotGranularityMinutes: 60},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetHolidays_Range(t *testing.T) {
	repo, mock := newTestRepository(t)
	day := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT holiday_date, reason FROM holidays WHERE holiday_date >= \\$1 AND holiday_date <= \\$2").
		WithArgs(day, day).
		WillReturnRows(sqlmock.NewRows([]string{"holiday_date", "reason"}).AddRow(day, "New Year's Eve"))

	holidays, err := repo.GetHolidays(context.Background(), &day, &day)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "New Year's Eve", holidays[0].Reason)
	assert.True(t, holidays[0].Date.Equal(day))
}

func TestRepository_ReplaceHolidays_Empty(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM holidays").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceHolidays(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
