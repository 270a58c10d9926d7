package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func seed(t *testing.T, store *memory.Store, day int, start, end types.TimeString) *domain.Appointment {
	t.Helper()
	a, err := store.InsertAppointmentIfNoOverlap(context.Background(), &domain.Appointment{
		ServiceID:       1,
		CustomerName:    "Anna",
		CustomerPhone:   "+79001112233",
		Date:            time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: 60,
		ServiceName:     "Haircut",
	}, domain.Placement{StaffIDs: []int64{1}})
	require.NoError(t, err)
	return a
}

func TestService_GetByID(t *testing.T) {
	store := memory.NewStore()
	a := seed(t, store, 19, "10:00", "11:00")
	svc := NewService(store, logger.NewNop())

	resp, err := svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", resp.Date)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(1), *resp.StaffID)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListFiltersAndOrders(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, 20, "09:00", "10:00")
	late := seed(t, store, 19, "15:00", "16:00")
	early := seed(t, store, 19, "10:00", "11:00")
	seed(t, store, 22, "10:00", "11:00")
	svc := NewService(store, logger.NewNop())
	ctx := context.Background()

	ok, err := store.UpdateAppointmentStatus(ctx, late.ID, domain.StatusPending, domain.StatusConfirmed)
	require.NoError(t, err)
	require.True(t, ok)

	all, err := svc.List(ctx, &models.ListAppointmentsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Appointments, 4)
	assert.Equal(t, early.ID, all.Appointments[0].ID)
	assert.Equal(t, late.ID, all.Appointments[1].ID)

	ranged, err := svc.List(ctx, &models.ListAppointmentsRequest{DateFrom: ptr.Ptr("2026-10-19"), DateTo: ptr.Ptr("2026-10-20")})
	require.NoError(t, err)
	assert.Len(t, ranged.Appointments, 3)

	confirmed, err := svc.List(ctx, &models.ListAppointmentsRequest{Status: ptr.Ptr("confirmed")})
	require.NoError(t, err)
	require.Len(t, confirmed.Appointments, 1)
	assert.Equal(t, late.ID, confirmed.Appointments[0].ID)
}

func TestService_ListInvalidFilter(t *testing.T) {
	svc := NewService(memory.NewStore(), logger.NewNop())

	tests := []*models.ListAppointmentsRequest{
		{Status: ptr.Ptr("archived")},
		{DateFrom: ptr.Ptr("19.10.2026")},
		{DateFrom: ptr.Ptr("2026-10-20"), DateTo: ptr.Ptr("2026-10-19")},
	}

	for _, req := range tests {
		_, err := svc.List(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestService_ListEmpty(t *testing.T) {
	svc := NewService(memory.NewStore(), logger.NewNop())

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)
	assert.Empty(t, resp.Appointments)
}
