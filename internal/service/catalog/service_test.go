package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func newService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store, logger.NewNop()), store
}

func TestService_CreateAndUpdateService(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, &models.CreateServiceRequest{Name: "  Haircut ", DurationMinutes: 45, Price: ptr.Ptr(1500.0)})
	require.NoError(t, err)
	assert.Equal(t, "Haircut", created.Name)
	assert.True(t, created.IsActive)

	updated, err := svc.UpdateService(ctx, created.ID, &models.UpdateServiceRequest{DurationMinutes: ptr.Ptr(60)})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.DurationMinutes)
	assert.Equal(t, "Haircut", updated.Name)
	assert.Equal(t, 1500.0, *updated.Price)
}

func TestService_ServiceValidation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateServiceRequest
	}{
		{"empty name", models.CreateServiceRequest{Name: " ", DurationMinutes: 30}},
		{"not multiple of 15", models.CreateServiceRequest{Name: "Cut", DurationMinutes: 40}},
		{"zero duration", models.CreateServiceRequest{Name: "Cut"}},
		{"negative price", models.CreateServiceRequest{Name: "Cut", DurationMinutes: 30, Price: ptr.Ptr(-1.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateService(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	_, err := svc.UpdateService(ctx, 42, &models.UpdateServiceRequest{Name: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_DeleteServiceIsSoft(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, &models.CreateServiceRequest{Name: "Haircut", DurationMinutes: 30})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteService(ctx, created.ID))

	active, err := svc.ListServices(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active.Services)

	all, err := svc.ListServices(ctx, true)
	require.NoError(t, err)
	require.Len(t, all.Services, 1)
	assert.False(t, all.Services[0].IsActive)

	assert.ErrorIs(t, svc.DeleteService(ctx, 99), ErrServiceNotFound)
}

func TestService_StaffLifecycle(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, &models.CreateStaffRequest{Name: "Olga", Phone: "+79001234567", Email: ptr.Ptr("olga@salon.test")})
	require.NoError(t, err)

	updated, err := svc.UpdateStaff(ctx, created.ID, &models.UpdateStaffRequest{Phone: ptr.Ptr("+79007654321")})
	require.NoError(t, err)
	assert.Equal(t, "+79007654321", updated.Phone)
	assert.Equal(t, "Olga", updated.Name)

	require.NoError(t, svc.DeleteStaff(ctx, created.ID))
	got, err := svc.GetStaff(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = svc.CreateStaff(ctx, &models.CreateStaffRequest{Name: "Ivan", Phone: "1", Email: ptr.Ptr("not-an-email")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateStaff(ctx, &models.CreateStaffRequest{Name: "Ivan"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetStaff(ctx, 99)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestService_ReplaceStaffServices(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	cut, err := svc.CreateService(ctx, &models.CreateServiceRequest{Name: "Haircut", DurationMinutes: 30})
	require.NoError(t, err)
	color, err := svc.CreateService(ctx, &models.CreateServiceRequest{Name: "Coloring", DurationMinutes: 90})
	require.NoError(t, err)
	staff, err := svc.CreateStaff(ctx, &models.CreateStaffRequest{Name: "Olga", Phone: "+79001234567"})
	require.NoError(t, err)

	empty, err := svc.GetStaffServices(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, empty.ServiceIDs)

	resp, err := svc.ReplaceStaffServices(ctx, staff.ID, &models.StaffServicesRequest{ServiceIDs: []int64{color.ID, cut.ID, color.ID}})
	require.NoError(t, err)
	assert.Equal(t, []int64{cut.ID, color.ID}, resp.ServiceIDs)

	assignments, err := store.GetStaffServiceAssignments(ctx, color.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.StaffService{{StaffID: staff.ID, ServiceID: color.ID}}, assignments)

	_, err = svc.ReplaceStaffServices(ctx, staff.ID, &models.StaffServicesRequest{ServiceIDs: []int64{77}})
	assert.ErrorIs(t, err, ErrUnknownService)

	_, err = svc.ReplaceStaffServices(ctx, 99, &models.StaffServicesRequest{ServiceIDs: []int64{cut.ID}})
	assert.ErrorIs(t, err, ErrStaffNotFound)

	_, err = svc.GetStaffServices(ctx, 99)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestService_ReplaceStaffSchedule(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	staff, err := svc.CreateStaff(ctx, &models.CreateStaffRequest{Name: "Olga", Phone: "+79001234567"})
	require.NoError(t, err)

	empty, err := svc.GetStaffSchedule(ctx, staff.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.Schedule)

	resp, err := svc.ReplaceStaffSchedule(ctx, staff.ID, &models.StaffScheduleRequest{Schedule: []models.StaffScheduleEntry{
		{Weekday: 6, IsWorking: ptr.Ptr(false), StartTime: "10:00", EndTime: "12:00"},
		{Weekday: 0, StartTime: "12:00", EndTime: "17:00"},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Schedule, 2)
	assert.Equal(t, 0, resp.Schedule[0].Weekday)
	assert.True(t, *resp.Schedule[0].IsWorking)
	assert.False(t, *resp.Schedule[1].IsWorking)
	assert.Empty(t, resp.Schedule[1].StartTime)

	monday, err := store.GetStaffSchedules(ctx, domain.Monday)
	require.NoError(t, err)
	assert.Equal(t, []domain.StaffSchedule{
		{StaffID: staff.ID, Weekday: domain.Monday, StartTime: "12:00", EndTime: "17:00", IsWorking: true},
	}, monday)

	tests := []struct {
		name     string
		schedule []models.StaffScheduleEntry
	}{
		{"end before start", []models.StaffScheduleEntry{{Weekday: 1, StartTime: "17:00", EndTime: "12:00"}}},
		{"working day without hours", []models.StaffScheduleEntry{{Weekday: 1}}},
		{"weekday out of range", []models.StaffScheduleEntry{{Weekday: 7, StartTime: "09:00", EndTime: "12:00"}}},
		{"duplicate weekday", []models.StaffScheduleEntry{
			{Weekday: 2, StartTime: "09:00", EndTime: "12:00"},
			{Weekday: 2, IsWorking: ptr.Ptr(false)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ReplaceStaffSchedule(ctx, staff.ID, &models.StaffScheduleRequest{Schedule: tt.schedule})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	_, err = svc.ReplaceStaffSchedule(ctx, 99, &models.StaffScheduleRequest{})
	assert.ErrorIs(t, err, ErrStaffNotFound)
	_, err = svc.GetStaffSchedule(ctx, 99)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
