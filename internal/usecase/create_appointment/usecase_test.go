package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/pkg/locker"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *recordingMetrics) RecordBookingOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

func (m *recordingMetrics) count(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[outcome]
}

// 2026-10-19 - понедельник
var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	locker  *locker.Memory
	metrics *recordingMetrics
	uc      *UseCase
	service *domain.Service
}

func newFixture(t *testing.T, staffCount int, cfg Config) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	service, err := store.CreateService(ctx, &domain.Service{Name: "Haircut", DurationMinutes: 60, IsActive: true})
	require.NoError(t, err)

	for i := 0; i < staffCount; i++ {
		_, err := store.CreateStaff(ctx, &domain.Staff{Name: "Master", Phone: "+7900000000", IsActive: true})
		require.NoError(t, err)
	}

	require.NoError(t, store.ReplaceBusinessHours(ctx, []*domain.BusinessHours{
		{Weekday: domain.Monday, OpenTime: "09:00", CloseTime: "17:00", SlotGranularityMinutes: 30},
	}))

	l := locker.NewMemory()
	m := &recordingMetrics{}
	uc := NewUseCase(store, store, store, l, m, cfg, time.UTC, logger.NewNop())
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}

	return &fixture{store: store, locker: l, metrics: m, uc: uc, service: service}
}

func (f *fixture) request(start, end types.TimeString) *Request {
	return &Request{
		ServiceID:     f.service.ID,
		Date:          monday,
		StartTime:     start,
		EndTime:       end,
		CustomerName:  " Anna ",
		CustomerPhone: "+79001112233",
	}
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	f := newFixture(t, 2, Config{})
	req := f.request("10:00", "11:00")
	req.Note = ptr.Ptr("first visit")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, "Anna", resp.CustomerName)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 60, resp.DurationMinutes)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, int64(1), *resp.StaffID)
	assert.Equal(t, "first visit", *resp.Note)
	assert.Equal(t, 1, f.metrics.count(OutcomeCreated))

	stored, err := f.store.GetAppointmentByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), stored.StartTime)
}

func TestExecute_SecondBookingGoesToNextStaff(t *testing.T) {
	f := newFixture(t, 2, Config{})

	first, err := f.uc.Execute(context.Background(), f.request("10:00", "11:00"))
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), f.request("10:00", "11:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), *first.StaffID)
	assert.Equal(t, int64(2), *second.StaffID)

	_, err = f.uc.Execute(context.Background(), f.request("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.ErrorIs(t, err, domain.ErrSlotNoLongerAvailable)
	assert.Equal(t, 1, f.metrics.count(OutcomeConflict))
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(t, 1, Config{})
	ctx := context.Background()
	require.NoError(t, f.store.ReplaceHolidays(ctx, []*domain.Holiday{{Date: monday.AddDate(0, 0, 7), Reason: "Holiday"}}))

	tests := []struct {
		name   string
		modify func(r *Request)
		want   error
	}{
		{"missing service", func(r *Request) { r.ServiceID = 0 }, ErrInvalidInput},
		{"bad time", func(r *Request) { r.StartTime = "25:00" }, ErrInvalidInput},
		{"unknown service", func(r *Request) { r.ServiceID = 99 }, ErrServiceNotFound},
		{"duration mismatch", func(r *Request) { r.EndTime = "10:30" }, ErrDurationMismatch},
		{"misaligned", func(r *Request) { r.StartTime, r.EndTime = "09:30", "10:30" }, ErrSlotMisaligned},
		{"after close", func(r *Request) { r.StartTime, r.EndTime = "17:00", "18:00" }, ErrSlotMisaligned},
		{"holiday", func(r *Request) { r.Date = monday.AddDate(0, 0, 7) }, ErrClosedDay},
		{"no business hours", func(r *Request) { r.Date = monday.AddDate(0, 0, 2) }, ErrClosedDay},
		{"past date", func(r *Request) { r.Date = monday.AddDate(0, 0, -7) }, ErrDateInPast},
		{"blank name", func(r *Request) { r.CustomerName = "   " }, ErrCustomerRequired},
		{"blank phone", func(r *Request) { r.CustomerPhone = "" }, ErrCustomerRequired},
		{"unknown staff", func(r *Request) { r.StaffID = ptr.Ptr(int64(7)) }, ErrStaffNotAvailable},
		{"misaligned wins over blank name", func(r *Request) {
			r.StartTime, r.EndTime = "09:30", "10:30"
			r.CustomerName = ""
		}, ErrSlotMisaligned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("10:00", "11:00")
			tt.modify(req)

			_, err := f.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_ClosedDayCategory(t *testing.T) {
	f := newFixture(t, 1, Config{})

	req := f.request("10:00", "11:00")
	req.Date = monday.AddDate(0, 0, 6)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrClosedDay)
	assert.Equal(t, 1, f.metrics.count(OutcomeRejected))
}

func TestExecute_SameDayStartedSlot(t *testing.T) {
	f := newFixture(t, 1, Config{})
	f.uc.timeProvider = &fixedTimeProvider{now: monday.Add(10*time.Hour + 5*time.Minute)}

	_, err := f.uc.Execute(context.Background(), f.request("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrSlotStarted)

	_, err = f.uc.Execute(context.Background(), f.request("11:00", "12:00"))
	assert.NoError(t, err)
}

func TestExecute_PinnedStaff(t *testing.T) {
	f := newFixture(t, 2, Config{})
	ctx := context.Background()
	require.NoError(t, f.store.ReplaceStaffServices(ctx, 2, []int64{f.service.ID}))

	req := f.request("10:00", "11:00")
	req.StaffID = ptr.Ptr(int64(1))
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrStaffNotAvailable)

	req.StaffID = ptr.Ptr(int64(2))
	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), *resp.StaffID)

	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_InactivePinnedStaff(t *testing.T) {
	f := newFixture(t, 2, Config{})
	ctx := context.Background()
	require.NoError(t, f.store.SetStaffActive(ctx, 2, false))

	req := f.request("10:00", "11:00")
	req.StaffID = ptr.Ptr(int64(2))
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrStaffNotAvailable)
}

func TestExecute_SharedPool(t *testing.T) {
	f := newFixture(t, 0, Config{SharedPool: true, SharedPoolSize: 2})
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, f.request("10:00", "11:00"))
	require.NoError(t, err)
	assert.Nil(t, first.StaffID)

	_, err = f.uc.Execute(ctx, f.request("10:00", "11:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, f.request("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_NoCapacityWithoutPool(t *testing.T) {
	f := newFixture(t, 0, Config{})

	_, err := f.uc.Execute(context.Background(), f.request("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_AssignedStaffInactiveDoesNotFallBackToPool(t *testing.T) {
	f := newFixture(t, 2, Config{SharedPool: true, SharedPoolSize: 3})
	ctx := context.Background()
	require.NoError(t, f.store.ReplaceStaffServices(ctx, 1, []int64{f.service.ID}))
	require.NoError(t, f.store.SetStaffActive(ctx, 1, false))

	_, err := f.uc.Execute(ctx, f.request("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)

	booked, err := f.store.GetAppointmentsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Empty(t, booked)
}

func TestExecute_StaffSchedule(t *testing.T) {
	f := newFixture(t, 2, Config{SharedPool: true})
	ctx := context.Background()
	require.NoError(t, f.store.ReplaceStaffSchedule(ctx, 1, []domain.StaffSchedule{
		{Weekday: domain.Monday, StartTime: "12:00", EndTime: "17:00", IsWorking: true},
	}))
	require.NoError(t, f.store.ReplaceStaffSchedule(ctx, 2, []domain.StaffSchedule{
		{Weekday: domain.Monday, IsWorking: false},
	}))

	// утром никто не работает, пул не используется
	_, err := f.uc.Execute(ctx, f.request("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)

	resp, err := f.uc.Execute(ctx, f.request("12:00", "13:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), *resp.StaffID)

	// выбранный мастер в выходной
	req := f.request("14:00", "15:00")
	req.StaffID = ptr.Ptr(int64(2))
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrStaffNotAvailable)
}

func TestExecute_CancelledSlotCanBeRebooked(t *testing.T) {
	f := newFixture(t, 1, Config{})
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, f.request("10:00", "11:00"))
	require.NoError(t, err)

	ok, err := f.store.UpdateAppointmentStatus(ctx, first.ID, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)
	require.True(t, ok)

	second, err := f.uc.Execute(ctx, f.request("10:00", "11:00"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestExecute_LockWaitTimeout(t *testing.T) {
	f := newFixture(t, 1, Config{LockWait: 20 * time.Millisecond})
	ctx := context.Background()

	unlock, err := f.locker.Acquire(ctx, "2026-10-19:staff:00000000000000000001", time.Second)
	require.NoError(t, err)
	defer unlock()

	_, err = f.uc.Execute(ctx, f.request("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Equal(t, 1, f.metrics.count(OutcomeConflict))
}

func TestExecute_ConcurrentCommitsSingleWinner(t *testing.T) {
	f := newFixture(t, 1, Config{LockWait: 5 * time.Second})
	const attempts = 25

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), f.request("10:00", "11:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, domain.ErrSlotNoLongerAvailable):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	appointments, err := f.store.GetAppointmentsForDate(context.Background(), monday)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}

func TestLockKeys(t *testing.T) {
	keys := lockKeys(monday, 3, domain.Placement{StaffIDs: []int64{10, 2}})
	assert.Equal(t, []string{
		"2026-10-19:staff:00000000000000000002",
		"2026-10-19:staff:00000000000000000010",
	}, keys)

	assert.Equal(t, []string{"2026-10-19:pool:3"}, lockKeys(monday, 3, domain.Placement{PoolSize: 1}))
}
