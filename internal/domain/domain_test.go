package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from   AppointmentStatus
		action AppointmentAction
		want   AppointmentStatus
		ok     bool
	}{
		{StatusPending, ActionConfirm, StatusConfirmed, true},
		{StatusPending, ActionCancel, StatusCancelled, true},
		{StatusConfirmed, ActionCancel, StatusCancelled, true},
		{StatusConfirmed, ActionConfirm, StatusConfirmed, false},
		{StatusCancelled, ActionConfirm, StatusCancelled, false},
		{StatusCancelled, ActionCancel, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.action), func(t *testing.T) {
			got, ok := NextStatus(tt.from, tt.action)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionError_UnwrapsCategory(t *testing.T) {
	var err error = &TransitionError{From: StatusCancelled, Action: ActionConfirm}

	assert.True(t, errors.Is(err, ErrInvalidTransition))

	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, StatusCancelled, te.From)
	assert.Contains(t, err.Error(), "cannot confirm appointment in status cancelled")
}

func TestWeekdayOf(t *testing.T) {
	// 2026-10-19 - понедельник
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, Monday, WeekdayOf(monday))
	assert.Equal(t, Saturday, WeekdayOf(monday.AddDate(0, 0, 5)))
	assert.Equal(t, Sunday, WeekdayOf(monday.AddDate(0, 0, 6)))
}

func TestBusinessHours_Windows(t *testing.T) {
	hours := &BusinessHours{Weekday: Monday, OpenTime: "09:00", CloseTime: "17:00", SlotGranularityMinutes: 30}

	windows := hours.Windows(60)
	require.Len(t, windows, 8)
	assert.Equal(t, TimeRange{Start: "09:00", End: "10:00"}, windows[0])
	assert.Equal(t, TimeRange{Start: "10:00", End: "11:00"}, windows[1])
	assert.Equal(t, TimeRange{Start: "16:00", End: "17:00"}, windows[7])

	// Короче шага сетки: окна начинаются каждые 30 минут
	windows = hours.Windows(15)
	require.Len(t, windows, 16)
	assert.Equal(t, TimeRange{Start: "09:30", End: "09:45"}, windows[1])

	// 90 минут при сетке 60: шаг 120, окно 17:00 не помещается
	hours.SlotGranularityMinutes = 60
	windows = hours.Windows(90)
	require.Len(t, windows, 4)
	assert.Equal(t, types.TimeString("15:00"), windows[3].Start)
	assert.Equal(t, types.TimeString("16:30"), windows[3].End)

	// Хвост короче длительности отбрасывается
	hours.SlotGranularityMinutes = 30
	hours.CloseTime = "16:45"
	windows = hours.Windows(60)
	require.Len(t, windows, 7)
	assert.Equal(t, types.TimeString("15:00"), windows[6].Start)

	assert.Empty(t, hours.Windows(600))
}

func TestBusinessHours_Validate(t *testing.T) {
	valid := BusinessHours{Weekday: Friday, OpenTime: "10:00", CloseTime: "18:00", SlotGranularityMinutes: 15}
	require.NoError(t, valid.Validate())

	inverted := valid
	inverted.OpenTime, inverted.CloseTime = "18:00", "10:00"
	assert.ErrorIs(t, inverted.Validate(), ErrValidation)

	zeroStep := valid
	zeroStep.SlotGranularityMinutes = 0
	assert.ErrorIs(t, zeroStep.Validate(), ErrValidation)

	badDay := valid
	badDay.Weekday = 7
	assert.ErrorIs(t, badDay.Validate(), ErrValidation)

	// 09:00-17:10 не делится на окна по 30 минут
	ragged := valid
	ragged.OpenTime, ragged.CloseTime, ragged.SlotGranularityMinutes = "09:00", "17:10", 30
	assert.ErrorIs(t, ragged.Validate(), ErrValidation)

	ragged.SlotGranularityMinutes = 10
	assert.NoError(t, ragged.Validate())
}

func TestCapableStaff(t *testing.T) {
	staff := []*Staff{
		{ID: 3, IsActive: true},
		{ID: 1, IsActive: true},
		{ID: 2, IsActive: false},
	}

	// Без назначений - все активные
	capable, restricted := CapableStaff(staff, nil, 10)
	assert.Equal(t, []int64{1, 3}, StaffIDs(capable))
	assert.False(t, restricted)

	// Назначения ограничивают список
	assignments := []StaffService{{StaffID: 3, ServiceID: 10}, {StaffID: 2, ServiceID: 10}, {StaffID: 1, ServiceID: 11}}
	capable, restricted = CapableStaff(staff, assignments, 10)
	assert.Equal(t, []int64{3}, StaffIDs(capable))
	assert.True(t, restricted)

	// Единственный назначенный мастер уволен: список пуст, но услуга остается закрепленной
	capable, restricted = CapableStaff(staff, []StaffService{{StaffID: 2, ServiceID: 10}}, 10)
	assert.Empty(t, capable)
	assert.True(t, restricted)
	assert.False(t, Staffing{Capable: StaffIDs(capable), Restricted: restricted}.UsesPool())
	assert.True(t, Staffing{}.UsesPool())
}

func TestStaffSchedule_Validate(t *testing.T) {
	valid := StaffSchedule{StaffID: 1, Weekday: Monday, StartTime: "12:00", EndTime: "17:00", IsWorking: true}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.StartTime, inverted.EndTime = "17:00", "12:00"
	assert.ErrorIs(t, inverted.Validate(), ErrValidation)

	badDay := valid
	badDay.Weekday = -1
	assert.ErrorIs(t, badDay.Validate(), ErrValidation)

	// Выходной мастера не требует часов
	dayOff := StaffSchedule{StaffID: 1, Weekday: Sunday}
	assert.NoError(t, dayOff.Validate())
}

func TestScheduledStaff(t *testing.T) {
	schedules := []StaffSchedule{
		{StaffID: 1, Weekday: Monday, StartTime: "12:00", EndTime: "17:00", IsWorking: true},
		{StaffID: 2, Weekday: Monday, IsWorking: false},
	}

	// У мастера 3 нет записи - работает все часы салона
	assert.Equal(t, []int64{3}, ScheduledStaff([]int64{1, 2, 3}, schedules, "10:00", "11:00"))
	assert.Equal(t, []int64{1, 3}, ScheduledStaff([]int64{1, 2, 3}, schedules, "12:00", "13:00"))
	assert.Equal(t, []int64{1, 3}, ScheduledStaff([]int64{1, 2, 3}, schedules, "16:00", "17:00"))

	// Окно выходит за конец смены
	assert.Equal(t, []int64{3}, ScheduledStaff([]int64{1, 2, 3}, schedules, "16:30", "17:30"))

	assert.Equal(t, []int64{1, 2}, ScheduledStaff([]int64{1, 2}, nil, "10:00", "11:00"))

	staffing := Staffing{Capable: []int64{1, 2}, Schedules: schedules}
	assert.Empty(t, staffing.ForWindow("09:00", "10:00"))
	assert.False(t, staffing.UsesPool())
}

func TestFirstFreeStaff(t *testing.T) {
	appointments := []*Appointment{
		{StaffID: ptr.Ptr(int64(1)), StartTime: "10:00", EndTime: "11:00", Status: StatusPending},
		{StaffID: ptr.Ptr(int64(2)), StartTime: "10:00", EndTime: "11:00", Status: StatusCancelled},
	}

	id, ok := FirstFreeStaff([]int64{1, 2}, appointments, "10:30", "11:30")
	require.True(t, ok)
	assert.Equal(t, int64(2), id)

	// Граница не пересекается
	id, ok = FirstFreeStaff([]int64{1}, appointments, "11:00", "12:00")
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	_, ok = FirstFreeStaff([]int64{1}, appointments, "09:30", "10:30")
	assert.False(t, ok)
}

func TestFirstFreePoolUnit(t *testing.T) {
	appointments := []*Appointment{
		{ServiceID: 5, PoolUnit: ptr.Ptr(1), StartTime: "10:00", EndTime: "11:00", Status: StatusConfirmed},
		{ServiceID: 6, PoolUnit: ptr.Ptr(2), StartTime: "10:00", EndTime: "11:00", Status: StatusConfirmed},
	}

	unit, ok := FirstFreePoolUnit(5, 2, appointments, "10:00", "11:00")
	require.True(t, ok)
	assert.Equal(t, 2, unit)

	_, ok = FirstFreePoolUnit(5, 1, appointments, "10:00", "11:00")
	assert.False(t, ok)

	// Размер пула меньше 1 трактуется как 1
	unit, ok = FirstFreePoolUnit(7, 0, appointments, "10:00", "11:00")
	require.True(t, ok)
	assert.Equal(t, 1, unit)
}

func TestWindowStep(t *testing.T) {
	assert.Equal(t, 30, WindowStep(15, 30))
	assert.Equal(t, 60, WindowStep(60, 30))
	assert.Equal(t, 90, WindowStep(75, 30))
}

func TestValidServiceDuration(t *testing.T) {
	assert.True(t, ValidServiceDuration(15))
	assert.True(t, ValidServiceDuration(90))
	assert.False(t, ValidServiceDuration(0))
	assert.False(t, ValidServiceDuration(20))
}

func TestWindowStarted(t *testing.T) {
	loc := time.FixedZone("salon", 3*60*60)
	now := time.Date(2026, 10, 19, 10, 15, 40, 0, loc)
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	assert.True(t, WindowStarted(today, "10:00", now))
	assert.True(t, WindowStarted(today, "10:15", now))
	assert.False(t, WindowStarted(today, "10:30", now))
	assert.False(t, WindowStarted(today.AddDate(0, 0, 1), "09:00", now))
	assert.True(t, WindowStarted(today.AddDate(0, 0, -1), "18:00", now))
}
