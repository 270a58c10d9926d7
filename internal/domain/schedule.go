package domain

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// StaffSchedule рабочие часы мастера на день недели.
// Отсутствие записи на день означает, что мастер работает все часы салона.
type StaffSchedule struct {
	StaffID   int64
	Weekday   Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsWorking bool
}

// Validate проверяет день недели и start < end для рабочего дня
func (s *StaffSchedule) Validate() error {
	if !s.Weekday.IsValid() {
		return fmt.Errorf("%w: weekday %d out of range", ErrValidation, s.Weekday)
	}
	if !s.IsWorking {
		return nil
	}
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrValidation, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrValidation, err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: start time %s must be before end time %s", ErrValidation, s.StartTime, s.EndTime)
	}
	return nil
}

// Covers проверяет, что мастер работает весь интервал [start, end)
func (s *StaffSchedule) Covers(start, end types.TimeString) bool {
	return s.IsWorking && !start.IsBefore(s.StartTime) && !end.IsAfter(s.EndTime)
}

// ScheduledStaff оставляет из candidates мастеров, чей график на день покрывает [start, end).
// Порядок candidates сохраняется.
func ScheduledStaff(candidates []int64, schedules []StaffSchedule, start, end types.TimeString) []int64 {
	if len(schedules) == 0 {
		return candidates
	}

	byStaff := make(map[int64]StaffSchedule, len(schedules))
	for _, s := range schedules {
		byStaff[s.StaffID] = s
	}

	scheduled := make([]int64, 0, len(candidates))
	for _, id := range candidates {
		if s, ok := byStaff[id]; ok && !s.Covers(start, end) {
			continue
		}
		scheduled = append(scheduled, id)
	}
	return scheduled
}
