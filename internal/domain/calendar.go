package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Weekday день недели: 0 - понедельник, 6 - воскресенье
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayOf возвращает день недели даты
func WeekdayOf(date time.Time) Weekday {
	return Weekday((int(date.Weekday()) + 6) % 7)
}

// IsValid проверяет диапазон 0..6
func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// BusinessHours часы работы на день недели
type BusinessHours struct {
	Weekday                Weekday
	OpenTime               types.TimeString
	CloseTime              types.TimeString
	SlotGranularityMinutes int
}

// Validate проверяет open < close, шаг > 0 и то, что шаг делит рабочий день без остатка
func (h *BusinessHours) Validate() error {
	if !h.Weekday.IsValid() {
		return fmt.Errorf("%w: weekday %d out of range", ErrValidation, h.Weekday)
	}
	if err := h.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrValidation, err)
	}
	if err := h.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrValidation, err)
	}
	if !h.OpenTime.IsBefore(h.CloseTime) {
		return fmt.Errorf("%w: open time %s must be before close time %s", ErrValidation, h.OpenTime, h.CloseTime)
	}
	if h.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("%w: slot granularity must be positive", ErrValidation)
	}
	if h.OpenTime.MinutesUntil(h.CloseTime)%h.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: slot granularity %d does not divide %s-%s",
			ErrValidation, h.SlotGranularityMinutes, h.OpenTime, h.CloseTime)
	}
	return nil
}

// Contains проверяет, что [start, end) лежит внутри часов работы
func (h *BusinessHours) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(h.OpenTime) && !end.IsAfter(h.CloseTime) && start.IsBefore(end)
}

// Windows перечисляет окна длительностью duration от открытия. Окна идут
// подряд и начинаются на границах сетки SlotGranularityMinutes: шаг равен
// длительности, округленной вверх до кратного шагу сетки. Окно,
// заканчивающееся после закрытия, отбрасывается.
func (h *BusinessHours) Windows(duration int) []TimeRange {
	if duration <= 0 || h.SlotGranularityMinutes <= 0 {
		return nil
	}

	open, closeAt := h.OpenTime.Minutes(), h.CloseTime.Minutes()
	if open < 0 || closeAt < 0 {
		return nil
	}

	step := WindowStep(duration, h.SlotGranularityMinutes)

	var windows []TimeRange
	for start := open; start+duration <= closeAt; start += step {
		from, err := types.FromMinutes(start)
		if err != nil {
			break
		}
		to, err := types.FromMinutes(start + duration)
		if err != nil {
			break
		}
		windows = append(windows, TimeRange{Start: from, End: to})
	}
	return windows
}

// WindowStep длительность, округленная вверх до кратного granularity
func WindowStep(duration, granularity int) int {
	steps := (duration + granularity - 1) / granularity
	return steps * granularity
}

// TimeRange полуинтервал [Start, End) внутри дня
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Holiday выходной день
type Holiday struct {
	Date   time.Time
	Reason string
}

// DateOnly отбрасывает время, сохраняя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WindowStarted проверяет, что окно с началом start в дату date уже началось к моменту now.
// now должен быть в часовом поясе салона.
func WindowStarted(date time.Time, start types.TimeString, now time.Time) bool {
	day, today := DateOnly(date), DateOnly(now)
	if day.Before(today) {
		return true
	}
	if day.After(today) {
		return false
	}
	return !start.IsAfter(types.NewTimeString(now))
}
