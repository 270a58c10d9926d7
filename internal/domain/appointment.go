package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid проверяет, что статус известен
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// AppointmentAction действие администратора над записью
type AppointmentAction string

const (
	ActionConfirm AppointmentAction = "confirm"
	ActionCancel  AppointmentAction = "cancel"
)

// NextStatus возвращает статус после действия.
// pending -> confirmed | cancelled, confirmed -> cancelled. Остальное запрещено.
func NextStatus(from AppointmentStatus, action AppointmentAction) (AppointmentStatus, bool) {
	switch {
	case from == StatusPending && action == ActionConfirm:
		return StatusConfirmed, true
	case from == StatusPending && action == ActionCancel:
		return StatusCancelled, true
	case from == StatusConfirmed && action == ActionCancel:
		return StatusCancelled, true
	}
	return from, false
}

// Appointment запись клиента на услугу
type Appointment struct {
	ID        int64
	ServiceID int64
	StaffID   *int64 // nil - запись в общий пул услуги
	PoolUnit  *int   // номер единицы пула, только для записей без мастера

	CustomerName  string
	CustomerPhone string

	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Снимок услуги на момент записи
	ServiceName string
	Note        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive запись занимает время (не отменена)
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// Overlaps проверяет пересечение с полуинтервалом [start, end)
func (a *Appointment) Overlaps(start, end types.TimeString) bool {
	return a.StartTime.IsBefore(end) && start.IsBefore(a.EndTime)
}

// Placement описывает, какие единицы мощности может занять новая запись.
// Если StaffIDs не пуст, выбирается первый свободный мастер из списка,
// иначе первая свободная единица общего пула услуги (1..PoolSize).
type Placement struct {
	StaffIDs []int64
	PoolSize int
}

// AppointmentsFilter фильтр списка записей
type AppointmentsFilter struct {
	DateFrom *time.Time         // Начало периода (включительно)
	DateTo   *time.Time         // Конец периода (включительно)
	Status   *AppointmentStatus // Фильтр по статусу
}
