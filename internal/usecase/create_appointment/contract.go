package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/locker"
)

// CalendarRepository интерфейс хранилища часов работы и выходных
type CalendarRepository interface {
	GetBusinessHours(ctx context.Context, weekday domain.Weekday) (*domain.BusinessHours, error)
	GetHolidays(ctx context.Context, from, to *time.Time) ([]*domain.Holiday, error)
}

// CatalogRepository интерфейс реестра услуг и мастеров
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetStaffByID(ctx context.Context, id int64) (*domain.Staff, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]*domain.Staff, error)
	GetStaffServiceAssignments(ctx context.Context, serviceID int64) ([]domain.StaffService, error)
	GetStaffSchedules(ctx context.Context, weekday domain.Weekday) ([]domain.StaffSchedule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// InsertAppointmentIfNoOverlap атомарно выбирает свободного мастера или единицу пула и сохраняет запись
	InsertAppointmentIfNoOverlap(ctx context.Context, appointment *domain.Appointment, placement domain.Placement) (*domain.Appointment, error)
}

// Locker интерфейс блокировок по ключу с ограниченным ожиданием
type Locker interface {
	Acquire(ctx context.Context, key string, wait time.Duration) (locker.Unlock, error)
}

// MetricsRecorder интерфейс для учета результатов записи
type MetricsRecorder interface {
	RecordBookingOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в часовом поясе салона
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}

type nopMetrics struct{}

func (nopMetrics) RecordBookingOutcome(string) {}
