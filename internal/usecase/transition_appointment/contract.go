package transition_appointment

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/auth"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetAppointmentByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// UpdateAppointmentStatus меняет статус, только если текущий равен from
	UpdateAppointmentStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (bool, error)
}

// Authorizer интерфейс проверки прав администратора
type Authorizer interface {
	RequireAdmin(ctx context.Context, credential string) (*auth.Principal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
