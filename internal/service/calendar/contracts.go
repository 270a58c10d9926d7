package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CalendarRepository интерфейс хранилища часов работы и выходных
type CalendarRepository interface {
	ListBusinessHours(ctx context.Context) ([]*domain.BusinessHours, error)
	ReplaceBusinessHours(ctx context.Context, hours []*domain.BusinessHours) error
	GetHolidays(ctx context.Context, from, to *time.Time) ([]*domain.Holiday, error)
	ReplaceHolidays(ctx context.Context, holidays []*domain.Holiday) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
