package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository интерфейс реестра услуг и мастеров
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, includeInactive bool) ([]*domain.Service, error)
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	SetServiceActive(ctx context.Context, id int64, active bool) error

	GetStaffByID(ctx context.Context, id int64) (*domain.Staff, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]*domain.Staff, error)
	CreateStaff(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	UpdateStaff(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	SetStaffActive(ctx context.Context, id int64, active bool) error

	GetStaffServices(ctx context.Context, staffID int64) ([]int64, error)
	ReplaceStaffServices(ctx context.Context, staffID int64, serviceIDs []int64) error

	GetStaffSchedule(ctx context.Context, staffID int64) ([]domain.StaffSchedule, error)
	ReplaceStaffSchedule(ctx context.Context, staffID int64, schedule []domain.StaffSchedule) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
