package staff

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

type CatalogService interface {
	ListStaff(ctx context.Context, includeInactive bool) (*models.StaffListResponse, error)
	GetStaff(ctx context.Context, id int64) (*models.StaffResponse, error)
	CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error)
	UpdateStaff(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error)
	DeleteStaff(ctx context.Context, id int64) error
	GetStaffServices(ctx context.Context, staffID int64) (*models.StaffServicesResponse, error)
	ReplaceStaffServices(ctx context.Context, staffID int64, req *models.StaffServicesRequest) (*models.StaffServicesResponse, error)
	GetStaffSchedule(ctx context.Context, staffID int64) (*models.StaffScheduleResponse, error)
	ReplaceStaffSchedule(ctx context.Context, staffID int64, req *models.StaffScheduleRequest) (*models.StaffScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
