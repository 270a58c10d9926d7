package settings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar/models"
)

type CalendarService interface {
	ListBusinessHours(ctx context.Context) (*models.BusinessHoursListResponse, error)
	ReplaceBusinessHours(ctx context.Context, req *models.ReplaceBusinessHoursRequest) (*models.BusinessHoursListResponse, error)
	ListHolidays(ctx context.Context, req *models.ListHolidaysRequest) (*models.HolidayListResponse, error)
	ReplaceHolidays(ctx context.Context, req *models.ReplaceHolidaysRequest) (*models.HolidayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
