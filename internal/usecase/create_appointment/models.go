package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Результаты попытки записи для метрик
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

const defaultLockWait = 2 * time.Second

// Request модель запроса на создание записи
type Request struct {
	ServiceID     int64            // ID услуги
	Date          time.Time        // Дата записи (без времени)
	StartTime     types.TimeString // Начало окна
	EndTime       types.TimeString // Конец окна
	StaffID       *int64           // Выбранный мастер (опционально)
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	Note          *string          // Комментарий (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ServiceID       int64
	ServiceName     string
	StaffID         *int64
	CustomerName    string
	CustomerPhone   string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          domain.AppointmentStatus
	Note            *string
	CreatedAt       time.Time
}

// Config настройки записи
type Config struct {
	SharedPool     bool          // общий пул для услуг без мастеров
	SharedPoolSize int           // размер пула на услугу
	LockWait       time.Duration // максимальное ожидание блокировки
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		ServiceID:       a.ServiceID,
		ServiceName:     a.ServiceName,
		StaffID:         a.StaffID,
		CustomerName:    a.CustomerName,
		CustomerPhone:   a.CustomerPhone,
		Date:            a.Date,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
		Note:            a.Note,
		CreatedAt:       a.CreatedAt,
	}
}
