package transition_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// maxAttempts число попыток условного обновления при гонке
const maxAttempts = 3

// Request модель запроса на смену статуса
type Request struct {
	Credential    string                   // Bearer токен администратора
	AppointmentID int64                    // ID записи
	Action        domain.AppointmentAction // confirm или cancel
}

// Response модель ответа с обновленной записью
type Response struct {
	ID             int64
	ServiceID      int64
	ServiceName    string
	StaffID        *int64
	CustomerName   string
	CustomerPhone  string
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	PreviousStatus domain.AppointmentStatus
	Status         domain.AppointmentStatus
	UpdatedAt      time.Time
	ChangedBy      string
}
