package transition_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/transition_appointment"
)

// TransitionResponse HTTP response model
type TransitionResponse struct {
	ID             int64  `json:"id"`
	ServiceID      int64  `json:"serviceId"`
	ServiceName    string `json:"serviceName"`
	StaffID        *int64 `json:"staffId,omitempty"`
	CustomerName   string `json:"customerName"`
	CustomerPhone  string `json:"customerPhone"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
	UpdatedAt      string `json:"updatedAt"`
	ChangedBy      string `json:"changedBy"`
}

// TransitionErrorResponse ответ 409 с текущим статусом записи и отклоненным действием
type TransitionErrorResponse struct {
	Error         string `json:"error"`
	CurrentStatus string `json:"currentStatus"`
	Action        string `json:"action"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionAppointment.Response) *TransitionResponse {
	return &TransitionResponse{
		ID:             resp.ID,
		ServiceID:      resp.ServiceID,
		ServiceName:    resp.ServiceName,
		StaffID:        resp.StaffID,
		CustomerName:   resp.CustomerName,
		CustomerPhone:  resp.CustomerPhone,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		PreviousStatus: string(resp.PreviousStatus),
		Status:         string(resp.Status),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
		ChangedBy:      resp.ChangedBy,
	}
}
