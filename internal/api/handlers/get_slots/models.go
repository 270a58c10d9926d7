package get_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date        string         `json:"date"`
	ServiceID   int64          `json:"serviceId"`
	ServiceName string         `json:"serviceName"`
	Slots       []SlotResponse `json:"slots"`
}

// SlotResponse окно для записи
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Available       bool   `json:"available"`
	StaffID         *int64 `json:"staffId,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(serviceID int64, dateStr string) (*getSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSlots.Request{
		Date:      date,
		ServiceID: serviceID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.Start.String(),
			EndTime:         s.End.String(),
			Available:       s.Available,
			StaffID:         s.StaffID,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &SlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Slots:       slots,
	}
}
