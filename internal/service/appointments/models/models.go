package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidDate возвращается при дате не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidRange возвращается, когда dateFrom позже dateTo
	ErrInvalidRange = errors.New("dateFrom must not be after dateTo")
)

// Request модели

// ListAppointmentsRequest фильтры списка записей
type ListAppointmentsRequest struct {
	DateFrom *string `json:"dateFrom,omitempty"` // "2026-10-19"
	DateTo   *string `json:"dateTo,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	var filter domain.AppointmentsFilter

	if r.DateFrom != nil {
		from, err := time.Parse(domain.DateFormat, *r.DateFrom)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.DateFrom = &from
	}
	if r.DateTo != nil {
		to, err := time.Parse(domain.DateFormat, *r.DateTo)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return filter, ErrInvalidRange
	}

	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64            `json:"id"`
	ServiceID       int64            `json:"serviceId"`
	ServiceName     string           `json:"serviceName"`
	StaffID         *int64           `json:"staffId,omitempty"`
	PoolUnit        *int             `json:"poolUnit,omitempty"`
	CustomerName    string           `json:"customerName"`
	CustomerPhone   string           `json:"customerPhone"`
	Date            string           `json:"date"` // "2026-10-19"
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`
	Note            *string          `json:"note,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		ServiceID:       a.ServiceID,
		ServiceName:     a.ServiceName,
		StaffID:         a.StaffID,
		PoolUnit:        a.PoolUnit,
		CustomerName:    a.CustomerName,
		CustomerPhone:   a.CustomerPhone,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Note:            a.Note,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(items []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(items)),
	}

	for _, a := range items {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}
