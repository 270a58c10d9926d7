package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes int      `json:"durationMinutes"` // кратно 15
	Price           *float64 `json:"price,omitempty"` // nil или 0 - бесплатно
}

// UpdateServiceRequest запрос на обновление услуги
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
}

// CreateStaffRequest запрос на создание мастера
type CreateStaffRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// UpdateStaffRequest запрос на обновление мастера
type UpdateStaffRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// StaffServicesRequest полный список услуг мастера
type StaffServicesRequest struct {
	ServiceIDs []int64 `json:"serviceIds"`
}

// StaffScheduleEntry рабочие часы мастера на день недели
type StaffScheduleEntry struct {
	Weekday   int              `json:"weekday"` // 0 - понедельник
	StartTime types.TimeString `json:"startTime,omitempty"`
	EndTime   types.TimeString `json:"endTime,omitempty"`
	IsWorking *bool            `json:"isWorking,omitempty"` // по умолчанию true
}

// StaffScheduleRequest полный недельный график мастера.
// Дни без записи мастер работает все часы салона.
type StaffScheduleRequest struct {
	Schedule []StaffScheduleEntry `json:"schedule"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           *float64  `json:"price,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// StaffResponse ответ с данными мастера
type StaffResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StaffListResponse ответ со списком мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// StaffServicesResponse услуги, назначенные мастеру
type StaffServicesResponse struct {
	StaffID    int64   `json:"staffId"`
	ServiceIDs []int64 `json:"serviceIds"`
}

// StaffScheduleResponse недельный график мастера
type StaffScheduleResponse struct {
	StaffID  int64                `json:"staffId"`
	Schedule []StaffScheduleEntry `json:"schedule"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		if item := FromDomainService(s); item != nil {
			resp.Services = append(resp.Services, *item)
		}
	}
	return resp
}

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	if s == nil {
		return nil
	}
	return &StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Email:     s.Email,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainStaffList конвертирует список domain моделей в DTO
func FromDomainStaffList(staff []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{Staff: make([]StaffResponse, 0, len(staff))}
	for _, s := range staff {
		if item := FromDomainStaff(s); item != nil {
			resp.Staff = append(resp.Staff, *item)
		}
	}
	return resp
}

// ToDomainService конвертирует CreateServiceRequest в domain модель
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		IsActive:        true,
	}
}

// Apply применяет переданные поля к услуге
func (r *UpdateServiceRequest) Apply(s *domain.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Description != nil {
		s.Description = r.Description
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.Price != nil {
		s.Price = r.Price
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// ToDomainStaff конвертирует CreateStaffRequest в domain модель
func (r *CreateStaffRequest) ToDomainStaff() *domain.Staff {
	return &domain.Staff{
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		IsActive: true,
	}
}

// Apply применяет переданные поля к мастеру
func (r *UpdateStaffRequest) Apply(s *domain.Staff) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Phone != nil {
		s.Phone = *r.Phone
	}
	if r.Email != nil {
		s.Email = r.Email
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// ToDomainSchedule конвертирует запрос в domain модели
func (r *StaffScheduleRequest) ToDomainSchedule(staffID int64) []domain.StaffSchedule {
	result := make([]domain.StaffSchedule, 0, len(r.Schedule))
	for _, e := range r.Schedule {
		day := domain.StaffSchedule{
			StaffID:   staffID,
			Weekday:   domain.Weekday(e.Weekday),
			IsWorking: e.IsWorking == nil || *e.IsWorking,
		}
		if day.IsWorking {
			day.StartTime, day.EndTime = e.StartTime, e.EndTime
		}
		result = append(result, day)
	}
	return result
}

// FromDomainSchedule конвертирует график мастера в DTO
func FromDomainSchedule(staffID int64, schedule []domain.StaffSchedule) *StaffScheduleResponse {
	resp := &StaffScheduleResponse{
		StaffID:  staffID,
		Schedule: make([]StaffScheduleEntry, 0, len(schedule)),
	}
	for _, day := range schedule {
		isWorking := day.IsWorking
		resp.Schedule = append(resp.Schedule, StaffScheduleEntry{
			Weekday:   int(day.Weekday),
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
			IsWorking: &isWorking,
		})
	}
	return resp
}
