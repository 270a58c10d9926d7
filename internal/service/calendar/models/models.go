package models

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BusinessHours часы работы на день недели (0 - понедельник)
type BusinessHours struct {
	Weekday                int              `json:"weekday"`
	OpenTime               types.TimeString `json:"openTime"`  // "09:00"
	CloseTime              types.TimeString `json:"closeTime"` // "18:00"
	SlotGranularityMinutes int              `json:"slotGranularityMinutes,omitempty"`
}

// Holiday выходной день
type Holiday struct {
	Date   string `json:"date"` // "2026-12-31"
	Reason string `json:"reason"`
}

// Request модели

// ReplaceBusinessHoursRequest полная замена расписания
type ReplaceBusinessHoursRequest struct {
	Hours []BusinessHours `json:"hours"`
}

// ListHolidaysRequest фильтр выходных по периоду
type ListHolidaysRequest struct {
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
}

// ReplaceHolidaysRequest полная замена списка выходных
type ReplaceHolidaysRequest struct {
	Holidays []Holiday `json:"holidays"`
}

// Response модели

// BusinessHoursListResponse расписание по дням недели
type BusinessHoursListResponse struct {
	Hours []BusinessHours `json:"hours"`
}

// HolidayListResponse список выходных
type HolidayListResponse struct {
	Holidays []Holiday `json:"holidays"`
}

// Методы конвертации

// ToDomain конвертирует DTO в domain модель, подставляя шаг сетки по умолчанию
func (h BusinessHours) ToDomain() *domain.BusinessHours {
	granularity := h.SlotGranularityMinutes
	if granularity == 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}
	return &domain.BusinessHours{
		Weekday:                domain.Weekday(h.Weekday),
		OpenTime:               h.OpenTime,
		CloseTime:              h.CloseTime,
		SlotGranularityMinutes: granularity,
	}
}

// FromDomainBusinessHours конвертирует список domain моделей в DTO
func FromDomainBusinessHours(hours []*domain.BusinessHours) *BusinessHoursListResponse {
	resp := &BusinessHoursListResponse{Hours: make([]BusinessHours, 0, len(hours))}
	for _, h := range hours {
		resp.Hours = append(resp.Hours, BusinessHours{
			Weekday:                int(h.Weekday),
			OpenTime:               h.OpenTime,
			CloseTime:              h.CloseTime,
			SlotGranularityMinutes: h.SlotGranularityMinutes,
		})
	}
	return resp
}

// FromDomainHolidays конвертирует список domain моделей в DTO
func FromDomainHolidays(holidays []*domain.Holiday) *HolidayListResponse {
	resp := &HolidayListResponse{Holidays: make([]Holiday, 0, len(holidays))}
	for _, h := range holidays {
		resp.Holidays = append(resp.Holidays, Holiday{
			Date:   h.Date.Format(domain.DateFormat),
			Reason: h.Reason,
		})
	}
	return resp
}
