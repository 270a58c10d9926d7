package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar/models"
)

// Service сервис для управления часами работы и выходными
type Service struct {
	calendarRepo CalendarRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(calendarRepo CalendarRepository, logger Logger) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// ListBusinessHours возвращает расписание по дням недели
func (s *Service) ListBusinessHours(ctx context.Context) (*models.BusinessHoursListResponse, error) {
	hours, err := s.calendarRepo.ListBusinessHours(ctx)
	if err != nil {
		s.logger.Error("ListBusinessHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBusinessHours - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBusinessHours(hours), nil
}

// ReplaceBusinessHours заменяет расписание целиком. Дни, которых нет в запросе, становятся выходными.
func (s *Service) ReplaceBusinessHours(ctx context.Context, req *models.ReplaceBusinessHoursRequest) (*models.BusinessHoursListResponse, error) {
	s.logger.Info("ReplaceBusinessHours: replacing schedule with %d days", len(req.Hours))

	hours := make([]*domain.BusinessHours, 0, len(req.Hours))
	seen := make(map[domain.Weekday]struct{}, len(req.Hours))

	for _, item := range req.Hours {
		h := item.ToDomain()
		if err := h.Validate(); err != nil {
			s.logger.Warn("ReplaceBusinessHours: validation failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, ok := seen[h.Weekday]; ok {
			s.logger.Warn("ReplaceBusinessHours: weekday %d specified twice", h.Weekday)
			return nil, fmt.Errorf("%w: %d", ErrDuplicateWeekday, h.Weekday)
		}
		seen[h.Weekday] = struct{}{}
		hours = append(hours, h)
	}

	if err := s.calendarRepo.ReplaceBusinessHours(ctx, hours); err != nil {
		s.logger.Error("ReplaceBusinessHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ReplaceBusinessHours - repository error: %v", ErrInternal, err)
	}

	return s.ListBusinessHours(ctx)
}

// ListHolidays возвращает выходные за период (границы включительно)
func (s *Service) ListHolidays(ctx context.Context, req *models.ListHolidaysRequest) (*models.HolidayListResponse, error) {
	from, err := parseOptionalDate(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return nil, err
	}

	holidays, err := s.calendarRepo.GetHolidays(ctx, from, to)
	if err != nil {
		s.logger.Error("ListHolidays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListHolidays - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainHolidays(holidays), nil
}

// ReplaceHolidays заменяет список выходных целиком
func (s *Service) ReplaceHolidays(ctx context.Context, req *models.ReplaceHolidaysRequest) (*models.HolidayListResponse, error) {
	s.logger.Info("ReplaceHolidays: replacing %d holidays", len(req.Holidays))

	holidays := make([]*domain.Holiday, 0, len(req.Holidays))
	seen := make(map[string]struct{}, len(req.Holidays))

	for _, item := range req.Holidays {
		date, err := time.Parse(domain.DateFormat, strings.TrimSpace(item.Date))
		if err != nil {
			s.logger.Warn("ReplaceHolidays: invalid date %q", item.Date)
			return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, item.Date)
		}
		key := date.Format(domain.DateFormat)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHoliday, key)
		}
		seen[key] = struct{}{}
		holidays = append(holidays, &domain.Holiday{Date: date, Reason: strings.TrimSpace(item.Reason)})
	}

	if err := s.calendarRepo.ReplaceHolidays(ctx, holidays); err != nil {
		s.logger.Error("ReplaceHolidays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ReplaceHolidays - repository error: %v", ErrInternal, err)
	}

	return s.ListHolidays(ctx, &models.ListHolidaysRequest{})
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *value)
	}
	return &date, nil
}
