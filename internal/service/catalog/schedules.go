package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

// GetStaffSchedule возвращает недельный график мастера
func (s *Service) GetStaffSchedule(ctx context.Context, staffID int64) (*models.StaffScheduleResponse, error) {
	schedule, err := s.catalogRepo.GetStaffSchedule(ctx, staffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetStaffSchedule: staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("GetStaffSchedule: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetStaffSchedule - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSchedule(staffID, schedule), nil
}

// ReplaceStaffSchedule заменяет недельный график мастера целиком
func (s *Service) ReplaceStaffSchedule(ctx context.Context, staffID int64, req *models.StaffScheduleRequest) (*models.StaffScheduleResponse, error) {
	s.logger.Info("ReplaceStaffSchedule: staff id=%d, days=%d", staffID, len(req.Schedule))

	if _, err := s.getStaff(ctx, "ReplaceStaffSchedule", staffID); err != nil {
		return nil, err
	}

	schedule := req.ToDomainSchedule(staffID)
	if err := validateSchedule(schedule); err != nil {
		s.logger.Warn("ReplaceStaffSchedule: validation failed: %v", err)
		return nil, err
	}
	sort.Slice(schedule, func(i, j int) bool { return schedule[i].Weekday < schedule[j].Weekday })

	if err := s.catalogRepo.ReplaceStaffSchedule(ctx, staffID, schedule); err != nil {
		s.logger.Error("ReplaceStaffSchedule: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ReplaceStaffSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(staffID, schedule), nil
}
