package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

// GetStaffServices возвращает услуги, назначенные мастеру
func (s *Service) GetStaffServices(ctx context.Context, staffID int64) (*models.StaffServicesResponse, error) {
	ids, err := s.catalogRepo.GetStaffServices(ctx, staffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetStaffServices: staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("GetStaffServices: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetStaffServices - repository error: %v", ErrInternal, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return &models.StaffServicesResponse{StaffID: staffID, ServiceIDs: ids}, nil
}

// ReplaceStaffServices заменяет список услуг мастера
func (s *Service) ReplaceStaffServices(ctx context.Context, staffID int64, req *models.StaffServicesRequest) (*models.StaffServicesResponse, error) {
	s.logger.Info("ReplaceStaffServices: staff id=%d, services=%v", staffID, req.ServiceIDs)

	if _, err := s.getStaff(ctx, "ReplaceStaffServices", staffID); err != nil {
		return nil, err
	}

	ids := uniqueIDs(req.ServiceIDs)
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
		}
		if _, err := s.catalogRepo.GetServiceByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("ReplaceStaffServices: service id=%d not found", id)
				return nil, fmt.Errorf("%w: %d", ErrUnknownService, id)
			}
			s.logger.Error("ReplaceStaffServices: repository error for service id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: ReplaceStaffServices - repository error: %v", ErrInternal, err)
		}
	}

	if err := s.catalogRepo.ReplaceStaffServices(ctx, staffID, ids); err != nil {
		s.logger.Error("ReplaceStaffServices: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ReplaceStaffServices - repository error: %v", ErrInternal, err)
	}

	return &models.StaffServicesResponse{StaffID: staffID, ServiceIDs: ids}, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
