package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

// ListStaff возвращает мастеров; отключенных только по запросу
func (s *Service) ListStaff(ctx context.Context, includeInactive bool) (*models.StaffListResponse, error) {
	staff, err := s.catalogRepo.ListStaff(ctx, includeInactive)
	if err != nil {
		s.logger.Error("ListStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainStaffList(staff), nil
}

// GetStaff получает мастера по ID
func (s *Service) GetStaff(ctx context.Context, id int64) (*models.StaffResponse, error) {
	staff, err := s.getStaff(ctx, "GetStaff", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainStaff(staff), nil
}

// CreateStaff создает мастера
func (s *Service) CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("CreateStaff: creating staff name=%q", req.Name)

	staff := req.ToDomainStaff()
	if err := validateStaff(staff); err != nil {
		s.logger.Warn("CreateStaff: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateStaff(ctx, staff)
	if err != nil {
		s.logger.Error("CreateStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: successfully created staff id=%d", created.ID)
	return models.FromDomainStaff(created), nil
}

// UpdateStaff частично обновляет мастера
func (s *Service) UpdateStaff(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("UpdateStaff: updating staff id=%d", id)

	staff, err := s.getStaff(ctx, "UpdateStaff", id)
	if err != nil {
		return nil, err
	}

	req.Apply(staff)
	if err := validateStaff(staff); err != nil {
		s.logger.Warn("UpdateStaff: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.catalogRepo.UpdateStaff(ctx, staff)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("UpdateStaff: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStaff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaff(updated), nil
}

// DeleteStaff отключает мастера. История записей сохраняется.
func (s *Service) DeleteStaff(ctx context.Context, id int64) error {
	s.logger.Info("DeleteStaff: deactivating staff id=%d", id)

	if err := s.catalogRepo.SetStaffActive(ctx, id, false); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("DeleteStaff: staff id=%d not found", id)
			return ErrStaffNotFound
		}
		s.logger.Error("DeleteStaff: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteStaff - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) getStaff(ctx context.Context, op string, id int64) (*domain.Staff, error) {
	staff, err := s.catalogRepo.GetStaffByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: staff id=%d not found", op, id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: repository error for staff id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return staff, nil
}
