package transition_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UseCase use case для подтверждения и отмены записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	authorizer      Authorizer
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, authorizer Authorizer, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		authorizer:      authorizer,
		logger:          logger,
	}
}

// Execute выполняет переход статуса записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка прав администратора
	principal, err := uc.authorizer.RequireAdmin(ctx, req.Credential)
	if err != nil {
		uc.logger.Warn("TransitionAppointment: unauthorized %s on id=%d: %v", req.Action, req.AppointmentID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	uc.logger.Info("TransitionAppointment: id=%d, action=%s, by=%s", req.AppointmentID, req.Action, principal.Subject)

	// 3. Условное обновление; при гонке перечитываем текущий статус
	for attempt := 0; attempt < maxAttempts; attempt++ {
		current, err := uc.getAppointment(ctx, req.AppointmentID)
		if err != nil {
			return nil, err
		}

		next, ok := domain.NextStatus(current.Status, req.Action)
		if !ok {
			uc.logger.Warn("TransitionAppointment: cannot %s appointment id=%d in status %s",
				req.Action, current.ID, current.Status)
			return nil, &domain.TransitionError{From: current.Status, Action: req.Action}
		}

		updated, err := uc.appointmentRepo.UpdateAppointmentStatus(ctx, current.ID, current.Status, next)
		if err != nil {
			uc.logger.Error("TransitionAppointment: failed to update appointment id=%d: %v", current.ID, err)
			return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		if !updated {
			uc.logger.Warn("TransitionAppointment: appointment id=%d changed concurrently, retrying", current.ID)
			continue
		}

		result, err := uc.getAppointment(ctx, current.ID)
		if err != nil {
			return nil, err
		}

		uc.logger.Info("TransitionAppointment: appointment id=%d %s -> %s", result.ID, current.Status, result.Status)

		return &Response{
			ID:             result.ID,
			ServiceID:      result.ServiceID,
			ServiceName:    result.ServiceName,
			StaffID:        result.StaffID,
			CustomerName:   result.CustomerName,
			CustomerPhone:  result.CustomerPhone,
			Date:           result.Date,
			StartTime:      result.StartTime,
			EndTime:        result.EndTime,
			PreviousStatus: current.Status,
			Status:         result.Status,
			UpdatedAt:      result.UpdatedAt,
			ChangedBy:      principal.Subject,
		}, nil
	}

	// Попытки исчерпаны: сообщаем о статусе, который видим сейчас
	current, err := uc.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	uc.logger.Warn("TransitionAppointment: gave up on appointment id=%d in status %s", current.ID, current.Status)
	return nil, &domain.TransitionError{From: current.Status, Action: req.Action}
}

func (uc *UseCase) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetAppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("TransitionAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("TransitionAppointment: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}
	return appointment, nil
}
