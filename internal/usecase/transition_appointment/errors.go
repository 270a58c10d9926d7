package transition_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("transition_appointment: invalid input data: %w", domain.ErrValidation)

	// ErrUnauthorized возвращается, когда нет прав администратора
	ErrUnauthorized = fmt.Errorf("transition_appointment: %w", domain.ErrUnauthorized)

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("transition_appointment: appointment not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_appointment: internal error")
)
