package get_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_slots: invalid input data: %w", domain.ErrValidation)

	// ErrDateInPast возвращается, когда дата раньше текущей
	ErrDateInPast = fmt.Errorf("get_slots: date is in the past: %w", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = fmt.Errorf("get_slots: service not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slots: internal error")
)
