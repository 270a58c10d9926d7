package calendar

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("calendar: invalid input data: %w", domain.ErrValidation)

	// ErrDuplicateWeekday возвращается, когда день недели указан дважды
	ErrDuplicateWeekday = fmt.Errorf("calendar: duplicate weekday: %w", domain.ErrValidation)

	// ErrDuplicateHoliday возвращается, когда дата выходного указана дважды
	ErrDuplicateHoliday = fmt.Errorf("calendar: duplicate holiday date: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar: internal error")
)
