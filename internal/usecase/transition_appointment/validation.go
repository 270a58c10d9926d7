package transition_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest проверяет поля запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}
	switch req.Action {
	case domain.ActionConfirm, domain.ActionCancel:
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}
}
