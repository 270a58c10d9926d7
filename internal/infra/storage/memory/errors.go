package memory

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	ErrServiceNotFound       = fmt.Errorf("memory.store: service not found: %w", domain.ErrNotFound)
	ErrStaffNotFound         = fmt.Errorf("memory.store: staff not found: %w", domain.ErrNotFound)
	ErrAppointmentNotFound   = fmt.Errorf("memory.store: appointment not found: %w", domain.ErrNotFound)
	ErrBusinessHoursNotFound = fmt.Errorf("memory.store: business hours not found: %w", domain.ErrNotFound)
	ErrSlotTaken             = fmt.Errorf("memory.store: overlapping appointment exists: %w", domain.ErrSlotNoLongerAvailable)
)
