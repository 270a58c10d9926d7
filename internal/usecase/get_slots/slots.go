package get_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// buildSlots вычисляет доступность каждого окна.
// Если у услуги есть мастера, окно доступно только при свободном мастере, чей график
// покрывает окно. Общий пул используется, только когда услуга ни за кем не закреплена.
func buildSlots(
	windows []domain.TimeRange,
	service *domain.Service,
	staffing domain.Staffing,
	pool PoolConfig,
	appointments []*domain.Appointment,
	date time.Time,
	now time.Time,
) []domain.Slot {
	slots := make([]domain.Slot, 0, len(windows))

	for _, w := range windows {
		slot := domain.Slot{
			Start:           w.Start,
			End:             w.End,
			ServiceID:       service.ID,
			DurationMinutes: service.DurationMinutes,
		}

		switch {
		case domain.WindowStarted(date, w.Start, now):
			// прошедшее окно остается в выдаче, но недоступно
		case len(staffing.Capable) > 0:
			if staffID, ok := domain.FirstFreeStaff(staffing.ForWindow(w.Start, w.End), appointments, w.Start, w.End); ok {
				slot.Available = true
				slot.StaffID = ptr.Ptr(staffID)
			}
		case staffing.UsesPool() && pool.Enabled:
			_, slot.Available = domain.FirstFreePoolUnit(service.ID, pool.Size, appointments, w.Start, w.End)
		}

		slots = append(slots, slot)
	}

	return slots
}
