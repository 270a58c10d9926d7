package domain

import (
	"sort"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CapableStaff возвращает активных мастеров, способных выполнить услугу, по возрастанию ID.
// Если у услуги нет ни одного назначения, её может выполнить любой активный мастер.
// restricted сообщает, что назначения есть: тогда пустой capable значит, что услуга
// сейчас недоступна, а не что она обслуживается общим пулом.
func CapableStaff(staff []*Staff, assignments []StaffService, serviceID int64) (capable []*Staff, restricted bool) {
	assigned := make(map[int64]struct{})
	for _, a := range assignments {
		if a.ServiceID == serviceID {
			assigned[a.StaffID] = struct{}{}
		}
	}

	for _, s := range staff {
		if !s.IsActive {
			continue
		}
		if len(assigned) > 0 {
			if _, ok := assigned[s.ID]; !ok {
				continue
			}
		}
		capable = append(capable, s)
	}

	sort.Slice(capable, func(i, j int) bool { return capable[i].ID < capable[j].ID })
	return capable, len(assigned) > 0
}

// Staffing кто выполняет услугу в конкретный день
type Staffing struct {
	// Capable активные мастера, способные выполнить услугу, по возрастанию ID
	Capable []int64
	// Restricted у услуги есть назначения, общий пул для неё не используется
	Restricted bool
	// Schedules графики мастеров на день недели
	Schedules []StaffSchedule
}

// UsesPool услугу выполняет общий пул: мастеров нет и услуга ни за кем не закреплена
func (s Staffing) UsesPool() bool {
	return len(s.Capable) == 0 && !s.Restricted
}

// ForWindow мастера из Capable, работающие весь интервал [start, end)
func (s Staffing) ForWindow(start, end types.TimeString) []int64 {
	return ScheduledStaff(s.Capable, s.Schedules, start, end)
}

// StaffIDs извлекает ID мастеров
func StaffIDs(staff []*Staff) []int64 {
	ids := make([]int64, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}
	return ids
}

// FirstFreeStaff возвращает первого мастера из candidates без активной записи,
// пересекающей [start, end)
func FirstFreeStaff(candidates []int64, appointments []*Appointment, start, end types.TimeString) (int64, bool) {
	for _, id := range candidates {
		busy := false
		for _, a := range appointments {
			if a.IsActive() && a.StaffID != nil && *a.StaffID == id && a.Overlaps(start, end) {
				busy = true
				break
			}
		}
		if !busy {
			return id, true
		}
	}
	return 0, false
}

// FirstFreePoolUnit возвращает первую свободную единицу общего пула услуги
func FirstFreePoolUnit(serviceID int64, poolSize int, appointments []*Appointment, start, end types.TimeString) (int, bool) {
	if poolSize < 1 {
		poolSize = 1
	}

	busy := make(map[int]struct{})
	for _, a := range appointments {
		if a.IsActive() && a.StaffID == nil && a.ServiceID == serviceID && a.PoolUnit != nil && a.Overlaps(start, end) {
			busy[*a.PoolUnit] = struct{}{}
		}
	}

	for unit := 1; unit <= poolSize; unit++ {
		if _, ok := busy[unit]; !ok {
			return unit, true
		}
	}
	return 0, false
}
