// Package memory реализует все контракты хранилища в памяти процесса.
// Используется в тестах и для локального запуска без PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Store хранилище в памяти. Все операции выполняются под одним мьютексом,
// поэтому проверка пересечений и вставка записи атомарны.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	services      map[int64]*domain.Service
	staff         map[int64]*domain.Staff
	staffServices map[int64]map[int64]struct{} // staffID -> serviceIDs
	schedules     map[int64]map[domain.Weekday]domain.StaffSchedule
	hours         map[domain.Weekday]*domain.BusinessHours
	holidays      map[string]*domain.Holiday
	appointments  map[int64]*domain.Appointment

	nextServiceID     int64
	nextStaffID       int64
	nextAppointmentID int64
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		now:           time.Now,
		services:      make(map[int64]*domain.Service),
		staff:         make(map[int64]*domain.Staff),
		staffServices: make(map[int64]map[int64]struct{}),
		schedules:     make(map[int64]map[domain.Weekday]domain.StaffSchedule),
		hours:         make(map[domain.Weekday]*domain.BusinessHours),
		holidays:      make(map[string]*domain.Holiday),
		appointments:  make(map[int64]*domain.Appointment),
	}
}

// ============================================================
// Calendar
// ============================================================

func (s *Store) GetBusinessHours(_ context.Context, weekday domain.Weekday) (*domain.BusinessHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.hours[weekday]
	if !ok {
		return nil, ErrBusinessHoursNotFound
	}
	cp := *h
	return &cp, nil
}

func (s *Store) ListBusinessHours(_ context.Context) ([]*domain.BusinessHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BusinessHours, 0, len(s.hours))
	for _, h := range s.hours {
		cp := *h
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Weekday < result[j].Weekday })
	return result, nil
}

func (s *Store) ReplaceBusinessHours(_ context.Context, hours []*domain.BusinessHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hours = make(map[domain.Weekday]*domain.BusinessHours, len(hours))
	for _, h := range hours {
		cp := *h
		s.hours[h.Weekday] = &cp
	}
	return nil
}

func (s *Store) GetHolidays(_ context.Context, from, to *time.Time) ([]*domain.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Holiday
	for _, h := range s.holidays {
		if !inRange(h.Date, from, to) {
			continue
		}
		cp := *h
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (s *Store) ReplaceHolidays(_ context.Context, holidays []*domain.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.holidays = make(map[string]*domain.Holiday, len(holidays))
	for _, h := range holidays {
		cp := *h
		cp.Date = domain.DateOnly(h.Date)
		s.holidays[dateKey(cp.Date)] = &cp
	}
	return nil
}

// ============================================================
// Services
// ============================================================

func (s *Store) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

func (s *Store) ListServices(_ context.Context, includeInactive bool) ([]*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Service
	for _, svc := range s.services {
		if !svc.IsActive && !includeInactive {
			continue
		}
		cp := *svc
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) CreateService(_ context.Context, service *domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextServiceID++
	cp := *service
	cp.ID = s.nextServiceID
	cp.CreatedAt = s.now()
	cp.UpdatedAt = cp.CreatedAt
	s.services[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Store) UpdateService(_ context.Context, service *domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.services[service.ID]
	if !ok {
		return nil, ErrServiceNotFound
	}
	cp := *service
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = s.now()
	s.services[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Store) SetServiceActive(_ context.Context, id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return ErrServiceNotFound
	}
	svc.IsActive = active
	svc.UpdatedAt = s.now()
	return nil
}

// ============================================================
// Staff
// ============================================================

func (s *Store) GetStaffByID(_ context.Context, id int64) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.staff[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *Store) ListStaff(_ context.Context, includeInactive bool) ([]*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Staff
	for _, st := range s.staff {
		if !st.IsActive && !includeInactive {
			continue
		}
		cp := *st
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) CreateStaff(_ context.Context, staff *domain.Staff) (*domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextStaffID++
	cp := *staff
	cp.ID = s.nextStaffID
	cp.CreatedAt = s.now()
	cp.UpdatedAt = cp.CreatedAt
	s.staff[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Store) UpdateStaff(_ context.Context, staff *domain.Staff) (*domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.staff[staff.ID]
	if !ok {
		return nil, ErrStaffNotFound
	}
	cp := *staff
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = s.now()
	s.staff[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Store) SetStaffActive(_ context.Context, id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.staff[id]
	if !ok {
		return ErrStaffNotFound
	}
	st.IsActive = active
	st.UpdatedAt = s.now()
	return nil
}

// ============================================================
// Staff <-> Services
// ============================================================

func (s *Store) GetStaffServiceAssignments(_ context.Context, serviceID int64) ([]domain.StaffService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.StaffService
	for staffID, services := range s.staffServices {
		if _, ok := services[serviceID]; ok {
			result = append(result, domain.StaffService{StaffID: staffID, ServiceID: serviceID})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StaffID < result[j].StaffID })
	return result, nil
}

func (s *Store) GetStaffServices(_ context.Context, staffID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.staff[staffID]; !ok {
		return nil, ErrStaffNotFound
	}

	result := make([]int64, 0, len(s.staffServices[staffID]))
	for serviceID := range s.staffServices[staffID] {
		result = append(result, serviceID)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

func (s *Store) ReplaceStaffServices(_ context.Context, staffID int64, serviceIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.staff[staffID]; !ok {
		return ErrStaffNotFound
	}
	for _, id := range serviceIDs {
		if _, ok := s.services[id]; !ok {
			return ErrServiceNotFound
		}
	}

	set := make(map[int64]struct{}, len(serviceIDs))
	for _, id := range serviceIDs {
		set[id] = struct{}{}
	}
	s.staffServices[staffID] = set
	return nil
}

// ============================================================
// Staff schedules
// ============================================================

func (s *Store) GetStaffSchedules(_ context.Context, weekday domain.Weekday) ([]domain.StaffSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.StaffSchedule
	for _, days := range s.schedules {
		if day, ok := days[weekday]; ok {
			result = append(result, day)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StaffID < result[j].StaffID })
	return result, nil
}

func (s *Store) GetStaffSchedule(_ context.Context, staffID int64) ([]domain.StaffSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.staff[staffID]; !ok {
		return nil, ErrStaffNotFound
	}

	result := make([]domain.StaffSchedule, 0, len(s.schedules[staffID]))
	for _, day := range s.schedules[staffID] {
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Weekday < result[j].Weekday })
	return result, nil
}

func (s *Store) ReplaceStaffSchedule(_ context.Context, staffID int64, schedule []domain.StaffSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.staff[staffID]; !ok {
		return ErrStaffNotFound
	}

	days := make(map[domain.Weekday]domain.StaffSchedule, len(schedule))
	for _, day := range schedule {
		day.StaffID = staffID
		days[day.Weekday] = day
	}
	s.schedules[staffID] = days
	return nil
}

// ============================================================
// Appointments
// ============================================================

func (s *Store) GetAppointmentByID(_ context.Context, id int64) (*domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return copyAppointment(a), nil
}

// GetAppointmentsForDate возвращает неотмененные записи на дату
func (s *Store) GetAppointmentsForDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.activeForDate(date), nil
}

func (s *Store) ListAppointments(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Appointment
	for _, a := range s.appointments {
		if !inRange(a.Date, filter.DateFrom, filter.DateTo) {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		result = append(result, copyAppointment(a))
	}
	sortAppointments(result)
	return result, nil
}

// InsertAppointmentIfNoOverlap атомарно выбирает свободную единицу мощности
// и сохраняет запись со статусом pending
func (s *Store) InsertAppointmentIfNoOverlap(_ context.Context, appointment *domain.Appointment, placement domain.Placement) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.activeForDate(appointment.Date)
	cp := copyAppointment(appointment)

	if len(placement.StaffIDs) > 0 {
		staffID, ok := domain.FirstFreeStaff(placement.StaffIDs, existing, cp.StartTime, cp.EndTime)
		if !ok {
			return nil, ErrSlotTaken
		}
		cp.StaffID = &staffID
		cp.PoolUnit = nil
	} else {
		unit, ok := domain.FirstFreePoolUnit(cp.ServiceID, placement.PoolSize, existing, cp.StartTime, cp.EndTime)
		if !ok {
			return nil, ErrSlotTaken
		}
		cp.StaffID = nil
		cp.PoolUnit = &unit
	}

	s.nextAppointmentID++
	cp.ID = s.nextAppointmentID
	cp.Date = domain.DateOnly(cp.Date)
	cp.Status = domain.StatusPending
	cp.CreatedAt = s.now()
	cp.UpdatedAt = cp.CreatedAt
	s.appointments[cp.ID] = cp

	return copyAppointment(cp), nil
}

// UpdateAppointmentStatus меняет статус, только если текущий равен from.
// Возвращает false, если запись не найдена или статус уже другой.
func (s *Store) UpdateAppointmentStatus(_ context.Context, id int64, from, to domain.AppointmentStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok || a.Status != from {
		return false, nil
	}
	a.Status = to
	a.UpdatedAt = s.now()
	return true, nil
}

func (s *Store) activeForDate(date time.Time) []*domain.Appointment {
	key := dateKey(date)

	var result []*domain.Appointment
	for _, a := range s.appointments {
		if a.IsActive() && dateKey(a.Date) == key {
			result = append(result, copyAppointment(a))
		}
	}
	sortAppointments(result)
	return result
}

func copyAppointment(a *domain.Appointment) *domain.Appointment {
	cp := *a
	if a.StaffID != nil {
		id := *a.StaffID
		cp.StaffID = &id
	}
	if a.PoolUnit != nil {
		unit := *a.PoolUnit
		cp.PoolUnit = &unit
	}
	if a.Note != nil {
		note := *a.Note
		cp.Note = &note
	}
	return &cp
}

func sortAppointments(items []*domain.Appointment) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		if items[i].StartTime != items[j].StartTime {
			return items[i].StartTime.IsBefore(items[j].StartTime)
		}
		return items[i].ID < items[j].ID
	})
}

func dateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func inRange(date time.Time, from, to *time.Time) bool {
	key := dateKey(date)
	if from != nil && key < dateKey(*from) {
		return false
	}
	if to != nil && key > dateKey(*to) {
		return false
	}
	return true
}
