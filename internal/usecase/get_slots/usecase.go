package get_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	calendarRepo    CalendarRepository
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	pool            PoolConfig
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendarRepo CalendarRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	pool PoolConfig,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarRepo:    calendarRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		pool:            pool,
		timeProvider:    &RealTimeProvider{Location: location},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetSlots: service=%d, date=%s", req.ServiceID, date.Format(domain.DateFormat))

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(date, now); err != nil {
		uc.logger.Warn("GetSlots: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	response := &Response{
		Date:        date,
		ServiceID:   service.ID,
		ServiceName: service.Name,
		Slots:       []domain.Slot{},
	}

	// 4. Выходной день
	holidays, err := uc.calendarRepo.GetHolidays(ctx, &date, &date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}
	if len(holidays) > 0 {
		uc.logger.Info("GetSlots: %s is a holiday", date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Часы работы на день недели
	hours, err := uc.calendarRepo.GetBusinessHours(ctx, domain.WeekdayOf(date))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Info("GetSlots: no business hours for %s", date.Format(domain.DateFormat))
			return response, nil
		}
		uc.logger.Error("GetSlots: failed to get business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}

	// 6. Мастера, способные выполнить услугу
	staff, err := uc.catalogRepo.ListStaff(ctx, false)
	if err != nil {
		uc.logger.Error("GetSlots: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}
	assignments, err := uc.catalogRepo.GetStaffServiceAssignments(ctx, service.ID)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get assignments for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to get assignments: %v", ErrInternal, err)
	}
	schedules, err := uc.catalogRepo.GetStaffSchedules(ctx, hours.Weekday)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get staff schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff schedules: %v", ErrInternal, err)
	}
	capable, restricted := domain.CapableStaff(staff, assignments, service.ID)
	staffing := domain.Staffing{
		Capable:    domain.StaffIDs(capable),
		Restricted: restricted,
		Schedules:  schedules,
	}

	// 7. Записи на дату
	appointments, err := uc.appointmentRepo.GetAppointmentsForDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Окна и их доступность
	windows := hours.Windows(service.DurationMinutes)
	response.Slots = buildSlots(windows, service, staffing, uc.pool, appointments, date, now)

	uc.logger.Info("GetSlots: generated %d slots for service=%d, date=%s, capable staff=%d, restricted=%t",
		len(response.Slots), service.ID, date.Format(domain.DateFormat), len(staffing.Capable), restricted)

	return response, nil
}
