package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/locker"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// UseCase use case для создания записи
type UseCase struct {
	calendarRepo    CalendarRepository
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	locker          Locker
	metrics         MetricsRecorder
	config          Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	calendarRepo CalendarRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	locker Locker,
	metrics MetricsRecorder,
	config Config,
	location *time.Location,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if config.LockWait <= 0 {
		config.LockWait = defaultLockWait
	}
	if config.SharedPoolSize < 1 {
		config.SharedPoolSize = domain.DefaultSharedPoolSize
	}

	return &UseCase{
		calendarRepo:    calendarRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		locker:          locker,
		metrics:         metrics,
		config:          config,
		timeProvider:    &RealTimeProvider{Location: location},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		uc.metrics.RecordBookingOutcome(outcomeOf(err))
	}()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("CreateAppointment: service=%d, date=%s, time=%s-%s",
		req.ServiceID, date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 2. Услуга существует, активна и длительность совпадает
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	if err := validateDuration(service, req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 3. Календарь на дату
	holidays, err := uc.calendarRepo.GetHolidays(ctx, &date, &date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}
	hours, err := uc.calendarRepo.GetBusinessHours(ctx, domain.WeekdayOf(date))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Error("CreateAppointment: failed to get business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}

	// 4. Интервал совпадает с окном сетки
	if hours != nil {
		if err := validateAlignment(hours, service.DurationMinutes, req.StartTime, req.EndTime); err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return nil, err
		}
	}

	// 5. Салон открыт, дата и окно не прошли
	if len(holidays) > 0 || hours == nil || !hours.Contains(req.StartTime, req.EndTime) {
		uc.logger.Warn("CreateAppointment: salon is closed on %s %s-%s",
			date.Format(domain.DateFormat), req.StartTime, req.EndTime)
		return nil, ErrClosedDay
	}
	if err := validateTiming(date, req.StartTime, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 6. Контакты клиента
	customerName, customerPhone, err := normalizeCustomer(req.CustomerName, req.CustomerPhone)
	if err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 7. Кто может выполнить услугу в это окно
	staffing, err := uc.staffing(ctx, service.ID, hours.Weekday)
	if err != nil {
		return nil, err
	}
	scheduled := staffing.ForWindow(req.StartTime, req.EndTime)

	if req.StaffID != nil {
		if err := uc.checkPinnedStaff(ctx, *req.StaffID, staffing.Capable, scheduled); err != nil {
			return nil, err
		}
	}

	// 8. Размещение: выбранный мастер, любой работающий мастер или общий пул
	placement, ok := uc.placement(req.StaffID, staffing, scheduled)
	if !ok {
		uc.logger.Warn("CreateAppointment: no capacity for service id=%d", service.ID)
		return nil, fmt.Errorf("%w: no staff can perform service %d", ErrSlotNoLongerAvailable, service.ID)
	}

	// 9. Блокировки с ограниченным ожиданием
	unlock, err := uc.acquire(ctx, lockKeys(date, service.ID, placement))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// 10. Атомарная проверка пересечений и вставка
	appointment := &domain.Appointment{
		ServiceID:       service.ID,
		CustomerName:    customerName,
		CustomerPhone:   customerPhone,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: service.DurationMinutes,
		Status:          domain.StatusPending,
		ServiceName:     service.Name,
		Note:            req.Note,
	}

	created, err := uc.appointmentRepo.InsertAppointmentIfNoOverlap(ctx, appointment, placement)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNoLongerAvailable) {
			uc.logger.Warn("CreateAppointment: slot %s %s-%s is taken", date.Format(domain.DateFormat), req.StartTime, req.EndTime)
			return nil, fmt.Errorf("%w: %v", ErrSlotNoLongerAvailable, err)
		}
		uc.logger.Error("CreateAppointment: failed to insert appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to insert appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, staff=%v, date=%s, time=%s-%s",
		created.ID, ptr.Value(created.StaffID), date.Format(domain.DateFormat), created.StartTime, created.EndTime)

	return toResponse(created), nil
}

func (uc *UseCase) staffing(ctx context.Context, serviceID int64, weekday domain.Weekday) (domain.Staffing, error) {
	staff, err := uc.catalogRepo.ListStaff(ctx, false)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list staff: %v", err)
		return domain.Staffing{}, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}
	assignments, err := uc.catalogRepo.GetStaffServiceAssignments(ctx, serviceID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get assignments for service id=%d: %v", serviceID, err)
		return domain.Staffing{}, fmt.Errorf("%w: failed to get assignments: %v", ErrInternal, err)
	}
	schedules, err := uc.catalogRepo.GetStaffSchedules(ctx, weekday)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get staff schedules: %v", err)
		return domain.Staffing{}, fmt.Errorf("%w: failed to get staff schedules: %v", ErrInternal, err)
	}

	capable, restricted := domain.CapableStaff(staff, assignments, serviceID)
	return domain.Staffing{
		Capable:    domain.StaffIDs(capable),
		Restricted: restricted,
		Schedules:  schedules,
	}, nil
}

func (uc *UseCase) checkPinnedStaff(ctx context.Context, staffID int64, capable, scheduled []int64) error {
	staff, err := uc.catalogRepo.GetStaffByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", staffID)
			return fmt.Errorf("%w: staff %d not found", ErrStaffNotAvailable, staffID)
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive || !slices.Contains(capable, staffID) {
		uc.logger.Warn("CreateAppointment: staff id=%d is inactive or not capable", staffID)
		return fmt.Errorf("%w: staff %d", ErrStaffNotAvailable, staffID)
	}
	if !slices.Contains(scheduled, staffID) {
		uc.logger.Warn("CreateAppointment: staff id=%d does not work at this time", staffID)
		return fmt.Errorf("%w: staff %d is off schedule", ErrStaffNotAvailable, staffID)
	}
	return nil
}

// placement выбирает, кем может быть выполнена запись. Услуга с мастерами, у которых
// окно вне графика, недоступна; пул только для услуг без мастеров и назначений.
func (uc *UseCase) placement(pinned *int64, staffing domain.Staffing, scheduled []int64) (domain.Placement, bool) {
	switch {
	case pinned != nil:
		return domain.Placement{StaffIDs: []int64{*pinned}}, true
	case len(scheduled) > 0:
		return domain.Placement{StaffIDs: scheduled}, true
	case staffing.UsesPool() && uc.config.SharedPool:
		return domain.Placement{PoolSize: uc.config.SharedPoolSize}, true
	default:
		return domain.Placement{}, false
	}
}

// acquire захватывает все ключи в пределах общего бюджета ожидания
func (uc *UseCase) acquire(ctx context.Context, keys []string) (locker.Unlock, error) {
	deadline := time.Now().Add(uc.config.LockWait)
	unlocks := make([]locker.Unlock, 0, len(keys))

	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, key := range keys {
		unlock, err := uc.locker.Acquire(ctx, key, time.Until(deadline))
		if err != nil {
			release()
			if errors.Is(err, locker.ErrLockTimeout) {
				uc.logger.Warn("CreateAppointment: lock wait timeout on %s", key)
				return nil, fmt.Errorf("%w: lock wait timeout", ErrSlotNoLongerAvailable)
			}
			uc.logger.Error("CreateAppointment: failed to acquire lock %s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
		}
		unlocks = append(unlocks, unlock)
	}

	return release, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case errors.Is(err, domain.ErrSlotNoLongerAvailable):
		return OutcomeConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrClosedDay):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
