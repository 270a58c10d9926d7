package catalog

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func validateService(s *domain.Service) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if !domain.ValidServiceDuration(s.DurationMinutes) {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes, at least %d",
			ErrInvalidInput, domain.ServiceDurationStepMinutes, domain.MinServiceDurationMinutes)
	}
	if s.Price != nil && *s.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

func validateStaff(s *domain.Staff) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Phone = strings.TrimSpace(s.Phone)
	if s.Name == "" {
		return fmt.Errorf("%w: staff name is required", ErrInvalidInput)
	}
	if s.Phone == "" {
		return fmt.Errorf("%w: staff phone is required", ErrInvalidInput)
	}
	if len(s.Phone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: staff phone is too long", ErrInvalidInput)
	}
	if s.Email != nil && *s.Email != "" {
		if _, err := mail.ParseAddress(*s.Email); err != nil {
			return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, *s.Email)
		}
	}
	return nil
}

func validateSchedule(schedule []domain.StaffSchedule) error {
	seen := make(map[domain.Weekday]struct{}, len(schedule))
	for i := range schedule {
		if err := schedule[i].Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, ok := seen[schedule[i].Weekday]; ok {
			return fmt.Errorf("%w: weekday %d listed twice", ErrInvalidInput, schedule[i].Weekday)
		}
		seen[schedule[i].Weekday] = struct{}{}
	}
	return nil
}
