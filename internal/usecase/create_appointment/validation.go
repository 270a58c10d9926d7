package create_appointment

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateRequest проверяет формат полей запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staff_id must be positive", ErrInvalidInput)
	}
	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}
	return nil
}

// validateDuration сверяет интервал с длительностью услуги
func validateDuration(service *domain.Service, start, end types.TimeString) error {
	if start.MinutesUntil(end) != service.DurationMinutes {
		return fmt.Errorf("%w: %s-%s is not %d minutes", ErrDurationMismatch, start, end, service.DurationMinutes)
	}
	return nil
}

// validateAlignment проверяет, что интервал совпадает с одним из окон дня
func validateAlignment(hours *domain.BusinessHours, duration int, start, end types.TimeString) error {
	for _, w := range hours.Windows(duration) {
		if w.Start.Equal(start) && w.End.Equal(end) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s-%s", ErrSlotMisaligned, start, end)
}

// validateTiming проверяет, что дата и окно еще не прошли
func validateTiming(date time.Time, start types.TimeString, now time.Time) error {
	if domain.DateOnly(date).Before(domain.DateOnly(now)) {
		return fmt.Errorf("%w: %s", ErrDateInPast, date.Format(domain.DateFormat))
	}
	if domain.WindowStarted(date, start, now) {
		return fmt.Errorf("%w: %s", ErrSlotStarted, start)
	}
	return nil
}

// normalizeCustomer обрезает пробелы и проверяет контакты клиента
func normalizeCustomer(name, phone string) (string, string, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return "", "", ErrCustomerRequired
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return "", "", fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}
	if utf8.RuneCountInString(phone) > domain.MaxCustomerPhoneLength {
		return "", "", fmt.Errorf("%w: customer phone is too long", ErrInvalidInput)
	}
	return name, phone, nil
}

// lockKeys ключи блокировок для размещения. Ключи отсортированы,
// чтобы параллельные записи захватывали их в одном порядке.
func lockKeys(date time.Time, serviceID int64, placement domain.Placement) []string {
	day := date.Format(domain.DateFormat)
	if len(placement.StaffIDs) == 0 {
		return []string{fmt.Sprintf("%s:pool:%d", day, serviceID)}
	}

	keys := make([]string, 0, len(placement.StaffIDs))
	for _, id := range placement.StaffIDs {
		keys = append(keys, fmt.Sprintf("%s:staff:%020d", day, id))
	}
	sort.Strings(keys)
	return keys
}
