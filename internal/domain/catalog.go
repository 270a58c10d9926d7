package domain

import "time"

// Service услуга салона
type Service struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           *float64 // nil или 0 - бесплатно
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Staff мастер
type Staff struct {
	ID        int64
	Name      string
	Phone     string
	Email     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StaffService назначение мастера на услугу
type StaffService struct {
	StaffID   int64
	ServiceID int64
}

// ValidServiceDuration длительность кратна 15 минутам и не меньше 15
func ValidServiceDuration(minutes int) bool {
	return minutes >= MinServiceDurationMinutes && minutes%ServiceDurationStepMinutes == 0
}
