package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// Slot окно для записи на услугу
type Slot struct {
	Start           types.TimeString
	End             types.TimeString
	Available       bool
	StaffID         *int64 // мастер, который будет назначен; nil в режиме общего пула
	ServiceID       int64
	DurationMinutes int
}
