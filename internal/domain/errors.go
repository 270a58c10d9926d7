package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок. Ошибки пакетов оборачивают одну из них,
// транспорт сопоставляет категорию с кодом ответа через errors.Is.
var (
	ErrValidation            = errors.New("validation failed")
	ErrSlotNoLongerAvailable = errors.New("slot no longer available")
	ErrClosedDay             = errors.New("closed day")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("not found")
)

// TransitionError недопустимый переход статуса записи
type TransitionError struct {
	From   AppointmentStatus
	Action AppointmentAction
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s appointment in status %s", ErrInvalidTransition, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
