package domain

// Значения по умолчанию
const (
	DefaultSlotGranularityMinutes = 30
	DefaultSharedPoolSize         = 1
)

// Бизнес-ограничения
const (
	ServiceDurationStepMinutes = 15
	MinServiceDurationMinutes  = 15
	MaxNoteLength              = 500
	MaxCustomerNameLength      = 255
	MaxCustomerPhoneLength     = 32
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
