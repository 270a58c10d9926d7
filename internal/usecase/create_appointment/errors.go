package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_appointment: invalid input data: %w", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = fmt.Errorf("create_appointment: service not found or inactive: %w", domain.ErrValidation)

	// ErrDurationMismatch возвращается, когда интервал не совпадает с длительностью услуги
	ErrDurationMismatch = fmt.Errorf("create_appointment: interval does not match service duration: %w", domain.ErrValidation)

	// ErrSlotMisaligned возвращается, когда интервал не совпадает ни с одним окном дня
	ErrSlotMisaligned = fmt.Errorf("create_appointment: interval is not aligned to slot grid: %w", domain.ErrValidation)

	// ErrClosedDay возвращается, когда салон закрыт в эту дату или время
	ErrClosedDay = fmt.Errorf("create_appointment: salon is closed: %w", domain.ErrClosedDay)

	// ErrDateInPast возвращается, когда дата раньше текущей
	ErrDateInPast = fmt.Errorf("create_appointment: date is in the past: %w", domain.ErrValidation)

	// ErrSlotStarted возвращается, когда окно сегодня уже началось
	ErrSlotStarted = fmt.Errorf("create_appointment: slot has already started: %w", domain.ErrValidation)

	// ErrCustomerRequired возвращается, когда не указаны имя или телефон клиента
	ErrCustomerRequired = fmt.Errorf("create_appointment: customer name and phone are required: %w", domain.ErrValidation)

	// ErrStaffNotAvailable возвращается, когда выбранный мастер не найден, отключен, не выполняет услугу или не работает в это время
	ErrStaffNotAvailable = fmt.Errorf("create_appointment: staff cannot perform this service: %w", domain.ErrValidation)

	// ErrSlotNoLongerAvailable возвращается, когда окно заняли раньше или не удалось дождаться блокировки
	ErrSlotNoLongerAvailable = fmt.Errorf("create_appointment: %w", domain.ErrSlotNoLongerAvailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
