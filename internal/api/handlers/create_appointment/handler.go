package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные записи"
	msgServiceNotFound    = "услуга не найдена или недоступна"
	msgDurationMismatch   = "интервал не совпадает с длительностью услуги"
	msgSlotMisaligned     = "время не совпадает ни с одним слотом"
	msgClosedDay          = "салон закрыт в выбранное время"
	msgDateInPast         = "нельзя записаться на прошедшую дату"
	msgSlotStarted        = "выбранный слот уже начался"
	msgCustomerRequired   = "имя и телефон клиента обязательны"
	msgStaffNotAvailable  = "выбранный мастер не выполняет эту услугу"
	msgSlotNotAvailable   = "выбранный слот уже занят"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /appointments - Slot not available: service_id=%d, date=%s, time=%s",
				req.ServiceID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrClosedDay):
			h.logger.Warn("POST /appointments - Closed: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondUnprocessable(w, msgClosedDay)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrDurationMismatch):
			handlers.RespondBadRequest(w, msgDurationMismatch)

		case errors.Is(err, createAppointment.ErrSlotMisaligned):
			handlers.RespondBadRequest(w, msgSlotMisaligned)

		case errors.Is(err, createAppointment.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrSlotStarted):
			handlers.RespondBadRequest(w, msgSlotStarted)

		case errors.Is(err, createAppointment.ErrCustomerRequired):
			handlers.RespondBadRequest(w, msgCustomerRequired)

		case errors.Is(err, createAppointment.ErrStaffNotAvailable):
			handlers.RespondBadRequest(w, msgStaffNotAvailable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, service_id=%d, date=%s, time=%s",
		result.ID, result.ServiceID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
