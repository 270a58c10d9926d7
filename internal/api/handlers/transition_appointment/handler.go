package transition_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/transition_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgInvalidInput         = "некорректные данные запроса"
	msgInvalidTransition    = "недопустимая смена статуса записи"
)

// Handler обрабатывает одно действие над записью (confirm или cancel)
type Handler struct {
	useCase TransitionAppointmentUseCase
	action  domain.AppointmentAction
	logger  Logger
}

func NewHandler(useCase TransitionAppointmentUseCase, action domain.AppointmentAction, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		action:  action,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{id}/confirm и /api/v1/appointments/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/%s - Invalid appointment ID: %v", h.action, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionAppointment.Request{
		Credential:    handlers.BearerToken(r),
		AppointmentID: appointmentID,
		Action:        h.action,
	})
	if err != nil {
		var transitionErr *domain.TransitionError

		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("POST /appointments/{id}/%s - Unauthorized: appointment_id=%d", h.action, appointmentID)
			handlers.RespondUnauthorized(w)

		case errors.As(err, &transitionErr):
			h.logger.Warn("POST /appointments/{id}/%s - Invalid transition: appointment_id=%d, status=%s",
				h.action, appointmentID, transitionErr.From)
			handlers.RespondJSON(w, http.StatusConflict, &TransitionErrorResponse{
				Error:         msgInvalidTransition,
				CurrentStatus: string(transitionErr.From),
				Action:        string(transitionErr.Action),
			})

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /appointments/{id}/%s - Appointment not found: appointment_id=%d", h.action, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments/{id}/%s - Invalid input: %v", h.action, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/{id}/%s - Failed: appointment_id=%d, error=%v", h.action, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/%s - Appointment updated: appointment_id=%d, %s -> %s",
		h.action, appointmentID, result.PreviousStatus, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
