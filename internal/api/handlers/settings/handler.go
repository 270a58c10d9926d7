package settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "некорректное расписание: время HH:MM, открытие раньше закрытия, каждый день недели один раз"
	msgInvalidHolidays    = "некорректный список выходных: даты YYYY-MM-DD без повторов"
)

// Handler настройки расписания салона
type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetBusinessHours GET /api/v1/settings/business-hours
func (h *Handler) GetBusinessHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListBusinessHours(r.Context())
	if err != nil {
		h.respondError(w, "GET /settings/business-hours", msgInvalidHours, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ReplaceBusinessHours PUT (POST) /api/v1/settings/business-hours
func (h *Handler) ReplaceBusinessHours(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceBusinessHours(r.Context(), &req)
	if err != nil {
		h.respondError(w, "PUT /settings/business-hours", msgInvalidHours, err)
		return
	}

	h.logger.Info("PUT /settings/business-hours - Business hours replaced: days=%d", len(req.Hours))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetHolidays GET /api/v1/settings/holidays
// Query params: from, to (YYYY-MM-DD)
func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	req := &models.ListHolidaysRequest{
		From: handlers.OptionalQuery(r, "from"),
		To:   handlers.OptionalQuery(r, "to"),
	}

	result, err := h.service.ListHolidays(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /settings/holidays", msgInvalidHolidays, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ReplaceHolidays PUT (POST) /api/v1/settings/holidays
func (h *Handler) ReplaceHolidays(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceHolidaysRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceHolidays(r.Context(), &req)
	if err != nil {
		h.respondError(w, "PUT /settings/holidays", msgInvalidHolidays, err)
		return
	}

	h.logger.Info("PUT /settings/holidays - Holidays replaced: count=%d", len(req.Holidays))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route, badRequestMsg string, err error) {
	if errors.Is(err, domain.ErrValidation) {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, badRequestMsg)
		return
	}
	h.logger.Error("%s - Failed: %v", route, err)
	handlers.RespondInternalError(w)
}
