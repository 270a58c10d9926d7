package staff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidStaff       = "некорректные данные мастера"
	msgNotFound           = "мастер не найден"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/staff
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListStaff(r.Context(), handlers.QueryBool(r, "includeInactive"))
	if err != nil {
		h.respondError(w, "GET /staff", err)
		return
	}

	h.logger.Info("GET /staff - Returned %d staff", len(result.Staff))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/staff/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.staffID(w, r, "GET /staff/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetStaff(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /staff/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/staff
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateStaff(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /staff", err)
		return
	}

	h.logger.Info("POST /staff - Staff created: staff_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/staff/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.staffID(w, r, "PUT /staff/{id}")
	if !ok {
		return
	}

	var req models.UpdateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStaff(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /staff/{id}", err)
		return
	}

	h.logger.Info("PUT /staff/{id} - Staff updated: staff_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/staff/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.staffID(w, r, "DELETE /staff/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteStaff(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /staff/{id}", err)
		return
	}

	h.logger.Info("DELETE /staff/{id} - Staff deactivated: staff_id=%d", id)
	handlers.RespondNoContent(w)
}

// GetServices GET /api/v1/staff/{id}/services
func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	id, ok := h.staffID(w, r, "GET /staff/{id}/services")
	if !ok {
		return
	}

	result, err := h.service.GetStaffServices(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /staff/{id}/services", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ReplaceServices PUT /api/v1/staff/{id}/services
func (h *Handler) ReplaceServices(w http.ResponseWriter, r *http.Request) {
	id, ok := h.staffID(w, r, "PUT /staff/{id}/services")
	if !ok {
		return
	}

	var req models.StaffServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceStaffServices(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /staff/{id}/services", err)
		return
	}

	h.logger.Info("PUT /staff/{id}/services - Assignments replaced: staff_id=%d, services=%d", id, len(result.ServiceIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetSchedule GET /api/v1/staff/{id}/schedule
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.staffID(w, r, "GET /staff/{id}/schedule")
	if !ok {
		return
	}

	result, err := h.service.GetStaffSchedule(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /staff/{id}/schedule", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ReplaceSchedule PUT /api/v1/staff/{id}/schedule
func (h *Handler) ReplaceSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.staffID(w, r, "PUT /staff/{id}/schedule")
	if !ok {
		return
	}

	var req models.StaffScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceStaffSchedule(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /staff/{id}/schedule", err)
		return
	}

	h.logger.Info("PUT /staff/{id}/schedule - Schedule replaced: staff_id=%d, days=%d", id, len(result.Schedule))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) staffID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid staff ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("%s - Staff not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStaff)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
