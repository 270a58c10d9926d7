package api

import (
	"net/http"

	"github.com/gorilla/mux"

	createAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_slots"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_appointments"
	loginHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/login"
	servicesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/services"
	settingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/settings"
	staffHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/staff"
	transitionAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/transition_appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
)

// Handlers обработчики всех эндпоинтов API
type Handlers struct {
	Login              *loginHandler.Handler
	Slots              *getSlotsHandler.Handler
	CreateAppointment  *createAppointmentHandler.Handler
	ConfirmAppointment *transitionAppointmentHandler.Handler
	CancelAppointment  *transitionAppointmentHandler.Handler
	GetAppointment     *getAppointmentHandler.Handler
	ListAppointments   *listAppointmentsHandler.Handler
	Services           *servicesHandler.Handler
	Staff              *staffHandler.Handler
	Settings           *settingsHandler.Handler
}

// Options параметры роутера
type Options struct {
	Authorizer     middleware.Authorizer
	Logger         middleware.Logger
	Metrics        middleware.HTTPMetrics // nil - HTTP метрики выключены
	MetricsPath    string
	MetricsHandler http.Handler
	AllowedOrigins []string
}

// NewRouter собирает маршруты /api/v1 и общие middleware
func NewRouter(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	admin := middleware.AdminOnly(opts.Authorizer, opts.Logger)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/auth/login", h.Login.Handle).Methods(http.MethodPost)

	// Слоты дня для услуги
	api.HandleFunc("/appointments/slots", h.Slots.Handle).Methods(http.MethodGet)

	// Создание записи клиентом
	api.HandleFunc("/appointments", h.CreateAppointment.Handle).Methods(http.MethodPost)

	// Каталог
	api.HandleFunc("/services", h.Services.List).Methods(http.MethodGet)
	api.HandleFunc("/services/{id:[0-9]+}", h.Services.Get).Methods(http.MethodGet)
	api.HandleFunc("/staff", h.Staff.List).Methods(http.MethodGet)
	api.HandleFunc("/staff/{id:[0-9]+}", h.Staff.Get).Methods(http.MethodGet)
	api.HandleFunc("/staff/{id:[0-9]+}/services", h.Staff.GetServices).Methods(http.MethodGet)
	api.HandleFunc("/staff/{id:[0-9]+}/schedule", h.Staff.GetSchedule).Methods(http.MethodGet)

	// Расписание салона
	api.HandleFunc("/settings/business-hours", h.Settings.GetBusinessHours).Methods(http.MethodGet)
	api.HandleFunc("/settings/holidays", h.Settings.GetHolidays).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <token>)
	// ============================================================

	// Смена статуса: права проверяет сам use case
	api.HandleFunc("/appointments/{id:[0-9]+}/confirm", h.ConfirmAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id:[0-9]+}/cancel", h.CancelAppointment.Handle).Methods(http.MethodPost)

	api.Handle("/appointments", admin(http.HandlerFunc(h.ListAppointments.Handle))).Methods(http.MethodGet)
	api.Handle("/appointments/{id:[0-9]+}", admin(http.HandlerFunc(h.GetAppointment.Handle))).Methods(http.MethodGet)

	api.Handle("/services", admin(http.HandlerFunc(h.Services.Create))).Methods(http.MethodPost)
	api.Handle("/services/{id:[0-9]+}", admin(http.HandlerFunc(h.Services.Update))).Methods(http.MethodPut)
	api.Handle("/services/{id:[0-9]+}", admin(http.HandlerFunc(h.Services.Delete))).Methods(http.MethodDelete)

	api.Handle("/staff", admin(http.HandlerFunc(h.Staff.Create))).Methods(http.MethodPost)
	api.Handle("/staff/{id:[0-9]+}", admin(http.HandlerFunc(h.Staff.Update))).Methods(http.MethodPut)
	api.Handle("/staff/{id:[0-9]+}", admin(http.HandlerFunc(h.Staff.Delete))).Methods(http.MethodDelete)
	api.Handle("/staff/{id:[0-9]+}/services", admin(http.HandlerFunc(h.Staff.ReplaceServices))).Methods(http.MethodPut)
	api.Handle("/staff/{id:[0-9]+}/schedule", admin(http.HandlerFunc(h.Staff.ReplaceSchedule))).Methods(http.MethodPut, http.MethodPost)

	api.Handle("/settings/business-hours", admin(http.HandlerFunc(h.Settings.ReplaceBusinessHours))).Methods(http.MethodPut, http.MethodPost)
	api.Handle("/settings/holidays", admin(http.HandlerFunc(h.Settings.ReplaceHolidays))).Methods(http.MethodPut, http.MethodPost)

	// Внешние middleware работают и для неизвестных маршрутов
	var handler http.Handler = r
	handler = middleware.CORS(opts.AllowedOrigins)(handler)
	handler = middleware.AccessLog(opts.Logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recover(opts.Logger)(handler)

	return handler
}
