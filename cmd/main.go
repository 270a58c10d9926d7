package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/api"
	createAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_slots"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_appointments"
	loginHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/login"
	servicesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/services"
	settingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/settings"
	staffHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/staff"
	transitionAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/transition_appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/auth"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	calendarRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/calendar"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	authService "github.com/m04kA/SMC-SalonBooking/internal/service/auth"
	calendarService "github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	createAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	getSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_slots"
	transitionAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/transition_appointment"
	"github.com/m04kA/SMC-SalonBooking/migrations"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/locker"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/migrator"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// repositories набор хранилищ, которые нужны use case'ам и сервисам
type repositories struct {
	appointments interface {
		createAppointmentUC.AppointmentRepository
		getSlotsUC.AppointmentRepository
		transitionAppointmentUC.AppointmentRepository
		appointmentsService.AppointmentRepository
	}
	catalog interface {
		createAppointmentUC.CatalogRepository
		getSlotsUC.CatalogRepository
		catalogService.CatalogRepository
	}
	calendar interface {
		createAppointmentUC.CalendarRepository
		getSlotsUC.CalendarRepository
		calendarService.CalendarRepository
	}
}

func main() {
	configPath := "config.toml"
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var repos repositories

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		repos = repositories{appointments: store, catalog: store, calendar: store}
		log.Warn("Using in-memory storage: data is lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Database.AutoMigrate {
			if err := migrator.New(db, migrations.FS, ".", log).Up(context.Background()); err != nil {
				log.Fatal("Failed to apply migrations: %v", err)
			}
		}

		// nil recorder отключает метрики запросов
		var recorder dbmetrics.Recorder
		if metricsCollector != nil {
			recorder = metricsCollector
		}
		wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stopMetricsCh)
		txMgr := txmanager.NewTransactionManager(wrappedDB)

		repos = repositories{
			appointments: appointmentRepo.NewRepository(wrappedDB, txMgr, cfg.Booking.DBLockTimeout()),
			catalog:      catalogRepo.NewRepository(wrappedDB, txMgr),
			calendar:     calendarRepo.NewRepository(wrappedDB, txMgr),
		}
	}

	// Инициализируем блокировки записи
	var bookingLocker createAppointmentUC.Locker

	switch cfg.Booking.LockBackend {
	case config.LockBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		bookingLocker = locker.NewRedis(redisClient, cfg.Booking.LockTTL(), log)
		log.Info("Using redis locks (addr=%s)", cfg.Redis.Addr)

	default:
		bookingLocker = locker.NewMemory()
		log.Info("Using in-process locks")
	}

	authorizer := auth.NewAuthorizer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(repos.appointments, log)
	catalogSvc := catalogService.NewService(repos.catalog, log)
	calendarSvc := calendarService.NewService(repos.calendar, log)
	authSvc := authService.NewService(authService.Credentials{
		Email:        cfg.Auth.AdminEmail,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	}, authorizer, log)

	// Инициализируем use cases
	var outcomeRecorder createAppointmentUC.MetricsRecorder
	if metricsCollector != nil {
		outcomeRecorder = metricsCollector
	}

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		repos.calendar,
		repos.catalog,
		repos.appointments,
		bookingLocker,
		outcomeRecorder,
		createAppointmentUC.Config{
			SharedPool:     cfg.Booking.SharedPool,
			SharedPoolSize: cfg.Booking.SharedPoolSize,
			LockWait:       cfg.Booking.LockWait(),
		},
		location,
		log,
	)

	getSlotsUseCase := getSlotsUC.NewUseCase(
		repos.calendar,
		repos.catalog,
		repos.appointments,
		getSlotsUC.PoolConfig{Enabled: cfg.Booking.SharedPool, Size: cfg.Booking.SharedPoolSize},
		location,
		log,
	)

	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(repos.appointments, authorizer, log)

	// Настраиваем роутер
	routerOpts := api.Options{
		Authorizer:     authorizer,
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	if metricsCollector != nil {
		routerOpts.Metrics = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	router := api.NewRouter(api.Handlers{
		Login:              loginHandler.NewHandler(authSvc, log),
		Slots:              getSlotsHandler.NewHandler(getSlotsUseCase, log),
		CreateAppointment:  createAppointmentHandler.NewHandler(createAppointmentUseCase, log),
		ConfirmAppointment: transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, domain.ActionConfirm, log),
		CancelAppointment:  transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, domain.ActionCancel, log),
		GetAppointment:     getAppointmentHandler.NewHandler(appointmentsSvc, log),
		ListAppointments:   listAppointmentsHandler.NewHandler(appointmentsSvc, log),
		Services:           servicesHandler.NewHandler(catalogSvc, log),
		Staff:              staffHandler.NewHandler(catalogSvc, log),
		Settings:           settingsHandler.NewHandler(calendarSvc, log),
	}, routerOpts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (timezone=%s, shared_pool=%t)", addr, location, cfg.Booking.SharedPool)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
