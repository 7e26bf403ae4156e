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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approveAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/approve_appointment"
	assignEmployeeHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/assign_employee"
	canEditAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/can_edit_appointment"
	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	createChangeRequestHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_change_request"
	editAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/edit_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAppointmentChangeRequestsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment_change_requests"
	getAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointments"
	getBookedSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booked_slots"
	getCustomerAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_customer_appointments"
	getServiceAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_service_availability"
	getServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_services"
	listChangeRequestsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_change_requests"
	markCompletedHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/mark_completed"
	markReadyHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/mark_ready"
	rejectAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reject_appointment"
	resolveChangeRequestHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/resolve_change_request"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	changeRequestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/changerequest"
	staffServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	changeRequestsService "github.com/m04kA/SMC-AppointmentService/internal/service/changerequests"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	editAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/edit_appointment"
	getBookedSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_booked_slots"
	getServiceAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_service_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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

	// Инициализируем клиента StaffService
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (StaffService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository   *appointmentRepo.Repository
		catalogRepository       *catalogRepo.Repository
		changeRequestRepository *changeRequestRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		changeRequestRepository = changeRequestRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		changeRequestRepository = changeRequestRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		staffClient,
		log,
	)
	changeRequestSvc := changeRequestsService.NewService(
		changeRequestRepository,
		appointmentRepository,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		txMgr,
		log,
	)
	editAppointmentUseCase := editAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		changeRequestRepository,
		txMgr,
		log,
	)
	getBookedSlotsUseCase := getBookedSlotsUC.NewUseCase(appointmentRepository, log)
	getServiceAvailabilityUseCase := getServiceAvailabilityUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	editAppointment := editAppointmentHandler.NewHandler(editAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	approveAppointment := approveAppointmentHandler.NewHandler(appointmentSvc, log)
	rejectAppointment := rejectAppointmentHandler.NewHandler(appointmentSvc, log)
	assignEmployee := assignEmployeeHandler.NewHandler(appointmentSvc, log)
	markReady := markReadyHandler.NewHandler(appointmentSvc, log)
	markCompleted := markCompletedHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getBookedSlots := getBookedSlotsHandler.NewHandler(getBookedSlotsUseCase, log)
	getServiceAvailability := getServiceAvailabilityHandler.NewHandler(getServiceAvailabilityUseCase, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	createChangeRequest := createChangeRequestHandler.NewHandler(changeRequestSvc, log)
	resolveChangeRequest := resolveChangeRequestHandler.NewHandler(changeRequestSvc, log)
	canEditAppointment := canEditAppointmentHandler.NewHandler(changeRequestSvc, log)
	listChangeRequests := listChangeRequestsHandler.NewHandler(changeRequestSvc, log)
	getAppointmentChangeRequests := getAppointmentChangeRequestsHandler.NewHandler(changeRequestSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Активные услуги каталога
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Остаток дневного лимита услуги
	api.HandleFunc("/services/{serviceId}/availability",
		getServiceAvailability.Handle).Methods(http.MethodGet)

	// Занятые и свободные слоты приёмки на дату
	api.HandleFunc("/schedule/booked-slots", getBookedSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на обслуживание ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Админский список записей с фильтрами
	protected.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Редактирование записи по одобренному запросу на изменение
	protected.HandleFunc("/appointments/{appointmentId}", editAppointment.Handle).Methods(http.MethodPut)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/appointments",
		getCustomerAppointments.Handle).Methods(http.MethodGet)

	// --- Жизненный цикл записи ---
	protected.HandleFunc("/appointments/{appointmentId}/approve",
		approveAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reject",
		rejectAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/assign",
		assignEmployee.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/ready",
		markReady.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete",
		markCompleted.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel",
		cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Запросы на изменение ---
	protected.HandleFunc("/appointments/{appointmentId}/change-requests",
		createChangeRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/change-requests",
		getAppointmentChangeRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/can-edit",
		canEditAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/change-requests", listChangeRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/change-requests/{requestId}/resolve",
		resolveChangeRequest.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
