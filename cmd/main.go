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

	createAppointmentHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/get_available_slots"
	getDoctorDayHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/get_doctor_day"
	getPatientAppointmentsHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/get_patient_appointments"
	healthHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/health"
	listAppointmentsHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/list_appointments"
	moveAppointmentHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/move_appointment"
	updateAppointmentHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/update_appointment"
	updateStatusHandler "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers/update_status"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/middleware"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/config"
	appointmentRepo "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/infra/storage/appointment"
	directoryClient "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/directory"
	notifyClient "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/notify"
	appointmentsService "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments"
	conflictService "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/conflict"
	createAppointmentUC "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/usecase/get_available_slots"
	moveAppointmentUC "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/usecase/move_appointment"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/dbmetrics"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/logger"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/metrics"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/simpletxmanager"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting clinic-flow scheduling service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	directory := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	notifier := notifyClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (DirectoryService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		appointmentRepository *appointmentRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB).
			WithRetryAttempts(cfg.Scheduling.TxRetryAttempts)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	conflictSvc := conflictService.NewService(appointmentRepository, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		notifier,
		log,
		appointmentsService.RealTimeProvider{},
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		conflictSvc,
		directory,
		txMgr,
		log,
	)
	moveAppointmentUseCase := moveAppointmentUC.NewUseCase(
		appointmentRepository,
		conflictSvc,
		directory,
		notifier,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		directory,
		log,
	)

	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(moveAppointmentUseCase, log)
	moveAppointment := moveAppointmentHandler.NewHandler(moveAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getDoctorDay := getDoctorDayHandler.NewHandler(appointmentsSvc, log)
	health := healthHandler.NewHandler(db, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/doctors/{doctorId}/clinics/{clinicId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Protected routes (require X-User-ID header)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}/move", moveAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{patientId}/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}/day", getDoctorDay.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
