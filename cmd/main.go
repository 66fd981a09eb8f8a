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

	cancelAppointmentHandler "github.com/m04kA/CMS-SchedulingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/CMS-SchedulingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/CMS-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/CMS-SchedulingService/internal/api/handlers/get_available_slots"
	getPatientAppointmentsHandler "github.com/m04kA/CMS-SchedulingService/internal/api/handlers/get_patient_appointments"
	getProfessionalAppointmentsHandler "github.com/m04kA/CMS-SchedulingService/internal/api/handlers/get_professional_appointments"
	getScheduleHandler "github.com/m04kA/CMS-SchedulingService/internal/api/handlers/get_schedule"
	updateAppointmentHandler "github.com/m04kA/CMS-SchedulingService/internal/api/handlers/update_appointment"
	updateScheduleHandler "github.com/m04kA/CMS-SchedulingService/internal/api/handlers/update_schedule"
	"github.com/m04kA/CMS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/CMS-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/CMS-SchedulingService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/CMS-SchedulingService/internal/infra/storage/schedule"
	appointmentsService "github.com/m04kA/CMS-SchedulingService/internal/service/appointments"
	"github.com/m04kA/CMS-SchedulingService/internal/service/calendar"
	"github.com/m04kA/CMS-SchedulingService/internal/service/conflictindex"
	"github.com/m04kA/CMS-SchedulingService/internal/service/coordinator"
	scheduleService "github.com/m04kA/CMS-SchedulingService/internal/service/schedule"
	"github.com/m04kA/CMS-SchedulingService/internal/service/slotvalidator"
	getAvailableSlotsUC "github.com/m04kA/CMS-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/CMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CMS-SchedulingService/pkg/keylock"
	"github.com/m04kA/CMS-SchedulingService/pkg/logger"
	"github.com/m04kA/CMS-SchedulingService/pkg/metrics"
	"github.com/m04kA/CMS-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/CMS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting CMS-SchedulingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	// Интерфейс transaction manager: координатору нужны сериализуемые
	// транзакции, сервису расписаний - обычные
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Собираем ядро планирования: календарь, конфликтный индекс,
	// валидатор и координатор поверх пер-профессиональной блокировки
	workingHoursCalendar := calendar.New(scheduleRepository, log)
	conflictIndex := conflictindex.New()
	validator := slotvalidator.New(workingHoursCalendar, conflictIndex, log)
	professionalLocks := keylock.New()

	var coordinatorMetrics coordinator.Metrics
	if cfg.Metrics.Enabled {
		coordinatorMetrics = metricsCollector
	}

	bookingCoordinator := coordinator.New(
		appointmentRepository,
		validator,
		conflictIndex,
		professionalLocks,
		txMgr,
		time.Duration(cfg.Server.LockTimeout)*time.Second,
		coordinatorMetrics,
		log,
	)

	// Прогреваем конфликтный индекс занятыми интервалами из БД
	if err := bookingCoordinator.WarmUp(context.Background()); err != nil {
		log.Fatal("Failed to warm up conflict index: %v", err)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUsecase(
		workingHoursCalendar,
		validator,
		&getAvailableSlotsUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(bookingCoordinator, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(bookingCoordinator, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(bookingCoordinator, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getProfessionalAppointments := getProfessionalAppointmentsHandler.NewHandler(appointmentSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)

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

	// Доступные слоты профессионала на день
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание профессионала
	api.HandleFunc("/professionals/{professionalId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи у профессионала
	protected.HandleFunc("/professionals/{professionalId}/appointments",
		createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос записи ({start, end}) или перевод по жизненному циклу ({status})
	protected.HandleFunc("/appointments/{appointmentId}",
		updateAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel",
		cancelAppointment.Handle).Methods(http.MethodPatch)

	// Календарь профессионала
	protected.HandleFunc("/professionals/{professionalId}/appointments",
		getProfessionalAppointments.Handle).Methods(http.MethodGet)

	// История записей пациента
	protected.HandleFunc("/patients/{patientId}/appointments",
		getPatientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для администраторов клиники) ---
	protected.HandleFunc("/professionals/{professionalId}/schedule",
		updateSchedule.Handle).Methods(http.MethodPut)

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
