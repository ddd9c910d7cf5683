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

	checkZipHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/check_zip"
	createReservationHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/get_available_slots"
	getDayReservationsHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/get_day_reservations"
	getReservationHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/get_reservation"
	getSettingsHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/get_settings"
	orderStatusHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/order_status"
	releaseHoldHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/release_hold"
	reserveSlotHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/reserve_slot"
	updateSettingsHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/update_settings"
	updateSlotHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/update_slot"
	"github.com/m04kA/SMC-DeliverySlotService/internal/api/middleware"
	"github.com/m04kA/SMC-DeliverySlotService/internal/config"
	holdRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/hold"
	reservationRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/reservation"
	settingsRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DeliverySlotService/internal/scheduler"
	reservationsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/reservations"
	settingsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/settings"
	slotsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/slots"
	checkZipUC "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/check_zip"
	createReservationUC "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/get_available_slots"
	releaseHoldUC "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/release_hold"
	reserveSlotUC "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/clock"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/logger"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/metrics"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/txmanager"
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

	log.Info("Starting SMC-DeliverySlotService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс магазина: вся логика отсечки и blackout-дат живет в нем
	loc, err := time.LoadLocation(cfg.Service.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Service.Timezone, err)
	}
	serviceClock := clock.New(loc)
	log.Info("Service timezone: %s", cfg.Service.Timezone)

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
		settingsRepository    *settingsRepo.Repository
		slotRepository        *slotRepo.Repository
		holdRepository        *holdRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		holdRepository = holdRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		settingsRepository = settingsRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		holdRepository = holdRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, cfg.Service.AdminIDs, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	slotsSvc := slotsService.NewService(slotRepository, cfg.Service.AdminIDs, log)

	// Инициализируем use cases
	holdTTL := time.Duration(cfg.Holds.TTLMinutes) * time.Minute

	checkZipUseCase := checkZipUC.NewUseCase(
		settingsSvc,
		serviceClock,
		cfg.Service.SearchHorizonDays,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		settingsSvc,
		slotRepository,
		holdRepository,
		reservationRepository,
		serviceClock,
		cfg.Service.SearchHorizonDays,
		log,
	)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		settingsSvc,
		slotRepository,
		holdRepository,
		reservationRepository,
		txMgr,
		serviceClock,
		cfg.Service.SearchHorizonDays,
		holdTTL,
		log,
	)
	releaseHoldUseCase := releaseHoldUC.NewUseCase(holdRepository, log)
	createReservationUseCase := createReservationUC.NewUseCase(
		settingsSvc,
		slotRepository,
		holdRepository,
		reservationRepository,
		txMgr,
		serviceClock,
		cfg.Service.SearchHorizonDays,
		log,
	)

	// Инициализируем handlers
	checkZip := checkZipHandler.NewHandler(checkZipUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	releaseHold := releaseHoldHandler.NewHandler(releaseHoldUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getDayReservations := getDayReservationsHandler.NewHandler(reservationsSvc, log)
	orderStatus := orderStatusHandler.NewHandler(reservationsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка обслуживания ZIP-кода
	api.HandleFunc("/delivery/zip-eligibility", checkZip.Handle).Methods(http.MethodGet)

	// Доступные слоты доставки
	api.HandleFunc("/delivery/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Удержание слота на время оформления заказа
	api.HandleFunc("/delivery/holds", reserveSlot.Handle).Methods(http.MethodPost)

	// Освобождение удержания при завершении сессии
	api.HandleFunc("/delivery/holds/{token}", releaseHold.Handle).Methods(http.MethodDelete)

	// Привязка слота к заказу
	api.HandleFunc("/delivery/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Нотификация о смене статуса заказа
	api.HandleFunc("/orders/{orderId}/delivery-status", orderStatus.Handle).Methods(http.MethodPatch)

	// Чтение настроек доставки
	api.HandleFunc("/delivery/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireUser(log))

	// Резервация по ID
	protected.HandleFunc("/delivery/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Резервации за день (админская отчетность)
	protected.HandleFunc("/delivery/dates/{date}/reservations", getDayReservations.Handle).Methods(http.MethodGet)

	// Обновление настроек доставки
	protected.HandleFunc("/delivery/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Административное обновление предгенерированного слота
	protected.HandleFunc("/delivery/dates/{date}/slots/{slotKey}", updateSlot.Handle).Methods(http.MethodPatch)

	// Фоновые jobs: предгенерация слотов и чистка истекших удержаний
	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	if cfg.Slots.Pregenerate {
		pregenerator := scheduler.NewSlotPregenerator(
			settingsSvc,
			slotRepository,
			serviceClock,
			cfg.Slots.HorizonDays,
			time.Duration(cfg.Slots.IntervalMinutes)*time.Minute,
			log,
		)
		go pregenerator.Run(jobsCtx)
	}

	sweeper := scheduler.NewHoldSweeper(
		holdRepository,
		serviceClock,
		time.Duration(cfg.Holds.SweepIntervalSeconds)*time.Second,
		log,
	)
	go sweeper.Run(jobsCtx)

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

	// Останавливаем фоновые jobs и сбор метрик
	cancelJobs()
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
