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
	"github.com/redis/go-redis/v9"

	addWaitlistEntryHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/add_waitlist_entry"
	assignTableHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/assign_table"
	cancelReservationHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/cancel_reservation"
	createTimeSlotHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/create_time_slot"
	deleteTimeSlotHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/delete_time_slot"
	getDepositQuoteHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_deposit_quote"
	getEligibleTablesHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_eligible_tables"
	getInsightsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_insights"
	getSettingsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_settings"
	listTablesHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/list_tables"
	listTimeSlotsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/list_time_slots"
	listWaitlistHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/list_waitlist"
	updateSettingsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/update_settings"
	updateTableStatusHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/update_table_status"
	updateTimeSlotHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/update_time_slot"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/config"
	settingsCache "github.com/m04kA/SMC-RestaurantService/internal/infra/cache/settings"
	managerRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/manager"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	settingsRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/settings"
	tableRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/table"
	timeslotRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/timeslot"
	waitlistRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-RestaurantService/internal/integrations/insights"
	settingsService "github.com/m04kA/SMC-RestaurantService/internal/service/settings"
	tablesService "github.com/m04kA/SMC-RestaurantService/internal/service/tables"
	timeslotsService "github.com/m04kA/SMC-RestaurantService/internal/service/timeslots"
	waitlistService "github.com/m04kA/SMC-RestaurantService/internal/service/waitlist"
	assignTableUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/assign_table"
	cancelReservationUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/cancel_reservation"
	getDashboardInsightsUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_dashboard_insights"
	getDepositQuoteUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_deposit_quote"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
	"github.com/m04kA/SMC-RestaurantService/pkg/metrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
)

// database то, что нужно и репозиториям, и менеджеру транзакций
type database interface {
	dbmetrics.DBExecutor
	dbmetrics.TxBeginner
}

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

	log.Info("Starting SMC-RestaurantService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Redis нужен только как кэш настроек: если он недоступен, сервис работает через БД
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis is not reachable at %s, settings will be read from database: %v", cfg.Redis.Addr, err)
	} else {
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}
	pingCancel()

	// Генератор подсказок дашборда
	insightsClient := insights.NewClient(
		cfg.Insights.BaseURL,
		cfg.Insights.APIKey,
		cfg.Insights.Model,
		time.Duration(cfg.Insights.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	if cfg.Insights.APIKey == "" {
		log.Warn("Insights API key is not set, dashboard will return fallback insights")
	}

	// Обёртка БД: с метриками или без
	var store database
	if cfg.Metrics.Enabled {
		store = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		store = dbmetrics.NewPlainDB(db)
	}
	txMgr := txmanager.NewTransactionManager(store)

	// Инициализируем репозитории
	settingsRepository := settingsRepo.NewRepository(store)
	timeslotRepository := timeslotRepo.NewRepository(store)
	tableRepository := tableRepo.NewRepository(store)
	waitlistRepository := waitlistRepo.NewRepository(store)
	reservationRepository := reservationRepo.NewRepository(store)
	managerRepository := managerRepo.NewRepository(store)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(
		settingsRepository,
		timeslotRepository,
		managerRepository,
		settingsCache.NewCache(redisClient, time.Duration(cfg.Redis.SettingsTTL)*time.Second),
		txMgr,
		metricsCollector,
		log,
	)
	timeslotsSvc := timeslotsService.NewService(timeslotRepository, managerRepository, txMgr, log)
	tablesSvc := tablesService.NewService(tableRepository, managerRepository, log)
	waitlistSvc := waitlistService.NewService(waitlistRepository, tableRepository, managerRepository, log)

	// Инициализируем use cases
	getDepositQuoteUseCase := getDepositQuoteUC.NewUseCase(settingsSvc, metricsCollector, log)

	assignTableUseCase := assignTableUC.NewUseCase(
		tableRepository,
		waitlistRepository,
		reservationRepository,
		managerRepository,
		txMgr,
		metricsCollector,
		log,
	)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		settingsSvc,
		managerRepository,
		txMgr,
		log,
	)

	getDashboardInsightsUseCase := getDashboardInsightsUC.NewUseCase(
		reservationRepository,
		waitlistRepository,
		settingsSvc,
		managerRepository,
		insightsClient,
		log,
	)

	// Инициализируем handlers
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	listTimeSlots := listTimeSlotsHandler.NewHandler(timeslotsSvc, log)
	createTimeSlot := createTimeSlotHandler.NewHandler(timeslotsSvc, log)
	updateTimeSlot := updateTimeSlotHandler.NewHandler(timeslotsSvc, log)
	deleteTimeSlot := deleteTimeSlotHandler.NewHandler(timeslotsSvc, log)
	getDepositQuote := getDepositQuoteHandler.NewHandler(getDepositQuoteUseCase, log)
	listTables := listTablesHandler.NewHandler(tablesSvc, log)
	updateTableStatus := updateTableStatusHandler.NewHandler(tablesSvc, log)
	addWaitlistEntry := addWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	listWaitlist := listWaitlistHandler.NewHandler(waitlistSvc, log)
	getEligibleTables := getEligibleTablesHandler.NewHandler(waitlistSvc, log)
	assignTable := assignTableHandler.NewHandler(assignTableUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getInsights := getInsightsHandler.NewHandler(getDashboardInsightsUseCase, log)

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

	// Настройки ресторана (или значения по умолчанию)
	api.HandleFunc("/restaurants/{restaurantId}/settings", getSettings.Handle).Methods(http.MethodGet)

	// Активные временные слоты
	api.HandleFunc("/restaurants/{restaurantId}/time-slots", listTimeSlots.Handle).Methods(http.MethodGet)

	// Расчет депозита для гостя
	api.HandleFunc("/restaurants/{restaurantId}/deposit-quote", getDepositQuote.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header, только менеджеры ресторана)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Настройки и слоты ---
	protected.HandleFunc("/restaurants/{restaurantId}/settings", updateSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/restaurants/{restaurantId}/time-slots", createTimeSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/restaurants/{restaurantId}/time-slots/{slotId}", updateTimeSlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/restaurants/{restaurantId}/time-slots/{slotId}", deleteTimeSlot.Handle).Methods(http.MethodDelete)

	// --- Зал ---
	protected.HandleFunc("/restaurants/{restaurantId}/tables", listTables.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/restaurants/{restaurantId}/tables/{tableId}/status", updateTableStatus.Handle).Methods(http.MethodPatch)

	// --- Лист ожидания ---
	protected.HandleFunc("/restaurants/{restaurantId}/waitlist", addWaitlistEntry.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/restaurants/{restaurantId}/waitlist", listWaitlist.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/restaurants/{restaurantId}/waitlist/{entryId}/eligible-tables", getEligibleTables.Handle).Methods(http.MethodGet)

	// --- Посадка и бронирования ---
	protected.HandleFunc("/restaurants/{restaurantId}/assignments", assignTable.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/restaurants/{restaurantId}/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Дашборд ---
	var insightsRoute http.Handler = http.HandlerFunc(getInsights.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RPS,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.TTL)*time.Second,
		)
		insightsRoute = limiter.Middleware(insightsRoute)
		log.Info("Insights rate limit enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	protected.Handle("/restaurants/{restaurantId}/insights", insightsRoute).Methods(http.MethodGet)

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
