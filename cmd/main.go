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
	goredis "github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/create_booking"
	createServiceHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/create_service"
	exportBookingsHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/export_bookings"
	getAvailableSlotsHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/get_booking"
	getOccupiedIntervalsHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/get_occupied_intervals"
	getScheduleSettingsHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/get_schedule_settings"
	listBookingsHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/list_services"
	manageDaysOffHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/manage_days_off"
	rescheduleBookingHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/update_booking_status"
	updateScheduleSettingsHandler "github.com/Mkaniukov/carwash-crm/internal/api/handlers/update_schedule_settings"
	"github.com/Mkaniukov/carwash-crm/internal/api/middleware"
	"github.com/Mkaniukov/carwash-crm/internal/claim"
	"github.com/Mkaniukov/carwash-crm/internal/config"
	redisClient "github.com/Mkaniukov/carwash-crm/internal/infra/redis"
	bookingRepo "github.com/Mkaniukov/carwash-crm/internal/infra/storage/booking"
	"github.com/Mkaniukov/carwash-crm/internal/infra/storage/memory"
	serviceRepo "github.com/Mkaniukov/carwash-crm/internal/infra/storage/service"
	settingsRepo "github.com/Mkaniukov/carwash-crm/internal/infra/storage/settings"
	"github.com/Mkaniukov/carwash-crm/internal/integrations/notifier"
	bookingsService "github.com/Mkaniukov/carwash-crm/internal/service/bookings"
	catalogService "github.com/Mkaniukov/carwash-crm/internal/service/catalog"
	exportService "github.com/Mkaniukov/carwash-crm/internal/service/export"
	settingsService "github.com/Mkaniukov/carwash-crm/internal/service/settings"
	createBookingUC "github.com/Mkaniukov/carwash-crm/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/Mkaniukov/carwash-crm/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/Mkaniukov/carwash-crm/internal/usecase/reschedule_booking"
	"github.com/Mkaniukov/carwash-crm/pkg/dbmetrics"
	"github.com/Mkaniukov/carwash-crm/pkg/logger"
	"github.com/Mkaniukov/carwash-crm/pkg/metrics"
	"github.com/Mkaniukov/carwash-crm/pkg/txmanager"
)

// bookingStore всё, что нужно от хранилища бронирований guard'у, сервисам и use case'ам
type bookingStore interface {
	claim.Store
	bookingsService.BookingRepository
}

type storage struct {
	bookings  bookingStore
	settings  settingsService.SettingsRepository
	services  catalogService.ServiceRepository
	txManager claim.TransactionManager
	close     func()
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

	log.Info("Starting carwash-crm...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopBackgroundCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	store, err := openStorage(cfg, metricsCollector, stopBackgroundCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Блокировка расписаний для захвата слотов
	locker, closeLocker, err := newLocker(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize slot locker: %v", err)
	}
	defer closeLocker()

	guard := claim.NewGuard(store.bookings, locker, store.txManager, cfg.Claim.Timeout(), log)
	if metricsCollector != nil {
		guard = guard.WithMetrics(metricsCollector)
	}
	log.Info("Slot guard initialized (locker=%s, timeout=%s)", cfg.Claim.Locker, cfg.Claim.Timeout())

	// Инициализируем интеграционных клиентов
	notifierClient := notifier.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		cfg.Notifier.Enabled,
		log,
	)
	log.Info("Notifier client initialized (enabled=%v, url=%s)", cfg.Notifier.Enabled, cfg.Notifier.URL)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(store.bookings, notifierClient, log)
	settingsSvc := settingsService.NewService(store.settings, log)
	catalogSvc := catalogService.NewService(store.services, log)
	exportSvc := exportService.NewService(store.bookings, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.bookings,
		store.settings,
		store.services,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		guard,
		store.settings,
		store.services,
		notifierClient,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		store.bookings,
		store.settings,
		guard,
		notifierClient,
		log,
	)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	getScheduleSettings := getScheduleSettingsHandler.NewHandler(settingsSvc, log)
	updateScheduleSettings := updateScheduleSettingsHandler.NewHandler(settingsSvc, log)
	manageDaysOff := manageDaysOffHandler.NewHandler(settingsSvc, log)
	getOccupiedIntervals := getOccupiedIntervalsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	exportBookings := exportBookingsHandler.NewHandler(exportSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if metricsCollector != nil {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{scheduleId}/settings", getScheduleSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{scheduleId}/bookings/by-date", getOccupiedIntervals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{scheduleId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/cancel/{token}", cancelBooking.HandleByToken).Methods(http.MethodPost)

	// Создание бронирования клиентом (ограничение частоты по IP)
	var publicCreate http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.RunCleanup(time.Minute, stopBackgroundCh)
		publicCreate = limiter.Limit(publicCreate)
		log.Info("Booking rate limit enabled (rps=%.4f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	api.Handle("/schedules/{scheduleId}/bookings", publicCreate).Methods(http.MethodPost)

	// Маршруты для клиентов с одним расписанием
	legacy := api.PathPrefix("/public").Subrouter()
	legacy.Use(middleware.DefaultSchedule(cfg.Schedule.DefaultScheduleID))
	legacy.HandleFunc("/settings", getScheduleSettings.Handle).Methods(http.MethodGet)
	legacy.HandleFunc("/bookings/by-date", getOccupiedIntervals.Handle).Methods(http.MethodGet)
	legacy.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/schedules/{scheduleId}/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{scheduleId}/staff-bookings", createBooking.HandleStaff).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// OWNER ROUTES
	// ============================================================

	owner := protected.PathPrefix("").Subrouter()
	owner.Use(middleware.OwnerOnly)

	owner.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/schedules/{scheduleId}/settings", updateScheduleSettings.Handle).Methods(http.MethodPut)
	owner.HandleFunc("/schedules/{scheduleId}/days-off/{date}", manageDaysOff.HandleAdd).Methods(http.MethodPost)
	owner.HandleFunc("/schedules/{scheduleId}/days-off/{date}", manageDaysOff.HandleRemove).Methods(http.MethodDelete)
	owner.HandleFunc("/schedules/{scheduleId}/export", exportBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновые задачи (метрики пула, очистка rate limiter)
	close(stopBackgroundCh)

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

// openStorage поднимает postgres или хранилище в памяти в зависимости от [database] driver
func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory storage: data is lost on restart")
		return &storage{
			bookings:  memory.NewBookingStore(),
			settings:  memory.NewSettingsStore(),
			services:  memory.NewServiceStore(),
			txManager: txmanager.Nop{},
			close:     func() {},
		}, nil
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if m != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, m, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	return &storage{
		bookings:  bookingRepo.NewRepository(wrappedDB),
		settings:  settingsRepo.NewRepository(wrappedDB),
		services:  serviceRepo.NewRepository(wrappedDB),
		txManager: txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

// newLocker выбирает блокировку: в процессе или redis для нескольких экземпляров
func newLocker(cfg *config.Config, log *logger.Logger) (claim.Locker, func(), error) {
	if cfg.Claim.Locker != config.LockerRedis {
		return claim.NewLocalLocker(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := redisClient.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Connected to redis at %s", cfg.Redis.Address)

	closeFn := func(c *goredis.Client) func() {
		return func() {
			if err := c.Close(); err != nil {
				log.Error("Failed to close redis client: %v", err)
			}
		}
	}(client)

	return claim.NewRedisLocker(client, cfg.Claim.LockTTL(), cfg.Claim.RetryInterval(), log), closeFn, nil
}
