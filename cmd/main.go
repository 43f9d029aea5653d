package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	cancelBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/cancel_booking"
	changeBookingStatusHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/change_booking_status"
	createAvailabilityWindowHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_availability_window"
	createBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_booking"
	createRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_room"
	createRoomTypeHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_room_type"
	createUserHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_user"
	deleteAvailabilityWindowHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/delete_availability_window"
	deleteBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking"
	getRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_room"
	getRoomAvailabilityHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_room_availability"
	getUserHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_user"
	getUserBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/health"
	listActionLogsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_action_logs"
	listAvailabilityWindowsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_availability_windows"
	listBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_bookings"
	listNotificationsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_notifications"
	listRoomTypesHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_room_types"
	listRoomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_rooms"
	listUsersHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_users"
	loginHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/login"
	markNotificationReadHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/mark_notification_read"
	rescheduleBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/notification"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	notificationsService "github.com/m04kA/SMC-RoomBookingService/internal/service/notifications"
	roomsService "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
	usersService "github.com/m04kA/SMC-RoomBookingService/internal/service/users"
	changeBookingStatusUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/change_booking_status"
	createBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	getRoomAvailabilityUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_room_availability"
	rescheduleBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-RoomBookingService...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	log.Info("Booking timezone: %s", location)

	// Коллекторы создаются всегда (счетчики проверок и уведомлений);
	// наружу они отдаются и БД оборачивается только при включенных метриках
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	var wrappedDB *dbmetrics.DB
	var txMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		txMetrics = metricsCollector
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB, txMetrics)

	// Проверка бронирований
	bookingValidator := validator.New(availabilityRepository, bookingRepository, location)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, userRepository, txMgr, location, log)
	roomSvc := roomsService.NewService(roomRepository, availabilityRepository, log)
	userSvc := usersService.NewService(userRepository, usersService.NewBcryptHasher(cfg.Booking.BcryptCost), log)
	notificationSvc := notificationsService.NewService(notificationRepository, log)
	dispatcher := notificationsService.NewDispatcher(notificationRepository, metricsCollector, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		userRepository,
		bookingValidator,
		txMgr,
		metricsCollector,
		log,
		cfg.Booking.ConflictRetries,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		bookingValidator,
		txMgr,
		metricsCollector,
		log,
		cfg.Booking.ConflictRetries,
	)
	changeBookingStatusUseCase := changeBookingStatusUC.NewUseCase(
		bookingRepository,
		userRepository,
		txMgr,
		log,
	)
	getRoomAvailabilityUseCase := getRoomAvailabilityUC.NewUseCase(
		roomRepository,
		availabilityRepository,
		bookingRepository,
		location,
		log,
	)

	// Инициализируем handlers
	health := healthHandler.NewHandler(wrappedDB, log)
	login := loginHandler.NewHandler(userSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, dispatcher, location, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, dispatcher, location, log)
	changeBookingStatus := changeBookingStatusHandler.NewHandler(changeBookingStatusUseCase, dispatcher, location, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, dispatcher, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, dispatcher, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, location, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getRoomAvailability := getRoomAvailabilityHandler.NewHandler(getRoomAvailabilityUseCase, location, log)

	createRoom := createRoomHandler.NewHandler(roomSvc, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	getRoom := getRoomHandler.NewHandler(roomSvc, log)
	createRoomType := createRoomTypeHandler.NewHandler(roomSvc, log)
	listRoomTypes := listRoomTypesHandler.NewHandler(roomSvc, log)
	createWindow := createAvailabilityWindowHandler.NewHandler(roomSvc, log)
	listWindows := listAvailabilityWindowsHandler.NewHandler(roomSvc, log)
	deleteWindow := deleteAvailabilityWindowHandler.NewHandler(roomSvc, log)

	createUser := createUserHandler.NewHandler(userSvc, log)
	listUsers := listUsersHandler.NewHandler(userSvc, log)
	getUser := getUserHandler.NewHandler(userSvc, log)

	listNotifications := listNotificationsHandler.NewHandler(notificationSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, log)
	listActionLogs := listActionLogsHandler.NewHandler(notificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(userRepository, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/status", changeBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Комнаты и расписание ---
	protected.HandleFunc("/rooms", createRoom.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId}", getRoom.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId}/availability", getRoomAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId}/availability", createWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rooms/{roomId}/availability-windows", listWindows.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/availability-windows/{windowId}", deleteWindow.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/room-types", createRoomType.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/room-types", listRoomTypes.Handle).Methods(http.MethodGet)

	// --- Пользователи ---
	protected.HandleFunc("/users", createUser.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users", listUsers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}", getUser.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/notifications", listNotifications.Handle).Methods(http.MethodGet)

	// --- Уведомления и журнал ---
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/action-logs", listActionLogs.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
