package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dentalcare-booking/config"
	deliveryHttp "dentalcare-booking/internal/delivery/http"
	"dentalcare-booking/internal/delivery/http/handler"
	"dentalcare-booking/internal/delivery/http/middleware"
	"dentalcare-booking/internal/infrastructure/cache"
	"dentalcare-booking/internal/infrastructure/database"
	"dentalcare-booking/internal/notification"
	"dentalcare-booking/internal/repository"
	"dentalcare-booking/internal/service"
	"dentalcare-booking/internal/usecase"
	"dentalcare-booking/pkg/clock"
	"dentalcare-booking/pkg/jwt"
	"dentalcare-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Dispatcher  *notification.Dispatcher

	dispatcherStop context.CancelFunc
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, dispatcher := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.Dispatcher = dispatcher

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server and the
// notification dispatcher
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *notification.Dispatcher) {
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// Notification channel + delivery
	channel := notification.NewRedisChannel(redisClient)
	var sender notification.Sender
	if cfg.Notify.Sender == "sms" && cfg.Notify.SMSGatewayURL != "" {
		sender = notification.NewSMSSender(cfg.Notify.SMSGatewayURL, cfg.Notify.SMSGatewayKey, cfg.Notify.OwnerPhone)
	} else {
		sender = notification.NewLogSender(log)
	}
	dispatcher := notification.NewDispatcher(channel, sender, log, clock.System(), cfg.Notify.DispatchInterval)

	// Reminder scheduler
	reminders := service.NewReminderService(channel, clock.System(), log)

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, reminders, clock.System())
	feedbackUsecase := usecase.NewFeedbackUsecase(log, feedbackRepo)
	authUsecase := usecase.NewAuthUsecase(log, cfg.Admin, jwtService, redisClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	feedbackHandler := handler.NewFeedbackHandler(feedbackUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(appointmentUsecase, feedbackUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, appointmentHandler, feedbackHandler, adminHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, dispatcher
}

// Run starts the HTTP server and the notification dispatcher, then blocks
// until shutdown
func (app *App) Run() {
	// Start the notification dispatcher
	dispatcherCtx, cancel := context.WithCancel(context.Background())
	app.dispatcherStop = cancel
	go app.Dispatcher.Run(dispatcherCtx)

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Stop the dispatcher first so no delivery races the shutdown
	if app.dispatcherStop != nil {
		app.dispatcherStop()
	}

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
