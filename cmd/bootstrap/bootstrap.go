package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-outreach-service/config"
	deliveryHttp "clinic-outreach-service/internal/delivery/http"
	"clinic-outreach-service/internal/delivery/http/handler"
	"clinic-outreach-service/internal/delivery/http/middleware"
	"clinic-outreach-service/internal/infrastructure/cache"
	"clinic-outreach-service/internal/infrastructure/storage"
	"clinic-outreach-service/internal/repository"
	"clinic-outreach-service/internal/service"
	"clinic-outreach-service/internal/usecase"
	"clinic-outreach-service/pkg/jwt"
	"clinic-outreach-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	RedisClient *redis.Client
	SyncService *service.SyncService
	Server      *http.Server
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

	// Initialize snapshot storage
	store, err := storage.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	logrus.Infof("Snapshot storage ready at %s", cfg.Storage.DataDir)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, syncService, err := initializeServer(cfg, store, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server
	app.SyncService = syncService

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, store storage.Store, redisClient *redis.Client) (*http.Server, *service.SyncService, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories and load the persisted snapshots
	patientRepo := repository.NewPatientRepository(store)
	appointmentRepo := repository.NewAppointmentRepository(store)
	if err := patientRepo.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load patients: %w", err)
	}
	if err := appointmentRepo.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	// Initialize scheduling grid derivations
	slotIndex := service.NewSlotIndex(appointmentRepo)
	availabilityChecker := service.NewAvailabilityChecker(slotIndex)

	// Initialize usecases
	settingsUsecase := usecase.NewSettingsUsecase(log, store)
	if err := settingsUsecase.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	syncService := service.NewSyncService(redisClient, log, patientRepo, appointmentRepo, settingsUsecase)
	syncService.Start()

	authUsecase := usecase.NewAuthUsecase(log, cfg.Clinic, jwtService, redisClient, syncService)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, patientRepo, slotIndex, availabilityChecker)
	searchUsecase := usecase.NewSearchUsecase(log, patientRepo, appointmentRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	scheduleHandler := handler.NewScheduleHandler(appointmentUsecase)
	searchHandler := handler.NewSearchHandler(searchUsecase)
	settingsHandler := handler.NewSettingsHandler(settingsUsecase)
	syncHandler := handler.NewSyncHandler(syncService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		appointmentHandler,
		scheduleHandler,
		searchHandler,
		settingsHandler,
		syncHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
	return server, syncService, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
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

// Close stops background work and closes connections
func (app *App) Close() {
	if app.SyncService != nil {
		app.SyncService.Stop()
	}
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
