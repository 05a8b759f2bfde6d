package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dental-lab-backend/config"
	deliveryHttp "dental-lab-backend/internal/delivery/http"
	"dental-lab-backend/internal/delivery/http/handler"
	"dental-lab-backend/internal/delivery/http/middleware"
	"dental-lab-backend/internal/infrastructure/cache"
	"dental-lab-backend/internal/infrastructure/database"
	"dental-lab-backend/internal/repository"
	"dental-lab-backend/internal/service"
	"dental-lab-backend/internal/usecase"
	"dental-lab-backend/pkg/jwt"
	"dental-lab-backend/pkg/validator"

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

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	sessionRepo := repository.NewSessionRepository()
	dentistRepo := repository.NewDentistRepository()
	staffRepo := repository.NewStaffRepository()
	caseRepo := repository.NewCaseRepository()
	stageRepo := repository.NewWorkflowStageRepository()
	invoiceRepo := repository.NewInvoiceRepository()
	paymentRepo := repository.NewPaymentRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize services
	mailer := service.NewMailer(cfg.SMTP, log)
	auditService := service.NewAuditService(log, auditRepo)
	storage, err := service.NewCloudinaryStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, sessionRepo, jwtService, redisClient, mailer)
	caseUsecase := usecase.NewCaseUsecase(db, log, caseRepo, dentistRepo, storage, mailer)
	workflowUsecase := usecase.NewWorkflowUsecase(db, log, stageRepo, caseRepo)
	billingUsecase := usecase.NewBillingUsecase(db, log, invoiceRepo, paymentRepo, caseRepo)
	dentistUsecase := usecase.NewDentistUsecase(db, log, dentistRepo, userRepo, roleRepo, auditService, mailer)
	staffUsecase := usecase.NewStaffUsecase(db, log, staffRepo, userRepo, roleRepo, auditService)
	roleUsecase := usecase.NewRoleUsecase(db, log, roleRepo, userRepo, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	caseHandler := handler.NewCaseHandler(caseUsecase, customValidator)
	workflowHandler := handler.NewWorkflowHandler(workflowUsecase, customValidator)
	billingHandler := handler.NewBillingHandler(billingUsecase, customValidator)
	dentistHandler := handler.NewDentistHandler(dentistUsecase, customValidator)
	staffHandler := handler.NewStaffHandler(staffUsecase, customValidator)
	roleHandler := handler.NewRoleHandler(roleUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		caseHandler,
		workflowHandler,
		billingHandler,
		dentistHandler,
		staffHandler,
		roleHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
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
