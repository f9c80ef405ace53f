package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medassist/config"
	"medassist/internal/delivery/dto"
	deliveryHttp "medassist/internal/delivery/http"
	"medassist/internal/delivery/http/handler"
	"medassist/internal/delivery/http/middleware"
	"medassist/internal/infrastructure/ai"
	"medassist/internal/infrastructure/cache"
	"medassist/internal/infrastructure/database"
	"medassist/internal/repository"
	"medassist/internal/service"
	"medassist/internal/usecase"
	"medassist/pkg/jwt"
	"medassist/pkg/validator"

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

// LoadConfig sets up logging and reads configuration. Commands that only
// need the database settings, such as migrate, stop here.
func LoadConfig() (*config.Config, error) {
	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logrus.Info("Configuration loaded successfully")

	return cfg, nil
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// CreateAdmin provisions an administrator account against the configured
// database without starting the server
func CreateAdmin(ctx context.Context, cfg *config.Config, req *dto.CreateAdminRequest) (*dto.UserResponse, error) {
	customValidator := validator.NewValidator()
	if err := customValidator.Validate(req); err != nil {
		return nil, fmt.Errorf("invalid admin account: %v", customValidator.FormatValidationErrors(err))
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app := &App{Config: cfg, DB: db}
	defer app.Close()

	log := logrus.StandardLogger()
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())

	// tokens are never issued here
	authUsecase := usecase.NewAuthUsecase(db, log, repository.NewUserRepository(), repository.NewDoctorProfileRepository(), auditService, nil, nil)

	return authUsecase.CreateAdmin(ctx, req)
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize AI upstream
	toolCaller, err := ai.NewToolCaller(cfg.AI, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}
	if cfg.AI.GatewayAPIKey == "" && cfg.AI.GeminiAPIKey == "" {
		log.Warn("No AI API key configured, AI requests will fail")
	}
	logrus.Infof("AI provider: %s (model %s)", cfg.AI.Provider, cfg.AI.Model)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	patientRepo := repository.NewPatientRepository()
	symptomRecordRepo := repository.NewSymptomRecordRepository()
	diagnosisRepo := repository.NewDiagnosisRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	summaryRepo := repository.NewMedicalSummaryRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	tokenStore := service.NewRedisTokenStore(log, redisClient)
	clinicalAI := service.NewClinicalAIService(log, toolCaller)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, doctorProfileRepo, auditService, tokenStore, jwtService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, userRepo, doctorProfileRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	analysisUsecase := usecase.NewSymptomAnalysisUsecase(db, log, patientRepo, symptomRecordRepo, diagnosisRepo, treatmentRepo, clinicalAI, auditService)
	summaryUsecase := usecase.NewMedicalSummaryUsecase(db, log, patientRepo, summaryRepo, clinicalAI, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	analysisHandler := handler.NewAnalysisHandler(analysisUsecase, customValidator)
	summaryHandler := handler.NewSummaryHandler(summaryUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)
	functionHandler := handler.NewFunctionHandler(clinicalAI)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		doctorHandler,
		patientHandler,
		analysisHandler,
		summaryHandler,
		auditLogHandler,
		functionHandler,
		authMiddleware,
		corsMiddleware,
	)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

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
	return nil
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
