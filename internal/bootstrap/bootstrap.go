// Package bootstrap initializes and wires the application dependencies
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/arnav/gradlink/internal/app/controllers"
	appMigrations "github.com/arnav/gradlink/internal/app/migrations"
	appRepos "github.com/arnav/gradlink/internal/app/repositories"
	appRoutes "github.com/arnav/gradlink/internal/app/routes"
	appServices "github.com/arnav/gradlink/internal/app/services"
	"github.com/arnav/gradlink/internal/config"
	"github.com/arnav/gradlink/internal/db"
	appMiddleware "github.com/arnav/gradlink/internal/middleware"
	pkgAuth "github.com/arnav/gradlink/internal/pkg/auth"
	"github.com/arnav/gradlink/internal/pkg/email"
	"github.com/arnav/gradlink/internal/pkg/filestorage"
	"github.com/arnav/gradlink/internal/pkg/helpers"
	"github.com/arnav/gradlink/internal/pkg/logger"
	"github.com/arnav/gradlink/internal/pkg/payment"
	"github.com/arnav/gradlink/internal/pkg/websocket"
	"github.com/arnav/gradlink/internal/pkg/wizard"
	"github.com/arnav/gradlink/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	UserService         *appServices.UserService
	PostService         *appServices.PostService
	CareerService       *appServices.CareerService
	EventRequestService *appServices.EventRequestService
	ApprovalService     *appServices.ApprovalService
	BookingService      *appServices.BookingService
	PaymentService      *appServices.PaymentService
	NotificationService *appServices.NotificationService
	LeaderboardService  *appServices.LeaderboardService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	WizardStore    *wizard.Store
	Hub            *websocket.Hub
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding trouble should not keep the server from starting
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := "http://localhost:" + cfg.Server.Port
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.WizardStore = wizard.NewStore(helpers.ParseDuration(cfg.Wizard.SessionTTL, wizard.DefaultTTL), lgr)

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   baseURL,
	}, lgr)

	gatewayClient := payment.NewClient(payment.Config{
		KeyID:     cfg.Payment.KeyID,
		KeySecret: cfg.Payment.KeySecret,
		BaseURL:   cfg.Payment.BaseURL,
		Timeout:   helpers.ParseDuration(cfg.Payment.Timeout, 15*time.Second),
	}, lgr)

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.VerificationTokenRepository,
		deps.JWTService,
		deps.WizardStore,
		emailService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.FileStorage, lgr)
	deps.PostService = appServices.NewPostService(deps.Repos.PostRepository, deps.Repos.UserRepository, lgr)
	deps.CareerService = appServices.NewCareerService(deps.Repos.CareerRepository, lgr)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository, deps.Hub, lgr)
	deps.EventRequestService = appServices.NewEventRequestService(deps.Repos.EventRequestRepository, deps.Repos.ApprovalRepository, lgr)
	deps.ApprovalService = appServices.NewApprovalService(
		deps.Repos.ApprovalRepository,
		deps.Repos.EventRequestRepository,
		deps.NotificationService,
		lgr,
	)
	deps.BookingService = appServices.NewBookingService(
		deps.Repos.BookingRepository,
		deps.Repos.PaymentRepository,
		deps.Repos.UserRepository,
		deps.WizardStore,
		gatewayClient,
		gatewayClient.KeyID(),
		cfg.Payment.Currency,
		cfg.Payment.ThemeColor,
		lgr,
	)
	deps.PaymentService = appServices.NewPaymentService(
		deps.Repos.PaymentRepository,
		deps.Repos.BookingRepository,
		deps.Repos.UserRepository,
		gatewayClient,
		deps.NotificationService,
		emailService,
		lgr,
	)
	deps.LeaderboardService = appServices.NewLeaderboardService(deps.Repos.LeaderboardRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, lgr),
		User:         appControllers.NewUserController(deps.UserService, lgr),
		Post:         appControllers.NewPostController(deps.PostService, lgr),
		Career:       appControllers.NewCareerController(deps.CareerService, lgr),
		EventRequest: appControllers.NewEventRequestController(deps.EventRequestService, lgr),
		Approval:     appControllers.NewApprovalController(deps.ApprovalService, lgr),
		Booking:      appControllers.NewBookingController(deps.BookingService, lgr),
		Payment:      appControllers.NewPaymentController(deps.PaymentService, lgr),
		Notification: appControllers.NewNotificationController(deps.NotificationService, lgr),
		Leaderboard:  appControllers.NewLeaderboardController(deps.LeaderboardService, lgr),
		WebSocket:    websocket.NewHandler(deps.Hub, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
