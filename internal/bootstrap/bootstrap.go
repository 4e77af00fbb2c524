// Package bootstrap wires configuration, storage, repositories, services and
// controllers together for the server.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campusgate/admission-portal/internal/app/controllers"
	appMigrations "github.com/campusgate/admission-portal/internal/app/migrations"
	appRepos "github.com/campusgate/admission-portal/internal/app/repositories"
	appRoutes "github.com/campusgate/admission-portal/internal/app/routes"
	appServices "github.com/campusgate/admission-portal/internal/app/services"
	"github.com/campusgate/admission-portal/internal/config"
	"github.com/campusgate/admission-portal/internal/db"
	appMiddleware "github.com/campusgate/admission-portal/internal/middleware"
	pkgAuth "github.com/campusgate/admission-portal/internal/pkg/auth"
	"github.com/campusgate/admission-portal/internal/pkg/email"
	"github.com/campusgate/admission-portal/internal/pkg/filestorage"
	"github.com/campusgate/admission-portal/internal/pkg/helpers"
	"github.com/campusgate/admission-portal/internal/pkg/logger"
	"github.com/campusgate/admission-portal/internal/pkg/validation"
	"github.com/campusgate/admission-portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	Services              *appServices.Services
	AuthController        *appControllers.AuthController
	UserController        *appControllers.UserController
	ApplicationController *appControllers.ApplicationController
	AdminController       *appControllers.AdminController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	AuthLimiter           *appMiddleware.RateLimiter
	JWTService            *pkgAuth.JWTService
	FileStorage           *filestorage.LocalStorage
	EmailService          email.EmailService
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultAdmin(context.Background(), dbPool, cfg, lgr); err != nil {
		// The portal still works without the seed; an admin can be created later
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	// Base URL must match the static file route mounted by the server
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.BaseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	uploadRules := validation.NewUploadRules(cfg.Upload.MaxFileSize, cfg.Upload.AllowedMimeTypes)

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.FileStorage, uploadRules, deps.EmailService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)
	deps.AuthLimiter = appMiddleware.NewRateLimiter(5, 10)
	deps.AuthLimiter.StartCleanup(10 * time.Minute)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.Services.UserService, lgr)
	deps.ApplicationController = appControllers.NewApplicationController(deps.Services.ApplicationService, lgr)
	deps.AdminController = appControllers.NewAdminController(
		deps.Services.ApplicationService,
		deps.Services.UserService,
		deps.Services.AdminService,
		lgr,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.Metrics())

	router.GET("/metrics", appMiddleware.MetricsHandler())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.ApplicationController,
		deps.AdminController,
		deps.AuthMiddleware,
		deps.AuthLimiter,
	)

	return router
}
