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

	appControllers "github.com/schoolhub/backend/internal/app/controllers"
	appMigrations "github.com/schoolhub/backend/internal/app/migrations"
	appRepos "github.com/schoolhub/backend/internal/app/repositories"
	appRoutes "github.com/schoolhub/backend/internal/app/routes"
	appServices "github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/config"
	"github.com/schoolhub/backend/internal/db"
	appMiddleware "github.com/schoolhub/backend/internal/middleware"
	pkgAuth "github.com/schoolhub/backend/internal/pkg/auth"
	"github.com/schoolhub/backend/internal/pkg/filestorage"
	"github.com/schoolhub/backend/internal/pkg/helpers"
	"github.com/schoolhub/backend/internal/pkg/httpclient"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
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

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	storage, err := filestorage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	geoClient := httpclient.NewClient(nil)
	deps.Services = appServices.NewServices(deps.Repos, storage, geoClient, cfg.Geo.BaseURL)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &appRoutes.Controllers{
		Campus:            appControllers.NewCampusController(deps.Services.CampusService),
		FeeTemplate:       appControllers.NewFeeTemplateController(deps.Services.FeeTemplateService),
		Fee:               appControllers.NewFeeController(deps.Services.FeeService),
		Payment:           appControllers.NewPaymentController(deps.Services.PaymentService),
		Syllabus:          appControllers.NewSyllabusController(deps.Services.SyllabusService),
		StudentRecord:     appControllers.NewStudentRecordController(deps.Services.StudentRecordService),
		LeavePolicy:       appControllers.NewLeavePolicyController(deps.Services.LeavePolicyService),
		ParentFeedControl: appControllers.NewParentFeedControlController(deps.Services.ParentFeedControlService),
		ChatPreference:    appControllers.NewChatPreferenceController(deps.Services.ChatPreferenceService),
		Device:            appControllers.NewDeviceController(deps.Services.DeviceService),
		QuizSession:       appControllers.NewQuizSessionController(deps.Services.QuizSessionService),
		AppBuild:          appControllers.NewAppBuildController(deps.Services.AppBuildService),
		Geo:               appControllers.NewGeoController(deps.Services.GeoService),
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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
