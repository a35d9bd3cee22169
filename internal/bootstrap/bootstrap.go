package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/examplatform/backend/internal/app/controllers"
	"github.com/examplatform/backend/internal/app/migrations"
	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/app/routes"
	"github.com/examplatform/backend/internal/app/services"
	"github.com/examplatform/backend/internal/config"
	"github.com/examplatform/backend/internal/db"
	"github.com/examplatform/backend/internal/pkg/ai"
	"github.com/examplatform/backend/internal/pkg/auth"
	"github.com/examplatform/backend/internal/pkg/helpers"
	"github.com/examplatform/backend/internal/pkg/logger"
	"github.com/examplatform/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *repositories.Repositories
	Services    *services.Services
	Controllers *controllers.Controllers
	JWTService  *auth.JWTService
	Database    *db.PostgresDB
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

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
// seeds default data
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := migrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Database: database, Logger: lgr}

	deps.Repos = repositories.NewRepositories(database.Pool)

	tokenTTL := helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour)
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: tokenTTL,
		TokenIssuer:    cfg.JWT.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	deps.JWTService = jwtService

	var generator services.TextGenerator
	if cfg.AI.APIKey != "" {
		client, err := ai.NewClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to initialize AI client, question drafting disabled")
		} else {
			generator = client
		}
	} else {
		lgr.Info().Msg("No AI API key configured, question drafting disabled")
	}

	deps.Services = services.NewServices(deps.Repos, jwtService, tokenTTL, database, generator)
	deps.Controllers = controllers.NewControllers(deps.Services)
	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	routes.SetupRoutes(router, deps.Controllers, deps.JWTService, deps.Repos.UserRepository)
	return router
}
