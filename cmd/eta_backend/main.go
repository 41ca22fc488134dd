package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portsrepo "github.com/wkaram/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/core/services"
	"github.com/wkaram/expense_tracker_app/internal/handlers"
	"github.com/wkaram/expense_tracker_app/internal/middleware"
	"github.com/wkaram/expense_tracker_app/internal/platform/config"
	"github.com/wkaram/expense_tracker_app/internal/repositories/database/pgsql"
	"github.com/wkaram/expense_tracker_app/internal/repositories/memory"
	"github.com/wkaram/expense_tracker_app/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := buildRepository(cfg, logger)

	store := services.NewStore(repo)
	if err := store.Load(context.Background()); err != nil {
		logger.Error("Failed to load application data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	container := &portssvc.ServiceContainer{
		Ledger:      services.NewLedgerService(store),
		Monthly:     services.NewMonthlyPaymentService(store),
		Category:    services.NewCategoryService(store),
		Reporting:   services.NewReportingService(store),
		Portability: services.NewPortabilityService(store),
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if limiterInstance := buildRateLimiter(cfg, logger); limiterInstance != nil {
		r.Use(middleware.RateLimit(limiterInstance))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepository connects to PostgreSQL and runs migrations, or falls back
// to the in-memory repository when no database is configured.
func buildRepository(cfg *config.Config, logger *slog.Logger) portsrepo.AppDataRepository {
	if cfg.DatabaseURL == "" {
		logger.Warn("No PGSQL_URL configured, data will not survive restarts")
		return memory.NewAppDataRepository()
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database connection pool established")

	runMigrations(cfg, logger)

	return pgsql.NewPgxAppDataRepository(dbPool, cfg.StorageKey)
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection, using the pgx stdlib driver for compatibility
// with the main pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied successfully")
	}
}

// buildRateLimiter creates the per-IP limiter from the configured rate.
// An empty rate disables limiting.
func buildRateLimiter(cfg *config.Config, logger *slog.Logger) *limiter.Limiter {
	if cfg.RateLimit == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	return limiter.New(memorystore.NewStore(), rate)
}
