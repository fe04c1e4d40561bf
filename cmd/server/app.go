package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/taskmgr/task-api/internal/config"
	"github.com/taskmgr/task-api/internal/platform/memory"
	"github.com/taskmgr/task-api/internal/platform/postgres"
	"github.com/taskmgr/task-api/internal/service"
	"github.com/taskmgr/task-api/internal/service/auth"
	"github.com/taskmgr/task-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory driver is configured
	db *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService        auth.JWTService
	authenticator     *auth.Authenticator
	userService       service.UserService
	taskService       service.TaskService
	statisticsService service.StatisticsService

	registry *prometheus.Registry
}

// newApplication creates a new application instance with all dependencies initialized.
// For the postgres driver it opens and pings the database; the seed user is
// created before it returns when seeding is enabled.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.authenticator, err = auth.NewAuthenticator(
		app.userStore,
		auth.NewBcryptVerifier(),
		hasher,
		app.jwtService,
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, hasher, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.statisticsService, err = service.NewStatisticsService(app.taskStore, time.Now, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create statistics service: %w", err)
	}

	if err := seedAdmin(ctx, cfg.Seed, app.userService, logger); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupStores picks the store implementation named by database.driver.
func (app *application) setupStores(ctx context.Context) error {
	switch app.config.Database.Driver {
	case "memory":
		app.userStore = memory.NewUserStore(app.logger)
		app.taskStore = memory.NewTaskStore(app.logger)
		app.logger.Warn("Using in-memory stores; data is lost on restart")
		return nil

	case "postgres":
		db, err := setupAppDatabase(ctx, app.config, app.logger)
		if err != nil {
			return err
		}
		app.db = db
		app.userStore = postgres.NewPostgresUserStore(db, app.logger)
		app.taskStore = postgres.NewPostgresTaskStore(db, app.logger)
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", app.config.Database.Driver)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns when ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
