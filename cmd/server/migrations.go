package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/taskmgr/task-api/internal/config"
	"github.com/taskmgr/task-api/internal/platform/postgres"
	"github.com/taskmgr/task-api/internal/redact"
)

// MigrationTableName is the goose bookkeeping table.
const MigrationTableName = "schema_migrations"

var migrationCommands = map[string]func(ctx context.Context, db *sql.DB) error{
	"up": func(ctx context.Context, db *sql.DB) error {
		return goose.UpContext(ctx, db, postgres.MigrationsDir)
	},
	"down": func(ctx context.Context, db *sql.DB) error {
		return goose.DownContext(ctx, db, postgres.MigrationsDir)
	},
	"status": func(ctx context.Context, db *sql.DB) error {
		return goose.StatusContext(ctx, db, postgres.MigrationsDir)
	},
	"version": func(ctx context.Context, db *sql.DB) error {
		return goose.VersionContext(ctx, db, postgres.MigrationsDir)
	},
	"reset": func(ctx context.Context, db *sql.DB) error {
		return goose.ResetContext(ctx, db, postgres.MigrationsDir)
	},
}

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error.
// It does not exit; the error is returned to main.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// configureGoose points goose at the embedded migrations.
func configureGoose(logger *slog.Logger, verbose bool) error {
	goose.SetBaseFS(postgres.Migrations)
	goose.SetTableName(MigrationTableName)
	goose.SetLogger(&slogGooseLogger{logger: logger})
	goose.SetVerbose(verbose)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// runMigrations executes a goose command against the configured database.
func runMigrations(cfg *config.Config, command string, verbose bool) error {
	run, ok := migrationCommands[command]
	if !ok {
		return fmt.Errorf("unknown migration command %q (want up, down, status, version or reset)", command)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.URL == "" {
		return fmt.Errorf("migrations need the postgres driver and database.url")
	}

	// A correlation ID ties together every log line of one migration run.
	migrationLogger := slog.Default().With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
	)

	if err := configureGoose(migrationLogger, verbose); err != nil {
		return err
	}

	ctx := context.Background()
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		migrationLogger.Error("Failed to connect for migrations", "error", redact.Error(err))
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Error("Error closing database connection", "error", closeErr)
		}
	}()

	start := time.Now()
	migrationLogger.Info("Starting migration operation", "operation", "goose "+command)
	if err := run(ctx, db); err != nil {
		migrationLogger.Error("Migration failed",
			"error", redact.Error(err),
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
