//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/taskmgr/task-api/internal/ciutil"
	"github.com/taskmgr/task-api/internal/platform/postgres"
	"github.com/taskmgr/task-api/internal/redact"
)

// TestTimeout bounds the connection check and migrations.
const TestTimeout = 10 * time.Second

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDatabaseURL returns the configured test database URL, or "".
// DATABASE_URL is accepted when TASKAPI_TEST_DATABASE_URL is unset.
func GetTestDatabaseURL() string {
	return ciutil.TestDatabaseURL(nil)
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDB opens the test database, applies migrations once per test
// binary and closes the pool when t finishes. It skips t when no database
// is configured, except in CI where a missing database fails the test.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if ShouldSkipDatabaseTest() {
		if ciutil.IsCI() {
			t.Fatalf("%s must be set in CI", ciutil.EnvTestDatabaseURL)
		}
		t.Skipf("%s not set; skipping database test", ciutil.EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", GetTestDatabaseURL())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("test database unreachable at %s: %v",
			redact.String(GetTestDatabaseURL()), err)
	}

	migrateOnce.Do(func() { migrateErr = migrate(db) })
	require.NoError(t, migrateErr, "failed to migrate test database")

	return db
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(postgres.Migrations)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// sharing a database do not see each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
