package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/taskboard-api/internal/platform/migrations"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// PostgresURLEnv names the variable holding the integration database URL.
const PostgresURLEnv = "TASKBOARD_TEST_DATABASE_URL"

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// PostgresURL returns the integration database URL, or "" when none is configured.
func PostgresURL() string {
	return os.Getenv(PostgresURLEnv)
}

// ShouldSkipPostgres reports whether PostgreSQL integration tests should be skipped.
func ShouldSkipPostgres() bool {
	return PostgresURL() == ""
}

// NewSQLite opens a fresh in-memory SQLite database with all migrations
// applied. The database is closed when the test finishes.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err, "Failed to open in-memory database")
	t.Cleanup(func() { CleanupDB(t, db) })

	err = migrations.Up(ctx, db, migrations.DialectSQLite, sqlite.Migrations(), nil)
	require.NoError(t, err, "Failed to run migrations")

	return db
}

// OpenPostgres connects to the integration database and applies migrations.
// The test is skipped when no database URL is configured.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	if ShouldSkipPostgres() {
		t.Skip(PostgresURLEnv + " not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sql.Open("pgx", PostgresURL())
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() { CleanupDB(t, db) })

	require.NoError(t, db.PingContext(ctx), "Database ping failed")

	err = migrations.Up(ctx, db, migrations.DialectPostgres, postgres.Migrations(), nil)
	require.NoError(t, err, "Failed to run migrations")

	return db
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// CleanupDB closes db, logging rather than failing on error.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}

// BeginTx starts a transaction that is rolled back when the test finishes.
func BeginTx(t *testing.T, db *sql.DB) *sql.Tx {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")
	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	})
	return tx
}
