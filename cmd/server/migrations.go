package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/platform/migrations"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlite"
)

const migrationUp = migrations.CommandUp

// migrationSource returns the goose dialect and embedded migrations for a driver.
func migrationSource(driver string) (string, fs.FS, error) {
	switch driver {
	case driverPostgres:
		return migrations.DialectPostgres, postgres.Migrations(), nil
	case driverSQLite:
		return migrations.DialectSQLite, sqlite.Migrations(), nil
	default:
		return "", nil, fmt.Errorf("no migrations for database driver %q", driver)
	}
}

// handleMigrations runs a goose command against db.
func handleMigrations(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	dialect, fsys, err := migrationSource(driver)
	if err != nil {
		return err
	}

	if err := migrations.Run(ctx, db, dialect, fsys, command, logger); err != nil {
		return err
	}

	version, err := migrations.CurrentVersion(ctx, db, dialect)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("Database schema version", "version", version, "command", command)
	return nil
}
