package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countUsers(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func insertUser(ctx context.Context, tx *sql.Tx, id, email string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, email, name, photo_url) VALUES (?, ?, '', '')`, id, email)
	return err
}

func TestRunInTransaction_Commit(t *testing.T) {
	db := testdb.NewSQLite(t)
	ctx := context.Background()

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return insertUser(ctx, tx, "5f0c1a52-8f4e-4c55-9a36-0e6c6b3f8d11", "a@example.com")
	})

	require.NoError(t, err)
	assert.Equal(t, 1, countUsers(t, db))
}

func TestRunInTransaction_RollbackOnError(t *testing.T) {
	db := testdb.NewSQLite(t)
	ctx := context.Background()
	fnErr := errors.New("function failed")

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		if err := insertUser(ctx, tx, "5f0c1a52-8f4e-4c55-9a36-0e6c6b3f8d11", "a@example.com"); err != nil {
			return err
		}
		return fnErr
	})

	require.ErrorIs(t, err, fnErr)
	assert.Equal(t, 0, countUsers(t, db))
}

func TestRunInTransaction_RollbackOnPanic(t *testing.T) {
	db := testdb.NewSQLite(t)
	ctx := context.Background()

	assert.PanicsWithValue(t, "boom", func() {
		_ = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			if err := insertUser(ctx, tx, "5f0c1a52-8f4e-4c55-9a36-0e6c6b3f8d11", "a@example.com"); err != nil {
				return err
			}
			panic("boom")
		})
	})

	assert.Equal(t, 0, countUsers(t, db))
}
