package postgres_test

import (
	"testing"

	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/store/storetest"
	"github.com/phrazzld/taskboard-api/internal/testdb"
)

// Each subtest runs in its own transaction, so these tests are safe on a shared database.

func TestPostgresTaskStore(t *testing.T) {
	db := testdb.OpenPostgres(t)
	storetest.RunTaskStoreTests(t, func(t *testing.T) store.TaskStore {
		return postgres.NewPostgresTaskStore(testdb.BeginTx(t, db), nil)
	})
}

func TestPostgresUserStore(t *testing.T) {
	db := testdb.OpenPostgres(t)
	storetest.RunUserStoreTests(t, func(t *testing.T) store.UserStore {
		return postgres.NewPostgresUserStore(testdb.BeginTx(t, db), nil)
	})
}
