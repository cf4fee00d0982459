package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlite"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run the services against real SQL on in-memory SQLite.

func TestTaskLifecycle_SQLite(t *testing.T) {
	db := testdb.NewSQLite(t)
	ctx := context.Background()
	tasks, err := service.NewTaskService(sqlite.NewTaskStore(db, testLogger), nil, "", testLogger)
	require.NoError(t, err)

	id, err := tasks.Create(ctx, &domain.Task{Title: "Write spec", Email: "a@x.com"})
	require.NoError(t, err)

	all, err := tasks.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, domain.CategoryTodo, all[0].Category)

	require.NoError(t, tasks.MoveOrReplace(ctx, id.String(), domain.TaskPatch{Category: strPtr(domain.CategoryDone)}))

	owned, err := tasks.ListByOwner(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, id, owned[0].ID)
	assert.Equal(t, domain.CategoryDone, owned[0].Category)
	assert.Equal(t, "Write spec", owned[0].Title)

	require.NoError(t, tasks.EditFields(ctx, id.String(), domain.TaskEdit{Title: "Write the spec"}))

	owned, err = tasks.ListByOwner(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Write the spec", owned[0].Title)
	assert.Equal(t, domain.CategoryDone, owned[0].Category)
	assert.Equal(t, "a@x.com", owned[0].Email)

	n, err := tasks.Remove(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = tasks.Remove(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	err = tasks.MoveOrReplace(ctx, id.String(), domain.TaskPatch{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpsertIfAbsent_SQLite(t *testing.T) {
	db := testdb.NewSQLite(t)
	ctx := context.Background()
	users, err := service.NewUserService(sqlite.NewUserStore(db, testLogger), db, testLogger)
	require.NoError(t, err)

	id, created, err := users.UpsertIfAbsent(ctx, &domain.User{Email: "a@x.com", Name: "Ada"})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := users.UpsertIfAbsent(ctx, &domain.User{Email: "a@x.com", Name: "Imposter"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again)

	all, err := users.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ada", all[0].Name)

	found, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)

	missing, err := users.FindByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	n, err := users.Remove(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
