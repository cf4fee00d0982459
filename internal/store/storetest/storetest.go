// Package storetest holds behavioural tests shared by every store.TaskStore
// and store.UserStore implementation. Backends call the Run functions from
// their own tests with a constructor that returns an empty, isolated store.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

// uniqueEmail keeps tests independent on shared databases.
func uniqueEmail(t *testing.T) string {
	t.Helper()
	return "owner-" + uuid.NewString() + "@example.com"
}

func newTask(title, email string) *domain.Task {
	return &domain.Task{
		Title:          title,
		Description:    "description of " + title,
		Category:       domain.CategoryTodo,
		Email:          email,
		CompletionDate: "2024-06-01",
		CompletionTime: "17:00",
	}
}

func findTask(t *testing.T, s store.TaskStore, email string, id uuid.UUID) *domain.Task {
	t.Helper()
	tasks, err := s.ListByEmail(context.Background(), email)
	require.NoError(t, err)
	for _, task := range tasks {
		if task.ID == id {
			return task
		}
	}
	require.FailNow(t, "task not found", "id %s", id)
	return nil
}

func ids(tasks []*domain.Task) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

// RunTaskStoreTests exercises the store.TaskStore contract.
func RunTaskStoreTests(t *testing.T, newStore func(t *testing.T) store.TaskStore) {
	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		s := newStore(t)
		task := newTask("Write report", uniqueEmail(t))

		require.NoError(t, s.Create(context.Background(), task))

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)

		got := findTask(t, s, task.Email, task.ID)
		assert.Equal(t, task.Title, got.Title)
		assert.Equal(t, task.Description, got.Description)
		assert.Equal(t, task.Category, got.Category)
		assert.Equal(t, task.CompletionDate, got.CompletionDate)
		assert.Equal(t, task.CompletionTime, got.CompletionTime)
	})

	t.Run("Create rejects empty title", func(t *testing.T) {
		s := newStore(t)
		task := newTask("  ", uniqueEmail(t))

		err := s.Create(context.Background(), task)

		require.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("List returns tasks in creation order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		email := uniqueEmail(t)

		var created []uuid.UUID
		for _, title := range []string{"first", "second", "third"} {
			task := newTask(title, email)
			require.NoError(t, s.Create(ctx, task))
			created = append(created, task.ID)
			time.Sleep(time.Millisecond)
		}

		all, err := s.List(ctx)
		require.NoError(t, err)

		var ours []uuid.UUID
		for _, id := range ids(all) {
			for _, c := range created {
				if id == c {
					ours = append(ours, id)
				}
			}
		}
		assert.Equal(t, created, ours)
	})

	t.Run("ListByEmail filters by owner", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		alice, bob := uniqueEmail(t), uniqueEmail(t)

		a1 := newTask("a1", alice)
		b1 := newTask("b1", bob)
		a2 := newTask("a2", alice)
		for _, task := range []*domain.Task{a1, b1, a2} {
			require.NoError(t, s.Create(ctx, task))
			time.Sleep(time.Millisecond)
		}

		got, err := s.ListByEmail(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a1.ID, a2.ID}, ids(got))

		none, err := s.ListByEmail(ctx, uniqueEmail(t))
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("Patch sets only provided fields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task := newTask("Patch me", uniqueEmail(t))
		require.NoError(t, s.Create(ctx, task))

		err := s.Patch(ctx, task.ID, domain.TaskPatch{Category: ptr(domain.CategoryDone)})
		require.NoError(t, err)

		got := findTask(t, s, task.Email, task.ID)
		assert.Equal(t, domain.CategoryDone, got.Category)
		assert.Equal(t, task.Title, got.Title)
		assert.Equal(t, task.Description, got.Description)
		assert.Equal(t, task.CompletionDate, got.CompletionDate)
		assert.False(t, got.UpdatedAt.Before(task.UpdatedAt))
	})

	t.Run("Patch replaces several fields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task := newTask("Old", uniqueEmail(t))
		require.NoError(t, s.Create(ctx, task))

		patch := domain.TaskPatch{
			Title:       ptr("New"),
			Description: ptr(""),
			Category:    ptr(domain.CategoryInProgress),
		}
		require.NoError(t, s.Patch(ctx, task.ID, patch))

		got := findTask(t, s, task.Email, task.ID)
		assert.Equal(t, patch.Apply(*task).Title, got.Title)
		assert.Equal(t, "", got.Description)
		assert.Equal(t, domain.CategoryInProgress, got.Category)
	})

	t.Run("Patch with no fields succeeds", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task := newTask("Untouched", uniqueEmail(t))
		require.NoError(t, s.Create(ctx, task))

		require.NoError(t, s.Patch(ctx, task.ID, domain.TaskPatch{}))

		got := findTask(t, s, task.Email, task.ID)
		assert.Equal(t, task.Title, got.Title)
		assert.Equal(t, task.Category, got.Category)
	})

	t.Run("Patch missing task", func(t *testing.T) {
		s := newStore(t)

		err := s.Patch(context.Background(), uuid.New(), domain.TaskPatch{Title: ptr("x")})

		require.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("Edit overwrites editable fields only", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task := newTask("Before", uniqueEmail(t))
		task.Category = domain.CategoryInProgress
		require.NoError(t, s.Create(ctx, task))

		edit := domain.TaskEdit{
			Title:          "After",
			Description:    "",
			CompletionDate: "2025-01-01",
			CompletionTime: "09:30",
		}
		require.NoError(t, s.Edit(ctx, task.ID, edit))

		got := findTask(t, s, task.Email, task.ID)
		assert.Equal(t, "After", got.Title)
		assert.Equal(t, "", got.Description)
		assert.Equal(t, "2025-01-01", got.CompletionDate)
		assert.Equal(t, "09:30", got.CompletionTime)
		assert.Equal(t, domain.CategoryInProgress, got.Category)
		assert.Equal(t, task.Email, got.Email)
	})

	t.Run("Edit missing task", func(t *testing.T) {
		s := newStore(t)

		err := s.Edit(context.Background(), uuid.New(), domain.TaskEdit{Title: "x"})

		require.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task := newTask("Doomed", uniqueEmail(t))
		require.NoError(t, s.Create(ctx, task))

		n, err := s.Delete(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = s.Delete(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		remaining, err := s.ListByEmail(ctx, task.Email)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}

// RunUserStoreTests exercises the store.UserStore contract.
func RunUserStoreTests(t *testing.T, newStore func(t *testing.T) store.UserStore) {
	t.Run("Create and GetByEmail", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		user := &domain.User{Email: uniqueEmail(t), Name: "Ada", PhotoURL: "https://example.com/ada.png"}

		require.NoError(t, s.Create(ctx, user))
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		got, err := s.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "Ada", got.Name)
		assert.Equal(t, user.PhotoURL, got.PhotoURL)
	})

	t.Run("Create duplicate email", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		email := uniqueEmail(t)

		require.NoError(t, s.Create(ctx, &domain.User{Email: email, Name: "first"}))
		err := s.Create(ctx, &domain.User{Email: email, Name: "second"})

		require.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("Create rejects invalid email", func(t *testing.T) {
		s := newStore(t)

		err := s.Create(context.Background(), &domain.User{Email: "not-an-email"})

		require.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	t.Run("GetByEmail missing user", func(t *testing.T) {
		s := newStore(t)

		got, err := s.GetByEmail(context.Background(), uniqueEmail(t))

		require.ErrorIs(t, err, store.ErrUserNotFound)
		assert.Nil(t, got)
	})

	t.Run("List includes created users", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		u1 := &domain.User{Email: uniqueEmail(t)}
		u2 := &domain.User{Email: uniqueEmail(t)}
		require.NoError(t, s.Create(ctx, u1))
		require.NoError(t, s.Create(ctx, u2))

		users, err := s.List(ctx)
		require.NoError(t, err)

		emails := make([]string, 0, len(users))
		for _, u := range users {
			emails = append(emails, u.Email)
		}
		assert.Contains(t, emails, u1.Email)
		assert.Contains(t, emails, u2.Email)
	})

	t.Run("Delete reports count", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		user := &domain.User{Email: uniqueEmail(t)}
		require.NoError(t, s.Create(ctx, user))

		n, err := s.Delete(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = s.Delete(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		_, err = s.GetByEmail(ctx, user.Email)
		require.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
