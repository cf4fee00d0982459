package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TaskStore is a testify mock of store.TaskStore.
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// List is a mock implementation of store.TaskStore.List
func (m *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByEmail is a mock implementation of store.TaskStore.ListByEmail
func (m *TaskStore) ListByEmail(ctx context.Context, email string) ([]*domain.Task, error) {
	args := m.Called(ctx, email)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Patch is a mock implementation of store.TaskStore.Patch
func (m *TaskStore) Patch(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

// Edit is a mock implementation of store.TaskStore.Edit
func (m *TaskStore) Edit(ctx context.Context, id uuid.UUID, edit domain.TaskEdit) error {
	args := m.Called(ctx, id, edit)
	return args.Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TaskStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// WithTx is a mock implementation of store.TaskStore.WithTx.
// Without an expectation it returns the mock itself.
func (m *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
