package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task. If task.ID is uuid.Nil a new identifier is
	// assigned; timestamps are set by the store. The task is updated in place.
	Create(ctx context.Context, task *domain.Task) error

	// List returns every task in creation order.
	// Returns an empty slice when there are none.
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByEmail returns the tasks whose owner email equals email.
	// Returns an empty slice when there are none.
	ListByEmail(ctx context.Context, email string) ([]*domain.Task, error)

	// Patch applies a set-only partial update and bumps UpdatedAt.
	// An empty patch still touches UpdatedAt.
	// Returns ErrTaskNotFound if no task has the given ID.
	Patch(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) error

	// Edit overwrites the four editable fields and bumps UpdatedAt.
	// Returns ErrTaskNotFound if no task has the given ID.
	Edit(ctx context.Context, id uuid.UUID, edit domain.TaskEdit) error

	// Delete removes a task and reports how many rows were deleted.
	// Deleting a missing task is not an error.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// WithTx returns a TaskStore that runs its statements on tx.
	// Use it with RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}
