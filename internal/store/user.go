package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. If user.ID is uuid.Nil a new identifier is assigned.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// List returns every user in creation order.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes a user by ID and reports how many rows were deleted.
	// Deleting a missing user is not an error.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// WithTx returns a UserStore that runs its statements on tx.
	// Use it with RunInTransaction.
	WithTx(tx *sql.Tx) UserStore
}
