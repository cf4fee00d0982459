package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Service errors. Every error returned by a service wraps one of these or a
// domain validation error.
var (
	// ErrInvalidIdentifier indicates a malformed identifier from the caller.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNotFound indicates a well-formed identifier that matched no record.
	// API layer should map this to HTTP 404 Not Found.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation such as a duplicate user email.
	// API layer should map this to HTTP 409 Conflict.
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable covers every other storage failure.
	// API layer should map this to HTTP 500 with a generic message.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// parseID validates an identifier taken from the request boundary.
func parseID(raw string) (uuid.UUID, error) {
	id, err := domain.ParseID(raw)
	if err != nil {
		return id, fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
	}
	return id, nil
}

// mapStoreError translates a store error into the service taxonomy.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrValidation):
		return err
	case store.IsNotFoundError(err):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case store.IsDuplicateError(err):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, store.ErrInvalidEntity):
		return domain.NewValidationError("", "rejected by storage constraints", err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
