package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ParseID validates an identifier received from outside the process.
// Identifiers are opaque UUIDs; any other format is rejected with ErrInvalidID.
func ParseID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, NewValidationError("id", "is required", ErrInvalidID)
	}

	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, NewValidationError("id", "has invalid format", ErrInvalidID)
	}

	return id, nil
}
