package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusForbidden},
		{"expired token", fmt.Errorf("wrapped: %w", auth.ErrExpiredToken), http.StatusForbidden},
		{"not yet valid", auth.ErrTokenNotYetValid, http.StatusForbidden},
		{"invalid id", fmt.Errorf("%w: %w", service.ErrInvalidIdentifier, domain.ErrInvalidID), http.StatusBadRequest},
		{"validation", domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyTitle), http.StatusBadRequest},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"conflict", service.ErrConflict, http.StatusConflict},
		{"store unavailable", service.ErrStoreUnavailable, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, MsgUnauthorized, GetSafeErrorMessage(auth.ErrMissingToken, ""))
	assert.Equal(t, MsgForbidden, GetSafeErrorMessage(auth.ErrExpiredToken, ""))
	assert.Equal(t, "Invalid ID", GetSafeErrorMessage(service.ErrInvalidIdentifier, "Task"))
	assert.Equal(t, "Task not found", GetSafeErrorMessage(service.ErrNotFound, "Task"))
	assert.Equal(t, "Resource not found", GetSafeErrorMessage(service.ErrNotFound, ""))
	assert.Equal(t, "User already exists", GetSafeErrorMessage(service.ErrConflict, "User"))
	assert.Equal(t, "Invalid title: cannot be empty",
		GetSafeErrorMessage(domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyTitle), "Task"))
	assert.Equal(t, "Validation error",
		GetSafeErrorMessage(domain.NewValidationError("", "rejected by storage constraints", nil), "Task"))

	// Internal details never reach the client.
	internal := fmt.Errorf("%w: pq: password=hunter2", service.ErrStoreUnavailable)
	assert.Equal(t, msgInternal, GetSafeErrorMessage(internal, "Task"))
	assert.Equal(t, msgInternal, GetSafeErrorMessage(nil, "Task"))
}

func TestSanitizeValidationError(t *testing.T) {
	err := validator.New().Struct(CreateUserRequest{Email: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email: invalid email format", SanitizeValidationError(err))

	err = validator.New().Struct(CreateTaskRequest{})
	require.Error(t, err)
	assert.Equal(t, "Invalid title: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
