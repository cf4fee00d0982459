package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// Messages for token failures, shared with the token middleware.
const (
	MsgUnauthorized = middleware.MsgUnauthorized
	MsgForbidden    = middleware.MsgForbidden
)

const msgInternal = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusForbidden

	case errors.Is(err, service.ErrInvalidIdentifier),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. resource
// names the addressed entity in not-found and conflict messages.
func GetSafeErrorMessage(err error, resource string) string {
	if err == nil {
		return msgInternal
	}
	if resource == "" {
		resource = "Resource"
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return MsgUnauthorized

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return MsgForbidden

	case errors.Is(err, service.ErrInvalidIdentifier):
		return "Invalid ID"

	case errors.Is(err, domain.ErrValidation):
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) && vErr.Field != "" {
			return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
		}
		return "Validation error"

	case errors.Is(err, service.ErrNotFound):
		return resource + " not found"

	case errors.Is(err, service.ErrConflict):
		return resource + " already exists"

	default:
		return msgInternal
	}
}

// HandleAPIError writes the status and safe message for err and logs the redacted error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	shared.RespondWithErrorAndLog(
		w, r,
		MapErrorToStatusCode(err),
		GetSafeErrorMessage(err, resource),
		err,
	)
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field, without exposing Go type names.
func SanitizeValidationError(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "Validation error"
	}

	fe := vErrs[0]
	field := fe.Field()
	if field != "" {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
