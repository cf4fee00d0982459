package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/service"
)

const resourceUser = "User"

// UserHandler serves the /users routes.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, resourceUser)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// GetByEmail handles GET /users/{email}. An unknown email yields null.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.FindByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		HandleAPIError(w, r, err, resourceUser)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Create handles POST /users. Only the first sign-in for an email creates a record.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	id, created, err := h.userService.UpsertIfAbsent(r.Context(), req.user())
	if err != nil {
		HandleAPIError(w, r, err, resourceUser)
		return
	}
	if !created {
		shared.RespondWithError(w, r, http.StatusConflict, "User already exists")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, InsertResponse{
		Acknowledged: true,
		InsertedID:   id,
	})
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.userService.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err, resourceUser)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{
		Acknowledged: true,
		DeletedCount: deleted,
	})
}
