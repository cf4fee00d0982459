package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

const resourceTask = "Task"

// TaskHandler serves the /allTasks routes.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListAll handles GET /allTasks.
func (h *TaskHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, resourceTask)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// ListByOwner handles GET /allTasks/{email}.
func (h *TaskHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	tasks, err := h.taskService.ListByOwner(r.Context(), email)
	if err != nil {
		HandleAPIError(w, r, err, resourceTask)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /allTasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	id, err := h.taskService.Create(r.Context(), req.task())
	if err != nil {
		HandleAPIError(w, r, err, resourceTask)
		return
	}

	log.Debug("task insert acknowledged", slog.String("task_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, InsertResponse{
		Acknowledged: true,
		InsertedID:   id,
	})
}

// Move handles PUT /allTasks/{id}: a partial update used to move a task
// between categories or replace any of its fields.
func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	patch, err := decodeTaskPatch(http.MaxBytesReader(w, r.Body, shared.MaxBodyBytes))
	if err != nil {
		msg := "Invalid request format"
		if errors.Is(err, ErrInvalidPatch) {
			msg = err.Error()
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
		return
	}

	if err := h.taskService.MoveOrReplace(r.Context(), id, patch); err != nil {
		HandleAPIError(w, r, err, resourceTask)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MoveResponse{
		Success: true,
		Message: "Task updated successfully",
	})
}

// Edit handles PUT /allTasks/edit/{id}.
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req EditTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if err := h.taskService.EditFields(r.Context(), id, req.edit()); err != nil {
		HandleAPIError(w, r, err, resourceTask)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task edited successfully"})
}

// Delete handles DELETE /allTasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.taskService.Remove(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, resourceTask)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{
		Acknowledged: true,
		DeletedCount: deleted,
	})
}
