package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskService provides the task board operations.
type TaskService interface {
	// ListAll returns every task in creation order.
	ListAll(ctx context.Context) ([]*domain.Task, error)

	// ListByOwner returns the tasks whose email equals email.
	// No match yields an empty slice, not an error.
	ListByOwner(ctx context.Context, email string) ([]*domain.Task, error)

	// Create inserts task and returns its new identifier. A missing category
	// is set to the default. Any identifier on the input is discarded.
	Create(ctx context.Context, task *domain.Task) (uuid.UUID, error)

	// MoveOrReplace applies a set-only partial update to the task with the given id.
	// An empty patch is not an error.
	MoveOrReplace(ctx context.Context, id string, patch domain.TaskPatch) error

	// EditFields overwrites title, description, completionDate and completionTime.
	EditFields(ctx context.Context, id string, edit domain.TaskEdit) error

	// Remove deletes a task and returns the number of deleted records.
	// Removing a missing task returns 0 and no error.
	Remove(ctx context.Context, id string) (int64, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore       store.TaskStore
	categories      domain.CategorySet
	defaultCategory string
	logger          *slog.Logger
}

// NewTaskService creates a TaskService. Categories is the accepted category
// set and defaultCategory, which must belong to it, is assigned to new tasks
// without one. An empty categories slice selects domain.DefaultCategories.
func NewTaskService(
	taskStore store.TaskStore,
	categories []string,
	defaultCategory string,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if len(categories) == 0 {
		categories = domain.DefaultCategories
	}
	if defaultCategory == "" {
		defaultCategory = domain.CategoryTodo
	}
	set := domain.CategorySet(categories)
	if !set.Contains(defaultCategory) {
		return nil, fmt.Errorf("default category %q is not in %v", defaultCategory, categories)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskServiceImpl{
		taskStore:       taskStore,
		categories:      set,
		defaultCategory: defaultCategory,
		logger:          logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListAll implements TaskService.ListAll
func (s *TaskServiceImpl) ListAll(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, mapStoreError(err)
	}
	return tasks, nil
}

// ListByOwner implements TaskService.ListByOwner
func (s *TaskServiceImpl) ListByOwner(ctx context.Context, email string) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByEmail(ctx, email)
	if err != nil {
		s.log(ctx).Error("failed to list tasks by owner", slog.String("error", err.Error()))
		return nil, mapStoreError(err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// Create implements TaskService.Create
func (s *TaskServiceImpl) Create(ctx context.Context, task *domain.Task) (uuid.UUID, error) {
	log := s.log(ctx)

	if task == nil {
		return uuid.Nil, domain.NewValidationError("task", "is required", domain.ErrValidation)
	}

	task.ID = uuid.Nil
	if task.Category == "" {
		task.Category = s.defaultCategory
	}
	if err := s.categories.Check(task.Category); err != nil {
		log.Debug("rejected task with unknown category", slog.String("category", task.Category))
		return uuid.Nil, err
	}
	if err := task.Validate(); err != nil {
		return uuid.Nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return uuid.Nil, mapStoreError(err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("category", task.Category))
	return task.ID, nil
}

// MoveOrReplace implements TaskService.MoveOrReplace
func (s *TaskServiceImpl) MoveOrReplace(ctx context.Context, id string, patch domain.TaskPatch) error {
	log := s.log(ctx)

	taskID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if patch.Category != nil {
		if err := s.categories.Check(*patch.Category); err != nil {
			return err
		}
	}

	if err := s.taskStore.Patch(ctx, taskID, patch); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for move", slog.String("task_id", taskID.String()))
		} else {
			log.Error("failed to move task",
				slog.String("error", err.Error()),
				slog.String("task_id", taskID.String()))
		}
		return mapStoreError(err)
	}

	log.Info("task updated",
		slog.String("task_id", taskID.String()),
		slog.Bool("empty_patch", patch.IsEmpty()))
	return nil
}

// EditFields implements TaskService.EditFields
func (s *TaskServiceImpl) EditFields(ctx context.Context, id string, edit domain.TaskEdit) error {
	log := s.log(ctx)

	taskID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := edit.Validate(); err != nil {
		return err
	}

	if err := s.taskStore.Edit(ctx, taskID, edit); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for edit", slog.String("task_id", taskID.String()))
		} else {
			log.Error("failed to edit task",
				slog.String("error", err.Error()),
				slog.String("task_id", taskID.String()))
		}
		return mapStoreError(err)
	}

	log.Info("task edited", slog.String("task_id", taskID.String()))
	return nil
}

// Remove implements TaskService.Remove
func (s *TaskServiceImpl) Remove(ctx context.Context, id string) (int64, error) {
	taskID, err := parseID(id)
	if err != nil {
		return 0, err
	}

	deleted, err := s.taskStore.Delete(ctx, taskID)
	if err != nil {
		s.log(ctx).Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return 0, mapStoreError(err)
	}
	return deleted, nil
}

func (s *TaskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
