package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

const taskColumns = `id, title, description, category, email, completion_date, completion_time, created_at, updated_at`

// TaskStore implements store.TaskStore on SQLite.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a SQLite task store. If logger is nil, the default logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store"), slog.String("driver", "sqlite")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.Title,
		task.Description,
		task.Category,
		task.Email,
		task.CompletionDate,
		task.CompletionTime,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "create", "failed to insert task", mapError(err))
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("category", task.Category))
	return nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.queryTasks(ctx, "list", `SELECT `+taskColumns+` FROM tasks ORDER BY rowid`)
}

// ListByEmail implements store.TaskStore.ListByEmail
func (s *TaskStore) ListByEmail(ctx context.Context, email string) ([]*domain.Task, error) {
	return s.queryTasks(ctx, "list_by_email",
		`SELECT `+taskColumns+` FROM tasks WHERE email = ? ORDER BY rowid`, email)
}

// Patch implements store.TaskStore.Patch
func (s *TaskStore) Patch(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cols := store.TaskPatchColumns(patch)
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+2)
	for _, c := range cols {
		sets = append(sets, c.Column+" = ?")
		args = append(args, c.Value)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to patch task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "patch", "failed to update task", mapError(err))
	}

	if err := rowsAffectedOr(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for patch", slog.String("task_id", id.String()))
		return err
	}

	log.Info("task patched successfully",
		slog.String("task_id", id.String()),
		slog.Int("fields", len(cols)))
	return nil
}

// Edit implements store.TaskStore.Edit
func (s *TaskStore) Edit(ctx context.Context, id uuid.UUID, edit domain.TaskEdit) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks
		SET title = ?, description = ?, completion_date = ?, completion_time = ?, updated_at = ?
		WHERE id = ?`,
		edit.Title,
		edit.Description,
		edit.CompletionDate,
		edit.CompletionTime,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		log.Error("failed to edit task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "edit", "failed to update task", mapError(err))
	}

	if err := rowsAffectedOr(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for edit", slog.String("task_id", id.String()))
		return err
	}

	log.Info("task edited successfully", slog.String("task_id", id.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return 0, store.NewStoreError("task", "delete", "failed to delete task", mapError(err))
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("task", "delete", "failed to get rows affected", err)
	}

	log.Info("task delete completed",
		slog.String("task_id", id.String()),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

func (s *TaskStore) queryTasks(ctx context.Context, operation, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("operation", operation))
		return nil, store.NewStoreError("task", operation, "failed to query tasks", mapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", operation, "failed to scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", operation, "failed to read tasks", mapError(err))
	}

	log.Debug("tasks retrieved",
		slog.String("operation", operation),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

func scanTask(rows *sql.Rows) (*domain.Task, error) {
	var t domain.Task
	if err := rows.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Category,
		&t.Email,
		&t.CompletionDate,
		&t.CompletionTime,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
