package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// CreateTaskRequest defines the payload for POST /allTasks.
type CreateTaskRequest struct {
	Title          string `json:"title"          validate:"required,max=500"`
	Description    string `json:"description"    validate:"max=10000"`
	Category       string `json:"category"       validate:"omitempty,max=64"`
	Email          string `json:"email"          validate:"omitempty,max=320"`
	CompletionDate string `json:"completionDate" validate:"max=64"`
	CompletionTime string `json:"completionTime" validate:"max=64"`
}

func (r CreateTaskRequest) task() *domain.Task {
	return &domain.Task{
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		Email:          r.Email,
		CompletionDate: r.CompletionDate,
		CompletionTime: r.CompletionTime,
	}
}

// EditTaskRequest defines the payload for PUT /allTasks/edit/{id}.
// Any other fields in the body are ignored.
type EditTaskRequest struct {
	Title          string `json:"title"          validate:"required,max=500"`
	Description    string `json:"description"    validate:"max=10000"`
	CompletionDate string `json:"completionDate" validate:"max=64"`
	CompletionTime string `json:"completionTime" validate:"max=64"`
}

func (r EditTaskRequest) edit() domain.TaskEdit {
	return domain.TaskEdit{
		Title:          r.Title,
		Description:    r.Description,
		CompletionDate: r.CompletionDate,
		CompletionTime: r.CompletionTime,
	}
}

// CreateUserRequest defines the payload for POST /users.
type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email,max=320"`
	Name     string `json:"name"     validate:"max=200"`
	PhotoURL string `json:"photoURL" validate:"max=2048"`
}

func (r CreateUserRequest) user() *domain.User {
	return &domain.User{
		Email:    r.Email,
		Name:     r.Name,
		PhotoURL: r.PhotoURL,
	}
}

// TokenRequest defines the payload for POST /jwt.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email,max=320"`
	Name  string `json:"name"  validate:"max=200"`
}

// InsertResponse reports a created record.
type InsertResponse struct {
	Acknowledged bool      `json:"acknowledged"`
	InsertedID   uuid.UUID `json:"insertedId"`
}

// DeleteResponse reports how many records a delete removed.
type DeleteResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// MoveResponse is returned by PUT /allTasks/{id}.
type MoveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by POST /jwt.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SuccessResponse is returned by POST /logout.
type SuccessResponse struct {
	Success bool `json:"success"`
}
