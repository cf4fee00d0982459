package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Well-known task categories. The set accepted at runtime is configurable.
const (
	CategoryTodo       = "todo"
	CategoryInProgress = "in-progress"
	CategoryDone       = "done"
)

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = []string{CategoryTodo, CategoryInProgress, CategoryDone}

// Task is a single card on the board.
// Email is a weak owner reference used only for filtering.
type Task struct {
	ID             uuid.UUID `json:"_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Email          string    `json:"email"`
	CompletionDate string    `json:"completionDate"`
	CompletionTime string    `json:"completionTime"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate checks the fields required for a task to be stored.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if t.Category == "" {
		return NewValidationError("category", "cannot be empty", ErrInvalidCategory)
	}
	return nil
}

// TaskPatch is a set-only partial update: nil fields are left untouched.
// It has no identifier field, so a patch can never rewrite a task's ID.
type TaskPatch struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Category       *string `json:"category,omitempty"`
	Email          *string `json:"email,omitempty"`
	CompletionDate *string `json:"completionDate,omitempty"`
	CompletionTime *string `json:"completionTime,omitempty"`
}

// IsEmpty reports whether the patch sets no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.Email == nil &&
		p.CompletionDate == nil &&
		p.CompletionTime == nil
}

// Validate checks the fields the patch sets.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if p.Category != nil && *p.Category == "" {
		return NewValidationError("category", "cannot be empty", ErrInvalidCategory)
	}
	return nil
}

// Apply returns a copy of t with the patch applied. It mirrors what the
// stores do in SQL and is used by tests and in-memory callers.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Email != nil {
		t.Email = *p.Email
	}
	if p.CompletionDate != nil {
		t.CompletionDate = *p.CompletionDate
	}
	if p.CompletionTime != nil {
		t.CompletionTime = *p.CompletionTime
	}
	return t
}

// TaskEdit carries exactly the user-editable fields of a task.
// Editing always writes all four; category, owner and ID are out of its reach.
type TaskEdit struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	CompletionDate string `json:"completionDate"`
	CompletionTime string `json:"completionTime"`
}

// Validate checks the edit payload.
func (e TaskEdit) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	return nil
}

// CategorySet is the list of categories a task may be placed in.
type CategorySet []string

// Contains reports whether category is a member of the set.
func (s CategorySet) Contains(category string) bool {
	return slices.Contains(s, category)
}

// Check returns a validation error when category is not in the set.
func (s CategorySet) Check(category string) error {
	if !s.Contains(category) {
		return NewValidationError(
			"category",
			"must be one of "+strings.Join(s, ", "),
			ErrInvalidCategory,
		)
	}
	return nil
}
