package store

import (
	"testing"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTaskPatchColumns(t *testing.T) {
	done := "done"
	title := "Write spec"
	date := "2026-10-20"

	assert.Empty(t, TaskPatchColumns(domain.TaskPatch{}))

	got := TaskPatchColumns(domain.TaskPatch{
		CompletionDate: &date,
		Category:       &done,
		Title:          &title,
	})
	assert.Equal(t, []ColumnValue{
		{Column: "title", Value: "Write spec"},
		{Column: "category", Value: "done"},
		{Column: "completion_date", Value: "2026-10-20"},
	}, got)
}
