package store

import "github.com/phrazzld/taskboard-api/internal/domain"

// ColumnValue pairs a tasks-table column with the value to write to it.
type ColumnValue struct {
	Column string
	Value  any
}

// TaskPatchColumns lists the columns a patch sets, in a stable order.
// SQL stores use it to build the SET clause of a partial update.
func TaskPatchColumns(p domain.TaskPatch) []ColumnValue {
	var cols []ColumnValue
	add := func(column string, v *string) {
		if v != nil {
			cols = append(cols, ColumnValue{Column: column, Value: *v})
		}
	}

	add("title", p.Title)
	add("description", p.Description)
	add("category", p.Category)
	add("email", p.Email)
	add("completion_date", p.CompletionDate)
	add("completion_time", p.CompletionTime)

	return cols
}
