package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/task_patch.json
var taskPatchSchemaSource string

var taskPatchSchema = jsonschema.MustCompileString("task_patch.json", taskPatchSchemaSource)

// identifierFields are removed from a patch body before it is validated or applied.
var identifierFields = []string{"_id", "id"}

// ErrInvalidPatch wraps every rejection produced by decodeTaskPatch.
var ErrInvalidPatch = errors.New("invalid task patch")

// decodeTaskPatch parses a move/replace body. Identifier fields are dropped,
// the remainder is checked against the task patch schema, and unknown fields
// are ignored.
func decodeTaskPatch(body io.Reader) (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	raw, err := io.ReadAll(body)
	if err != nil {
		return patch, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		// An absent body is an empty patch.
		return patch, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return patch, fmt.Errorf("%w: malformed JSON: %w", ErrInvalidPatch, err)
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return patch, fmt.Errorf("%w: body must be a JSON object", ErrInvalidPatch)
	}
	for _, field := range identifierFields {
		delete(obj, field)
	}

	if err := taskPatchSchema.Validate(obj); err != nil {
		return patch, fmt.Errorf("%w: %s", ErrInvalidPatch, describeSchemaError(err))
	}

	// The schema guarantees every known field is a string.
	for key, target := range map[string]**string{
		"title":          &patch.Title,
		"description":    &patch.Description,
		"category":       &patch.Category,
		"email":          &patch.Email,
		"completionDate": &patch.CompletionDate,
		"completionTime": &patch.CompletionTime,
	} {
		if v, ok := obj[key].(string); ok {
			*target = &v
		}
	}

	return patch, nil
}

// describeSchemaError reports the most specific failure of a schema validation.
func describeSchemaError(err error) string {
	var vErr *jsonschema.ValidationError
	if !errors.As(err, &vErr) {
		return err.Error()
	}
	for len(vErr.Causes) > 0 {
		vErr = vErr.Causes[0]
	}
	field := strings.TrimPrefix(vErr.InstanceLocation, "/")
	if field == "" {
		return vErr.Message
	}
	return field + ": " + vErr.Message
}
