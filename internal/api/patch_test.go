package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTaskPatch(t *testing.T) {
	t.Run("known fields are set", func(t *testing.T) {
		patch, err := decodeTaskPatch(strings.NewReader(
			`{"title":"T","description":"","category":"done","email":"a@x.com","completionDate":"d","completionTime":"t"}`))
		require.NoError(t, err)
		require.NotNil(t, patch.Title)
		assert.Equal(t, "T", *patch.Title)
		require.NotNil(t, patch.Description)
		assert.Equal(t, "", *patch.Description)
		assert.Equal(t, "done", *patch.Category)
		assert.Equal(t, "a@x.com", *patch.Email)
		assert.Equal(t, "d", *patch.CompletionDate)
		assert.Equal(t, "t", *patch.CompletionTime)
	})

	t.Run("identifiers and unknown fields are dropped", func(t *testing.T) {
		patch, err := decodeTaskPatch(strings.NewReader(`{"_id":{"$oid":"x"},"id":1,"category":"done","extra":[1,2]}`))
		require.NoError(t, err)
		require.NotNil(t, patch.Category)
		assert.Nil(t, patch.Title)
		assert.Nil(t, patch.Email)
	})

	t.Run("empty body is an empty patch", func(t *testing.T) {
		patch, err := decodeTaskPatch(strings.NewReader("  "))
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})

	t.Run("only identifiers is an empty patch", func(t *testing.T) {
		patch, err := decodeTaskPatch(strings.NewReader(`{"_id":"abc"}`))
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})

	rejected := []struct {
		name     string
		body     string
		contains string
	}{
		{"malformed JSON", `{"title":`, "malformed JSON"},
		{"not an object", `"title"`, "must be a JSON object"},
		{"number title", `{"title":12}`, "title"},
		{"empty title", `{"title":""}`, "title"},
		{"null category", `{"category":null}`, "category"},
		{"long category", `{"category":"` + strings.Repeat("c", 65) + `"}`, "category"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeTaskPatch(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPatch))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
