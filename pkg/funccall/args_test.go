package funccall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractArguments(t *testing.T) {
	args, err := ExtractArguments(`{"city": "Paris", "days": 3, "detailed": true}`)
	require.NoError(t, err)
	assert.Equal(t, "Paris", args["city"])
	assert.Equal(t, float64(3), args["days"])
	assert.Equal(t, true, args["detailed"])
}

func TestExtractArgumentsEmptyObject(t *testing.T) {
	args, err := ExtractArguments(`{}`)
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.NotNil(t, args)
}

func TestExtractArgumentsRejectsNonObjects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed", raw: `{"city": `},
		{name: "array", raw: `[1, 2, 3]`},
		{name: "scalar", raw: `"just a string"`},
		{name: "null", raw: `null`},
		{name: "empty", raw: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractArguments(tt.raw)
			require.Error(t, err)
			var extractErr *ExtractionError
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, tt.raw, extractErr.Raw)
		})
	}
}

func TestValidateArguments(t *testing.T) {
	schema := []ArgumentSchema{
		{Name: "city", Type: "string", Required: true},
		{Name: "days", Type: "number"},
		{Name: "options", Type: "object"},
	}
	validator := NewArgumentValidator(DefaultArgValidationConfig())

	tests := []struct {
		name     string
		args     map[string]any
		expected map[string][]string
	}{
		{
			name: "valid",
			args: map[string]any{"city": "Paris", "days": float64(3)},
		},
		{
			name:     "missing required",
			args:     map[string]any{"days": float64(3)},
			expected: map[string][]string{"city": {"required argument missing"}},
		},
		{
			name:     "wrong type",
			args:     map[string]any{"city": "Paris", "days": "three"},
			expected: map[string][]string{"days": {"expected type number"}},
		},
		{
			name:     "unexpected argument",
			args:     map[string]any{"city": "Paris", "country": "France"},
			expected: map[string][]string{"country": {"unexpected argument"}},
		},
		{
			name: "several problems",
			args: map[string]any{"options": []any{"a"}, "extra": 1},
			expected: map[string][]string{
				"city":    {"required argument missing"},
				"options": {"expected type object"},
				"extra":   {"unexpected argument"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := validator.Validate(tt.args, schema)
			if tt.expected == nil {
				assert.Empty(t, problems)
				return
			}
			assert.Equal(t, tt.expected, problems)
		})
	}
}

func TestValidateArgumentsAllowExtra(t *testing.T) {
	validator := NewArgumentValidator(ArgValidationConfig{
		CheckTypes:    true,
		CheckRequired: true,
		AllowExtra:    true,
	})
	schema := []ArgumentSchema{{Name: "city", Type: "string", Required: true}}

	problems := validator.Validate(map[string]any{"city": "Paris", "extra": 1}, schema)
	assert.Empty(t, problems)
}
