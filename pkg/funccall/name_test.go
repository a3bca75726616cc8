package funccall

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierAcceptsValidNames(t *testing.T) {
	identifier, err := NewIdentifier(DefaultNameConfig())
	require.NoError(t, err)

	tests := []string{"get_weather", "getWeather", "_helper", "weather.lookup"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			accepted, issues := identifier.Identify(name)
			assert.Empty(t, issues)
			assert.Equal(t, name, accepted)
		})
	}
}

func TestIdentifierRejectsInvalidNames(t *testing.T) {
	identifier, err := NewIdentifier(DefaultNameConfig())
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "starts with digit", input: "1call"},
		{name: "bad characters", input: "drop table;"},
		{name: "too long", input: strings.Repeat("a", 65)},
		{name: "dunder prefix", input: "__private"},
		{name: "system prefix", input: "system_reset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, issues := identifier.Identify(tt.input)
			assert.Empty(t, accepted)
			assert.NotEmpty(t, issues)
		})
	}
}

func TestIdentifierCaseInsensitive(t *testing.T) {
	cfg := DefaultNameConfig()
	cfg.CaseSensitive = false
	identifier, err := NewIdentifier(cfg)
	require.NoError(t, err)

	accepted, issues := identifier.Identify("GetWeather")
	assert.Empty(t, issues)
	assert.Equal(t, "getweather", accepted)
}

func TestSanitizeName(t *testing.T) {
	sanitizer := NewNameSanitizer(DefaultSanitizeConfig())

	tests := []struct {
		name     string
		input    string
		expected string
		changed  []string
	}{
		{
			name:     "camel case with spaces",
			input:    "getWeather Data",
			expected: "get_weather_data",
			changed:  []string{"whitespace_removed", "case_normalized"},
		},
		{
			name:     "underscore runs and edges",
			input:    "_fetch__user_",
			expected: "fetch_user",
			changed:  []string{"separators_normalized"},
		},
		{
			name:     "invalid characters",
			input:    "look-up!",
			expected: "lookup",
			changed:  []string{"invalid_chars_removed"},
		},
		{
			name:     "already clean",
			input:    "lookup",
			expected: "lookup",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, changes := sanitizer.Sanitize(tt.input)
			assert.Equal(t, tt.expected, result)
			for _, key := range tt.changed {
				assert.True(t, changes[key], key)
			}
			if len(tt.changed) == 0 {
				for key, c := range changes {
					assert.False(t, c, key)
				}
			}
		})
	}
}
