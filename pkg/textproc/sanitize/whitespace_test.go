package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimSpaces(t *testing.T) {
	tests := []struct {
		name string
		cfg  SpaceTrimConfig
		in   string
		want string
	}{
		{
			name: "collapses space runs",
			cfg:  DefaultSpaceTrimConfig(),
			in:   "too    many     spaces",
			want: "too many spaces",
		},
		{
			name: "trims edges",
			cfg:  DefaultSpaceTrimConfig(),
			in:   "   padded   ",
			want: "padded",
		},
		{
			name: "keeps paragraph breaks",
			cfg:  DefaultSpaceTrimConfig(),
			in:   "one\n   \ntwo",
			want: "one\n\ntwo",
		},
		{
			name: "strips indentation by default",
			cfg:  DefaultSpaceTrimConfig(),
			in:   "first\n    second\n\tthird",
			want: "first\nsecond\nthird",
		},
		{
			name: "preserves indentation when asked",
			cfg: SpaceTrimConfig{
				TrimEdges:            true,
				MaxConsecutiveSpaces: 2,
				PreserveIndentation:  true,
			},
			in:   "first\n  second",
			want: "first\n  second",
		},
		{
			name: "collapse disabled",
			cfg:  SpaceTrimConfig{TrimEdges: true},
			in:   "a    b",
			want: "a    b",
		},
		{
			name: "empty input",
			cfg:  DefaultSpaceTrimConfig(),
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewSpaceTrimmer(tt.cfg)
			require.NoError(t, err)
			got, _ := tr.TrimSpaces(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimSpacesStats(t *testing.T) {
	tr, err := NewSpaceTrimmer(DefaultSpaceTrimConfig())
	require.NoError(t, err)

	_, stats := tr.TrimSpaces("  a   b  ")
	assert.Equal(t, 4, stats["edges_trimmed"])
	assert.Equal(t, 2, stats["spaces_removed"])
}

func TestTrimSpacesIdempotent(t *testing.T) {
	tr, err := NewSpaceTrimmer(DefaultSpaceTrimConfig())
	require.NoError(t, err)

	inputs := []string{
		"  a    b \n\n   \n c  ",
		"one\n\ttwo\n   \nthree",
		"no changes needed",
	}
	for _, in := range inputs {
		once, _ := tr.TrimSpaces(in)
		twice, stats := tr.TrimSpaces(once)
		assert.Equal(t, once, twice)
		assert.Equal(t, 0, stats["spaces_removed"])
		assert.Equal(t, 0, stats["edges_trimmed"])
	}
}

func TestNewSpaceTrimmerRejectsNegativeLimit(t *testing.T) {
	_, err := NewSpaceTrimmer(SpaceTrimConfig{MaxConsecutiveSpaces: -1})
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCleanBreaks(t *testing.T) {
	tests := []struct {
		name string
		cfg  LineBreakConfig
		in   string
		want string
	}{
		{
			name: "normalizes endings",
			cfg:  DefaultLineBreakConfig(),
			in:   "a\r\nb\rc\nd",
			want: "a\nb\nc\nd",
		},
		{
			name: "collapses blank line runs",
			cfg:  DefaultLineBreakConfig(),
			in:   "a\n\n\n\n\nb",
			want: "a\n\nb",
		},
		{
			name: "keeps fenced code verbatim",
			cfg:  DefaultLineBreakConfig(),
			in:   "before\n\n\n```\nx\n\n\n\ny\n```\nafter",
			want: "before\n\n```\nx\n\n\n\ny\n```\nafter",
		},
		{
			name: "preserves markdown hard breaks",
			cfg: LineBreakConfig{
				MaxConsecutiveBreaks:   1,
				NormalizeLineEndings:   true,
				PreserveMarkdownBreaks: true,
			},
			in:   "line one  \nline two",
			want: "line one  \nline two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewLineBreakCleaner(tt.cfg)
			require.NoError(t, err)
			got, _ := c.CleanBreaks(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanBreaksStats(t *testing.T) {
	c, err := NewLineBreakCleaner(DefaultLineBreakConfig())
	require.NoError(t, err)

	_, stats := c.CleanBreaks("a\r\nb\n\n\n\nc")
	assert.Equal(t, 1, stats["breaks_normalized"])
	assert.Equal(t, 2, stats["breaks_removed"])
}

func TestCleanBreaksIdempotent(t *testing.T) {
	c, err := NewLineBreakCleaner(DefaultLineBreakConfig())
	require.NoError(t, err)

	inputs := []string{
		"a\r\n\r\n\r\n\r\nb",
		"x\n\n\n```\nkeep\n\n\n\n```\ny",
		"plain",
	}
	for _, in := range inputs {
		once, _ := c.CleanBreaks(in)
		twice, stats := c.CleanBreaks(once)
		assert.Equal(t, once, twice)
		assert.Equal(t, 0, stats["breaks_removed"])
		assert.Equal(t, 0, stats["breaks_normalized"])
	}
}

func TestNewLineBreakCleanerRejectsNegativeLimit(t *testing.T) {
	_, err := NewLineBreakCleaner(LineBreakConfig{MaxConsecutiveBreaks: -2})
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
