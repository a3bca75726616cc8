package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
)

func TestCasualSetterContractions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		stats    textproc.Stats
	}{
		{
			name:     "basic contractions",
			input:    "I do not know if it is ready. We are not sure.",
			expected: "I don't know if it's ready. We aren't sure.",
			stats:    textproc.Stats{"contractions_applied": 3, "casual_words_applied": 0},
		},
		{
			name:     "longest phrase wins",
			input:    "that is to say, it is not done",
			expected: "that's to say, it isn't done",
			stats:    textproc.Stats{"contractions_applied": 2, "casual_words_applied": 0},
		},
		{
			name:     "keeps leading capitals",
			input:    "It is ready. Hello friend",
			expected: "It's ready. Hi friend",
			stats:    textproc.Stats{"contractions_applied": 1, "casual_words_applied": 1},
		},
		{
			name:     "casual words",
			input:    "hello, please send thanks",
			expected: "hi, pls send thx",
			stats:    textproc.Stats{"contractions_applied": 0, "casual_words_applied": 3},
		},
		{
			name:     "no changes",
			input:    "nothing to change here",
			expected: "nothing to change here",
			stats:    textproc.Stats{"contractions_applied": 0, "casual_words_applied": 0},
		},
	}

	setter := NewCasualSetter(DefaultCasualConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, stats := setter.SetCasual(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, tt.stats, stats)
		})
	}
}

func TestCasualSetterPreservesCode(t *testing.T) {
	setter := NewCasualSetter(DefaultCasualConfig())

	result, _ := setter.SetCasual("`do not touch` but do not stop")
	assert.Equal(t, "`do not touch` but don't stop", result)
}

func TestCasualSetterPreservesQuotes(t *testing.T) {
	setter := NewCasualSetter(DefaultCasualConfig())

	result, stats := setter.SetCasual(`He said "I do not agree" loudly`)
	assert.Equal(t, `He said "I do not agree" loudly`, result)
	assert.Equal(t, 0, stats["contractions_applied"])
}

func TestCasualSetterIdempotent(t *testing.T) {
	setter := NewCasualSetter(DefaultCasualConfig())

	once, _ := setter.SetCasual("I can not believe it is going to work")
	twice, stats := setter.SetCasual(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, 0, stats["contractions_applied"])
	assert.Equal(t, 0, stats["casual_words_applied"])
}
