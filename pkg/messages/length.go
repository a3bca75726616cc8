package messages

import (
	"fmt"
	"strings"
	"unicode"
)

// CompletionLengthConfig configures length calculation and validation.
// Zero limits mean unbounded.
type CompletionLengthConfig struct {
	CountTokens bool
	MaxTokens   int
	MinTokens   int
	MaxChars    int
	MinChars    int
}

// DefaultCompletionLengthConfig enables token estimation with no bounds.
func DefaultCompletionLengthConfig() CompletionLengthConfig {
	return CompletionLengthConfig{CountTokens: true}
}

// CompletionLength is the measured size of one piece of content.
type CompletionLength struct {
	// TokenCount is a rough estimate, about four characters per token.
	// Zero when token counting is disabled.
	TokenCount  int
	CharCount   int
	ContentType string
	Details     map[string]int
}

// LengthCalculator measures content and validates it against configured
// bounds.
type LengthCalculator struct {
	cfg CompletionLengthConfig
}

// NewLengthCalculator creates a calculator from cfg.
func NewLengthCalculator(cfg CompletionLengthConfig) *LengthCalculator {
	return &LengthCalculator{cfg: cfg}
}

// Calculate measures text. Details carry line, word, whitespace and
// special-character counts.
func (c *LengthCalculator) Calculate(text string) CompletionLength {
	length := CompletionLength{
		CharCount:   len(text),
		ContentType: "text",
		Details: map[string]int{
			"lines": strings.Count(text, "\n") + 1,
			"words": len(strings.Fields(text)),
		},
	}
	if c.cfg.CountTokens {
		length.TokenCount = len(text) / 4
	}
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			length.Details["whitespace_chars"]++
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			length.Details["special_chars"]++
		}
	}
	return length
}

// Validate returns per-field problems with length against the configured
// bounds. An empty map means the length is acceptable.
func (c *LengthCalculator) Validate(length CompletionLength) map[string]string {
	problems := map[string]string{}

	if c.cfg.CountTokens && length.TokenCount > 0 {
		if c.cfg.MaxTokens > 0 && length.TokenCount > c.cfg.MaxTokens {
			problems["tokens_max"] = fmt.Sprintf("token count %d exceeds maximum %d",
				length.TokenCount, c.cfg.MaxTokens)
		}
		if c.cfg.MinTokens > 0 && length.TokenCount < c.cfg.MinTokens {
			problems["tokens_min"] = fmt.Sprintf("token count %d below minimum %d",
				length.TokenCount, c.cfg.MinTokens)
		}
	}
	if c.cfg.MaxChars > 0 && length.CharCount > c.cfg.MaxChars {
		problems["chars_max"] = fmt.Sprintf("character count %d exceeds maximum %d",
			length.CharCount, c.cfg.MaxChars)
	}
	if c.cfg.MinChars > 0 && length.CharCount < c.cfg.MinChars {
		problems["chars_min"] = fmt.Sprintf("character count %d below minimum %d",
			length.CharCount, c.cfg.MinChars)
	}
	return problems
}

// LengthAggregation accumulates lengths across message components.
type LengthAggregation struct {
	Tokens     int
	Characters int
	Components map[string]int
}

func newLengthAggregation() LengthAggregation {
	return LengthAggregation{Components: map[string]int{}}
}

// TotalLengthAggregator tracks prompt and completion lengths for one
// conversation and reports combined totals. Not safe for concurrent use.
type TotalLengthAggregator struct {
	prompt     LengthAggregation
	completion LengthAggregation
}

// NewTotalLengthAggregator creates an empty aggregator.
func NewTotalLengthAggregator() *TotalLengthAggregator {
	return &TotalLengthAggregator{
		prompt:     newLengthAggregation(),
		completion: newLengthAggregation(),
	}
}

// AddPrompt records a named prompt component.
func (a *TotalLengthAggregator) AddPrompt(name string, length CompletionLength) {
	a.prompt.Tokens += length.TokenCount
	a.prompt.Characters += length.CharCount
	a.prompt.Components[name+"_tokens"] += length.TokenCount
	a.prompt.Components[name+"_chars"] += length.CharCount
}

// AddCompletion records a completion length.
func (a *TotalLengthAggregator) AddCompletion(length CompletionLength) {
	a.completion.Tokens += length.TokenCount
	a.completion.Characters += length.CharCount
}

// Prompt returns the prompt-side aggregation.
func (a *TotalLengthAggregator) Prompt() LengthAggregation { return a.prompt }

// Completion returns the completion-side aggregation.
func (a *TotalLengthAggregator) Completion() LengthAggregation { return a.completion }

// Totals returns combined token and character counts.
func (a *TotalLengthAggregator) Totals() (tokens, characters int) {
	return a.prompt.Tokens + a.completion.Tokens,
		a.prompt.Characters + a.completion.Characters
}
