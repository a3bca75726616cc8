package emoji

import (
	"fmt"
	"regexp"
	"strings"
)

// CategoryPatterns binds a text-emoji category to its regex alternatives.
// The table is ordered so extraction output is stable across runs.
type CategoryPatterns struct {
	Category string
	Patterns []string
}

// ExtractorConfig configures emoji extraction.
type ExtractorConfig struct {
	ExtractUnicodeEmoji bool
	ExtractTextEmoji    bool
	CategorizeEmoji     bool
	TextEmojiPatterns   []CategoryPatterns
}

// DefaultExtractorConfig returns the standard text-emoji pattern table.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ExtractUnicodeEmoji: true,
		ExtractTextEmoji:    true,
		CategorizeEmoji:     true,
		TextEmojiPatterns: []CategoryPatterns{
			{Category: "happy", Patterns: []string{`:+\)`, `:+D`, `\(+:`, `=\)`}},
			{Category: "sad", Patterns: []string{`:-?\(`, `=\(`, `;\(`}},
			{Category: "wink", Patterns: []string{`;-?\)`, `;-?D`}},
			{Category: "laugh", Patterns: []string{`xD`, `XD`}},
			{Category: "surprise", Patterns: []string{`:o`, `:O`, `=O`}},
			{Category: "love", Patterns: []string{`<3`, `♥`}},
		},
	}
}

// Emoji code-point ranges: Miscellaneous Symbols and Pictographs,
// Miscellaneous Symbols, Dingbats, Emoticons.
var emojiRanges = [][2]rune{
	{0x1F300, 0x1F9FF},
	{0x2600, 0x26FF},
	{0x2700, 0x27BF},
	{0x1F600, 0x1F64F},
}

// categoryByRune stands in for character-name keyword matching. Keyword
// priority follows happy, sad, love, surprise; tabled runes whose name
// carries none of those keywords map to "other".
var categoryByRune = map[rune]string{
	'😀': "happy", // grinning face
	'😃': "happy",
	'😄': "happy",
	'😁': "happy",
	'😆': "happy",
	'😂': "happy", // face with tears of joy
	'😊': "happy",
	'🙂': "happy",
	'😍': "happy", // smiling face with heart-shaped eyes
	'😹': "happy", // cat face with tears of joy
	'😢': "sad",   // crying face
	'😭': "sad",
	'😿': "sad", // crying cat face
	'❤': "love", // heavy black heart
	'♥': "love",
	'💕': "love",
	'💖': "love",
	'💔': "love", // broken heart
	'💘': "love",
	'😲': "surprise", // astonished face
	'😉': "other",    // winking face
	'😛': "other",
	'😮': "other", // face with open mouth
	'😯': "other",
	'😞': "other",
	'🎉': "other", // party popper
	'🔥': "other",
	'✨': "other",
	'☀': "other",
	'☔': "other",
}

// RuneMatch is one Unicode emoji occurrence. Position is a byte offset
// into the scanned text.
type RuneMatch struct {
	Rune     rune
	Position int
}

// TextEmojiMatch is one text-style emoji occurrence. A position may match
// more than one category; matches are not deduplicated across categories.
type TextEmojiMatch struct {
	Category string
	Text     string
	Position int
}

// UnicodeEmoji aggregates Unicode emoji findings for one text.
type UnicodeEmoji struct {
	Count      int
	Emoji      []string
	Positions  []int
	Categories map[string]int
}

// TextEmoji aggregates text-style emoji findings for one text.
type TextEmoji struct {
	Count      int
	ByCategory map[string][]string
	Positions  []int
}

// Extraction is the full result of scanning one text.
type Extraction struct {
	Unicode UnicodeEmoji
	Text    TextEmoji
}

// TotalCount returns the combined emoji count across both kinds.
func (e Extraction) TotalCount() int {
	return e.Unicode.Count + e.Text.Count
}

type categoryPattern struct {
	category string
	re       *regexp.Regexp
}

// Extractor scans text for Unicode and text-style emoji. Safe for
// concurrent use.
type Extractor struct {
	cfg      ExtractorConfig
	patterns []categoryPattern
}

// NewExtractor creates an extractor from cfg. Invalid text-emoji patterns
// fail construction.
func NewExtractor(cfg ExtractorConfig) (*Extractor, error) {
	patterns := make([]categoryPattern, 0, len(cfg.TextEmojiPatterns))
	for _, cp := range cfg.TextEmojiPatterns {
		re, err := regexp.Compile(strings.Join(cp.Patterns, "|"))
		if err != nil {
			return nil, fmt.Errorf("emoji extractor: category %q: %w", cp.Category, err)
		}
		patterns = append(patterns, categoryPattern{category: cp.Category, re: re})
	}
	return &Extractor{cfg: cfg, patterns: patterns}, nil
}

// IsEmoji reports whether r is recognized as an emoji, either by the name
// table or by code-point range.
func IsEmoji(r rune) bool {
	if _, ok := categoryByRune[r]; ok {
		return true
	}
	for _, rng := range emojiRanges {
		if rng[0] <= r && r <= rng[1] {
			return true
		}
	}
	return false
}

// Categorize maps an emoji rune to a category keyword. Runes detected only
// by range return "unknown".
func Categorize(r rune) string {
	if category, ok := categoryByRune[r]; ok {
		return category
	}
	return "unknown"
}

// ExtractUnicode returns every Unicode emoji in text with its byte offset.
func (e *Extractor) ExtractUnicode(text string) []RuneMatch {
	var matches []RuneMatch
	for i, r := range text {
		if IsEmoji(r) {
			matches = append(matches, RuneMatch{Rune: r, Position: i})
		}
	}
	return matches
}

// ExtractText returns every text-style emoji in text, category by category
// in table order.
func (e *Extractor) ExtractText(text string) []TextEmojiMatch {
	var matches []TextEmojiMatch
	for _, cp := range e.patterns {
		for _, loc := range cp.re.FindAllStringIndex(text, -1) {
			matches = append(matches, TextEmojiMatch{
				Category: cp.category,
				Text:     text[loc[0]:loc[1]],
				Position: loc[0],
			})
		}
	}
	return matches
}

// Extract scans text for both emoji kinds and aggregates the findings.
func (e *Extractor) Extract(text string) Extraction {
	result := Extraction{
		Unicode: UnicodeEmoji{Categories: map[string]int{}},
		Text:    TextEmoji{ByCategory: map[string][]string{}},
	}

	if e.cfg.ExtractUnicodeEmoji {
		for _, m := range e.ExtractUnicode(text) {
			result.Unicode.Count++
			result.Unicode.Emoji = append(result.Unicode.Emoji, string(m.Rune))
			result.Unicode.Positions = append(result.Unicode.Positions, m.Position)
			if e.cfg.CategorizeEmoji {
				result.Unicode.Categories[Categorize(m.Rune)]++
			}
		}
	}

	if e.cfg.ExtractTextEmoji {
		for _, m := range e.ExtractText(text) {
			result.Text.Count++
			result.Text.ByCategory[m.Category] = append(result.Text.ByCategory[m.Category], m.Text)
			result.Text.Positions = append(result.Text.Positions, m.Position)
		}
	}

	return result
}
