package emoji

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
)

// FormatterConfig configures emoji formatting.
type FormatterConfig struct {
	// NormalizeTextEmoji collapses spelling variants, ":-)" and ":)"
	// both become ":)".
	NormalizeTextEmoji bool
	// TextToUnicode and UnicodeToText are mutually exclusive; enabling
	// both fails construction.
	TextToUnicode bool
	UnicodeToText bool
	// LimitEmoji caps the total emoji count, deleting excess
	// occurrences from the end. Zero means no cap; negative values
	// fail construction.
	LimitEmoji int
	// EmojiSpacing inserts a single space between an emoji and adjacent
	// non-whitespace text.
	EmojiSpacing bool

	TextToUnicodeMap []textproc.Substitution
	UnicodeToTextMap []textproc.Substitution
}

// DefaultFormatterConfig returns the standard conversion tables with
// normalization, text-to-Unicode conversion and spacing enabled.
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{
		NormalizeTextEmoji: true,
		TextToUnicode:      true,
		EmojiSpacing:       true,
		TextToUnicodeMap: []textproc.Substitution{
			{From: ":)", To: "😊"},
			{From: ":(", To: "😢"},
			{From: ":D", To: "😃"},
			{From: ";)", To: "😉"},
			{From: "<3", To: "❤️"},
			{From: ":P", To: "😛"},
			{From: ":O", To: "😮"},
			{From: "xD", To: "😆"},
		},
		UnicodeToTextMap: []textproc.Substitution{
			{From: "😊", To: ":)"},
			{From: "😢", To: ":("},
			{From: "😃", To: ":D"},
			{From: "😉", To: ";)"},
			{From: "❤️", To: "<3"},
			{From: "😛", To: ":P"},
			{From: "😮", To: ":O"},
			{From: "😆", To: "xD"},
		},
	}
}

var normalizations = []struct {
	re *regexp.Regexp
	to string
}{
	{regexp.MustCompile(`:-?\)`), ":)"},
	{regexp.MustCompile(`:-?\(`), ":("},
	{regexp.MustCompile(`;-?\)`), ";)"},
	{regexp.MustCompile(`:-?D`), ":D"},
	{regexp.MustCompile(`:-?P`), ":P"},
	{regexp.MustCompile(`:-?O`), ":O"},
}

var (
	spaceAfterEmojiRe  = regexp.MustCompile(`([\x{1F300}-\x{1F9FF}])([^\s\x{1F300}-\x{1F9FF}])`)
	spaceBeforeEmojiRe = regexp.MustCompile(`([^\s\x{1F300}-\x{1F9FF}])([\x{1F300}-\x{1F9FF}])`)
)

// Formatter rewrites emoji in text according to its configuration. Safe
// for concurrent use.
type Formatter struct {
	cfg       FormatterConfig
	extractor *Extractor
}

// NewFormatter creates a formatter from cfg, using extractorCfg for the
// emoji scans that back the count cap.
func NewFormatter(cfg FormatterConfig, extractorCfg ExtractorConfig) (*Formatter, error) {
	if cfg.TextToUnicode && cfg.UnicodeToText {
		return nil, newConfigError("formatter", "TextToUnicode",
			"mutually exclusive with UnicodeToText")
	}
	if cfg.LimitEmoji < 0 {
		return nil, newConfigError("formatter", "LimitEmoji", "must not be negative")
	}
	extractor, err := NewExtractor(extractorCfg)
	if err != nil {
		return nil, err
	}
	return &Formatter{cfg: cfg, extractor: extractor}, nil
}

// Format rewrites emoji in text. Stats report "text_emoji_normalized",
// "text_to_unicode", "unicode_to_text", "emoji_limited" and
// "spacing_fixed".
func (f *Formatter) Format(text string) (string, textproc.Stats) {
	stats := textproc.Stats{
		"text_emoji_normalized": 0,
		"text_to_unicode":       0,
		"unicode_to_text":       0,
		"emoji_limited":         0,
		"spacing_fixed":         0,
	}
	result := text

	if f.cfg.NormalizeTextEmoji {
		for _, n := range normalizations {
			result = n.re.ReplaceAllStringFunc(result, func(m string) string {
				if m != n.to {
					stats.Add("text_emoji_normalized", 1)
				}
				return n.to
			})
		}
	}

	switch {
	case f.cfg.TextToUnicode:
		result = f.convert(result, f.cfg.TextToUnicodeMap, stats, "text_to_unicode")
	case f.cfg.UnicodeToText:
		result = f.convert(result, f.cfg.UnicodeToTextMap, stats, "unicode_to_text")
	}

	if f.cfg.LimitEmoji > 0 {
		result = f.limitEmoji(result, stats)
	}

	if f.cfg.EmojiSpacing {
		for _, re := range []*regexp.Regexp{spaceAfterEmojiRe, spaceBeforeEmojiRe} {
			result = re.ReplaceAllStringFunc(result, func(m string) string {
				stats.Add("spacing_fixed", 1)
				runes := []rune(m)
				return string(runes[0]) + " " + string(runes[1:])
			})
		}
	}

	return result, stats
}

func (f *Formatter) convert(text string, table []textproc.Substitution, stats textproc.Stats, counter string) string {
	result := text
	for _, sub := range table {
		if n := strings.Count(result, sub.From); n > 0 {
			result = strings.ReplaceAll(result, sub.From, sub.To)
			stats.Add(counter, n)
		}
	}
	return result
}

// emojiSpan is one occurrence scheduled for possible removal.
type emojiSpan struct {
	start, end int
}

// limitEmoji keeps the first LimitEmoji occurrences in left-to-right
// position order across both emoji kinds and deletes the rest, scanning
// back to front so earlier offsets stay valid.
func (f *Formatter) limitEmoji(text string, stats textproc.Stats) string {
	var all []emojiSpan
	for _, m := range f.extractor.ExtractUnicode(text) {
		all = append(all, emojiSpan{start: m.Position, end: m.Position + len(string(m.Rune))})
	}
	for _, m := range f.extractor.ExtractText(text) {
		all = append(all, emojiSpan{start: m.Position, end: m.Position + len(m.Text)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end > all[j].end
	})

	// A position matching several text-emoji categories is one emoji;
	// keep the longest match per start offset.
	spans := all[:0]
	for _, s := range all {
		if len(spans) > 0 && spans[len(spans)-1].start == s.start {
			continue
		}
		spans = append(spans, s)
	}

	if len(spans) <= f.cfg.LimitEmoji {
		return text
	}

	result := text
	for i := len(spans) - 1; i >= f.cfg.LimitEmoji; i-- {
		result = result[:spans[i].start] + result[spans[i].end:]
		stats.Add("emoji_limited", 1)
	}
	return result
}
