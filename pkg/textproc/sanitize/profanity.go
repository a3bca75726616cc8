package sanitize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
)

// ReplacementConfig configures how blacklisted words are replaced.
//
// Replacement precedence per matched word: a custom replacement if one is
// configured, otherwise a run of ReplacementChar matching the word's
// length when PreserveLength is set, otherwise a single ReplacementChar.
// Replacements are used verbatim; their capitalization is never adjusted
// to match the original word.
type ReplacementConfig struct {
	ReplacementChar    string
	PreserveLength     bool
	WholeWordsOnly     bool
	CustomReplacements []textproc.Substitution
}

// DefaultReplacementConfig returns the standard replacement policy:
// length-preserving asterisks on whole-word matches.
func DefaultReplacementConfig() ReplacementConfig {
	return ReplacementConfig{
		ReplacementChar: "*",
		PreserveLength:  true,
		WholeWordsOnly:  true,
	}
}

// ProfanityReplacer replaces blacklisted words in text.
type ProfanityReplacer struct {
	blacklist *Blacklist
	cfg       ReplacementConfig
	custom    map[string]string
}

// NewProfanityReplacer creates a replacer over the given blacklist.
func NewProfanityReplacer(blacklist *Blacklist, cfg ReplacementConfig) (*ProfanityReplacer, error) {
	if cfg.ReplacementChar == "" {
		return nil, newConfigError("profanity", "ReplacementChar", "must not be empty")
	}
	custom := make(map[string]string, len(cfg.CustomReplacements))
	for _, s := range cfg.CustomReplacements {
		custom[s.From] = s.To
	}
	return &ProfanityReplacer{blacklist: blacklist, cfg: cfg, custom: custom}, nil
}

type profanityMatch struct {
	start, end int
	entry      string
	word       string
}

// Replace rewrites every blacklisted word in text and reports how many
// times each entry was replaced. Entries are matched independently against
// the original text, so a replacement can never be re-matched by a
// different entry.
func (r *ProfanityReplacer) Replace(text string) (string, textproc.Stats) {
	stats := textproc.Stats{}

	var matches []profanityMatch
	for _, entry := range r.blacklist.Words() {
		pattern := regexp.QuoteMeta(entry)
		if r.cfg.WholeWordsOnly {
			pattern = `\b` + pattern + `\b`
		}
		if !r.blacklist.caseSensitive {
			pattern = `(?i)` + pattern
		}
		re := regexp.MustCompile(pattern)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, profanityMatch{
				start: loc[0],
				end:   loc[1],
				entry: entry,
				word:  text[loc[0]:loc[1]],
			})
		}
	}
	if len(matches) == 0 {
		return text, stats
	}

	// Apply back to front so earlier offsets stay valid; overlapping
	// matches from different entries are resolved first-come.
	sort.Slice(matches, func(i, j int) bool { return matches[i].start > matches[j].start })
	result := text
	lastStart := len(text) + 1
	for _, m := range matches {
		if m.end > lastStart {
			continue
		}
		result = result[:m.start] + r.replacement(m.word) + result[m.end:]
		lastStart = m.start
		stats.Add(m.entry, 1)
	}
	return result, stats
}

func (r *ProfanityReplacer) replacement(word string) string {
	if rep, ok := r.custom[word]; ok {
		return rep
	}
	if !r.blacklist.caseSensitive {
		if rep, ok := r.custom[strings.ToLower(word)]; ok {
			return rep
		}
	}
	if r.cfg.PreserveLength {
		return strings.Repeat(r.cfg.ReplacementChar, len([]rune(word)))
	}
	return r.cfg.ReplacementChar
}
