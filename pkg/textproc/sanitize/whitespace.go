package sanitize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
)

// SpaceTrimConfig configures the space trimmer.
type SpaceTrimConfig struct {
	// TrimEdges strips leading and trailing whitespace of the whole text.
	TrimEdges bool
	// MaxConsecutiveSpaces is the longest space run left untouched.
	// Zero disables collapsing; negative values are rejected.
	MaxConsecutiveSpaces int
	// PreserveIndentation keeps per-line leading whitespace.
	PreserveIndentation bool
	// PreserveParagraphBreaks keeps blank lines as atomic paragraph
	// separators instead of treating their whitespace as collapsible.
	PreserveParagraphBreaks bool
}

// DefaultSpaceTrimConfig returns the standard trimming policy.
func DefaultSpaceTrimConfig() SpaceTrimConfig {
	return SpaceTrimConfig{
		TrimEdges:               true,
		MaxConsecutiveSpaces:    1,
		PreserveParagraphBreaks: true,
	}
}

// SpaceTrimmer removes excessive whitespace. TrimSpaces is idempotent.
type SpaceTrimmer struct {
	cfg      SpaceTrimConfig
	runRe    *regexp.Regexp
	blankRe  *regexp.Regexp
	indentRe *regexp.Regexp
}

// NewSpaceTrimmer creates a trimmer, rejecting negative space limits.
func NewSpaceTrimmer(cfg SpaceTrimConfig) (*SpaceTrimmer, error) {
	if cfg.MaxConsecutiveSpaces < 0 {
		return nil, newConfigError("space trimmer", "MaxConsecutiveSpaces", "must not be negative")
	}
	t := &SpaceTrimmer{
		cfg:      cfg,
		blankRe:  regexp.MustCompile(`(?m)^[ \t]+$`),
		indentRe: regexp.MustCompile(`(?m)^[ \t]+(\S)`),
	}
	if cfg.MaxConsecutiveSpaces > 0 {
		t.runRe = regexp.MustCompile(` {` + strconv.Itoa(cfg.MaxConsecutiveSpaces+1) + `,}`)
	}
	return t, nil
}

// TrimSpaces removes edge whitespace, collapses over-long space runs and
// optionally strips per-line indentation. Stats report characters removed
// under "edges_trimmed" and "spaces_removed".
func (t *SpaceTrimmer) TrimSpaces(text string) (string, textproc.Stats) {
	stats := textproc.Stats{"spaces_removed": 0, "edges_trimmed": 0}
	result := text

	if t.cfg.TrimEdges {
		before := len(result)
		result = strings.TrimSpace(result)
		stats.Add("edges_trimmed", before-len(result))
	}

	if t.cfg.PreserveParagraphBreaks {
		// Blank lines become truly empty so space collapsing and
		// indent stripping cannot disturb them.
		before := len(result)
		result = t.blankRe.ReplaceAllString(result, "")
		stats.Add("spaces_removed", before-len(result))
	}

	if t.runRe != nil {
		before := len(result)
		result = t.runRe.ReplaceAllString(result, strings.Repeat(" ", t.cfg.MaxConsecutiveSpaces))
		stats.Add("spaces_removed", before-len(result))
	}

	if !t.cfg.PreserveIndentation {
		before := len(result)
		result = t.indentRe.ReplaceAllString(result, "$1")
		stats.Add("spaces_removed", before-len(result))
	}

	return result, stats
}
