package sanitize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
	"github.com/Tpanarchist/cognitus/pkg/textproc/spans"
)

// LineBreakConfig configures the line-break cleaner.
type LineBreakConfig struct {
	// MaxConsecutiveBreaks is the longest line-feed run left untouched.
	// Zero disables collapsing; negative values are rejected.
	MaxConsecutiveBreaks int
	// NormalizeLineEndings rewrites CRLF and CR endings to a single LF.
	NormalizeLineEndings bool
	// PreserveMarkdownBreaks keeps two-trailing-space hard breaks intact.
	PreserveMarkdownBreaks bool
	// PreserveCodeBlocks keeps fenced code blocks verbatim.
	PreserveCodeBlocks bool
}

// DefaultLineBreakConfig returns the standard cleaning policy.
func DefaultLineBreakConfig() LineBreakConfig {
	return LineBreakConfig{
		MaxConsecutiveBreaks: 2,
		NormalizeLineEndings: true,
		PreserveCodeBlocks:   true,
	}
}

// LineBreakCleaner normalizes line endings and collapses blank-line runs.
// CleanBreaks is idempotent.
type LineBreakCleaner struct {
	cfg       LineBreakConfig
	runRe     *regexp.Regexp
	preserver *spans.Preserver
}

// NewLineBreakCleaner creates a cleaner, rejecting negative break limits.
func NewLineBreakCleaner(cfg LineBreakConfig) (*LineBreakCleaner, error) {
	if cfg.MaxConsecutiveBreaks < 0 {
		return nil, newConfigError("line break cleaner", "MaxConsecutiveBreaks", "must not be negative")
	}
	c := &LineBreakCleaner{cfg: cfg}
	if cfg.MaxConsecutiveBreaks > 0 {
		c.runRe = regexp.MustCompile(`\n{` + strconv.Itoa(cfg.MaxConsecutiveBreaks+1) + `,}`)
	}
	if cfg.PreserveCodeBlocks {
		c.preserver = spans.NewPreserver(spans.KindCode)
	}
	return c, nil
}

// CleanBreaks normalizes all line-ending variants to LF and collapses runs
// of consecutive breaks down to the configured maximum. Stats report bytes
// removed under "breaks_normalized" and "breaks_removed".
func (c *LineBreakCleaner) CleanBreaks(text string) (string, textproc.Stats) {
	stats := textproc.Stats{"breaks_removed": 0, "breaks_normalized": 0}

	clean := func(text string) string {
		result := text
		if c.cfg.NormalizeLineEndings {
			before := len(result)
			result = strings.ReplaceAll(result, "\r\n", "\n")
			result = strings.ReplaceAll(result, "\r", "\n")
			stats.Add("breaks_normalized", before-len(result))
		}
		if c.cfg.PreserveMarkdownBreaks {
			// Hide hard-break markers from the collapse below.
			result = strings.ReplaceAll(result, "  \n", "\x01")
		}
		if c.runRe != nil {
			before := len(result)
			result = c.runRe.ReplaceAllString(result, strings.Repeat("\n", c.cfg.MaxConsecutiveBreaks))
			stats.Add("breaks_removed", before-len(result))
		}
		if c.cfg.PreserveMarkdownBreaks {
			result = strings.ReplaceAll(result, "\x01", "  \n")
		}
		return result
	}

	if c.preserver != nil {
		return c.preserver.RoundTrip(text, clean), stats
	}
	return clean(text), stats
}
