package sanitize

import (
	"regexp"
	"strings"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
	"github.com/Tpanarchist/cognitus/pkg/textproc/spans"
)

// StandardizationConfig configures punctuation standardization.
type StandardizationConfig struct {
	// Map rewrites non-standard glyphs to canonical ASCII forms, applied
	// in order.
	Map []textproc.Substitution
	// PreserveQuotesInCode keeps code spans untouched.
	PreserveQuotesInCode bool
	// StandardizeEllipsis collapses runs of two or more dots to exactly
	// three.
	StandardizeEllipsis bool
	// FixSpacing removes space before .,!?;: and ensures one space after
	// a punctuation run unless it ends the text.
	FixSpacing bool
}

// DefaultStandardizationConfig maps smart quotes, dashes, the ellipsis
// glyph and dot leaders to ASCII.
func DefaultStandardizationConfig() StandardizationConfig {
	return StandardizationConfig{
		Map: []textproc.Substitution{
			{From: "“", To: `"`}, // left double quotation
			{From: "”", To: `"`}, // right double quotation
			{From: "‘", To: "'"}, // left single quotation
			{From: "’", To: "'"}, // right single quotation
			{From: "—", To: "-"}, // em dash
			{From: "–", To: "-"}, // en dash
			{From: "―", To: "-"}, // horizontal bar
			{From: "…", To: "..."},
			{From: "․", To: "."},  // one dot leader
			{From: "‥", To: ".."}, // two dot leader
		},
		PreserveQuotesInCode: true,
		StandardizeEllipsis:  true,
		FixSpacing:           true,
	}
}

var (
	ellipsisRe    = regexp.MustCompile(`\.{2,}`)
	spaceBeforeRe = regexp.MustCompile(`[ \t]+([.,!?;:])`)
	spaceAfterRe  = regexp.MustCompile(`([.,!?;:]+)([^\s.,!?;:])`)
)

// PunctuationStandardizer rewrites non-standard punctuation glyphs to
// canonical forms. Standardize is idempotent and deterministic for a given
// configuration.
type PunctuationStandardizer struct {
	cfg       StandardizationConfig
	preserver *spans.Preserver
}

// NewPunctuationStandardizer creates a standardizer.
func NewPunctuationStandardizer(cfg StandardizationConfig) (*PunctuationStandardizer, error) {
	for _, s := range cfg.Map {
		if s.From == "" {
			return nil, newConfigError("punctuation standardizer", "Map", "empty source glyph")
		}
	}
	p := &PunctuationStandardizer{cfg: cfg}
	if cfg.PreserveQuotesInCode {
		p.preserver = spans.NewPreserver(spans.KindCode)
	}
	return p, nil
}

// Standardize applies the glyph map, ellipsis collapsing and spacing fixes.
// Stats count replacements per source glyph.
func (p *PunctuationStandardizer) Standardize(text string) (string, textproc.Stats) {
	stats := textproc.Stats{}
	for _, s := range p.cfg.Map {
		stats.Add(s.From, 0)
	}

	standardize := func(text string) string {
		result := text
		for _, s := range p.cfg.Map {
			if n := strings.Count(result, s.From); n > 0 {
				result = strings.ReplaceAll(result, s.From, s.To)
				stats.Add(s.From, n)
			}
		}
		if p.cfg.StandardizeEllipsis {
			result = ellipsisRe.ReplaceAllString(result, "...")
		}
		if p.cfg.FixSpacing {
			result = spaceBeforeRe.ReplaceAllString(result, "$1")
			result = spaceAfterRe.ReplaceAllString(result, "$1 $2")
		}
		return result
	}

	if p.preserver != nil {
		return p.preserver.RoundTrip(text, standardize), stats
	}
	return standardize(text), stats
}
