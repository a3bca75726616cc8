package sanitize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
	"github.com/Tpanarchist/cognitus/pkg/textproc/spans"
)

// RunLimit caps the allowed consecutive run of one punctuation mark.
type RunLimit struct {
	Mark string
	Max  int
}

// ExcessConfig configures excess punctuation removal.
type ExcessConfig struct {
	// Limits are applied in order; each Max must be at least 1.
	Limits []RunLimit
	// PreserveMarkdown, PreserveURLs and PreserveCode keep the repeated
	// characters inside those regions untouched.
	PreserveMarkdown bool
	PreserveURLs     bool
	PreserveCode     bool
}

// DefaultExcessConfig returns the standard run limits.
func DefaultExcessConfig() ExcessConfig {
	return ExcessConfig{
		Limits: []RunLimit{
			{Mark: "!", Max: 3},
			{Mark: "?", Max: 2},
			{Mark: ".", Max: 3},
			{Mark: "-", Max: 2},
		},
		PreserveMarkdown: true,
		PreserveURLs:     true,
		PreserveCode:     true,
	}
}

type excessRule struct {
	mark        string
	max         int
	re          *regexp.Regexp
	replacement string
}

// ExcessRemover enforces per-mark maximum consecutive punctuation runs.
// RemoveExcess is idempotent.
type ExcessRemover struct {
	rules     []excessRule
	preserver *spans.Preserver
}

// NewExcessRemover creates a remover; a zero or negative run limit is a
// configuration error.
func NewExcessRemover(cfg ExcessConfig) (*ExcessRemover, error) {
	rules := make([]excessRule, 0, len(cfg.Limits))
	for _, l := range cfg.Limits {
		if l.Mark == "" {
			return nil, newConfigError("excess remover", "Limits", "empty mark")
		}
		if l.Max < 1 {
			return nil, newConfigError("excess remover", "Limits", "max for "+strconv.Quote(l.Mark)+" must be at least 1")
		}
		rules = append(rules, excessRule{
			mark:        l.Mark,
			max:         l.Max,
			re:          regexp.MustCompile(regexp.QuoteMeta(l.Mark) + `{` + strconv.Itoa(l.Max+1) + `,}`),
			replacement: strings.Repeat(l.Mark, l.Max),
		})
	}

	var kinds []spans.Kind
	if cfg.PreserveCode {
		kinds = append(kinds, spans.KindCode)
	}
	if cfg.PreserveURLs {
		kinds = append(kinds, spans.KindURL)
	}
	if cfg.PreserveMarkdown {
		kinds = append(kinds, spans.KindMarkdown)
	}
	r := &ExcessRemover{rules: rules}
	if len(kinds) > 0 {
		r.preserver = spans.NewPreserver(kinds...)
	}
	return r, nil
}

// RemoveExcess trims each over-long punctuation run down to its configured
// maximum. Stats count characters removed per mark.
func (r *ExcessRemover) RemoveExcess(text string) (string, textproc.Stats) {
	stats := textproc.Stats{}
	for _, rule := range r.rules {
		stats.Add(rule.mark, 0)
	}

	remove := func(text string) string {
		result := text
		for _, rule := range r.rules {
			result = rule.re.ReplaceAllStringFunc(result, func(run string) string {
				stats.Add(rule.mark, len(run)/len(rule.mark)-rule.max)
				return rule.replacement
			})
		}
		return result
	}

	if r.preserver != nil {
		return r.preserver.RoundTrip(text, remove), stats
	}
	return remove(text), stats
}
