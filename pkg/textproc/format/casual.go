package format

import (
	"regexp"
	"sort"
	"unicode"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
	"github.com/Tpanarchist/cognitus/pkg/textproc/spans"
)

// CasualConfig configures the casual formality setter.
type CasualConfig struct {
	Contractions         []textproc.Substitution
	CasualWords          []textproc.Substitution
	PreserveFormalQuotes bool
	PreserveCodeBlocks   bool
}

// DefaultCasualConfig returns the standard contraction and casual word
// tables.
func DefaultCasualConfig() CasualConfig {
	return CasualConfig{
		Contractions: []textproc.Substitution{
			{From: "are not", To: "aren't"},
			{From: "cannot", To: "can't"},
			{From: "could not", To: "couldn't"},
			{From: "did not", To: "didn't"},
			{From: "does not", To: "doesn't"},
			{From: "do not", To: "don't"},
			{From: "had not", To: "hadn't"},
			{From: "has not", To: "hasn't"},
			{From: "have not", To: "haven't"},
			{From: "is not", To: "isn't"},
			{From: "it is", To: "it's"},
			{From: "should not", To: "shouldn't"},
			{From: "that is", To: "that's"},
			{From: "they are", To: "they're"},
			{From: "was not", To: "wasn't"},
			{From: "were not", To: "weren't"},
			{From: "what is", To: "what's"},
			{From: "will not", To: "won't"},
			{From: "would not", To: "wouldn't"},
			{From: "you are", To: "you're"},
		},
		CasualWords: []textproc.Substitution{
			{From: "hello", To: "hi"},
			{From: "goodbye", To: "bye"},
			{From: "please", To: "pls"},
			{From: "thanks", To: "thx"},
			{From: "approximately", To: "about"},
			{From: "regarding", To: "about"},
		},
		PreserveFormalQuotes: true,
		PreserveCodeBlocks:   true,
	}
}

type casualPattern struct {
	re          *regexp.Regexp
	to          string
	contraction bool
}

// CasualSetter rewrites text toward casual formality.
type CasualSetter struct {
	patterns  []casualPattern
	preserver *spans.Preserver
}

// NewCasualSetter creates a setter from cfg.
func NewCasualSetter(cfg CasualConfig) *CasualSetter {
	type src struct {
		textproc.Substitution
		contraction bool
	}
	sources := make([]src, 0, len(cfg.Contractions)+len(cfg.CasualWords))
	for _, s := range cfg.Contractions {
		sources = append(sources, src{Substitution: s, contraction: true})
	}
	for _, s := range cfg.CasualWords {
		sources = append(sources, src{Substitution: s})
	}
	// Longest source first so multi-word phrases win over substrings.
	sort.SliceStable(sources, func(i, j int) bool {
		return len(sources[i].From) > len(sources[j].From)
	})

	patterns := make([]casualPattern, 0, len(sources))
	for _, s := range sources {
		patterns = append(patterns, casualPattern{
			re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s.From) + `\b`),
			to:          s.To,
			contraction: s.contraction,
		})
	}

	var kinds []spans.Kind
	if cfg.PreserveCodeBlocks {
		kinds = append(kinds, spans.KindCode)
	}
	if cfg.PreserveFormalQuotes {
		kinds = append(kinds, spans.KindQuote)
	}
	s := &CasualSetter{patterns: patterns}
	if len(kinds) > 0 {
		s.preserver = spans.NewPreserver(kinds...)
	}
	return s
}

// SetCasual applies contractions and casual word swaps. Stats report
// "contractions_applied" and "casual_words_applied".
func (s *CasualSetter) SetCasual(text string) (string, textproc.Stats) {
	stats := textproc.Stats{"contractions_applied": 0, "casual_words_applied": 0}

	apply := func(text string) string {
		result := text
		for _, p := range s.patterns {
			result = p.re.ReplaceAllStringFunc(result, func(m string) string {
				if p.contraction {
					stats.Add("contractions_applied", 1)
				} else {
					stats.Add("casual_words_applied", 1)
				}
				if m != "" && unicode.IsUpper([]rune(m)[0]) {
					return upperFirst(p.to)
				}
				return p.to
			})
		}
		return result
	}

	if s.preserver != nil {
		return s.preserver.RoundTrip(text, apply), stats
	}
	return apply(text), stats
}
