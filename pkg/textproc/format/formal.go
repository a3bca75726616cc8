package format

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
	"github.com/Tpanarchist/cognitus/pkg/textproc/spans"
)

// FormalConfig configures the formal formality setter.
type FormalConfig struct {
	ExpandContractions []textproc.Substitution
	FormalWords        []textproc.Substitution
	// CapitalizeSentences upper-cases the first letter after
	// sentence-ending punctuation.
	CapitalizeSentences bool
	// StandardizeGreetings rewrites common greetings to their formal
	// forms with a case-insensitive whole-word match.
	StandardizeGreetings bool
	PreserveCodeBlocks   bool
}

// DefaultFormalConfig returns the standard expansion and formal word
// tables.
func DefaultFormalConfig() FormalConfig {
	return FormalConfig{
		ExpandContractions: []textproc.Substitution{
			{From: "aren't", To: "are not"},
			{From: "can't", To: "cannot"},
			{From: "couldn't", To: "could not"},
			{From: "didn't", To: "did not"},
			{From: "doesn't", To: "does not"},
			{From: "don't", To: "do not"},
			{From: "hadn't", To: "had not"},
			{From: "hasn't", To: "has not"},
			{From: "haven't", To: "have not"},
			{From: "isn't", To: "is not"},
			{From: "it's", To: "it is"},
			{From: "shouldn't", To: "should not"},
			{From: "that's", To: "that is"},
			{From: "they're", To: "they are"},
			{From: "wasn't", To: "was not"},
			{From: "weren't", To: "were not"},
			{From: "what's", To: "what is"},
			{From: "won't", To: "will not"},
			{From: "wouldn't", To: "would not"},
			{From: "you're", To: "you are"},
		},
		FormalWords: []textproc.Substitution{
			{From: "hi", To: "hello"},
			{From: "hey", To: "hello"},
			{From: "bye", To: "goodbye"},
			{From: "pls", To: "please"},
			{From: "thx", To: "thanks"},
			{From: "about", To: "regarding"},
			{From: "ok", To: "acceptable"},
		},
		CapitalizeSentences:  true,
		StandardizeGreetings: true,
		PreserveCodeBlocks:   true,
	}
}

type formalPattern struct {
	re          *regexp.Regexp
	to          string
	contraction bool
}

var (
	sentenceStartRe = regexp.MustCompile(`([.!?]\s+|\A)\s*[a-z]`)
	greetingTable   = []struct {
		re *regexp.Regexp
		to string
	}{
		{regexp.MustCompile(`(?i)\bhi\b`), "Hello"},
		{regexp.MustCompile(`(?i)\bhey\b`), "Hello"},
		{regexp.MustCompile(`(?i)\bbye\b`), "Goodbye"},
		{regexp.MustCompile(`(?i)\bsee ya\b`), "Goodbye"},
	}
)

// FormalSetter rewrites text toward formal formality.
type FormalSetter struct {
	cfg       FormalConfig
	patterns  []formalPattern
	preserver *spans.Preserver
}

// NewFormalSetter creates a setter from cfg.
func NewFormalSetter(cfg FormalConfig) *FormalSetter {
	type src struct {
		textproc.Substitution
		contraction bool
	}
	sources := make([]src, 0, len(cfg.ExpandContractions)+len(cfg.FormalWords))
	for _, s := range cfg.ExpandContractions {
		sources = append(sources, src{Substitution: s, contraction: true})
	}
	for _, s := range cfg.FormalWords {
		sources = append(sources, src{Substitution: s})
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return len(sources[i].From) > len(sources[j].From)
	})

	patterns := make([]formalPattern, 0, len(sources))
	for _, s := range sources {
		patterns = append(patterns, formalPattern{
			re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s.From) + `\b`),
			to:          s.To,
			contraction: s.contraction,
		})
	}

	f := &FormalSetter{cfg: cfg, patterns: patterns}
	if cfg.PreserveCodeBlocks {
		f.preserver = spans.NewPreserver(spans.KindCode)
	}
	return f
}

// SetFormal expands contractions, swaps casual words for formal ones,
// capitalizes sentence starts and standardizes greetings. Stats report
// "contractions_expanded", "formal_words_applied",
// "sentences_capitalized" and "greetings_standardized".
func (f *FormalSetter) SetFormal(text string) (string, textproc.Stats) {
	stats := textproc.Stats{
		"contractions_expanded":  0,
		"formal_words_applied":   0,
		"sentences_capitalized":  0,
		"greetings_standardized": 0,
	}

	apply := func(text string) string {
		result := text
		for _, p := range f.patterns {
			result = p.re.ReplaceAllStringFunc(result, func(string) string {
				if p.contraction {
					stats.Add("contractions_expanded", 1)
				} else {
					stats.Add("formal_words_applied", 1)
				}
				return p.to
			})
		}

		if f.cfg.CapitalizeSentences {
			result = sentenceStartRe.ReplaceAllStringFunc(result, func(m string) string {
				stats.Add("sentences_capitalized", 1)
				return m[:len(m)-1] + strings.ToUpper(m[len(m)-1:])
			})
		}

		if f.cfg.StandardizeGreetings {
			for _, g := range greetingTable {
				result = g.re.ReplaceAllStringFunc(result, func(m string) string {
					if m == g.to {
						return m
					}
					stats.Add("greetings_standardized", 1)
					return g.to
				})
			}
		}
		return result
	}

	if f.preserver != nil {
		return f.preserver.RoundTrip(text, apply), stats
	}
	return apply(text), stats
}

// upperFirst capitalizes the first letter of s.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
