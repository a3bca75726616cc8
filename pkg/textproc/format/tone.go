package format

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
	"github.com/Tpanarchist/cognitus/pkg/textproc/spans"
)

// Chooser selects an index in [0, n). The default chooser is random;
// installing a fixed chooser makes tone output deterministic.
type Chooser func(n int) int

func defaultChooser(n int) int { return rand.Intn(n) }

// PhraseAddition lists the qualifying phrases that may follow a replaced
// word.
type PhraseAddition struct {
	Word    string
	Options []string
}

// ToneConfig configures a tone-polarity applier.
type ToneConfig struct {
	// WordReplacements swaps opposite-polarity words, longest source
	// first.
	WordReplacements []textproc.Substitution
	// PhraseAdditions inject a qualifying phrase after a replaced word.
	PhraseAdditions []PhraseAddition
	// Prefixes may be prepended to a sentence that starts with a
	// trigger word. A sentence already starting with one of these is
	// left alone.
	Prefixes []string
	// TriggerWords are the opposite-polarity sentence openers that
	// invite a prefix.
	TriggerWords []string
	// PreserveCodeBlocks and PreserveTechnicalTerms shield code spans
	// and camelCase/snake_case identifiers from substitution.
	PreserveCodeBlocks     bool
	PreserveTechnicalTerms bool
	// Choose overrides the random selection of prefixes and phrases.
	Choose Chooser
}

// DefaultPositiveToneConfig returns the standard positive-tone tables.
func DefaultPositiveToneConfig() ToneConfig {
	return ToneConfig{
		WordReplacements: []textproc.Substitution{
			{From: "problem", To: "challenge"},
			{From: "difficult", To: "challenging"},
			{From: "hard", To: "challenging"},
			{From: "fail", To: "attempt"},
			{From: "failed", To: "attempted"},
			{From: "bad", To: "less than ideal"},
			{From: "issue", To: "opportunity"},
			{From: "mistake", To: "learning opportunity"},
			{From: "wrong", To: "different"},
			{From: "impossible", To: "challenging"},
			{From: "terrible", To: "needs improvement"},
		},
		PhraseAdditions: []PhraseAddition{
			{Word: "can't", Options: []string{"yet", "at the moment"}},
			{Word: "impossible", Options: []string{"right now", "at this stage"}},
			{Word: "failed", Options: []string{"this time", "in this attempt"}},
		},
		Prefixes: []string{
			"We can ",
			"Let's try to ",
			"We could ",
			"Consider ",
			"Perhaps we can ",
		},
		TriggerWords:           []string{"can't", "cannot", "don't", "won't", "impossible"},
		PreserveCodeBlocks:     true,
		PreserveTechnicalTerms: true,
	}
}

// DefaultNegativeToneConfig returns the standard negative-tone tables.
func DefaultNegativeToneConfig() ToneConfig {
	return ToneConfig{
		WordReplacements: []textproc.Substitution{
			{From: "good", To: "mediocre"},
			{From: "great", To: "barely adequate"},
			{From: "excellent", To: "passable"},
			{From: "amazing", To: "unremarkable"},
			{From: "perfect", To: "acceptable"},
			{From: "easy", To: "deceptively simple"},
			{From: "simple", To: "oversimplified"},
			{From: "helpful", To: "marginally useful"},
			{From: "successful", To: "barely successful"},
			{From: "improve", To: "patch"},
		},
		PhraseAdditions: []PhraseAddition{
			{Word: "can", Options: []string{"but probably shouldn't", "though it's risky"}},
			{Word: "will", Options: []string{"eventually", "somehow"}},
			{Word: "should", Options: []string{"if you must", "I suppose"}},
		},
		Prefixes: []string{
			"Unfortunately, ",
			"Regrettably, ",
			"As expected, ",
			"Predictably, ",
			"Not surprisingly, ",
		},
		TriggerWords:           []string{"great", "good", "excellent", "perfect", "amazing"},
		PreserveCodeBlocks:     true,
		PreserveTechnicalTerms: true,
	}
}

type tonePattern struct {
	re      *regexp.Regexp
	to      string
	phrases []string
}

var sentenceSepRe = regexp.MustCompile(`[.!?]\s+`)

// ToneApplier rewrites text toward one tone polarity. Output is
// non-deterministic under the default chooser whenever a prefix or phrase
// is injected.
type ToneApplier struct {
	cfg       ToneConfig
	patterns  []tonePattern
	preserver *spans.Preserver
	choose    Chooser
}

// NewToneApplier creates an applier from cfg.
func NewToneApplier(cfg ToneConfig) *ToneApplier {
	subs := make([]textproc.Substitution, len(cfg.WordReplacements))
	copy(subs, cfg.WordReplacements)
	sort.SliceStable(subs, func(i, j int) bool {
		return len(subs[i].From) > len(subs[j].From)
	})

	phrasesByWord := make(map[string][]string, len(cfg.PhraseAdditions))
	for _, p := range cfg.PhraseAdditions {
		phrasesByWord[strings.ToLower(p.Word)] = p.Options
	}

	patterns := make([]tonePattern, 0, len(subs))
	for _, s := range subs {
		patterns = append(patterns, tonePattern{
			re:      regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s.From) + `\b`),
			to:      s.To,
			phrases: phrasesByWord[strings.ToLower(s.From)],
		})
	}

	var kinds []spans.Kind
	if cfg.PreserveCodeBlocks {
		kinds = append(kinds, spans.KindCode)
	}
	if cfg.PreserveTechnicalTerms {
		kinds = append(kinds, spans.KindTech)
	}

	a := &ToneApplier{cfg: cfg, patterns: patterns, choose: cfg.Choose}
	if a.choose == nil {
		a.choose = defaultChooser
	}
	if len(kinds) > 0 {
		a.preserver = spans.NewPreserver(kinds...)
	}
	return a
}

// Apply swaps opposite-polarity words (injecting a qualifying phrase after
// words that have one configured) and prepends a prefix to sentences that
// open with a trigger word. Stats report "words_replaced",
// "phrases_added" and "prefixes_added".
func (a *ToneApplier) Apply(text string) (string, textproc.Stats) {
	stats := textproc.Stats{
		"words_replaced": 0,
		"phrases_added":  0,
		"prefixes_added": 0,
	}

	apply := func(text string) string {
		result := text
		for _, p := range a.patterns {
			result = p.re.ReplaceAllStringFunc(result, func(m string) string {
				stats.Add("words_replaced", 1)
				replacement := p.to
				if unicode.IsUpper([]rune(m)[0]) {
					replacement = upperFirst(replacement)
				}
				if len(p.phrases) > 0 {
					replacement += " " + p.phrases[a.choose(len(p.phrases))]
					stats.Add("phrases_added", 1)
				}
				return replacement
			})
		}
		return a.prefixSentences(result, stats)
	}

	if a.preserver != nil {
		return a.preserver.RoundTrip(text, apply), stats
	}
	return apply(text), stats
}

// prefixSentences prepends a configured prefix to every sentence that
// begins with a trigger word, skipping sentences that already carry one.
func (a *ToneApplier) prefixSentences(text string, stats textproc.Stats) string {
	if len(a.cfg.Prefixes) == 0 || len(a.cfg.TriggerWords) == 0 {
		return text
	}

	var b strings.Builder
	prev := 0
	for _, loc := range append(sentenceSepRe.FindAllStringIndex(text, -1), []int{len(text), len(text)}) {
		sentence := text[prev:loc[0]]
		b.WriteString(a.prefixSentence(sentence, stats))
		b.WriteString(text[loc[0]:loc[1]])
		prev = loc[1]
	}
	return b.String()
}

func (a *ToneApplier) prefixSentence(sentence string, stats textproc.Stats) string {
	if strings.TrimSpace(sentence) == "" {
		return sentence
	}
	for _, prefix := range a.cfg.Prefixes {
		if strings.HasPrefix(sentence, prefix) {
			return sentence
		}
	}
	lower := strings.ToLower(sentence)
	for _, trigger := range a.cfg.TriggerWords {
		if strings.HasPrefix(lower, trigger) && !continuesWord(lower, len(trigger)) {
			stats.Add("prefixes_added", 1)
			return a.cfg.Prefixes[a.choose(len(a.cfg.Prefixes))] + sentence
		}
	}
	return sentence
}

// continuesWord reports whether s[i] extends the word ending at i, so a
// trigger like "good" does not fire on "goodness".
func continuesWord(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	c := s[i]
	return c == '_' || c == '\'' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
