package spans

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Kind identifies a family of protected content.
type Kind string

const (
	// KindCode matches inline code and fenced code blocks.
	KindCode Kind = "CODE"
	// KindURL matches http and https URLs.
	KindURL Kind = "URL"
	// KindMarkdown matches markdown emphasis (bold, italic, strikethrough).
	KindMarkdown Kind = "MD"
	// KindQuote matches double-quoted text.
	KindQuote Kind = "QUOTE"
	// KindTech matches technical identifiers (camelCase, snake_case).
	KindTech Kind = "TECH"
)

// Patterns are applied in a fixed order so that content embedded inside an
// earlier-protected span is never separately matched: code first, then URLs,
// markdown, quotes, identifiers.
var kindOrder = []Kind{KindCode, KindURL, KindMarkdown, KindQuote, KindTech}

var kindPatterns = map[Kind]*regexp.Regexp{
	KindCode:     regexp.MustCompile("```[\\s\\S]*?```|`[^`]+`"),
	KindURL:      regexp.MustCompile("https?://[^\\s\x00]+"),
	KindMarkdown: regexp.MustCompile(`\*\*[\s\S]*?\*\*|__[\s\S]*?__|\*[\s\S]*?\*|_[\s\S]*?_|~~[\s\S]*?~~`),
	KindQuote:    regexp.MustCompile(`"[^"]+"`),
	KindTech:     regexp.MustCompile(`\b[a-z]+(?:[A-Z][a-z]*)+\b|\b[a-z]+(?:_[a-z]+)+\b`),
}

// sentinelPattern matches any token emitted by Protect. Matching is
// case-insensitive because a case-altering transform may rewrite the kind
// tag between Protect and Restore.
var sentinelPattern = regexp.MustCompile("(?i)\x00[A-Z]+[0-9]+\x00")

// Span is a single protected fragment.
type Span struct {
	Kind Kind
	Text string
}

// SpanMap maps sentinel tokens to the fragments they replaced. It is scoped
// to a single Protect/Restore round trip and must not be reused across
// calls.
type SpanMap struct {
	order []string
	spans map[string]Span
}

// Len returns the number of protected spans.
func (m *SpanMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Get returns the span recorded for token.
func (m *SpanMap) Get(token string) (Span, bool) {
	if m == nil {
		return Span{}, false
	}
	s, ok := m.spans[token]
	return s, ok
}

func (m *SpanMap) add(token string, s Span) {
	m.order = append(m.order, token)
	m.spans[token] = s
}

// Preserver extracts and restores protected spans for a fixed set of
// pattern kinds. A Preserver is stateless between calls and safe for
// concurrent use.
type Preserver struct {
	kinds []Kind

	// Logger receives a warning for every span whose sentinel was
	// destroyed before Restore. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// NewPreserver creates a Preserver for the given kinds. Kinds are applied
// in the package's canonical order regardless of argument order; duplicates
// are ignored.
func NewPreserver(kinds ...Kind) *Preserver {
	requested := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		requested[k] = true
	}
	ordered := make([]Kind, 0, len(requested))
	for _, k := range kindOrder {
		if requested[k] {
			ordered = append(ordered, k)
		}
	}
	return &Preserver{kinds: ordered}
}

// Protect replaces every match of the configured kinds with a sentinel
// token and returns the rewritten text together with the map needed to
// restore it. Sentinels use a control character delimiter plus a kind tag
// and a counter, which cannot collide with ordinary text.
func (p *Preserver) Protect(text string) (string, *SpanMap) {
	m := &SpanMap{spans: make(map[string]Span)}
	result := text
	counter := 0
	for _, k := range p.kinds {
		result = kindPatterns[k].ReplaceAllStringFunc(result, func(match string) string {
			// Never re-protect an earlier sentinel.
			if sentinelPattern.MatchString(match) {
				return match
			}
			token := fmt.Sprintf("\x00%s%d\x00", k, counter)
			counter++
			m.add(token, Span{Kind: k, Text: match})
			return token
		})
	}
	return result, m
}

// Restore replaces every sentinel token in text with its original fragment,
// each at most once. Tokens that no longer appear in the text (because a
// transform deleted them) are dropped and logged; this is accepted lossy
// behavior, not an error. Sentinel-shaped substrings with no map entry are
// left untouched.
func (p *Preserver) Restore(text string, m *SpanMap) string {
	if m.Len() == 0 {
		return text
	}
	used := make(map[string]bool, m.Len())
	result := sentinelPattern.ReplaceAllStringFunc(text, func(token string) string {
		// Map keys are upper case; fold the token back in case a
		// transform lowered it.
		key := strings.ToUpper(token)
		span, ok := m.spans[key]
		if !ok || used[key] {
			return token
		}
		used[key] = true
		return span.Text
	})
	for _, token := range m.order {
		if !used[token] {
			p.logger().WithFields(logrus.Fields{
				"kind": string(m.spans[token].Kind),
				"span": m.spans[token].Text,
			}).Warn("protected span dropped: sentinel not found during restore")
		}
	}
	return result
}

// RoundTrip protects text, applies fn to the protected form, and restores
// the result. It is the common calling pattern for transforms.
func (p *Preserver) RoundTrip(text string, fn func(string) string) string {
	protected, m := p.Protect(text)
	return p.Restore(fn(protected), m)
}

func (p *Preserver) logger() logrus.FieldLogger {
	if p.Logger != nil {
		return p.Logger
	}
	return logrus.StandardLogger()
}
