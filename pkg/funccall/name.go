package funccall

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// NameConfig configures function name validation.
type NameConfig struct {
	// AllowedPatterns are regexes a name must match at least one of.
	AllowedPatterns []string
	MaxLength       int
	// ReservedPrefixes are rejected outright.
	ReservedPrefixes []string
	CaseSensitive    bool
}

// DefaultNameConfig returns the standard naming policy.
func DefaultNameConfig() NameConfig {
	return NameConfig{
		AllowedPatterns: []string{
			`^[a-zA-Z_][a-zA-Z0-9_]*$`,
			`^[a-z][a-zA-Z0-9_]*\.[a-z][a-zA-Z0-9_]*$`,
		},
		MaxLength:        64,
		ReservedPrefixes: []string{"__", "system_", "internal_"},
		CaseSensitive:    true,
	}
}

// Identifier validates function names against the configured policy.
type Identifier struct {
	cfg      NameConfig
	patterns []*regexp.Regexp
}

// NewIdentifier creates an identifier, compiling the allowed patterns.
func NewIdentifier(cfg NameConfig) (*Identifier, error) {
	patterns := make([]*regexp.Regexp, 0, len(cfg.AllowedPatterns))
	for _, p := range cfg.AllowedPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("funccall: allowed pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return &Identifier{cfg: cfg, patterns: patterns}, nil
}

// Identify validates raw and returns the accepted name, or an empty string
// plus the list of validation issues.
func (i *Identifier) Identify(raw string) (string, []string) {
	name := raw
	if !i.cfg.CaseSensitive {
		name = strings.ToLower(name)
	}

	var issues []string
	if name == "" {
		issues = append(issues, "name is empty")
	}
	if len(name) > i.cfg.MaxLength {
		issues = append(issues, fmt.Sprintf("name exceeds %d characters", i.cfg.MaxLength))
	}
	matched := false
	for _, re := range i.patterns {
		if re.MatchString(name) {
			matched = true
			break
		}
	}
	if !matched {
		issues = append(issues, "name matches no allowed pattern")
	}
	for _, prefix := range i.cfg.ReservedPrefixes {
		if strings.HasPrefix(name, prefix) {
			issues = append(issues, fmt.Sprintf("name uses reserved prefix %q", prefix))
			break
		}
	}

	if len(issues) > 0 {
		return "", issues
	}
	return name, nil
}

// SanitizeConfig configures function name sanitization.
type SanitizeConfig struct {
	RemoveWhitespace    bool
	NormalizeCase       bool
	NormalizeSeparators bool
	StripInvalidChars   bool
	// ValidChars is the character set kept when stripping.
	ValidChars string
}

// DefaultSanitizeConfig returns the standard sanitization policy.
func DefaultSanitizeConfig() SanitizeConfig {
	return SanitizeConfig{
		RemoveWhitespace:    true,
		NormalizeCase:       true,
		NormalizeSeparators: true,
		StripInvalidChars:   true,
		ValidChars:          "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_.",
	}
}

var (
	underscoreRunRe = regexp.MustCompile(`_+`)
	dotRunRe        = regexp.MustCompile(`\.+`)
)

// NameSanitizer normalizes raw function names into the accepted shape.
type NameSanitizer struct {
	cfg SanitizeConfig
}

// NewNameSanitizer creates a sanitizer from cfg.
func NewNameSanitizer(cfg SanitizeConfig) *NameSanitizer {
	return &NameSanitizer{cfg: cfg}
}

// Sanitize normalizes raw and reports which steps changed it.
func (s *NameSanitizer) Sanitize(raw string) (string, map[string]bool) {
	changes := map[string]bool{
		"whitespace_removed":    false,
		"case_normalized":       false,
		"separators_normalized": false,
		"invalid_chars_removed": false,
	}
	result := raw

	if s.cfg.RemoveWhitespace {
		stripped := strings.Join(strings.Fields(result), "")
		changes["whitespace_removed"] = stripped != result
		result = stripped
	}
	if s.cfg.NormalizeCase {
		snaked := camelToSnake(result)
		changes["case_normalized"] = snaked != result
		result = snaked
	}
	if s.cfg.NormalizeSeparators {
		collapsed := underscoreRunRe.ReplaceAllString(result, "_")
		collapsed = dotRunRe.ReplaceAllString(collapsed, ".")
		collapsed = strings.Trim(collapsed, "_.")
		changes["separators_normalized"] = collapsed != result
		result = collapsed
	}
	if s.cfg.StripInvalidChars {
		stripped := strings.Map(func(r rune) rune {
			if strings.ContainsRune(s.cfg.ValidChars, r) {
				return r
			}
			return -1
		}, result)
		changes["invalid_chars_removed"] = stripped != result
		result = stripped
	}

	return result, changes
}

// camelToSnake inserts an underscore before every interior upper-case rune
// and lowercases the result.
func camelToSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
