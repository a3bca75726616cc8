package sanitize

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BlacklistConfig configures blacklist assembly.
type BlacklistConfig struct {
	// DefaultWords is the base word list.
	DefaultWords []string
	// CustomWords extends the base list.
	CustomWords []string
	// Locale tags the list; informational only.
	Locale string
	// CaseSensitive controls both matching and how entries are stored.
	// When false, every entry is lowercased on load.
	CaseSensitive bool
}

// DefaultBlacklistConfig returns an empty, case-insensitive configuration.
func DefaultBlacklistConfig() BlacklistConfig {
	return BlacklistConfig{Locale: "en"}
}

// Blacklist is the combined word list a ProfanityReplacer matches against.
//
// Add and Remove mutate the list and are intended for configuration time
// only; they are not synchronized and must not be called while a
// replacement is in flight.
type Blacklist struct {
	caseSensitive bool
	words         map[string]struct{}
}

// NewBlacklist builds a blacklist from cfg.
func NewBlacklist(cfg BlacklistConfig) *Blacklist {
	b := &Blacklist{
		caseSensitive: cfg.CaseSensitive,
		words:         make(map[string]struct{}),
	}
	b.Add(cfg.DefaultWords...)
	b.Add(cfg.CustomWords...)
	return b
}

// Add inserts words into the list.
func (b *Blacklist) Add(words ...string) {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		b.words[b.normalize(w)] = struct{}{}
	}
}

// Remove deletes words from the list.
func (b *Blacklist) Remove(words ...string) {
	for _, w := range words {
		delete(b.words, b.normalize(w))
	}
}

// Contains reports whether word is blacklisted.
func (b *Blacklist) Contains(word string) bool {
	_, ok := b.words[b.normalize(word)]
	return ok
}

// Words returns the entries in sorted order. Sorting fixes the order in
// which the replacer processes entries.
func (b *Blacklist) Words() []string {
	out := make([]string, 0, len(b.words))
	for w := range b.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// LoadFile merges words from a file into the list. JSON files must contain
// a string array; any other extension is read as one word per line. A
// missing file is reported to the caller untouched; it is never retried
// here.
func (b *Blacklist) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load blacklist: %w", err)
	}
	defer f.Close()

	if filepath.Ext(path) == ".json" {
		var words []string
		if err := json.NewDecoder(f).Decode(&words); err != nil {
			return fmt.Errorf("load blacklist %s: %w", path, err)
		}
		b.Add(words...)
		return nil
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		b.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("load blacklist %s: %w", path, err)
	}
	return nil
}

func (b *Blacklist) normalize(word string) string {
	if b.caseSensitive {
		return word
	}
	return strings.ToLower(word)
}
