// Package textproc holds types shared by the content transforms: the
// per-call stats map every transform returns and the ordered substitution
// pair used by their configuration tables.
//
// Substitution tables are ordered slices rather than maps so that iteration
// order is fixed and a configured transform behaves identically on every
// run.
package textproc

// Stats counts the effects of a single transform invocation. Counter names
// are transform-specific; a transform that found nothing to change returns
// all-zero counts, never an error.
type Stats map[string]int

// Add increments a counter by n, materializing it at zero if absent.
func (s Stats) Add(name string, n int) {
	s[name] += n
}

// Substitution is one ordered from→to rewrite pair.
type Substitution struct {
	From string
	To   string
}
