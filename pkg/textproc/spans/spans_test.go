package spans

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectRestoreRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
		text  string
	}{
		{"inline code", []Kind{KindCode}, "run `go test` before pushing"},
		{"fenced block", []Kind{KindCode}, "example:\n```go\nfmt.Println(\"hi\")\n```\ndone"},
		{"url", []Kind{KindURL}, "see https://example.com/a?b=c!!! for details"},
		{"markdown bold", []Kind{KindMarkdown}, "this is **very important** text"},
		{"quoted text", []Kind{KindQuote}, `he said "do not change this" loudly`},
		{"snake case identifier", []Kind{KindTech}, "call parse_args before run"},
		{"camel case identifier", []Kind{KindTech}, "the maxRetries field controls it"},
		{"everything at once", []Kind{KindCode, KindURL, KindMarkdown, KindQuote},
			"check `x!!` and https://a.b/c and **bold!!** and \"quoted\" text"},
		{"no matches", []Kind{KindCode, KindURL}, "plain text with nothing special"},
		{"empty", []Kind{KindCode}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPreserver(tt.kinds...)
			protected, m := p.Protect(tt.text)
			assert.Equal(t, tt.text, p.Restore(protected, m))
		})
	}
}

func TestProtectReplacesMatchesWithSentinels(t *testing.T) {
	p := NewPreserver(KindCode)
	protected, m := p.Protect("a `b` c `d` e")

	require.Equal(t, 2, m.Len())
	assert.NotContains(t, protected, "`b`")
	assert.NotContains(t, protected, "`d`")
	assert.Contains(t, protected, "\x00CODE0\x00")
	assert.Contains(t, protected, "\x00CODE1\x00")
}

func TestProtectOrderCodeBeforeURL(t *testing.T) {
	// A URL inside inline code must be captured by the code pattern, not
	// matched again as a URL.
	p := NewPreserver(KindCode, KindURL)
	protected, m := p.Protect("go to `https://example.com` now")

	require.Equal(t, 1, m.Len())
	span, ok := m.Get("\x00CODE0\x00")
	require.True(t, ok)
	assert.Equal(t, KindCode, span.Kind)
	assert.Equal(t, "`https://example.com`", span.Text)
	assert.NotContains(t, protected, "URL")
}

func TestProtectURLAdjacentToCodeSpan(t *testing.T) {
	// A URL butted up against an already-protected span must not swallow
	// the neighboring sentinel.
	p := NewPreserver(KindCode, KindURL)
	text := "fetch https://a.b/c`raw`"

	protected, m := p.Protect(text)
	require.Equal(t, 2, m.Len())
	assert.NotContains(t, protected, "https://")
	assert.Equal(t, text, p.Restore(protected, m))
}

func TestNewPreserverCanonicalOrder(t *testing.T) {
	// Argument order must not matter.
	a := NewPreserver(KindQuote, KindCode)
	b := NewPreserver(KindCode, KindQuote)

	text := "say \"`hi`\" now"
	pa, _ := a.Protect(text)
	pb, _ := b.Protect(text)
	assert.Equal(t, pa, pb)
}

func TestRestoreDropsDeletedSentinels(t *testing.T) {
	p := NewPreserver(KindCode)
	protected, m := p.Protect("keep `one` and `two`")

	// Simulate a transform that destroyed the second sentinel.
	mangled := strings.Replace(protected, "\x00CODE1\x00", "", 1)
	restored := p.Restore(mangled, m)

	assert.Contains(t, restored, "`one`")
	assert.NotContains(t, restored, "`two`")
	assert.NotContains(t, restored, "\x00")
}

func TestRestoreReplacesEachSentinelOnce(t *testing.T) {
	p := NewPreserver(KindCode)
	protected, m := p.Protect("x `y` z")

	// A transform duplicated the sentinel; only the first occurrence is
	// restored, the copy stays inert.
	doubled := protected + " \x00CODE0\x00"
	restored := p.Restore(doubled, m)
	assert.Equal(t, 1, strings.Count(restored, "`y`"))
}

func TestRestoreLeavesUnknownTokensAlone(t *testing.T) {
	p := NewPreserver(KindCode)
	protected, m := p.Protect("a `b` c")

	withStray := protected + " \x00URL9\x00"
	restored := p.Restore(withStray, m)
	assert.Contains(t, restored, "`b`")
	assert.Contains(t, restored, "\x00URL9\x00")
}

func TestRoundTripAppliesTransform(t *testing.T) {
	p := NewPreserver(KindCode)
	out := p.RoundTrip("SHOUT `quiet` SHOUT", strings.ToLower)
	assert.Equal(t, "shout `quiet` shout", out)
}
