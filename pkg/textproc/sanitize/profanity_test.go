package sanitize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
)

func newTestReplacer(t *testing.T, blacklist BlacklistConfig, cfg ReplacementConfig) *ProfanityReplacer {
	t.Helper()
	r, err := NewProfanityReplacer(NewBlacklist(blacklist), cfg)
	require.NoError(t, err)
	return r
}

func TestReplaceWholeWordsOnly(t *testing.T) {
	r := newTestReplacer(t,
		BlacklistConfig{DefaultWords: []string{"bad", "worse"}},
		ReplacementConfig{
			ReplacementChar: "*",
			PreserveLength:  true,
			WholeWordsOnly:  true,
			CustomReplacements: []textproc.Substitution{
				{From: "bad", To: "good"},
			},
		})

	clean, stats := r.Replace("badword isn't bad but worse is")

	assert.Equal(t, "badword isn't good but ***** is", clean)
	assert.Equal(t, textproc.Stats{"bad": 1, "worse": 1}, stats)
}

func TestReplaceCaseInsensitiveMatching(t *testing.T) {
	r := newTestReplacer(t,
		BlacklistConfig{DefaultWords: []string{"Damn"}},
		DefaultReplacementConfig())

	clean, stats := r.Replace("DAMN that damn thing")

	assert.Equal(t, "**** that **** thing", clean)
	assert.Equal(t, 2, stats["damn"])
}

func TestReplaceCaseSensitiveMatching(t *testing.T) {
	r := newTestReplacer(t,
		BlacklistConfig{DefaultWords: []string{"damn"}, CaseSensitive: true},
		DefaultReplacementConfig())

	clean, stats := r.Replace("Damn that damn thing")

	assert.Equal(t, "Damn that **** thing", clean)
	assert.Equal(t, 1, stats["damn"])
}

func TestReplaceFixedSingleChar(t *testing.T) {
	r := newTestReplacer(t,
		BlacklistConfig{DefaultWords: []string{"heck"}},
		ReplacementConfig{ReplacementChar: "#", WholeWordsOnly: true})

	clean, _ := r.Replace("what the heck")
	assert.Equal(t, "what the #", clean)
}

func TestReplaceNoMatchesIsZeroEffect(t *testing.T) {
	r := newTestReplacer(t,
		BlacklistConfig{DefaultWords: []string{"bad"}},
		DefaultReplacementConfig())

	clean, stats := r.Replace("perfectly fine text")
	assert.Equal(t, "perfectly fine text", clean)
	assert.Empty(t, stats)
}

func TestReplaceSubstringMode(t *testing.T) {
	r := newTestReplacer(t,
		BlacklistConfig{DefaultWords: []string{"bad"}},
		ReplacementConfig{ReplacementChar: "*", PreserveLength: true})

	clean, stats := r.Replace("badly bad")
	assert.Equal(t, "***ly ***", clean)
	assert.Equal(t, 2, stats["bad"])
}

func TestNewProfanityReplacerRejectsEmptyChar(t *testing.T) {
	_, err := NewProfanityReplacer(NewBlacklist(DefaultBlacklistConfig()), ReplacementConfig{})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ReplacementChar", cfgErr.Field)
}

func TestBlacklistAddRemoveContains(t *testing.T) {
	b := NewBlacklist(BlacklistConfig{DefaultWords: []string{"Foo"}})

	assert.True(t, b.Contains("foo"))
	assert.True(t, b.Contains("FOO"))

	b.Add("bar")
	assert.Equal(t, []string{"bar", "foo"}, b.Words())

	b.Remove("FOO")
	assert.False(t, b.Contains("foo"))
}

func TestBlacklistLoadFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(txt, []byte("alpha\n\nbeta\n"), 0o644))

	jsonFile := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`["gamma","delta"]`), 0o644))

	b := NewBlacklist(DefaultBlacklistConfig())
	require.NoError(t, b.LoadFile(txt))
	require.NoError(t, b.LoadFile(jsonFile))

	assert.Equal(t, []string{"alpha", "beta", "delta", "gamma"}, b.Words())
}

func TestBlacklistLoadFileMissing(t *testing.T) {
	b := NewBlacklist(DefaultBlacklistConfig())
	err := b.LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
