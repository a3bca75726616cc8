package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tpanarchist/cognitus/pkg/textproc/sanitize"
)

func newTestPipeline(t *testing.T, mutate func(*Config)) *Pipeline {
	t.Helper()
	cfg := DefaultConfig()
	cfg.PositiveTone.Choose = func(int) int { return 0 }
	cfg.NegativeTone.Choose = func(int) int { return 0 }
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := NewPipeline(cfg)
	require.NoError(t, err)
	return p
}

func TestPipelineSanitize(t *testing.T) {
	p := newTestPipeline(t, func(cfg *Config) {
		cfg.Blacklist.CustomWords = []string{"darn"}
	})

	result, err := p.Process("darn  this!!!!!", ProcessOptions{Sanitize: true})
	require.NoError(t, err)

	assert.Equal(t, "**** this!!!", result.Content)
	assert.True(t, result.ProcessingComplete)
	require.Len(t, result.Modifications, 3)
	assert.Equal(t, ModProfanityFilter, result.Modifications[0].Type)
	assert.Equal(t, ModWhitespaceClean, result.Modifications[1].Type)
	assert.Equal(t, ModPunctuationClean, result.Modifications[2].Type)
}

func TestPipelineFormalityAndTone(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Process("hey, this problem can't wait", ProcessOptions{
		Formality: FormalityFormal,
		Tone:      TonePositive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello, this challenge cannot wait", result.Content)
	require.Len(t, result.Modifications, 2)
	assert.Equal(t, ModFormalFormality, result.Modifications[0].Type)
	assert.Equal(t, ModPositiveTone, result.Modifications[1].Type)
}

func TestPipelineEmoji(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Process("nice :-)", ProcessOptions{ProcessEmoji: true})
	require.NoError(t, err)

	assert.Equal(t, "nice 😊", result.Content)
	require.Len(t, result.Modifications, 1)
	mod := result.Modifications[0]
	assert.Equal(t, ModEmojiProcess, mod.Type)
	assert.Contains(t, mod.Metadata, "emoji_data")
	assert.Contains(t, mod.Metadata, "stats")
}

func TestPipelineNoTransformsSelected(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Process("unchanged text", ProcessOptions{})
	require.NoError(t, err)

	assert.Equal(t, "unchanged text", result.Content)
	assert.Equal(t, "unchanged text", result.OriginalContent)
	assert.True(t, result.ProcessingComplete)
	assert.Empty(t, result.Modifications)
}

func TestPipelineRejectsUnknownSelectors(t *testing.T) {
	p := newTestPipeline(t, nil)

	_, err := p.Process("text", ProcessOptions{Formality: "shouty"})
	assert.Error(t, err)

	_, err = p.Process("text", ProcessOptions{Tone: "sarcastic"})
	assert.Error(t, err)
}

func TestPipelineChainConsistency(t *testing.T) {
	p := newTestPipeline(t, func(cfg *Config) {
		cfg.Blacklist.CustomWords = []string{"heck"}
	})

	input := "heck,   this is a problem!!  don't panic :-)   "
	result, err := p.Process(input, ProcessOptions{
		Sanitize:     true,
		Formality:    FormalityFormal,
		Tone:         TonePositive,
		ProcessEmoji: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Modifications, 6)

	replayed, err := result.Replay()
	require.NoError(t, err)
	assert.Equal(t, result.Content, replayed)
	assert.Equal(t, len(result.Content), result.FinalLength)
	assert.Equal(t, input, result.OriginalContent)
}

func TestPipelinePropagatesConfigErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Excess.Limits = []sanitize.RunLimit{{Mark: "!", Max: 0}}

	_, err := NewPipeline(cfg)
	require.Error(t, err)

	var cfgErr *sanitize.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
