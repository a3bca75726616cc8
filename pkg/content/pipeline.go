package content

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Tpanarchist/cognitus/pkg/textproc"
	"github.com/Tpanarchist/cognitus/pkg/textproc/emoji"
	"github.com/Tpanarchist/cognitus/pkg/textproc/format"
	"github.com/Tpanarchist/cognitus/pkg/textproc/sanitize"
)

// Formality selects the formality transform for one processing run.
type Formality string

const (
	FormalityNone   Formality = ""
	FormalityCasual Formality = "casual"
	FormalityFormal Formality = "formal"
)

// Tone selects the tone transform for one processing run.
type Tone string

const (
	ToneNone     Tone = ""
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// Config collects the per-transform configurations for one pipeline. It
// must not be mutated after NewPipeline returns.
type Config struct {
	Blacklist    sanitize.BlacklistConfig
	Replacement  sanitize.ReplacementConfig
	SpaceTrim    sanitize.SpaceTrimConfig
	LineBreak    sanitize.LineBreakConfig
	Punctuation  sanitize.StandardizationConfig
	Excess       sanitize.ExcessConfig
	Casual       format.CasualConfig
	Formal       format.FormalConfig
	PositiveTone format.ToneConfig
	NegativeTone format.ToneConfig
	Extractor    emoji.ExtractorConfig
	Formatter    emoji.FormatterConfig

	Logger logrus.FieldLogger
}

// DefaultConfig returns the default configuration for every transform.
func DefaultConfig() Config {
	return Config{
		Blacklist:    sanitize.DefaultBlacklistConfig(),
		Replacement:  sanitize.DefaultReplacementConfig(),
		SpaceTrim:    sanitize.DefaultSpaceTrimConfig(),
		LineBreak:    sanitize.DefaultLineBreakConfig(),
		Punctuation:  sanitize.DefaultStandardizationConfig(),
		Excess:       sanitize.DefaultExcessConfig(),
		Casual:       format.DefaultCasualConfig(),
		Formal:       format.DefaultFormalConfig(),
		PositiveTone: format.DefaultPositiveToneConfig(),
		NegativeTone: format.DefaultNegativeToneConfig(),
		Extractor:    emoji.DefaultExtractorConfig(),
		Formatter:    emoji.DefaultFormatterConfig(),
	}
}

// ProcessOptions selects which transforms one Process call runs.
type ProcessOptions struct {
	Sanitize     bool
	Formality    Formality
	Tone         Tone
	ProcessEmoji bool
}

// Pipeline runs raw content through an ordered sequence of transforms,
// accumulating a modification trail. All transforms are constructed once;
// a Pipeline is safe for concurrent use.
type Pipeline struct {
	profanity      *sanitize.ProfanityReplacer
	spaceTrimmer   *sanitize.SpaceTrimmer
	breakCleaner   *sanitize.LineBreakCleaner
	standardizer   *sanitize.PunctuationStandardizer
	excessRemover  *sanitize.ExcessRemover
	casualSetter   *format.CasualSetter
	formalSetter   *format.FormalSetter
	positiveTone   *format.ToneApplier
	negativeTone   *format.ToneApplier
	emojiExtractor *emoji.Extractor
	emojiFormatter *emoji.Formatter
	logger         logrus.FieldLogger
}

// NewPipeline constructs every transform from cfg. Any malformed
// configuration fails fast here; nothing errors mid-run.
func NewPipeline(cfg Config) (*Pipeline, error) {
	p := &Pipeline{logger: cfg.Logger}
	if p.logger == nil {
		p.logger = logrus.StandardLogger()
	}

	var err error
	if p.profanity, err = sanitize.NewProfanityReplacer(sanitize.NewBlacklist(cfg.Blacklist), cfg.Replacement); err != nil {
		return nil, err
	}
	if p.spaceTrimmer, err = sanitize.NewSpaceTrimmer(cfg.SpaceTrim); err != nil {
		return nil, err
	}
	if p.breakCleaner, err = sanitize.NewLineBreakCleaner(cfg.LineBreak); err != nil {
		return nil, err
	}
	if p.standardizer, err = sanitize.NewPunctuationStandardizer(cfg.Punctuation); err != nil {
		return nil, err
	}
	if p.excessRemover, err = sanitize.NewExcessRemover(cfg.Excess); err != nil {
		return nil, err
	}
	p.casualSetter = format.NewCasualSetter(cfg.Casual)
	p.formalSetter = format.NewFormalSetter(cfg.Formal)
	p.positiveTone = format.NewToneApplier(cfg.PositiveTone)
	p.negativeTone = format.NewToneApplier(cfg.NegativeTone)
	if p.emojiExtractor, err = emoji.NewExtractor(cfg.Extractor); err != nil {
		return nil, err
	}
	if p.emojiFormatter, err = emoji.NewFormatter(cfg.Formatter, cfg.Extractor); err != nil {
		return nil, err
	}
	return p, nil
}

// Process runs content through the transforms selected by opts and returns
// the completed record. The sanitize steps append one modification each
// for profanity filtering, whitespace cleaning and punctuation cleaning;
// formality, tone and emoji processing append one modification apiece.
func (p *Pipeline) Process(content string, opts ProcessOptions) (*ProcessedContent, error) {
	switch opts.Formality {
	case FormalityNone, FormalityCasual, FormalityFormal:
	default:
		return nil, fmt.Errorf("content: unknown formality %q", opts.Formality)
	}
	switch opts.Tone {
	case ToneNone, TonePositive, ToneNegative:
	default:
		return nil, fmt.Errorf("content: unknown tone %q", opts.Tone)
	}

	raw := StoreRaw(content)
	processed := NewProcessedContent(raw.Content)

	if opts.Sanitize {
		cleaned, stats := p.profanity.Replace(processed.Content)
		if err := p.record(processed, cleaned, ModProfanityFilter, stats); err != nil {
			return nil, err
		}

		cleaned, trimStats := p.spaceTrimmer.TrimSpaces(processed.Content)
		cleaned, breakStats := p.breakCleaner.CleanBreaks(cleaned)
		if err := p.record(processed, cleaned, ModWhitespaceClean, mergeStats(trimStats, breakStats)); err != nil {
			return nil, err
		}

		cleaned, punctStats := p.standardizer.Standardize(processed.Content)
		cleaned, excessStats := p.excessRemover.RemoveExcess(cleaned)
		if err := p.record(processed, cleaned, ModPunctuationClean, mergeStats(punctStats, excessStats)); err != nil {
			return nil, err
		}
	}

	switch opts.Formality {
	case FormalityCasual:
		casual, stats := p.casualSetter.SetCasual(processed.Content)
		if err := p.record(processed, casual, ModCasualFormality, stats); err != nil {
			return nil, err
		}
	case FormalityFormal:
		formal, stats := p.formalSetter.SetFormal(processed.Content)
		if err := p.record(processed, formal, ModFormalFormality, stats); err != nil {
			return nil, err
		}
	}

	switch opts.Tone {
	case TonePositive:
		positive, stats := p.positiveTone.Apply(processed.Content)
		if err := p.record(processed, positive, ModPositiveTone, stats); err != nil {
			return nil, err
		}
	case ToneNegative:
		negative, stats := p.negativeTone.Apply(processed.Content)
		if err := p.record(processed, negative, ModNegativeTone, stats); err != nil {
			return nil, err
		}
	}

	if opts.ProcessEmoji {
		extraction := p.emojiExtractor.Extract(processed.Content)
		formatted, stats := p.emojiFormatter.Format(processed.Content)
		metadata := map[string]any{"stats": stats, "emoji_data": extraction}
		if err := processed.AddModification(formatted, ModEmojiProcess, metadata); err != nil {
			return nil, err
		}
		p.logStep(ModEmojiProcess, stats)
	}

	processed.MarkComplete()
	return processed, nil
}

func (p *Pipeline) record(processed *ProcessedContent, newContent string, typ ModificationType, stats textproc.Stats) error {
	if err := processed.AddModification(newContent, typ, map[string]any{"stats": stats}); err != nil {
		return err
	}
	p.logStep(typ, stats)
	return nil
}

func (p *Pipeline) logStep(typ ModificationType, stats textproc.Stats) {
	p.logger.WithFields(logrus.Fields{
		"modification": typ,
		"stats":        stats,
	}).Debug("applied content transform")
}

func mergeStats(a, b textproc.Stats) textproc.Stats {
	merged := textproc.Stats{}
	for name, n := range a {
		merged.Add(name, n)
	}
	for name, n := range b {
		merged.Add(name, n)
	}
	return merged
}
