package content

import (
	"fmt"
	"time"
)

// ModificationType tags one pipeline step in a modification trail.
type ModificationType string

const (
	ModProfanityFilter  ModificationType = "profanity_filter"
	ModWhitespaceClean  ModificationType = "whitespace_clean"
	ModPunctuationClean ModificationType = "punctuation_clean"
	ModCasualFormality  ModificationType = "casual_formality"
	ModFormalFormality  ModificationType = "formal_formality"
	ModPositiveTone     ModificationType = "positive_tone"
	ModNegativeTone     ModificationType = "negative_tone"
	ModEmojiProcess     ModificationType = "emoji_process"
)

// RawContent is an immutable snapshot of content as it was ingested. It is
// created once per message and kept as the audit baseline.
type RawContent struct {
	Content     string
	ContentType string
	Encoding    string
	Length      int
}

// StoreRaw captures content with its metadata.
func StoreRaw(content string) RawContent {
	return RawContent{
		Content:     content,
		ContentType: "text",
		Encoding:    "utf-8",
		Length:      len(content),
	}
}

// ContentModification is one append-only audit record. Each record's
// ModifiedContent equals the next record's OriginalContent.
type ContentModification struct {
	Type            ModificationType
	Timestamp       time.Time
	OriginalContent string
	ModifiedContent string
	Metadata        map[string]any
}

// ProcessedContent tracks content through one processing run. It is owned
// by the pipeline for the duration of the run and becomes immutable once
// ProcessingComplete is set.
type ProcessedContent struct {
	Content            string
	OriginalContent    string
	Modifications      []ContentModification
	FinalLength        int
	ProcessingComplete bool
}

// NewProcessedContent creates the baseline record before any transform has
// run.
func NewProcessedContent(original string) *ProcessedContent {
	return &ProcessedContent{
		Content:         original,
		OriginalContent: original,
		FinalLength:     len(original),
	}
}

// AddModification appends an audit record and advances Content. It fails
// once processing is complete.
func (p *ProcessedContent) AddModification(newContent string, typ ModificationType, metadata map[string]any) error {
	if p.ProcessingComplete {
		return fmt.Errorf("content: cannot modify completed record (type %s)", typ)
	}
	p.Modifications = append(p.Modifications, ContentModification{
		Type:            typ,
		Timestamp:       time.Now().UTC(),
		OriginalContent: p.Content,
		ModifiedContent: newContent,
		Metadata:        metadata,
	})
	p.Content = newContent
	p.FinalLength = len(newContent)
	return nil
}

// MarkComplete freezes the record.
func (p *ProcessedContent) MarkComplete() {
	p.ProcessingComplete = true
}

// Replay re-applies the modification trail from OriginalContent and
// returns the reconstructed content. It fails if the chain is
// inconsistent, that is if any record's OriginalContent differs from the
// previous record's ModifiedContent.
func (p *ProcessedContent) Replay() (string, error) {
	current := p.OriginalContent
	for i, mod := range p.Modifications {
		if mod.OriginalContent != current {
			return "", fmt.Errorf("content: modification %d (%s) breaks the chain", i, mod.Type)
		}
		current = mod.ModifiedContent
	}
	return current, nil
}
