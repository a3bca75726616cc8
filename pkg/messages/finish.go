package messages

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// FinishReason classifies why a completion stopped.
type FinishReason string

const (
	FinishStop          FinishReason = "stop"
	FinishLength        FinishReason = "length"
	FinishFunctionCall  FinishReason = "function_call"
	FinishContentFilter FinishReason = "content_filter"
	FinishError         FinishReason = "error"
	FinishIncomplete    FinishReason = "incomplete"
	FinishTimeLimit     FinishReason = "time_limit"
	FinishUnknown       FinishReason = "unknown"
)

// rawReasonMap folds provider-specific spellings onto the standard set.
var rawReasonMap = map[string]FinishReason{
	"stop":           FinishStop,
	"stopped":        FinishStop,
	"completed":      FinishStop,
	"length":         FinishLength,
	"max_length":     FinishLength,
	"max_tokens":     FinishLength,
	"function_call":  FinishFunctionCall,
	"function":       FinishFunctionCall,
	"content_filter": FinishContentFilter,
	"filtered":       FinishContentFilter,
	"error":          FinishError,
	"incomplete":     FinishIncomplete,
	"interrupted":    FinishIncomplete,
	"time_limit":     FinishTimeLimit,
	"timeout":        FinishTimeLimit,
}

// NormalizeFinishReason maps a raw reason string onto the standard set,
// returning FinishUnknown for anything unrecognized.
func NormalizeFinishReason(raw string) FinishReason {
	if reason, ok := rawReasonMap[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return reason
	}
	return FinishUnknown
}

// FinishMetadata is the full record attached to one finish reason.
type FinishMetadata struct {
	Reason       FinishReason
	Timestamp    time.Time
	TokenCount   int
	ErrorDetails string
	FilterFlags  map[string]bool
}

// NewFinishMetadata normalizes raw into a timestamped record.
func NewFinishMetadata(raw string) FinishMetadata {
	return FinishMetadata{
		Reason:    NormalizeFinishReason(raw),
		Timestamp: time.Now().UTC(),
	}
}

// CompletionType groups finish reasons by how usable the completion is.
type CompletionType string

const (
	CompletionSuccessful CompletionType = "successful"
	CompletionTruncated  CompletionType = "truncated"
	CompletionFailed     CompletionType = "failed"
	CompletionPartial    CompletionType = "partial"
	CompletionFiltered   CompletionType = "filtered"
	CompletionFunction   CompletionType = "function"
)

// CompletionCategory describes the handling consequences of one finish
// reason.
type CompletionCategory struct {
	Type          CompletionType
	Reason        FinishReason
	Usable        bool
	RequiresRetry bool
	Flags         map[string]bool
}

var completionCategories = map[FinishReason]CompletionCategory{
	FinishStop: {
		Type: CompletionSuccessful, Usable: true,
		Flags: map[string]bool{"complete": true, "natural_stop": true},
	},
	FinishLength: {
		Type: CompletionTruncated, Usable: true,
		Flags: map[string]bool{"complete": false, "truncated": true},
	},
	FinishFunctionCall: {
		Type: CompletionFunction, Usable: true,
		Flags: map[string]bool{"function_call": true},
	},
	FinishContentFilter: {
		Type: CompletionFiltered, RequiresRetry: true,
		Flags: map[string]bool{"filtered": true, "requires_modification": true},
	},
	FinishError: {
		Type: CompletionFailed, RequiresRetry: true,
		Flags: map[string]bool{"error": true, "requires_retry": true},
	},
	FinishIncomplete: {
		Type: CompletionPartial, RequiresRetry: true,
		Flags: map[string]bool{"incomplete": true, "interrupted": true},
	},
	FinishTimeLimit: {
		Type: CompletionTruncated, Usable: true,
		Flags: map[string]bool{"timeout": true, "truncated": true},
	},
	FinishUnknown: {
		Type: CompletionFailed, RequiresRetry: true,
		Flags: map[string]bool{"unknown": true, "requires_investigation": true},
	},
}

// CategorizeCompletion maps a finish reason to its handling category.
// Unrecognized reasons categorize as FinishUnknown.
func CategorizeCompletion(reason FinishReason) CompletionCategory {
	category, ok := completionCategories[reason]
	if !ok {
		category = completionCategories[FinishUnknown]
		reason = FinishUnknown
	}
	category.Reason = reason
	return category
}

// FinishValidationConfig configures finish-reason validation.
type FinishValidationConfig struct {
	AllowUnknown         bool
	ValidateTokenCount   bool
	ValidateErrorDetails bool
	MinTokenCount        int
	// MaxTokenCount of zero means no upper bound.
	MaxTokenCount       int
	LogValidationErrors bool

	Logger logrus.FieldLogger
}

// DefaultFinishValidationConfig returns the standard validation policy.
func DefaultFinishValidationConfig() FinishValidationConfig {
	return FinishValidationConfig{
		ValidateTokenCount:   true,
		ValidateErrorDetails: true,
		MinTokenCount:        1,
		LogValidationErrors:  true,
	}
}

// FinishReasonValidator checks finish-reason records for internal
// consistency.
type FinishReasonValidator struct {
	cfg    FinishValidationConfig
	logger logrus.FieldLogger
}

// NewFinishReasonValidator creates a validator from cfg.
func NewFinishReasonValidator(cfg FinishValidationConfig) *FinishReasonValidator {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FinishReasonValidator{cfg: cfg, logger: logger}
}

// Validate returns per-field problems with meta. An empty map means the
// record is consistent.
func (v *FinishReasonValidator) Validate(meta FinishMetadata) map[string]string {
	problems := map[string]string{}

	if meta.Reason == FinishUnknown && !v.cfg.AllowUnknown {
		problems["reason"] = "unknown finish reason not allowed"
	}

	if v.cfg.ValidateTokenCount && meta.TokenCount != 0 {
		if meta.TokenCount < v.cfg.MinTokenCount {
			problems["token_count"] = fmt.Sprintf("token count %d below minimum %d",
				meta.TokenCount, v.cfg.MinTokenCount)
		}
		if v.cfg.MaxTokenCount > 0 && meta.TokenCount > v.cfg.MaxTokenCount {
			problems["token_count"] = fmt.Sprintf("token count %d above maximum %d",
				meta.TokenCount, v.cfg.MaxTokenCount)
		}
	}

	if v.cfg.ValidateErrorDetails {
		switch {
		case meta.Reason == FinishError && meta.ErrorDetails == "":
			problems["error_details"] = "error reason requires error details"
		case meta.Reason != FinishError && meta.ErrorDetails != "":
			problems["error_details"] = "error details present for non-error reason"
		}
	}

	switch {
	case meta.Reason == FinishContentFilter && len(meta.FilterFlags) == 0:
		problems["filter_flags"] = "content filter reason requires filter flags"
	case meta.Reason != FinishContentFilter && len(meta.FilterFlags) > 0:
		problems["filter_flags"] = "filter flags present for non-filter reason"
	}

	if len(problems) > 0 && v.cfg.LogValidationErrors {
		v.logger.WithFields(logrus.Fields{
			"reason":   meta.Reason,
			"problems": problems,
		}).Error("finish reason validation failed")
	}
	return problems
}
