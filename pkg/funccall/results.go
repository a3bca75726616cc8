package funccall

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ResultStatus is the outcome of one function execution.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
)

// ExecutionResult records one function execution.
type ExecutionResult struct {
	CallID     string          `json:"callId"`
	Name       string          `json:"name"`
	Status     ResultStatus    `json:"status"`
	Output     json.RawMessage `json:"output,omitempty"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
}

// Duration returns the execution time.
func (r ExecutionResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ResultStore keeps execution results in memory, keyed by call ID. Safe
// for concurrent use.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]ExecutionResult
}

// NewResultStore creates an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string]ExecutionResult)}
}

// Put inserts or replaces a result.
func (s *ResultStore) Put(result ExecutionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.CallID] = result
}

// Get returns the result for a call ID.
func (s *ResultStore) Get(callID string) (ExecutionResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[callID]
	return result, ok
}

// List returns all results ordered by start time.
func (s *ResultStore) List() []ExecutionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]ExecutionResult, 0, len(s.results))
	for _, r := range s.results {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].StartedAt.Before(results[j].StartedAt)
	})
	return results
}

// MergeMetadata applies a JSON merge patch to a stored result's metadata.
func (s *ResultStore) MergeMetadata(callID string, patch []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.results[callID]
	if !ok {
		return fmt.Errorf("funccall: no result for call %q", callID)
	}

	current, err := json.Marshal(result.Metadata)
	if err != nil {
		return fmt.Errorf("funccall: marshal metadata: %w", err)
	}
	merged, err := jsonpatch.MergePatch(current, patch)
	if err != nil {
		return fmt.Errorf("funccall: merge metadata for call %q: %w", callID, err)
	}

	var metadata map[string]any
	if err := json.Unmarshal(merged, &metadata); err != nil {
		return fmt.Errorf("funccall: unmarshal merged metadata: %w", err)
	}
	result.Metadata = metadata
	s.results[callID] = result
	return nil
}

// FormatConfig configures result rendering.
type FormatConfig struct {
	IncludeTimestamp bool
	IncludeDuration  bool
	IncludeMetadata  bool
	// MaxOutputLength truncates rendered output; zero means unbounded.
	MaxOutputLength int
	TimeLayout      string
}

// DefaultFormatConfig returns the standard rendering policy.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		IncludeTimestamp: true,
		IncludeDuration:  true,
		IncludeMetadata:  true,
		TimeLayout:       "2006-01-02 15:04:05",
	}
}

// ResultFormatter renders execution results for output.
type ResultFormatter struct {
	cfg FormatConfig
}

// NewResultFormatter creates a formatter from cfg.
func NewResultFormatter(cfg FormatConfig) *ResultFormatter {
	if cfg.TimeLayout == "" {
		cfg.TimeLayout = "2006-01-02 15:04:05"
	}
	return &ResultFormatter{cfg: cfg}
}

// formattedResult is the rendered shape of one execution result.
type formattedResult struct {
	Success          bool           `json:"success"`
	FunctionName     string         `json:"functionName"`
	Result           string         `json:"result,omitempty"`
	Error            string         `json:"error,omitempty"`
	ExecutionDetails map[string]any `json:"executionDetails,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

func (f *ResultFormatter) render(result ExecutionResult) formattedResult {
	out := formattedResult{
		Success:          result.Status == StatusSuccess,
		FunctionName:     result.Name,
		ExecutionDetails: map[string]any{},
	}

	if f.cfg.IncludeTimestamp {
		out.ExecutionDetails["timestamp"] = result.FinishedAt.Format(f.cfg.TimeLayout)
	}
	if f.cfg.IncludeDuration {
		out.ExecutionDetails["execution_time"] = fmt.Sprintf("%.4fs", result.Duration().Seconds())
	}
	if f.cfg.IncludeMetadata {
		out.Metadata = result.Metadata
	}

	if result.Status == StatusSuccess {
		out.Result = f.truncate(string(result.Output))
	} else {
		errText := result.Error
		if errText == "" {
			errText = "unknown error"
		}
		out.Error = "Error: " + errText
	}
	return out
}

func (f *ResultFormatter) truncate(s string) string {
	if f.cfg.MaxOutputLength > 0 && len(s) > f.cfg.MaxOutputLength {
		return s[:f.cfg.MaxOutputLength] + "..."
	}
	return s
}

// FormatJSON renders a result as compact JSON.
func (f *ResultFormatter) FormatJSON(result ExecutionResult) ([]byte, error) {
	return json.Marshal(f.render(result))
}

// FormatText renders a result as a single human-readable line.
func (f *ResultFormatter) FormatText(result ExecutionResult) string {
	rendered := f.render(result)
	if rendered.Success {
		return fmt.Sprintf("%s: ok %s", rendered.FunctionName, rendered.Result)
	}
	return fmt.Sprintf("%s: %s", rendered.FunctionName, rendered.Error)
}
