package funccall

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Call is one accepted function call, ready for execution.
type Call struct {
	ID        string
	Name      string
	Arguments map[string]any
	StartedAt time.Time
}

// TrackerConfig configures a Tracker.
type TrackerConfig struct {
	Name     NameConfig
	Sanitize SanitizeConfig
	Args     ArgValidationConfig

	Logger logrus.FieldLogger
}

// DefaultTrackerConfig returns the standard tracking policy.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		Name:     DefaultNameConfig(),
		Sanitize: DefaultSanitizeConfig(),
		Args:     DefaultArgValidationConfig(),
	}
}

// Tracker coordinates the function-call lifecycle: name sanitization and
// validation, argument extraction and validation, and result recording.
type Tracker struct {
	identifier *Identifier
	sanitizer  *NameSanitizer
	validator  *ArgumentValidator
	store      *ResultStore
	reserved   []string
	logger     logrus.FieldLogger
}

// NewTracker constructs a tracker from cfg.
func NewTracker(cfg TrackerConfig) (*Tracker, error) {
	identifier, err := NewIdentifier(cfg.Name)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Tracker{
		identifier: identifier,
		sanitizer:  NewNameSanitizer(cfg.Sanitize),
		validator:  NewArgumentValidator(cfg.Args),
		store:      NewResultStore(),
		reserved:   cfg.Name.ReservedPrefixes,
		logger:     logger,
	}, nil
}

// Begin sanitizes and validates a raw call and returns the accepted Call.
// Schema may be nil to skip argument validation.
func (t *Tracker) Begin(rawName, rawArgs string, schema []ArgumentSchema) (*Call, error) {
	// Reserved prefixes are checked against the raw name: sanitization
	// trims leading separators and would otherwise launder them away.
	trimmed := strings.TrimSpace(rawName)
	for _, prefix := range t.reserved {
		if strings.HasPrefix(trimmed, prefix) {
			return nil, fmt.Errorf("funccall: invalid function name %q: name uses reserved prefix %q",
				rawName, prefix)
		}
	}

	name, changes := t.sanitizer.Sanitize(rawName)
	if changed(changes) {
		t.logger.WithFields(logrus.Fields{
			"raw":       rawName,
			"sanitized": name,
		}).Debug("sanitized function name")
	}

	accepted, issues := t.identifier.Identify(name)
	if len(issues) > 0 {
		return nil, fmt.Errorf("funccall: invalid function name %q: %s",
			rawName, strings.Join(issues, "; "))
	}

	args, err := ExtractArguments(rawArgs)
	if err != nil {
		return nil, err
	}
	if schema != nil {
		if problems := t.validator.Validate(args, schema); len(problems) > 0 {
			return nil, fmt.Errorf("funccall: invalid arguments for %q: %v", accepted, problems)
		}
	}

	return &Call{
		ID:        uuid.New().String(),
		Name:      accepted,
		Arguments: args,
		StartedAt: time.Now().UTC(),
	}, nil
}

// Finish records the outcome of an executed call and stores the result.
func (t *Tracker) Finish(call *Call, output any, execErr error) (ExecutionResult, error) {
	result := ExecutionResult{
		CallID:     call.ID,
		Name:       call.Name,
		StartedAt:  call.StartedAt,
		FinishedAt: time.Now().UTC(),
	}

	if execErr != nil {
		result.Status = StatusError
		result.Error = execErr.Error()
	} else {
		encoded, err := json.Marshal(output)
		if err != nil {
			return ExecutionResult{}, fmt.Errorf("funccall: encode output for %q: %w", call.Name, err)
		}
		result.Status = StatusSuccess
		result.Output = encoded
	}

	t.store.Put(result)
	return result, nil
}

// Results exposes the underlying result store.
func (t *Tracker) Results() *ResultStore { return t.store }

func changed(changes map[string]bool) bool {
	for _, c := range changes {
		if c {
			return true
		}
	}
	return false
}
