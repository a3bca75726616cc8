package funccall

import (
	"encoding/json"
	"fmt"
)

// ExtractionError reports arguments that could not be parsed as a JSON
// object.
type ExtractionError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("funccall: cannot extract arguments from %q: %v", e.Raw, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *ExtractionError) Unwrap() error { return e.Err }

// ExtractArguments parses a JSON object string into an argument map.
// Anything that is not a JSON object is an ExtractionError.
func ExtractArguments(raw string) (map[string]any, error) {
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, &ExtractionError{Raw: raw, Err: err}
	}
	if args == nil {
		return nil, &ExtractionError{Raw: raw, Err: fmt.Errorf("not a JSON object")}
	}
	return args, nil
}

// ArgumentSchema describes one expected argument. Type is a JSON type
// name: string, number, boolean, object or array. An empty Type skips the
// type check for that argument.
type ArgumentSchema struct {
	Name     string
	Type     string
	Required bool
}

// ArgValidationConfig configures argument validation.
type ArgValidationConfig struct {
	CheckTypes    bool
	CheckRequired bool
	// AllowExtra permits arguments absent from the schema.
	AllowExtra bool
}

// DefaultArgValidationConfig returns the strict validation policy.
func DefaultArgValidationConfig() ArgValidationConfig {
	return ArgValidationConfig{CheckTypes: true, CheckRequired: true}
}

// ArgumentValidator validates extracted arguments against a schema.
type ArgumentValidator struct {
	cfg ArgValidationConfig
}

// NewArgumentValidator creates a validator from cfg.
func NewArgumentValidator(cfg ArgValidationConfig) *ArgumentValidator {
	return &ArgumentValidator{cfg: cfg}
}

// Validate returns per-argument problems. An empty map means args satisfy
// the schema.
func (v *ArgumentValidator) Validate(args map[string]any, schema []ArgumentSchema) map[string][]string {
	problems := map[string][]string{}
	known := make(map[string]bool, len(schema))

	for _, field := range schema {
		known[field.Name] = true
		value, present := args[field.Name]
		if !present {
			if v.cfg.CheckRequired && field.Required {
				problems[field.Name] = append(problems[field.Name], "required argument missing")
			}
			continue
		}
		if v.cfg.CheckTypes && field.Type != "" && !matchesJSONType(value, field.Type) {
			problems[field.Name] = append(problems[field.Name],
				fmt.Sprintf("expected type %s", field.Type))
		}
	}

	if !v.cfg.AllowExtra {
		for name := range args {
			if !known[name] {
				problems[name] = append(problems[name], "unexpected argument")
			}
		}
	}
	return problems
}

// matchesJSONType checks a decoded JSON value against a JSON type name.
func matchesJSONType(value any, typeName string) bool {
	switch typeName {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		_, ok := value.(float64)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "null":
		return value == nil
	}
	return false
}
