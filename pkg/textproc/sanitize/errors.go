package sanitize

import "fmt"

// ConfigError reports a malformed configuration value at construction time.
// It is never produced after a transform has been constructed.
type ConfigError struct {
	Component string
	Field     string
	Message   string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s config: %s: %s", e.Component, e.Field, e.Message)
}

func newConfigError(component, field, message string) *ConfigError {
	return &ConfigError{Component: component, Field: field, Message: message}
}
