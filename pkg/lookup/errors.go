package lookup

import (
	"errors"
	"fmt"
)

// ErrNoResults is returned when a search matches no articles.
var ErrNoResults = errors.New("lookup: no results")

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("lookup: unexpected status %d", e.StatusCode)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// ResponseError reports an API response that does not have the expected
// shape.
type ResponseError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("lookup: unexpected response for %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ResponseError) Unwrap() error { return e.Err }
