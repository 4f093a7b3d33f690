package gateway

import (
	"fmt"
)

// StatusError carries the HTTP status and response body of a failed exchange.
// It unwraps to one of the classified errors in internal/errors, so callers
// can match with errors.Is while still reading the status for display.
type StatusError struct {
	StatusCode int
	Body       string
	kind       error
}

func newStatusError(statusCode int, body string, kind error) *StatusError {
	return &StatusError{StatusCode: statusCode, Body: body, kind: kind}
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.kind, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}
