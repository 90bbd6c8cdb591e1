package upstream

import (
	"fmt"
	"strings"
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func newStatusError(code int, body []byte) *StatusError {
	b := strings.TrimSpace(string(body))
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody] + "..."
	}
	return &StatusError{StatusCode: code, Body: b}
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

// ShapeError reports an upstream body that is not the expected JSON shape.
type ShapeError struct {
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected upstream response: %s: %v", e.Reason, e.Err)
	}
	return "unexpected upstream response: " + e.Reason
}

func (e *ShapeError) Unwrap() error { return e.Err }
