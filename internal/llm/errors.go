package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNoCredential is wrapped by ModelError when no API key is configured.
var ErrNoCredential = errors.New("model credential is not configured")

// ModelError reports a failed model invocation. Callers fall back on it; it is
// never retried here.
type ModelError struct {
	Op  string
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Op, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// IsTimeout reports whether the call failed on a deadline.
func (e *ModelError) IsTimeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ParseError reports model output that could not be turned into an artifact.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model response: %v (raw: %s)", e.Err, truncate(e.Raw, 200))
}

func (e *ParseError) Unwrap() error { return e.Err }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
