package completion

import (
	"context"
	"errors"
	"fmt"
)

const maxSnippet = 256

// TransportError wraps DNS, TLS and connection failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx reply from the completion endpoint.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("completion API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion API returned status %d: %s", e.StatusCode, e.Message)
}

// DecodeError is a response body that does not match the completion schema.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode response: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// Outcome labels an Ask or Complete result for logs and metrics.
func Outcome(err error) string {
	var (
		transportErr *TransportError
		statusErr    *StatusError
		decodeErr    *DecodeError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrNoChoices):
		return "no_choices"
	case errors.As(err, &statusErr):
		return "status_error"
	case errors.As(err, &decodeErr):
		return "decode_error"
	case errors.As(err, &transportErr):
		return "transport_error"
	default:
		return "error"
	}
}

func snippet(data []byte) string {
	if len(data) > maxSnippet {
		return string(data[:maxSnippet]) + "..."
	}
	return string(data)
}
