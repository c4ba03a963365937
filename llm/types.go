package llm

import (
	"errors"
	"fmt"
)

// GenerationEvent is one decoded line of a generate stream. Only the fields
// needed for aggregation are kept; everything else the server sends is ignored.
type GenerationEvent struct {
	Fragment   string `json:"response"`
	IsFinal    bool   `json:"done"`
	DoneReason string `json:"done_reason,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ErrNoBody is wrapped by a TransportError when the producer never furnished a
// byte stream to read from.
var ErrNoBody = errors.New("response body is missing")

// TransportError means the byte stream could not be obtained or failed while
// being read. It is never retried inside this package.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation stream %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GenerationError is reported by the generation service itself, either as a
// non-200 response or as an in-stream {"error": "..."} event.
type GenerationError struct {
	StatusCode int
	Message    string
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

// MalformedEventError describes a single line that could not be parsed. The
// decoder logs and skips these; they never escape aggregation.
type MalformedEventError struct {
	Line string
	Err  error
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed generation event %q: %v", e.Line, e.Err)
}

func (e *MalformedEventError) Unwrap() error {
	return e.Err
}
