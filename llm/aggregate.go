package llm

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// FragmentFunc receives each non-empty fragment as it arrives. Returning an
// error stops aggregation and the error is returned unchanged.
type FragmentFunc func(fragment string) error

// Aggregate reads r to completion, or up to the first final event, and
// returns the concatenated fragments trimmed of surrounding whitespace.
//
// Cancelling ctx closes r when it is an io.Closer so that a pending read is
// released; the returned error is then a *TransportError wrapping ctx.Err().
// Callers still own r and should close it when Aggregate returns.
func Aggregate(ctx context.Context, r io.Reader) (string, error) {
	return AggregateFunc(ctx, r, nil)
}

// AggregateFunc is Aggregate with a callback for incremental delivery.
func AggregateFunc(ctx context.Context, r io.Reader, fn FragmentFunc) (string, error) {
	if r == nil || r == http.NoBody {
		return "", &TransportError{Op: "open", Err: ErrNoBody}
	}

	if closer, ok := r.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() {
			closer.Close()
		})
		defer stop()
	}

	var sb strings.Builder
	decoder := NewStreamDecoder(r)
	for event, err := range decoder.Events() {
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", &TransportError{Op: "read", Err: ctxErr}
			}
			return "", err
		}

		sb.WriteString(event.Fragment)
		if fn != nil && event.Fragment != "" {
			if err := fn(event.Fragment); err != nil {
				return "", err
			}
		}

		if ctxErr := ctx.Err(); ctxErr != nil && !event.IsFinal {
			return "", &TransportError{Op: "read", Err: ctxErr}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
