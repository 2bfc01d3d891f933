// Package insight provides the optional remote text-completion
// capability used to refine amount extraction. Availability is decided
// once at startup: callers hold a TextInsight and never branch on
// configuration themselves.
package insight

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by implementations that have no remote
// capability to call. Callers treat it like any other failure and fall
// back to deterministic extraction.
var ErrUnavailable = errors.New("text insight unavailable")

// TextInsight sends a free-text prompt to a completion backend and
// returns its free-text response.
type TextInsight interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Noop is the absent-capability implementation, selected when no
// backend is configured.
type Noop struct{}

func (Noop) Complete(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
