package classify

import (
	"context"
	"errors"

	"aura/internal/snapshot"
)

// ErrUnavailable indicates the AI classification backend cannot run
// (missing key, disabled capability, unreachable server). Callers fall
// back to a rules-only answer rather than treating this as a crash.
var ErrUnavailable = errors.New("classifier unavailable")

// Classifier is the AI classification backend contract. Implementations
// must fail closed: on any internal error they return a low-confidence
// general Decision, never a panic. ErrUnavailable is reserved for
// backends that cannot run at all.
type Classifier interface {
	Categorize(ctx context.Context, query string, snap snapshot.Snapshot) (*Decision, error)
}

// FailClosed is the Decision a backend returns when it cannot produce a
// trustworthy classification. Confidence 0 guarantees the confidence
// gate blocks execution.
func FailClosed() *Decision {
	return &Decision{
		Category:   CategoryGeneral,
		Confidence: 0,
	}
}
