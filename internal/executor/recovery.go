package executor

import (
	"context"
	"fmt"
	"strings"

	"aura/internal/logging"
)

// recoveryContext is the bundle handed to recovery alongside the failure.
type recoveryContext struct {
	Category     string
	Args         string
	Alternatives []string

	// The failing skill, so the retry path can re-invoke it directly
	// without re-entering the executor (and therefore recovery).
	skill Skill
}

var (
	permissionTerms = []string{"permission", "access denied", "admin"}
	notFoundTerms   = []string{"not installed", "not found", "unrecognized"}
	busyTerms       = []string{"timeout", "not responding", "busy"}
)

// recover classifies a failed execution and decides between a single
// retry, an alternative suggestion, a permission report, or a fatal
// report. Invoked exactly once per failed execution; the retry path
// bypasses the executor wrapper, so recovery never re-enters itself.
func (e *Executor) recover(ctx context.Context, failure *Result, rctx recoveryContext) *Result {
	if terminalKind(failure.ErrKind) {
		// Already labeled by the pipeline or a skill's own validation.
		// Classifying the message text again could relabel it.
		return failure
	}

	text := strings.ToLower(failure.ErrKind + " " + failure.Message)
	logging.Info("attempting recovery",
		"category", rctx.Category, "args", rctx.Args, "failure", failure.Message)

	switch {
	case containsAny(text, permissionTerms):
		return Fail(ErrPermission,
			fmt.Sprintf("I don't have permission to do that (%s). Try running me with elevated privileges.", failure.Message))

	case containsAny(text, notFoundTerms):
		if len(rctx.Alternatives) > 0 {
			alt := rctx.Alternatives[0]
			return Fail(ErrAlternativeAvailable,
				fmt.Sprintf("That didn't work: %s. Should I try '%s' instead?", failure.Message, alt)).
				WithData("suggested_alternative", alt)
		}
		return Fail(ErrNoAlternative,
			fmt.Sprintf("That didn't work (%s) and I don't have an alternative to suggest.", failure.Message))

	case containsAny(text, busyTerms):
		return e.retryOnce(ctx, rctx)

	default:
		return Fail(ErrFatal, failure.Message)
	}
}

// retryOnce re-invokes the failing skill directly, exactly once.
func (e *Executor) retryOnce(ctx context.Context, rctx recoveryContext) *Result {
	logging.Info("retrying after transient failure", "category", rctx.Category, "args", rctx.Args)

	res := invoke(ctx, rctx.skill, rctx.Args)
	if res.Success {
		res.Message = "Retry successful: " + res.Message
		return res
	}

	// A second failure is terminal, whatever its shape.
	return Fail(ErrRetryLimit, "Retry failed: "+res.Message)
}

// terminalKind reports whether an error kind is a deliberate verdict
// rather than a raw skill failure. Verdicts pass through recovery
// untouched; only unlabeled failures get the term-based classification.
func terminalKind(kind string) bool {
	switch kind {
	case ErrInternal, ErrValidationFailed, ErrNoCategory, ErrLowConfidence, ErrAmbiguousGeneral:
		return true
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
