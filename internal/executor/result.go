// Package executor dispatches classification decisions to skill handlers,
// normalizes their results, and recovers from failed executions.
package executor

// Error kinds carried on failed results. Policy rejections (NO_CATEGORY,
// LOW_CONFIDENCE, AMBIGUOUS_GENERAL, VALIDATION_FAILED) are terminal at
// the executor boundary; genuine skill failures pass through recovery
// exactly once.
const (
	ErrNoCategory           = "NO_CATEGORY"
	ErrLowConfidence        = "LOW_CONFIDENCE"
	ErrAmbiguousGeneral     = "AMBIGUOUS_GENERAL"
	ErrPermission           = "PERMISSION"
	ErrAlternativeAvailable = "ALTERNATIVE_AVAILABLE"
	ErrNoAlternative        = "NO_ALTERNATIVE"
	ErrRetryLimit           = "RETRY_LIMIT"
	ErrValidationFailed     = "VALIDATION_FAILED"
	ErrFatal                = "FATAL"
	ErrInternal             = "INTERNAL"
)

// Result is the single normalized return type for every skill invocation.
// Immutable once produced.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	ErrKind string         `json:"error,omitempty"`
}

// Ok returns a successful result.
func Ok(message string) *Result {
	return &Result{Success: true, Message: message}
}

// Fail returns a failed result with an error kind.
func Fail(kind, message string) *Result {
	return &Result{Success: false, Message: message, ErrKind: kind}
}

// WithData attaches a data payload and returns the result for chaining.
func (r *Result) WithData(key string, value any) *Result {
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	r.Data[key] = value
	return r
}

// Trace is the ordered list of step results for one top-level process
// invocation. Reset at the start of every utterance, never accumulated
// across turns.
type Trace []*Result
