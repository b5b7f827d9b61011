package executor

import (
	"context"
	"fmt"
	"strings"

	"aura/internal/classify"
	"aura/internal/config"
	"aura/internal/logging"
)

// Skill handles one category of automation. Implementations live in
// internal/skills; the executor depends only on this interface.
type Skill interface {
	// Handle executes the skill for the given argument string. A returned
	// error is normalized into a failed Result at the executor boundary.
	Handle(ctx context.Context, args string) (*Result, error)
}

// Registry resolves a category to its skill handler.
type Registry interface {
	Resolve(category string) (Skill, bool)
}

// Executor dispatches decisions to skills and standardizes the outcome.
// Single-threaded: one Execute call at a time.
type Executor struct {
	registry  Registry
	threshold float64
	trace     Trace
}

// New creates an executor over the given registry. threshold is the
// defense-in-depth confidence floor, normally mirroring the gate's.
func New(registry Registry, threshold float64) *Executor {
	return &Executor{registry: registry, threshold: threshold}
}

// SetThreshold updates the confidence floor (config hot reload).
func (e *Executor) SetThreshold(threshold float64) {
	e.threshold = threshold
}

// Trace returns the step results of the most recent Execute call.
func (e *Executor) Trace() Trace {
	return e.trace
}

// Execute runs a decision: either an ordered plan or a single step.
// query is the original utterance text, used for the general-category
// safety rule and for recovery context.
func (e *Executor) Execute(ctx context.Context, d *classify.Decision, query string) *Result {
	e.trace = nil

	if d.HasPlan() {
		return e.executePlan(ctx, d, query)
	}
	return e.executeStep(ctx, d, query)
}

// executePlan runs plan steps in order, stopping at the first failure.
func (e *Executor) executePlan(ctx context.Context, d *classify.Decision, query string) *Result {
	var messages []string

	for i, step := range d.Plan {
		stepDecision := &classify.Decision{
			Category:     step.Category,
			Args:         step.Args,
			Confidence:   d.Confidence,
			Alternatives: d.Alternatives,
		}
		res := e.executeStep(ctx, stepDecision, query)
		if !res.Success {
			logging.Warn("plan stopped",
				"step", i+1, "steps", len(d.Plan),
				"category", step.Category, "error", res.ErrKind)
			summary := Fail(res.ErrKind,
				fmt.Sprintf("Stopped at step %d of %d: %s", i+1, len(d.Plan), res.Message))
			// Recovery payloads on the failing step must survive the
			// summary, or a proposed alternative can never be accepted.
			for key, value := range res.Data {
				summary.WithData(key, value)
			}
			return summary.WithData("trace", e.trace)
		}
		messages = append(messages, res.Message)
	}

	return Ok(strings.Join(messages, " then "))
}

// executeStep validates, dispatches, post-checks, and on failure hands
// off to recovery exactly once.
func (e *Executor) executeStep(ctx context.Context, d *classify.Decision, query string) *Result {
	if d.Category == "" {
		res := Fail(ErrNoCategory, "I couldn't work out what action you meant.")
		e.trace = append(e.trace, res)
		return res
	}
	// Defense in depth: the confidence gate already ran, but a decision
	// must never execute below threshold regardless of the caller.
	if d.Confidence < e.threshold {
		res := Fail(ErrLowConfidence,
			fmt.Sprintf("Confidence %.2f is below the %.2f floor.", d.Confidence, e.threshold))
		e.trace = append(e.trace, res)
		return res
	}

	category, args, res := e.routeGeneral(d, query)
	if res != nil {
		e.trace = append(e.trace, res)
		return res
	}

	skill, ok := e.registry.Resolve(category)
	if !ok {
		res := Fail(ErrFatal, fmt.Sprintf("No handler registered for %q.", category))
		e.trace = append(e.trace, res)
		return res
	}

	res = invoke(ctx, skill, args)
	if !res.Success {
		res = e.recover(ctx, res, recoveryContext{
			Category:     category,
			Args:         args,
			Alternatives: d.Alternatives,
			skill:        skill,
		})
		e.trace = append(e.trace, res)
		return res
	}

	if failed := postCondition(category, args); failed != "" {
		res = Fail(ErrValidationFailed, failed)
	}
	e.trace = append(e.trace, res)
	return res
}

// routeGeneral enforces the conversational safety rule: a query carrying
// an action verb must never be silently swallowed by the conversational
// handler. Literal "search "/"find " prefixes are auto-corrected to the
// matching action; anything else is rejected.
func (e *Executor) routeGeneral(d *classify.Decision, query string) (category, args string, reject *Result) {
	category, args = d.Category, d.Args

	if category != classify.CategoryGeneral {
		return category, args, nil
	}
	if !classify.ContainsActionVerb(strings.Fields(query)) {
		return category, args, nil
	}

	switch {
	case strings.HasPrefix(query, "search "):
		logging.Info("general decision auto-routed", "to", classify.CategorySearch, "query", query)
		return classify.CategorySearch, strings.TrimSpace(strings.TrimPrefix(query, "search ")), nil
	case strings.HasPrefix(query, "find "):
		logging.Info("general decision auto-routed", "to", classify.CategoryFileSearch, "query", query)
		return classify.CategoryFileSearch, strings.TrimSpace(strings.TrimPrefix(query, "find ")), nil
	}

	return "", "", Fail(ErrAmbiguousGeneral,
		"That sounds like a command, but I couldn't tell what to act on. Could you rephrase it?")
}

// invoke calls a skill and normalizes every outcome, including panics,
// into a Result. Each invocation gets its own timeout so a hung skill
// cannot stall the pipeline.
func invoke(ctx context.Context, skill Skill, args string) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("skill panicked", "panic", fmt.Sprint(r))
			res = Fail(ErrInternal, fmt.Sprintf("Internal error: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, config.DefaultSkillTimeout)
	defer cancel()

	out, err := skill.Handle(ctx, args)
	if err != nil {
		return Fail("", err.Error())
	}
	if out == nil {
		return Fail(ErrInternal, "Skill returned no result.")
	}
	return out
}

// postCondition runs the minimal per-category success check. Returns a
// failure message, "" when the check passes.
func postCondition(category, args string) string {
	switch category {
	case classify.CategoryOpen, classify.CategoryClose, classify.CategoryPlay:
		if strings.TrimSpace(args) == "" {
			return fmt.Sprintf("Validation failed: %s needs a target.", category)
		}
	}
	return ""
}
