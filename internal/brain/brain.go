// Package brain is the pipeline entry point: it takes one normalized
// utterance through ambiguity detection, two-tier classification, the
// confidence gate, execution, and recovery, while keeping session state
// consistent across turns.
package brain

import (
	"context"
	"strings"

	"aura/internal/classify"
	"aura/internal/executor"
	"aura/internal/logging"
	"aura/internal/normalize"
	"aura/internal/session"
	"aura/internal/snapshot"
)

const (
	reasonUnresolvedPronoun = "unresolved_pronoun"
	reasonAlternative       = "alternative_proposed"

	gateQuestion = "I'm not entirely sure. Could you clarify?"
)

// keyword-fallback confidence: above the gate, below rule certainty.
const keywordConfidence = 0.8

// Brain owns the per-utterance control flow. One Process call runs to
// completion before the next is accepted; Brain is not safe for
// concurrent use.
type Brain struct {
	memory     *session.Memory
	snapshots  snapshot.Provider
	registry   *executorRegistry
	exec       *executor.Executor
	classifier classify.Classifier
	threshold  float64
}

// executorRegistry is the slice of the skill registry the brain needs
// beyond plain dispatch.
type executorRegistry struct {
	executor.Registry
	keywords keywordMatcher
}

type keywordMatcher interface {
	MatchKeyword(query string) (category, keyword string, ok bool)
}

// Options configures a Brain.
type Options struct {
	Memory    *session.Memory
	Snapshots snapshot.Provider
	// Registry dispatches categories; it usually also implements
	// keyword matching for classifier-less fallback.
	Registry executor.Registry
	// Classifier may be nil; the brain then runs rules-only.
	Classifier classify.Classifier
	Threshold  float64
}

// New creates a Brain.
func New(opts Options) *Brain {
	reg := &executorRegistry{Registry: opts.Registry}
	if km, ok := opts.Registry.(keywordMatcher); ok {
		reg.keywords = km
	}
	if opts.Snapshots == nil {
		opts.Snapshots = snapshot.Static{}
	}
	return &Brain{
		memory:     opts.Memory,
		snapshots:  opts.Snapshots,
		registry:   reg,
		exec:       executor.New(opts.Registry, opts.Threshold),
		classifier: opts.Classifier,
		threshold:  opts.Threshold,
	}
}

// SetThreshold updates the confidence gate (config hot reload).
func (b *Brain) SetThreshold(threshold float64) {
	b.threshold = threshold
	b.exec.SetThreshold(threshold)
}

// Trace returns the execution trace of the most recent utterance.
func (b *Brain) Trace() executor.Trace {
	return b.exec.Trace()
}

// Process runs one utterance through the full pipeline and returns the
// response text. Empty input returns an empty response.
func (b *Brain) Process(ctx context.Context, raw string) string {
	query := normalize.Clean(raw)
	if query == "" {
		return ""
	}

	snap := b.snapshots.Get(ctx)
	logging.Debug("processing utterance", "query", query, "active_window", snap.ActiveWindow)

	// A pending clarification intercepts the utterance before anything
	// else. The slot is cleared up front so a failed resolution can
	// never wedge the state machine.
	if p := b.memory.Pending(); p != nil {
		b.memory.ClearPending()
		if response, handled := b.resolvePending(ctx, p, query); handled {
			return response
		}
		// Correction: fall through and treat the utterance as fresh.
	}

	return b.processFresh(ctx, query, snap)
}

// processFresh classifies and executes a query with no pending state.
func (b *Brain) processFresh(ctx context.Context, query string, snap snapshot.Snapshot) string {
	tokens := normalize.Tokens(query)

	// Ambiguity guard: never silently guess a referent.
	if pronoun, verb := hasBarePronoun(tokens); pronoun {
		referent := referentFor(b.memory.GetContextString("recent_entity"), snap)
		if referent == "" {
			question := clarifyQuestion(verb)
			b.memory.SetPending(&session.PendingClarification{
				OriginalQuery: query,
				Reason:        reasonUnresolvedPronoun,
			})
			b.memory.Add(query, question, "clarify")
			return question
		}
		query = resolveReferent(query, referent)
		logging.Debug("pronoun resolved", "referent", referent, "query", query)
	}

	decision := b.classifyTiers(ctx, query, snap)

	// Rules can match a pattern yet extract nothing usable.
	if decision != nil && decision.NeedsClarification {
		question := clarifyQuestion(classify.FirstActionVerb(normalize.Tokens(query)))
		b.memory.SetPending(&session.PendingClarification{
			OriginalQuery: query,
			Reason:        reasonUnresolvedPronoun,
		})
		b.memory.Add(query, question, "clarify")
		return question
	}

	if decision == nil {
		response := "I'm not sure how to help with that yet."
		b.memory.Add(query, response, "chat")
		return response
	}

	// Confidence gate: the single checkpoint before side effects.
	if decision.Confidence < b.threshold {
		b.memory.SetPending(&session.PendingClarification{
			OriginalQuery: query,
			Candidate:     decision,
		})
		b.memory.Add(query, gateQuestion, "clarify")
		return gateQuestion
	}

	return b.execute(ctx, decision, query)
}

// classifyTiers runs the deterministic tier, then the AI tier, then the
// keyword fallback.
func (b *Brain) classifyTiers(ctx context.Context, query string, snap snapshot.Snapshot) *classify.Decision {
	if d := classify.Match(query); d != nil {
		return d
	}

	if b.classifier != nil {
		d, err := b.classifier.Categorize(ctx, query, snap)
		if err == nil && d != nil {
			return d
		}
		logging.Warn("AI tier unavailable, falling back to keywords", "error", err)
	}

	// Limited mode: no AI tier. Keywords catch common commands; the
	// rest goes to the conversational handler.
	if b.registry.keywords != nil {
		if category, kw, ok := b.registry.keywords.MatchKeyword(query); ok && category != classify.CategoryGeneral {
			return &classify.Decision{
				Category:   category,
				Args:       keywordArgs(category, kw, query),
				Confidence: keywordConfidence,
			}
		}
	}
	return &classify.Decision{
		Category:   classify.CategoryGeneral,
		Args:       query,
		Confidence: keywordConfidence,
	}
}

// execute dispatches the decision, applies post-execution policy, and
// records the exchange.
func (b *Brain) execute(ctx context.Context, decision *classify.Decision, query string) string {
	res := b.exec.Execute(ctx, decision, query)

	// An alternative proposal becomes the next turn's pending state so
	// a bare "yes" can accept it.
	if res.ErrKind == executor.ErrAlternativeAvailable {
		if alt, ok := res.Data["suggested_alternative"].(string); ok && alt != "" {
			b.memory.SetPending(&session.PendingClarification{
				OriginalQuery: query,
				Reason:        reasonAlternative,
				Suggestion:    alt,
			})
		}
	}

	b.memory.Add(query, res.Message, exchangeTag(decision, res))
	return res.Message
}

// exchangeTag labels an exchange for recall.
func exchangeTag(decision *classify.Decision, res *executor.Result) string {
	switch {
	case !res.Success:
		return "error"
	case decision.HasPlan():
		return "plan"
	case decision.Category == classify.CategoryGeneral:
		return "chat"
	default:
		return decision.Category
	}
}

// keywordArgs strips everything up to and including the matched command
// word so skills see only the argument, e.g. "could you open chrome"
// with keyword "open" becomes "chrome".
func keywordArgs(category, keyword, query string) string {
	switch category {
	case classify.CategoryVolume:
		switch {
		case strings.Contains(query, "up"), strings.Contains(query, "louder"):
			return "up"
		case strings.Contains(query, "down"), strings.Contains(query, "quieter"):
			return "down"
		default:
			return "mute"
		}
	case classify.CategoryScreenshot:
		return ""
	default:
		if i := strings.Index(query, keyword); i >= 0 {
			return strings.TrimSpace(query[i+len(keyword):])
		}
		return strings.TrimSpace(query)
	}
}
