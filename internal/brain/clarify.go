package brain

import (
	"context"

	"aura/internal/classify"
	"aura/internal/logging"
	"aura/internal/normalize"
	"aura/internal/session"
)

// resolvePending interprets a follow-up utterance against the pending
// clarification. The caller has already cleared the slot, so whatever
// happens here the state machine is back at NONE. Returns handled=false
// when the utterance is a correction to be processed as a fresh query.
func (b *Brain) resolvePending(ctx context.Context, p *session.PendingClarification, query string) (response string, handled bool) {
	tokens := normalize.Tokens(query)

	// 1. Ordinal/option selection.
	if n := classify.ParseOrdinal(tokens); n > 0 && p.Candidate != nil {
		if len(p.Candidate.Alternatives) > 0 {
			if n <= len(p.Candidate.Alternatives) {
				alt := p.Candidate.Alternatives[n-1]
				logging.Info("alternative selected", "option", n, "query", alt)
				// The alternative is a full query; run it through the
				// whole pipeline as if the user had said it.
				return b.processFresh(ctx, normalize.Clean(alt), b.snapshots.Get(ctx)), true
			}
			return "There aren't that many options. Which one did you mean?", true
		}
		return b.executeCandidate(ctx, p), true
	}

	// 2. Confirmation.
	if classify.IsConfirmation(tokens) {
		if p.Suggestion != "" {
			logging.Info("suggested alternative accepted", "query", p.Suggestion)
			return b.processFresh(ctx, normalize.Clean(p.Suggestion), b.snapshots.Get(ctx)), true
		}
		if p.Candidate != nil {
			return b.executeCandidate(ctx, p), true
		}
		// Confirmation of a reason-only clarification carries no new
		// information; ask again without re-arming the slot.
		return "I still need to know what you meant: " + p.OriginalQuery, true
	}

	// 3. Correction: treat the new utterance as a fresh query.
	logging.Debug("clarification superseded by new query", "original", p.OriginalQuery, "query", query)
	return "", false
}

// executeCandidate runs the stored candidate decision. The user's
// explicit selection overrides the classifier's hesitation, so the
// candidate executes at full confidence.
func (b *Brain) executeCandidate(ctx context.Context, p *session.PendingClarification) string {
	confirmed := *p.Candidate
	confirmed.Confidence = 1.0
	return b.execute(ctx, &confirmed, p.OriginalQuery)
}
