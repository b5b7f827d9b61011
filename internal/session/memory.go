// Package session holds per-session conversational state: the bounded
// exchange history, a free-form context map, and the exclusive
// pending-clarification slot.
package session

import (
	"time"

	"aura/internal/classify"
	"aura/internal/logging"

	"github.com/google/uuid"
)

// Exchange is one user/assistant turn kept for recall and summary.
// It plays no part in classification.
type Exchange struct {
	User     string
	Response string
	Tag      string
	At       time.Time
}

// PendingClarification is the state awaiting the user's disambiguating
// follow-up. Exactly one of Reason or Candidate is meaningful: Reason for
// guard-created clarifications, Candidate for gate-created ones.
type PendingClarification struct {
	OriginalQuery string
	Reason        string
	Candidate     *classify.Decision

	// Suggestion holds an alternative query proposed by recovery,
	// executed as a fresh query if the user confirms.
	Suggestion string
}

// Memory is the session-scoped state store. Not safe for concurrent
// mutation; the pipeline processes one utterance at a time and callers
// must serialize access.
type Memory struct {
	id         string
	capacity   int
	history    []Exchange
	context    map[string]any
	pending    *PendingClarification
	transcript *Transcript
}

// NewMemory creates a session memory bounded to capacity exchanges.
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{
		id:       uuid.NewString(),
		capacity: capacity,
		context:  make(map[string]any),
	}
}

// ID returns the session id.
func (m *Memory) ID() string {
	return m.id
}

// SetTranscript attaches a persistent transcript store. Exchanges are
// mirrored to it on Add; persistence failures are logged, never fatal.
func (m *Memory) SetTranscript(t *Transcript) {
	m.transcript = t
}

// Add appends an exchange, evicting the oldest when at capacity.
func (m *Memory) Add(user, response, tag string) {
	ex := Exchange{User: user, Response: response, Tag: tag, At: time.Now()}
	m.history = append(m.history, ex)
	if len(m.history) > m.capacity {
		m.history = m.history[len(m.history)-m.capacity:]
	}

	if m.transcript != nil {
		if err := m.transcript.Record(m.id, ex); err != nil {
			logging.Warn("transcript write failed", "error", err)
		}
	}
}

// Recent returns up to n most recent exchanges, oldest first.
func (m *Memory) Recent(n int) []Exchange {
	if n <= 0 || len(m.history) == 0 {
		return nil
	}
	if n > len(m.history) {
		n = len(m.history)
	}
	out := make([]Exchange, n)
	copy(out, m.history[len(m.history)-n:])
	return out
}

// SetContext stores a session context value.
func (m *Memory) SetContext(key string, value any) {
	m.context[key] = value
}

// GetContext returns a session context value.
func (m *Memory) GetContext(key string) (any, bool) {
	v, ok := m.context[key]
	return v, ok
}

// GetContextString returns a context value as a string, "" if absent or
// not a string.
func (m *Memory) GetContextString(key string) string {
	if v, ok := m.context[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// SetPending stores a pending clarification, replacing any existing one.
// The slot is exclusive: clarifications never stack.
func (m *Memory) SetPending(p *PendingClarification) {
	if m.pending != nil {
		logging.Debug("pending clarification superseded",
			"old_query", m.pending.OriginalQuery,
			"new_query", p.OriginalQuery)
	}
	m.pending = p
}

// Pending returns the pending clarification, nil when none.
func (m *Memory) Pending() *PendingClarification {
	return m.pending
}

// ClearPending empties the pending-clarification slot.
func (m *Memory) ClearPending() {
	m.pending = nil
}
