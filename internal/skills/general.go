package skills

import (
	"context"
	"fmt"
	"strings"

	"aura/internal/executor"
	"aura/internal/session"
)

// Responder produces a conversational reply. Implemented by the AI
// client; nil means the assistant runs without small talk.
type Responder interface {
	Reply(ctx context.Context, query string) (string, error)
}

// General handles conversational queries that carry no action intent.
// The executor keeps action-verb queries away from this skill.
type General struct {
	responder Responder
	memory    *session.Memory
}

// NewGeneral creates the conversational skill.
func NewGeneral(responder Responder, memory *session.Memory) *General {
	return &General{responder: responder, memory: memory}
}

// Handle replies conversationally. A few session-memory questions are
// answered locally so they work even without the AI tier.
func (s *General) Handle(ctx context.Context, args string) (*executor.Result, error) {
	query := strings.TrimSpace(args)

	if reply, ok := s.localReply(query); ok {
		return executor.Ok(reply), nil
	}

	if s.responder == nil {
		return executor.Ok("I can run commands like \"open chrome\" or \"search the web\", but small talk needs my AI backend, which isn't available right now."), nil
	}

	reply, err := s.responder.Reply(ctx, query)
	if err != nil {
		return executor.Fail("", fmt.Sprintf("reply generation failed: %v", err)), nil
	}
	return executor.Ok(reply), nil
}

// localReply answers recall questions from session memory.
func (s *General) localReply(query string) (string, bool) {
	// "call me X" / "my name is X" teaches the session the user's name.
	for _, prefix := range []string{"call me ", "my name is "} {
		if strings.HasPrefix(query, prefix) {
			name := strings.TrimSpace(strings.TrimPrefix(query, prefix))
			if name != "" {
				s.memory.SetContext("user_name", name)
				return fmt.Sprintf("Nice to meet you, %s.", name), true
			}
		}
	}

	switch {
	case strings.Contains(query, "my name"):
		if name := s.memory.GetContextString("user_name"); name != "" {
			return fmt.Sprintf("Your name is %s.", name), true
		}
	case strings.Contains(query, "what did we talk about"),
		strings.Contains(query, "what did i say"):
		recent := s.memory.Recent(3)
		if len(recent) == 0 {
			return "We haven't talked about anything yet.", true
		}
		var topics []string
		for _, ex := range recent {
			topics = append(topics, fmt.Sprintf("%q", ex.User))
		}
		return "Recently you said: " + strings.Join(topics, ", "), true
	}
	return "", false
}
