package client

import (
	"context"
	"fmt"

	"aura/internal/capability"
	"aura/internal/classify"
	"aura/internal/config"
	"aura/internal/snapshot"
)

// Backend combines classification and conversational reply.
type Backend interface {
	Categorize(ctx context.Context, query string, snap snapshot.Snapshot) (*classify.Decision, error)
	Reply(ctx context.Context, query string) (string, error)
}

// New builds the configured backend. Returns classify.ErrUnavailable
// (wrapped) when the capability manifest rules the AI tier out.
func New(ctx context.Context, cfg *config.Config, manifest *capability.Manifest) (Backend, error) {
	if !manifest.CanUse(capability.LLMReasoning) {
		return nil, fmt.Errorf("llm_reasoning disabled: %w", classify.ErrUnavailable)
	}

	switch cfg.API.GetActiveProvider() {
	case "ollama":
		return NewOllamaClassifier(cfg)
	case "gemini":
		return NewGeminiClassifier(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q: %w", cfg.API.ActiveProvider, classify.ErrUnavailable)
	}
}
