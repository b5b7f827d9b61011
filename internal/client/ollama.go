package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"aura/internal/classify"
	"aura/internal/config"
	"aura/internal/logging"
	"aura/internal/snapshot"

	"github.com/ollama/ollama/api"
)

// OllamaClassifier classifies queries through a local or remote Ollama
// server.
type OllamaClassifier struct {
	client      *api.Client
	model       string
	temperature float32
	maxTokens   int32
}

// authTransport adds an Authorization header for remote servers.
type authTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(clone)
}

// NewOllamaClassifier creates an Ollama-backed classifier.
func NewOllamaClassifier(cfg *config.Config) (*OllamaClassifier, error) {
	baseURL, err := url.Parse(cfg.API.OllamaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL: %w", err)
	}

	httpClient := &http.Client{Timeout: config.DefaultHTTPTimeout}
	if cfg.API.OllamaKey != "" {
		httpClient.Transport = &authTransport{
			base:   http.DefaultTransport,
			apiKey: cfg.API.OllamaKey,
		}
	}

	return &OllamaClassifier{
		client:      api.NewClient(baseURL, httpClient),
		model:       cfg.Model.Name,
		temperature: cfg.Model.Temperature,
		maxTokens:   cfg.Model.MaxTokens,
	}, nil
}

// Categorize returns a Decision for the query. Fails closed on any API
// or parse error.
func (c *OllamaClassifier) Categorize(ctx context.Context, query string, snap snapshot.Snapshot) (*classify.Decision, error) {
	raw, err := c.chat(ctx, classifySystemPrompt(), buildClassifyPrompt(query, snap))
	if err != nil {
		logging.Warn("ollama classification failed", "error", err)
		return classify.FailClosed(), nil
	}

	d, err := parseDecision(raw)
	if err != nil {
		logging.Warn("ollama decision unparseable", "error", err)
		return classify.FailClosed(), nil
	}
	return d, nil
}

// Reply generates a conversational answer.
func (c *OllamaClassifier) Reply(ctx context.Context, query string) (string, error) {
	text, err := c.chat(ctx, replyInstruction, query)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty reply from model")
	}
	return text, nil
}

func (c *OllamaClassifier) chat(ctx context.Context, system, user string) (string, error) {
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: ptr(false),
		Options: map[string]any{
			"temperature": c.temperature,
			"num_predict": c.maxTokens,
		},
	}

	var b strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		b.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
