package client

import (
	"context"
	"fmt"
	"strings"

	"aura/internal/classify"
	"aura/internal/config"
	"aura/internal/logging"
	"aura/internal/snapshot"

	"google.golang.org/genai"
)

// GeminiClassifier classifies queries through the Gemini API.
type GeminiClassifier struct {
	client *genai.Client
	model  string
	cfg    *genai.GenerateContentConfig
}

// NewGeminiClassifier creates a Gemini-backed classifier.
func NewGeminiClassifier(ctx context.Context, cfg *config.Config) (*GeminiClassifier, error) {
	if cfg.API.GeminiKey == "" {
		return nil, fmt.Errorf("gemini API key required: %w", classify.ErrUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.API.GeminiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClassifier{
		client: client,
		model:  cfg.Model.Name,
		cfg: &genai.GenerateContentConfig{
			Temperature:     ptr(cfg.Model.Temperature),
			MaxOutputTokens: cfg.Model.MaxTokens,
		},
	}, nil
}

// Categorize returns a Decision for the query. Fails closed on any API
// or parse error.
func (c *GeminiClassifier) Categorize(ctx context.Context, query string, snap snapshot.Snapshot) (*classify.Decision, error) {
	genCfg := *c.cfg
	genCfg.SystemInstruction = genai.NewContentFromText(classifySystemPrompt(), genai.RoleUser)
	genCfg.ResponseMIMEType = "application/json"

	contents := []*genai.Content{
		genai.NewContentFromText(buildClassifyPrompt(query, snap), genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genCfg)
	if err != nil {
		logging.Warn("gemini classification failed", "error", err)
		return classify.FailClosed(), nil
	}

	d, err := parseDecision(responseText(resp))
	if err != nil {
		logging.Warn("gemini decision unparseable", "error", err)
		return classify.FailClosed(), nil
	}
	return d, nil
}

// Reply generates a conversational answer.
func (c *GeminiClassifier) Reply(ctx context.Context, query string) (string, error) {
	genCfg := *c.cfg
	genCfg.SystemInstruction = genai.NewContentFromText(replyInstruction, genai.RoleUser)

	contents := []*genai.Content{
		genai.NewContentFromText(query, genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genCfg)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", fmt.Errorf("empty reply from model")
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
