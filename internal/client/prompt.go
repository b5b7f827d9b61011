// Package client provides the AI classification backends. Every backend
// fails closed: an API or parse error yields a zero-confidence general
// decision, never an error surfaced past the factory.
package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"aura/internal/classify"
	"aura/internal/snapshot"
)

// classifyInstruction is the system-level contract the backend must
// satisfy. Alternatives are full alternative queries, not categories.
const classifyInstruction = `You are the intent classifier for a desktop voice assistant.
Given a user query and desktop context, respond with ONLY a JSON object:

{
  "category": one of [%s],
  "args": "the extracted argument, e.g. the app name or search terms",
  "confidence": 0.0-1.0,
  "alternatives": ["up to 3 alternative full queries the user may have meant"],
  "plan": [{"category": "...", "args": "..."}, ...]
}

Rules:
- Use "plan" ONLY for multi-step requests ("open chrome and search cars");
  then leave "category" and "args" empty. Never set both.
- "file_search" is for finding files on disk ("the pdf i downloaded").
- "general" is for conversation with no action to perform.
- Lower the confidence when the referent is unclear.`

// buildClassifyPrompt renders the user portion of a classification call.
func buildClassifyPrompt(query string, snap snapshot.Snapshot) string {
	var b strings.Builder
	if snap.HasActiveWindow() {
		fmt.Fprintf(&b, "Desktop context: active window %q", snap.ActiveWindow)
		if snap.AppName != "" {
			fmt.Fprintf(&b, " (app: %s)", snap.AppName)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Query: %s", query)
	return b.String()
}

func classifySystemPrompt() string {
	quoted := make([]string, len(classify.Categories))
	for i, c := range classify.Categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf(classifyInstruction, strings.Join(quoted, ", "))
}

// replyInstruction is the persona for conversational replies.
const replyInstruction = `You are aura, a concise desktop voice assistant.
Answer in at most three sentences of plain text, no markdown headings.`

// decisionPayload mirrors the JSON contract.
type decisionPayload struct {
	Category     string          `json:"category"`
	Args         string          `json:"args"`
	Confidence   float64         `json:"confidence"`
	Alternatives []string        `json:"alternatives"`
	Plan         []classify.Step `json:"plan"`
}

// parseDecision turns raw model output into a Decision, tolerating code
// fences around the JSON. Anything unusable fails closed.
func parseDecision(raw string) (*classify.Decision, error) {
	text := strings.TrimSpace(raw)
	if i := strings.Index(text, "{"); i >= 0 {
		if j := strings.LastIndex(text, "}"); j > i {
			text = text[i : j+1]
		}
	}

	var payload decisionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("decode decision: %w", err)
	}

	d := &classify.Decision{
		Category:     strings.ToLower(strings.TrimSpace(payload.Category)),
		Args:         strings.TrimSpace(payload.Args),
		Confidence:   payload.Confidence,
		Alternatives: payload.Alternatives,
		Plan:         payload.Plan,
	}

	// A plan and a single category are mutually exclusive.
	if d.HasPlan() {
		d.Category = ""
		d.Args = ""
		for i := range d.Plan {
			d.Plan[i].Category = strings.ToLower(strings.TrimSpace(d.Plan[i].Category))
			if !classify.ValidCategory(d.Plan[i].Category) {
				return nil, fmt.Errorf("plan step %d has unknown category %q", i+1, d.Plan[i].Category)
			}
		}
	} else if !classify.ValidCategory(d.Category) {
		return nil, fmt.Errorf("unknown category %q", d.Category)
	}

	if d.Confidence < 0 {
		d.Confidence = 0
	}
	if d.Confidence > 1 {
		d.Confidence = 1
	}
	if len(d.Alternatives) > 3 {
		d.Alternatives = d.Alternatives[:3]
	}
	return d, nil
}

func ptr[T any](v T) *T {
	return &v
}
