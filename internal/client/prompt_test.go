package client

import (
	"strings"
	"testing"

	"aura/internal/classify"
	"aura/internal/snapshot"
)

func TestParseDecisionSingle(t *testing.T) {
	raw := `{"category": "open", "args": "chrome", "confidence": 0.9, "alternatives": ["open firefox"]}`
	d, err := parseDecision(raw)
	if err != nil {
		t.Fatalf("parseDecision: %v", err)
	}
	if d.Category != classify.CategoryOpen || d.Args != "chrome" || d.Confidence != 0.9 {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if len(d.Alternatives) != 1 || d.Alternatives[0] != "open firefox" {
		t.Fatalf("alternatives = %v", d.Alternatives)
	}
}

func TestParseDecisionPlanExclusivity(t *testing.T) {
	raw := `{"category": "open", "args": "chrome", "confidence": 0.85,
	  "plan": [{"category": "open", "args": "chrome"}, {"category": "search", "args": "cars"}]}`
	d, err := parseDecision(raw)
	if err != nil {
		t.Fatalf("parseDecision: %v", err)
	}
	if !d.HasPlan() {
		t.Fatal("plan lost")
	}
	if d.Category != "" || d.Args != "" {
		t.Fatalf("plan and single category coexist: %+v", d)
	}
}

func TestParseDecisionCodeFence(t *testing.T) {
	raw := "```json\n{\"category\": \"general\", \"args\": \"\", \"confidence\": 0.5}\n```"
	d, err := parseDecision(raw)
	if err != nil {
		t.Fatalf("parseDecision: %v", err)
	}
	if d.Category != classify.CategoryGeneral {
		t.Fatalf("category = %q", d.Category)
	}
}

func TestParseDecisionRejectsUnknownCategory(t *testing.T) {
	if _, err := parseDecision(`{"category": "destroy", "confidence": 1}`); err == nil {
		t.Fatal("unknown category accepted")
	}
	if _, err := parseDecision(`not json at all`); err == nil {
		t.Fatal("garbage accepted")
	}
}

func TestParseDecisionClampsConfidence(t *testing.T) {
	d, err := parseDecision(`{"category": "open", "args": "x", "confidence": 1.7}`)
	if err != nil {
		t.Fatalf("parseDecision: %v", err)
	}
	if d.Confidence != 1 {
		t.Fatalf("confidence = %v, want clamped to 1", d.Confidence)
	}
}

func TestBuildClassifyPromptIncludesContext(t *testing.T) {
	p := buildClassifyPrompt("close it", snapshot.Snapshot{ActiveWindow: "cars - Chrome", AppName: "Chrome"})
	if !strings.Contains(p, "cars - Chrome") || !strings.Contains(p, "close it") {
		t.Fatalf("prompt missing pieces: %q", p)
	}

	p = buildClassifyPrompt("open chrome", snapshot.Snapshot{})
	if strings.Contains(p, "Desktop context") {
		t.Fatalf("empty snapshot leaked into prompt: %q", p)
	}
}

func TestFailClosedBlocksExecution(t *testing.T) {
	d := classify.FailClosed()
	if d.Confidence != 0 || d.Category != classify.CategoryGeneral {
		t.Fatalf("fail-closed decision unsafe: %+v", d)
	}
}
