package moderation

import (
	"testing"
)

func TestParseVerdictPlainJSON(t *testing.T) {
	v, err := ParseVerdict(`{"decision": "allow", "reason": "harmless"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Decision != DecisionAllow || v.Reason != "harmless" {
		t.Fatalf("unexpected verdict: %+v", v)
	}
}

func TestParseVerdictMarkdownFence(t *testing.T) {
	reply := "```json\n{\"decision\": \"BLOCK\", \"reason\": \"harassment\"}\n```"
	v, err := ParseVerdict(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Decision != DecisionBlock {
		t.Fatalf("expected block, got %q", v.Decision)
	}
}

func TestParseVerdictSurroundingProse(t *testing.T) {
	reply := `Sure, here is the classification: {"decision": "deny", "reason": "spam"} Let me know if you need anything else.`
	v, err := ParseVerdict(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Decision != DecisionBlock {
		t.Fatalf("expected deny to normalize to block, got %q", v.Decision)
	}
}

func TestParseVerdictNoJSON(t *testing.T) {
	if _, err := ParseVerdict("I cannot classify this."); err == nil {
		t.Fatalf("expected error for reply without JSON")
	}
}

func TestParseVerdictUnknownDecision(t *testing.T) {
	if _, err := ParseVerdict(`{"decision": "maybe", "reason": ""}`); err == nil {
		t.Fatalf("expected error for unknown decision")
	}
}
