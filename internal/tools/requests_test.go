package tools

import (
	"strings"
	"testing"

	"github.com/jackzampolin/grounded/internal/gemini"
)

func TestSearchRequest(t *testing.T) {
	req := SearchRequest("my query", 0, 4096)

	if req.ThinkingLevel != gemini.ThinkingMinimal {
		t.Errorf("ThinkingLevel = %q", req.ThinkingLevel)
	}
	if req.PreviousInteractionID != "" {
		t.Error("search must not thread a conversation")
	}
	if !strings.Contains(req.SystemInstruction, "Return up to 10 results.") {
		t.Errorf("default max results not applied: %q", req.SystemInstruction)
	}
	if !strings.Contains(req.SystemInstruction, "TITLE: [page title]") {
		t.Errorf("structured block missing: %q", req.SystemInstruction)
	}
}

func TestAskRequest(t *testing.T) {
	req := AskRequest("q", "int_1", 8192)

	if req.ThinkingLevel != gemini.ThinkingMedium {
		t.Errorf("ThinkingLevel = %q", req.ThinkingLevel)
	}
	if req.PreviousInteractionID != "int_1" {
		t.Errorf("PreviousInteractionID = %q", req.PreviousInteractionID)
	}
	if req.SystemInstruction != askInstruction {
		t.Errorf("SystemInstruction = %q", req.SystemInstruction)
	}
}

func TestThinkingRequest(t *testing.T) {
	req := ThinkingRequest("q", "", 16384)

	if req.ThinkingLevel != gemini.ThinkingHigh {
		t.Errorf("ThinkingLevel = %q", req.ThinkingLevel)
	}
	if req.MaxOutputTokens != 16384 {
		t.Errorf("MaxOutputTokens = %d", req.MaxOutputTokens)
	}
}

func TestFollowUpRequest(t *testing.T) {
	req := FollowUpRequest("q", "int_2", gemini.ThinkingLow, 8192)

	if req.ThinkingLevel != gemini.ThinkingLow {
		t.Errorf("ThinkingLevel = %q", req.ThinkingLevel)
	}
	if req.SystemInstruction != "" {
		t.Errorf("follow-up should carry no system instruction, got %q", req.SystemInstruction)
	}
	if req.PreviousInteractionID != "int_2" {
		t.Errorf("PreviousInteractionID = %q", req.PreviousInteractionID)
	}
}
