package gemini

import (
	"strings"
	"testing"
)

func TestParseThinkingLevel(t *testing.T) {
	for _, s := range []string{"minimal", "low", "medium", "high"} {
		t.Run(s, func(t *testing.T) {
			level, err := ParseThinkingLevel(s)
			if err != nil {
				t.Fatalf("ParseThinkingLevel(%q) error = %v", s, err)
			}
			if string(level) != s {
				t.Errorf("level = %q, want %q", level, s)
			}
		})
	}

	for _, s := range []string{"", "extreme", "MEDIUM", "med"} {
		t.Run("rejects "+s, func(t *testing.T) {
			_, err := ParseThinkingLevel(s)
			if err == nil {
				t.Fatalf("ParseThinkingLevel(%q) should fail", s)
			}
			if !strings.Contains(err.Error(), "must be minimal, low, medium, or high") {
				t.Errorf("error should name the valid levels, got %q", err)
			}
		})
	}
}
