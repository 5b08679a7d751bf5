// Package calls provides interaction call recording for traceability.
// Every API call made on behalf of a tool is recorded with its parameters,
// token usage, and outcome.
package calls

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/grounded/internal/gemini"
)

// Call represents a recorded interactions API call.
type Call struct {
	// Unique identifier
	ID string `json:"id"`

	// Timing
	Timestamp time.Time `json:"timestamp"`
	LatencyMs int       `json:"latency_ms"`

	// Request parameters
	Tool          string `json:"tool"`
	Model         string `json:"model"`
	ThinkingLevel string `json:"thinking_level"`

	// Conversation handle (opaque; recorded for correlation only)
	InteractionID string `json:"interaction_id,omitempty"`

	// Token usage
	InputTokens     int `json:"input_tokens"`
	OutputTokens    int `json:"output_tokens"`
	ReasoningTokens int `json:"reasoning_tokens,omitempty"`

	// Status
	Status  string `json:"status"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RecordOptions provides context for recording a call.
type RecordOptions struct {
	Tool          string
	Model         string
	ThinkingLevel gemini.ThinkingLevel
	Latency       time.Duration
}

// FromResult creates a Call from an InteractionResult.
// Returns nil if result is nil.
func FromResult(result *gemini.InteractionResult, opts RecordOptions) *Call {
	if result == nil {
		return nil
	}

	return &Call{
		ID:              uuid.New().String(),
		Timestamp:       time.Now(),
		LatencyMs:       int(opts.Latency.Milliseconds()),
		Tool:            opts.Tool,
		Model:           opts.Model,
		ThinkingLevel:   string(opts.ThinkingLevel),
		InteractionID:   result.InteractionID,
		InputTokens:     usageInt(result.Usage, "total_input_tokens"),
		OutputTokens:    usageInt(result.Usage, "total_output_tokens"),
		ReasoningTokens: usageInt(result.Usage, "total_reasoning_tokens"),
		Status:          result.Status,
		Success:         result.Err == "",
		Error:           result.Err,
	}
}

// usageInt pulls an integer counter out of the opaque usage map. The map is
// pass-through JSON, so numbers show up as float64 (or json.Number when the
// decoder was configured that way).
func usageInt(usage map[string]any, key string) int {
	if usage == nil {
		return 0
	}
	switch v := usage[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	default:
		return 0
	}
}
