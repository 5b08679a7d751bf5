// Package gemini provides a client for the Gemini Interactions API.
// Interactions are stateful: each response carries an opaque id that can be
// passed back as previous_interaction_id to continue the conversation.
// Grounding tools (Google Search and URL context) are always offered to the
// model, which decides on its own when to use them.
package gemini

import "fmt"

// ThinkingLevel controls how much internal deliberation the model performs
// before answering.
type ThinkingLevel string

const (
	ThinkingMinimal ThinkingLevel = "minimal"
	ThinkingLow     ThinkingLevel = "low"
	ThinkingMedium  ThinkingLevel = "medium"
	ThinkingHigh    ThinkingLevel = "high"
)

// ParseThinkingLevel validates a user-supplied thinking level string.
func ParseThinkingLevel(s string) (ThinkingLevel, error) {
	switch ThinkingLevel(s) {
	case ThinkingMinimal, ThinkingLow, ThinkingMedium, ThinkingHigh:
		return ThinkingLevel(s), nil
	default:
		return "", fmt.Errorf("invalid thinking level %q (must be minimal, low, medium, or high)", s)
	}
}

// Request holds the per-call parameters for creating an interaction.
type Request struct {
	// Input is the user query.
	Input string

	// ThinkingLevel selects the model's deliberation depth.
	ThinkingLevel ThinkingLevel

	// MaxOutputTokens caps the response length.
	MaxOutputTokens int

	// PreviousInteractionID continues a prior interaction when set.
	// It is an opaque token; the client never inspects it.
	PreviousInteractionID string

	// SystemInstruction is an optional system prompt.
	SystemInstruction string

	// Background requests async execution when true (omitted otherwise).
	Background bool
}

// interactionRequest is the wire format for POST /interactions.
type interactionRequest struct {
	Model                 string           `json:"model"`
	Input                 string           `json:"input"`
	Store                 bool             `json:"store"`
	SystemInstruction     string           `json:"system_instruction,omitempty"`
	PreviousInteractionID string           `json:"previous_interaction_id,omitempty"`
	Background            bool             `json:"background,omitempty"`
	GenerationConfig      generationConfig `json:"generation_config"`
	Tools                 []toolSpec       `json:"tools"`
}

type generationConfig struct {
	ThinkingLevel   ThinkingLevel `json:"thinking_level"`
	MaxOutputTokens int           `json:"max_output_tokens"`
}

type toolSpec struct {
	Type string `json:"type"`
}

// Output type discriminators in the interaction response. Anything else is
// ignored so new output kinds don't break parsing.
const (
	outputTypeText         = "text"
	outputTypeGoogleSearch = "google_search_result"
	outputTypeURLContext   = "url_context_result"
)

// rawInteraction mirrors the response body of the interactions endpoint.
// The outputs list is heterogeneous; rawOutput is a superset of all known
// output kinds and the Type field discriminates between them.
type rawInteraction struct {
	ID      string         `json:"id"`
	Status  string         `json:"status"`
	Outputs []rawOutput    `json:"outputs"`
	Usage   map[string]any `json:"usage"`
}

type rawOutput struct {
	Type        string          `json:"type"`
	Text        string          `json:"text"`
	Annotations []rawAnnotation `json:"annotations"`
	Result      []rawResultItem `json:"result"`
}

type rawAnnotation struct {
	Source *rawSource `json:"source"`
}

type rawSource struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// rawResultItem covers both google_search_result items (url, title) and
// url_context_result items (url, status).
type rawResultItem struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Status string `json:"status"`
}
