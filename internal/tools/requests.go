package tools

import (
	"fmt"

	"github.com/jackzampolin/grounded/internal/gemini"
)

// System instructions per tool. The search instruction pins the output to a
// fixed structured block so results are parseable instead of freeform prose.
const (
	askInstruction      = "Be concise and factual. Cite sources when using web information."
	thinkingInstruction = "Think step by step. Be thorough and cite sources."
)

func searchInstruction(maxResults int) string {
	return fmt.Sprintf(`Search for the query and return results in this exact format:

---
TITLE: [page title]
URL: [full url]
SNIPPET: [2-3 sentence excerpt]
---

Return up to %d results. No additional commentary or analysis.`, maxResults)
}

const defaultSearchResults = 10

// SearchRequest builds the one-shot search preset: minimal thinking, fixed
// structured output, no conversation threading.
func SearchRequest(query string, maxResults, maxTokens int) gemini.Request {
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}
	return gemini.Request{
		Input:             query,
		ThinkingLevel:     gemini.ThinkingMinimal,
		MaxOutputTokens:   maxTokens,
		SystemInstruction: searchInstruction(maxResults),
	}
}

// AskRequest builds the balanced-reasoning preset.
func AskRequest(query, interactionID string, maxTokens int) gemini.Request {
	return gemini.Request{
		Input:                 query,
		ThinkingLevel:         gemini.ThinkingMedium,
		MaxOutputTokens:       maxTokens,
		PreviousInteractionID: interactionID,
		SystemInstruction:     askInstruction,
	}
}

// ThinkingRequest builds the deep-reasoning preset.
func ThinkingRequest(query, interactionID string, maxTokens int) gemini.Request {
	return gemini.Request{
		Input:                 query,
		ThinkingLevel:         gemini.ThinkingHigh,
		MaxOutputTokens:       maxTokens,
		PreviousInteractionID: interactionID,
		SystemInstruction:     thinkingInstruction,
	}
}

// FollowUpRequest continues an interaction at a caller-chosen thinking level
// with no system instruction.
func FollowUpRequest(query, interactionID string, level gemini.ThinkingLevel, maxTokens int) gemini.Request {
	return gemini.Request{
		Input:                 query,
		ThinkingLevel:         level,
		MaxOutputTokens:       maxTokens,
		PreviousInteractionID: interactionID,
	}
}
