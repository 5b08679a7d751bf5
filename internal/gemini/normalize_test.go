package gemini

import (
	"encoding/json"
	"reflect"
	"testing"
)

// decode is a test helper that mirrors what the client does with a 2xx body.
func decode(t *testing.T, payload string) *InteractionResult {
	t.Helper()
	var raw rawInteraction
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	return normalize(raw)
}

func TestNormalize_EmptyOutputs(t *testing.T) {
	result := decode(t, `{"id":"i1","status":"completed","outputs":[],"usage":{}}`)

	if result.Text != "" {
		t.Errorf("Text = %q, want empty", result.Text)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Sources = %v, want empty", result.Sources)
	}
	if result.InteractionID != "i1" {
		t.Errorf("InteractionID = %q", result.InteractionID)
	}
	if result.Status != "completed" {
		t.Errorf("Status = %q", result.Status)
	}
}

func TestNormalize_MissingFields(t *testing.T) {
	// Structurally absent fields default instead of failing.
	result := decode(t, `{}`)

	if result.InteractionID != "" || result.Status != "" || result.Text != "" {
		t.Errorf("expected empty result, got %+v", result)
	}
	if result.Usage == nil {
		t.Error("Usage should default to an empty map")
	}
}

func TestNormalize_TextAccumulation(t *testing.T) {
	result := decode(t, `{
		"id": "i2",
		"status": "completed",
		"outputs": [
			{"type": "text", "text": "Hello "},
			{"type": "reasoning", "text": "ignore me"},
			{"type": "text"},
			{"type": "text", "text": "world."}
		]
	}`)

	if result.Text != "Hello world." {
		t.Errorf("Text = %q, want %q", result.Text, "Hello world.")
	}
}

func TestNormalize_SourceDedup(t *testing.T) {
	// The same URL appears via a text annotation, a search result, and a
	// URL context result. The first occurrence wins, title included.
	result := decode(t, `{
		"id": "i3",
		"status": "completed",
		"outputs": [
			{"type": "text", "text": "answer", "annotations": [
				{"source": {"url": "https://a.example", "title": "Annotation Title"}},
				{"source": {"url": "https://a.example", "title": "Later Title"}}
			]},
			{"type": "google_search_result", "result": [
				{"url": "https://a.example", "title": "Search Title"},
				{"url": "https://b.example", "title": "B"},
				{"url": "", "title": "no url"}
			]},
			{"type": "url_context_result", "result": [
				{"url": "https://a.example", "status": "success"},
				{"url": "https://c.example", "status": "success"},
				{"url": "https://d.example", "status": "failed"},
				{"url": "", "status": "success"}
			]}
		]
	}`)

	want := []Source{
		{URL: "https://a.example", Title: "Annotation Title"},
		{URL: "https://b.example", Title: "B"},
		{URL: "https://c.example", Title: "URL Context"},
	}
	if !reflect.DeepEqual(result.Sources, want) {
		t.Errorf("Sources = %v, want %v", result.Sources, want)
	}
}

func TestNormalize_URLContextStatus(t *testing.T) {
	result := decode(t, `{
		"outputs": [
			{"type": "url_context_result", "result": [
				{"url": "https://failed.example", "status": "failed"},
				{"url": "https://ok.example", "status": "success"}
			]}
		]
	}`)

	want := []Source{{URL: "https://ok.example", Title: "URL Context"}}
	if !reflect.DeepEqual(result.Sources, want) {
		t.Errorf("Sources = %v, want %v", result.Sources, want)
	}
}

func TestNormalize_UnknownOutputTypeIgnored(t *testing.T) {
	result := decode(t, `{
		"outputs": [
			{"type": "tool_call", "text": "should not appear"},
			{"type": "text", "text": "visible"}
		]
	}`)

	if result.Text != "visible" {
		t.Errorf("Text = %q, want %q", result.Text, "visible")
	}
}

func TestNormalize_UsagePassthrough(t *testing.T) {
	result := decode(t, `{
		"usage": {"total_input_tokens": 12, "total_output_tokens": 34, "custom_counter": 5}
	}`)

	if got := result.Usage["total_input_tokens"]; got != float64(12) {
		t.Errorf("total_input_tokens = %v", got)
	}
	if got := result.Usage["custom_counter"]; got != float64(5) {
		t.Errorf("custom_counter = %v, want passthrough", got)
	}
}
