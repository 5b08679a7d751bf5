package gemini

import (
	"fmt"
	"strings"
)

// FormatResult renders an InteractionResult as the final user-facing text.
// A failed result renders only the error line; partial answer text is never
// mixed with an error. Successful results render the answer, a numbered
// Sources section when citations are present, and a follow-up hint carrying
// the interaction id.
func FormatResult(r *InteractionResult) string {
	if r.Err != "" {
		return "Error: " + r.Err
	}

	lines := []string{r.Text}

	if len(r.Sources) > 0 {
		lines = append(lines, "\n\nSources:")
		for i, source := range r.Sources {
			title := source.Title
			if title == "" {
				title = "Untitled"
			}
			lines = append(lines, fmt.Sprintf("%d. [%s](%s)", i+1, title, source.URL))
		}
	}

	lines = append(lines, "\n---")
	id := r.InteractionID
	if id == "" {
		id = "N/A"
	}
	lines = append(lines, "To follow up, use interaction_id: "+id)

	return strings.Join(lines, "\n")
}
