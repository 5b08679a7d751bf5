package gemini

// StatusFailed is the status assigned to results that never reached a
// completed interaction (transport failures, non-2xx responses). Successful
// responses carry whatever status string the API returned.
const StatusFailed = "failed"

// Source is a single citation. Two sources are the same source when their
// URLs match; titles are not part of the identity.
type Source struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}

// InteractionResult is the canonical, caller-owned result of one API call.
// It is immutable after construction.
type InteractionResult struct {
	// InteractionID is the opaque continuation token for follow-up requests,
	// or empty when the call failed before an interaction was created.
	InteractionID string `json:"interaction_id,omitempty" yaml:"interaction_id,omitempty"`

	// Status is the provider-reported status ("completed", "failed", or any
	// other provider-defined string, passed through verbatim).
	Status string `json:"status,omitempty" yaml:"status,omitempty"`

	// Text is the answer text, concatenated from all text outputs in
	// payload order.
	Text string `json:"text" yaml:"text"`

	// Sources are the citations, unique by URL, in first-seen order.
	Sources []Source `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Usage holds the provider's token counters, passed through unmodified.
	Usage map[string]any `json:"usage,omitempty" yaml:"usage,omitempty"`

	// Err describes the failure when the call did not succeed. When set,
	// Status is StatusFailed and the other fields are best-effort or empty.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// normalize walks the heterogeneous outputs list and accumulates text and
// deduplicated sources. It never fails: missing fields contribute nothing and
// unknown output types are skipped.
func normalize(data rawInteraction) *InteractionResult {
	result := &InteractionResult{
		InteractionID: data.ID,
		Status:        data.Status,
		Usage:         data.Usage,
	}
	if result.Usage == nil {
		result.Usage = map[string]any{}
	}

	seen := make(map[string]bool)
	addSource := func(s Source) {
		if seen[s.URL] {
			return
		}
		seen[s.URL] = true
		result.Sources = append(result.Sources, s)
	}

	for _, output := range data.Outputs {
		switch output.Type {
		case outputTypeText:
			result.Text += output.Text
			for _, ann := range output.Annotations {
				if ann.Source != nil {
					addSource(Source{URL: ann.Source.URL, Title: ann.Source.Title})
				}
			}

		case outputTypeGoogleSearch:
			for _, item := range output.Result {
				if item.URL != "" {
					addSource(Source{URL: item.URL, Title: item.Title})
				}
			}

		case outputTypeURLContext:
			for _, item := range output.Result {
				if item.Status == "success" && item.URL != "" {
					addSource(Source{URL: item.URL, Title: "URL Context"})
				}
			}
		}
	}

	return result
}
