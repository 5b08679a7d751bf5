package gemini

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// groundingRedirectHost marks citation URLs that point at the grounding
// redirect service rather than the real page.
const groundingRedirectHost = "vertexaisearch.cloud.google.com/grounding-api-redirect"

const redirectResolveTimeout = 5 * time.Second

// ResolveSourceURLs rewrites grounding-redirect URLs to their real targets by
// following one redirect hop per source. Sources resolve concurrently; any
// lookup failure leaves the original URL in place. The input slice is not
// modified.
func ResolveSourceURLs(ctx context.Context, sources []Source) []Source {
	if len(sources) == 0 {
		return nil
	}

	resolved := make([]Source, len(sources))
	copy(resolved, sources)

	var wg sync.WaitGroup
	for i := range resolved {
		if !strings.Contains(resolved[i].URL, groundingRedirectHost) {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resolved[i].URL = resolveRedirect(ctx, resolved[i].URL)
		}(i)
	}
	wg.Wait()

	return resolved
}

// resolveRedirect issues a HEAD request without following redirects and
// returns the Location target, or the original URL when anything goes wrong.
func resolveRedirect(ctx context.Context, url string) string {
	client := &http.Client{
		Timeout: redirectResolveTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return url
	}
	resp, err := client.Do(req)
	if err != nil {
		return url
	}
	defer resp.Body.Close()

	if location := resp.Header.Get("Location"); location != "" {
		return location
	}
	return url
}
