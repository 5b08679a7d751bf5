package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	// DefaultBaseURL is the versioned API base. The interactions endpoint
	// lives at {base}/interactions.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is used when the config doesn't name one.
	DefaultModel = "gemini-3-flash-preview"

	// DefaultTimeout bounds a single transport call. Grounded answers with
	// high thinking can run long.
	DefaultTimeout = 120 * time.Second

	defaultMaxAttempts = 3
)

// Config holds configuration for the interactions client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// MaxAttempts caps total tries per call, including the first. Only
	// transient failures (429, 5xx, network errors) are retried.
	MaxAttempts int
	Logger      *slog.Logger
}

// Client calls the Gemini Interactions API. Each call is a single blocking
// request/response exchange; the client holds no per-conversation state.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	httpClient  *http.Client
	maxAttempts uint
	logger      *slog.Logger
}

// NewClient creates an interactions client. The API key is required; its
// absence is a configuration error, not something to surface per call.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini API key is required (set GEMINI_API_KEY)")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxAttempts: uint(attempts),
		logger:      logger,
	}, nil
}

// Model returns the model the client sends requests to.
func (c *Client) Model() string {
	return c.model
}

// apiError is a non-2xx response from the interactions endpoint.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.status, e.body)
}

// retryableStatus reports whether a status code is worth retrying.
func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests:
		return true
	case 520, 521, 522, 523, 524: // Cloudflare errors
		return true
	default:
		return status >= 500
	}
}

// CreateInteraction sends one interaction request and returns the normalized
// result. Failures never surface as errors: a non-2xx status or transport
// failure produces a result with Err set and Status failed, so callers always
// have something to format.
func (c *Client) CreateInteraction(ctx context.Context, req Request) *InteractionResult {
	payload := interactionRequest{
		Model:                 c.model,
		Input:                 req.Input,
		Store:                 true,
		SystemInstruction:     req.SystemInstruction,
		PreviousInteractionID: req.PreviousInteractionID,
		Background:            req.Background,
		GenerationConfig: generationConfig{
			ThinkingLevel:   req.ThinkingLevel,
			MaxOutputTokens: req.MaxOutputTokens,
		},
		// Always offered; the model decides when to ground.
		Tools: []toolSpec{
			{Type: "google_search"},
			{Type: "url_context"},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failedResult(fmt.Errorf("Request failed: %v", err))
	}

	var result *InteractionResult
	err = retry.Do(
		func() error {
			res, err := c.roundTrip(ctx, http.MethodPost, c.baseURL+"/interactions", body)
			if err != nil {
				return err
			}
			result = res
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxAttempts),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying interaction request", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return failedResult(err)
	}
	return result
}

// GetInteraction fetches the current state of a stored interaction.
func (c *Client) GetInteraction(ctx context.Context, interactionID string) *InteractionResult {
	res, err := c.roundTrip(ctx, http.MethodGet, c.baseURL+"/interactions/"+interactionID, nil)
	if err != nil {
		return failedResult(err)
	}
	return res
}

// CancelInteraction cancels a background interaction.
func (c *Client) CancelInteraction(ctx context.Context, interactionID string) *InteractionResult {
	res, err := c.roundTrip(ctx, http.MethodPost, c.baseURL+"/interactions/"+interactionID+"/cancel", nil)
	if err != nil {
		return failedResult(err)
	}
	return res
}

// roundTrip performs one HTTP exchange. Errors it returns are classified:
// transient failures are plain errors (retryable), everything else is wrapped
// with retry.Unrecoverable. Either way the error message is what ends up in
// the result's Err field.
func (c *Client) roundTrip(ctx context.Context, method, url string, body []byte) (*InteractionResult, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("Request failed: %v", err))
	}
	httpReq.Header.Set("x-goog-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Request failed: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &apiError{status: resp.StatusCode, body: string(respBody)}
		if retryableStatus(resp.StatusCode) {
			return nil, apiErr
		}
		return nil, retry.Unrecoverable(apiErr)
	}

	var raw rawInteraction
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("Request failed: %v", err))
	}
	return normalize(raw), nil
}

func failedResult(err error) *InteractionResult {
	return &InteractionResult{
		Status: StatusFailed,
		Err:    err.Error(),
	}
}
