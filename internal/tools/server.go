// Package tools exposes the grounded research tools over MCP.
// Three tools wrap the Gemini Interactions API: search (quick structured web
// search), ask (grounded answers with balanced reasoning), and ask_thinking
// (deep reasoning). ask and ask_thinking return an interaction id that
// callers pass back to continue the conversation.
package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jackzampolin/grounded/internal/calls"
	"github.com/jackzampolin/grounded/internal/gemini"
)

// Config holds tool facade configuration.
type Config struct {
	// Per-tool default output token budgets.
	SearchMaxTokens   int
	AskMaxTokens      int
	ThinkingMaxTokens int

	// Version is reported in the MCP handshake.
	Version string
}

// Server is the tool facade: it owns the MCP server, the interactions
// client, and the call recorder.
type Server struct {
	mu     sync.RWMutex
	client *gemini.Client

	recorder *calls.Recorder
	cfg      Config
	logger   *slog.Logger
	mcp      *mcp.Server
}

// New creates the tool facade and registers the tools on an MCP server.
func New(client *gemini.Client, recorder *calls.Recorder, cfg Config, logger *slog.Logger) *Server {
	if cfg.SearchMaxTokens <= 0 {
		cfg.SearchMaxTokens = 4096
	}
	if cfg.AskMaxTokens <= 0 {
		cfg.AskMaxTokens = 8192
	}
	if cfg.ThinkingMaxTokens <= 0 {
		cfg.ThinkingMaxTokens = 16384
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		client:   client,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "grounded",
		Version: cfg.Version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "search",
		Description: "Quick web search with minimal thinking. Returns structured results " +
			"with titles, URLs, and snippets. Use this to find sources before asking " +
			"follow-up questions.",
	}, s.handleSearch)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "ask",
		Description: "Get grounded answers with balanced reasoning. The model automatically " +
			"searches the web when needed for current information. To follow up on a " +
			"previous response, pass the interaction_id from that response.",
	}, s.handleAsk)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "ask_thinking",
		Description: "Get answers with deep reasoning for complex problems. Uses high " +
			"thinking level for multi-step analysis. To follow up on a previous " +
			"response, pass the interaction_id from that response.",
	}, s.handleAskThinking)

	s.mcp = srv
	return s
}

// SetClient swaps the interactions client, e.g. after a config reload.
func (s *Server) SetClient(client *gemini.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

func (s *Server) getClient() *gemini.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// RunStdio serves MCP over stdin/stdout until the context is cancelled.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns a Streamable HTTP handler for the MCP server.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// CallLogHandler serves the recent call log as JSON, newest first. The "n"
// query parameter limits the count; omitted or zero returns everything
// retained.
func (s *Server) CallLogHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := 0
		if q := r.URL.Query().Get("n"); q != "" {
			v, err := strconv.Atoi(q)
			if err != nil {
				http.Error(w, "invalid n parameter", http.StatusBadRequest)
				return
			}
			n = v
		}

		recent := []*calls.Call{}
		if s.recorder != nil {
			if got := s.recorder.Recent(n); got != nil {
				recent = got
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recent)
	})
}

// searchInput is the input schema for the search tool.
type searchInput struct {
	Query      string `json:"query" jsonschema:"the search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	MaxTokens  int    `json:"max_tokens,omitempty" jsonschema:"maximum response length in tokens"`
}

// askInput is the input schema for the ask and ask_thinking tools.
type askInput struct {
	Query         string `json:"query" jsonschema:"the question to answer"`
	InteractionID string `json:"interaction_id,omitempty" jsonschema:"interaction_id from a previous response to continue that conversation"`
	MaxTokens     int    `json:"max_tokens,omitempty" jsonschema:"maximum response length in tokens"`
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, in searchInput) (*mcp.CallToolResult, any, error) {
	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.cfg.SearchMaxTokens
	}
	// search is a stateless one-shot: no continuation id in or out.
	return s.invoke(ctx, "search", SearchRequest(in.Query, in.MaxResults, maxTokens))
}

func (s *Server) handleAsk(ctx context.Context, req *mcp.CallToolRequest, in askInput) (*mcp.CallToolResult, any, error) {
	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.cfg.AskMaxTokens
	}
	return s.invoke(ctx, "ask", AskRequest(in.Query, in.InteractionID, maxTokens))
}

func (s *Server) handleAskThinking(ctx context.Context, req *mcp.CallToolRequest, in askInput) (*mcp.CallToolResult, any, error) {
	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.cfg.ThinkingMaxTokens
	}
	return s.invoke(ctx, "ask_thinking", ThinkingRequest(in.Query, in.InteractionID, maxTokens))
}

// invoke runs one interaction and renders it. Failures are encoded in the
// returned text, never as tool errors: the tool surface has no structured
// error channel, so every outcome must be readable.
func (s *Server) invoke(ctx context.Context, tool string, req gemini.Request) (*mcp.CallToolResult, any, error) {
	client := s.getClient()

	start := time.Now()
	result := client.CreateInteraction(ctx, req)
	if s.recorder != nil {
		s.recorder.Record(result, calls.RecordOptions{
			Tool:          tool,
			Model:         client.Model(),
			ThinkingLevel: req.ThinkingLevel,
			Latency:       time.Since(start),
		})
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: gemini.FormatResult(result)},
		},
	}, nil, nil
}
