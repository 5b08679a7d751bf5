package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/grounded/internal/gemini"
)

// Per-tool output token defaults. Search answers are short structured lists;
// deep-thinking answers need the most room.
const (
	DefaultSearchMaxTokens   = 4096
	DefaultAskMaxTokens      = 8192
	DefaultThinkingMaxTokens = 16384
)

// Config holds grounded configuration.
// Stored at: ~/.grounded/config.yaml
type Config struct {
	Gemini GeminiCfg `mapstructure:"gemini" yaml:"gemini"`
	Tools  ToolsCfg  `mapstructure:"tools" yaml:"tools"`
	Serve  ServeCfg  `mapstructure:"serve" yaml:"serve"`
}

// GeminiCfg configures the interactions client.
type GeminiCfg struct {
	APIKey         string `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxAttempts    int    `mapstructure:"max_attempts" yaml:"max_attempts"`
}

// ToolsCfg sets per-tool default token budgets. Callers can still override
// max tokens per invocation.
type ToolsCfg struct {
	SearchMaxTokens   int `mapstructure:"search_max_tokens" yaml:"search_max_tokens"`
	AskMaxTokens      int `mapstructure:"ask_max_tokens" yaml:"ask_max_tokens"`
	ThinkingMaxTokens int `mapstructure:"thinking_max_tokens" yaml:"thinking_max_tokens"`
}

// ServeCfg configures the MCP server transport.
type ServeCfg struct {
	// Transport is "stdio" or "http".
	Transport string `mapstructure:"transport" yaml:"transport"`
	Host      string `mapstructure:"host" yaml:"host"`
	Port      string `mapstructure:"port" yaml:"port"`
	// CallLogSize bounds the in-memory interaction call log.
	CallLogSize int `mapstructure:"call_log_size" yaml:"call_log_size"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiCfg{
			APIKey:         "${GEMINI_API_KEY}",
			BaseURL:        gemini.DefaultBaseURL,
			Model:          gemini.DefaultModel,
			TimeoutSeconds: 120,
			MaxAttempts:    3,
		},
		Tools: ToolsCfg{
			SearchMaxTokens:   DefaultSearchMaxTokens,
			AskMaxTokens:      DefaultAskMaxTokens,
			ThinkingMaxTokens: DefaultThinkingMaxTokens,
		},
		Serve: ServeCfg{
			Transport:   "stdio",
			Host:        "127.0.0.1",
			Port:        "8080",
			CallLogSize: 256,
		},
	}
}

// ErrMissingAPIKey is returned when no API key is available after env
// expansion. This is fatal at startup; tools must not be served without it.
var ErrMissingAPIKey = errors.New(
	"no Gemini API key configured: set GEMINI_API_KEY or gemini.api_key " +
		"(get a key from https://aistudio.google.com/app/apikey)")

// Validate checks startup-fatal conditions.
func (c *Config) Validate() error {
	if ResolveEnvVars(c.Gemini.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.Serve.Transport {
	case "", "stdio", "http":
	default:
		return fmt.Errorf("invalid serve transport %q (must be stdio or http)", c.Serve.Transport)
	}
	return nil
}

// ToClientConfig converts the gemini block into a client config, resolving
// ${ENV_VAR} references in the API key.
func (c *Config) ToClientConfig(logger *slog.Logger) gemini.Config {
	return gemini.Config{
		APIKey:      ResolveEnvVars(c.Gemini.APIKey),
		BaseURL:     c.Gemini.BaseURL,
		Model:       c.Gemini.Model,
		Timeout:     time.Duration(c.Gemini.TimeoutSeconds) * time.Second,
		MaxAttempts: c.Gemini.MaxAttempts,
		Logger:      logger,
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Grounded configuration
# API keys use ${ENV_VAR} syntax to reference environment variables
# Set the key in your shell: export GEMINI_API_KEY=xxx

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
