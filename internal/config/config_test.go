package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResolveEnvVars(t *testing.T) {
	os.Setenv("GROUNDED_TEST_KEY", "secret-value")
	defer os.Unsetenv("GROUNDED_TEST_KEY")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain value", "literal-key", "literal-key"},
		{"env reference", "${GROUNDED_TEST_KEY}", "secret-value"},
		{"embedded reference", "prefix-${GROUNDED_TEST_KEY}", "prefix-secret-value"},
		{"missing var", "${GROUNDED_TEST_MISSING}", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveEnvVars(tt.input); got != tt.want {
				t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gemini.Model != "gemini-3-flash-preview" {
		t.Errorf("default model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.TimeoutSeconds != 120 {
		t.Errorf("default timeout = %d", cfg.Gemini.TimeoutSeconds)
	}
	if cfg.Tools.SearchMaxTokens != 4096 || cfg.Tools.AskMaxTokens != 8192 || cfg.Tools.ThinkingMaxTokens != 16384 {
		t.Errorf("tool token defaults = %+v", cfg.Tools)
	}
	if cfg.Serve.Transport != "stdio" {
		t.Errorf("default transport = %q", cfg.Serve.Transport)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing api key is fatal", func(t *testing.T) {
		os.Unsetenv("GEMINI_API_KEY")
		cfg := DefaultConfig()
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing API key")
		}
	})

	t.Run("env-supplied key passes", func(t *testing.T) {
		os.Setenv("GEMINI_API_KEY", "test-key")
		defer os.Unsetenv("GEMINI_API_KEY")

		cfg := DefaultConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("bad transport rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Gemini.APIKey = "direct-key"
		cfg.Serve.Transport = "websocket"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for invalid transport")
		}
	})
}

func TestToClientConfig(t *testing.T) {
	os.Setenv("GEMINI_API_KEY", "resolved-key")
	defer os.Unsetenv("GEMINI_API_KEY")

	cfg := DefaultConfig()
	clientCfg := cfg.ToClientConfig(nil)

	if clientCfg.APIKey != "resolved-key" {
		t.Errorf("APIKey = %q, want resolved env value", clientCfg.APIKey)
	}
	if clientCfg.Timeout != 120*time.Second {
		t.Errorf("Timeout = %v", clientCfg.Timeout)
	}
	if clientCfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d", clientCfg.MaxAttempts)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "${GEMINI_API_KEY}") {
		t.Error("written config should reference GEMINI_API_KEY")
	}
	if !strings.Contains(content, "gemini-3-flash-preview") {
		t.Error("written config should contain the default model")
	}
}
