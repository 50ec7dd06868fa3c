package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearLLMEnv blanks every variable the resolver reads so the host
// environment cannot leak into a test.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	var cfg Config
	for key := range stringVars(&cfg) {
		t.Setenv(key, "")
	}
	for _, d := range discoveryOrder {
		t.Setenv(d.env, "")
	}
	t.Setenv("LIFECOMPASS_LLM_TIMEOUT", "")
	t.Setenv("LIFECOMPASS_LLM_MAX_ATTEMPTS", "")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		cfg           Config
		notConfigured bool
		wantErr       bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false, false},
		{"openai without key", Config{Provider: "openai"}, true, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true, true},
		{"mock needs no key", Config{Provider: "mock"}, false, false},
		{"unknown provider", Config{Provider: "llama"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.notConfigured, errors.Is(err, ErrNotConfigured))
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LIFECOMPASS_LLM_PROVIDER", "openai")
	t.Setenv("LIFECOMPASS_OPENAI_API_KEY", "sk-env")
	t.Setenv("LIFECOMPASS_OPENAI_MODEL", "gpt-4o")
	t.Setenv("LIFECOMPASS_LLM_TIMEOUT", "5s")
	t.Setenv("LIFECOMPASS_LLM_MAX_ATTEMPTS", "5")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	// Untouched fields keep their defaults.
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model)
}

func TestConfigFromEnv_IgnoresGarbage(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LIFECOMPASS_LLM_TIMEOUT", "soon")
	t.Setenv("LIFECOMPASS_LLM_MAX_ATTEMPTS", "-2")

	cfg := ConfigFromEnv()
	def := DefaultConfig()
	assert.Equal(t, def.Timeout, cfg.Timeout)
	assert.Equal(t, def.Retry.MaxAttempts, cfg.Retry.MaxAttempts)
}

func TestResolve(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		clearLLMEnv(t)
		_, ok := Resolve()
		assert.False(t, ok)
	})

	t.Run("discovery order prefers gemini", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "a")
		t.Setenv("GEMINI_API_KEY", "g")

		cfg, ok := Resolve()
		require.True(t, ok)
		assert.Equal(t, "gemini", cfg.Provider)
		assert.Equal(t, "g", cfg.Gemini.APIKey)
		assert.Empty(t, cfg.Anthropic.APIKey)
	})

	t.Run("explicit provider wins over discovery", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("GEMINI_API_KEY", "g")
		t.Setenv("LIFECOMPASS_LLM_PROVIDER", "openrouter")
		t.Setenv("LIFECOMPASS_OPENROUTER_API_KEY", "or")

		cfg, ok := Resolve()
		require.True(t, ok)
		assert.Equal(t, "openrouter", cfg.Provider)
	})

	t.Run("explicit provider without key", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk")
		t.Setenv("LIFECOMPASS_LLM_PROVIDER", "anthropic")

		_, ok := Resolve()
		assert.False(t, ok, "an explicit choice must not fall back to discovery")
	})
}

func TestNewProvider(t *testing.T) {
	t.Run("mock is wrapped", func(t *testing.T) {
		p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
		require.NoError(t, err)
		assert.IsType(t, &RetryProvider{}, p)
		assert.Equal(t, "mock", p.Name())
	})

	t.Run("openrouter", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = "sk-or-test"
		p, err := NewProvider(context.Background(), cfg, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "openrouter", p.Name())
		assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewProvider(context.Background(), Config{Provider: "openai"}, nil, nil)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "insight", PurposeFrom(WithPurpose(ctx, "insight")))
	assert.Equal(t, "unknown", PurposeFrom(WithPurpose(ctx, "")))
}
