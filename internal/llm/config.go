package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects and configures a provider. Provider is one of
// "anthropic", "openai", "gemini", "openrouter" or "mock".
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one insight request including its retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

const providerEnv = "LIFECOMPASS_LLM_PROVIDER"

// stringVars lists the LIFECOMPASS_* variables copied verbatim into cfg.
func stringVars(cfg *Config) map[string]*string {
	return map[string]*string{
		providerEnv:                       &cfg.Provider,
		"LIFECOMPASS_ANTHROPIC_API_KEY":   &cfg.Anthropic.APIKey,
		"LIFECOMPASS_ANTHROPIC_MODEL":     &cfg.Anthropic.Model,
		"LIFECOMPASS_ANTHROPIC_BASE_URL":  &cfg.Anthropic.BaseURL,
		"LIFECOMPASS_OPENAI_API_KEY":      &cfg.OpenAI.APIKey,
		"LIFECOMPASS_OPENAI_MODEL":        &cfg.OpenAI.Model,
		"LIFECOMPASS_OPENAI_BASE_URL":     &cfg.OpenAI.BaseURL,
		"LIFECOMPASS_GEMINI_API_KEY":      &cfg.Gemini.APIKey,
		"LIFECOMPASS_GEMINI_MODEL":        &cfg.Gemini.Model,
		"LIFECOMPASS_GEMINI_BASE_URL":     &cfg.Gemini.BaseURL,
		"LIFECOMPASS_OPENROUTER_API_KEY":  &cfg.OpenRouter.APIKey,
		"LIFECOMPASS_OPENROUTER_MODEL":    &cfg.OpenRouter.Model,
		"LIFECOMPASS_OPENROUTER_BASE_URL": &cfg.OpenRouter.BaseURL,
	}
}

// ConfigFromEnv applies LIFECOMPASS_* variables over DefaultConfig.
// Unparseable durations and counts are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for key, dst := range stringVars(&cfg) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if d, err := time.ParseDuration(os.Getenv("LIFECOMPASS_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("LIFECOMPASS_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	return cfg
}

// discoveryOrder is the priority in which standard vendor key variables
// are probed when no provider is chosen explicitly.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", "gemini"},
	{"OPENAI_API_KEY", "openai"},
	{"ANTHROPIC_API_KEY", "anthropic"},
	{"OPENROUTER_API_KEY", "openrouter"},
}

// DiscoverConfig picks the first provider whose vendor key variable is set.
func DiscoverConfig() (Config, bool) {
	for _, d := range discoveryOrder {
		key := os.Getenv(d.env)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = d.provider
		*cfg.apiKeySlot() = key
		return cfg, true
	}
	return Config{}, false
}

// Resolve returns the effective configuration. An explicit
// LIFECOMPASS_LLM_PROVIDER wins over key discovery. ok is false when no
// usable provider is configured; callers then serve the static insight.
func Resolve() (cfg Config, ok bool) {
	if os.Getenv(providerEnv) != "" {
		cfg = ConfigFromEnv()
		return cfg, cfg.Validate() == nil
	}
	return DiscoverConfig()
}

// apiKeySlot points at the API key field of the selected provider, or nil
// for providers without one.
func (c *Config) apiKeySlot() *string {
	switch c.Provider {
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "gemini":
		return &c.Gemini.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// Validate reports ErrNotConfigured when the selected provider has no key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	slot := c.apiKeySlot()
	if slot == nil {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if *slot == "" {
		return fmt.Errorf("%w: %s needs an API key", ErrNotConfigured, c.Provider)
	}
	return nil
}
