package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Sent so requests are attributed to the app on the OpenRouter dashboard.
	openRouterReferer = "https://github.com/abhisek/lifecompass"
	openRouterTitle   = "lifecompass"
)

// NewOpenRouterProvider returns an OpenAIProvider pointed at OpenRouter.
// Model IDs are passed through untouched since OpenRouter namespaces them
// by vendor ("google/gemini-2.0-flash-exp").
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: %w", ErrNotConfigured)
	}

	cc := openai.DefaultConfig(cfg.APIKey)
	cc.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	cc.HTTPClient = &http.Client{Transport: &headerTransport{
		base: http.DefaultTransport,
		header: http.Header{
			"HTTP-Referer": {openRouterReferer},
			"X-Title":      {openRouterTitle},
		},
	}}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cc),
		model:  cfg.Model,
		name:   "openrouter",
	}, nil
}
