package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insightJSON = `{"category":"表达与沟通力","rank":1,"tone":"warm"}`

func serveJSON(t *testing.T, status int, header http.Header, body any, inspect func(*http.Request)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		for k, vs := range header {
			w.Header()[k] = vs
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func insightRequest() Request {
	return Request{
		System:    "You interpret self-assessment results.",
		Messages:  []Message{{Role: RoleUser, Content: "Top: 表达与沟通力 4.60"}},
		Schema:    highlightSchema,
		MaxTokens: 256,
	}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func TestAnthropicProvider(t *testing.T) {
	newProvider := func(t *testing.T, url string) *AnthropicProvider {
		p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: url})
		require.NoError(t, err)
		return p
	}

	t.Run("structured reply", func(t *testing.T) {
		var body map[string]any
		url := serveJSON(t, http.StatusOK, nil, anthropicMessage(insightJSON, "end_turn"), func(r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&body)
		})
		resp, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		require.NoError(t, err)

		assert.JSONEq(t, insightJSON, string(resp.Content))
		assert.Equal(t, StopEnd, resp.StopReason)
		assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
		assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
		assert.NotNil(t, body["system"])
	})

	t.Run("truncated", func(t *testing.T) {
		url := serveJSON(t, http.StatusOK, nil, anthropicMessage(`{"category":"表达`, "max_tokens"), nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		var maxTok *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &maxTok)
	})

	t.Run("rate limit carries retry-after", func(t *testing.T) {
		url := serveJSON(t, http.StatusTooManyRequests, http.Header{"Retry-After": {"7"}}, anthropicError("rate_limit_error"), nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		var rl *ErrRateLimit
		require.ErrorAs(t, err, &rl)
		assert.Equal(t, 7*time.Second, rl.RetryAfter)
	})

	t.Run("server error", func(t *testing.T) {
		url := serveJSON(t, http.StatusInternalServerError, nil, anthropicError("api_error"), nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavail)
	})

	t.Run("bad key is not retryable", func(t *testing.T) {
		url := serveJSON(t, http.StatusUnauthorized, nil, anthropicError("authentication_error"), nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		require.Error(t, err)
		assert.Equal(t, classFatal, classify(err))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewAnthropicProvider(AnthropicConfig{})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider(t *testing.T) {
	newProvider := func(t *testing.T, url string) *OpenAIProvider {
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: url + "/v1"})
		require.NoError(t, err)
		return p
	}

	t.Run("fenced structured reply", func(t *testing.T) {
		var body struct {
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
			ResponseFormat struct {
				Type       string `json:"type"`
				JSONSchema struct {
					Name   string `json:"name"`
					Strict bool   `json:"strict"`
				} `json:"json_schema"`
			} `json:"response_format"`
		}
		url := serveJSON(t, http.StatusOK, nil, chatCompletion("```json\n"+insightJSON+"\n```", "stop"), func(r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&body)
		})

		p := newProvider(t, url)
		resp, err := p.Generate(context.Background(), insightRequest())
		require.NoError(t, err)

		assert.JSONEq(t, insightJSON, string(resp.Content))
		assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
		assert.Equal(t, 65, resp.Usage.TotalTokens)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "json_schema", body.ResponseFormat.Type)
		assert.Equal(t, "test-highlight", body.ResponseFormat.JSONSchema.Name)
		assert.True(t, body.ResponseFormat.JSONSchema.Strict)
		assert.Equal(t, "openai", p.Name())
	})

	t.Run("schema violation", func(t *testing.T) {
		url := serveJSON(t, http.StatusOK, nil, chatCompletion(`{"category":"表达与沟通力"}`, "stop"), nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		var inv *ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	})

	t.Run("no choices", func(t *testing.T) {
		reply := chatCompletion("", "stop")
		reply["choices"] = []any{}
		url := serveJSON(t, http.StatusOK, nil, reply, nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		var inv *ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	})

	t.Run("rate limit", func(t *testing.T) {
		url := serveJSON(t, http.StatusTooManyRequests, nil,
			map[string]any{"error": map[string]any{"type": "tokens", "message": "slow down", "code": "rate_limit_exceeded"}}, nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("server error", func(t *testing.T) {
		url := serveJSON(t, http.StatusBadGateway, nil,
			map[string]any{"error": map[string]any{"type": "server_error", "message": "upstream"}}, nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavail)
	})

	t.Run("alias", func(t *testing.T) {
		assert.Equal(t, "gpt-4o", modelAlias("gpt-4o", openaiModels))
		assert.Equal(t, "o4-mini", modelAlias("o4-mini", openaiModels))
	})
}

func TestOpenRouterProvider(t *testing.T) {
	var got http.Header
	url := serveJSON(t, http.StatusOK, nil, chatCompletion(insightJSON, "stop"), func(r *http.Request) {
		got = r.Header.Clone()
	})

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3.5-haiku", BaseURL: url})
	require.NoError(t, err)
	assert.Equal(t, "openrouter", p.Name())
	assert.Equal(t, "anthropic/claude-3.5-haiku", p.ModelID(), "vendor-prefixed IDs pass through")

	_, err = p.Generate(context.Background(), insightRequest())
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-or-test", got.Get("Authorization"))
	assert.Equal(t, openRouterReferer, got.Get("HTTP-Referer"))
	assert.Equal(t, openRouterTitle, got.Get("X-Title"))

	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{"promptTokenCount": 12, "candidatesTokenCount": 8, "totalTokenCount": 20},
		"modelVersion":  "gemini-2.0-flash-001",
	}
}

func TestGeminiProvider(t *testing.T) {
	newProvider := func(t *testing.T, url string) *GeminiProvider {
		p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "test-key", Model: "gemini-flash", BaseURL: url})
		require.NoError(t, err)
		return p
	}

	t.Run("structured reply", func(t *testing.T) {
		url := serveJSON(t, http.StatusOK, nil, geminiReply(insightJSON, "STOP"), nil)
		p := newProvider(t, url)
		assert.Equal(t, "gemini-2.0-flash", p.ModelID())

		resp, err := p.Generate(context.Background(), insightRequest())
		require.NoError(t, err)
		assert.JSONEq(t, insightJSON, string(resp.Content))
		assert.Equal(t, "gemini-2.0-flash-001", resp.Model)
		assert.Equal(t, newUsage(12, 8), resp.Usage)
	})

	t.Run("truncated", func(t *testing.T) {
		url := serveJSON(t, http.StatusOK, nil, geminiReply(`{"cat`, "MAX_TOKENS"), nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		var maxTok *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &maxTok)
	})

	t.Run("rate limit", func(t *testing.T) {
		url := serveJSON(t, http.StatusTooManyRequests, nil,
			map[string]any{"error": map[string]any{"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"}}, nil)
		_, err := newProvider(t, url).Generate(context.Background(), insightRequest())
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
		assert.True(t, errors.Is(err, ErrNotConfigured))
	})
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(highlightSchema.Definition)

	assert.EqualValues(t, "OBJECT", s.Type)
	require.Len(t, s.Properties, 3)
	assert.EqualValues(t, "STRING", s.Properties["category"].Type)
	assert.EqualValues(t, "INTEGER", s.Properties["rank"].Type)
	assert.Equal(t, []string{"warm", "neutral"}, s.Properties["tone"].Enum)
	assert.ElementsMatch(t, []string{"category", "rank"}, s.Required)

	arr := geminiSchema(map[string]any{"type": "array", "items": map[string]any{"type": "number"}})
	assert.EqualValues(t, "ARRAY", arr.Type)
	assert.EqualValues(t, "NUMBER", arr.Items.Type)
}
