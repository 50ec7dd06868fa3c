// Package llm wraps the hosted model APIs used to write assessment
// insights behind one small interface.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a single model completion.
type Provider interface {
	// Generate sends req and returns the completion. When req.Schema is set
	// the returned Content is JSON that validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string

	// Name is the provider key used in configuration ("anthropic", "openai", ...).
	Name() string
}

// Request is one single-turn (or short multi-turn) prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Providers pass it to the native
	// structured-output mechanism of their API and validate the result.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case; it keys the compiled-schema cache and is sent as
	// the OpenAI response format name.
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the provider-neutral reason generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a completed generation.
type Response struct {
	// Content is the validated JSON document for schema requests and the
	// raw completion text otherwise.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage is the token accounting reported by the provider.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}
