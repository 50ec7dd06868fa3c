// Package insight produces the narrative shown next to the scores: an LLM
// interpretation when a provider is configured, the bank's fixed text
// otherwise.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/llm"
)

// Config holds insight generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns sensible defaults for insight generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.6,
		Timeout:     30 * time.Second,
	}
}

// Service generates interpretations, synchronously or in the background.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger

	mu      sync.Mutex
	gen     uint64
	pending *Insight
	ready   bool
	done    chan struct{} // closed when generation gen finishes
}

// NewService creates an insight service. provider may be nil, in which case
// every request resolves to the static text.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger.Named("insight")}
}

// Enabled reports whether an LLM provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// Generate returns an interpretation for the input. It never fails: when the
// provider is missing or errors, the static text is returned.
func (s *Service) Generate(ctx context.Context, in Input) *Insight {
	if !s.Enabled() {
		return Static(in.Bank, in.Top)
	}

	out, err := s.generate(ctx, in)
	if err != nil {
		s.logger.Warn("falling back to static insight", zap.Error(err))
		return Static(in.Bank, in.Top)
	}
	return out
}

// Request starts background generation. Only the latest request is kept;
// results from earlier ones are dropped.
func (s *Service) Request(ctx context.Context, in Input) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	done := make(chan struct{})
	s.done = done
	s.pending = nil
	s.ready = false
	s.mu.Unlock()

	go func() {
		defer close(done)
		result := s.Generate(ctx, in)
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending = result
		s.ready = true
	}()
}

// Consume returns the pending insight if one is ready. After consumption
// the pending slot is cleared.
func (s *Service) Consume() (*Insight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.take()
}

// Await blocks until the latest request finishes or ctx ends, then
// consumes its result. ok is false when nothing was requested, ctx ended
// first, or a newer request replaced the awaited one.
func (s *Service) Await(ctx context.Context) (*Insight, bool) {
	s.mu.Lock()
	gen, done := s.gen, s.done
	s.mu.Unlock()
	if done == nil {
		return nil, false
	}

	select {
	case <-done:
	case <-ctx.Done():
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil, false
	}
	return s.take()
}

// take empties the pending slot. s.mu must be held.
func (s *Service) take() (*Insight, bool) {
	if !s.ready {
		return nil, false
	}
	out := s.pending
	s.pending = nil
	s.ready = false
	return out, out != nil
}

type insightOutput struct {
	Summary    string      `json:"summary"`
	Highlights []Highlight `json:"highlights"`
}

func (s *Service) generate(ctx context.Context, in Input) (*Insight, error) {
	ctx = llm.WithPurpose(ctx, "insight")
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      InsightSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("insight generation: %w", err)
	}

	var out insightOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse insight response: %w", err)
	}

	return &Insight{
		Summary:     out.Summary,
		Highlights:  alignHighlights(in, out.Highlights),
		Closing:     in.Bank.Closing,
		Source:      SourceLLM,
		GeneratedAt: time.Now(),
	}, nil
}

// alignHighlights keeps one note per top category in ranking order. A top
// category the model skipped gets the static blurb; notes for categories
// outside the top are dropped.
func alignHighlights(in Input, got []Highlight) []Highlight {
	byLabel := make(map[string]string, len(got))
	for _, h := range got {
		if _, seen := byLabel[h.Category]; !seen && h.Note != "" {
			byLabel[h.Category] = h.Note
		}
	}

	out := make([]Highlight, len(in.Top))
	for i, cs := range in.Top {
		note, ok := byLabel[cs.Category.Label]
		if !ok {
			note = cs.Category.Blurb
		}
		out[i] = Highlight{Category: cs.Category.Label, Note: note}
	}
	return out
}
