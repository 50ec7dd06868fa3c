package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	got := c.Cost(1_000_000, 500_000)
	if math.Abs(got-0.45) > 1e-9 {
		t.Errorf("cost = %f, want 0.45", got)
	}

	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}

func TestDefaultModelsArePriced(t *testing.T) {
	cfg := DefaultConfig()
	for _, id := range []string{
		modelAlias(cfg.Anthropic.Model, anthropicModels),
		modelAlias(cfg.OpenAI.Model, openaiModels),
		modelAlias(cfg.Gemini.Model, geminiModels),
		cfg.OpenRouter.Model,
	} {
		if LookupCost(id) == nil {
			t.Errorf("no pricing for default model %q", id)
		}
	}
}
