package insight

import (
	"time"

	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/scoring"
)

// Source says where an Insight's text came from.
type Source string

const (
	SourceLLM    Source = "llm"
	SourceStatic Source = "static"
)

// Highlight is the note shown on one top-category card.
type Highlight struct {
	Category string `json:"category"`
	Note     string `json:"note"`
}

// Insight is the narrative shown alongside the scores.
type Insight struct {
	Summary     string      `json:"summary,omitempty"`
	Highlights  []Highlight `json:"highlights"`
	Closing     string      `json:"closing"`
	Source      Source      `json:"source"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Text flattens the insight into plain text for storage and CLI output.
func (in *Insight) Text() string {
	if in == nil {
		return ""
	}
	s := in.Summary
	for _, h := range in.Highlights {
		if s != "" {
			s += "\n"
		}
		s += h.Category + "：" + h.Note
	}
	if in.Closing != "" {
		if s != "" {
			s += "\n"
		}
		s += in.Closing
	}
	return s
}

// Input is what an interpretation is based on. Raw responses are not part
// of it.
type Input struct {
	Bank   *bank.Bank
	Scores []scoring.CategoryScore
	Top    []scoring.CategoryScore
}
