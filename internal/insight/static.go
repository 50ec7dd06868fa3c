package insight

import (
	"time"

	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/scoring"
)

// Static builds the fixed-text interpretation: every top category gets the
// bank's blurb and the report ends with the bank's closing line.
func Static(b *bank.Bank, top []scoring.CategoryScore) *Insight {
	highlights := make([]Highlight, len(top))
	for i, cs := range top {
		highlights[i] = Highlight{Category: cs.Category.Label, Note: cs.Category.Blurb}
	}
	return &Insight{
		Highlights:  highlights,
		Closing:     b.Closing,
		Source:      SourceStatic,
		GeneratedAt: time.Now(),
	}
}
