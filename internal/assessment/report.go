package assessment

import (
	"time"

	"github.com/abhisek/lifecompass/internal/scoring"
	"github.com/abhisek/lifecompass/internal/store"
)

// Report is the shareable outcome of a submitted session. It carries no
// response values, only the derived scores.
type Report struct {
	SessionID   string                  `json:"session_id"`
	BankID      string                  `json:"bank_id"`
	StartedAt   time.Time               `json:"started_at"`
	SubmittedAt time.Time               `json:"submitted_at"`
	Scores      []scoring.CategoryScore `json:"scores"`
	Top         []scoring.CategoryScore `json:"top"`
	Chart       scoring.ChartData       `json:"chart"`
}

// Report builds the report with the k highest categories highlighted.
func (s *Session) Report(k int) (*Report, error) {
	if s.phase != PhaseReporting {
		return nil, ErrNotSubmitted
	}
	r := scoring.BuildReport(s.bank, s.responses, k)
	return &Report{
		SessionID:   s.ID,
		BankID:      s.bank.ID,
		StartedAt:   s.StartedAt,
		SubmittedAt: s.SubmittedAt,
		Scores:      r.Scores,
		Top:         r.Top,
		Chart:       r.Chart,
	}, nil
}

// Record converts the report into its persisted form.
func (r *Report) Record(insight string) store.ReportData {
	return store.ReportData{
		SessionID: r.SessionID,
		BankID:    r.BankID,
		Timestamp: r.SubmittedAt,
		Scores:    scoreData(r.Scores),
		Top:       scoreData(r.Top),
		Insight:   insight,
	}
}

func scoreData(scores []scoring.CategoryScore) []store.CategoryScoreData {
	out := make([]store.CategoryScoreData, len(scores))
	for i, s := range scores {
		out[i] = store.CategoryScoreData{Index: s.Category.Index, Label: s.Category.Label, Score: s.Score}
	}
	return out
}
