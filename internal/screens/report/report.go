// Package report shows a submitted assessment: highlight cards, radar chart,
// per-category bars and the written interpretation.
package report

import (
	"context"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/assessment"
	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/insight"
	"github.com/abhisek/lifecompass/internal/publish"
	"github.com/abhisek/lifecompass/internal/router"
	"github.com/abhisek/lifecompass/internal/screen"
	"github.com/abhisek/lifecompass/internal/store"
	"github.com/abhisek/lifecompass/internal/ui/layout"
)

// awaitSlack is added to the insight timeout; the service falls back to
// static text on its own, so the wait only ends early if it hangs.
const awaitSlack = 5 * time.Second

// savedMsg is sent when the report has been written to history.
type savedMsg struct {
	ID  int
	Err error
}

// resolvedMsg carries the interpretation and, when history is on, the
// outcome of saving the report with it.
type resolvedMsg struct {
	Insight *insight.Insight
	Saved   *savedMsg
}

// publishedMsg is sent when the submit event has been delivered.
type publishedMsg struct {
	Err error
}

// ReportScreen implements screen.Screen for a finished assessment.
type ReportScreen struct {
	bank       *bank.Bank
	report     *assessment.Report
	reports    store.ReportRepo
	insightSvc *insight.Service
	publisher  publish.Publisher
	logger     *zap.Logger

	insight *insight.Insight
	wait    time.Duration

	savedID int
	saveErr string

	vp viewport.Model
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a ReportScreen. reports, insightSvc and pub may be nil.
func New(b *bank.Bank, r *assessment.Report, reports store.ReportRepo, insightSvc *insight.Service, pub publish.Publisher, logger *zap.Logger) *ReportScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pub == nil {
		pub = publish.Nop{}
	}

	return &ReportScreen{
		bank:       b,
		report:     r,
		reports:    reports,
		insightSvc: insightSvc,
		publisher:  pub,
		logger:     logger.Named("report"),
		wait:       insight.DefaultConfig().Timeout + awaitSlack,
		vp:         viewport.New(),
	}
}

func (s *ReportScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.publishCmd()}

	if s.insightSvc.Enabled() {
		s.insightSvc.Request(context.Background(), s.input())
		cmds = append(cmds, s.resolveCmd())
	} else {
		s.insight = insight.Static(s.bank, s.report.Top)
		cmds = append(cmds, s.saveCmd())
	}
	return tea.Batch(cmds...)
}

func (s *ReportScreen) Title() string {
	return "Report"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Home"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Insight returns the interpretation, or nil while it is being written.
func (s *ReportScreen) Insight() *insight.Insight {
	return s.insight
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg:
		s.insight = msg.Insight
		if msg.Saved != nil {
			s.applySaved(*msg.Saved)
		}
		return s, nil

	case savedMsg:
		s.applySaved(msg)
		return s, nil

	case publishedMsg:
		if msg.Err != nil {
			s.logger.Warn("publish report failed", zap.Error(msg.Err))
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *ReportScreen) applySaved(msg savedMsg) {
	if msg.Err != nil {
		s.saveErr = msg.Err.Error()
	} else {
		s.savedID = msg.ID
	}
}

func (s *ReportScreen) input() insight.Input {
	return insight.Input{Bank: s.bank, Scores: s.report.Scores, Top: s.report.Top}
}

// resolveCmd waits for the requested interpretation, then saves the report
// with it. It runs whether or not the screen is still showing, so leaving
// early still records the report exactly once. A wait that outlasts s.wait
// saves the static text instead.
func (s *ReportScreen) resolveCmd() tea.Cmd {
	svc, wait, logger := s.insightSvc, s.wait, s.logger
	b, r, repo := s.bank, s.report, s.reports
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()

		in, ok := svc.Await(ctx)
		if !ok {
			logger.Warn("insight did not arrive in time, using static text", zap.Duration("wait", wait))
			in = insight.Static(b, r.Top)
		}
		msg := resolvedMsg{Insight: in}
		if repo != nil {
			saved := save(repo, r.Record(in.Text()))
			msg.Saved = &saved
		}
		return msg
	}
}

func (s *ReportScreen) saveCmd() tea.Cmd {
	if s.reports == nil {
		return nil
	}
	repo := s.reports
	data := s.report.Record(s.insight.Text())
	return func() tea.Msg { return save(repo, data) }
}

func save(repo store.ReportRepo, data store.ReportData) savedMsg {
	id, err := repo.Save(context.Background(), data)
	return savedMsg{ID: id, Err: err}
}

func (s *ReportScreen) publishCmd() tea.Cmd {
	pub := s.publisher
	r := s.report
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return publishedMsg{Err: pub.PublishReport(ctx, r)}
	}
}
