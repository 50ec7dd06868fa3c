// Package quiz is the answering screen: one statement at a time, rated on
// a slider, then submitted.
package quiz

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/assessment"
	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/insight"
	"github.com/abhisek/lifecompass/internal/publish"
	"github.com/abhisek/lifecompass/internal/router"
	"github.com/abhisek/lifecompass/internal/screen"
	"github.com/abhisek/lifecompass/internal/screens/report"
	"github.com/abhisek/lifecompass/internal/scoring"
	"github.com/abhisek/lifecompass/internal/store"
	"github.com/abhisek/lifecompass/internal/ui/components"
	"github.com/abhisek/lifecompass/internal/ui/layout"
)

type overlay int

const (
	overlayNone overlay = iota
	overlaySubmit
	overlayQuit
)

// QuizScreen implements screen.Screen for answering a bank.
type QuizScreen struct {
	sess       *assessment.Session
	reports    store.ReportRepo
	insightSvc *insight.Service
	publisher  publish.Publisher
	logger     *zap.Logger

	current int
	slider  components.Slider
	overlay overlay
	// confirmSubmit selects the submit button in the submit overlay.
	confirmSubmit bool
	errMsg        string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen over a fresh session. reports, insightSvc and
// pub may be nil.
func New(b *bank.Bank, reports store.ReportRepo, insightSvc *insight.Service, pub publish.Publisher, logger *zap.Logger) *QuizScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pub == nil {
		pub = publish.Nop{}
	}
	q := &QuizScreen{
		sess:       assessment.New(b),
		reports:    reports,
		insightSvc: insightSvc,
		publisher:  pub,
		logger:     logger.Named("quiz"),
	}
	q.syncSlider()
	return q
}

// Session exposes the underlying session.
func (q *QuizScreen) Session() *assessment.Session {
	return q.sess
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	return q.sess.Bank().Title
}

func (q *QuizScreen) Status() string {
	return fmt.Sprintf("%d / %d", q.current+1, q.sess.Bank().Len())
}

// HandlesEscape keeps the app from popping the quiz on Esc; the quiz asks
// before discarding answers.
func (q *QuizScreen) HandlesEscape() bool {
	return true
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch q.overlay {
	case overlaySubmit:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	case overlayQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep answering"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→ 1-5", Description: "Rate"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Next"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return q, nil
	}

	switch q.overlay {
	case overlaySubmit:
		return q.handleSubmitOverlay(kmsg)
	case overlayQuit:
		return q.handleQuitOverlay(kmsg)
	}

	// Slider gets first look so digits and ←/→ rate the statement.
	var changed bool
	q.slider, changed = q.slider.Update(kmsg)
	if changed {
		if err := q.sess.SetAnswer(q.current, q.slider.Value); err != nil {
			q.errMsg = err.Error()
		}
		return q, nil
	}

	last := q.sess.Bank().Len() - 1
	switch {
	case key.Matches(kmsg, keys.Back):
		q.overlay = overlayQuit
	case key.Matches(kmsg, keys.Submit):
		q.openSubmit()
	case key.Matches(kmsg, keys.Confirm):
		if q.current == last {
			q.openSubmit()
		} else {
			q.move(1)
		}
	case key.Matches(kmsg, keys.Next):
		q.move(1)
	case key.Matches(kmsg, keys.Prev):
		q.move(-1)
	case key.Matches(kmsg, keys.First):
		q.move(-q.current)
	case key.Matches(kmsg, keys.Last):
		q.move(last - q.current)
	}
	return q, nil
}

func (q *QuizScreen) handleSubmitOverlay(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(kmsg, keys.Back), key.Matches(kmsg, keys.No):
		q.overlay = overlayNone
	case key.Matches(kmsg, keys.Yes):
		return q, q.submit()
	case key.Matches(kmsg, keys.Toggle):
		q.confirmSubmit = !q.confirmSubmit
	case key.Matches(kmsg, keys.Confirm):
		if q.confirmSubmit {
			return q, q.submit()
		}
		q.overlay = overlayNone
	}
	return q, nil
}

func (q *QuizScreen) handleQuitOverlay(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(kmsg, keys.Yes):
		q.overlay = overlayNone
		return q, func() tea.Msg { return router.PopScreenMsg{} }
	case key.Matches(kmsg, keys.No), key.Matches(kmsg, keys.Back):
		q.overlay = overlayNone
	}
	return q, nil
}

func (q *QuizScreen) openSubmit() {
	q.overlay = overlaySubmit
	q.confirmSubmit = true
}

func (q *QuizScreen) move(delta int) {
	n := q.current + delta
	if n < 0 || n >= q.sess.Bank().Len() {
		return
	}
	q.current = n
	q.syncSlider()
}

func (q *QuizScreen) syncSlider() {
	scale := q.sess.Bank().Scale
	q.slider = components.NewSlider(scale.Min, scale.Max, q.sess.Answer(q.current))
	q.slider.LowLabel = "不符合"
	q.slider.HighLabel = "非常符合"
}

// submit freezes the session and hands off to the report screen.
func (q *QuizScreen) submit() tea.Cmd {
	q.overlay = overlayNone
	if err := q.sess.Submit(); err != nil {
		q.errMsg = err.Error()
		return nil
	}
	r, err := q.sess.Report(scoring.DefaultTopK)
	if err != nil {
		q.errMsg = err.Error()
		return nil
	}
	q.logger.Info("assessment submitted",
		zap.String("session_id", r.SessionID),
		zap.Int("answered", q.sess.Answered()),
	)

	next := report.New(q.sess.Bank(), r, q.reports, q.insightSvc, q.publisher, q.logger)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}
