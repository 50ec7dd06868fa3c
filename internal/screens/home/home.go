package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/insight"
	"github.com/abhisek/lifecompass/internal/publish"
	"github.com/abhisek/lifecompass/internal/router"
	"github.com/abhisek/lifecompass/internal/screen"
	"github.com/abhisek/lifecompass/internal/screens/history"
	"github.com/abhisek/lifecompass/internal/screens/placeholder"
	"github.com/abhisek/lifecompass/internal/screens/quiz"
	"github.com/abhisek/lifecompass/internal/store"
	"github.com/abhisek/lifecompass/internal/ui/components"
)

type lastReportMsg struct {
	Top []string
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	bank       *bank.Bank
	reports    store.ReportRepo
	insightSvc *insight.Service
	menu       components.Menu
	lastTop    []string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. reports, insightSvc and pub may be nil.
func New(b *bank.Bank, reports store.ReportRepo, insightSvc *insight.Service, pub publish.Publisher, logger *zap.Logger) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quiz.New(b, reports, insightSvc, pub, logger),
				}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			if reports == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("History", "History is off.\n\nRun without --no-history to keep past results.")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(reports)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		bank:       b,
		reports:    reports,
		insightSvc: insightSvc,
		menu:       components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.reports == nil {
		return nil
	}
	reports := h.reports
	return func() tea.Msg {
		recs, err := reports.List(context.Background(), store.QueryOpts{Limit: 1})
		if err != nil || len(recs) == 0 {
			return lastReportMsg{}
		}
		top := make([]string, len(recs[0].Top))
		for i, t := range recs[0].Top {
			top[i] = t.Label
		}
		return lastReportMsg{Top: top}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(lastReportMsg); ok {
		h.lastTop = msg.Top
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderInfoBar(h.bank.Title, h.bank.Len(), h.bank.NumCategories(), h.lastTop, cw))
	sections = append(sections, h.menu.View(cw))
	if !h.insightSvc.Enabled() {
		sections = append(sections, renderLLMNote(cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return renderFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
