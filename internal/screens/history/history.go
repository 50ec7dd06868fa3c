package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/router"
	"github.com/abhisek/lifecompass/internal/screen"
	"github.com/abhisek/lifecompass/internal/store"
	"github.com/abhisek/lifecompass/internal/ui/components"
	"github.com/abhisek/lifecompass/internal/ui/layout"
	"github.com/abhisek/lifecompass/internal/ui/theme"
)

const listLimit = 50

type historyLoadedMsg struct {
	Reports []store.ReportRecord
	Err     error
}

type reportDeletedMsg struct {
	ID  int
	Err error
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Yes    key.Binding
	No     key.Binding
	Back   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Toggle: key.NewBinding(key.WithKeys("enter", " ")),
	Delete: key.NewBinding(key.WithKeys("d", "x")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y")),
	No:     key.NewBinding(key.WithKeys("n", "N", "esc")),
	Back:   key.NewBinding(key.WithKeys("esc")),
}

// HistoryScreen lists stored reports, newest first.
type HistoryScreen struct {
	reports       store.ReportRepo
	records       []store.ReportRecord
	selected      int
	expanded      map[int]bool
	confirmDelete bool
	loaded        bool
	errMsg        string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.EscapeHandler = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(reports store.ReportRepo) *HistoryScreen {
	return &HistoryScreen{
		reports:  reports,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	repo := s.reports
	return func() tea.Msg {
		recs, err := repo.List(context.Background(), store.QueryOpts{Limit: listLimit})
		return historyLoadedMsg{Reports: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

// HandlesEscape lets Esc cancel a pending delete before leaving the screen.
func (s *HistoryScreen) HandlesEscape() bool {
	return true
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmDelete {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Reports
			s.errMsg = ""
		}
		s.loaded = true
		if s.selected >= len(s.records) {
			s.selected = max(len(s.records)-1, 0)
		}
		return s, nil

	case reportDeletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.expanded = make(map[int]bool)
		return s, s.load()

	case tea.KeyPressMsg:
		if s.confirmDelete {
			return s.handleConfirm(msg)
		}
		switch {
		case key.Matches(msg, keys.Back):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, keys.Down):
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case key.Matches(msg, keys.Toggle):
			s.expanded[s.selected] = !s.expanded[s.selected]
		case key.Matches(msg, keys.Delete):
			if len(s.records) > 0 {
				s.confirmDelete = true
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) handleConfirm(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		s.confirmDelete = false
		id := s.records[s.selected].ID
		repo := s.reports
		return s, func() tea.Msg {
			_, err := repo.Delete(context.Background(), id)
			return reportDeletedMsg{ID: id, Err: err}
		}
	case key.Matches(msg, keys.No):
		s.confirmDelete = false
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Take the assessment from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		dateStr := rec.Timestamp.Local().Format("Jan 02, 2006 15:04")

		top := make([]string, len(rec.Top))
		for j, t := range rec.Top {
			top[j] = fmt.Sprintf("%s %.2f", t.Label, t.Score)
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s#%d  %s  %s", prefix, rec.ID, dateStr, strings.Join(top, " · "))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if i == s.selected && s.confirmDelete {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("Delete #%d? (y/n)", rec.ID))))
			b.WriteString("\n")
		}

		if s.expanded[i] {
			b.WriteString(renderDetails(rec, width))
		}
	}

	return b.String()
}

// renderDetails shows every category score as a bar, then the stored
// interpretation.
func renderDetails(rec store.ReportRecord, width int) string {
	labelWidth := 0
	for _, sc := range rec.Scores {
		labelWidth = max(labelWidth, lipgloss.Width(sc.Label))
	}
	top := make(map[int]bool, len(rec.Top))
	for _, t := range rec.Top {
		top[t.Index] = true
	}

	var lines []string
	for _, sc := range rec.Scores {
		bar := components.NewProgressBar(sc.Label, sc.Score/5, false, 44)
		bar.LabelWidth = labelWidth
		bar.Suffix = fmt.Sprintf("%.2f", sc.Score)
		if top[sc.Index] {
			bar.Fill = theme.Highlight
		}
		lines = append(lines, bar.View())
	}
	if rec.Insight != "" {
		lines = append(lines, "", lipgloss.NewStyle().
			Width(min(width-8, 60)).
			Foreground(theme.TextDim).
			Italic(true).
			Render(rec.Insight))
	}

	block := lipgloss.NewStyle().PaddingBottom(1).Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}
