// Package placeholder stands in for a screen that is switched off in the
// current run, such as history under --no-history.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/router"
	"github.com/abhisek/lifecompass/internal/screen"
	"github.com/abhisek/lifecompass/internal/ui/theme"
)

// PlaceholderScreen explains why a feature is unavailable. Enter closes
// it; Esc is handled by the app like any plain screen.
type PlaceholderScreen struct {
	title, message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Title() string { return p.title }

func (p *PlaceholderScreen) Init() tea.Cmd { return nil }

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(p.message),
		"",
		theme.Hint.Render("enter to go back"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(body))
}
