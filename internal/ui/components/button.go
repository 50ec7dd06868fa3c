package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/ui/theme"
)

// Button is a label drawn as a highlighted or plain button. Key handling
// belongs to the owning screen.
type Button struct {
	Label  string
	Active bool
}

func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow lays buttons out left to right, two columns apart, centred
// in width.
func ButtonRow(width int, buttons ...Button) string {
	views := make([]string, len(buttons))
	for i, b := range buttons {
		views[i] = b.View()
		if i > 0 {
			views[i] = "  " + views[i]
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Center, views...))
}
