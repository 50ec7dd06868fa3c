package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/ui/theme"
)

const menuButtonWidth = 22

type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of buttons. Up/down (or k/j) move between
// enabled items and wrap at either end; enter runs the selected item and
// the digits 1-9 run the item at that position directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(1)
	return m
}

func (m Menu) Init() tea.Cmd { return nil }

// step returns the next enabled index from Selected in direction dir,
// wrapping around, or Selected when nothing else is enabled.
func (m Menu) step(dir int) int {
	n := len(m.Items)
	for k := 1; k <= n; k++ {
		i := ((m.Selected+dir*k)%n + n) % n
		if !m.Items[i].Disabled {
			return i
		}
	}
	return max(m.Selected, 0)
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j":
		m.Selected = m.step(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 9 {
			if i := n - 1; i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

// View centres the buttons in width.
func (m Menu) View(width int) string {
	buttons := make([]string, len(m.Items))
	for i, item := range m.Items {
		style, label := theme.ButtonInactive, item.Label
		switch {
		case item.Disabled:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style, label = theme.ButtonActive, "▸ "+label
		}
		buttons[i] = style.Width(menuButtonWidth).Align(lipgloss.Center).Render(label)
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(buttons, "\n"))
}
