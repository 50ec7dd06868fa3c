// Package layout draws the chrome around every screen: a header bar with
// the app name, screen title and status, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/ui/theme"
)

// Below this size the app shows a resize notice instead of a screen.
const (
	MinWidth  = 80
	MinHeight = 24
)

const appName = "LifeCompass"

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small\n\nneed %d × %d, have %d × %d", MinWidth, MinHeight, width, height))
}

// Frame is the chrome for one render.
type Frame struct {
	Title  string
	Status string
	Hints  []KeyHint
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Render draws header and footer at width and fills the rows between them
// with body, which is told how much room it has.
func (f Frame) Render(width, height int, body func(width, height int) string) string {
	header := f.header(width)
	footer := f.footer(width)
	room := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().Width(width).Height(room).Render(body(width, room))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// header centres the title between the app name and the status.
func (f Frame) header(width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + appName)
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	status := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.Status)

	inner := max(width-4, 0)
	nameW, titleW, statusW := lipgloss.Width(name), lipgloss.Width(title), lipgloss.Width(status)
	lead := max((inner-titleW)/2-nameW, 1)
	trail := max(inner-nameW-lead-titleW-statusW, 1)

	return bar.Width(width).Render(name + strings.Repeat(" ", lead) + title + strings.Repeat(" ", trail) + status)
}

func (f Frame) footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}
