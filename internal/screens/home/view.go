package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/ui/theme"
)

const titleFull = ` ╦  ╦╔═╗╔═╗  ╔═╗╔═╗╔╦╗╔═╗╔═╗╔═╗╔═╗
 ║  ║╠╣ ║╣   ║  ║ ║║║║╠═╝╠═╣╚═╗╚═╗
 ╩═╝╩╚  ╚═╝  ╚═╝╚═╝╩ ╩╩  ╩ ╩╚═╝╚═╝`

const titleCompact = "L · I · F · E · C · O · M · P · A · S · S"

// contentWidth returns the uniform inner width used for all sections.
// All boxes are rendered at this width so they visually align.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	// Cap so it doesn't stretch absurdly wide
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderInfoBar shows the bank in use and the last stored result in a
// double-bordered box matching content width.
func renderInfoBar(title string, statements, categories int, last []string, cw int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	topStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)

	lines := []string{
		titleStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("%d statements · %d directions", statements, categories)),
	}
	if len(last) > 0 {
		lines = append(lines, dimStyle.Render("Last time: ")+topStyle.Render(strings.Join(last, " · ")))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderLLMNote tells the user how to enable the written interpretation.
func renderLLMNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Width(cw).
		Align(lipgloss.Center).
		Render("Set an LLM API key for a personal interpretation (see lifecompass --help)")
}

// renderFrame wraps content in a double-border frame, centering vertically
// and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
