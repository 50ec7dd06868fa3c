// Package theme holds the colors and shared styles of the TUI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette: sky and emerald on deep navy, gold for a report's top
// categories.
var (
	Primary   = lipgloss.Color("#0EA5E9")
	Secondary = lipgloss.Color("#10B981")
	Accent    = lipgloss.Color("#F59E0B")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
	Highlight = lipgloss.Color("#FACC15")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Hint  = lipgloss.NewStyle().Italic(true).Foreground(TextDim)
)

// Boxes. HighlightCard frames a top-category card on the report.
var (
	Card          = boxed(Border).Padding(1, 2)
	HighlightCard = boxed(Highlight).Padding(0, 2)

	ButtonActive   = boxed(Primary).Padding(0, 1).Bold(true).Foreground(BgDark).Background(Primary)
	ButtonInactive = boxed(Border).Padding(0, 1).Foreground(Text)
)

func boxed(border color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}
