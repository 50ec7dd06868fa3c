package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/ui/theme"
)

const minBarCells = 4

// ProgressBar draws "label  ████░░░░  tail" in Width columns. Fraction is
// clamped to [0, 1].
type ProgressBar struct {
	Label       string
	Fraction    float64
	ShowPercent bool
	Width       int

	// LabelWidth pads the label so bars in a column line up.
	LabelWidth int
	// Suffix replaces the percentage when set.
	Suffix string
	// Fill overrides theme.Secondary for the filled part.
	Fill color.Color
}

func NewProgressBar(label string, fraction float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Fraction: fraction, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) tail() string {
	if p.Suffix != "" {
		return p.Suffix
	}
	if p.ShowPercent {
		return fmt.Sprintf("%d%%", int(p.Fraction*100))
	}
	return ""
}

func (p ProgressBar) View() string {
	var head, tail string
	if p.Label != "" {
		pad := max(p.LabelWidth-lipgloss.Width(p.Label), 0)
		head = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label+strings.Repeat(" ", pad)) + "  "
	}
	if t := p.tail(); t != "" {
		tail = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + t)
	}

	cells := max(p.Width-lipgloss.Width(head)-lipgloss.Width(tail), minBarCells)
	filled := min(max(int(float64(cells)*p.Fraction), 0), cells)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled))

	return head + bar + tail
}
