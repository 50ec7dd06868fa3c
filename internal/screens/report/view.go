package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/scoring"
	"github.com/abhisek/lifecompass/internal/ui/components"
	"github.com/abhisek/lifecompass/internal/ui/theme"
)

const (
	maxContentWidth = 100
	barsWidth       = 44
)

func (s *ReportScreen) View(width, height int) string {
	s.vp.SetWidth(width)
	s.vp.SetHeight(height)
	s.vp.SetContent(s.render(width))
	return s.vp.View()
}

func (s *ReportScreen) render(width int) string {
	cw := min(width-4, maxContentWidth)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var sections []string

	sections = append(sections, center(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("你的特质方向概况")))

	sections = append(sections, center(s.renderHighlights(cw)))

	if s.insight == nil {
		sections = append(sections, center(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("Writing your interpretation...")))
	} else if s.insight.Summary != "" {
		sections = append(sections, center(lipgloss.NewStyle().
			Width(cw).
			Foreground(theme.Text).
			Render(s.insight.Summary)))
	}

	sections = append(sections, center(s.renderChart(cw)))

	closing := s.bank.Closing
	if s.insight != nil && s.insight.Closing != "" {
		closing = s.insight.Closing
	}
	if closing != "" {
		sections = append(sections, center(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(closing)))
	}

	if status := s.saveStatus(); status != "" {
		sections = append(sections, center(status))
	}

	return strings.Join(sections, "\n\n")
}

// renderHighlights renders one card per top category, side by side when
// there is room.
func (s *ReportScreen) renderHighlights(cw int) string {
	top := s.report.Top
	if len(top) == 0 {
		return ""
	}

	sideBySide := cw >= 60
	cardWidth := cw
	if sideBySide {
		cardWidth = (cw - 2*(len(top)-1)) / len(top)
	}

	cards := make([]string, len(top))
	for i, cs := range top {
		cards[i] = s.renderCard(cs, cardWidth)
	}

	if !sideBySide {
		return lipgloss.JoinVertical(lipgloss.Center, cards...)
	}
	parts := make([]string, 0, 2*len(cards))
	for i, c := range cards {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (s *ReportScreen) renderCard(cs scoring.CategoryScore, width int) string {
	label := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(cs.Category.Label)
	score := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%.2f / %d", cs.Score, s.bank.Scale.Max))
	note := lipgloss.NewStyle().Foreground(theme.Text).Render(s.noteFor(cs))

	return theme.HighlightCard.
		Width(width).
		Render(label + "  " + score + "\n" + note)
}

// noteFor returns the interpretation's note for a top category, falling back
// to the category blurb while the interpretation is pending.
func (s *ReportScreen) noteFor(cs scoring.CategoryScore) string {
	if s.insight != nil {
		for _, h := range s.insight.Highlights {
			if h.Category == cs.Category.Label && h.Note != "" {
				return h.Note
			}
		}
	}
	return cs.Category.Blurb
}

// renderChart places the radar chart and the per-category bars next to each
// other, or stacked on narrow terminals.
func (s *ReportScreen) renderChart(cw int) string {
	chart := s.report.Chart
	labels := make([]string, len(chart.Points))
	values := make([]float64, len(chart.Points))
	for i, p := range chart.Points {
		labels[i] = p.Type
		values[i] = p.Score
	}

	emphasis := make(map[int]bool, len(s.report.Top))
	for _, t := range s.report.Top {
		emphasis[t.Category.Index] = true
	}

	radar := components.NewRadarChart(labels, values, chart.Domain[1])
	radar.Emphasis = emphasis
	radarView := radar.View()

	bars := s.renderBars(emphasis)

	if lipgloss.Width(radarView)+barsWidth+4 <= cw {
		return lipgloss.JoinHorizontal(lipgloss.Center, radarView, "    ", bars)
	}
	return lipgloss.JoinVertical(lipgloss.Center, radarView, "", bars)
}

func (s *ReportScreen) renderBars(emphasis map[int]bool) string {
	labelWidth := 0
	for _, cs := range s.report.Scores {
		labelWidth = max(labelWidth, lipgloss.Width(cs.Category.Label))
	}

	lines := make([]string, len(s.report.Scores))
	for i, cs := range s.report.Scores {
		bar := components.NewProgressBar(cs.Category.Label, cs.Score/s.report.Chart.Domain[1], false, barsWidth)
		bar.LabelWidth = labelWidth
		bar.Suffix = fmt.Sprintf("%.2f", cs.Score)
		if emphasis[cs.Category.Index] {
			bar.Fill = theme.Highlight
		}
		lines[i] = bar.View()
	}
	return strings.Join(lines, "\n")
}

func (s *ReportScreen) saveStatus() string {
	switch {
	case s.saveErr != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render("Could not save to history: " + s.saveErr)
	case s.savedID > 0:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Saved to history as #%d", s.savedID))
	}
	return ""
}
