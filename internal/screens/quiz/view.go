package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/ui/components"
	"github.com/abhisek/lifecompass/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	switch q.overlay {
	case overlaySubmit:
		return q.renderSubmitConfirm(width, height)
	case overlayQuit:
		return renderQuitConfirm(width, height)
	}
	return q.renderQuestion(width, height)
}

func (q *QuizScreen) renderQuestion(width, height int) string {
	b := q.sess.Bank()
	question := b.Questions[q.current]
	category := b.Categories[question.Category]

	var sb strings.Builder

	// Info line: category on the left, answered count on the right.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + category.Label)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("adjusted %d", q.sess.Answered()))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	sb.WriteString(infoLine)
	sb.WriteString("\n")

	bar := components.NewProgressBar("", float64(q.current+1)/float64(b.Len()), true, max(width-4, 10))
	sb.WriteString("  " + bar.View())
	sb.WriteString("\n\n\n")

	sb.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d.", question.Index+1)))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(question.Text))
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, q.slider.View()))

	if q.errMsg != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(q.errMsg))
	}

	if q.current == b.Len()-1 {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render("Last statement. Press Enter to submit."))
	}

	return lipgloss.NewStyle().Height(height).Render(sb.String())
}

func (q *QuizScreen) renderSubmitConfirm(width, height int) string {
	b := q.sess.Bank()
	unchanged := b.Len() - q.sess.Answered()

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Submit your answers?"),
		"",
	}
	if unchanged > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("%d statements are still at the neutral %d.", unchanged, b.Scale.Default)))
		lines = append(lines, "")
	}

	submit := components.NewButton("提交并查看报告", q.confirmSubmit)
	back := components.NewButton("Keep answering", !q.confirmSubmit)
	lines = append(lines, components.ButtonRow(0, submit, back))

	content := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(content))
}

func renderQuitConfirm(width, height int) string {
	content := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Leave without submitting?") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your answers will be discarded. (y/n)")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(content))
}
