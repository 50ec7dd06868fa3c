package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/ui/theme"
)

// SliderKeyMap holds the bindings a Slider responds to.
type SliderKeyMap struct {
	Decrease key.Binding
	Increase key.Binding
}

// DefaultSliderKeys moves the slider with the arrow keys or h/l.
var DefaultSliderKeys = SliderKeyMap{
	Decrease: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "lower")),
	Increase: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "higher")),
}

// Slider is a discrete rating control over [Min, Max]. Digit keys jump
// straight to a value when it is in range.
type Slider struct {
	Min   int
	Max   int
	Value int
	Keys  SliderKeyMap

	LowLabel  string
	HighLabel string
}

// NewSlider creates a slider positioned at value, clamped to the range.
func NewSlider(min, max, value int) Slider {
	s := Slider{Min: min, Max: max, Keys: DefaultSliderKeys}
	s.Value = s.clamp(value)
	return s
}

func (s Slider) clamp(v int) int {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Update handles key presses. changed reports whether Value moved.
func (s Slider) Update(msg tea.Msg) (Slider, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, false
	}

	old := s.Value
	switch {
	case key.Matches(kmsg, s.Keys.Decrease):
		s.Value = s.clamp(s.Value - 1)
	case key.Matches(kmsg, s.Keys.Increase):
		s.Value = s.clamp(s.Value + 1)
	default:
		k := kmsg.String()
		if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
			if v := int(k[0] - '0'); v >= s.Min && v <= s.Max {
				s.Value = v
			}
		}
	}
	return s, s.Value != old
}

// View renders the track, the end labels and the current value.
func (s Slider) View() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	track := lipgloss.NewStyle().Foreground(theme.Border)
	knob := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	if s.LowLabel != "" {
		b.WriteString(dim.Render(s.LowLabel) + "  ")
	}
	for v := s.Min; v <= s.Max; v++ {
		if v > s.Min {
			b.WriteString(track.Render("───"))
		}
		if v == s.Value {
			b.WriteString(knob.Render("●"))
		} else {
			b.WriteString(track.Render("○"))
		}
	}
	if s.HighLabel != "" {
		b.WriteString("  " + dim.Render(s.HighLabel))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("评分：%d", s.Value)))
	return b.String()
}
