// Package welcome is the splash shown at startup: a compass whose needle
// spins and settles on north before the title appears.
package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/router"
	"github.com/abhisek/lifecompass/internal/screen"
	"github.com/abhisek/lifecompass/internal/ui/theme"
)

// Tagline is shown under the banner.
const Tagline = "幸福人生方向分析"

const frameInterval = 80 * time.Millisecond

// needle holds the eight headings clockwise from north.
var needle = []string{"▲", "◥", "▶", "◢", "▼", "◣", "◀", "◤"}

var (
	// spinFrames is two full turns; the needle rests on north afterwards.
	spinFrames = 2 * len(needle)
	// revealFrame is when the banner appears and animation stops.
	revealFrame = spinFrames + 4
)

type frameMsg struct{}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// Splash animates until revealFrame and waits for a key. The first key
// replaces it with the screen built by next.
type Splash struct {
	next  func() screen.Screen
	frame int
	left  bool
}

var _ screen.Screen = (*Splash)(nil)

func New(next func() screen.Screen) *Splash {
	return &Splash{next: next}
}

func (s *Splash) Title() string { return "" }

func (s *Splash) Init() tea.Cmd { return nextFrame() }

func (s *Splash) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if s.revealed() {
			return s, nil
		}
		s.frame++
		return s, nextFrame()
	case tea.KeyPressMsg:
		return s, s.leave()
	}
	return s, nil
}

func (s *Splash) revealed() bool { return s.frame >= revealFrame }

func (s *Splash) leave() tea.Cmd {
	if s.left {
		return nil
	}
	s.left = true
	next := s.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// heading is the needle glyph for the current frame.
func (s *Splash) heading() string {
	if s.frame >= spinFrames {
		return needle[0]
	}
	return needle[s.frame%len(needle)]
}

func (s *Splash) compass() string {
	color := theme.Primary
	if s.frame >= spinFrames {
		color = theme.Highlight
	}
	glyph := lipgloss.NewStyle().Foreground(color).Bold(true).Render(s.heading())
	rose := lipgloss.NewStyle().Foreground(theme.Border)
	return strings.Join([]string{
		"      N",
		rose.Render("   ╭─────╮"),
		fmt.Sprintf(" W %s  %s  %s E", rose.Render("│"), glyph, rose.Render("│")),
		rose.Render("   ╰─────╯"),
		"      S",
	}, "\n")
}

func (s *Splash) View(width, height int) string {
	parts := []string{s.compass()}
	if s.revealed() {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}
