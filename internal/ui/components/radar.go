package components

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/ui/theme"
)

// RadarChart draws one spoke per value on a character canvas. Values are
// plotted on [0, Max]; grid rings are drawn at every whole step.
type RadarChart struct {
	Labels []string
	Values []float64
	Max    float64

	// Radius is the chart radius in rows. Columns are doubled to compensate
	// for the cell aspect ratio.
	Radius int

	// Emphasis marks spokes whose labels are highlighted.
	Emphasis map[int]bool
}

// NewRadarChart creates a chart with the default radius.
func NewRadarChart(labels []string, values []float64, max float64) RadarChart {
	return RadarChart{Labels: labels, Values: values, Max: max, Radius: 7}
}

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellGrid
	cellData
	cellVertex
	cellLabel
	cellLabelEmphasis
)

// wideTail marks the second column of a double-width rune.
const wideTail rune = -1

type canvas struct {
	w, h  int
	runes [][]rune
	kinds [][]cellKind
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, runes: make([][]rune, h), kinds: make([][]cellKind, h)}
	for y := range h {
		c.runes[y] = make([]rune, w)
		c.kinds[y] = make([]cellKind, w)
		for x := range w {
			c.runes[y][x] = ' '
		}
	}
	return c
}

// set writes r unless a cell of higher kind is already there.
func (c *canvas) set(x, y int, r rune, k cellKind) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	if c.kinds[y][x] > k || c.runes[y][x] == wideTail {
		return
	}
	c.runes[y][x] = r
	c.kinds[y][x] = k
}

func (c *canvas) line(x0, y0, x1, y1 int, r rune, k cellKind) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, r, k)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// text writes s starting at column x. Labels always win over chart cells.
func (c *canvas) text(x, y int, s string, k cellKind) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if x >= 0 && x+w <= c.w {
			c.runes[y][x] = r
			c.kinds[y][x] = k
			if w == 2 {
				c.runes[y][x+1] = wideTail
				c.kinds[y][x+1] = k
			}
		}
		x += w
	}
}

func (c *canvas) render() string {
	styles := map[cellKind]lipgloss.Style{
		cellEmpty:         lipgloss.NewStyle(),
		cellGrid:          lipgloss.NewStyle().Foreground(theme.Border),
		cellData:          lipgloss.NewStyle().Foreground(theme.Primary),
		cellVertex:        lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true),
		cellLabel:         lipgloss.NewStyle().Foreground(theme.Text),
		cellLabelEmphasis: lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true),
	}

	lines := make([]string, c.h)
	for y := range c.h {
		var line, run strings.Builder
		kind := cellEmpty
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(styles[kind].Render(run.String()))
				run.Reset()
			}
		}
		for x := range c.w {
			r := c.runes[y][x]
			if r == wideTail {
				continue
			}
			if c.kinds[y][x] != kind {
				flush()
				kind = c.kinds[y][x]
			}
			run.WriteRune(r)
		}
		flush()
		lines[y] = strings.TrimRight(line.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// View renders the chart.
func (r RadarChart) View() string {
	n := len(r.Values)
	if n < 3 || r.Max <= 0 {
		return ""
	}
	radius := r.Radius
	if radius < 3 {
		radius = 3
	}

	labelW := 0
	for _, l := range r.Labels {
		labelW = max(labelW, lipgloss.Width(l))
	}

	w := 4*radius + 1 + 2*(labelW+2)
	h := 2*radius + 3
	cx := labelW + 2 + 2*radius
	cy := radius + 1
	c := newCanvas(w, h)

	at := func(i int, frac float64) (int, int) {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		rr := frac * float64(radius)
		return cx + int(math.Round(math.Cos(angle)*rr*2)), cy + int(math.Round(math.Sin(angle)*rr))
	}

	// Grid: spokes plus one ring per whole step.
	for i := range n {
		x, y := at(i, 1)
		c.line(cx, cy, x, y, '·', cellGrid)
	}
	for level := 1; level <= int(r.Max); level++ {
		frac := float64(level) / r.Max
		for i := range n {
			x0, y0 := at(i, frac)
			x1, y1 := at((i+1)%n, frac)
			c.line(x0, y0, x1, y1, '·', cellGrid)
		}
	}

	// Data polygon.
	frac := func(v float64) float64 {
		return math.Max(0, math.Min(v, r.Max)) / r.Max
	}
	for i := range n {
		x0, y0 := at(i, frac(r.Values[i]))
		x1, y1 := at((i+1)%n, frac(r.Values[(i+1)%n]))
		c.line(x0, y0, x1, y1, '•', cellData)
	}
	for i := range n {
		x, y := at(i, frac(r.Values[i]))
		c.set(x, y, '◆', cellVertex)
	}

	// Labels just outside the outer ring.
	for i := 0; i < n && i < len(r.Labels); i++ {
		label := r.Labels[i]
		lw := lipgloss.Width(label)
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		cos, sin := math.Cos(angle), math.Sin(angle)
		x, y := at(i, 1)

		switch {
		case sin < -0.9:
			y--
		case sin > 0.9:
			y++
		}
		switch {
		case cos > 0.2:
			x += 2
		case cos < -0.2:
			x -= lw + 1
		default:
			x -= lw / 2
		}

		kind := cellLabel
		if r.Emphasis[i] {
			kind = cellLabelEmphasis
		}
		c.text(x, y, label, kind)
	}

	return c.render()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
