package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"asteroid-tracker/internal/body"
	"asteroid-tracker/internal/scene"
	"asteroid-tracker/internal/tracker"
)

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2.0

const labelColor scene.Color = 0xffffff

type cell struct {
	ch    rune
	color scene.Color
	bold  bool
	depth float64
	set   bool
}

// Canvas is a character grid with a depth buffer.
type Canvas struct {
	cols, rows int
	cells      []cell
}

// Rasterize draws every registered body as a filled disc, nearest wins.
func Rasterize(v tracker.View, cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	if cols <= 0 || rows <= 0 || v.Camera == nil {
		return c
	}
	for _, b := range v.Bodies {
		c.drawBody(v, b)
	}
	return c
}

func (c *Canvas) drawBody(v tracker.View, b *body.Body) {
	proj, ok := v.Camera.Project(b.Position())
	if !ok {
		return
	}
	cx := (proj.X + 1) / 2 * float64(c.cols)
	cy := (1 - proj.Y) / 2 * float64(c.rows)
	radius := b.Object.Radius() * proj.Scale
	hh := radius * float64(c.rows) / 2
	hw := radius / v.Camera.Aspect * float64(c.cols) / 2

	px := cell{ch: glyph(b), color: displayColor(b), bold: b == v.Hover, depth: proj.Depth, set: true}
	c.plot(int(math.Floor(cx)), int(math.Floor(cy)), px)
	if hh <= 0 || hw <= 0 {
		return
	}
	row0, row1 := span(cy-hh, cy+hh, c.rows)
	col0, col1 := span(cx-hw, cx+hw, c.cols)
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			dx := (float64(col) + 0.5 - cx) / hw
			dy := (float64(row) + 0.5 - cy) / hh
			if dx*dx+dy*dy <= 1 {
				c.plot(col, row, px)
			}
		}
	}
}

// span clips the cell range covering [lo, hi] to [0, n). An empty range
// has first > last.
func span(lo, hi float64, n int) (first, last int) {
	clamp := func(v, min, max float64) float64 { return math.Max(min, math.Min(v, max)) }
	first = int(clamp(math.Floor(lo), 0, float64(n)))
	last = int(clamp(math.Ceil(hi), -1, float64(n-1)))
	return first, last
}

func (c *Canvas) plot(col, row int, px cell) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	cur := &c.cells[row*c.cols+col]
	if cur.set && cur.depth <= px.depth {
		return
	}
	*cur = px
}

// Label writes text starting at col, row above everything else. Text that
// would run off the right edge is shifted left.
func (c *Canvas) Label(col, row int, text string) {
	runes := []rune(text)
	if len(runes) > c.cols {
		runes = runes[:c.cols]
	}
	if col+len(runes) > c.cols {
		col = c.cols - len(runes)
	}
	if col < 0 {
		col = 0
	}
	for i, r := range runes {
		c.plot(col+i, row, cell{ch: r, color: labelColor, depth: math.Inf(-1), set: true})
	}
}

// At returns the rune drawn at col, row, or a space.
func (c *Canvas) At(col, row int) rune {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return ' '
	}
	if px := c.cells[row*c.cols+col]; px.set {
		return px.ch
	}
	return ' '
}

// Render returns the canvas as styled lines, one run per colour.
func (c *Canvas) Render() string {
	styles := make(map[cell]lipgloss.Style)
	var out strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for i := 0; i < len(line); {
			key := styleKey(line[i])
			j := i
			var run strings.Builder
			for j < len(line) && styleKey(line[j]) == key {
				if line[j].set {
					run.WriteRune(line[j].ch)
				} else {
					run.WriteByte(' ')
				}
				j++
			}
			if !key.set {
				out.WriteString(run.String())
			} else {
				st, ok := styles[key]
				if !ok {
					st = lipgloss.NewStyle().Foreground(lipgloss.Color(key.color.Hex())).Bold(key.bold)
					styles[key] = st
				}
				out.WriteString(st.Render(run.String()))
			}
			i = j
		}
	}
	return out.String()
}

func styleKey(px cell) cell {
	return cell{color: px.color, bold: px.bold, set: px.set}
}

func glyph(b *body.Body) rune {
	switch b.Kind {
	case body.KindStar:
		return '@'
	case body.KindPlanet:
		return 'O'
	case body.KindMoon:
		return 'o'
	default:
		if b.IsAsteroid() && b.Asteroid.Danger {
			return '!'
		}
		return '*'
	}
}

// displayColor is the emissive colour when it is lit, else the base colour.
func displayColor(b *body.Body) scene.Color {
	m := b.Object.Material
	if m == nil {
		return labelColor
	}
	if m.SupportsEmissive() && m.Emissive != 0 && m.EmissiveIntensity > 0 {
		return m.Emissive
	}
	return m.Color
}
