package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-expanse/internal/scene"
)

// Default virtual pixel size of one terminal cell. Cells are roughly twice
// as tall as they are wide.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

type cell struct {
	ch    rune
	fg    scene.Color
	bg    scene.Color
	hasFg bool
	hasBg bool
	bold  bool
}

// Canvas is a scene.Surface over a grid of terminal cells. Each cell covers
// CellWidth×CellHeight virtual pixels; the render loop draws in virtual
// pixels and never sees the grid.
type Canvas struct {
	scene.TransformStack

	cols, rows   int
	cellW, cellH float64
	cells        []cell
	background   scene.Color
}

// NewCanvas creates a canvas of cols×rows cells.
func NewCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	c := &Canvas{cellW: cellW, cellH: cellH, background: scene.Background}
	c.Resize(cols, rows)
	return c
}

// Resize changes the grid size. The next Clear wipes the contents.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]cell, cols*rows)
	c.wipe()
}

// Grid returns the grid size in cells.
func (c *Canvas) Grid() (cols, rows int) {
	return c.cols, c.rows
}

// CellToPixel maps a cell to the virtual pixel at its center.
func (c *Canvas) CellToPixel(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * c.cellW, (float64(row) + 0.5) * c.cellH
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols) * c.cellW, float64(c.rows) * c.cellH
}

func (c *Canvas) Clear() {
	c.ResetTransform()
	c.wipe()
}

func (c *Canvas) wipe() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' '}
	}
}

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

func (c *Canvas) FillCircle(x, y, r float64, paint scene.Paint) {
	t := c.Current()
	dx, dy := t.Apply(x, y)
	rx, ry := r*math.Abs(t.SX), r*math.Abs(t.SY)
	if rx <= 0 || ry <= 0 {
		return
	}

	c0, c1 := int(math.Floor((dx-rx)/c.cellW)), int(math.Floor((dx+rx)/c.cellW))
	r0, r1 := int(math.Floor((dy-ry)/c.cellH)), int(math.Floor((dy+ry)/c.cellH))
	filled := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			px, py := c.CellToPixel(col, row)
			nx, ny := (px-dx)/rx, (py-dy)/ry
			if nx*nx+ny*ny > 1 {
				continue
			}
			ux, uy := t.Invert(px, py)
			c.paintCell(col, row, paint.At(ux, uy))
			filled = true
		}
	}

	// Bodies smaller than a cell still get one.
	if !filled {
		ux, uy := t.Invert(dx, dy)
		c.paintCell(int(math.Floor(dx/c.cellW)), int(math.Floor(dy/c.cellH)), paint.At(ux, uy))
	}
}

func (c *Canvas) paintCell(col, row int, color scene.Color) {
	cl := c.at(col, row)
	if cl == nil {
		return
	}
	under := c.background
	if cl.hasBg {
		under = cl.bg
	}
	cl.bg = color.Over(under)
	cl.hasBg = true
}

func (c *Canvas) StrokeCircle(x, y, r float64, stroke scene.Stroke) {
	t := c.Current()
	dx, dy := t.Apply(x, y)
	rx, ry := r*math.Abs(t.SX), r*math.Abs(t.SY)
	if rx <= 0 && ry <= 0 {
		return
	}

	glyph := '·'
	if stroke.Width >= 3 {
		glyph = '•'
	}

	// Roughly two samples per cell along the circumference.
	steps := int(2 * math.Pi * math.Max(rx, ry) / (c.cellW / 2))
	if steps < 16 {
		steps = 16
	}
	if steps > 720 {
		steps = 720
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		px := dx + rx*math.Cos(theta)
		py := dy + ry*math.Sin(theta)
		cl := c.at(int(math.Floor(px/c.cellW)), int(math.Floor(py/c.cellH)))
		if cl == nil {
			continue
		}
		cl.ch = glyph
		cl.fg = stroke.Color
		cl.hasFg = true
		cl.bold = stroke.Glow > 0
	}
}

func (c *Canvas) FillText(x, y float64, text string, style scene.TextStyle) {
	dx, dy := c.Current().Apply(x, y)
	runes := []rune(text)
	col := int(math.Floor(dx / c.cellW))
	switch style.Align {
	case scene.AlignCenter:
		col -= len(runes) / 2
	case scene.AlignRight:
		col -= len(runes)
	}
	row := int(math.Floor(dy / c.cellH))

	for i, r := range runes {
		cl := c.at(col+i, row)
		if cl == nil {
			continue
		}
		cl.ch = r
		cl.fg = style.Color
		cl.hasFg = true
		cl.bold = style.Bold
	}
}

// Cell returns the rune and colours of a cell, for tests and dumps.
func (c *Canvas) Cell(col, row int) (ch rune, fg, bg scene.Color, ok bool) {
	cl := c.at(col, row)
	if cl == nil {
		return 0, scene.Color{}, scene.Color{}, false
	}
	return cl.ch, cl.fg, cl.bg, true
}

// Plain renders the grid as bare runes; filled cells without a glyph
// become '█'.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			switch {
			case cl.ch != ' ':
				b.WriteRune(cl.ch)
			case cl.hasBg:
				b.WriteRune('█')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

// Render renders the grid with lipgloss colours. Runs of cells with the
// same style share one styled segment.
func (c *Canvas) Render() string {
	var b strings.Builder
	var run strings.Builder

	for row := 0; row < c.rows; row++ {
		var cur cell
		started := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(c.style(cur).Render(run.String()))
			run.Reset()
		}

		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			if !started || !sameStyle(cl, cur) {
				flush()
				cur = cl
				started = true
			}
			run.WriteRune(cl.ch)
		}
		flush()
		if row < c.rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func sameStyle(a, b cell) bool {
	return a.hasFg == b.hasFg && a.hasBg == b.hasBg && a.bold == b.bold &&
		(!a.hasFg || a.fg == b.fg) && (!a.hasBg || a.bg == b.bg)
}

func (c *Canvas) style(cl cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	under := c.background
	if cl.hasBg {
		s = s.Background(lipgloss.Color(cl.bg.Hex()))
		under = cl.bg
	}
	if cl.hasFg {
		s = s.Foreground(lipgloss.Color(cl.fg.Over(under).Hex()))
	}
	if cl.bold {
		s = s.Bold(true)
	}
	return s
}
