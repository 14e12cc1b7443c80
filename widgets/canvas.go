package widgets

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

type canvasCell struct {
	ch     rune
	fg, bg host.Color
}

// CanvasConfig configures a Canvas. Default size is 20x10.
type CanvasConfig struct {
	core.Config
	// OnPaint, when set, runs before every render so the canvas can be
	// redrawn from application state.
	OnPaint func(c *Canvas)
}

// Canvas is a cell buffer the application draws into with 1-indexed,
// widget-local coordinates. Writes outside the canvas are ignored.
type Canvas struct {
	core.BaseWidget
	OnPaint func(c *Canvas)

	cells []canvasCell
	w, h  int
}

func NewCanvas(cfg CanvasConfig) *Canvas {
	c := &Canvas{OnPaint: cfg.OnPaint}
	c.Init(cfg.Config, 20, 10)
	c.ensure()
	return c
}

// ensure resizes the buffer to the widget, keeping the overlapping part.
func (c *Canvas) ensure() {
	if c.w == c.Width && c.h == c.Height {
		return
	}
	cells := make([]canvasCell, c.Width*c.Height)
	for y := 0; y < min(c.h, c.Height); y++ {
		for x := 0; x < min(c.w, c.Width); x++ {
			cells[y*c.Width+x] = c.cells[y*c.w+x]
		}
	}
	c.cells, c.w, c.h = cells, c.Width, c.Height
}

func (c *Canvas) index(x, y int) int {
	c.ensure()
	if x < 1 || y < 1 || x > c.w || y > c.h {
		return -1
	}
	return (y-1)*c.w + x - 1
}

// Set writes one cell.
func (c *Canvas) Set(x, y int, ch rune, fg, bg host.Color) {
	if i := c.index(x, y); i >= 0 {
		c.cells[i] = canvasCell{ch, fg, bg}
	}
}

// At returns the cell at (x, y); unset cells read as a blank rune 0.
func (c *Canvas) At(x, y int) (rune, host.Color, host.Color) {
	if i := c.index(x, y); i >= 0 {
		cl := c.cells[i]
		return cl.ch, cl.fg, cl.bg
	}
	return 0, 0, 0
}

// Plot paints a solid block of colour at (x, y).
func (c *Canvas) Plot(x, y int, col host.Color) { c.Set(x, y, ' ', col, col) }

// Line plots the cells between two points (Bresenham).
func (c *Canvas) Line(x0, y0, x1, y1 int, col host.Color) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		c.Plot(x0, y0, col)
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

// Rect outlines r; FillRect paints it solid.
func (c *Canvas) Rect(r core.Rect, col host.Color) {
	c.Line(r.X, r.Y, r.Right(), r.Y, col)
	c.Line(r.X, r.Bottom(), r.Right(), r.Bottom(), col)
	c.Line(r.X, r.Y, r.X, r.Bottom(), col)
	c.Line(r.Right(), r.Y, r.Right(), r.Bottom(), col)
}

func (c *Canvas) FillRect(r core.Rect, col host.Color) {
	for y := r.Y; y <= r.Bottom(); y++ {
		for x := r.X; x <= r.Right(); x++ {
			c.Plot(x, y, col)
		}
	}
}

// Text writes s one rune per cell.
func (c *Canvas) Text(x, y int, s string, fg, bg host.Color) {
	for _, r := range s {
		c.Set(x, y, r, fg, bg)
		x++
	}
}

func (c *Canvas) Clear() {
	c.ensure()
	clear(c.cells)
}

func (c *Canvas) Render(p *core.Painter) {
	if c.OnPaint != nil {
		c.OnPaint(c)
	}
	c.ensure()
	fg, bg := c.Colors(Theme.Text, Theme.Surface)
	r := core.Bounds(c)
	chars := make([]rune, c.w)
	fgs := make([]host.Color, c.w)
	bgs := make([]host.Color, c.w)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			chars[x], fgs[x], bgs[x] = cl.ch, cl.fg.Or(fg), cl.bg.Or(bg)
			if chars[x] == 0 {
				chars[x] = ' '
			}
		}
		p.Blit(r.X, r.Y+y, chars, fgs, bgs)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
