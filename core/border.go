package core

import (
	"strings"

	"github.com/framegrace/cellkit/host"
)

// BorderStyle selects a box-drawing charset.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderRounded
	BorderThick
)

// Glyphs is a border charset: h, v, tl, tr, bl, br.
type Glyphs [6]rune

var borderGlyphs = map[BorderStyle]Glyphs{
	BorderSingle:  {'─', '│', '┌', '┐', '└', '┘'},
	BorderDouble:  {'═', '║', '╔', '╗', '╚', '╝'},
	BorderRounded: {'─', '│', '╭', '╮', '╰', '╯'},
	BorderThick:   {'━', '┃', '┏', '┓', '┗', '┛'},
}

// Glyphs returns the charset for s; BorderNone yields blanks.
func (s BorderStyle) Glyphs() Glyphs {
	if g, ok := borderGlyphs[s]; ok {
		return g
	}
	return Glyphs{' ', ' ', ' ', ' ', ' ', ' '}
}

// Inset is the number of cells the border takes on each edge.
func (s BorderStyle) Inset() int {
	if s == BorderNone {
		return 0
	}
	return 1
}

// ParseBorderStyle maps a config name to a style. Unknown names mean none.
func ParseBorderStyle(name string) BorderStyle {
	switch strings.ToLower(name) {
	case "single":
		return BorderSingle
	case "double":
		return BorderDouble
	case "rounded":
		return BorderRounded
	case "thick":
		return BorderThick
	}
	return BorderNone
}

// DrawBorder outlines r using blit runs for the top and bottom edges.
func DrawBorder(p *Painter, r Rect, style BorderStyle, fg, bg host.Color) {
	if style == BorderNone || r.W < 2 || r.H < 2 {
		return
	}
	g := style.Glyphs()
	row := make([]rune, r.W)
	for i := range row {
		row[i] = g[0]
	}
	fgs, bgs := []host.Color{fg}, []host.Color{bg}

	row[0], row[r.W-1] = g[2], g[3]
	p.Blit(r.X, r.Y, row, fgs, bgs)
	row[0], row[r.W-1] = g[4], g[5]
	p.Blit(r.X, r.Bottom(), row, fgs, bgs)

	for y := r.Y + 1; y < r.Bottom(); y++ {
		p.Cell(r.X, y, g[1], fg, bg)
		p.Cell(r.Right(), y, g[1], fg, bg)
	}
}

// DrawTitle writes title on the top edge of r, centred or left-aligned one
// cell in from the corner.
func DrawTitle(p *Painter, r Rect, title string, center bool, fg, bg host.Color) {
	if title == "" || r.W < 4 {
		return
	}
	title = " " + TruncateText(title, r.W-4) + " "
	x := r.X + 1
	if center {
		x = r.X + (r.W-TextWidth(title))/2
	}
	p.Text(x, r.Y, title, fg, bg)
}
