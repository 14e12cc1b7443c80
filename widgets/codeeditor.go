// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/codeeditor.go
// Summary: Multi-line source editor with line numbers, syntax colouring,
// selection, clipboard and word completion.
// Notes: CaretX/CaretY are 0-based rune and line indices; OffX/OffY are the
// view offsets in display columns and lines. Tabs expand to TabWidth stops.

package widgets

import (
	"strconv"
	"strings"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/mattn/go-runewidth"
)

// CodeEditorConfig configures a CodeEditor. Default size is 60x20.
type CodeEditorConfig struct {
	core.Config
	Text string
	// Language is a chroma lexer name. Empty selects by Filename, then by
	// content.
	Language string
	Filename string
	// Style is a chroma style name.
	Style       string
	TabWidth    int
	UseTabs     bool
	LineNumbers bool
	// Keywords seed the completion list alongside words from the buffer.
	Keywords []string
	OnChange func()
}

// CodeEditor is a minimal multiline source editor with viewport.
type CodeEditor struct {
	core.BaseWidget
	Lines       []string
	CaretX      int
	CaretY      int
	OffX        int
	OffY        int
	TabWidth    int
	UseTabs     bool
	LineNumbers bool
	Keywords    []string
	OnChange    func()

	filename  string
	styleName string
	language  string
	hl        *highlighter
	colors    [][]host.Color
	dirty     bool
	modified  bool

	// local clipboard
	clip string
	// selection anchor and head, in (x, y) rune coordinates
	selActive    bool
	selSX, selSY int
	selEX, selEY int

	comp *completion
	// caretCell is the caret's on-screen cell recorded during Render.
	caretCell core.Rect
}

func NewCodeEditor(cfg CodeEditorConfig) *CodeEditor {
	e := &CodeEditor{
		TabWidth:    cfg.TabWidth,
		UseTabs:     cfg.UseTabs,
		LineNumbers: cfg.LineNumbers,
		Keywords:    cfg.Keywords,
		OnChange:    cfg.OnChange,
		filename:    cfg.Filename,
		styleName:   cfg.Style,
		language:    cfg.Language,
	}
	if e.TabWidth <= 0 {
		e.TabWidth = 4
	}
	e.Init(cfg.Config, 60, 20)
	e.CanFocus = true
	e.SetText(cfg.Text)
	return e
}

// Text returns the buffer joined with newlines.
func (e *CodeEditor) Text() string { return strings.Join(e.Lines, "\n") }

// SetText replaces the buffer, resets caret, view and selection, and
// clears the modified flag.
func (e *CodeEditor) SetText(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	e.Lines = strings.Split(s, "\n")
	e.CaretX, e.CaretY, e.OffX, e.OffY = 0, 0, 0, 0
	e.clearSelection()
	e.comp = nil
	e.modified = false
	e.rehighlight()
}

func (e *CodeEditor) Modified() bool     { return e.modified }
func (e *CodeEditor) SetModified(m bool) { e.modified = m }
func (e *CodeEditor) Language() string   { return e.language }
func (e *CodeEditor) Filename() string   { return e.filename }
func (e *CodeEditor) LineCount() int     { return len(e.Lines) }

// Cursor returns the 1-based line and column of the caret.
func (e *CodeEditor) Cursor() (line, col int) { return e.CaretY + 1, e.CaretX + 1 }

// SetLanguage switches the lexer. An empty name re-detects from the
// filename and content.
func (e *CodeEditor) SetLanguage(name string) {
	e.language = name
	e.rehighlight()
}

func (e *CodeEditor) SetFilename(name string) {
	e.filename = name
	e.rehighlight()
}

func (e *CodeEditor) SetStyle(name string) {
	e.styleName = name
	e.rehighlight()
}

func (e *CodeEditor) rehighlight() {
	e.hl = newHighlighter(getLexer(e.language, e.filename, e.Text()), chromaStyle(e.styleName))
	e.dirty = true
}

// GotoLine moves the caret to the start of a 1-based line.
func (e *CodeEditor) GotoLine(n int) {
	e.CaretY = n - 1
	e.CaretX = 0
	e.clearSelection()
	e.clampCaret()
	e.ensureVisible()
}

// edited marks the buffer changed after a modification.
func (e *CodeEditor) edited() {
	e.dirty = true
	e.modified = true
	if e.OnChange != nil {
		e.OnChange()
	}
}

func (e *CodeEditor) gutterWidth() int {
	if !e.LineNumbers {
		return 0
	}
	return len(strconv.Itoa(len(e.Lines))) + 2
}

func (e *CodeEditor) textWidth() int { return max(e.Width-e.gutterWidth(), 1) }

func (e *CodeEditor) clampCaret() {
	e.CaretY = core.Clamp(e.CaretY, 0, len(e.Lines)-1)
	e.CaretX = core.Clamp(e.CaretX, 0, len([]rune(e.Lines[e.CaretY])))
}

// column returns the display column of rune index x on line y.
func (e *CodeEditor) column(y, x int) int {
	col := 0
	for i, r := range []rune(e.Lines[y]) {
		if i >= x {
			break
		}
		col += e.runeCells(r, col)
	}
	return col
}

// indexAt returns the rune index on line y nearest to display column col.
func (e *CodeEditor) indexAt(y, col int) int {
	c := 0
	rs := []rune(e.Lines[y])
	for i, r := range rs {
		w := e.runeCells(r, c)
		if c+w > col {
			return i
		}
		c += w
	}
	return len(rs)
}

func (e *CodeEditor) runeCells(r rune, col int) int {
	if r == '\t' {
		return e.TabWidth - col%e.TabWidth
	}
	return max(runewidth.RuneWidth(r), 1)
}

func (e *CodeEditor) ensureVisible() {
	w := e.textWidth()
	col := e.column(e.CaretY, e.CaretX)
	if col < e.OffX {
		e.OffX = col
	}
	if col >= e.OffX+w {
		e.OffX = col - w + 1
	}
	if e.CaretY < e.OffY {
		e.OffY = e.CaretY
	}
	if e.CaretY >= e.OffY+e.Height {
		e.OffY = e.CaretY - e.Height + 1
	}
	e.OffX = max(e.OffX, 0)
	e.OffY = max(e.OffY, 0)
}

func (e *CodeEditor) Render(p *core.Painter) {
	fg, bg := e.Colors(Theme.Text, Theme.Surface)
	r := core.Bounds(e)
	p.Fill(r, ' ', fg, bg)
	if e.dirty {
		e.colors = e.hl.colorize(e.Lines)
		e.dirty = false
	}
	gw := e.gutterWidth()
	tx := r.X + gw
	tw := r.W - gw
	e.caretCell = core.Rect{}

	for row := 0; row < r.H; row++ {
		ly := e.OffY + row
		if ly >= len(e.Lines) {
			break
		}
		y := r.Y + row
		if gw > 0 {
			num := strconv.Itoa(ly + 1)
			nf := Theme.Muted
			if ly == e.CaretY {
				nf = Theme.Text
			}
			p.Text(r.X+gw-2-len(num), y, num, nf, bg)
			p.Cell(r.X+gw-1, y, '│', Theme.Border, bg)
		}
		col := 0
		rs := []rune(e.Lines[ly])
		for i := 0; i <= len(rs); i++ {
			atCaret := e.IsFocused() && ly == e.CaretY && i == e.CaretX
			if i == len(rs) {
				if atCaret && col-e.OffX < tw && col >= e.OffX {
					p.Cell(tx+col-e.OffX, y, ' ', bg, fg)
					e.caretCell = core.Rect{X: tx + col - e.OffX, Y: y, W: 1, H: 1}
				}
				break
			}
			ch := rs[i]
			w := e.runeCells(ch, col)
			cf, cb := fg, bg
			if ly < len(e.colors) && i < len(e.colors[ly]) {
				cf = e.colors[ly][i].Or(fg)
			}
			if e.inSelection(i, ly) {
				cf, cb = Theme.SelectionFg, Theme.SelectionBg
			}
			if atCaret {
				cf, cb = cb, cf
				e.caretCell = core.Rect{X: tx + col - e.OffX, Y: y, W: 1, H: 1}
			}
			if ch == '\t' {
				ch = ' '
			}
			for k := 0; k < w; k++ {
				vx := col + k - e.OffX
				if vx < 0 || vx >= tw {
					continue
				}
				glyph := ch
				if k > 0 {
					glyph = ' '
				}
				if k > 0 && rs[i] != '\t' {
					continue
				}
				p.Cell(tx+vx, y, glyph, cf, cb)
			}
			col += w
		}
	}
}

// Click positions the caret and starts a selection drag.
func (e *CodeEditor) Click(_ *core.Context, ev core.ClickEvent) {
	e.comp = nil
	e.CaretX, e.CaretY = e.positionAt(ev.LocalX, ev.LocalY)
	e.clearSelection()
	e.selSX, e.selSY = e.CaretX, e.CaretY
	e.ensureVisible()
}

func (e *CodeEditor) positionAt(localX, localY int) (int, int) {
	y := core.Clamp(e.OffY+localY-1, 0, len(e.Lines)-1)
	col := max(localX-1-e.gutterWidth(), 0) + e.OffX
	return e.indexAt(y, col), y
}

func (e *CodeEditor) HandleDrag(_ *core.Context, x, y int) {
	r := core.Bounds(e)
	cx, cy := e.positionAt(x-r.X+1, y-r.Y+1)
	e.CaretX, e.CaretY = cx, cy
	e.selActive = cx != e.selSX || cy != e.selSY
	e.selEX, e.selEY = cx, cy
	e.ensureVisible()
}

func (e *CodeEditor) HandleRelease(*core.Context, int, int) {}

func (e *CodeEditor) HandleScroll(_ *core.Context, dir, _, _ int) bool {
	maxOff := max(len(e.Lines)-e.Height, 0)
	next := core.Clamp(e.OffY+dir*3, 0, maxOff)
	if next == e.OffY {
		return maxOff > 0
	}
	e.OffY = next
	return true
}

func (e *CodeEditor) FocusGained(*core.Context) {}
func (e *CodeEditor) FocusLost(*core.Context)   { e.comp = nil }

// InsertText inserts s at the caret, replacing any selection.
func (e *CodeEditor) InsertText(s string) {
	if e.hasSelection() {
		e.deleteSelection()
	}
	for _, r := range s {
		if r == '\n' {
			e.splitLine()
			continue
		}
		line := []rune(e.Lines[e.CaretY])
		line = append(line[:e.CaretX], append([]rune{r}, line[e.CaretX:]...)...)
		e.Lines[e.CaretY] = string(line)
		e.CaretX++
	}
	e.clampCaret()
	e.ensureVisible()
	e.edited()
}

func (e *CodeEditor) splitLine() {
	line := []rune(e.Lines[e.CaretY])
	head, tail := string(line[:e.CaretX]), string(line[e.CaretX:])
	e.Lines[e.CaretY] = head
	e.Lines = append(e.Lines[:e.CaretY+1], append([]string{tail}, e.Lines[e.CaretY+1:]...)...)
	e.CaretY++
	e.CaretX = 0
}

// indentOf returns the leading whitespace of line y.
func (e *CodeEditor) indentOf(y int) string {
	line := e.Lines[y]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func (e *CodeEditor) indentUnit() string {
	if e.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", e.TabWidth)
}

// --- selection ---

func (e *CodeEditor) hasSelection() bool {
	return e.selActive && (e.selSX != e.selEX || e.selSY != e.selEY)
}

func (e *CodeEditor) clearSelection() {
	e.selActive = false
	e.selSX, e.selSY, e.selEX, e.selEY = 0, 0, 0, 0
}

// selRange returns the selection ordered start to end.
func (e *CodeEditor) selRange() (sx, sy, ex, ey int) {
	sx, sy, ex, ey = e.selSX, e.selSY, e.selEX, e.selEY
	if sy > ey || (sy == ey && sx > ex) {
		sx, sy, ex, ey = ex, ey, sx, sy
	}
	return
}

func (e *CodeEditor) inSelection(x, y int) bool {
	if !e.hasSelection() {
		return false
	}
	sx, sy, ex, ey := e.selRange()
	switch {
	case y < sy || y > ey:
		return false
	case sy == ey:
		return x >= sx && x < ex
	case y == sy:
		return x >= sx
	case y == ey:
		return x < ex
	}
	return true
}

func (e *CodeEditor) SelectedText() string {
	if !e.hasSelection() {
		return ""
	}
	sx, sy, ex, ey := e.selRange()
	if sy == ey {
		return string([]rune(e.Lines[sy])[sx:ex])
	}
	var b strings.Builder
	b.WriteString(string([]rune(e.Lines[sy])[sx:]))
	for y := sy + 1; y < ey; y++ {
		b.WriteByte('\n')
		b.WriteString(e.Lines[y])
	}
	b.WriteByte('\n')
	b.WriteString(string([]rune(e.Lines[ey])[:ex]))
	return b.String()
}

func (e *CodeEditor) deleteSelection() {
	sx, sy, ex, ey := e.selRange()
	head := string([]rune(e.Lines[sy])[:sx])
	tail := string([]rune(e.Lines[ey])[ex:])
	e.Lines[sy] = head + tail
	e.Lines = append(e.Lines[:sy+1], e.Lines[ey+1:]...)
	e.CaretX, e.CaretY = sx, sy
	e.clearSelection()
}

// SelectAll selects the whole buffer.
func (e *CodeEditor) SelectAll() {
	last := len(e.Lines) - 1
	e.selActive = true
	e.selSX, e.selSY = 0, 0
	e.selEX, e.selEY = len([]rune(e.Lines[last])), last
	e.CaretX, e.CaretY = e.selEX, e.selEY
	e.ensureVisible()
}
