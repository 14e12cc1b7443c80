package widgets

import (
	"strings"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// HandleKey implements keyboard editing, selection, and clipboard operations.
func (e *CodeEditor) HandleKey(_ *core.Context, k host.Key, mod host.ModMask) bool {
	if e.comp != nil && e.completionKey(k) {
		return true
	}

	// ESC clears selection
	if k == host.KeyEscape {
		if e.hasSelection() {
			e.clearSelection()
			return true
		}
		return false
	}

	switch k {
	case host.KeyCtrlA:
		e.SelectAll()
		return true
	case host.KeyCtrlC:
		if e.hasSelection() {
			e.clip = e.SelectedText()
		}
		return true
	case host.KeyCtrlX:
		if e.hasSelection() {
			e.clip = e.SelectedText()
			e.deleteSelection()
			e.afterEdit()
		}
		return true
	case host.KeyCtrlV:
		if e.clip != "" {
			e.InsertText(e.clip)
		}
		return true
	case host.KeyCtrlK:
		e.deleteLine()
		return true
	case host.KeyCtrlSpace:
		e.openCompletion(true)
		return true
	}

	prevX, prevY := e.CaretX, e.CaretY
	switch k {
	case host.KeyLeft:
		if e.CaretX > 0 {
			e.CaretX--
		} else if e.CaretY > 0 {
			e.CaretY--
			e.CaretX = len([]rune(e.Lines[e.CaretY]))
		}
	case host.KeyRight:
		if e.CaretX < len([]rune(e.Lines[e.CaretY])) {
			e.CaretX++
		} else if e.CaretY < len(e.Lines)-1 {
			e.CaretY++
			e.CaretX = 0
		}
	case host.KeyUp:
		e.moveVertical(-1)
	case host.KeyDown:
		e.moveVertical(1)
	case host.KeyPageUp:
		e.moveVertical(-max(e.Height-1, 1))
	case host.KeyPageDown:
		e.moveVertical(max(e.Height-1, 1))
	case host.KeyHome:
		if mod&host.ModCtrl != 0 {
			e.CaretX, e.CaretY = 0, 0
			break
		}
		// first press goes to the indent, the second to column 0
		ind := len([]rune(e.indentOf(e.CaretY)))
		if e.CaretX == ind {
			e.CaretX = 0
		} else {
			e.CaretX = ind
		}
	case host.KeyEnd:
		if mod&host.ModCtrl != 0 {
			e.CaretY = len(e.Lines) - 1
		}
		e.CaretX = len([]rune(e.Lines[e.CaretY]))
	case host.KeyEnter:
		ind := e.indentOf(e.CaretY)
		if e.hasSelection() {
			e.deleteSelection()
		}
		e.splitLine()
		if ind != "" {
			e.Lines[e.CaretY] = ind + e.Lines[e.CaretY]
			e.CaretX = len([]rune(ind))
		}
		e.afterEdit()
		return true
	case host.KeyBackspace:
		return e.backspace()
	case host.KeyDelete:
		return e.deleteForward()
	case host.KeyTab:
		e.indent()
		return true
	case host.KeyBacktab:
		e.dedent()
		return true
	default:
		// Not handled
		return false
	}

	// Update selection after movement keys
	if mod&host.ModShift != 0 {
		if !e.selActive {
			e.selActive = true
			e.selSX, e.selSY = prevX, prevY
		}
		e.selEX, e.selEY = e.CaretX, e.CaretY
	} else {
		e.clearSelection()
	}
	e.comp = nil
	e.clampCaret()
	e.ensureVisible()
	return true
}

// HandleChar inserts printable input and refreshes completion.
func (e *CodeEditor) HandleChar(_ *core.Context, r rune) bool {
	if r < ' ' {
		return false
	}
	e.InsertText(string(r))
	if isWordRune(r) {
		e.openCompletion(false)
	} else {
		e.comp = nil
	}
	return true
}

func (e *CodeEditor) afterEdit() {
	e.clampCaret()
	e.ensureVisible()
	e.edited()
}

// moveVertical keeps the display column across lines of different length.
func (e *CodeEditor) moveVertical(n int) {
	col := e.column(e.CaretY, e.CaretX)
	e.CaretY = core.Clamp(e.CaretY+n, 0, len(e.Lines)-1)
	e.CaretX = e.indexAt(e.CaretY, col)
}

func (e *CodeEditor) backspace() bool {
	if e.hasSelection() {
		e.deleteSelection()
		e.afterEdit()
		return true
	}
	if e.CaretX > 0 {
		line := []rune(e.Lines[e.CaretY])
		e.Lines[e.CaretY] = string(append(line[:e.CaretX-1], line[e.CaretX:]...))
		e.CaretX--
	} else if e.CaretY > 0 {
		prev := e.Lines[e.CaretY-1]
		e.CaretX = len([]rune(prev))
		e.Lines[e.CaretY-1] = prev + e.Lines[e.CaretY]
		e.Lines = append(e.Lines[:e.CaretY], e.Lines[e.CaretY+1:]...)
		e.CaretY--
	} else {
		return false
	}
	e.afterEdit()
	if e.comp != nil {
		e.openCompletion(false)
	}
	return true
}

func (e *CodeEditor) deleteForward() bool {
	if e.hasSelection() {
		e.deleteSelection()
		e.afterEdit()
		return true
	}
	line := []rune(e.Lines[e.CaretY])
	switch {
	case e.CaretX < len(line):
		e.Lines[e.CaretY] = string(append(line[:e.CaretX], line[e.CaretX+1:]...))
	case e.CaretY < len(e.Lines)-1:
		e.Lines[e.CaretY] += e.Lines[e.CaretY+1]
		e.Lines = append(e.Lines[:e.CaretY+1], e.Lines[e.CaretY+2:]...)
	default:
		return false
	}
	e.afterEdit()
	return true
}

// deleteLine removes the caret line into the clipboard.
func (e *CodeEditor) deleteLine() {
	e.clearSelection()
	e.clip = e.Lines[e.CaretY] + "\n"
	if len(e.Lines) == 1 {
		e.Lines[0] = ""
	} else {
		e.Lines = append(e.Lines[:e.CaretY], e.Lines[e.CaretY+1:]...)
	}
	e.CaretX = 0
	e.afterEdit()
}

// selectedLines returns the line span touched by the selection, or the
// caret line.
func (e *CodeEditor) selectedLines() (int, int) {
	if !e.hasSelection() {
		return e.CaretY, e.CaretY
	}
	_, sy, ex, ey := e.selRange()
	if ex == 0 && ey > sy {
		ey--
	}
	return sy, ey
}

// indent inserts one indent unit at the caret, or in front of every selected
// line.
func (e *CodeEditor) indent() {
	unit := e.indentUnit()
	if !e.hasSelection() {
		e.InsertText(unit)
		return
	}
	from, to := e.selectedLines()
	for y := from; y <= to; y++ {
		e.Lines[y] = unit + e.Lines[y]
	}
	n := len([]rune(unit))
	if e.selSY >= from && e.selSY <= to {
		e.selSX += n
	}
	if e.selEY >= from && e.selEY <= to {
		e.selEX += n
	}
	e.CaretX += n
	e.afterEdit()
}

// dedent removes up to one indent unit from the selected lines.
func (e *CodeEditor) dedent() {
	from, to := e.selectedLines()
	changed := false
	for y := from; y <= to; y++ {
		line := e.Lines[y]
		n := 0
		switch {
		case strings.HasPrefix(line, "\t"):
			n = 1
		default:
			for n < e.TabWidth && n < len(line) && line[n] == ' ' {
				n++
			}
		}
		if n == 0 {
			continue
		}
		e.Lines[y] = line[n:]
		changed = true
		if y == e.CaretY {
			e.CaretX = max(e.CaretX-n, 0)
		}
		if y == e.selSY {
			e.selSX = max(e.selSX-n, 0)
		}
		if y == e.selEY {
			e.selEX = max(e.selEX-n, 0)
		}
	}
	if changed {
		e.afterEdit()
	}
}
