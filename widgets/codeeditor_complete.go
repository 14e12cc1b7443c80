package widgets

import (
	"sort"
	"strings"
	"unicode"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

const (
	completeMaxRows   = 6
	completeMinPrefix = 2
	completeMinWord   = 3
)

// completion is the open suggestion popup.
type completion struct {
	prefix string
	items  []string
	sel    int
}

func isWordRune(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

// wordBeforeCaret returns the identifier fragment ending at the caret.
func (e *CodeEditor) wordBeforeCaret() string {
	line := []rune(e.Lines[e.CaretY])
	i := e.CaretX
	for i > 0 && isWordRune(line[i-1]) {
		i--
	}
	return string(line[i:e.CaretX])
}

// Candidates returns keywords and buffer words starting with prefix, sorted,
// excluding prefix itself.
func (e *CodeEditor) Candidates(prefix string) []string {
	seen := map[string]bool{prefix: true}
	var out []string
	add := func(w string) {
		if seen[w] || !strings.HasPrefix(w, prefix) {
			return
		}
		seen[w] = true
		out = append(out, w)
	}
	for _, k := range e.Keywords {
		add(k)
	}
	for _, line := range e.Lines {
		for _, w := range strings.FieldsFunc(line, func(r rune) bool { return !isWordRune(r) }) {
			if len([]rune(w)) >= completeMinWord {
				add(w)
			}
		}
	}
	sort.Strings(out)
	return out
}

// openCompletion refreshes the popup for the word at the caret. forced
// ignores the minimum prefix length.
func (e *CodeEditor) openCompletion(forced bool) {
	prefix := e.wordBeforeCaret()
	if !forced && len([]rune(prefix)) < completeMinPrefix {
		e.comp = nil
		return
	}
	items := e.Candidates(prefix)
	if len(items) == 0 {
		e.comp = nil
		return
	}
	e.comp = &completion{prefix: prefix, items: items}
}

// Completions returns the open suggestions, or nil.
func (e *CodeEditor) Completions() []string {
	if e.comp == nil {
		return nil
	}
	return e.comp.items
}

// acceptCompletion replaces the typed prefix with the selected suggestion.
func (e *CodeEditor) acceptCompletion() {
	c := e.comp
	e.comp = nil
	if c == nil || c.sel >= len(c.items) {
		return
	}
	rest := strings.TrimPrefix(c.items[c.sel], c.prefix)
	if rest != "" {
		e.InsertText(rest)
	}
}

func (e *CodeEditor) completionKey(k host.Key) bool {
	c := e.comp
	switch k {
	case host.KeyUp:
		c.sel = (c.sel - 1 + len(c.items)) % len(c.items)
	case host.KeyDown:
		c.sel = (c.sel + 1) % len(c.items)
	case host.KeyEnter, host.KeyTab:
		e.acceptCompletion()
	case host.KeyEscape:
		e.comp = nil
	default:
		return false
	}
	return true
}

func (e *CodeEditor) OverlayLayer() core.Layer { return core.LayerAutocomplete }
func (e *CodeEditor) OverlayVisible() bool     { return e.comp != nil && e.IsFocused() }

// DropdownBounds places the popup under the caret, or above it near the
// bottom of the screen.
func (e *CodeEditor) DropdownBounds() core.Rect {
	if e.comp == nil {
		return core.Rect{}
	}
	rows := min(len(e.comp.items), completeMaxRows)
	w := 0
	for _, it := range e.comp.items {
		w = max(w, core.TextWidth(it))
	}
	a := e.caretCell
	if a.Empty() {
		b := core.Bounds(e)
		a = core.Rect{X: b.X, Y: b.Y, W: 1, H: 1}
	}
	r := core.Rect{X: a.X, Y: a.Y + 1, W: w + 2, H: rows}
	if r.Bottom() > core.Bounds(e).Bottom() && a.Y-rows >= 1 {
		r.Y = a.Y - rows
	}
	return r
}

func (e *CodeEditor) DrawOverlay(_ *core.Context, p *core.Painter) {
	r := e.DropdownBounds()
	off := max(e.comp.sel-r.H+1, 0)
	for i := 0; i < r.H; i++ {
		idx := off + i
		if idx >= len(e.comp.items) {
			break
		}
		fg, bg := Theme.Text, Theme.Border
		if idx == e.comp.sel {
			fg, bg = Theme.SelectionFg, Theme.SelectionBg
		}
		p.HLine(r.X, r.Y+i, r.W, ' ', fg, bg)
		p.Text(r.X+1, r.Y+i, e.comp.items[idx], fg, bg)
	}
}

// DropdownClick accepts the clicked suggestion.
func (e *CodeEditor) DropdownClick(_ *core.Context, ev core.ClickEvent) bool {
	r := e.DropdownBounds()
	off := max(e.comp.sel-r.H+1, 0)
	if idx := off + ev.Y - r.Y; idx < len(e.comp.items) {
		e.comp.sel = idx
		e.acceptCompletion()
	}
	return true
}

func (e *CodeEditor) CloseDropdown(*core.Context) { e.comp = nil }
