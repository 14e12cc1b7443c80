package scroll

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// Orientation of a scrollbar.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

const (
	trackGlyph = '░'
	thumbGlyph = '█'
)

// ScrollBarConfig configures NewScrollBar.
type ScrollBarConfig struct {
	core.Config
	Orientation Orientation
	Max         int
	Page        int
	ThumbFg     host.Color
	OnChange    func(v int)
}

// ScrollBar shows and edits an offset in [0, Max]. Page is the visible
// length and sizes the thumb.
type ScrollBar struct {
	core.BaseWidget
	Orientation Orientation
	Value       int
	Max         int
	Page        int
	ThumbFg     host.Color
	OnChange    func(v int)
}

// NewScrollBar creates a bar; length defaults to 1 on both axes.
func NewScrollBar(cfg ScrollBarConfig) *ScrollBar {
	s := &ScrollBar{Orientation: cfg.Orientation, Max: max(cfg.Max, 0), Page: cfg.Page, ThumbFg: cfg.ThumbFg, OnChange: cfg.OnChange}
	s.Init(cfg.Config, 1, 1)
	return s
}

func (s *ScrollBar) length() int {
	if s.Orientation == Horizontal {
		return s.Width
	}
	return s.Height
}

// Thumb returns the thumb's offset from the start of the track and its size.
func (s *ScrollBar) Thumb() (pos, size int) {
	n := s.length()
	if n <= 0 {
		return 0, 0
	}
	if s.Max <= 0 {
		return 0, n
	}
	page := max(s.Page, 1)
	size = core.Clamp(n*page/(s.Max+page), 1, n)
	pos = (n - size) * s.Value / s.Max
	return pos, size
}

// SetValue clamps v to [0, Max] and fires OnChange when it changes.
func (s *ScrollBar) SetValue(v int) {
	v = core.Clamp(v, 0, s.Max)
	if v == s.Value {
		return
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

func (s *ScrollBar) Render(p *core.Painter) {
	fg, bg := s.Colors(host.Gray, host.Black)
	thumbFg := s.ThumbFg.Or(host.LightGray)
	r := core.Bounds(s)
	pos, size := s.Thumb()
	n := s.length()
	chars := make([]rune, n)
	fgs := make([]host.Color, n)
	for i := range chars {
		chars[i], fgs[i] = trackGlyph, fg
		if i >= pos && i < pos+size {
			chars[i], fgs[i] = thumbGlyph, thumbFg
		}
	}
	if s.Orientation == Horizontal {
		p.Blit(r.X, r.Y, chars, fgs, []host.Color{bg})
		return
	}
	for i, ch := range chars {
		p.Cell(r.X, r.Y+i, ch, fgs[i], bg)
	}
}

// valueAt maps a screen position on the track to a value.
func (s *ScrollBar) valueAt(x, y int) int {
	r := core.Bounds(s)
	off := y - r.Y
	if s.Orientation == Horizontal {
		off = x - r.X
	}
	_, size := s.Thumb()
	span := s.length() - size
	if span <= 0 {
		return 0
	}
	off -= size / 2
	return core.Clamp((off*s.Max+span/2)/span, 0, s.Max)
}

func (s *ScrollBar) Click(_ *core.Context, ev core.ClickEvent) {
	s.SetValue(s.valueAt(ev.X, ev.Y))
}

func (s *ScrollBar) HandleDrag(_ *core.Context, x, y int) {
	s.SetValue(s.valueAt(x, y))
}

func (s *ScrollBar) HandleRelease(*core.Context, int, int) {}

func (s *ScrollBar) HandleScroll(_ *core.Context, dir, _, _ int) bool {
	before := s.Value
	s.SetValue(s.Value + dir)
	return s.Value != before
}
