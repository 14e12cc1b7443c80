// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/textbox.go
// Summary: Single-line text input with a horizontally scrolling view.

package widgets

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/mattn/go-runewidth"
)

// TextBoxConfig configures a TextBox. Default size is 20x1.
type TextBoxConfig struct {
	core.Config
	Text        string
	Placeholder string
	// MaxLength limits the rune count; zero means unlimited.
	MaxLength int
	// Mask, when set, is drawn in place of every rune.
	Mask     rune
	OnChange func(text string)
	OnSubmit func(text string)
}

// TextBox is an editable single line of text.
type TextBox struct {
	core.BaseWidget
	Placeholder string
	MaxLength   int
	Mask        rune
	OnChange    func(text string)
	OnSubmit    func(text string)

	text   []rune
	cursor int
	offset int
}

func NewTextBox(cfg TextBoxConfig) *TextBox {
	t := &TextBox{}
	t.init(cfg)
	return t
}

func (t *TextBox) init(cfg TextBoxConfig) {
	t.Init(cfg.Config, 20, 1)
	t.CanFocus = true
	t.Placeholder = cfg.Placeholder
	t.MaxLength = cfg.MaxLength
	t.Mask = cfg.Mask
	t.OnChange = cfg.OnChange
	t.OnSubmit = cfg.OnSubmit
	t.SetText(cfg.Text)
}

func (t *TextBox) Text() string { return string(t.text) }
func (t *TextBox) Cursor() int  { return t.cursor }

// SetText replaces the content and moves the cursor to the end. OnChange is
// not called.
func (t *TextBox) SetText(s string) {
	t.text = []rune(s)
	if t.MaxLength > 0 && len(t.text) > t.MaxLength {
		t.text = t.text[:t.MaxLength]
	}
	t.cursor = len(t.text)
	t.offset = 0
}

func (t *TextBox) changed() {
	if t.OnChange != nil {
		t.OnChange(string(t.text))
	}
}

func (t *TextBox) display(r rune) rune {
	if t.Mask != 0 {
		return t.Mask
	}
	return r
}

func (t *TextBox) width(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += max(runewidth.RuneWidth(t.display(r)), 1)
	}
	return w
}

// scrollToCursor keeps the cursor cell inside a view w cells wide.
func (t *TextBox) scrollToCursor(w int) {
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	for t.offset < t.cursor && t.width(t.text[t.offset:t.cursor]) >= w {
		t.offset++
	}
}

func (t *TextBox) Render(p *core.Painter) {
	fg, bg := t.Colors(Theme.Text, Theme.Border)
	r := core.Bounds(t)
	p.Fill(r, ' ', fg, bg)
	if r.Empty() {
		return
	}
	y := r.Y + (r.H-1)/2
	if len(t.text) == 0 && !t.IsFocused() {
		p.Text(r.X, y, core.TruncateText(t.Placeholder, r.W), Theme.Muted, bg)
		return
	}
	t.scrollToCursor(r.W)
	x := r.X
	for i := t.offset; i < len(t.text) && x <= r.Right(); i++ {
		ch := t.display(t.text[i])
		cf, cb := fg, bg
		if i == t.cursor && t.IsFocused() {
			cf, cb = bg, fg
		}
		p.Cell(x, y, ch, cf, cb)
		x += max(runewidth.RuneWidth(ch), 1)
	}
	if t.cursor == len(t.text) && t.IsFocused() && x <= r.Right() {
		p.Cell(x, y, ' ', bg, fg)
	}
}

func (t *TextBox) Click(_ *core.Context, ev core.ClickEvent) {
	col := ev.LocalX - 1
	i := t.offset
	for i < len(t.text) && t.width(t.text[t.offset:i+1]) <= col {
		i++
	}
	t.cursor = i
}

func (t *TextBox) HandleChar(_ *core.Context, r rune) bool {
	if r < ' ' {
		return false
	}
	if t.MaxLength > 0 && len(t.text) >= t.MaxLength {
		return true
	}
	t.text = append(t.text[:t.cursor], append([]rune{r}, t.text[t.cursor:]...)...)
	t.cursor++
	t.changed()
	return true
}

func (t *TextBox) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	switch k {
	case host.KeyLeft:
		t.cursor = max(t.cursor-1, 0)
	case host.KeyRight:
		t.cursor = min(t.cursor+1, len(t.text))
	case host.KeyHome, host.KeyCtrlA:
		t.cursor = 0
	case host.KeyEnd, host.KeyCtrlE:
		t.cursor = len(t.text)
	case host.KeyBackspace:
		if t.cursor == 0 {
			return true
		}
		t.text = append(t.text[:t.cursor-1], t.text[t.cursor:]...)
		t.cursor--
		t.changed()
	case host.KeyDelete:
		if t.cursor == len(t.text) {
			return true
		}
		t.text = append(t.text[:t.cursor], t.text[t.cursor+1:]...)
		t.changed()
	case host.KeyCtrlU:
		if t.cursor == 0 {
			return true
		}
		t.text = append([]rune(nil), t.text[t.cursor:]...)
		t.cursor = 0
		t.changed()
	case host.KeyCtrlK:
		if t.cursor == len(t.text) {
			return true
		}
		t.text = t.text[:t.cursor]
		t.changed()
	case host.KeyEnter:
		if t.OnSubmit == nil {
			return false
		}
		t.OnSubmit(string(t.text))
	default:
		return false
	}
	return true
}

// PasswordBoxConfig configures a PasswordBox.
type PasswordBoxConfig struct {
	core.Config
	Placeholder string
	MaxLength   int
	// Mask defaults to '•'.
	Mask     rune
	OnChange func(text string)
	OnSubmit func(text string)
}

// PasswordBox is a TextBox that masks its content unless Reveal is set.
type PasswordBox struct {
	TextBox
	Reveal bool
}

func NewPasswordBox(cfg PasswordBoxConfig) *PasswordBox {
	mask := cfg.Mask
	if mask == 0 {
		mask = '•'
	}
	pb := &PasswordBox{}
	pb.init(TextBoxConfig{
		Config:      cfg.Config,
		Placeholder: cfg.Placeholder,
		MaxLength:   cfg.MaxLength,
		Mask:        mask,
		OnChange:    cfg.OnChange,
		OnSubmit:    cfg.OnSubmit,
	})
	return pb
}

func (pb *PasswordBox) Render(p *core.Painter) {
	if !pb.Reveal {
		pb.TextBox.Render(p)
		return
	}
	mask := pb.Mask
	pb.Mask = 0
	defer func() { pb.Mask = mask }()
	pb.TextBox.Render(p)
}
