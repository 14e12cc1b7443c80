// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/combobox.go
// Summary: ComboBox widget combining text input with dropdown list selection.

package widgets

import (
	"strings"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

const comboMaxRows = 8

// ComboBoxConfig configures a ComboBox. Default size is 20x1.
type ComboBoxConfig struct {
	core.Config
	Items []string
	Text  string
	// Editable lets the user type custom values; typing filters the list.
	Editable    bool
	Placeholder string
	OnChange    func(string)
}

// ComboBox combines a text input with a dropdown list.
// The open list is drawn as a dropdown overlay above the whole tree.
type ComboBox struct {
	core.BaseWidget

	// Items is the list of available options
	Items []string

	// Text is the current text value (may or may not be in Items)
	Text string

	Editable    bool
	Placeholder string
	OnChange    func(string)

	expanded     bool
	cursorPos    int
	scrollOffset int
	selectedIdx  int      // index in filtered
	filtered     []string // items matching Text
	// anchor is the on-screen rect recorded during the last render.
	anchor core.Rect
}

func NewComboBox(cfg ComboBoxConfig) *ComboBox {
	cb := &ComboBox{
		Items:       cfg.Items,
		Editable:    cfg.Editable,
		Placeholder: cfg.Placeholder,
		OnChange:    cfg.OnChange,
	}
	cb.Init(cfg.Config, 20, 1)
	cb.CanFocus = true
	cb.SetValue(cfg.Text)
	return cb
}

// SetValue sets the current text value without calling OnChange.
func (cb *ComboBox) SetValue(text string) {
	cb.Text = text
	cb.cursorPos = len([]rune(text))
	cb.updateFilter()
}

func (cb *ComboBox) Value() string  { return cb.Text }
func (cb *ComboBox) Expanded() bool { return cb.expanded }

// Open expands the list. Nothing happens when there is nothing to show.
func (cb *ComboBox) Open() {
	if len(cb.filtered) == 0 {
		return
	}
	cb.expanded = true
	cb.ensureSelectedVisible()
}

func (cb *ComboBox) Close() { cb.expanded = false }

// dropdownRect is the list area below the field, borders included.
func (cb *ComboBox) dropdownRect() core.Rect {
	rows := core.Clamp(len(cb.filtered), 1, comboMaxRows)
	a := cb.anchor
	if a.Empty() {
		a = core.Bounds(cb)
	}
	return core.Rect{X: a.X, Y: a.Y + 1, W: a.W, H: rows + 2}
}

// updateFilter updates the filtered list based on current text.
func (cb *ComboBox) updateFilter() {
	// Non-editable combos don't filter - always show all items
	if !cb.Editable || cb.Text == "" {
		cb.filtered = cb.Items
	} else {
		cb.filtered = nil
		lower := strings.ToLower(cb.Text)
		for _, item := range cb.Items {
			if strings.HasPrefix(strings.ToLower(item), lower) {
				cb.filtered = append(cb.filtered, item)
			}
		}
	}
	if cb.selectedIdx >= len(cb.filtered) {
		cb.selectedIdx = 0
	}
	if !cb.Editable {
		for i, it := range cb.filtered {
			if it == cb.Text {
				cb.selectedIdx = i
			}
		}
	}
	cb.ensureSelectedVisible()
}

func (cb *ComboBox) ensureSelectedVisible() {
	rows := core.Clamp(len(cb.filtered), 1, comboMaxRows)
	if cb.selectedIdx < cb.scrollOffset {
		cb.scrollOffset = cb.selectedIdx
	} else if cb.selectedIdx >= cb.scrollOffset+rows {
		cb.scrollOffset = cb.selectedIdx - rows + 1
	}
}

// autocompleteMatch returns the best matching item for autocomplete.
func (cb *ComboBox) autocompleteMatch() string {
	if cb.Text == "" || len(cb.filtered) == 0 {
		return ""
	}
	return cb.filtered[0]
}

func (cb *ComboBox) choose(item string) {
	cb.Text = item
	cb.cursorPos = len([]rune(item))
	cb.expanded = false
	cb.updateFilter()
	if cb.OnChange != nil {
		cb.OnChange(cb.Text)
	}
}

// Render draws the field row. The list itself is drawn by DrawOverlay.
func (cb *ComboBox) Render(p *core.Painter) {
	fg, bg := cb.Colors(Theme.Text, Theme.Border)
	btnFg := fg
	focused := cb.IsFocused()
	if focused {
		btnFg = Theme.Accent
	}
	r := core.Bounds(cb)
	cb.anchor = core.Rect{X: r.X, Y: r.Y, W: r.W, H: 1}
	p.Fill(cb.anchor, ' ', fg, bg)

	inputWidth := r.W - 3 // reserve " ▼ "
	text := []rune(cb.Text)
	auto := []rune(cb.autocompleteMatch())

	if len(text) == 0 && cb.Placeholder != "" && !focused {
		p.Text(r.X, r.Y, core.TruncateText(cb.Placeholder, inputWidth), Theme.Muted, bg)
	}
	for i, ch := range text {
		if i >= inputWidth {
			break
		}
		p.Cell(r.X+i, r.Y, ch, fg, bg)
	}
	// dimmed autocomplete suffix
	if cb.Editable && !cb.expanded && len(text) > 0 && len(auto) > len(text) {
		for i := len(text); i < len(auto) && i < inputWidth; i++ {
			p.Cell(r.X+i, r.Y, auto[i], Theme.Muted, bg)
		}
	}
	if focused && cb.Editable && cb.cursorPos < inputWidth {
		ch := ' '
		if cb.cursorPos < len(text) {
			ch = text[cb.cursorPos]
		} else if !cb.expanded && cb.cursorPos < len(auto) {
			ch = auto[cb.cursorPos]
		}
		p.Cell(r.X+cb.cursorPos, r.Y, ch, bg, fg)
	}

	btn := '▼'
	if cb.expanded {
		btn = '▲'
	}
	p.Text(r.Right()-2, r.Y, " "+string(btn)+" ", btnFg, bg)
}

func (cb *ComboBox) OverlayLayer() core.Layer  { return core.LayerDropdown }
func (cb *ComboBox) OverlayVisible() bool      { return cb.expanded }
func (cb *ComboBox) DropdownBounds() core.Rect { return cb.dropdownRect() }

// DrawOverlay renders the dropdown list.
func (cb *ComboBox) DrawOverlay(_ *core.Context, p *core.Painter) {
	fg, bg := Theme.Text, Theme.Surface
	dr := cb.dropdownRect()
	core.DrawBorder(p, dr, core.BorderRounded, Theme.Border, bg)
	inner := dr.Inset(1, 1, 1, 1)
	p.Fill(inner, ' ', fg, bg)
	for i := 0; i < inner.H; i++ {
		idx := cb.scrollOffset + i
		if idx >= len(cb.filtered) {
			break
		}
		cf, cbg := fg, bg
		if idx == cb.selectedIdx {
			cf, cbg = Theme.SelectionFg, Theme.SelectionBg
		}
		p.HLine(inner.X, inner.Y+i, inner.W, ' ', cf, cbg)
		p.Text(inner.X, inner.Y+i, core.TruncateText(cb.filtered[idx], inner.W), cf, cbg)
	}
	if cb.scrollOffset > 0 {
		p.Cell(inner.Right(), inner.Y, '▲', Theme.Muted, bg)
	}
	if cb.scrollOffset+inner.H < len(cb.filtered) {
		p.Cell(inner.Right(), inner.Bottom(), '▼', Theme.Muted, bg)
	}
}

// DropdownClick picks the row under the pointer. Clicks on the border are
// swallowed.
func (cb *ComboBox) DropdownClick(_ *core.Context, ev core.ClickEvent) bool {
	inner := cb.dropdownRect().Inset(1, 1, 1, 1)
	if inner.Contains(ev.X, ev.Y) {
		if idx := cb.scrollOffset + ev.Y - inner.Y; idx < len(cb.filtered) {
			cb.choose(cb.filtered[idx])
		}
	}
	return true
}

func (cb *ComboBox) CloseDropdown(*core.Context) { cb.expanded = false }

// FocusLost collapses the list.
func (cb *ComboBox) FocusLost(*core.Context)   { cb.expanded = false }
func (cb *ComboBox) FocusGained(*core.Context) {}

// Click toggles the list from the button, or anywhere on a read-only field.
func (cb *ComboBox) Click(_ *core.Context, ev core.ClickEvent) {
	onButton := ev.LocalX > cb.Width-3
	if onButton || !cb.Editable {
		if cb.expanded {
			cb.Close()
		} else {
			cb.Open()
		}
		return
	}
	cb.cursorPos = core.Clamp(ev.LocalX-1, 0, len([]rune(cb.Text)))
}

func (cb *ComboBox) HandleScroll(_ *core.Context, dir, _, _ int) bool {
	if !cb.expanded {
		return false
	}
	cb.scrollOffset = core.Clamp(cb.scrollOffset+dir, 0, max(len(cb.filtered)-comboMaxRows, 0))
	return true
}

func (cb *ComboBox) HandleChar(_ *core.Context, ch rune) bool {
	if !cb.Editable {
		if !cb.expanded {
			cb.Open()
		}
		return true
	}
	text := []rune(cb.Text)
	text = append(text[:cb.cursorPos], append([]rune{ch}, text[cb.cursorPos:]...)...)
	cb.Text = string(text)
	cb.cursorPos++
	cb.updateFilter()
	return true
}

// HandleKey processes keyboard input.
func (cb *ComboBox) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	text := []rune(cb.Text)
	switch k {
	case host.KeyEscape:
		if cb.expanded {
			cb.expanded = false
			return true
		}
		return false

	case host.KeyEnter:
		if cb.expanded && len(cb.filtered) > 0 {
			cb.choose(cb.filtered[cb.selectedIdx])
			return true
		}
		// accept autocomplete or the current value
		if auto := cb.autocompleteMatch(); cb.Editable && len(auto) > len(cb.Text) {
			cb.SetValue(auto)
		}
		if cb.OnChange != nil {
			cb.OnChange(cb.Text)
		}
		return true

	case host.KeyTab:
		if auto := cb.autocompleteMatch(); cb.Editable && !cb.expanded && len(auto) > len(cb.Text) {
			cb.SetValue(auto)
			return true
		}
		return false

	case host.KeyUp:
		if cb.expanded {
			if cb.selectedIdx > 0 {
				cb.selectedIdx--
				cb.ensureSelectedVisible()
			}
			return true
		}
		cb.Open()
		return len(cb.filtered) > 0

	case host.KeyDown:
		if cb.expanded {
			if cb.selectedIdx < len(cb.filtered)-1 {
				cb.selectedIdx++
				cb.ensureSelectedVisible()
			}
			return true
		}
		cb.Open()
		return len(cb.filtered) > 0

	case host.KeyLeft:
		if cb.Editable && cb.cursorPos > 0 {
			cb.cursorPos--
			return true
		}
		return false

	case host.KeyRight:
		if !cb.Editable {
			return false
		}
		auto := []rune(cb.autocompleteMatch())
		if !cb.expanded && len(auto) > len(text) {
			// accept one char from the suggestion
			cb.Text = string(auto[:len(text)+1])
			cb.cursorPos = len(text) + 1
			cb.updateFilter()
			return true
		}
		if cb.cursorPos < len(text) {
			cb.cursorPos++
			return true
		}
		return false

	case host.KeyHome:
		if cb.Editable {
			cb.cursorPos = 0
			return true
		}
		return false

	case host.KeyEnd:
		if cb.Editable {
			cb.cursorPos = len(text)
			return true
		}
		return false

	case host.KeyBackspace:
		if cb.Editable && cb.cursorPos > 0 {
			cb.Text = string(append(text[:cb.cursorPos-1], text[cb.cursorPos:]...))
			cb.cursorPos--
			cb.updateFilter()
			return true
		}
		return false

	case host.KeyDelete:
		if cb.Editable && cb.cursorPos < len(text) {
			cb.Text = string(append(text[:cb.cursorPos], text[cb.cursorPos+1:]...))
			cb.updateFilter()
			return true
		}
		return false
	}
	return false
}
