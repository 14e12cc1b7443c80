// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/listview.go
// Summary: Scrollable single-selection list of text rows.

package widgets

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/scroll"
)

// ListViewConfig configures a ListView. Default size is 20x8.
type ListViewConfig struct {
	core.Config
	Items []string
	// Follow keeps the view pinned to the last row as items are appended.
	Follow     bool
	OnSelect   func(index int, item string)
	OnActivate func(index int, item string)
}

// ListView shows rows with one optional selection. Clicking the selected
// row again, or pressing Enter, activates it.
type ListView struct {
	core.BaseWidget
	Follow     bool
	OnSelect   func(index int, item string)
	OnActivate func(index int, item string)

	items    []string
	selected int
	scroll   scroll.State
}

func NewListView(cfg ListViewConfig) *ListView {
	l := &ListView{Follow: cfg.Follow, OnSelect: cfg.OnSelect, OnActivate: cfg.OnActivate, selected: -1}
	l.Init(cfg.Config, 20, 8)
	l.CanFocus = true
	l.SetItems(cfg.Items)
	return l
}

func (l *ListView) Items() []string { return l.items }
func (l *ListView) Len() int        { return len(l.items) }

// Selected returns the selected index, or -1.
func (l *ListView) Selected() int { return l.selected }

// Offset returns the first visible row.
func (l *ListView) Offset() int { return l.syncState().Offset }

func (l *ListView) SetItems(items []string) {
	l.items = append([]string(nil), items...)
	if l.selected >= len(l.items) {
		l.selected = len(l.items) - 1
	}
	l.scroll = l.syncState().ScrollToTop()
	if l.Follow {
		l.scroll = l.scroll.ScrollToBottom()
	}
}

// Append adds rows at the end.
func (l *ListView) Append(items ...string) {
	atBottom := !l.syncState().CanScrollDown()
	l.items = append(l.items, items...)
	l.scroll = l.syncState()
	if l.Follow && atBottom {
		l.scroll = l.scroll.ScrollToBottom()
	}
}

func (l *ListView) Clear() {
	l.items = nil
	l.selected = -1
	l.scroll = scroll.NewState(0, l.Height)
}

func (l *ListView) syncState() scroll.State {
	return l.scroll.WithContent(len(l.items)).WithViewport(l.Height)
}

// Select moves the selection to i (clamped) and scrolls it into view.
// OnSelect fires when the selection changes.
func (l *ListView) Select(i int) {
	if len(l.items) == 0 {
		return
	}
	i = core.Clamp(i, 0, len(l.items)-1)
	l.scroll = l.syncState().ScrollTo(i)
	if i == l.selected {
		return
	}
	l.selected = i
	if l.OnSelect != nil {
		l.OnSelect(i, l.items[i])
	}
}

// Reveal centres row i in the view unless it is already visible. The
// selection is left alone.
func (l *ListView) Reveal(i int) {
	st := l.syncState()
	if !st.IsRowVisible(i) {
		st = st.ScrollToCentered(i)
	}
	l.scroll = st
}

func (l *ListView) activate() {
	if l.selected >= 0 && l.OnActivate != nil {
		l.OnActivate(l.selected, l.items[l.selected])
	}
}

func (l *ListView) Render(p *core.Painter) {
	fg, bg := l.Colors(Theme.Text, Theme.Surface)
	r := core.Bounds(l)
	p.Fill(r, ' ', fg, bg)
	l.scroll = l.syncState()
	first, last := l.scroll.VisibleRange()
	for i := first; i < last; i++ {
		cf, cb := fg, bg
		if i == l.selected {
			cf, cb = Theme.SelectionFg, Theme.SelectionBg
			if !l.IsFocused() {
				cb = Theme.Border
				cf = Theme.Text
			}
		}
		y := r.Y + i - first
		p.HLine(r.X, y, r.W, ' ', cf, cb)
		p.Text(r.X, y, core.TruncateText(l.items[i], r.W-1), cf, cb)
	}
	scroll.DrawIndicators(p, r, l.scroll, scroll.DefaultIndicatorConfig(Theme.Muted, bg))
}

func (l *ListView) Click(_ *core.Context, ev core.ClickEvent) {
	i := l.syncState().Offset + ev.LocalY - 1
	if i < 0 || i >= len(l.items) {
		return
	}
	if i == l.selected {
		l.activate()
		return
	}
	l.Select(i)
}

func (l *ListView) HandleScroll(_ *core.Context, dir, _, _ int) bool {
	st := l.syncState()
	if !st.CanScroll() {
		return false
	}
	l.scroll = st.ScrollBy(dir)
	return true
}

func (l *ListView) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	if len(l.items) == 0 {
		return false
	}
	switch k {
	case host.KeyUp:
		l.Select(l.selected - 1)
	case host.KeyDown:
		l.Select(l.selected + 1)
	case host.KeyPageUp:
		l.Select(l.selected - max(l.Height-1, 1))
	case host.KeyPageDown:
		l.Select(l.selected + max(l.Height-1, 1))
	case host.KeyHome:
		l.Select(0)
	case host.KeyEnd:
		l.Select(len(l.items) - 1)
	case host.KeyEnter:
		l.activate()
	default:
		return false
	}
	return true
}
