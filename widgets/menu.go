// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/menu.go
// Summary: Popup context menu opened by secondary clicks.
// Notes: While open the menu is a registered root above everything else
// and swallows every click, so a click anywhere else dismisses it.

package widgets

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// MenuItem is one entry. Items with an empty label render as separators.
type MenuItem struct {
	Label    string
	Action   func()
	Disabled bool
}

// ContextMenuConfig configures a ContextMenu. Position and size are set
// when it opens.
type ContextMenuConfig struct {
	core.Config
	Items []MenuItem
}

type ContextMenu struct {
	core.BaseWidget
	Items []MenuItem

	ctx      *core.Context
	selected int
	open     bool
}

func NewContextMenu(cfg ContextMenuConfig) *ContextMenu {
	m := &ContextMenu{Items: cfg.Items}
	m.Init(cfg.Config, 1, 1)
	m.Visible = false
	m.CanFocus = true
	if cfg.Z == 0 {
		m.Z = 1000
	}
	return m
}

func (m *ContextMenu) IsOpen() bool { return m.open }

// Open shows the menu with its top-left corner at (x, y), shifted to stay
// on screen, and gives it focus.
func (m *ContextMenu) Open(ctx *core.Context, x, y int) {
	w := 0
	for _, it := range m.Items {
		w = max(w, core.TextWidth(it.Label))
	}
	m.Width, m.Height = w+4, len(m.Items)+2
	scr := ctx.ScreenRect()
	m.X = core.Clamp(x, scr.X, max(scr.Right()-m.Width+1, scr.X))
	m.Y = core.Clamp(y, scr.Y, max(scr.Bottom()-m.Height+1, scr.Y))
	m.Visible = true
	m.open = true
	m.ctx = ctx
	m.selected = m.next(-1, 1)
	ctx.Register(m)
	ctx.Raise(m)
	ctx.SetFocus(m)
}

// Close hides the menu and removes it from the registry.
func (m *ContextMenu) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.Visible = false
	if m.ctx != nil {
		m.ctx.Unregister(m)
	}
}

func (m *ContextMenu) selectable(i int) bool {
	return i >= 0 && i < len(m.Items) && m.Items[i].Label != "" && !m.Items[i].Disabled
}

// next returns the first selectable index after from in direction dir,
// wrapping around, or -1.
func (m *ContextMenu) next(from, dir int) int {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((from+dir*step)%n + n) % n
		if m.selectable(i) {
			return i
		}
	}
	return -1
}

func (m *ContextMenu) activate(i int) {
	if !m.selectable(i) {
		return
	}
	action := m.Items[i].Action
	m.Close()
	if action != nil {
		action()
	}
}

func (m *ContextMenu) Render(p *core.Painter) {
	fg, bg := m.Colors(Theme.Text, Theme.Surface)
	r := core.Bounds(m)
	p.Fill(r, ' ', fg, bg)
	core.DrawBorder(p, r, core.BorderSingle, Theme.Border, bg)
	for i, it := range m.Items {
		y := r.Y + 1 + i
		if it.Label == "" {
			p.HLine(r.X+1, y, r.W-2, '─', Theme.Border, bg)
			continue
		}
		cf, cb := fg, bg
		switch {
		case it.Disabled:
			cf = Theme.Muted
		case i == m.selected:
			cf, cb = Theme.SelectionFg, Theme.SelectionBg
		}
		p.HLine(r.X+1, y, r.W-2, ' ', cf, cb)
		p.Text(r.X+2, y, it.Label, cf, cb)
	}
}

// HitTest claims the whole screen while open.
func (m *ContextMenu) HitTest(int, int) bool { return m.open }

func (m *ContextMenu) Click(_ *core.Context, ev core.ClickEvent) {
	inner := core.Bounds(m).Inset(1, 1, 1, 1)
	if !inner.Contains(ev.X, ev.Y) {
		m.Close()
		return
	}
	m.activate(ev.Y - inner.Y)
}

func (m *ContextMenu) FocusGained(*core.Context) {}
func (m *ContextMenu) FocusLost(*core.Context)   { m.Close() }

func (m *ContextMenu) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	switch k {
	case host.KeyUp, host.KeyBacktab:
		if i := m.next(m.selected, -1); i >= 0 {
			m.selected = i
		}
	case host.KeyDown, host.KeyTab:
		if i := m.next(m.selected, 1); i >= 0 {
			m.selected = i
		}
	case host.KeyEnter:
		m.activate(m.selected)
	case host.KeyEscape:
		m.Close()
	default:
		return false
	}
	return true
}
