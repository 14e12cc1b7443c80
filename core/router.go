// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/router.go
// Summary: Routes host input events into the widget tree.

package core

import "github.com/framegrace/cellkit/host"

// Dispatch routes one host event and reports whether something consumed it.
// Timer, resize and terminate events are left to the caller.
func (c *Context) Dispatch(ev host.Event) bool {
	switch ev.Type {
	case host.EventMouseClick:
		return c.routeClick(ev)
	case host.EventMouseDrag:
		return c.routeDrag(ev)
	case host.EventMouseUp:
		return c.routeRelease(ev)
	case host.EventMouseScroll:
		return c.routeScroll(ev)
	case host.EventKey:
		return c.routeKey(ev.Key, ev.Mod)
	case host.EventChar:
		return c.routeChar(ev.Char)
	}
	return false
}

func (c *Context) routeClick(ev host.Event) bool {
	ce := ClickEvent{X: ev.X, Y: ev.Y, Button: ev.Button}

	if m := c.ActiveModal(); m != nil {
		c.probe(m, ev.X, ev.Y, func(t Widget) bool { return c.clickSelf(t, ce) })
		return true
	}

	if ev.Button == host.ButtonSecondary {
		if w := c.menuAt(ev.X, ev.Y); w != nil {
			menu := w.Base().Menu
			c.guard("menu", w, func() { menu.Open(c, ev.X, ev.Y) })
			return true
		}
	}

	dropdowns := c.openDropdowns()
	for _, d := range dropdowns {
		if !d.DropdownBounds().Contains(ev.X, ev.Y) {
			continue
		}
		consumed := false
		w, _ := d.(Widget)
		c.guard("dropdown", w, func() { consumed = d.DropdownClick(c, ce) })
		if consumed {
			return true
		}
	}

	for i := len(c.roots) - 1; i >= 0; i-- {
		if c.HandleClick(c.roots[i], ce) {
			return true
		}
	}

	for _, d := range dropdowns {
		if !d.DropdownBounds().Contains(ev.X, ev.Y) {
			d.CloseDropdown(c)
		}
	}
	c.SetFocus(nil)
	return false
}

func (c *Context) menuAt(x, y int) Widget {
	var found Widget
	for i := len(c.roots) - 1; i >= 0 && found == nil; i-- {
		r := c.roots[i]
		if !EffectivelyVisible(r) {
			continue
		}
		c.probe(r, x, y, func(w Widget) bool {
			if w.Base().Menu != nil && Hit(w, x, y) {
				found = w
				return true
			}
			return false
		})
	}
	return found
}

func (c *Context) routeScroll(ev host.Event) bool {
	scroll := func(w Widget) bool {
		if !Hit(w, ev.X, ev.Y) {
			return false
		}
		b := w.Base()
		handled := false
		c.guard("scroll", w, func() {
			if s, ok := w.(Scroller); ok && s.HandleScroll(c, ev.Direction, ev.X, ev.Y) {
				handled = true
				return
			}
			if b.OnScroll != nil {
				handled = b.OnScroll(ev.Direction, ev.X, ev.Y)
			}
		})
		return handled
	}
	if m := c.ActiveModal(); m != nil {
		c.probe(m, ev.X, ev.Y, scroll)
		return true
	}
	for i := len(c.roots) - 1; i >= 0; i-- {
		r := c.roots[i]
		if EffectivelyVisible(r) && c.probe(r, ev.X, ev.Y, scroll) {
			return true
		}
	}
	return false
}

func (c *Context) routeDrag(ev host.Event) bool {
	d := c.drag
	if d == nil {
		return false
	}
	w := d.widget
	b := w.Base()
	onScreen(w, func() {
		if d.move {
			ax, ay := ev.X-d.offX, ev.Y-d.offY
			if p := b.parent; p != nil {
				px, py := AbsolutePosition(p)
				ax, ay = ax-px+1, ay-py+1
			}
			b.X, b.Y = ax, ay
		} else if dr, ok := w.(Dragger); ok {
			c.guard("drag", w, func() { dr.HandleDrag(c, ev.X, ev.Y) })
		}
		if b.OnDrag != nil {
			c.guard("drag", w, func() { b.OnDrag(ev.X, ev.Y) })
		}
	})
	return true
}

// onScreen runs fn with the ancestor shifts along w's parent chain applied,
// so positions match what the widget had when it was drawn and clicked.
func onScreen(w Widget, fn func()) {
	type shift struct {
		b      *BaseWidget
		dx, dy int
	}
	var applied []shift
	for n := w; n.Base().parent != nil; n = n.Base().parent {
		s, ok := n.Base().parent.(ChildShifter)
		if !ok {
			continue
		}
		dx, dy := s.ChildShift(n)
		if dx == 0 && dy == 0 {
			continue
		}
		nb := n.Base()
		nb.X -= dx
		nb.Y -= dy
		applied = append(applied, shift{nb, dx, dy})
	}
	defer func() {
		for _, s := range applied {
			s.b.X += s.dx
			s.b.Y += s.dy
		}
	}()
	fn()
}

func (c *Context) routeRelease(ev host.Event) bool {
	d := c.drag
	c.drag = nil
	if d != nil {
		w := d.widget
		b := w.Base()
		onScreen(w, func() {
			if dr, ok := w.(Dragger); ok && !d.move {
				c.guard("release", w, func() { dr.HandleRelease(c, ev.X, ev.Y) })
			}
			if d.move && b.OnDragEnd != nil {
				c.guard("drag-end", w, func() { b.OnDragEnd(ev.X, ev.Y) })
			}
		})
	}
	for _, r := range c.roots {
		Walk(r, func(w Widget) bool {
			w.Base().Pressed = false
			return true
		})
	}
	return d != nil
}

// keyTarget returns who gets keyboard input: the focused widget, unless a
// modal is active and focus lies outside it.
func (c *Context) keyTarget() (target, modal Widget) {
	modal = c.ActiveModal()
	target = c.focused
	if target != nil && !c.Attached(target) {
		c.SetFocus(nil)
		target = nil
	}
	if modal != nil && (target == nil || !IsDescendant(target, modal)) {
		target = modal
	}
	return target, modal
}

func (c *Context) routeKey(k host.Key, mod host.ModMask) bool {
	target, modal := c.keyTarget()
	if target != nil && c.deliverKey(target, k, mod) {
		return true
	}
	if modal != nil && !Same(target, modal) && c.deliverKey(modal, k, mod) {
		return true
	}
	switch k {
	case host.KeyTab:
		return c.CycleFocus(mod&host.ModShift == 0)
	case host.KeyBacktab:
		return c.CycleFocus(false)
	}
	return false
}

func (c *Context) deliverKey(w Widget, k host.Key, mod host.ModMask) bool {
	b := w.Base()
	if !b.Enabled {
		return false
	}
	handled := false
	c.guard("key", w, func() {
		if kh, ok := w.(KeyHandler); ok && kh.HandleKey(c, k, mod) {
			handled = true
			return
		}
		if b.OnKey != nil {
			handled = b.OnKey(k, mod)
		}
	})
	return handled
}

func (c *Context) routeChar(r rune) bool {
	target, modal := c.keyTarget()
	if target != nil && c.deliverChar(target, r) {
		return true
	}
	if modal != nil && !Same(target, modal) {
		return c.deliverChar(modal, r)
	}
	return false
}

func (c *Context) deliverChar(w Widget, r rune) bool {
	b := w.Base()
	if !b.Enabled {
		return false
	}
	handled := false
	c.guard("char", w, func() {
		if ch, ok := w.(CharHandler); ok && ch.HandleChar(c, r) {
			handled = true
			return
		}
		if b.OnChar != nil {
			handled = b.OnChar(r)
		}
	})
	return handled
}
