// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/context.go
// Summary: UI context holding the root registry, focus, drag and overlays.
// Usage: app.App owns one Context; tests create their own with NewContext.
// Notes: Single-threaded. All methods must be called from the UI loop.

package core

import (
	"github.com/go-logr/logr"
	"github.com/jonboulle/clockwork"
)

type dragState struct {
	widget Widget
	button int
	// move is set for window drags; offX/offY hold the grab offset.
	move       bool
	offX, offY int
}

// Context is the shared state of one widget tree.
type Context struct {
	Log   logr.Logger
	Clock clockwork.Clock

	// OnFault receives recovered widget panics.
	OnFault func(err *FaultError)

	roots    []Widget
	focused  Widget
	drag     *dragState
	overlays []Overlay
	screen   Rect
}

// NewContext returns an empty context with a discarding logger and the
// real clock.
func NewContext() *Context {
	return &Context{Log: logr.Discard(), Clock: clockwork.NewRealClock()}
}

// Reset drops every root, the focus, the drag and extra overlays.
func (c *Context) Reset() {
	c.SetFocus(nil)
	c.roots = nil
	c.drag = nil
	c.overlays = nil
}

// Register adds w to the root registry, keeping it sorted by z.
func (c *Context) Register(w Widget) {
	if w == nil {
		return
	}
	for _, r := range c.roots {
		if Same(r, w) {
			return
		}
	}
	c.roots = append(c.roots, w)
	sortByZ(c.roots)
}

// Unregister removes a root. Focus or drag held inside it is released.
func (c *Context) Unregister(w Widget) bool {
	for i, r := range c.roots {
		if !Same(r, w) {
			continue
		}
		c.roots = append(c.roots[:i:i], c.roots[i+1:]...)
		if c.focused != nil && IsDescendant(c.focused, w) {
			c.SetFocus(nil)
		}
		if c.drag != nil && IsDescendant(c.drag.widget, w) {
			c.drag = nil
		}
		return true
	}
	return false
}

// SetScreenSize records the host screen size. Render updates it too.
func (c *Context) SetScreenSize(w, h int) { c.screen = Rect{X: 1, Y: 1, W: w, H: h} }

// ScreenRect returns the last known screen area, 80x24 before anything
// was recorded.
func (c *Context) ScreenRect() Rect {
	if c.screen.Empty() {
		return Rect{X: 1, Y: 1, W: 80, H: 24}
	}
	return c.screen
}

// Raise moves w above its siblings, or above every other root when w is
// registered.
func (c *Context) Raise(w Widget) {
	b := w.Base()
	siblings := c.roots
	if b.parent != nil {
		siblings = b.parent.Base().children
	}
	top := b.Z
	for _, s := range siblings {
		if !Same(s, w) && s.Base().Z >= top {
			top = s.Base().Z + 1
		}
	}
	if top == b.Z {
		return
	}
	SetZ(w, top)
	if b.parent == nil {
		sortByZ(c.roots)
	}
}

// Roots returns the registry in draw order. Callers must not modify it.
func (c *Context) Roots() []Widget { return c.roots }

// Attached reports whether w hangs off a registered root.
func (c *Context) Attached(w Widget) bool {
	if w == nil {
		return false
	}
	r := Root(w)
	for _, x := range c.roots {
		if Same(x, r) {
			return true
		}
	}
	return false
}

// Dragging returns the widget holding the mouse capture, if any.
func (c *Context) Dragging() Widget {
	if c.drag == nil {
		return nil
	}
	return c.drag.widget
}

// Draw renders w and its subtree when w is effectively visible.
func (c *Context) Draw(p *Painter, w Widget) {
	if w == nil || !EffectivelyVisible(w) {
		return
	}
	c.drawTree(p, w)
}

func (c *Context) drawTree(p *Painter, w Widget) {
	b := w.Base()
	if !b.Visible {
		return
	}
	c.guard("render", w, func() { w.Render(p) })
	if h, ok := w.(ChildHost); ok {
		h.DrawChildren(c, p)
		return
	}
	for _, ch := range b.children {
		c.drawTree(p, ch)
	}
}

// Render clears the screen and draws the active modal alone, or every root,
// then the visible overlays.
func (c *Context) Render(p *Painter) {
	c.SetScreenSize(p.Screen().Size())
	p.Clear(0)
	if m := c.ActiveModal(); m != nil {
		c.Draw(p, m)
	} else {
		for _, r := range c.roots {
			c.Draw(p, r)
		}
	}
	c.drawOverlays(p)
}

// ActiveModal returns the topmost effectively visible modal, or nil.
func (c *Context) ActiveModal() Widget {
	var found Widget
	for i := len(c.roots) - 1; i >= 0 && found == nil; i-- {
		found = topmostModal(c.roots[i])
	}
	return found
}

func topmostModal(w Widget) Widget {
	b := w.Base()
	if !b.Visible {
		return nil
	}
	for i := len(b.children) - 1; i >= 0; i-- {
		if m := topmostModal(b.children[i]); m != nil {
			return m
		}
	}
	if m, ok := w.(Modal); ok && m.IsModal() {
		return w
	}
	return nil
}

// HandleClick runs the click algorithm on w's subtree: children topmost
// first, then w's drag region, then w's own bounds. It reports whether the
// click was consumed.
func (c *Context) HandleClick(w Widget, ev ClickEvent) bool {
	if w == nil || !EffectivelyVisible(w) {
		return false
	}
	return c.probe(w, ev.X, ev.Y, func(t Widget) bool { return c.clickSelf(t, ev) })
}

// probe visits w's subtree bottom-up and topmost-first, skipping hidden or
// disabled branches, until fn returns true.
func (c *Context) probe(w Widget, x, y int, fn func(Widget) bool) bool {
	b := w.Base()
	if !b.Visible || !b.Enabled {
		return false
	}
	if h, ok := w.(ChildHost); ok {
		if h.VisitHit(x, y, func(ch Widget) bool { return c.probe(ch, x, y, fn) }) {
			return true
		}
	} else {
		for i := len(b.children) - 1; i >= 0; i-- {
			if c.probe(b.children[i], x, y, fn) {
				return true
			}
		}
	}
	return fn(w)
}

// Hit reports whether (x, y) falls on w.
func Hit(w Widget, x, y int) bool {
	if ht, ok := w.(HitTester); ok {
		return ht.HitTest(x, y)
	}
	return Bounds(w).Contains(x, y)
}

func (c *Context) clickSelf(w Widget, ev ClickEvent) bool {
	b := w.Base()
	abs := Bounds(w)
	if b.Draggable && ev.Button == 1 {
		region := abs
		if !b.DragRegion.Empty() {
			region = b.DragRegion.Translate(abs.X-1, abs.Y-1)
		}
		if region.Contains(ev.X, ev.Y) {
			c.drag = &dragState{widget: w, button: ev.Button, move: true, offX: ev.X - abs.X, offY: ev.Y - abs.Y}
			c.focusOnClick(w)
			if b.OnDragStart != nil {
				c.guard("drag-start", w, func() { b.OnDragStart(ev.X, ev.Y) })
			}
			return true
		}
	}
	if !Hit(w, ev.X, ev.Y) {
		return false
	}
	c.focusOnClick(w)
	b.Pressed = true
	ev.LocalX, ev.LocalY = ev.X-abs.X+1, ev.Y-abs.Y+1
	c.guard("click", w, func() {
		if cl, ok := w.(Clicker); ok {
			cl.Click(c, ev)
		}
		if b.OnClick != nil {
			b.OnClick(ev)
		}
	})
	if _, ok := w.(Dragger); ok {
		c.drag = &dragState{widget: w, button: ev.Button}
	}
	return true
}

func (c *Context) focusOnClick(w Widget) {
	b := w.Base()
	switch {
	case b.CanFocus:
		c.SetFocus(w)
	case !b.focused:
		c.SetFocus(nil)
	}
}
