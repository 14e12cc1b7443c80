// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/container.go
// Summary: Layout container with a scrollable viewport and lazy scrollbars.
// Notes: Children are shifted by the scroll offset only while they are drawn
// or probed; clipping is by bounding box.

package scroll

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// Layout selects how a Container positions its children.
type Layout int

const (
	LayoutAbsolute Layout = iota
	LayoutVertical
	LayoutHorizontal
)

// ContainerConfig configures NewContainer.
type ContainerConfig struct {
	core.Config
	Layout     Layout
	AutoMargin bool
	Padding    int
	Spacing    int
	Border     core.BorderStyle
	BorderFg   host.Color
	Title      string
	// NoScrollBars disables the lazily created bars; offsets still apply.
	NoScrollBars bool
}

// Container groups children, lays them out and scrolls them.
type Container struct {
	core.BaseWidget
	Layout       Layout
	AutoMargin   bool
	Padding      int
	Spacing      int
	Border       core.BorderStyle
	BorderFg     host.Color
	Title        string
	NoScrollBars bool

	ScrollX, ScrollY int

	vbar, hbar *ScrollBar
}

// NewContainer creates a container, 10×5 unless sized.
func NewContainer(cfg ContainerConfig) *Container {
	c := &Container{}
	c.Configure(cfg)
	return c
}

// Configure applies cfg. Widgets that embed a Container call it from their
// own constructors.
func (c *Container) Configure(cfg ContainerConfig) {
	c.Layout = cfg.Layout
	c.AutoMargin = cfg.AutoMargin
	c.Padding = max(cfg.Padding, 0)
	c.Spacing = max(cfg.Spacing, 0)
	c.Border = cfg.Border
	c.BorderFg = cfg.BorderFg
	c.Title = cfg.Title
	c.NoScrollBars = cfg.NoScrollBars
	c.Init(cfg.Config, 10, 5)
}

// Add attaches children and re-runs the layout.
func (c *Container) Add(ws ...core.Widget) {
	for _, w := range ws {
		core.AddChild(c, w)
	}
	c.Relayout()
}

// Remove detaches w and re-runs the layout.
func (c *Container) Remove(w core.Widget) bool {
	ok := core.RemoveChild(c, w)
	if ok {
		c.Relayout()
	}
	return ok
}

// Clear detaches every child.
func (c *Container) Clear() {
	for _, w := range append([]core.Widget(nil), c.Children()...) {
		core.RemoveChild(c, w)
	}
	c.ScrollX, c.ScrollY = 0, 0
	c.syncBars()
}

func (c *Container) inset() int { return c.Border.Inset() }

// inner is the local area inside the border, ignoring scrollbars.
func (c *Container) inner() core.Rect {
	b := c.inset()
	return core.Rect{X: 1, Y: 1, W: c.Width, H: c.Height}.Inset(b, b, b, b)
}

// Relayout positions children according to the layout mode.
func (c *Container) Relayout() {
	if c.Layout == LayoutAbsolute {
		c.syncBars()
		return
	}
	var kids []core.Widget
	for _, w := range c.Children() {
		if w.Base().Visible {
			kids = append(kids, w)
		}
	}
	in := c.inner().Inset(c.Padding, c.Padding, c.Padding, c.Padding)
	vertical := c.Layout == LayoutVertical

	total := 0
	for _, w := range kids {
		b := w.Base()
		if vertical {
			total += b.Height
		} else {
			total += b.Width
		}
	}
	avail := in.W
	if vertical {
		avail = in.H
	}
	gap := c.Spacing
	pos := 0
	auto := c.AutoMargin && len(kids) > 0 && avail > total
	if auto {
		gap = (avail - total) / (len(kids) + 1)
		pos = gap
	}

	for _, w := range kids {
		b := w.Base()
		if vertical {
			b.Y = in.Y + pos
			b.X = in.X
			if auto {
				b.X = in.X + max(in.W-b.Width, 0)/2
			}
			pos += b.Height + gap
		} else {
			b.X = in.X + pos
			b.Y = in.Y
			if auto {
				b.Y = in.Y + max(in.H-b.Height, 0)/2
			}
			pos += b.Width + gap
		}
	}
	c.syncBars()
}

// ContentSize is the extent of the visible children measured from the
// viewport origin, floored at the viewport size.
func (c *Container) ContentSize() (int, int) {
	view := c.viewLocal()
	w, h := c.rawContent()
	return max(w, view.W), max(h, view.H)
}

func (c *Container) rawContent() (int, int) {
	o := c.inset()
	w, h := 0, 0
	for _, k := range c.Children() {
		b := k.Base()
		if !b.Visible {
			continue
		}
		w = max(w, b.X+b.Width-1-o+c.Padding)
		h = max(h, b.Y+b.Height-1-o+c.Padding)
	}
	return w, h
}

// bars decides which scrollbars the current content needs.
func (c *Container) bars() (needV, needH bool) {
	if c.NoScrollBars {
		return false, false
	}
	in := c.inner()
	cw, ch := c.rawContent()
	needV = ch > in.H
	needH = cw > in.W-boolInt(needV)
	if needH && !needV {
		needV = ch > in.H-1
	}
	return needV, needH
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// viewLocal is the local viewport: inside the border and scrollbars.
func (c *Container) viewLocal() core.Rect {
	needV, needH := c.bars()
	in := c.inner()
	return in.Inset(0, 0, boolInt(needV), boolInt(needH))
}

// Viewport returns the viewport in screen coordinates.
func (c *Container) Viewport() core.Rect {
	ax, ay := core.AbsolutePosition(c)
	return c.viewLocal().Translate(ax-1, ay-1)
}

// MaxScroll returns the largest valid offsets.
func (c *Container) MaxScroll() (int, int) {
	view := c.viewLocal()
	w, h := c.ContentSize()
	return max(w-view.W, 0), max(h-view.H, 0)
}

// ScrollTo sets both offsets, clamped to the content range.
func (c *Container) ScrollTo(x, y int) {
	mx, my := c.MaxScroll()
	c.ScrollX = core.Clamp(x, 0, mx)
	c.ScrollY = core.Clamp(y, 0, my)
	c.syncBars()
}

func (c *Container) ScrollBy(dx, dy int) { c.ScrollTo(c.ScrollX+dx, c.ScrollY+dy) }

// EnsureVisible scrolls the minimum distance that brings child into view.
func (c *Container) EnsureVisible(child core.Widget) {
	if !core.Same(child.Base().Parent(), c) {
		return
	}
	view := c.viewLocal()
	b := child.Base()
	o := c.inset()
	xs := NewState(0, view.W)
	ys := NewState(0, view.H)
	xs.Content, ys.Content = c.ContentSize()
	xs, ys = xs.WithOffset(c.ScrollX), ys.WithOffset(c.ScrollY)
	xs = xs.ScrollTo(b.X - o - 1 + b.Width - 1).ScrollTo(b.X - o - 1)
	ys = ys.ScrollTo(b.Y - o - 1 + b.Height - 1).ScrollTo(b.Y - o - 1)
	c.ScrollTo(xs.Offset, ys.Offset)
}

// syncBars creates, updates or tears down the scrollbars and clamps the
// offsets to the current content.
func (c *Container) syncBars() {
	mx, my := c.MaxScroll()
	c.ScrollX = core.Clamp(c.ScrollX, 0, mx)
	c.ScrollY = core.Clamp(c.ScrollY, 0, my)

	needV, needH := c.bars()
	view := c.viewLocal()

	if needV {
		if c.vbar == nil {
			c.vbar = NewScrollBar(ScrollBarConfig{Orientation: Vertical})
			c.vbar.Name = c.Name + ".vbar"
			c.vbar.OnChange = func(v int) { c.ScrollY = v }
			core.Adopt(c, c.vbar)
		}
		c.vbar.X, c.vbar.Y = view.Right()+1, view.Y
		c.vbar.Resize(1, view.H)
		c.vbar.Max, c.vbar.Page, c.vbar.Value = my, view.H, c.ScrollY
	} else if c.vbar != nil {
		core.Disown(c.vbar)
		c.vbar = nil
	}

	if needH {
		if c.hbar == nil {
			c.hbar = NewScrollBar(ScrollBarConfig{Orientation: Horizontal})
			c.hbar.Name = c.Name + ".hbar"
			c.hbar.OnChange = func(v int) { c.ScrollX = v }
			core.Adopt(c, c.hbar)
		}
		c.hbar.X, c.hbar.Y = view.X, view.Bottom()+1
		c.hbar.Resize(view.W, 1)
		c.hbar.Max, c.hbar.Page, c.hbar.Value = mx, view.W, c.ScrollX
	} else if c.hbar != nil {
		core.Disown(c.hbar)
		c.hbar = nil
	}
}

// ScrollBars returns the current bars; either may be nil.
func (c *Container) ScrollBars() (v, h *ScrollBar) { return c.vbar, c.hbar }

func (c *Container) Render(p *core.Painter) {
	c.Relayout()
	fg, bg := c.Colors(host.White, host.Black)
	r := core.Bounds(c)
	p.Fill(r, ' ', fg, bg)
	if c.Border != core.BorderNone {
		core.DrawBorder(p, r, c.Border, c.BorderFg.Or(fg), bg)
		core.DrawTitle(p, r, c.Title, false, fg, bg)
	}
}

// DrawChildren draws every child whose shifted box meets the viewport,
// then the scrollbars.
func (c *Container) DrawChildren(ctx *core.Context, p *core.Painter) {
	view := c.Viewport()
	for _, w := range c.Children() {
		b := w.Base()
		if !b.Visible {
			continue
		}
		b.X -= c.ScrollX
		b.Y -= c.ScrollY
		if core.Bounds(w).Intersects(view) {
			ctx.Draw(p, w)
		}
		b.X += c.ScrollX
		b.Y += c.ScrollY
	}
	if c.vbar != nil {
		ctx.Draw(p, c.vbar)
	}
	if c.hbar != nil {
		ctx.Draw(p, c.hbar)
	}
}

// VisitHit offers the scrollbars first, then children topmost-first with
// the scroll shift applied. Points outside the viewport reach no child.
func (c *Container) VisitHit(x, y int, fn func(core.Widget) bool) bool {
	for _, bar := range []*ScrollBar{c.vbar, c.hbar} {
		if bar != nil && fn(bar) {
			return true
		}
	}
	view := c.Viewport()
	if !view.Contains(x, y) {
		return false
	}
	kids := c.Children()
	for i := len(kids) - 1; i >= 0; i-- {
		w := kids[i]
		b := w.Base()
		sx, sy := c.ScrollX, c.ScrollY
		b.X -= sx
		b.Y -= sy
		hit := core.Bounds(w).Intersects(view) && fn(w)
		b.X += sx
		b.Y += sy
		if hit {
			return true
		}
	}
	return false
}

// ChildShift reports the scroll offset for listed children; the scrollbars
// are not shifted.
func (c *Container) ChildShift(child core.Widget) (int, int) {
	for _, w := range c.Children() {
		if core.Same(w, child) {
			return c.ScrollX, c.ScrollY
		}
	}
	return 0, 0
}

// HandleScroll scrolls by one row per notch when the content overflows
// vertically, or horizontally when only that axis overflows.
func (c *Container) HandleScroll(_ *core.Context, dir, _, _ int) bool {
	mx, my := c.MaxScroll()
	switch {
	case my > 0:
		c.ScrollBy(0, dir)
		return true
	case mx > 0:
		c.ScrollBy(dir, 0)
		return true
	}
	return false
}
