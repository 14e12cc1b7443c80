// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/widget.go
// Summary: Widget contract, shared base state and optional capabilities.
// Usage: Concrete widgets embed BaseWidget and implement Render plus any of
// the capability interfaces they need; the router probes for them.

package core

import "github.com/framegrace/cellkit/host"

// Widget is the minimal contract for drawable UI elements.
type Widget interface {
	Base() *BaseWidget
	Render(p *Painter)
}

// ClickEvent is a click in screen coordinates plus its widget-local offset
// (1-indexed, so the widget's top-left cell is 1,1).
type ClickEvent struct {
	X, Y           int
	LocalX, LocalY int
	Button         int
}

// Menu is anything that can open at a screen position on secondary click.
type Menu interface {
	Open(ctx *Context, x, y int)
}

// BaseWidget provides common fields and tree linkage for widgets.
type BaseWidget struct {
	// X and Y are relative to the parent, 1-indexed.
	X, Y          int
	Width, Height int
	Z             int
	Visible       bool
	Enabled       bool
	Fg, Bg        host.Color
	Name          string

	CanFocus   bool
	Draggable  bool
	// DragRegion is widget-local. Empty means the whole widget.
	DragRegion Rect
	Pressed    bool

	OnClick     func(ev ClickEvent)
	OnFocus     func()
	OnBlur      func()
	OnKey       func(k host.Key, mod host.ModMask) bool
	OnChar      func(r rune) bool
	OnScroll    func(dir, x, y int) bool
	OnDragStart func(x, y int)
	OnDrag      func(x, y int)
	OnDragEnd   func(x, y int)
	Menu        Menu

	parent   Widget
	children []Widget
	focused  bool
}

func (b *BaseWidget) Base() *BaseWidget    { return b }
func (b *BaseWidget) Parent() Widget       { return b.parent }
func (b *BaseWidget) IsFocused() bool      { return b.focused }
func (b *BaseWidget) Rect() Rect           { return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height} }
func (b *BaseWidget) SetPosition(x, y int) { b.X, b.Y = x, y }

// Children returns the child list in draw order. Callers must not modify it.
func (b *BaseWidget) Children() []Widget { return b.children }

func (b *BaseWidget) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.Width, b.Height = w, h
}

// Config holds the fields shared by every widget constructor. Zero values
// fall back to defaults: X and Y to 1, Width and Height to the widget's own
// default size, colours to the painter default.
type Config struct {
	X, Y          int
	Width, Height int
	Z             int
	Hidden        bool
	Disabled      bool
	Fg, Bg        host.Color
	Name          string
	Draggable     bool
}

// Init seeds b from cfg using defW and defH for unset sizes.
func (b *BaseWidget) Init(cfg Config, defW, defH int) {
	b.X, b.Y = cfg.X, cfg.Y
	if b.X == 0 {
		b.X = 1
	}
	if b.Y == 0 {
		b.Y = 1
	}
	b.Width, b.Height = cfg.Width, cfg.Height
	if b.Width <= 0 {
		b.Width = defW
	}
	if b.Height <= 0 {
		b.Height = defH
	}
	b.Z = cfg.Z
	b.Visible = !cfg.Hidden
	b.Enabled = !cfg.Disabled
	b.Fg, b.Bg = cfg.Fg, cfg.Bg
	b.Name = cfg.Name
	b.Draggable = cfg.Draggable
}

// Colors returns the widget colours with defaults applied.
func (b *BaseWidget) Colors(defFg, defBg host.Color) (host.Color, host.Color) {
	return b.Fg.Or(defFg), b.Bg.Or(defBg)
}

// Property implements the animation target contract for geometry.
func (b *BaseWidget) Property(name string) (float64, bool) {
	switch name {
	case "x":
		return float64(b.X), true
	case "y":
		return float64(b.Y), true
	case "width":
		return float64(b.Width), true
	case "height":
		return float64(b.Height), true
	case "z":
		return float64(b.Z), true
	}
	return 0, false
}

// SetProperty rounds v to the nearest cell. Changing z does not re-sort;
// use SetZ for that.
func (b *BaseWidget) SetProperty(name string, v float64) bool {
	n := round(v)
	switch name {
	case "x":
		b.X = n
	case "y":
		b.Y = n
	case "width":
		b.Width = max(n, 0)
	case "height":
		b.Height = max(n, 0)
	case "z":
		b.Z = n
	default:
		return false
	}
	return true
}

func round(v float64) int {
	if v < 0 {
		return -int(-v + 0.5)
	}
	return int(v + 0.5)
}

// Clicker widgets run variant behaviour on a consumed click, before OnClick.
type Clicker interface {
	Click(ctx *Context, ev ClickEvent)
}

// KeyHandler widgets receive key events while focused.
type KeyHandler interface {
	HandleKey(ctx *Context, k host.Key, mod host.ModMask) bool
}

// CharHandler widgets receive printable input while focused.
type CharHandler interface {
	HandleChar(ctx *Context, r rune) bool
}

// Scroller widgets handle wheel events; dir is -1 up, +1 down.
type Scroller interface {
	HandleScroll(ctx *Context, dir, x, y int) bool
}

// Dragger widgets capture the mouse after consuming a click and receive
// subsequent drag moves until release.
type Dragger interface {
	HandleDrag(ctx *Context, x, y int)
	HandleRelease(ctx *Context, x, y int)
}

// FocusListener widgets are notified when focus moves.
type FocusListener interface {
	FocusGained(ctx *Context)
	FocusLost(ctx *Context)
}

// Modal widgets receive all input while IsModal reports true and they are
// effectively visible.
type Modal interface {
	IsModal() bool
}

// HitTester overrides the default bounding-box hit test.
type HitTester interface {
	HitTest(x, y int) bool
}

// ChildHost widgets control how their children are drawn and probed,
// e.g. to apply a scroll offset.
type ChildHost interface {
	DrawChildren(ctx *Context, p *Painter)
	// VisitHit calls fn on children topmost-first with their on-screen
	// position in effect, skipping children not reachable at (x, y).
	// It stops and returns true as soon as fn does.
	VisitHit(x, y int, fn func(child Widget) bool) bool
}

// ChildShifter hosts move children on screen while drawing and probing them.
// ChildShift returns the offset subtracted from child's position then; the
// router re-applies it when it resolves drags outside that pass.
type ChildShifter interface {
	ChildShift(child Widget) (dx, dy int)
}
