// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/window.go
// Summary: Bordered container with a draggable title bar and close button.
// Usage: Dialog and FilePicker build on Window; present/dismiss manage
// floating windows in the root registry.

package widgets

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/scroll"
)

// WindowConfig configures a Window. Default size is 10x5.
type WindowConfig struct {
	core.Config
	Title    string
	Layout   scroll.Layout
	Padding  int
	Spacing  int
	Closable bool
	// Fixed disables dragging by the title bar.
	Fixed   bool
	OnClose func()
}

// Window is a scroll.Container with a single border whose top row acts as
// a drag handle.
type Window struct {
	scroll.Container
	Closable bool
	OnClose  func()
}

func NewWindow(cfg WindowConfig) *Window {
	w := &Window{}
	w.configure(cfg)
	return w
}

func (w *Window) configure(cfg WindowConfig) {
	w.Configure(scroll.ContainerConfig{
		Config:  cfg.Config,
		Layout:  cfg.Layout,
		Padding: cfg.Padding,
		Spacing: cfg.Spacing,
		Border:  core.BorderSingle,
		Title:   cfg.Title,
	})
	w.Closable = cfg.Closable
	w.OnClose = cfg.OnClose
	w.Draggable = !cfg.Fixed
	w.syncDragRegion()
}

// syncDragRegion keeps the handle on the title row, clear of the close
// button.
func (w *Window) syncDragRegion() {
	dw := w.Width
	if w.Closable {
		dw -= 4
	}
	w.DragRegion = core.Rect{X: 1, Y: 1, W: max(dw, 0), H: 1}
}

func (w *Window) onCloseButton(ev core.ClickEvent) bool {
	return w.Closable && ev.LocalY == 1 && ev.LocalX >= w.Width-3 && ev.LocalX <= w.Width-1
}

func (w *Window) Render(p *core.Painter) {
	w.syncDragRegion()
	w.Container.Render(p)
	if w.Closable {
		r := core.Bounds(w)
		p.Text(r.Right()-3, r.Y, "[×]", Theme.Error, w.Bg.Or(Theme.Surface))
	}
}

func (w *Window) Click(ctx *core.Context, ev core.ClickEvent) {
	if w.onCloseButton(ev) {
		w.Close(ctx)
	}
}

// Close hides the window, drops it from the registry when it was a root
// and calls OnClose.
func (w *Window) Close(ctx *core.Context) {
	w.Visible = false
	if ctx != nil {
		ctx.Unregister(w)
	}
	if w.OnClose != nil {
		w.OnClose()
	}
}

// present centres w on the screen, registers it above every other root and
// makes it visible.
func present(ctx *core.Context, w core.Widget) {
	b := w.Base()
	scr := ctx.ScreenRect()
	b.X = scr.X + max(scr.W-b.Width, 0)/2
	b.Y = scr.Y + max(scr.H-b.Height, 0)/2
	b.Visible = true
	ctx.Register(w)
	ctx.Raise(w)
}
