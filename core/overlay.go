package core

import "sort"

// Layer orders overlays; higher layers draw later.
type Layer int

const (
	LayerToast Layer = iota
	LayerAutocomplete
	LayerDropdown
)

// Overlay widgets draw transient content above the whole tree after the
// main pass.
type Overlay interface {
	OverlayLayer() Layer
	OverlayVisible() bool
	DrawOverlay(ctx *Context, p *Painter)
}

// Dropdown is an overlay that gets first refusal on clicks inside its list
// and is closed by clicks nobody consumed.
type Dropdown interface {
	Overlay
	DropdownBounds() Rect
	DropdownClick(ctx *Context, ev ClickEvent) bool
	CloseDropdown(ctx *Context)
}

// AddOverlay registers a free-standing overlay such as a toast stack.
func (c *Context) AddOverlay(o Overlay) {
	for _, x := range c.overlays {
		if x == o {
			return
		}
	}
	c.overlays = append(c.overlays, o)
}

func (c *Context) RemoveOverlay(o Overlay) {
	for i, x := range c.overlays {
		if x == o {
			c.overlays = append(c.overlays[:i:i], c.overlays[i+1:]...)
			return
		}
	}
}

// Overlays returns the visible overlays in draw order: registered overlays
// and overlay widgets from the drawn tree, stably sorted by layer.
func (c *Context) Overlays() []Overlay {
	var out []Overlay
	for _, o := range c.overlays {
		if o.OverlayVisible() {
			out = append(out, o)
		}
	}
	scope := c.roots
	if m := c.ActiveModal(); m != nil {
		scope = []Widget{m}
	}
	for _, r := range scope {
		if !EffectivelyVisible(r) {
			continue
		}
		Walk(r, func(w Widget) bool {
			if !w.Base().Visible {
				return false
			}
			if o, ok := w.(Overlay); ok && o.OverlayVisible() {
				out = append(out, o)
			}
			return true
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OverlayLayer() < out[j].OverlayLayer() })
	return out
}

// openDropdowns lists visible dropdowns topmost-first.
func (c *Context) openDropdowns() []Dropdown {
	ovs := c.Overlays()
	var out []Dropdown
	for i := len(ovs) - 1; i >= 0; i-- {
		if d, ok := ovs[i].(Dropdown); ok {
			out = append(out, d)
		}
	}
	return out
}

func (c *Context) drawOverlays(p *Painter) {
	for _, o := range c.Overlays() {
		w, _ := o.(Widget)
		c.guard("overlay", w, func() { o.DrawOverlay(c, p) })
	}
}
