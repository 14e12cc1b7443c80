package core

// Focused returns the focused widget, or nil.
func (c *Context) Focused() Widget { return c.focused }

// SetFocus moves focus to w (nil clears it). The previous holder is notified
// first; setting the current holder again does nothing.
func (c *Context) SetFocus(w Widget) {
	if Same(w, c.focused) {
		return
	}
	prev := c.focused
	c.focused = nil
	if prev != nil {
		pb := prev.Base()
		pb.focused = false
		c.guard("blur", prev, func() {
			if pb.OnBlur != nil {
				pb.OnBlur()
			}
			if fl, ok := prev.(FocusListener); ok {
				fl.FocusLost(c)
			}
		})
	}
	if w == nil {
		return
	}
	// A blur callback may already have moved focus elsewhere.
	if c.focused != nil {
		return
	}
	b := w.Base()
	c.focused = w
	b.focused = true
	c.guard("focus", w, func() {
		if b.OnFocus != nil {
			b.OnFocus()
		}
		if fl, ok := w.(FocusListener); ok {
			fl.FocusGained(c)
		}
	})
}

// Focusable reports whether w can take focus now.
func Focusable(w Widget) bool {
	b := w.Base()
	return b.CanFocus && b.Enabled && EffectivelyVisible(w)
}

// focusChain lists focusable widgets in draw order, limited to the active
// modal's subtree when there is one.
func (c *Context) focusChain() []Widget {
	scope := c.roots
	if m := c.ActiveModal(); m != nil {
		scope = []Widget{m}
	}
	var out []Widget
	for _, r := range scope {
		Walk(r, func(w Widget) bool {
			b := w.Base()
			if !b.Visible || !b.Enabled {
				return false
			}
			if b.CanFocus && EffectivelyVisible(w) {
				out = append(out, w)
			}
			return true
		})
	}
	return out
}

// CycleFocus moves focus to the next (or previous) focusable widget,
// wrapping around. It reports whether focus moved.
func (c *Context) CycleFocus(forward bool) bool {
	chain := c.focusChain()
	if len(chain) == 0 {
		return false
	}
	cur := -1
	for i, w := range chain {
		if Same(w, c.focused) {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && forward:
		next = 0
	case cur < 0:
		next = len(chain) - 1
	case forward:
		next = (cur + 1) % len(chain)
	default:
		next = (cur - 1 + len(chain)) % len(chain)
	}
	if next == cur {
		return false
	}
	c.SetFocus(chain[next])
	return true
}
