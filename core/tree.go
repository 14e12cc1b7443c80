package core

import "sort"

// Same reports whether a and b are the same widget.
func Same(a, b Widget) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Base() == b.Base()
}

// AddChild attaches child to parent, detaching it from any previous parent
// first. Children stay sorted by ascending z; equal z keeps insertion order.
func AddChild(parent, child Widget) {
	if parent == nil || child == nil || Same(parent, child) {
		return
	}
	if old := child.Base().parent; old != nil {
		RemoveChild(old, child)
	}
	pb := parent.Base()
	child.Base().parent = parent
	pb.children = append(pb.children, child)
	sortByZ(pb.children)
}

// RemoveChild detaches the first occurrence of child from parent.
func RemoveChild(parent, child Widget) bool {
	if parent == nil || child == nil {
		return false
	}
	pb := parent.Base()
	for i, c := range pb.children {
		if Same(c, child) {
			pb.children = append(pb.children[:i:i], pb.children[i+1:]...)
			child.Base().parent = nil
			return true
		}
	}
	return false
}

// Detach removes w from its parent, if any.
func Detach(w Widget) bool {
	if p := w.Base().parent; p != nil {
		return RemoveChild(p, w)
	}
	return false
}

// SetZ changes w's z-order and re-sorts its owner's child list.
func SetZ(w Widget, z int) {
	b := w.Base()
	b.Z = z
	if b.parent != nil {
		sortByZ(b.parent.Base().children)
	}
}

func sortByZ(ws []Widget) {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Base().Z < ws[j].Base().Z })
}

// AbsolutePosition resolves w's screen position by accumulating
// (x-1, y-1) over its ancestors. A root keeps its own position.
func AbsolutePosition(w Widget) (int, int) {
	b := w.Base()
	if b.parent == nil {
		return b.X, b.Y
	}
	px, py := AbsolutePosition(b.parent)
	return px + b.X - 1, py + b.Y - 1
}

// Bounds returns w's absolute rectangle.
func Bounds(w Widget) Rect {
	x, y := AbsolutePosition(w)
	b := w.Base()
	return Rect{X: x, Y: y, W: b.Width, H: b.Height}
}

// EffectivelyVisible reports whether w and every ancestor are visible.
func EffectivelyVisible(w Widget) bool {
	for w != nil {
		b := w.Base()
		if !b.Visible {
			return false
		}
		w = b.parent
	}
	return true
}

// Root returns the topmost ancestor of w.
func Root(w Widget) Widget {
	for w.Base().parent != nil {
		w = w.Base().parent
	}
	return w
}

// IsDescendant reports whether w is ancestor or lies beneath it.
func IsDescendant(w, ancestor Widget) bool {
	for w != nil {
		if Same(w, ancestor) {
			return true
		}
		w = w.Base().parent
	}
	return false
}

// Walk visits w and its descendants in draw order. Returning false from fn
// skips the widget's children.
func Walk(w Widget, fn func(Widget) bool) {
	if !fn(w) {
		return
	}
	for _, c := range w.Base().children {
		Walk(c, fn)
	}
}

// FindByName returns the first widget beneath w (inclusive) with the given name.
func FindByName(w Widget, name string) Widget {
	var found Widget
	Walk(w, func(c Widget) bool {
		if found != nil {
			return false
		}
		if c.Base().Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// Adopt sets child's parent reference without listing it among parent's
// children. Parents use it for sub-widgets they draw and probe themselves,
// such as scrollbars.
func Adopt(parent, child Widget) {
	child.Base().parent = parent
}

// Disown clears a reference set by Adopt.
func Disown(child Widget) {
	child.Base().parent = nil
}
