package core_test

import (
	"errors"
	"testing"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

type box struct {
	core.BaseWidget
	log   *[]string
	fill  rune
	modal bool
}

func newBox(name string, x, y, w, h, z int, log *[]string) *box {
	b := &box{log: log, fill: '#'}
	b.Init(core.Config{X: x, Y: y, Width: w, Height: h, Z: z, Name: name}, 1, 1)
	return b
}

func (b *box) Render(p *core.Painter) {
	if b.log != nil {
		*b.log = append(*b.log, b.Name)
	}
	p.Fill(core.Bounds(b), b.fill, 0, 0)
}

func (b *box) IsModal() bool { return b.modal }

func zs(ws []core.Widget) []int {
	out := make([]int, len(ws))
	for i, w := range ws {
		out[i] = w.Base().Z
	}
	return out
}

func TestAddChildKeepsZOrder(t *testing.T) {
	var log []string
	root := newBox("root", 1, 1, 10, 10, 0, &log)
	for i, z := range []int{3, 1, 2, 1, 0} {
		core.AddChild(root, newBox(string(rune('a'+i)), 1, 1, 2, 2, z, &log))
		got := zs(root.Children())
		for j := 1; j < len(got); j++ {
			if got[j-1] > got[j] {
				t.Fatalf("after insert %d: z order %v not sorted", i, got)
			}
		}
	}
	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Base().Name)
	}
	if want := "ebdca"; join(names) != want {
		t.Fatalf("children = %s, want %s (ties keep insertion order)", join(names), want)
	}

	ctx := core.NewContext()
	ctx.Register(root)
	ctx.Draw(core.NewPainter(host.NewBuffer(10, 10)), root)
	if want := "root" + "ebdca"; join(log) != want {
		t.Fatalf("draw order %s, want %s", join(log), want)
	}

	var hits []string
	for _, c := range root.Children() {
		c := c
		c.Base().OnClick = func(core.ClickEvent) { hits = append(hits, c.Base().Name) }
	}
	if !ctx.HandleClick(root, core.ClickEvent{X: 1, Y: 1, Button: 1}) {
		t.Fatalf("click not consumed")
	}
	if len(hits) != 1 || hits[0] != "a" {
		t.Fatalf("topmost child should win, got %v", hits)
	}
}

func join(s []string) string {
	out := ""
	for _, x := range s {
		out += x
	}
	return out
}

func TestSetZResorts(t *testing.T) {
	root := newBox("root", 1, 1, 5, 5, 0, nil)
	a := newBox("a", 1, 1, 1, 1, 0, nil)
	b := newBox("b", 1, 1, 1, 1, 1, nil)
	core.AddChild(root, a)
	core.AddChild(root, b)
	core.SetZ(a, 5)
	if root.Children()[1] != core.Widget(a) {
		t.Fatalf("a should be last after raising its z")
	}
}

func TestAbsolutePositionThreeLevels(t *testing.T) {
	root := newBox("root", 5, 4, 40, 20, 0, nil)
	mid := newBox("mid", 3, 2, 20, 10, 0, nil)
	leaf := newBox("leaf", 2, 6, 2, 2, 0, nil)
	core.AddChild(root, mid)
	core.AddChild(mid, leaf)

	x, y := core.AbsolutePosition(leaf)
	if x != 5+3+2-2 || y != 4+2+6-2 {
		t.Fatalf("absolute = (%d,%d), want (8,10)", x, y)
	}
	if r := core.Bounds(leaf); r.W != 2 || r.H != 2 || r.X != 8 {
		t.Fatalf("bounds = %+v", r)
	}
}

func TestReparentAndRemove(t *testing.T) {
	p1 := newBox("p1", 1, 1, 5, 5, 0, nil)
	p2 := newBox("p2", 1, 1, 5, 5, 0, nil)
	c := newBox("c", 1, 1, 1, 1, 0, nil)
	core.AddChild(p1, c)
	core.AddChild(p2, c)
	if len(p1.Children()) != 0 || c.Parent() != core.Widget(p2) {
		t.Fatalf("child not moved to new parent")
	}
	if !core.RemoveChild(p2, c) || c.Parent() != nil {
		t.Fatalf("remove failed")
	}
	if core.RemoveChild(p2, c) {
		t.Fatalf("second remove should be a no-op")
	}
}

func TestHiddenAncestorBlocksDrawAndClick(t *testing.T) {
	var log []string
	root := newBox("root", 1, 1, 10, 10, 0, &log)
	mid := newBox("mid", 1, 1, 10, 10, 0, &log)
	leaf := newBox("leaf", 2, 2, 3, 3, 0, &log)
	core.AddChild(root, mid)
	core.AddChild(mid, leaf)
	clicked := false
	leaf.OnClick = func(core.ClickEvent) { clicked = true }
	root.Visible = false

	ctx := core.NewContext()
	ctx.Register(root)
	ctx.Draw(core.NewPainter(host.NewBuffer(10, 10)), leaf)
	if len(log) != 0 {
		t.Fatalf("leaf drawn under hidden ancestor: %v", log)
	}
	if ctx.HandleClick(leaf, core.ClickEvent{X: 3, Y: 3, Button: 1}) || clicked {
		t.Fatalf("leaf consumed click under hidden ancestor")
	}
}

func TestSetFocusFiresExactlyOnce(t *testing.T) {
	ctx := core.NewContext()
	a := newBox("a", 1, 1, 1, 1, 0, nil)
	b := newBox("b", 1, 1, 1, 1, 0, nil)
	var events []string
	a.OnFocus = func() { events = append(events, "a+") }
	a.OnBlur = func() { events = append(events, "a-") }
	b.OnFocus = func() { events = append(events, "b+") }
	b.OnBlur = func() { events = append(events, "b-") }

	ctx.SetFocus(a)
	events = nil
	ctx.SetFocus(b)
	if join(events) != "a-b+" {
		t.Fatalf("events = %v", events)
	}
	if a.IsFocused() || !b.IsFocused() || ctx.Focused() != core.Widget(b) {
		t.Fatalf("focus flags wrong: a=%v b=%v", a.IsFocused(), b.IsFocused())
	}
	ctx.SetFocus(b)
	if join(events) != "a-b+" {
		t.Fatalf("refocusing the holder fired callbacks: %v", events)
	}
	ctx.SetFocus(nil)
	if b.IsFocused() || ctx.Focused() != nil {
		t.Fatalf("focus not cleared")
	}
}

func TestModalReceivesAllClicks(t *testing.T) {
	ctx := core.NewContext()
	root := newBox("root", 1, 1, 40, 10, 0, nil)
	under := newBox("under", 2, 2, 10, 3, 0, nil)
	core.AddChild(root, under)
	underHit := false
	under.OnClick = func(core.ClickEvent) { underHit = true }

	dlg := newBox("dlg", 20, 4, 10, 4, 10, nil)
	dlg.modal = true
	inner := newBox("inner", 2, 2, 3, 1, 0, nil)
	core.AddChild(dlg, inner)
	ctx.Register(root)
	ctx.Register(dlg)

	if ctx.ActiveModal() != core.Widget(dlg) {
		t.Fatalf("modal not detected")
	}
	if !ctx.Dispatch(host.Click(1, 5, 3)) {
		t.Fatalf("click under modal should be reported consumed")
	}
	if underHit {
		t.Fatalf("widget beneath the modal received the click")
	}

	dlg.Visible = false
	ctx.Dispatch(host.Click(1, 5, 3))
	if !underHit {
		t.Fatalf("hidden modal still blocking input")
	}
}

func TestModalDrawsExclusively(t *testing.T) {
	var log []string
	ctx := core.NewContext()
	ctx.Register(newBox("root", 1, 1, 10, 5, 0, &log))
	dlg := newBox("dlg", 2, 2, 4, 2, 1, &log)
	dlg.modal = true
	ctx.Register(dlg)
	ctx.Render(core.NewPainter(host.NewBuffer(10, 5)))
	if join(log) != "dlg" {
		t.Fatalf("render with modal drew %v", log)
	}
}

func TestClickFocusRules(t *testing.T) {
	ctx := core.NewContext()
	root := newBox("root", 1, 1, 20, 5, 0, nil)
	field := newBox("field", 1, 1, 5, 1, 0, nil)
	field.CanFocus = true
	label := newBox("label", 10, 1, 5, 1, 0, nil)
	core.AddChild(root, field)
	core.AddChild(root, label)
	ctx.Register(root)

	ctx.Dispatch(host.Click(1, 2, 1))
	if ctx.Focused() != core.Widget(field) {
		t.Fatalf("focusable widget did not take focus")
	}
	ctx.Dispatch(host.Click(1, 11, 1))
	if ctx.Focused() != nil {
		t.Fatalf("clicking a non-focusable widget should clear focus")
	}
}

func TestWindowDragAndRelease(t *testing.T) {
	ctx := core.NewContext()
	root := newBox("root", 1, 1, 40, 20, 0, nil)
	win := newBox("win", 5, 5, 10, 5, 1, nil)
	win.Draggable = true
	win.DragRegion = core.Rect{X: 1, Y: 1, W: 10, H: 1}
	core.AddChild(root, win)
	ctx.Register(root)

	var ended bool
	win.OnDragEnd = func(int, int) { ended = true }

	if !ctx.Dispatch(host.Click(1, 7, 5)) || ctx.Dragging() != core.Widget(win) {
		t.Fatalf("title-bar click should start a drag")
	}
	ctx.Dispatch(host.Drag(1, 10, 8))
	if win.X != 8 || win.Y != 8 {
		t.Fatalf("window at (%d,%d), want (8,8)", win.X, win.Y)
	}
	root.Pressed = true
	ctx.Dispatch(host.MouseUp(1, 10, 8))
	if !ended || ctx.Dragging() != nil {
		t.Fatalf("release did not end the drag")
	}
	if root.Pressed {
		t.Fatalf("release should clear pressed flags")
	}
	if ctx.Dispatch(host.Drag(1, 12, 12)) {
		t.Fatalf("drag without capture should not be consumed")
	}
}

func TestKeysGoToFocusAndTabCycles(t *testing.T) {
	ctx := core.NewContext()
	root := newBox("root", 1, 1, 20, 5, 0, nil)
	a := newBox("a", 1, 1, 2, 1, 0, nil)
	b := newBox("b", 5, 1, 2, 1, 0, nil)
	a.CanFocus, b.CanFocus = true, true
	core.AddChild(root, a)
	core.AddChild(root, b)
	ctx.Register(root)

	var got []rune
	b.OnChar = func(r rune) bool { got = append(got, r); return true }

	if ctx.Dispatch(host.CharTyped('x')) {
		t.Fatalf("char with nothing focused should not be consumed")
	}
	ctx.Dispatch(host.KeyPress(host.KeyTab, 0))
	ctx.Dispatch(host.KeyPress(host.KeyTab, 0))
	if ctx.Focused() != core.Widget(b) {
		t.Fatalf("two tabs should land on b")
	}
	ctx.Dispatch(host.CharTyped('y'))
	if string(got) != "y" {
		t.Fatalf("focused widget got %q", string(got))
	}
	ctx.Dispatch(host.KeyPress(host.KeyBacktab, host.ModShift))
	if ctx.Focused() != core.Widget(a) {
		t.Fatalf("backtab should return to a")
	}
}

func TestScrollFirstHandlerWins(t *testing.T) {
	ctx := core.NewContext()
	root := newBox("root", 1, 1, 20, 5, 0, nil)
	child := newBox("child", 1, 1, 5, 5, 0, nil)
	core.AddChild(root, child)
	ctx.Register(root)
	var who string
	root.OnScroll = func(int, int, int) bool { who += "root"; return true }
	child.OnScroll = func(dir, _, _ int) bool { who += "child"; return dir > 0 }

	ctx.Dispatch(host.Scroll(1, 2, 2))
	if who != "child" {
		t.Fatalf("scroll went to %q", who)
	}
	who = ""
	ctx.Dispatch(host.Scroll(-1, 2, 2))
	if who != "childroot" {
		t.Fatalf("refused scroll should bubble to root, got %q", who)
	}
}

type menuStub struct{ x, y int }

func (m *menuStub) Open(_ *core.Context, x, y int) { m.x, m.y = x, y }

func TestSecondaryClickOpensContextMenu(t *testing.T) {
	ctx := core.NewContext()
	root := newBox("root", 1, 1, 20, 5, 0, nil)
	child := newBox("child", 3, 2, 5, 2, 0, nil)
	core.AddChild(root, child)
	ctx.Register(root)
	menu := &menuStub{}
	child.Menu = menu
	clicked := false
	child.OnClick = func(core.ClickEvent) { clicked = true }

	if !ctx.Dispatch(host.Click(host.ButtonSecondary, 4, 3)) {
		t.Fatalf("menu open should consume the click")
	}
	if menu.x != 4 || menu.y != 3 || clicked {
		t.Fatalf("menu at (%d,%d), clicked=%v", menu.x, menu.y, clicked)
	}
}

func TestPanicInRenderIsContained(t *testing.T) {
	ctx := core.NewContext()
	var faults []*core.FaultError
	ctx.OnFault = func(err *core.FaultError) { faults = append(faults, err) }

	var log []string
	root := newBox("root", 1, 1, 10, 5, 0, &log)
	bad := &panicky{}
	bad.Init(core.Config{Name: "bad"}, 2, 1)
	core.AddChild(root, bad)
	core.AddChild(root, newBox("after", 1, 3, 1, 1, 1, &log))
	ctx.Register(root)

	ctx.Render(core.NewPainter(host.NewBuffer(10, 5)))
	if len(faults) != 1 || faults[0].Op != "render" || faults[0].Widget != "bad" {
		t.Fatalf("faults = %v", faults)
	}
	var fe *core.FaultError
	if !errors.As(error(faults[0]), &fe) || len(fe.Stack) == 0 {
		t.Fatalf("fault carries no stack")
	}
	if join(log) != "rootafter" {
		t.Fatalf("render pass did not continue: %v", log)
	}
}

type panicky struct{ core.BaseWidget }

func (p *panicky) Render(*core.Painter) { panic("boom") }

func TestUnregisterReleasesFocus(t *testing.T) {
	ctx := core.NewContext()
	root := newBox("root", 1, 1, 5, 5, 0, nil)
	leaf := newBox("leaf", 1, 1, 1, 1, 0, nil)
	leaf.CanFocus = true
	core.AddChild(root, leaf)
	ctx.Register(root)
	ctx.SetFocus(leaf)
	ctx.Unregister(root)
	if ctx.Focused() != nil {
		t.Fatalf("focus survived unregister")
	}
}

func TestRaiseReordersRootsAndSiblings(t *testing.T) {
	ctx := core.NewContext()
	a := newBox("a", 1, 1, 4, 4, 0, nil)
	b := newBox("b", 1, 1, 4, 4, 2, nil)
	ctx.Register(a)
	ctx.Register(b)
	ctx.Raise(a)
	if roots := ctx.Roots(); roots[len(roots)-1].Base().Name != "a" || a.Z != 3 {
		t.Fatalf("a should be topmost root, z=%d", a.Z)
	}

	c1 := newBox("c1", 1, 1, 1, 1, 0, nil)
	c2 := newBox("c2", 1, 1, 1, 1, 0, nil)
	core.AddChild(b, c1)
	core.AddChild(b, c2)
	ctx.Raise(c1)
	if kids := b.Children(); kids[1].Base().Name != "c1" {
		t.Fatalf("c1 should be drawn last")
	}
	if ctx.ScreenRect().W != 80 {
		t.Fatalf("default screen rect expected")
	}
	ctx.Render(core.NewPainter(host.NewBuffer(30, 7)))
	if r := ctx.ScreenRect(); r.W != 30 || r.H != 7 {
		t.Fatalf("render should record the screen size, got %+v", r)
	}
}
