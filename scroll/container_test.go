package scroll_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/scroll"
)

type row struct {
	core.BaseWidget
	glyph rune
	log   *[]string
}

func newRow(name string, glyph rune, w, h int, log *[]string) *row {
	r := &row{glyph: glyph, log: log}
	r.Init(core.Config{Name: name, Width: w, Height: h}, 1, 1)
	return r
}

func (r *row) Render(p *core.Painter) {
	if r.log != nil {
		*r.log = append(*r.log, r.Name)
	}
	p.Fill(core.Bounds(r), r.glyph, 0, 0)
}

func stacked(n int, log *[]string) (*scroll.Container, []*row) {
	c := scroll.NewContainer(scroll.ContainerConfig{
		Config: core.Config{Width: 10, Height: 5, Name: "c"},
		Layout: scroll.LayoutVertical,
	})
	var rows []*row
	for i := 1; i <= n; i++ {
		r := newRow(fmt.Sprint(i), rune('a'+i-1), 5, 1, log)
		rows = append(rows, r)
		c.Add(r)
	}
	return c, rows
}

func TestScrollClipsChildrenToViewport(t *testing.T) {
	var log []string
	c, _ := stacked(10, &log)
	ctx := core.NewContext()
	ctx.Register(c)
	c.ScrollY = 3

	buf := host.NewBuffer(10, 5)
	ctx.Draw(core.NewPainter(buf), c)

	if got := strings.Join(log, ","); got != "4,5,6,7,8" {
		t.Fatalf("drawn children = %s, want 4..8", got)
	}
	for y := 1; y <= 5; y++ {
		want := rune('a' + y + 2)
		if got := buf.Cell(1, y).Ch; got != want {
			t.Fatalf("row %d shows %q, want %q", y, got, want)
		}
	}
	if c.ScrollY != 3 {
		t.Fatalf("scroll offset changed to %d", c.ScrollY)
	}
	for _, w := range c.Children() {
		if w.Base().Y < 1 {
			t.Fatalf("child %s left shifted at y=%d", w.Base().Name, w.Base().Y)
		}
	}
}

func TestScrollBarsAreLazy(t *testing.T) {
	c, _ := stacked(3, nil)
	if v, h := c.ScrollBars(); v != nil || h != nil {
		t.Fatalf("no overflow should mean no bars")
	}
	c.Add(newRow("wide", 'w', 20, 1, nil))
	c.Add(newRow("x", 'x', 1, 1, nil), newRow("y", 'y', 1, 1, nil))
	v, h := c.ScrollBars()
	if v == nil || h == nil {
		t.Fatalf("overflow in both axes should create both bars")
	}
	if v.Base().Parent() != core.Widget(c) {
		t.Fatalf("bar should point back at its container")
	}

	v.SetValue(2)
	if c.ScrollY != 2 {
		t.Fatalf("bar change not written back: %d", c.ScrollY)
	}

	c.Clear()
	if v, h := c.ScrollBars(); v != nil || h != nil {
		t.Fatalf("bars not torn down after clear")
	}
	if v.Base().Parent() != nil {
		t.Fatalf("torn down bar keeps a parent reference")
	}
}

func TestClickOutsideViewportNeverReachesChild(t *testing.T) {
	c, rows := stacked(10, nil)
	ctx := core.NewContext()
	ctx.Register(c)
	c.ScrollY = 3
	c.Relayout()

	var hit []string
	for _, r := range rows {
		r := r
		r.OnClick = func(core.ClickEvent) { hit = append(hit, r.Name) }
	}
	ctx.Dispatch(host.Click(1, 2, 1))
	if len(hit) != 1 || hit[0] != "4" {
		t.Fatalf("click at row 1 reached %v, want [4]", hit)
	}
	// Row 1 unscrolled is above the viewport now; nothing at y=0 is reachable.
	hit = nil
	ctx.Dispatch(host.Click(1, 2, 0))
	if len(hit) != 0 {
		t.Fatalf("click above viewport reached %v", hit)
	}
	if rows[0].Base().Y != 1 {
		t.Fatalf("hit test left child shifted")
	}
}

func TestWheelScrollsAndClamps(t *testing.T) {
	c, _ := stacked(10, nil)
	ctx := core.NewContext()
	ctx.Register(c)
	for i := 0; i < 20; i++ {
		ctx.Dispatch(host.Scroll(1, 2, 2))
	}
	if c.ScrollY != 5 {
		t.Fatalf("scrollY = %d, want clamp at 5", c.ScrollY)
	}
	ctx.Dispatch(host.Scroll(-1, 2, 2))
	if c.ScrollY != 4 {
		t.Fatalf("scrollY = %d after wheel up", c.ScrollY)
	}
}

func TestEnsureVisible(t *testing.T) {
	c, rows := stacked(10, nil)
	c.EnsureVisible(rows[8])
	if c.ScrollY != 4 {
		t.Fatalf("scrollY = %d, want 4 to show row 9 at the bottom", c.ScrollY)
	}
	c.EnsureVisible(rows[1])
	if c.ScrollY != 1 {
		t.Fatalf("scrollY = %d, want 1", c.ScrollY)
	}
}

func TestLayouts(t *testing.T) {
	tests := []struct {
		name   string
		cfg    scroll.ContainerConfig
		wantXY [][2]int
	}{
		{
			name:   "vertical with border, padding and spacing",
			cfg:    scroll.ContainerConfig{Layout: scroll.LayoutVertical, Border: core.BorderSingle, Padding: 1, Spacing: 1},
			wantXY: [][2]int{{3, 3}, {3, 5}},
		},
		{
			name:   "horizontal",
			cfg:    scroll.ContainerConfig{Layout: scroll.LayoutHorizontal, Spacing: 2},
			wantXY: [][2]int{{1, 1}, {5, 1}},
		},
		{
			name:   "vertical auto margin",
			cfg:    scroll.ContainerConfig{Layout: scroll.LayoutVertical, AutoMargin: true},
			wantXY: [][2]int{{10, 3}, {8, 6}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Config = core.Config{Width: 20, Height: 8}
			c := scroll.NewContainer(tt.cfg)
			a := newRow("a", 'a', 2, 1, nil)
			b := newRow("b", 'b', 5, 1, nil)
			c.Add(a, b)
			for i, w := range []*row{a, b} {
				if w.X != tt.wantXY[i][0] || w.Y != tt.wantXY[i][1] {
					t.Fatalf("%s at (%d,%d), want %v", w.Name, w.X, w.Y, tt.wantXY[i])
				}
			}
		})
	}
}

func scrolledPanel() (*core.Context, *scroll.Container) {
	c := scroll.NewContainer(scroll.ContainerConfig{Config: core.Config{Width: 20, Height: 5, Name: "panel"}})
	filler := newRow("filler", '.', 1, 1, nil)
	filler.Y = 10
	c.Add(filler)
	ctx := core.NewContext()
	ctx.Register(c)
	return ctx, c
}

func TestMoveDragInsideScrolledContainer(t *testing.T) {
	ctx, c := scrolledPanel()
	win := newRow("win", 'w', 4, 1, nil)
	win.X, win.Y = 3, 6
	win.Draggable = true
	c.Add(win)
	c.ScrollTo(0, 3)

	if !ctx.Dispatch(host.Click(host.ButtonPrimary, 4, 3)) {
		t.Fatalf("click on the shifted child was not consumed")
	}
	ctx.Dispatch(host.Drag(host.ButtonPrimary, 5, 3))
	ctx.Dispatch(host.MouseUp(host.ButtonPrimary, 5, 3))

	if win.X != 4 || win.Y != 6 {
		t.Fatalf("child at local (%d,%d) after a one-cell drag, want (4,6)", win.X, win.Y)
	}
	if c.ScrollY != 3 {
		t.Fatalf("scroll offset changed to %d", c.ScrollY)
	}
}

type grip struct {
	row
	seen []core.Rect
}

func (g *grip) HandleDrag(*core.Context, int, int)    { g.seen = append(g.seen, core.Bounds(g)) }
func (g *grip) HandleRelease(*core.Context, int, int) { g.seen = append(g.seen, core.Bounds(g)) }

func TestDraggerSeesOnScreenBounds(t *testing.T) {
	ctx, c := scrolledPanel()
	g := &grip{}
	g.Init(core.Config{Name: "grip", X: 2, Y: 5, Width: 6, Height: 1}, 1, 1)
	g.OnClick = func(core.ClickEvent) { g.seen = append(g.seen, core.Bounds(g)) }
	c.Add(g)
	c.ScrollTo(0, 3)

	ctx.Dispatch(host.Click(host.ButtonPrimary, 3, 2))
	ctx.Dispatch(host.Drag(host.ButtonPrimary, 6, 2))
	ctx.Dispatch(host.MouseUp(host.ButtonPrimary, 6, 2))

	want := core.Rect{X: 2, Y: 2, W: 6, H: 1}
	if len(g.seen) != 3 {
		t.Fatalf("saw %d callbacks, want click, drag and release", len(g.seen))
	}
	for i, r := range g.seen {
		if r != want {
			t.Fatalf("callback %d saw bounds %+v, want %+v", i, r, want)
		}
	}
	if g.Y != 5 {
		t.Fatalf("child left shifted at y=%d", g.Y)
	}
}
