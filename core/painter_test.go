package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/go-logr/logr/funcr"
)

func TestPainterTextClipsToScreen(t *testing.T) {
	buf := host.NewBuffer(6, 2)
	p := core.NewPainter(buf)
	if n := p.Text(4, 1, "hello", host.Red, 0); n != 5 {
		t.Fatalf("Text returned %d", n)
	}
	if got := buf.Row(1); got != "   hel" {
		t.Fatalf("row 1 = %q", got)
	}
	p.Text(-1, 2, "abcd", 0, 0)
	if got := buf.Row(2); got != "cd    " {
		t.Fatalf("row 2 = %q", got)
	}
	if c := buf.Cell(4, 1); c.Fg != host.Red || c.Bg != host.Black {
		t.Fatalf("cell colours %v/%v", c.Fg, c.Bg)
	}
}

func TestPainterWithClip(t *testing.T) {
	buf := host.NewBuffer(5, 3)
	p := core.NewPainter(buf)
	p.WithClip(core.Rect{X: 2, Y: 2, W: 2, H: 1}, func(p *core.Painter) {
		p.Fill(core.Rect{X: 1, Y: 1, W: 5, H: 3}, '*', 0, host.Blue)
	})
	want := []string{"     ", " **  ", "     "}
	for i, w := range want {
		if got := buf.Row(i + 1); got != w {
			t.Fatalf("row %d = %q, want %q", i+1, got, w)
		}
	}
	if c := buf.Cell(2, 2); c.Bg != host.Blue {
		t.Fatalf("fill bg = %v", c.Bg)
	}
	if p.Clip() != (core.Rect{X: 1, Y: 1, W: 5, H: 3}) {
		t.Fatalf("clip not restored: %+v", p.Clip())
	}
}

func TestDrawBorderAndTitle(t *testing.T) {
	buf := host.NewBuffer(8, 3)
	p := core.NewPainter(buf)
	r := core.Rect{X: 1, Y: 1, W: 8, H: 3}
	core.DrawBorder(p, r, core.BorderSingle, host.Cyan, 0)
	core.DrawTitle(p, r, "ab", false, 0, 0)
	want := []string{"┌ ab ──┐", "│      │", "└──────┘"}
	for i, w := range want {
		if got := buf.Row(i + 1); got != w {
			t.Fatalf("row %d = %q, want %q", i+1, got, w)
		}
	}
	if c := buf.Cell(1, 1); c.Fg != host.Cyan {
		t.Fatalf("border fg = %v", c.Fg)
	}
}

func TestRectOps(t *testing.T) {
	a := core.Rect{X: 1, Y: 1, W: 4, H: 4}
	b := core.Rect{X: 3, Y: 3, W: 4, H: 4}
	if !a.Intersects(b) || a.Intersect(b) != (core.Rect{X: 3, Y: 3, W: 2, H: 2}) {
		t.Fatalf("intersect = %+v", a.Intersect(b))
	}
	if a.Intersects(core.Rect{X: 5, Y: 1, W: 1, H: 1}) {
		t.Fatalf("adjacent rects do not intersect")
	}
	if a.Right() != 4 || a.Bottom() != 4 || !a.Contains(4, 4) || a.Contains(5, 4) {
		t.Fatalf("edge checks failed")
	}
	if in := a.Inset(1, 1, 1, 1); in != (core.Rect{X: 2, Y: 2, W: 2, H: 2}) {
		t.Fatalf("inset = %+v", in)
	}
	if core.Clamp(7, 0, 5) != 5 || core.Clamp(-1, 0, 5) != 0 || core.ClampFloat(0.5, 0, 1) != 0.5 {
		t.Fatalf("clamp")
	}
}

type brokenBlit struct{ *host.Buffer }

func (brokenBlit) WriteBlit(string, string, string) error { return errors.New("blit: length mismatch") }

func TestPainterLogsBlitFailures(t *testing.T) {
	var lines []string
	p := core.NewPainter(brokenBlit{host.NewBuffer(4, 2)})
	p.Log = funcr.New(func(prefix, args string) { lines = append(lines, prefix+" "+args) }, funcr.Options{})

	p.Fill(core.Rect{X: 1, Y: 1, W: 4, H: 2}, '#', 0, 0)
	p.Blit(1, 1, []rune("ab"), nil, nil)
	if len(lines) != 3 {
		t.Fatalf("logged %d failures, want one per row and one for the blit: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "length mismatch") {
		t.Fatalf("log line %q lacks the error", lines[0])
	}
}
