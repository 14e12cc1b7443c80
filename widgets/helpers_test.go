package widgets_test

import (
	"strings"
	"testing"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// scene registers roots on a fresh context drawn into a w×h buffer.
type scene struct {
	ctx *core.Context
	buf *host.Buffer
}

func newScene(w, h int, roots ...core.Widget) *scene {
	s := &scene{ctx: core.NewContext(), buf: host.NewBuffer(w, h)}
	s.ctx.SetScreenSize(w, h)
	for _, r := range roots {
		s.ctx.Register(r)
	}
	return s
}

func (s *scene) render() *scene {
	s.ctx.Render(core.NewPainter(s.buf))
	return s
}

func (s *scene) click(x, y int) bool { return s.ctx.Dispatch(host.Click(host.ButtonPrimary, x, y)) }
func (s *scene) key(k host.Key) bool { return s.ctx.Dispatch(host.KeyPress(k, 0)) }

func (s *scene) typeText(text string) {
	for _, r := range text {
		s.ctx.Dispatch(host.CharTyped(r))
	}
}

func (s *scene) row(y int) string { return s.buf.Row(y) }

func assertRowContains(t *testing.T, s *scene, y int, want string) {
	t.Helper()
	if got := s.row(y); !strings.Contains(got, want) {
		t.Fatalf("row %d = %q, want it to contain %q", y, got, want)
	}
}
