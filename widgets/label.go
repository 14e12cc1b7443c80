package widgets

import (
	"strings"

	"github.com/framegrace/cellkit/core"
)

// LabelConfig configures a Label. Unset sizes fit the text.
type LabelConfig struct {
	core.Config
	Text  string
	Align Align
}

// Label displays static, possibly multi-line text.
type Label struct {
	core.BaseWidget
	Text  string
	Align Align
}

func NewLabel(cfg LabelConfig) *Label {
	l := &Label{Text: cfg.Text, Align: cfg.Align}
	w, h := textSize(cfg.Text)
	l.Init(cfg.Config, max(w, 1), max(h, 1))
	return l
}

// SetText replaces the text without resizing the label.
func (l *Label) SetText(s string) { l.Text = s }

func (l *Label) Render(p *core.Painter) {
	fg, bg := l.Colors(Theme.Text, Theme.Surface)
	r := core.Bounds(l)
	p.Fill(r, ' ', fg, bg)
	for i, line := range strings.Split(l.Text, "\n") {
		if i >= r.H {
			break
		}
		line = core.TruncateText(line, r.W)
		p.Text(r.X+alignOffset(l.Align, core.TextWidth(line), r.W), r.Y+i, line, fg, bg)
	}
}

// textSize returns the cell width of the widest line and the line count.
func textSize(s string) (int, int) {
	lines := strings.Split(s, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, core.TextWidth(l))
	}
	return w, len(lines)
}
