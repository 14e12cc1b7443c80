package widgets

import (
	"fmt"

	"github.com/framegrace/cellkit/core"
)

var eighths = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// ProgressBarConfig configures a ProgressBar. Default size is 20x1.
type ProgressBarConfig struct {
	core.Config
	// Value is the completed fraction, 0 to 1.
	Value       float64
	ShowPercent bool
}

// ProgressBar renders a fraction with eighth-cell resolution. The animator
// can drive it through the "progress" property.
type ProgressBar struct {
	core.BaseWidget
	Value       float64
	ShowPercent bool
}

func NewProgressBar(cfg ProgressBarConfig) *ProgressBar {
	pb := &ProgressBar{Value: core.ClampFloat(cfg.Value, 0, 1), ShowPercent: cfg.ShowPercent}
	pb.Init(cfg.Config, 20, 1)
	return pb
}

func (pb *ProgressBar) SetValue(v float64) { pb.Value = core.ClampFloat(v, 0, 1) }

func (pb *ProgressBar) Property(name string) (float64, bool) {
	if name == "progress" {
		return pb.Value, true
	}
	return pb.BaseWidget.Property(name)
}

func (pb *ProgressBar) SetProperty(name string, v float64) bool {
	if name == "progress" {
		pb.SetValue(v)
		return true
	}
	return pb.BaseWidget.SetProperty(name, v)
}

func (pb *ProgressBar) Render(p *core.Painter) {
	fg, bg := pb.Colors(Theme.Accent, Theme.Border)
	r := core.Bounds(pb)
	p.Fill(r, ' ', fg, bg)
	total := int(pb.Value*float64(r.W*8) + 0.5)
	full, part := total/8, total%8
	for row := r.Y; row <= r.Bottom(); row++ {
		p.HLine(r.X, row, full, '█', fg, bg)
		if part > 0 && full < r.W {
			p.Cell(r.X+full, row, eighths[part], fg, bg)
		}
	}
	if pb.ShowPercent {
		label := fmt.Sprintf("%d%%", int(pb.Value*100+0.5))
		x := r.X + alignOffset(AlignCenter, len(label), r.W)
		for i, ch := range label {
			cb := bg
			if x+i < r.X+full {
				cb = fg
			}
			p.Cell(x+i, r.Y+(r.H-1)/2, ch, Theme.Text, cb)
		}
	}
}
