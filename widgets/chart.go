// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/chart.go
// Summary: Bar and line charts of a single numeric series.

package widgets

import (
	"math"
	"strconv"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

var barGlyphs = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

type ChartKind int

const (
	ChartBar ChartKind = iota
	ChartLine
)

// ChartConfig configures a Chart. Default size is 30x8.
type ChartConfig struct {
	core.Config
	Title  string
	Kind   ChartKind
	Values []float64
	// Limit caps the series length for Push; zero means the chart width.
	Limit int
	// Min and Max fix the scale. When Max <= Min the scale follows the data.
	Min, Max float64
	Color    host.Color
}

// Chart plots one value per column, newest on the right.
type Chart struct {
	core.BaseWidget
	Title    string
	Kind     ChartKind
	Limit    int
	Min, Max float64
	Color    host.Color

	values []float64
}

func NewChart(cfg ChartConfig) *Chart {
	c := &Chart{Title: cfg.Title, Kind: cfg.Kind, Limit: cfg.Limit, Min: cfg.Min, Max: cfg.Max, Color: cfg.Color}
	c.Init(cfg.Config, 30, 8)
	c.SetValues(cfg.Values)
	return c
}

func (c *Chart) Values() []float64 { return c.values }

func (c *Chart) SetValues(v []float64) { c.values = append([]float64(nil), v...) }

// Push appends a sample, dropping the oldest beyond the limit.
func (c *Chart) Push(v float64) {
	c.values = append(c.values, v)
	limit := c.Limit
	if limit <= 0 {
		limit = c.Width
	}
	if over := len(c.values) - limit; over > 0 {
		c.values = append(c.values[:0:0], c.values[over:]...)
	}
}

// scale returns the value range the plot maps to its height.
func (c *Chart) scale() (float64, float64) {
	if c.Max > c.Min {
		return c.Min, c.Max
	}
	// the baseline is always in range
	lo, hi := 0.0, 0.0
	for _, v := range c.values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func (c *Chart) Render(p *core.Painter) {
	fg, bg := c.Colors(Theme.Text, Theme.Surface)
	col := c.Color.Or(Theme.Accent)
	r := core.Bounds(c)
	p.Fill(r, ' ', fg, bg)
	plot := r
	if c.Title != "" {
		p.Text(r.X, r.Y, core.TruncateText(c.Title, r.W), fg, bg)
		plot = r.Inset(0, 1, 0, 0)
	}
	if plot.Empty() || len(c.values) == 0 {
		return
	}
	lo, hi := c.scale()
	label := strconv.FormatFloat(hi, 'g', 4, 64)
	if c.Title != "" && core.TextWidth(c.Title)+core.TextWidth(label)+1 < r.W {
		p.Text(r.Right()-core.TextWidth(label)+1, r.Y, label, Theme.Muted, bg)
	}

	vals := c.values
	if len(vals) > plot.W {
		vals = vals[len(vals)-plot.W:]
	}
	x0 := plot.Right() - len(vals) + 1
	units := plot.H * 8
	prevRow := -1
	for i, v := range vals {
		frac := (core.ClampFloat(v, lo, hi) - lo) / (hi - lo)
		x := x0 + i
		switch c.Kind {
		case ChartBar:
			n := int(math.Round(frac * float64(units)))
			for row := 0; row < plot.H && n > 0; row++ {
				g := barGlyphs[min(n, 8)]
				p.Cell(x, plot.Bottom()-row, g, col, bg)
				n -= 8
			}
		case ChartLine:
			row := int(math.Round(frac * float64(plot.H-1)))
			p.Cell(x, plot.Bottom()-row, '•', col, bg)
			// vertical connector towards the previous point
			if prevRow >= 0 {
				for y := min(row, prevRow) + 1; y < max(row, prevRow); y++ {
					p.Cell(x, plot.Bottom()-y, '│', col, bg)
				}
			}
			prevRow = row
		}
	}
}
