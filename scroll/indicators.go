// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/indicators.go
// Summary: Overflow arrows for list-like widgets that scroll internally.

package scroll

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// Default indicator glyphs.
const (
	DefaultUpGlyph   = '▲'
	DefaultDownGlyph = '▼'
)

// IndicatorConfig configures overflow arrows.
type IndicatorConfig struct {
	// Left draws the arrows on the left edge instead of the right.
	Left bool

	Fg, Bg host.Color

	UpGlyph   rune
	DownGlyph rune
}

// DefaultIndicatorConfig returns the standard glyphs in the given colours.
func DefaultIndicatorConfig(fg, bg host.Color) IndicatorConfig {
	return IndicatorConfig{Fg: fg, Bg: bg, UpGlyph: DefaultUpGlyph, DownGlyph: DefaultDownGlyph}
}

// DrawIndicators shows an up arrow when content lies above the viewport and
// a down arrow when content lies below it.
func DrawIndicators(p *core.Painter, rect core.Rect, state State, cfg IndicatorConfig) {
	if rect.Empty() {
		return
	}
	x := rect.Right()
	if cfg.Left {
		x = rect.X
	}
	if state.CanScrollUp() {
		g := cfg.UpGlyph
		if g == 0 {
			g = DefaultUpGlyph
		}
		p.Cell(x, rect.Y, g, cfg.Fg, cfg.Bg)
	}
	if state.CanScrollDown() {
		g := cfg.DownGlyph
		if g == 0 {
			g = DefaultDownGlyph
		}
		p.Cell(x, rect.Bottom(), g, cfg.Fg, cfg.Bg)
	}
}
