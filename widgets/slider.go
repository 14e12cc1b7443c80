// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/slider.go
// Summary: Horizontal value slider driven by keys, clicks and drags.
// Notes: Exposes "value" to the animator on top of the geometry properties.

package widgets

import (
	"math"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// SliderConfig configures a Slider. Min and Max default to 0 and 100, Step
// to 1. Default size is 20x1.
type SliderConfig struct {
	core.Config
	Min, Max float64
	Value    float64
	Step     float64
	OnChange func(v float64)
}

type Slider struct {
	core.BaseWidget
	Min, Max float64
	Step     float64
	OnChange func(v float64)

	value float64
}

func NewSlider(cfg SliderConfig) *Slider {
	s := &Slider{Min: cfg.Min, Max: cfg.Max, Step: cfg.Step, OnChange: cfg.OnChange}
	if s.Max <= s.Min {
		s.Min, s.Max = 0, 100
	}
	if s.Step <= 0 {
		s.Step = 1
	}
	s.Init(cfg.Config, 20, 1)
	s.CanFocus = true
	s.value = s.snap(cfg.Value)
	return s
}

func (s *Slider) Value() float64 { return s.value }

func (s *Slider) snap(v float64) float64 {
	v = core.ClampFloat(v, s.Min, s.Max)
	steps := math.Round((v - s.Min) / s.Step)
	return core.ClampFloat(s.Min+steps*s.Step, s.Min, s.Max)
}

// SetValue clamps and snaps v to the step grid. OnChange fires when the
// stored value changes.
func (s *Slider) SetValue(v float64) {
	v = s.snap(v)
	if v == s.value {
		return
	}
	s.value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

func (s *Slider) Property(name string) (float64, bool) {
	if name == "value" {
		return s.value, true
	}
	return s.BaseWidget.Property(name)
}

// SetProperty sets "value" without snapping so tweens move smoothly.
func (s *Slider) SetProperty(name string, v float64) bool {
	if name == "value" {
		s.value = core.ClampFloat(v, s.Min, s.Max)
		return true
	}
	return s.BaseWidget.SetProperty(name, v)
}

func (s *Slider) thumbCol(w int) int {
	if w <= 1 {
		return 0
	}
	return int(math.Round((s.value - s.Min) / (s.Max - s.Min) * float64(w-1)))
}

func (s *Slider) Render(p *core.Painter) {
	fg, bg := s.Colors(Theme.Muted, Theme.Surface)
	r := core.Bounds(s)
	p.Fill(r, ' ', fg, bg)
	y := r.Y + (r.H-1)/2
	p.HLine(r.X, y, r.W, '─', fg, bg)
	thumb := Theme.Text
	if s.IsFocused() {
		thumb = Theme.Accent
	}
	p.Cell(r.X+s.thumbCol(r.W), y, '●', thumb, bg)
}

func (s *Slider) valueAt(x int) float64 {
	r := core.Bounds(s)
	if r.W <= 1 {
		return s.Min
	}
	frac := float64(core.Clamp(x-r.X, 0, r.W-1)) / float64(r.W-1)
	return s.Min + frac*(s.Max-s.Min)
}

func (s *Slider) Click(_ *core.Context, ev core.ClickEvent) { s.SetValue(s.valueAt(ev.X)) }
func (s *Slider) HandleDrag(_ *core.Context, x, _ int)      { s.SetValue(s.valueAt(x)) }
func (s *Slider) HandleRelease(*core.Context, int, int)     {}
func (s *Slider) HandleScroll(_ *core.Context, dir, _, _ int) bool {
	s.SetValue(s.value - float64(dir)*s.Step)
	return true
}

func (s *Slider) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	switch k {
	case host.KeyLeft, host.KeyDown:
		s.SetValue(s.value - s.Step)
	case host.KeyRight, host.KeyUp:
		s.SetValue(s.value + s.Step)
	case host.KeyPageDown:
		s.SetValue(s.value - (s.Max-s.Min)/10)
	case host.KeyPageUp:
		s.SetValue(s.value + (s.Max-s.Min)/10)
	case host.KeyHome:
		s.SetValue(s.Min)
	case host.KeyEnd:
		s.SetValue(s.Max)
	default:
		return false
	}
	return true
}
