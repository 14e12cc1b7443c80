// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/painter.go
// Summary: Clipped drawing helpers on top of a host.Screen.
// Notes: The clip guards screen bounds; containers clip by bounding box only.

package core

import (
	"strings"

	"github.com/framegrace/cellkit/host"
	"github.com/go-logr/logr"
	"github.com/mattn/go-runewidth"
)

// Painter draws into a host screen, discarding cells outside its clip.
type Painter struct {
	screen host.Screen
	clip   Rect

	// Fg and Bg resolve unset colours.
	Fg, Bg host.Color
	// Log receives screen write failures.
	Log logr.Logger
}

// NewPainter creates a painter clipped to the full screen.
func NewPainter(s host.Screen) *Painter {
	w, h := s.Size()
	return &Painter{screen: s, clip: Rect{X: 1, Y: 1, W: w, H: h}, Fg: host.White, Bg: host.Black, Log: logr.Discard()}
}

func (p *Painter) Screen() host.Screen { return p.screen }
func (p *Painter) Clip() Rect          { return p.clip }

// WithClip narrows the clip to r for the duration of fn.
func (p *Painter) WithClip(r Rect, fn func(p *Painter)) {
	prev := p.clip
	p.clip = prev.Intersect(r)
	defer func() { p.clip = prev }()
	fn(p)
}

// Clear resets the whole screen to bg (or the painter default).
func (p *Painter) Clear(bg host.Color) {
	p.screen.SetForeground(p.Fg)
	p.screen.SetBackground(bg.Or(p.Bg))
	p.screen.Clear()
}

// Text writes s starting at (x, y), dropping cells outside the clip.
// It returns the number of cells s occupies, clipped or not.
func (p *Painter) Text(x, y int, s string, fg, bg host.Color) int {
	total := runewidth.StringWidth(s)
	if y < p.clip.Y || y > p.clip.Bottom() || p.clip.Empty() {
		return total
	}
	var sb strings.Builder
	start := -1
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		if col >= p.clip.X && col+w-1 <= p.clip.Right() {
			if start < 0 {
				start = col
			}
			sb.WriteRune(r)
		} else if start >= 0 {
			break
		}
		col += w
	}
	if start < 0 {
		return total
	}
	p.screen.SetCursor(start, y)
	p.screen.SetForeground(fg.Or(p.Fg))
	p.screen.SetBackground(bg.Or(p.Bg))
	p.screen.WriteText(sb.String())
	return total
}

// Cell writes a single character.
func (p *Painter) Cell(x, y int, ch rune, fg, bg host.Color) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.screen.SetCursor(x, y)
	p.screen.SetForeground(fg.Or(p.Fg))
	p.screen.SetBackground(bg.Or(p.Bg))
	p.screen.WriteText(string(ch))
}

// Blit writes a run of cells with per-cell colours. Colour strings hold one
// palette hex digit per character; a zero byte or unknown digit means the
// painter default.
func (p *Painter) Blit(x, y int, chars []rune, fg, bg []host.Color) {
	if y < p.clip.Y || y > p.clip.Bottom() {
		return
	}
	var cs strings.Builder
	var fs, bs []byte
	start := -1
	for i, r := range chars {
		cx := x + i
		if cx < p.clip.X || cx > p.clip.Right() {
			if start >= 0 {
				break
			}
			continue
		}
		if start < 0 {
			start = cx
		}
		cs.WriteRune(r)
		fs = append(fs, colorAt(fg, i).Hex(p.Fg))
		bs = append(bs, colorAt(bg, i).Hex(p.Bg))
	}
	if start < 0 {
		return
	}
	p.screen.SetCursor(start, y)
	p.blit(cs.String(), string(fs), string(bs))
}

// blit writes one run at the cursor. Callers build the three strings with
// one entry per rune, so a failure means a broken screen implementation.
func (p *Painter) blit(chars, fg, bg string) {
	if err := p.screen.WriteBlit(chars, fg, bg); err != nil {
		p.Log.Error(err, "Blit failed", "chars", chars)
	}
}

// Fill paints r with ch.
func (p *Painter) Fill(r Rect, ch rune, fg, bg host.Color) {
	r = r.Intersect(p.clip)
	if r.Empty() {
		return
	}
	chars := strings.Repeat(string(ch), r.W)
	fs := strings.Repeat(string(fg.Hex(p.Fg)), r.W)
	bs := strings.Repeat(string(bg.Hex(p.Bg)), r.W)
	for y := r.Y; y <= r.Bottom(); y++ {
		p.screen.SetCursor(r.X, y)
		p.blit(chars, fs, bs)
	}
}

// HLine draws a horizontal run of ch.
func (p *Painter) HLine(x, y, n int, ch rune, fg, bg host.Color) {
	p.Fill(Rect{X: x, Y: y, W: n, H: 1}, ch, fg, bg)
}

// VLine draws a vertical run of ch.
func (p *Painter) VLine(x, y, n int, ch rune, fg, bg host.Color) {
	p.Fill(Rect{X: x, Y: y, W: 1, H: n}, ch, fg, bg)
}

func colorAt(cs []host.Color, i int) host.Color {
	if i < len(cs) {
		return cs[i]
	}
	if len(cs) > 0 {
		return cs[len(cs)-1]
	}
	return host.ColorDefault
}

// TruncateText shortens s to at most w cells, adding an ellipsis when cut.
func TruncateText(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}

// TextWidth measures s in cells.
func TextWidth(s string) int { return runewidth.StringWidth(s) }
