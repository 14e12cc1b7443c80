// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/buffer.go
// Summary: In-memory Screen used for headless rendering and tests.

package host

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Cell is one character cell of a Buffer.
type Cell struct {
	Ch rune
	Fg Color
	Bg Color
}

// Buffer is a Screen that keeps its contents in memory.
type Buffer struct {
	w, h   int
	cells  [][]Cell
	cx, cy int
	fg, bg Color
	writes int
}

// NewBuffer creates a w×h buffer cleared to white on black.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{fg: White, bg: Black, cx: 1, cy: 1}
	b.Resize(w, h)
	return b
}

// Resize reallocates the buffer and clears it.
func (b *Buffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.w, b.h = w, h
	b.cells = make([][]Cell, h)
	for y := range b.cells {
		b.cells[y] = make([]Cell, w)
	}
	b.Clear()
}

func (b *Buffer) SetCursor(x, y int)     { b.cx, b.cy = x, y }
func (b *Buffer) Cursor() (int, int)     { return b.cx, b.cy }
func (b *Buffer) SetForeground(c Color)  { b.fg = c.Or(White) }
func (b *Buffer) SetBackground(c Color)  { b.bg = c.Or(Black) }
func (b *Buffer) Size() (int, int)       { return b.w, b.h }
func (b *Buffer) Colors() (fg, bg Color) { return b.fg, b.bg }

// Writes counts text and blit operations since the last Clear.
func (b *Buffer) Writes() int { return b.writes }

func (b *Buffer) Clear() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = Cell{Ch: ' ', Fg: b.fg, Bg: b.bg}
		}
	}
	b.writes = 0
}

func (b *Buffer) WriteText(s string) {
	b.writes++
	for _, r := range s {
		b.put(b.cx, b.cy, Cell{Ch: r, Fg: b.fg, Bg: b.bg})
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		b.cx += w
	}
}

func (b *Buffer) WriteBlit(chars, fg, bg string) error {
	n := utf8.RuneCountInString(chars)
	if len(fg) != n || len(bg) != n {
		return fmt.Errorf("blit: length mismatch (chars=%d fg=%d bg=%d)", n, len(fg), len(bg))
	}
	b.writes++
	i := 0
	for _, r := range chars {
		f, ok := ColorFromHex(fg[i])
		if !ok {
			f = b.fg
		}
		g, ok := ColorFromHex(bg[i])
		if !ok {
			g = b.bg
		}
		b.put(b.cx, b.cy, Cell{Ch: r, Fg: f, Bg: g})
		b.cx++
		i++
	}
	return nil
}

func (b *Buffer) put(x, y int, c Cell) {
	if x < 1 || y < 1 || x > b.w || y > b.h {
		return
	}
	b.cells[y-1][x-1] = c
}

// Cell returns the cell at (x, y); out-of-range reads return a zero Cell.
func (b *Buffer) Cell(x, y int) Cell {
	if x < 1 || y < 1 || x > b.w || y > b.h {
		return Cell{}
	}
	return b.cells[y-1][x-1]
}

// Row returns the characters of row y as a string.
func (b *Buffer) Row(y int) string {
	if y < 1 || y > b.h {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y-1] {
		sb.WriteRune(c.Ch)
	}
	return sb.String()
}

// String renders the whole buffer, one row per line.
func (b *Buffer) String() string {
	rows := make([]string, 0, b.h)
	for y := 1; y <= b.h; y++ {
		rows = append(rows, b.Row(y))
	}
	return strings.Join(rows, "\n")
}
