// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/screen.go
// Summary: Drawing interface consumed by the painter.
// Notes: All coordinates are 1-indexed character cells.

package host

// Screen is the host terminal's character-cell drawing surface.
type Screen interface {
	SetCursor(x, y int)
	// WriteText writes s at the cursor using the current colours and
	// advances the cursor past it.
	WriteText(s string)
	SetForeground(c Color)
	SetBackground(c Color)
	// WriteBlit writes a run of characters at the cursor with per-character
	// colours given as palette hex digits. All three strings must have the
	// same length in runes.
	WriteBlit(chars, fg, bg string) error
	Size() (w, h int)
	Clear()
}

// Flusher is implemented by screens that buffer output until Show.
type Flusher interface {
	Show()
}
