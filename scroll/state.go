// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/state.go
// Summary: Immutable single-axis scroll state.

package scroll

// State tracks one scroll axis: content length, viewport length and offset.
// Methods return updated copies; Offset always stays within [0, MaxOffset].
type State struct {
	Content  int
	Viewport int
	Offset   int
}

// NewState creates a state at offset 0.
func NewState(content, viewport int) State {
	return State{Content: content, Viewport: viewport}.clamped()
}

func (s State) clamped() State {
	if s.Content < 0 {
		s.Content = 0
	}
	if s.Viewport < 0 {
		s.Viewport = 0
	}
	if s.Offset > s.MaxOffset() {
		s.Offset = s.MaxOffset()
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
	return s
}

// MaxOffset is the largest valid offset.
func (s State) MaxOffset() int {
	if s.Content <= s.Viewport {
		return 0
	}
	return s.Content - s.Viewport
}

func (s State) WithContent(n int) State {
	s.Content = n
	return s.clamped()
}

func (s State) WithViewport(n int) State {
	s.Viewport = n
	return s.clamped()
}

func (s State) WithOffset(n int) State {
	s.Offset = n
	return s.clamped()
}

func (s State) ScrollBy(delta int) State { return s.WithOffset(s.Offset + delta) }
func (s State) ScrollToTop() State       { return s.WithOffset(0) }
func (s State) ScrollToBottom() State    { return s.WithOffset(s.MaxOffset()) }

// ScrollTo moves the minimum distance needed to show row (0-based).
func (s State) ScrollTo(row int) State {
	switch {
	case row < s.Offset:
		return s.WithOffset(row)
	case row >= s.Offset+s.Viewport:
		return s.WithOffset(row - s.Viewport + 1)
	}
	return s
}

// ScrollToCentered puts row in the middle of the viewport when possible.
func (s State) ScrollToCentered(row int) State {
	return s.WithOffset(row - s.Viewport/2)
}

func (s State) CanScroll() bool     { return s.Content > s.Viewport }
func (s State) CanScrollUp() bool   { return s.Offset > 0 }
func (s State) CanScrollDown() bool { return s.Offset < s.MaxOffset() }

// IsRowVisible reports whether row (0-based) lies in the viewport.
func (s State) IsRowVisible(row int) bool {
	return row >= s.Offset && row < s.Offset+s.Viewport
}

// VisibleRange returns the first visible row and one past the last.
func (s State) VisibleRange() (int, int) {
	end := s.Offset + s.Viewport
	if end > s.Content {
		end = s.Content
	}
	return s.Offset, end
}
