// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/theme.go
// Summary: Semantic palette shared by the stock widgets.
// Usage: Widgets fall back to these when their Fg/Bg are unset. Replace the
// package variable before building the tree to restyle everything.

package widgets

import "github.com/framegrace/cellkit/host"

// Palette maps semantic roles to colours.
type Palette struct {
	Text    host.Color
	Muted   host.Color
	Surface host.Color
	Accent  host.Color
	Border  host.Color

	SelectionFg host.Color
	SelectionBg host.Color

	ButtonFg host.Color
	ButtonBg host.Color

	Info    host.Color
	Success host.Color
	Warning host.Color
	Error   host.Color
}

// Theme is the palette the stock widgets draw with.
var Theme = Palette{
	Text:        host.White,
	Muted:       host.LightGray,
	Surface:     host.Black,
	Accent:      host.Cyan,
	Border:      host.Gray,
	SelectionFg: host.Black,
	SelectionBg: host.LightBlue,
	ButtonFg:    host.Black,
	ButtonBg:    host.LightGray,
	Info:        host.LightBlue,
	Success:     host.Green,
	Warning:     host.Yellow,
	Error:       host.Red,
}

// Align positions text horizontally within a widget.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func alignOffset(a Align, textW, boxW int) int {
	switch a {
	case AlignCenter:
		return max((boxW-textW)/2, 0)
	case AlignRight:
		return max(boxW-textW, 0)
	}
	return 0
}
