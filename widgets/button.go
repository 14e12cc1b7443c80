// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/button.go
// Summary: Clickable push button.

package widgets

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// ButtonConfig configures a Button. The default size is the text plus two
// cells of padding on each side, one row high.
type ButtonConfig struct {
	core.Config
	Text    string
	OnPress func()
}

// Button runs OnPress when clicked, or on Enter or Space while focused.
type Button struct {
	core.BaseWidget
	Text    string
	OnPress func()
}

func NewButton(cfg ButtonConfig) *Button {
	b := &Button{Text: cfg.Text, OnPress: cfg.OnPress}
	b.Init(cfg.Config, core.TextWidth(cfg.Text)+4, 1)
	b.CanFocus = true
	return b
}

func (b *Button) Render(p *core.Painter) {
	fg, bg := b.Colors(Theme.ButtonFg, Theme.ButtonBg)
	switch {
	case b.Pressed:
		fg, bg = bg, fg
	case b.IsFocused():
		bg = Theme.Accent
	}
	r := core.Bounds(b)
	p.Fill(r, ' ', fg, bg)
	text := core.TruncateText(b.Text, r.W)
	x := r.X + alignOffset(AlignCenter, core.TextWidth(text), r.W)
	p.Text(x, r.Y+(r.H-1)/2, text, fg, bg)
}

func (b *Button) Click(*core.Context, core.ClickEvent) { b.press() }

func (b *Button) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	if k != host.KeyEnter {
		return false
	}
	b.press()
	return true
}

func (b *Button) HandleChar(_ *core.Context, r rune) bool {
	if r != ' ' {
		return false
	}
	b.press()
	return true
}

func (b *Button) press() {
	if b.OnPress != nil {
		b.OnPress()
	}
}
