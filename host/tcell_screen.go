// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/tcell_screen.go
// Summary: Adapts a tcell.Screen to the Screen and EventSource contracts.
// Usage: cmd/cellkit-edit wraps tcell.NewScreen(); tests wrap a simulation screen.
// Notes: tcell is 0-indexed, the toolkit is 1-indexed; conversion happens here only.

package host

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TcellColor maps a palette entry to a tcell colour. Unset maps to ColorDefault.
func TcellColor(c Color) tcell.Color {
	if !c.Valid() {
		return tcell.ColorDefault
	}
	return tcell.NewHexColor(c.RGB())
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
	tcell.KeyCtrlSpace:  KeyCtrlSpace,
}

// TcellScreen drives a tcell.Screen.
type TcellScreen struct {
	screen tcell.Screen
	cx, cy int
	fg, bg Color
	events chan Event

	buttons      tcell.ButtonMask
	lastX, lastY int
}

// NewTcellScreen wraps the provided screen. Call Init before drawing.
func NewTcellScreen(screen tcell.Screen) *TcellScreen {
	return &TcellScreen{
		screen: screen,
		cx:     1,
		cy:     1,
		fg:     White,
		bg:     Black,
		events: make(chan Event, 64),
	}
}

// Init initialises the terminal and enables mouse reporting.
func (d *TcellScreen) Init() error {
	if err := d.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	d.screen.EnableMouse()
	d.screen.HideCursor()
	return nil
}

// Fini restores the terminal. A blocked Start returns afterwards.
func (d *TcellScreen) Fini() { d.screen.Fini() }

// Underlying exposes the wrapped tcell.Screen.
func (d *TcellScreen) Underlying() tcell.Screen { return d.screen }

func (d *TcellScreen) style() tcell.Style {
	return tcell.StyleDefault.Foreground(TcellColor(d.fg)).Background(TcellColor(d.bg))
}

func (d *TcellScreen) SetCursor(x, y int)    { d.cx, d.cy = x, y }
func (d *TcellScreen) SetForeground(c Color) { d.fg = c.Or(White) }
func (d *TcellScreen) SetBackground(c Color) { d.bg = c.Or(Black) }
func (d *TcellScreen) Size() (int, int)      { return d.screen.Size() }
func (d *TcellScreen) Show()                 { d.screen.Show() }

func (d *TcellScreen) Clear() {
	d.screen.Fill(' ', d.style())
}

func (d *TcellScreen) WriteText(s string) {
	st := d.style()
	for _, r := range s {
		d.screen.SetContent(d.cx-1, d.cy-1, r, nil, st)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		d.cx += w
	}
}

func (d *TcellScreen) WriteBlit(chars, fg, bg string) error {
	n := utf8.RuneCountInString(chars)
	if len(fg) != n || len(bg) != n {
		return fmt.Errorf("blit: length mismatch (chars=%d fg=%d bg=%d)", n, len(fg), len(bg))
	}
	i := 0
	for _, r := range chars {
		f, ok := ColorFromHex(fg[i])
		if !ok {
			f = d.fg
		}
		b, ok := ColorFromHex(bg[i])
		if !ok {
			b = d.bg
		}
		st := tcell.StyleDefault.Foreground(TcellColor(f)).Background(TcellColor(b))
		d.screen.SetContent(d.cx-1, d.cy-1, r, nil, st)
		d.cx++
		i++
	}
	return nil
}

// Events returns the translated event stream fed by Start.
func (d *TcellScreen) Events() <-chan Event { return d.events }

// Start polls tcell until the screen is finalised or ctx is done, translating
// and forwarding events. The events channel is closed on return.
func (d *TcellScreen) Start(ctx context.Context) error {
	defer close(d.events)
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return nil
		}
		out, ok := d.Translate(ev)
		if !ok {
			continue
		}
		select {
		case d.events <- out:
		case <-ctx.Done():
			return ctx.Err()
		}
		if out.Type == EventTerminate {
			return nil
		}
	}
}

// Translate converts a tcell event. Mouse events are stateful: a press
// becomes a click, motion with a button held becomes a drag and the release
// becomes a mouse-up.
func (d *TcellScreen) Translate(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return translateKey(e)
	case *tcell.EventMouse:
		return d.translateMouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		return Resized(w, h), true
	case *tcell.EventInterrupt:
		return Terminated(), true
	}
	return Event{}, false
}

func translateMods(m tcell.ModMask) ModMask {
	var out ModMask
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	return out
}

func translateKey(e *tcell.EventKey) (Event, bool) {
	mod := translateMods(e.Modifiers())
	if e.Key() == tcell.KeyRune {
		if mod&ModCtrl != 0 {
			if k := CtrlKey(e.Rune()); k != KeyNone {
				return KeyPress(k, mod), true
			}
		}
		ev := CharTyped(e.Rune())
		ev.Mod = mod
		return ev, true
	}
	if k, ok := tcellKeys[e.Key()]; ok {
		return KeyPress(k, mod), true
	}
	if e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ {
		return KeyPress(KeyCtrlA+Key(e.Key()-tcell.KeyCtrlA), mod|ModCtrl), true
	}
	return Event{}, false
}

func (d *TcellScreen) translateMouse(e *tcell.EventMouse) (Event, bool) {
	x, y := e.Position()
	x, y = x+1, y+1
	btn := e.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		return Scroll(-1, x, y), true
	case btn&tcell.WheelDown != 0:
		return Scroll(1, x, y), true
	}

	pressed := btn & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	prev := d.buttons
	d.buttons = pressed
	defer func() { d.lastX, d.lastY = x, y }()

	switch {
	case prev == 0 && pressed != 0:
		return Click(buttonNumber(pressed), x, y), true
	case prev != 0 && pressed != 0:
		if x == d.lastX && y == d.lastY {
			return Event{}, false
		}
		return Drag(buttonNumber(pressed), x, y), true
	case prev != 0 && pressed == 0:
		return MouseUp(buttonNumber(prev), x, y), true
	}
	return Event{}, false
}

func buttonNumber(m tcell.ButtonMask) int {
	switch {
	case m&tcell.Button1 != 0:
		return ButtonPrimary
	case m&tcell.Button2 != 0:
		return ButtonSecondary
	case m&tcell.Button3 != 0:
		return ButtonMiddle
	}
	return 0
}
