// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/event.go
// Summary: Tagged host input events and the event source contract.

package host

import "fmt"

// EventType tags a host event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventChar
	EventMouseClick
	EventMouseDrag
	EventMouseUp
	EventMouseScroll
	EventTimer
	EventResize
	EventTerminate
)

func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventChar:
		return "char"
	case EventMouseClick:
		return "mouse_click"
	case EventMouseDrag:
		return "mouse_drag"
	case EventMouseUp:
		return "mouse_up"
	case EventMouseScroll:
		return "mouse_scroll"
	case EventTimer:
		return "timer"
	case EventResize:
		return "resize"
	case EventTerminate:
		return "terminate"
	default:
		return "none"
	}
}

// Mouse buttons as reported by the host.
const (
	ButtonPrimary   = 1
	ButtonSecondary = 2
	ButtonMiddle    = 3
)

// Event is one host input event. Only the fields relevant to Type are set.
type Event struct {
	Type EventType

	Key Key
	Mod ModMask

	Char rune

	Button int
	X, Y   int

	// Direction is -1 for scroll up and +1 for scroll down.
	Direction int

	TimerID int

	Width, Height int
}

func (e Event) String() string {
	switch e.Type {
	case EventKey:
		return fmt.Sprintf("(key, %s)", e.Key)
	case EventChar:
		return fmt.Sprintf("(char, %q)", e.Char)
	case EventMouseClick, EventMouseDrag:
		return fmt.Sprintf("(%s, %d, %d, %d)", e.Type, e.Button, e.X, e.Y)
	case EventMouseScroll:
		return fmt.Sprintf("(mouse_scroll, %d, %d, %d)", e.Direction, e.X, e.Y)
	case EventTimer:
		return fmt.Sprintf("(timer, %d)", e.TimerID)
	case EventResize:
		return fmt.Sprintf("(resize, %d, %d)", e.Width, e.Height)
	default:
		return "(" + e.Type.String() + ")"
	}
}

func KeyPress(k Key, mod ModMask) Event { return Event{Type: EventKey, Key: k, Mod: mod} }
func CharTyped(r rune) Event            { return Event{Type: EventChar, Char: r} }
func Click(button, x, y int) Event {
	return Event{Type: EventMouseClick, Button: button, X: x, Y: y}
}
func Drag(button, x, y int) Event {
	return Event{Type: EventMouseDrag, Button: button, X: x, Y: y}
}
func MouseUp(button, x, y int) Event {
	return Event{Type: EventMouseUp, Button: button, X: x, Y: y}
}
func Scroll(dir, x, y int) Event {
	return Event{Type: EventMouseScroll, Direction: dir, X: x, Y: y}
}
func TimerFired(id int) Event { return Event{Type: EventTimer, TimerID: id} }
func Resized(w, h int) Event  { return Event{Type: EventResize, Width: w, Height: h} }
func Terminated() Event       { return Event{Type: EventTerminate} }

// EventSource delivers host events. The channel closes when the host goes away.
type EventSource interface {
	Events() <-chan Event
}

// ChanSource is an EventSource backed by a caller-owned channel. Tests and
// embedders feed events through it.
type ChanSource chan Event

func (c ChanSource) Events() <-chan Event { return c }
