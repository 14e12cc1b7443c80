package host

import "fmt"

// Key is a host key code for non-printable keys. Printable input arrives as
// EventChar instead.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeyBacktab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyCtrlA through KeyCtrlZ are contiguous.
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
	KeyCtrlSpace
)

// CtrlKey returns the Ctrl-letter key for r, or KeyNone when r is not a letter.
func CtrlKey(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyCtrlA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyCtrlA + Key(r-'A')
	}
	return KeyNone
}

var keyNames = map[Key]string{
	KeyNone: "none", KeyEnter: "enter", KeyBackspace: "backspace", KeyDelete: "delete",
	KeyTab: "tab", KeyBacktab: "backtab", KeyEscape: "escape", KeyUp: "up",
	KeyDown: "down", KeyLeft: "left", KeyRight: "right", KeyHome: "home",
	KeyEnd: "end", KeyPageUp: "pageUp", KeyPageDown: "pageDown", KeyInsert: "insert",
	KeyCtrlSpace: "ctrl-space",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("f%d", int(k-KeyF1)+1)
	}
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return fmt.Sprintf("ctrl-%c", 'a'+rune(k-KeyCtrlA))
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// ModMask holds keyboard modifiers.
type ModMask uint8

const (
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)
