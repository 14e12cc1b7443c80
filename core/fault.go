package core

import (
	"fmt"
	"runtime/debug"
)

// FaultError is a recovered panic from a widget render or handler call.
type FaultError struct {
	Op     string
	Widget string
	Value  any
	Stack  []byte
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s %s: panic: %v", e.Op, e.Widget, e.Value)
}

func widgetLabel(w Widget) string {
	if w == nil {
		return "<nil>"
	}
	if n := w.Base().Name; n != "" {
		return n
	}
	return fmt.Sprintf("%T", w)
}

// guard runs fn, converting a panic into a FaultError that is logged and
// forwarded to OnFault. It reports whether fn completed.
func (c *Context) guard(op string, w Widget, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			fe := &FaultError{Op: op, Widget: widgetLabel(w), Value: r, Stack: debug.Stack()}
			c.Log.Error(fe, "Widget fault", "op", op, "widget", fe.Widget)
			if c.OnFault != nil {
				c.OnFault(fe)
			}
			ok = false
		}
	}()
	fn()
	return true
}
