// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/toast.go
// Summary: Transient notifications stacked in the bottom-right corner.
// Usage: app.App owns one stack registered as a free-standing overlay.

package widgets

import (
	"time"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/jonboulle/clockwork"
)

// Severity selects a toast's icon and colour.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

var severityIcons = map[Severity]rune{
	SeverityInfo:    'ℹ',
	SeveritySuccess: '✓',
	SeverityWarning: '⚠',
	SeverityError:   '✗',
}

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "info"
}

func (s Severity) color() host.Color {
	switch s {
	case SeveritySuccess:
		return Theme.Success
	case SeverityWarning:
		return Theme.Warning
	case SeverityError:
		return Theme.Error
	}
	return Theme.Info
}

// Toast is one notification.
type Toast struct {
	Message  string
	Severity Severity
	Expires  time.Time
}

// ToastStackConfig configures a ToastStack. Duration defaults to 3s, Max
// to 5 and MaxWidth to 48 cells.
type ToastStackConfig struct {
	Clock    clockwork.Clock
	Duration time.Duration
	Max      int
	MaxWidth int
}

// ToastStack keeps the most recent notifications until they expire. The
// newest toast sits at the bottom.
type ToastStack struct {
	Duration time.Duration
	Max      int
	MaxWidth int

	clock  clockwork.Clock
	toasts []Toast
}

func NewToastStack(cfg ToastStackConfig) *ToastStack {
	ts := &ToastStack{Duration: cfg.Duration, Max: cfg.Max, MaxWidth: cfg.MaxWidth, clock: cfg.Clock}
	if ts.Duration <= 0 {
		ts.Duration = 3 * time.Second
	}
	if ts.Max <= 0 {
		ts.Max = 5
	}
	if ts.MaxWidth <= 0 {
		ts.MaxWidth = 48
	}
	if ts.clock == nil {
		ts.clock = clockwork.NewRealClock()
	}
	return ts
}

// Push adds a toast, evicting the oldest beyond Max.
func (ts *ToastStack) Push(msg string, sev Severity) {
	ts.toasts = append(ts.toasts, Toast{Message: msg, Severity: sev, Expires: ts.clock.Now().Add(ts.Duration)})
	if over := len(ts.toasts) - ts.Max; over > 0 {
		ts.toasts = append(ts.toasts[:0:0], ts.toasts[over:]...)
	}
}

// Prune drops expired toasts.
func (ts *ToastStack) Prune() {
	now := ts.clock.Now()
	keep := ts.toasts[:0:0]
	for _, t := range ts.toasts {
		if now.Before(t.Expires) {
			keep = append(keep, t)
		}
	}
	ts.toasts = keep
}

// Toasts returns the live toasts, oldest first.
func (ts *ToastStack) Toasts() []Toast {
	ts.Prune()
	return ts.toasts
}

func (ts *ToastStack) Clear() { ts.toasts = nil }

func (ts *ToastStack) OverlayLayer() core.Layer { return core.LayerToast }
func (ts *ToastStack) OverlayVisible() bool     { return len(ts.Toasts()) > 0 }

func (ts *ToastStack) DrawOverlay(_ *core.Context, p *core.Painter) {
	area := p.Clip()
	y := area.Bottom() - 1
	toasts := ts.Toasts()
	for i := len(toasts) - 1; i >= 0 && y >= area.Y; i-- {
		t := toasts[i]
		text := core.TruncateText(t.Message, min(ts.MaxWidth, area.W-6))
		w := core.TextWidth(text) + 4
		x := max(area.Right()-w-1, area.X)
		bg := Theme.Surface
		p.HLine(x, y, w, ' ', Theme.Text, bg)
		p.Cell(x+1, y, severityIcons[t.Severity], t.Severity.color(), bg)
		p.Text(x+3, y, text, Theme.Text, bg)
		p.Cell(x, y, '▌', t.Severity.color(), bg)
		y--
	}
}
