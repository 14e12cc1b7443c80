// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/app.go
// Summary: Application driver owning the context, root container and the
// per-tick managers.
// Usage: New(screen, events) then Run; Render and HandleEvent also work
// without the loop, which is how the tests drive it.

package app

import (
	"time"

	"github.com/framegrace/cellkit/anim"
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/scroll"
	"github.com/framegrace/cellkit/task"
	"github.com/framegrace/cellkit/widgets"
	"github.com/go-logr/logr"
	"github.com/jonboulle/clockwork"
)

// DefaultTickInterval paces the loop at roughly 20 frames per second.
const DefaultTickInterval = 50 * time.Millisecond

// App ties one widget tree to a screen and an event source.
type App struct {
	Ctx    *core.Context
	Screen host.Screen
	Events host.EventSource
	Root   *scroll.Container

	Anim   *anim.Animator
	Timers *anim.Timers
	Tasks  *task.Manager
	Toasts *widgets.ToastStack

	Clock        clockwork.Clock
	Log          logr.Logger
	TickInterval time.Duration

	stopCh chan struct{}
}

// Option customises New.
type Option func(*App)

func WithClock(c clockwork.Clock) Option      { return func(a *App) { a.Clock = c } }
func WithLogger(l logr.Logger) Option         { return func(a *App) { a.Log = l } }
func WithTickInterval(d time.Duration) Option { return func(a *App) { a.TickInterval = d } }
func WithEvents(src host.EventSource) Option  { return func(a *App) { a.Events = src } }

// New creates an initialised app drawing to screen. events may be nil for
// an app driven only through HandleEvent.
func New(screen host.Screen, events host.EventSource, opts ...Option) *App {
	a := &App{
		Screen:       screen,
		Events:       events,
		Clock:        clockwork.NewRealClock(),
		Log:          logr.Discard(),
		TickInterval: DefaultTickInterval,
	}
	for _, o := range opts {
		o(a)
	}
	if a.TickInterval <= 0 {
		a.TickInterval = DefaultTickInterval
	}
	a.Ctx = core.NewContext()
	a.Init()
	return a
}

// Init resets the context and managers and creates a fresh root container
// covering the screen. Running tasks are stopped first.
func (a *App) Init() {
	if a.Tasks != nil {
		a.Tasks.StopAll()
	}
	a.Ctx.Reset()
	a.Ctx.Log = a.Log.WithName("ui")
	a.Ctx.Clock = a.Clock
	a.Ctx.OnFault = func(err *core.FaultError) { a.Toast(err.Error(), widgets.SeverityError) }

	w, h := a.Screen.Size()
	a.Ctx.SetScreenSize(w, h)
	a.Root = scroll.NewContainer(scroll.ContainerConfig{
		Config:       core.Config{Width: w, Height: h, Name: "root"},
		NoScrollBars: true,
	})
	a.Ctx.Register(a.Root)

	a.Toasts = widgets.NewToastStack(widgets.ToastStackConfig{Clock: a.Clock})
	a.Ctx.AddOverlay(a.Toasts)
	a.Anim = anim.NewAnimator(a.Clock)
	a.Timers = anim.NewTimers(a.Clock)
	a.Tasks = task.NewManager()
	a.Tasks.Log = a.Log.WithName("tasks")
	a.Tasks.Clock = a.Clock
	a.Tasks.Notify = func(msg string) { a.Toast(msg, widgets.SeverityError) }

	a.stopCh = make(chan struct{})
}

// Add attaches widgets to the root container.
func (a *App) Add(ws ...core.Widget) { a.Root.Add(ws...) }

// Quit asks Run to return. Safe to call more than once.
func (a *App) Quit() {
	select {
	case <-a.stopCh:
	default:
		close(a.stopCh)
	}
}

func (a *App) stopped() bool {
	select {
	case <-a.stopCh:
		return true
	default:
		return false
	}
}

// Tick runs one frame: tasks, then animations and timers, then a render.
func (a *App) Tick() {
	a.step()
	a.Render()
}

func (a *App) step() {
	a.Tasks.Step()
	a.Anim.Tick()
	a.Timers.Tick()
	a.Toasts.Prune()
}

// Render draws the tree and overlays and flushes buffered screens.
func (a *App) Render() {
	p := core.NewPainter(a.Screen)
	p.Log = a.Log.WithName("paint")
	a.Ctx.Render(p)
	if f, ok := a.Screen.(host.Flusher); ok {
		f.Show()
	}
}

// HandleEvent applies resize and terminate events and routes everything
// else into the tree. It reports whether the event was consumed.
func (a *App) HandleEvent(ev host.Event) bool {
	switch ev.Type {
	case host.EventResize:
		a.Resize(ev.Width, ev.Height)
		return true
	case host.EventTerminate:
		a.Quit()
		return true
	case host.EventTimer, host.EventNone:
		return false
	}
	return a.Ctx.Dispatch(ev)
}

// Resize fits the root container to a new screen size.
func (a *App) Resize(w, h int) {
	a.Ctx.SetScreenSize(w, h)
	a.Root.Resize(w, h)
	a.Root.Relayout()
	a.Log.V(1).Info("Resized", "width", w, "height", h)
}

// Toast shows a transient notification.
func (a *App) Toast(msg string, sev widgets.Severity) {
	a.Log.V(1).Info("Toast", "severity", sev.String(), "message", msg)
	a.Toasts.Push(msg, sev)
}

func (a *App) Animate(t anim.Target, opts anim.Options) int { return a.Anim.Animate(t, opts) }
func (a *App) After(d time.Duration, fn func()) int         { return a.Timers.After(d, fn) }
func (a *App) Spawn(name string, fn task.Func) *task.Task   { return a.Tasks.Spawn(name, fn) }
