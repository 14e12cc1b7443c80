package app_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/framegrace/cellkit/anim"
	"github.com/framegrace/cellkit/app"
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/task"
	"github.com/framegrace/cellkit/widgets"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newButtonApp(t *testing.T, opts ...app.Option) (*app.App, *host.Buffer, *widgets.Button, *bool) {
	t.Helper()
	buf := host.NewBuffer(40, 10)
	a := app.New(buf, nil, opts...)
	pressed := false
	b := widgets.NewButton(widgets.ButtonConfig{
		Config:  core.Config{X: 2, Y: 2, Width: 10, Height: 3},
		Text:    "OK",
		OnPress: func() { pressed = true },
	})
	a.Add(b)
	return a, buf, b, &pressed
}

func TestClickRoutesToButton(t *testing.T) {
	a, buf, b, pressed := newButtonApp(t)

	assert.True(t, a.HandleEvent(host.Click(host.ButtonPrimary, 5, 3)))
	assert.True(t, *pressed)
	assert.Same(t, core.Widget(b), a.Ctx.Focused())

	*pressed = false
	a.HandleEvent(host.Click(host.ButtonPrimary, 30, 9))
	assert.False(t, *pressed)
	assert.Nil(t, a.Ctx.Focused())

	a.Render()
	assert.Contains(t, buf.Row(3), "OK")
}

func TestResizeFitsRoot(t *testing.T) {
	a, _, _, _ := newButtonApp(t)
	require.True(t, a.HandleEvent(host.Resized(60, 20)))
	assert.Equal(t, 60, a.Root.Width)
	assert.Equal(t, 20, a.Root.Height)
	assert.Equal(t, core.Rect{X: 1, Y: 1, W: 60, H: 20}, a.Ctx.ScreenRect())
}

func TestTickAdvancesAnimationsAndTimers(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a, _, b, _ := newButtonApp(t, app.WithClock(clock))

	done := false
	a.Animate(b, anim.Options{To: map[string]float64{"x": 12}, Duration: time.Second, OnComplete: func(anim.Target) { done = true }})
	fired := 0
	a.After(300*time.Millisecond, func() { fired++ })

	a.Tick()
	clock.Advance(500 * time.Millisecond)
	a.Tick()
	assert.Equal(t, 7, b.X)
	assert.Equal(t, 1, fired)
	assert.False(t, done)

	clock.Advance(600 * time.Millisecond)
	a.Tick()
	assert.Equal(t, 12, b.X)
	assert.True(t, done)
	assert.Equal(t, 0, a.Anim.Active())
}

func TestTaskErrorBecomesToast(t *testing.T) {
	a, buf, _, _ := newButtonApp(t, app.WithClock(clockwork.NewFakeClock()))
	a.Spawn("fetch", func(*task.Yielder) error { return errors.New("offline") })
	a.Tick()

	toasts := a.Toasts.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, widgets.SeverityError, toasts[0].Severity)
	assert.Contains(t, toasts[0].Message, "offline")

	found := false
	for y := 1; y <= 10; y++ {
		if strings.Contains(buf.Row(y), "fetch: offline") {
			found = true
		}
	}
	assert.True(t, found, "toast not drawn:\n%s", buf.String())
}

func TestWidgetPanicBecomesToast(t *testing.T) {
	a, _, _, _ := newButtonApp(t)
	a.Add(widgets.NewButton(widgets.ButtonConfig{
		Config:  core.Config{X: 20, Y: 2},
		Text:    "boom",
		OnPress: func() { panic("kaboom") },
	}))
	a.HandleEvent(host.Click(host.ButtonPrimary, 22, 2))
	require.Len(t, a.Toasts.Toasts(), 1)
	assert.Contains(t, a.Toasts.Toasts()[0].Message, "kaboom")
}

func TestRunStepsTasksUntilQuitKey(t *testing.T) {
	buf := host.NewBuffer(20, 5)
	events := make(host.ChanSource, 4)
	a := app.New(buf, events, app.WithTickInterval(5*time.Millisecond))

	var steps atomic.Int32
	tk := a.Spawn("counter", func(y *task.Yielder) error {
		for {
			steps.Add(1)
			y.Yield()
		}
	})

	started, shutdown := false, false
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(context.Background(), app.RunConfig{
			QuitKey:    host.KeyCtrlQ,
			OnStart:    func(*app.App) { started = true },
			OnShutdown: func(*app.App) { shutdown = true },
		})
	}()

	require.Eventually(t, func() bool { return steps.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	events <- host.KeyPress(host.KeyCtrlQ, host.ModCtrl)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the quit key")
	}
	assert.True(t, started)
	assert.True(t, shutdown)
	assert.Equal(t, task.Killed, tk.Status)
	assert.Equal(t, strings.Repeat(" ", 20), buf.Row(1))
}

func TestRunStopsOnTerminateAndHooks(t *testing.T) {
	events := make(host.ChanSource, 4)
	a := app.New(host.NewBuffer(20, 5), events, app.WithClock(clockwork.NewFakeClock()))

	var seen []host.Event
	events <- host.KeyPress(host.KeyF5, 0)
	events <- host.Terminated()
	err := a.Run(context.Background(), app.RunConfig{
		OnEvent: func(_ *app.App, ev host.Event) { seen = append(seen, ev) },
		OnKey: map[host.Key]func(*app.App){
			host.KeyF5: func(a *app.App) { a.Toast("refreshed", widgets.SeverityInfo) },
		},
	})
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.Equal(t, host.EventTerminate, seen[1].Type)
	require.Len(t, a.Toasts.Toasts(), 1)
	assert.Equal(t, "refreshed", a.Toasts.Toasts()[0].Message)
}

func TestRunStopsOnClosedStreamAndContext(t *testing.T) {
	events := make(host.ChanSource)
	close(events)
	a := app.New(host.NewBuffer(10, 3), events, app.WithClock(clockwork.NewFakeClock()))
	require.NoError(t, a.Run(context.Background(), app.RunConfig{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := app.New(host.NewBuffer(10, 3), make(host.ChanSource), app.WithClock(clockwork.NewFakeClock()))
	shut := false
	err := b.Run(ctx, app.RunConfig{OnShutdown: func(*app.App) { shut = true }})
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, shut)
}

func TestQuitFromKeyHook(t *testing.T) {
	events := make(host.ChanSource, 1)
	a := app.New(host.NewBuffer(10, 3), events, app.WithClock(clockwork.NewFakeClock()))
	events <- host.KeyPress(host.KeyCtrlX, host.ModCtrl)
	err := a.Run(context.Background(), app.RunConfig{
		OnKey: map[host.Key]func(*app.App){host.KeyCtrlX: (*app.App).Quit},
	})
	require.NoError(t, err)
	a.Quit()
}

func TestModalDialogIsExclusive(t *testing.T) {
	a, buf, _, pressed := newButtonApp(t)
	result := 99
	d := widgets.NewDialog(widgets.DialogConfig{
		Title:    "Confirm",
		Message:  "Sure?",
		Buttons:  []string{"Yes", "No"},
		OnResult: func(i int) { result = i },
	})
	d.Show(a.Ctx)
	a.Render()

	a.HandleEvent(host.Click(host.ButtonPrimary, 5, 3))
	assert.False(t, *pressed)
	assert.NotContains(t, buf.Row(3), "OK")

	a.HandleEvent(host.KeyPress(host.KeyEscape, 0))
	assert.Equal(t, -1, result)
	a.HandleEvent(host.Click(host.ButtonPrimary, 5, 3))
	assert.True(t, *pressed)
}
