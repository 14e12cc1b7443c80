package app

import (
	"context"

	"github.com/framegrace/cellkit/host"
)

// RunConfig holds the loop hooks. Every field is optional.
type RunConfig struct {
	OnStart func(a *App)
	// OnEvent sees every host event after routing.
	OnEvent func(a *App, ev host.Event)
	// OnKey hooks run after routing, whether or not a widget consumed the key.
	OnKey      map[host.Key]func(a *App)
	OnTick     func(a *App)
	OnShutdown func(a *App)
	// QuitKey ends the loop before routing. KeyNone disables it.
	QuitKey host.Key
}

// Run drives the app until Quit, a terminate event, the quit key, the end
// of the event stream or ctx cancellation. Each tick steps tasks, advances
// animations and timers and renders once; events are handled between
// ticks. On exit every task is stopped, OnShutdown runs and the screen is
// cleared. Run returns ctx.Err() when ctx ends it and nil otherwise.
func (a *App) Run(ctx context.Context, cfg RunConfig) error {
	log := a.Log.WithName("loop")
	ticker := a.Clock.NewTicker(a.TickInterval)
	defer ticker.Stop()
	defer a.shutdown(cfg)

	var events <-chan host.Event
	if a.Events != nil {
		events = a.Events.Events()
	}
	if cfg.OnStart != nil {
		cfg.OnStart(a)
	}
	a.Render()
	log.V(1).Info("Loop started", "tick", a.TickInterval)

	for {
		select {
		case <-ctx.Done():
			log.V(1).Info("Context done", "err", ctx.Err())
			return ctx.Err()
		case <-a.stopCh:
			return nil
		case <-ticker.Chan():
			a.step()
			if cfg.OnTick != nil {
				cfg.OnTick(a)
			}
			a.Render()
		case ev, ok := <-events:
			if !ok {
				log.V(1).Info("Event stream closed")
				return nil
			}
			if ev.Type == host.EventKey && cfg.QuitKey != host.KeyNone && ev.Key == cfg.QuitKey {
				return nil
			}
			a.HandleEvent(ev)
			if cfg.OnEvent != nil {
				cfg.OnEvent(a, ev)
			}
			if ev.Type == host.EventKey {
				if fn := cfg.OnKey[ev.Key]; fn != nil {
					fn(a)
				}
			}
		}
		if a.stopped() {
			return nil
		}
	}
}

func (a *App) shutdown(cfg RunConfig) {
	a.Quit()
	a.Tasks.StopAll()
	if cfg.OnShutdown != nil {
		cfg.OnShutdown(a)
	}
	a.Screen.SetBackground(host.Black)
	a.Screen.Clear()
	if f, ok := a.Screen.(host.Flusher); ok {
		f.Show()
	}
	a.Log.V(1).Info("Loop stopped")
}
