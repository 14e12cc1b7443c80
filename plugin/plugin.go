// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: plugin/plugin.go
// Summary: Dependency-ordered plugin loader with rollback on init failure.
// Usage: The editor registers its built-in plugins and calls LoadAll after
// the app is initialised; UnloadAll runs from the shutdown hook.

package plugin

import (
	"fmt"
	"strings"

	"github.com/framegrace/cellkit/app"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Plugin extends an app. Init runs once dependencies are initialised; Stop
// runs in reverse load order.
type Plugin interface {
	Name() string
	Dependencies() []string
	Init(h *Host) error
	Stop()
}

// Host is what a plugin sees of the running app.
type Host struct {
	App      *app.App
	Bus      *Bus
	Services *Services
	Config   *Config
	Log      logr.Logger
}

var (
	ErrDuplicate = errors.New("plugin already registered")
	ErrMissing   = errors.New("missing dependency")
	ErrCycle     = errors.New("dependency cycle")
)

// Loader owns the registered plugins and the shared bus, services and
// config store handed to them.
type Loader struct {
	Log      logr.Logger
	Bus      *Bus
	Services *Services
	Configs  *Configs

	plugins map[string]Plugin
	// registration order keeps the load order deterministic
	names  []string
	loaded []string
}

// NewLoader creates a loader whose plugin settings live in store. A nil
// store keeps them in memory.
func NewLoader(store Store, log logr.Logger) *Loader {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Loader{
		Log:      log,
		Bus:      NewBus(log.WithName("bus")),
		Services: NewServices(),
		Configs:  NewConfigs(store),
		plugins:  make(map[string]Plugin),
	}
}

func (l *Loader) Register(p Plugin) error {
	name := p.Name()
	if _, ok := l.plugins[name]; ok {
		return errors.Wrap(ErrDuplicate, name)
	}
	l.plugins[name] = p
	l.names = append(l.names, name)
	l.Log.V(1).Info("Plugin registered", "name", name)
	return nil
}

// Order returns the registered plugins in dependency order. Among plugins
// whose dependencies are satisfied, registration order wins.
func (l *Loader) Order() ([]string, error) {
	inDegree := make(map[string]int, len(l.names))
	dependents := make(map[string][]string)
	for _, name := range l.names {
		for _, dep := range l.plugins[name].Dependencies() {
			if _, ok := l.plugins[dep]; !ok {
				return nil, errors.Wrapf(ErrMissing, "plugin %s needs %s", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	done := make(map[string]bool, len(l.names))
	order := make([]string, 0, len(l.names))
	for len(order) < len(l.names) {
		next := ""
		for _, name := range l.names {
			if !done[name] && inDegree[name] == 0 {
				next = name
				break
			}
		}
		if next == "" {
			var stuck []string
			for _, name := range l.names {
				if !done[name] {
					stuck = append(stuck, name)
				}
			}
			return nil, errors.Wrapf(ErrCycle, "among %s", strings.Join(stuck, ", "))
		}
		done[next] = true
		order = append(order, next)
		for _, d := range dependents[next] {
			inDegree[d]--
		}
	}
	return order, nil
}

// LoadAll initialises every registered plugin in dependency order. When one
// fails, the plugins already initialised are stopped in reverse order and
// the error is returned.
func (l *Loader) LoadAll(a *app.App) error {
	order, err := l.Order()
	if err != nil {
		return err
	}
	for _, name := range order {
		p := l.plugins[name]
		h := &Host{
			App:      a,
			Bus:      l.Bus,
			Services: l.Services,
			Config:   l.Configs.For(name),
			Log:      l.Log.WithName(name),
		}
		if err := initPlugin(p, h); err != nil {
			l.Log.Error(err, "Plugin init failed, rolling back", "name", name)
			l.UnloadAll()
			return errors.Wrapf(err, "init plugin %s", name)
		}
		l.loaded = append(l.loaded, name)
		l.Log.Info("Plugin loaded", "name", name)
	}
	return nil
}

func initPlugin(p Plugin, h *Host) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.WithStack(fmt.Errorf("panic: %v", r))
		}
	}()
	return p.Init(h)
}

// UnloadAll stops loaded plugins in reverse load order.
func (l *Loader) UnloadAll() {
	for i := len(l.loaded) - 1; i >= 0; i-- {
		name := l.loaded[i]
		func() {
			defer func() {
				if r := recover(); r != nil {
					l.Log.Error(fmt.Errorf("panic: %v", r), "Plugin stop failed", "name", name)
				}
			}()
			l.plugins[name].Stop()
		}()
		l.Log.V(1).Info("Plugin stopped", "name", name)
	}
	l.loaded = nil
}

// Loaded returns the names of initialised plugins in load order.
func (l *Loader) Loaded() []string {
	return append([]string(nil), l.loaded...)
}
