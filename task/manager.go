// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: task/manager.go
// Summary: Scheduler stepping every live task once per frame.

package task

import (
	"fmt"
	"runtime/debug"

	"github.com/go-logr/logr"
	"github.com/jonboulle/clockwork"
)

// Manager schedules cooperative tasks. It is not safe for concurrent use;
// call it from the UI loop.
type Manager struct {
	Log   logr.Logger
	Clock clockwork.Clock

	// Notify surfaces task errors that have no OnError callback.
	Notify func(msg string)

	nextID int
	tasks  []*Task
}

// NewManager creates a manager with a discarding logger and the real clock.
func NewManager() *Manager {
	return &Manager{Log: logr.Discard(), Clock: clockwork.NewRealClock()}
}

// Spawn registers fn as a new task in the created state.
func (m *Manager) Spawn(name string, fn Func) *Task {
	m.nextID++
	t := &Task{
		ID:     m.nextID,
		Name:   name,
		Status: Created,
		fn:     fn,
		in:     make(chan struct{}),
		out:    make(chan stepResult),
		kill:   make(chan struct{}),
	}
	m.tasks = append(m.tasks, t)
	m.Log.V(1).Info("Task spawned", "id", t.ID, "name", name)
	return t
}

// Step resumes every created or suspended task once, in spawn order, then
// drops tasks that reached a terminal state. Tasks spawned during the pass
// first run on the next Step.
func (m *Manager) Step() {
	pass := m.tasks
	for _, t := range pass {
		if t.Status != Created && t.Status != Suspended {
			continue
		}
		t.Status = Running
		m.resume(t)
	}
	m.sweep()
}

func (m *Manager) resume(t *Task) {
	if !t.started {
		t.started = true
		go m.run(t)
	} else {
		t.in <- struct{}{}
	}
	res := <-t.out

	switch {
	case res.killed || t.killed():
		t.Status = Killed
	case !res.done:
		t.Status = Suspended
	case res.err != nil:
		t.Status = Error
		t.Err = res.err
		m.Log.Error(res.err, "Task failed", "id", t.ID, "name", t.Name)
		switch {
		case t.OnError != nil:
			t.OnError(t, res.err)
		case m.Notify != nil:
			m.Notify(fmt.Sprintf("%s: %v", t.Name, res.err))
		}
	default:
		t.Status = Completed
		if t.OnComplete != nil {
			t.OnComplete(t)
		}
	}
}

func (m *Manager) run(t *Task) {
	var err error
	finished := false
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			m.Log.V(1).Info("Task panic", "name", t.Name, "stack", string(debug.Stack()))
			finished = true
		}
		switch {
		case finished:
			t.out <- stepResult{done: true, err: err}
		case t.reportExit:
			t.out <- stepResult{killed: true}
		}
	}()
	err = t.fn(&Yielder{t: t, clock: m.Clock})
	finished = true
}

// Kill marks a task killed. A task parked in Yield unwinds immediately;
// removal happens on the next Step.
func (m *Manager) Kill(id int) bool {
	t := m.Get(id)
	if t == nil || t.Status.Terminal() {
		return false
	}
	m.kill(t)
	return true
}

func (m *Manager) kill(t *Task) {
	select {
	case <-t.kill:
		return
	default:
		close(t.kill)
	}
	m.Log.V(1).Info("Task killed", "id", t.ID, "name", t.Name)
	if t.Status == Running {
		// Killing itself: honoured at its next Yield.
		return
	}
	wasParked := t.started && t.Status == Suspended
	t.Status = Killed
	if wasParked {
		// Wait for its deferred functions to finish unwinding.
		<-t.out
	}
}

// Get returns the live task with id, or nil.
func (m *Manager) Get(id int) *Task {
	for _, t := range m.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// All returns a snapshot of the live tasks.
func (m *Manager) All() []*Task {
	return append([]*Task(nil), m.tasks...)
}

// StopAll kills every live task and forgets them.
func (m *Manager) StopAll() {
	for _, t := range m.tasks {
		if !t.Status.Terminal() {
			m.kill(t)
		}
	}
	m.tasks = nil
}

func (m *Manager) sweep() {
	kept := m.tasks[:0:0]
	for _, t := range m.tasks {
		if !t.Status.Terminal() {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
}
