// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: task/task.go
// Summary: Cooperative tasks resumed once per frame by a Manager.
// Notes: Each task body runs on its own goroutine, but control is handed back
// and forth over unbuffered channels so only one side ever runs at a time.

package task

import (
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"
)

// Status is a task lifecycle state.
type Status int

const (
	Created Status = iota
	Running
	Suspended
	Error
	Completed
	Killed
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Error:
		return "error"
	case Completed:
		return "completed"
	case Killed:
		return "killed"
	}
	return "unknown"
}

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool { return s == Error || s == Completed || s == Killed }

// Func is a task body. It runs until it returns, calling Yield or Sleep to
// hand control back to the scheduler.
type Func func(y *Yielder) error

type stepResult struct {
	done   bool
	killed bool
	err    error
}

// Task is one cooperative task. Fields are owned by the Manager's goroutine.
type Task struct {
	ID     int
	Name   string
	Status Status
	Err    error

	OnError    func(t *Task, err error)
	OnComplete func(t *Task)

	fn      Func
	started bool
	in      chan struct{}
	out     chan stepResult
	kill    chan struct{}

	// Only touched by the task goroutine.
	exiting    bool
	reportExit bool
}

func (t *Task) killed() bool {
	select {
	case <-t.kill:
		return true
	default:
		return false
	}
}

// Yielder is handed to a task body.
type Yielder struct {
	t     *Task
	clock clockwork.Clock
}

// Task returns the task being run.
func (y *Yielder) Task() *Task { return y.t }

// Yield suspends the task until the next Step. A killed task unwinds here
// via runtime.Goexit, running its deferred functions.
func (y *Yielder) Yield() {
	t := y.t
	if t.exiting {
		return
	}
	if t.killed() {
		t.exiting, t.reportExit = true, true
		runtime.Goexit()
	}
	t.out <- stepResult{}
	select {
	case <-t.in:
	case <-t.kill:
		t.exiting, t.reportExit = true, true
		runtime.Goexit()
	}
}

// Sleep yields until d has passed on the manager's clock.
func (y *Yielder) Sleep(d time.Duration) {
	deadline := y.clock.Now().Add(d)
	for !y.t.exiting && y.clock.Now().Before(deadline) {
		y.Yield()
	}
}
