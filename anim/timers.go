package anim

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type timer struct {
	id    int
	delay time.Duration
	at    time.Duration
	fn    func()
	done  bool
}

// Timers runs one-shot callbacks after a delay measured in frame time.
type Timers struct {
	clock  clockwork.Clock
	last   time.Time
	now    time.Duration
	nextID int
	list   []*timer
}

// NewTimers creates a timer manager reading time from clock (real clock if nil).
func NewTimers(clock clockwork.Clock) *Timers {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timers{clock: clock, last: clock.Now()}
}

// After schedules fn to run once delay has elapsed from now and returns its id.
func (m *Timers) After(delay time.Duration, fn func()) int {
	m.nextID++
	at := m.now + max(m.clock.Now().Sub(m.last), 0)
	m.list = append(m.list, &timer{id: m.nextID, delay: delay, at: at, fn: fn})
	return m.nextID
}

// Cancel drops a pending timer.
func (m *Timers) Cancel(id int) bool {
	for _, t := range m.list {
		if t.id == id && !t.done {
			t.done = true
			return true
		}
	}
	return false
}

// Update advances by dt and fires due timers in scheduling order. Timers
// scheduled by callbacks are not considered until the next pass.
func (m *Timers) Update(dt time.Duration) {
	m.now += dt
	pass := m.list
	for _, t := range pass {
		if t.done || m.now-t.at < t.delay {
			continue
		}
		t.done = true
		if t.fn != nil {
			t.fn()
		}
	}
	kept := m.list[:0:0]
	for _, t := range m.list {
		if !t.done {
			kept = append(kept, t)
		}
	}
	m.list = kept
}

// Tick advances by the clock time since the previous Tick.
func (m *Timers) Tick() {
	now := m.clock.Now()
	dt := now.Sub(m.last)
	m.last = now
	m.Update(dt)
}

// Pending returns the number of timers not yet fired.
func (m *Timers) Pending() int {
	n := 0
	for _, t := range m.list {
		if !t.done {
			n++
		}
	}
	return n
}
