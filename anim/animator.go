// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/animator.go
// Summary: Property tweens advanced once per frame.
// Notes: Not thread-safe; driven from the UI loop only.

package anim

import (
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
)

// Target exposes numeric properties to the animator. core.BaseWidget
// implements it for x, y, width, height and z.
type Target interface {
	Property(name string) (float64, bool)
	SetProperty(name string, v float64) bool
}

// Options describes one tween. Zero Duration completes on the first update
// past Delay; nil Easing means Linear.
type Options struct {
	To       map[string]float64
	Duration time.Duration
	Delay    time.Duration
	Easing   EasingFunc

	// OnUpdate receives linear progress, capped at 1.
	OnUpdate   func(t Target, progress float64)
	OnComplete func(t Target)
}

type span struct{ from, to float64 }

type tween struct {
	id      int
	target  Target
	props   map[string]span
	keys    []string
	opts    Options
	elapsed time.Duration
	done    bool
}

// Animator owns the active tweens.
type Animator struct {
	clock  clockwork.Clock
	last   time.Time
	nextID int
	active []*tween
}

// NewAnimator creates an animator reading time from clock (real clock if nil).
func NewAnimator(clock clockwork.Clock) *Animator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Animator{clock: clock, last: clock.Now()}
}

// Animate starts a tween and returns its id. Start values and the start time
// are sampled now; properties the target does not expose are ignored.
func (a *Animator) Animate(t Target, opts Options) int {
	if opts.Easing == nil {
		opts.Easing = Linear
	}
	a.nextID++
	tw := &tween{id: a.nextID, target: t, props: make(map[string]span, len(opts.To)), opts: opts}
	// The next Tick covers the time since the previous one; only the part
	// after this call counts.
	tw.elapsed = -a.sinceTick()
	for name, to := range opts.To {
		from, ok := t.Property(name)
		if !ok {
			continue
		}
		tw.props[name] = span{from: from, to: to}
		tw.keys = append(tw.keys, name)
	}
	sort.Strings(tw.keys)
	a.active = append(a.active, tw)
	return tw.id
}

// Update advances every tween by dt. Finished tweens fire OnComplete and are
// removed after the pass; tweens started by callbacks begin next pass.
func (a *Animator) Update(dt time.Duration) {
	pass := a.active
	for _, tw := range pass {
		if tw.done {
			continue
		}
		tw.elapsed += dt
		run := tw.elapsed - tw.opts.Delay
		if run < 0 {
			continue
		}
		t := 1.0
		if tw.opts.Duration > 0 {
			t = float64(run) / float64(tw.opts.Duration)
		}
		lin := min(t, 1)
		eased := clamp01(tw.opts.Easing(lin))
		for _, name := range tw.keys {
			s := tw.props[name]
			v := s.from + (s.to-s.from)*eased
			if t >= 1 {
				v = s.to
			}
			tw.target.SetProperty(name, v)
		}
		if tw.opts.OnUpdate != nil {
			tw.opts.OnUpdate(tw.target, lin)
		}
		if t >= 1 {
			tw.done = true
			if tw.opts.OnComplete != nil {
				tw.opts.OnComplete(tw.target)
			}
		}
	}
	a.sweep()
}

func (a *Animator) sinceTick() time.Duration {
	return max(a.clock.Now().Sub(a.last), 0)
}

// Tick advances by the clock time since the previous Tick.
func (a *Animator) Tick() {
	now := a.clock.Now()
	dt := now.Sub(a.last)
	a.last = now
	a.Update(dt)
}

func (a *Animator) sweep() {
	kept := a.active[:0:0]
	for _, tw := range a.active {
		if !tw.done {
			kept = append(kept, tw)
		}
	}
	a.active = kept
}

// Cancel stops a tween without firing OnComplete.
func (a *Animator) Cancel(id int) bool {
	for _, tw := range a.active {
		if tw.id == id && !tw.done {
			tw.done = true
			a.sweep()
			return true
		}
	}
	return false
}

// CancelTarget stops every tween on t. It returns how many were stopped.
func (a *Animator) CancelTarget(t Target) int {
	n := 0
	for _, tw := range a.active {
		if tw.target == t && !tw.done {
			tw.done = true
			n++
		}
	}
	if n > 0 {
		a.sweep()
	}
	return n
}

// Active returns the number of running tweens.
func (a *Animator) Active() int { return len(a.active) }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
