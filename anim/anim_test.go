package anim_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/cellkit/anim"
	"github.com/framegrace/cellkit/core"
)

type sprite struct{ core.BaseWidget }

func (p *sprite) Render(*core.Painter) {}

func newSprite(x int) *sprite {
	p := &sprite{}
	p.Init(core.Config{X: x, Width: 4, Height: 1}, 1, 1)
	return p
}

func TestEasingEndpoints(t *testing.T) {
	for _, name := range []string{"linear", "easeIn", "ease-out", "ease_in_out", "smoothstep"} {
		f := anim.EasingByName(name)
		assert.InDelta(t, 0, f(0), 1e-9, name)
		assert.InDelta(t, 1, f(1), 1e-9, name)
	}
	assert.InDelta(t, 0.25, anim.EaseIn(0.5), 1e-9)
	assert.InDelta(t, 0.75, anim.EaseOut(0.5), 1e-9)
	assert.InDelta(t, 0.3, anim.EasingByName("bogus")(0.3), 1e-9)
}

func TestAnimateReachesTargetAndCompletesOnce(t *testing.T) {
	a := anim.NewAnimator(clockwork.NewFakeClock())
	w := newSprite(1)
	completed := 0
	var progress []float64
	a.Animate(w, anim.Options{
		To:         map[string]float64{"x": 11},
		Duration:   time.Second,
		OnUpdate:   func(_ anim.Target, p float64) { progress = append(progress, p) },
		OnComplete: func(anim.Target) { completed++ },
	})

	a.Update(500 * time.Millisecond)
	assert.Equal(t, 6, w.X)
	a.Update(600 * time.Millisecond)
	assert.Equal(t, 11, w.X)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 0, a.Active())
	assert.Equal(t, []float64{0.5, 1}, progress)

	a.Update(time.Second)
	assert.Equal(t, 1, completed, "completion must not fire twice")
	assert.Equal(t, 11, w.X)
}

func TestAnimateStartSampledAtCallTimeAndDelayed(t *testing.T) {
	a := anim.NewAnimator(clockwork.NewFakeClock())
	w := newSprite(10)
	a.Animate(w, anim.Options{To: map[string]float64{"x": 20}, Duration: time.Second, Delay: time.Second})
	w.X = 0 // moved after scheduling; start stays 10

	a.Update(900 * time.Millisecond)
	assert.Equal(t, 0, w.X, "tween must not run during its delay")
	a.Update(600 * time.Millisecond)
	assert.Equal(t, 15, w.X)
	a.Update(500 * time.Millisecond)
	assert.Equal(t, 20, w.X)
}

func TestTickUsesClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := anim.NewAnimator(clock)
	w := newSprite(1)
	a.Animate(w, anim.Options{To: map[string]float64{"width": 14}, Duration: 100 * time.Millisecond})
	clock.Advance(50 * time.Millisecond)
	a.Tick()
	assert.Equal(t, 9, w.Width)
	clock.Advance(50 * time.Millisecond)
	a.Tick()
	assert.Equal(t, 14, w.Width)
}

func TestCancel(t *testing.T) {
	a := anim.NewAnimator(clockwork.NewFakeClock())
	w := newSprite(1)
	fired := false
	id := a.Animate(w, anim.Options{To: map[string]float64{"x": 5}, Duration: time.Second, OnComplete: func(anim.Target) { fired = true }})
	a.Animate(w, anim.Options{To: map[string]float64{"y": 5}, Duration: time.Second})
	require.True(t, a.Cancel(id))
	assert.Equal(t, 1, a.CancelTarget(w))
	a.Update(2 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, 1, w.X)
}

func TestTimersFireOnceInOrder(t *testing.T) {
	m := anim.NewTimers(clockwork.NewFakeClock())
	var got []string
	m.After(200*time.Millisecond, func() { got = append(got, "b") })
	m.After(100*time.Millisecond, func() {
		got = append(got, "a")
		m.After(0, func() { got = append(got, "nested") })
	})
	cancelled := m.After(50*time.Millisecond, func() { got = append(got, "x") })
	require.True(t, m.Cancel(cancelled))

	m.Update(150 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	m.Update(100 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "nested"}, got)
	m.Update(time.Second)
	assert.Len(t, got, 3)
	assert.Equal(t, 0, m.Pending())
}

func TestIdleTimeBeforeSchedulingDoesNotCount(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := anim.NewAnimator(clock)
	m := anim.NewTimers(clock)
	a.Tick()
	m.Tick()

	clock.Advance(900 * time.Millisecond)
	w := newSprite(1)
	done, fired := false, false
	a.Animate(w, anim.Options{To: map[string]float64{"x": 101}, Duration: time.Second, OnComplete: func(anim.Target) { done = true }})
	m.After(time.Second, func() { fired = true })

	clock.Advance(100 * time.Millisecond)
	a.Tick()
	m.Tick()
	assert.Equal(t, 11, w.X)
	assert.False(t, done)
	assert.False(t, fired)

	clock.Advance(900 * time.Millisecond)
	a.Tick()
	m.Tick()
	assert.Equal(t, 101, w.X)
	assert.True(t, done)
	assert.True(t, fired)
}
