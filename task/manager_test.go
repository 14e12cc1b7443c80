package task_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/cellkit/task"
)

func TestReturningTaskCompletesInOneStep(t *testing.T) {
	m := task.NewManager()
	done := false
	tk := m.Spawn("quick", func(*task.Yielder) error { return nil })
	tk.OnComplete = func(*task.Task) { done = true }
	require.Equal(t, task.Created, tk.Status)

	m.Step()
	assert.Equal(t, task.Completed, tk.Status)
	assert.True(t, done)
	assert.Empty(t, m.All())
	assert.Nil(t, m.Get(tk.ID))
}

func TestYieldSuspendsUntilNextStep(t *testing.T) {
	m := task.NewManager()
	count := 0
	tk := m.Spawn("counter", func(y *task.Yielder) error {
		for i := 0; i < 3; i++ {
			count++
			y.Yield()
		}
		return nil
	})
	for i := 1; i <= 3; i++ {
		m.Step()
		require.Equal(t, i, count)
		require.Equal(t, task.Suspended, tk.Status)
	}
	m.Step()
	assert.Equal(t, task.Completed, tk.Status)
}

func TestTasksInterleaveOneAtATime(t *testing.T) {
	m := task.NewManager()
	var trace []string
	body := func(name string) task.Func {
		return func(y *task.Yielder) error {
			for i := 1; i <= 2; i++ {
				trace = append(trace, name)
				y.Yield()
			}
			return nil
		}
	}
	m.Spawn("a", body("a"))
	m.Spawn("b", body("b"))
	for i := 0; i < 3; i++ {
		m.Step()
	}
	assert.Equal(t, []string{"a", "b", "a", "b"}, trace)
	assert.Empty(t, m.All())
}

func TestErrorsAreContained(t *testing.T) {
	m := task.NewManager()
	var notes []string
	m.Notify = func(msg string) { notes = append(notes, msg) }

	var gotErr error
	failing := m.Spawn("failing", func(*task.Yielder) error { return errors.New("disk full") })
	failing.OnError = func(_ *task.Task, err error) { gotErr = err }
	panicky := m.Spawn("panicky", func(y *task.Yielder) error {
		y.Yield()
		panic("boom")
	})
	survivor := m.Spawn("survivor", func(y *task.Yielder) error {
		y.Yield()
		y.Yield()
		return nil
	})

	m.Step()
	assert.Equal(t, task.Error, failing.Status)
	assert.EqualError(t, gotErr, "disk full")
	assert.Empty(t, notes, "OnError takes precedence over Notify")

	m.Step()
	assert.Equal(t, task.Error, panicky.Status)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "panicky: panic: boom")
	assert.Equal(t, task.Suspended, survivor.Status)

	m.Step()
	assert.Equal(t, task.Completed, survivor.Status)
}

func TestKillUnwindsParkedTask(t *testing.T) {
	m := task.NewManager()
	cleaned := false
	iterations := 0
	tk := m.Spawn("forever", func(y *task.Yielder) error {
		defer func() { cleaned = true }()
		for {
			iterations++
			y.Yield()
		}
	})
	m.Step()
	require.Equal(t, task.Suspended, tk.Status)

	require.True(t, m.Kill(tk.ID))
	assert.Equal(t, task.Killed, tk.Status)
	assert.True(t, cleaned, "deferred functions run when a parked task is killed")
	assert.Len(t, m.All(), 1, "removal waits for the next step")

	m.Step()
	assert.Equal(t, 1, iterations)
	assert.Empty(t, m.All())
	assert.False(t, m.Kill(tk.ID))
}

func TestKillBeforeFirstStep(t *testing.T) {
	m := task.NewManager()
	ran := false
	tk := m.Spawn("never", func(*task.Yielder) error { ran = true; return nil })
	m.Kill(tk.ID)
	m.Step()
	assert.False(t, ran)
	assert.Equal(t, task.Killed, tk.Status)
	assert.Empty(t, m.All())
}

func TestSelfKillHonouredAtYield(t *testing.T) {
	m := task.NewManager()
	after := false
	var tk *task.Task
	tk = m.Spawn("self", func(y *task.Yielder) error {
		m.Kill(tk.ID)
		y.Yield()
		after = true
		return nil
	})
	m.Step()
	assert.Equal(t, task.Killed, tk.Status)
	assert.False(t, after)
	assert.Empty(t, m.All())
}

func TestSleepWaitsOnClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := task.NewManager()
	m.Clock = clock
	tk := m.Spawn("sleeper", func(y *task.Yielder) error {
		y.Sleep(time.Second)
		return nil
	})
	m.Step()
	m.Step()
	assert.Equal(t, task.Suspended, tk.Status)
	clock.Advance(time.Second)
	m.Step()
	assert.Equal(t, task.Completed, tk.Status)
}

func TestStopAll(t *testing.T) {
	m := task.NewManager()
	stopped := 0
	for i := 0; i < 3; i++ {
		m.Spawn("loop", func(y *task.Yielder) error {
			defer func() { stopped++ }()
			for {
				y.Yield()
			}
		})
	}
	m.Step()
	m.StopAll()
	assert.Equal(t, 3, stopped)
	assert.Empty(t, m.All())
}

func TestSpawnDuringStepRunsNextStep(t *testing.T) {
	m := task.NewManager()
	childRan := false
	m.Spawn("parent", func(*task.Yielder) error {
		m.Spawn("child", func(*task.Yielder) error { childRan = true; return nil })
		return nil
	})
	m.Step()
	assert.False(t, childRan)
	require.Len(t, m.All(), 1)
	m.Step()
	assert.True(t, childRan)
}
