package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns scripted instants and then sticks on the last one.
type fakeClock struct {
	times []time.Time
	index int
}

func (c *fakeClock) Now() time.Time {
	if c.index >= len(c.times) {
		return c.times[len(c.times)-1]
	}
	t := c.times[c.index]
	c.index++
	return t
}

func TestNewLoopAppliesDefaults(t *testing.T) {
	loop := NewLoop(Config{}, Hooks{})
	require.Equal(t, DefaultTickRate, loop.config.TickRate)
	require.Equal(t, DefaultCatchupMaxTicks, loop.config.CatchupMaxTicks)
	require.NotNil(t, loop.clock)
	assert.Equal(t, time.Second/DefaultTickRate, loop.Budget())
}

func TestClampDelta(t *testing.T) {
	loop := NewLoop(Config{TickRate: 10, CatchupMaxTicks: 4}, Hooks{})
	budget := 0.1

	dt, clamped := loop.clampDelta(-1)
	require.Equal(t, budget, dt)
	require.False(t, clamped)

	dt, clamped = loop.clampDelta(0)
	require.Equal(t, budget, dt)
	require.False(t, clamped)

	dt, clamped = loop.clampDelta(0.25)
	require.Equal(t, 0.25, dt)
	require.False(t, clamped)

	dt, clamped = loop.clampDelta(3)
	require.Equal(t, budget*4, dt)
	require.True(t, clamped)
}

func TestAdvanceReportsDurationAndBudget(t *testing.T) {
	base := time.Unix(0, 0)
	clock := &fakeClock{times: []time.Time{base, base.Add(3 * time.Millisecond)}}
	var seen TickContext
	loop := NewLoop(Config{TickRate: 50, Clock: clock}, Hooks{
		Tick: func(ctx TickContext) { seen = ctx },
	})

	ctx := TickContext{Tick: 7, Now: base, Delta: 0.02}
	result := loop.Advance(ctx)

	require.Equal(t, ctx, seen)
	require.Equal(t, uint64(7), result.Tick)
	require.Equal(t, 3*time.Millisecond, result.Duration)
	require.Equal(t, 20*time.Millisecond, result.Budget)
}

func TestNextTickPrefersHook(t *testing.T) {
	loop := NewLoop(Config{}, Hooks{NextTick: func() uint64 { return 99 }})
	require.Equal(t, uint64(99), loop.nextTick())

	counting := NewLoop(Config{}, Hooks{})
	require.Equal(t, uint64(1), counting.nextTick())
	require.Equal(t, uint64(2), counting.nextTick())
}

func TestRunReturnsWhenStopped(t *testing.T) {
	loop := NewLoop(Config{TickRate: 1000}, Hooks{})
	stop := make(chan struct{})
	close(stop)

	done := make(chan struct{})
	go func() {
		loop.Run(stop)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}
