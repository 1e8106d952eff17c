package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortviz/internal/trace"
)

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock fires callbacks synchronously from Advance.
type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		next.f()
	}
	c.now = target
}

func (c *fakeClock) pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func newTestRunner(base []int, speed int) (*Runner, *fakeClock, *[]Frame) {
	clock := &fakeClock{}
	frames := &[]Frame{}
	r := NewRunner(base, trace.BubbleSort(base), speed,
		WithScheduler(clock),
		WithFrameHandler(func(f Frame) { *frames = append(*frames, f) }),
	)
	return r, clock, frames
}

func TestRunnerTicksAtSpeed(t *testing.T) {
	r, clock, _ := newTestRunner([]int{5, 3, 1}, 10)

	r.Play()
	require.Equal(t, 1, clock.pending())

	clock.Advance(99 * time.Millisecond)
	assert.Equal(t, -1, r.Frame().Index)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 0, r.Frame().Index)

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, r.Frame().Index)
	assert.Equal(t, 1, clock.pending())
}

func TestRunnerStopsAtEnd(t *testing.T) {
	r, clock, frames := newTestRunner([]int{5, 3, 1}, 10)

	r.Play()
	clock.Advance(10 * time.Second)

	f := r.Frame()
	assert.Equal(t, 8, f.Index)
	assert.Equal(t, Finished, f.State)
	assert.False(t, f.Playing)
	assert.Equal(t, []int{1, 3, 5}, f.Array)
	assert.Equal(t, 0, clock.pending())
	// one frame for Play, one per tick
	assert.Len(t, *frames, 10)
}

func TestRunnerResetCancelsPendingTick(t *testing.T) {
	r, clock, _ := newTestRunner(make30(), 10)

	r.Play()
	clock.Advance(300 * time.Millisecond)
	require.Equal(t, 2, r.Frame().Index)
	stale := clock.timers[len(clock.timers)-1]

	small := []int{4, 2, 9, 1, 7, 3, 8, 5, 6, 0}
	r.Reset(small, trace.BubbleSort(small))

	assert.True(t, stale.stopped)
	assert.Equal(t, 0, clock.pending())

	// a callback that raced past Stop must not move the new sequence
	stale.f()
	f := r.Frame()
	assert.Equal(t, -1, f.Index)
	assert.False(t, f.Playing)
	assert.Equal(t, small, f.Array)
	assert.Equal(t, 10, len(f.Array))

	clock.Advance(time.Second)
	assert.Equal(t, -1, r.Frame().Index)
}

func TestRunnerPauseCancelsPendingTick(t *testing.T) {
	r, clock, _ := newTestRunner([]int{5, 3, 1}, 10)

	r.Play()
	clock.Advance(100 * time.Millisecond)
	r.Pause()
	assert.Equal(t, 0, clock.pending())

	clock.Advance(time.Second)
	assert.Equal(t, 0, r.Frame().Index)

	r.Play()
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, r.Frame().Index)
}

func TestRunnerSpeedAppliesToNextTick(t *testing.T) {
	r, clock, _ := newTestRunner([]int{5, 3, 1}, 10)

	r.Play()
	r.SetSpeed(100)
	clock.Advance(100 * time.Millisecond)
	require.Equal(t, 0, r.Frame().Index)

	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, r.Frame().Index)
}

func TestRunnerManualSteps(t *testing.T) {
	r, clock, frames := newTestRunner([]int{5, 3, 1}, 10)

	r.StepForward()
	r.StepForward()
	r.StepBackward()

	assert.Equal(t, 0, r.Frame().Index)
	assert.Equal(t, 0, clock.pending())
	assert.Len(t, *frames, 3)
}

func TestRunnerRunWallClock(t *testing.T) {
	base := []int{3, 2, 1}
	r := NewRunner(base, trace.BubbleSort(base), 100)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, r.Run(ctx))
	f := r.Frame()
	assert.Equal(t, Finished, f.State)
	assert.Equal(t, []int{1, 2, 3}, f.Array)
}

func TestRunnerRunCanceled(t *testing.T) {
	base := make30()
	r := NewRunner(base, trace.BubbleSort(base), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, r.Frame().Playing)
}

func TestRunnerRunEmpty(t *testing.T) {
	r := NewRunner([]int{1}, nil, 10)
	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, Finished, r.Frame().State)
}

func make30() []int {
	a := make([]int, 30)
	for i := range a {
		a[i] = 30 - i
	}
	return a
}
