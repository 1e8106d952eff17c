package playback

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/trace"
)

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler schedules a callback after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Option configures a Runner.
type Option func(*Runner)

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(r *Runner) { r.sched = s }
}

// WithLogger sets the runner logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithFrameHandler registers a callback invoked after every index change.
// It runs outside the runner lock and may call back into the runner.
func WithFrameHandler(fn func(Frame)) Option {
	return func(r *Runner) { r.onFrame = fn }
}

// Runner drives a Player from a timer. At most one timer is outstanding; every
// state-changing call stops it before scheduling a replacement, and a callback
// that still fires after being superseded is dropped by the generation check.
type Runner struct {
	mu      sync.Mutex
	player  *Player
	base    []int
	sched   Scheduler
	timer   Timer
	onFrame func(Frame)
	logger  *slog.Logger
	changed chan struct{}
}

// NewRunner wraps a fresh player over seq. base is the unsorted input shown
// while the player is Idle.
func NewRunner(base []int, seq trace.Sequence, speed int, opts ...Option) *Runner {
	r := &Runner{
		player:  NewPlayer(seq, speed),
		base:    base,
		sched:   wallClock{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		changed: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Frame returns the current view.
func (r *Runner) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.player.View(r.base)
}

// Play starts timer-driven playback.
func (r *Runner) Play() {
	r.apply(func(p *Player) bool { return p.Play() })
}

// Pause stops timer-driven playback.
func (r *Runner) Pause() {
	r.apply(func(p *Player) bool {
		was := p.Playing()
		p.Pause()
		return was
	})
}

// StepForward advances one step manually.
func (r *Runner) StepForward() {
	r.apply(func(p *Player) bool { return p.StepForward() })
}

// StepBackward rewinds one step manually.
func (r *Runner) StepBackward() {
	r.apply(func(p *Player) bool { return p.StepBackward() })
}

// Reset swaps in a new base array and sequence and cancels any pending tick.
func (r *Runner) Reset(base []int, seq trace.Sequence) {
	r.apply(func(p *Player) bool {
		r.base = base
		p.Reset(seq)
		return true
	})
}

// SetSpeed changes the tick period. A pending tick keeps its old deadline;
// the next one uses the new period.
func (r *Runner) SetSpeed(s int) {
	r.mu.Lock()
	r.player.SetSpeed(s)
	r.mu.Unlock()
}

// Stop cancels the outstanding timer and pauses.
func (r *Runner) Stop() {
	r.Pause()
	r.mu.Lock()
	r.cancel()
	r.mu.Unlock()
}

// Run plays the sequence and blocks until playback stops or ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	r.Play()
	for {
		r.mu.Lock()
		playing := r.player.Playing()
		r.mu.Unlock()
		if !playing {
			return nil
		}
		select {
		case <-ctx.Done():
			r.Stop()
			return ctx.Err()
		case <-r.changed:
		}
	}
}

func (r *Runner) apply(fn func(p *Player) bool) {
	r.mu.Lock()
	r.cancel()
	moved := fn(r.player)
	if r.player.Playing() {
		r.schedule()
	}
	frame := r.player.View(r.base)
	r.mu.Unlock()

	r.notify()
	if moved {
		r.emit(frame)
	}
}

// schedule must be called with r.mu held.
func (r *Runner) schedule() {
	gen := r.player.Generation()
	r.timer = r.sched.AfterFunc(r.player.Interval(), func() { r.fire(gen) })
}

// cancel must be called with r.mu held.
func (r *Runner) cancel() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Runner) fire(gen uint64) {
	r.mu.Lock()
	if !r.player.Tick(gen) {
		current := r.player.Generation()
		r.mu.Unlock()
		r.logger.Debug("dropped stale tick", "gen", gen, "current", current)
		return
	}
	r.timer = nil
	if r.player.Playing() {
		r.schedule()
	}
	frame := r.player.View(r.base)
	r.mu.Unlock()

	if frame.State == Finished {
		r.logger.Debug("playback finished", "steps", frame.Total)
	}
	r.notify()
	r.emit(frame)
}

func (r *Runner) notify() {
	select {
	case r.changed <- struct{}{}:
	default:
	}
}

func (r *Runner) emit(f Frame) {
	if r.onFrame != nil {
		r.onFrame(f)
	}
}
