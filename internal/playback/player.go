// Package playback steps through a recorded trace.Sequence with play, pause,
// step and reset semantics.
package playback

import (
	"time"

	"github.com/san-kum/sortviz/internal/trace"
)

const (
	MinSpeed     = 1
	MaxSpeed     = 100
	DefaultSpeed = 50
)

// State is the playback lifecycle position.
type State int

const (
	Idle State = iota
	Stepping
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stepping:
		return "stepping"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Frame is what the renderer needs for one observed step.
type Frame struct {
	Index   int
	Total   int
	Array   []int
	Pair    trace.Pair
	Kind    trace.Kind
	State   State
	Playing bool
}

// Player owns the playback state for one step sequence. It is not safe for
// concurrent use; Runner adds locking for timer-driven playback.
//
// Every state-changing call bumps the generation. A tick carries the
// generation it was scheduled under and is ignored if it no longer matches,
// so a timer left over from a previous array or algorithm can never advance
// the current sequence.
type Player struct {
	seq     trace.Sequence
	index   int
	playing bool
	speed   int
	gen     uint64
}

// NewPlayer returns an idle player over seq.
func NewPlayer(seq trace.Sequence, speed int) *Player {
	return &Player{
		seq:   seq,
		index: -1,
		speed: clampSpeed(speed),
	}
}

func clampSpeed(s int) int {
	if s < MinSpeed {
		return MinSpeed
	}
	if s > MaxSpeed {
		return MaxSpeed
	}
	return s
}

func (p *Player) Index() int               { return p.index }
func (p *Player) Playing() bool            { return p.playing }
func (p *Player) Speed() int               { return p.speed }
func (p *Player) Len() int                 { return len(p.seq) }
func (p *Player) Generation() uint64       { return p.gen }
func (p *Player) Sequence() trace.Sequence { return p.seq }

// State derives the lifecycle state from the index. An empty sequence is
// always Finished.
func (p *Player) State() State {
	switch {
	case p.index >= len(p.seq)-1:
		return Finished
	case p.index < 0:
		return Idle
	}
	return Stepping
}

// Interval is the tick period for the current speed: 1000ms / speed.
func (p *Player) Interval() time.Duration {
	return time.Second / time.Duration(p.speed)
}

// Play starts auto-advance. From Finished it rewinds to Idle first. It
// reports whether playback was started; playing an empty sequence or calling
// Play while already playing is a no-op.
func (p *Player) Play() bool {
	if p.playing || len(p.seq) == 0 {
		return false
	}
	if p.State() == Finished {
		p.index = -1
	}
	p.playing = true
	p.gen++
	return true
}

// Pause stops auto-advance without moving the index.
func (p *Player) Pause() {
	if !p.playing {
		return
	}
	p.playing = false
	p.gen++
}

// Toggle plays when paused and pauses when playing.
func (p *Player) Toggle() bool {
	if p.playing {
		p.Pause()
		return false
	}
	return p.Play()
}

// Tick advances one step if gen is current, playback is active and the
// sequence is not finished. Reaching the last step stops playback. It
// reports whether the index moved.
func (p *Player) Tick(gen uint64) bool {
	if gen != p.gen || !p.playing || p.State() == Finished {
		return false
	}
	p.index++
	if p.index >= len(p.seq)-1 {
		p.index = len(p.seq) - 1
		p.playing = false
		p.gen++
	}
	return true
}

// StepForward moves one step ahead, clamped to [0, len-1].
func (p *Player) StepForward() bool {
	return p.seek(p.index + 1)
}

// StepBackward moves one step back, clamped to [0, len-1].
func (p *Player) StepBackward() bool {
	return p.seek(p.index - 1)
}

// Seek jumps to index i, clamped to [0, len-1].
func (p *Player) Seek(i int) bool {
	return p.seek(i)
}

func (p *Player) seek(i int) bool {
	if len(p.seq) == 0 {
		return false
	}
	if i < 0 {
		i = 0
	}
	if i > len(p.seq)-1 {
		i = len(p.seq) - 1
	}
	if i == p.index {
		return false
	}
	p.index = i
	// keep "never playing at the last step" even if a manual step lands there
	if p.playing && p.State() == Finished {
		p.playing = false
		p.gen++
	}
	return true
}

// Reset replaces the sequence, rewinds to Idle and stops playback.
func (p *Player) Reset(seq trace.Sequence) {
	p.seq = seq
	p.index = -1
	p.playing = false
	p.gen++
}

// Rewind returns to Idle on the current sequence.
func (p *Player) Rewind() {
	p.index = -1
	p.playing = false
	p.gen++
}

// SetSpeed changes the tick period for subsequent ticks. The sequence and
// index are untouched.
func (p *Player) SetSpeed(s int) {
	p.speed = clampSpeed(s)
}

// View returns the frame for the current index, falling back to base when
// there is no step to show.
func (p *Player) View(base []int) Frame {
	f := Frame{
		Index:   p.index,
		Total:   len(p.seq),
		Array:   p.seq.Frame(p.index, base),
		State:   p.State(),
		Playing: p.playing,
	}
	if st, ok := p.seq.At(p.index); ok {
		f.Pair, f.Kind = st.Highlight()
	}
	return f
}
