// Package session ties array generation, recording and playback together and
// applies the recomputation rule: changing the array or the algorithm
// re-records the sequence and rewinds the player, changing the speed does not.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/trace"
)

// Options seeds a new session.
type Options struct {
	Size      int
	Algorithm trace.Algorithm
	Pattern   arrays.Pattern
	Speed     int
	Seed      int64
	Logger    *slog.Logger
}

// Session is the explicit UI state: current array, algorithm and the player
// over its recorded sequence. It is owned by one goroutine.
type Session struct {
	size    int
	alg     trace.Algorithm
	pattern arrays.Pattern
	rng     *rand.Rand
	base    []int
	player  *playback.Player
	logger  *slog.Logger
}

// New generates the first array and records it.
func New(opts Options) (*Session, error) {
	if opts.Algorithm == "" {
		opts.Algorithm = trace.Bubble
	}
	if _, err := trace.Parse(string(opts.Algorithm)); err != nil {
		return nil, err
	}
	if opts.Pattern == "" {
		opts.Pattern = arrays.Random
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		size:    arrays.ClampSize(opts.Size),
		alg:     opts.Algorithm,
		pattern: opts.Pattern,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		player:  playback.NewPlayer(nil, opts.Speed),
		logger:  opts.Logger,
	}
	if err := s.regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromArray builds a session over a fixed input, for replaying saved traces.
func FromArray(base []int, alg trace.Algorithm, speed int) (*Session, error) {
	seq, err := trace.Record(alg, base)
	if err != nil {
		return nil, err
	}
	return &Session{
		size:    len(base),
		alg:     alg,
		pattern: arrays.Random,
		rng:     rand.New(rand.NewSource(0)),
		base:    base,
		player:  playback.NewPlayer(seq, speed),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

func (s *Session) Size() int                  { return s.size }
func (s *Session) Algorithm() trace.Algorithm { return s.alg }
func (s *Session) Pattern() arrays.Pattern    { return s.pattern }
func (s *Session) Player() *playback.Player   { return s.player }
func (s *Session) Sequence() trace.Sequence   { return s.player.Sequence() }

// Base returns the unsorted input the current sequence was recorded from.
func (s *Session) Base() []int { return s.base }

// Frame returns the current view.
func (s *Session) Frame() playback.Frame { return s.player.View(s.base) }

// SetSize generates a new array of n elements (clamped to the allowed range),
// re-records it and rewinds. It reports whether anything changed.
func (s *Session) SetSize(n int) (bool, error) {
	n = arrays.ClampSize(n)
	if n == s.size {
		return false, nil
	}
	s.size = n
	return true, s.regenerate()
}

// SetAlgorithm re-records the current array with alg and rewinds. The array
// itself is kept.
func (s *Session) SetAlgorithm(alg trace.Algorithm) (bool, error) {
	if alg == s.alg {
		return false, nil
	}
	if _, err := trace.Parse(string(alg)); err != nil {
		return false, err
	}
	s.alg = alg
	return true, s.record()
}

// SetPattern generates a new array with pattern p.
func (s *Session) SetPattern(p arrays.Pattern) (bool, error) {
	if p == s.pattern {
		return false, nil
	}
	s.pattern = p
	return true, s.regenerate()
}

// Shuffle generates a fresh array of the current size and pattern.
func (s *Session) Shuffle() error {
	return s.regenerate()
}

// SetSpeed adjusts the player speed only.
func (s *Session) SetSpeed(speed int) {
	s.player.SetSpeed(speed)
}

func (s *Session) regenerate() error {
	a, err := arrays.Generate(s.rng, s.size, s.pattern)
	if err != nil {
		return fmt.Errorf("generate array: %w", err)
	}
	s.base = a
	return s.record()
}

func (s *Session) record() error {
	seq, err := trace.Record(s.alg, s.base)
	if err != nil {
		return err
	}
	s.player.Reset(seq)
	s.logger.Debug("recorded sequence", "algorithm", s.alg, "size", len(s.base), "steps", seq.Len())
	return nil
}
