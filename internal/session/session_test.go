package session

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/trace"
)

func newSession(t *testing.T, size int) *Session {
	t.Helper()
	s, err := New(Options{Size: size, Algorithm: trace.Bubble, Speed: 10, Seed: 1})
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := newSession(t, 30)

	assert.Equal(t, 30, s.Size())
	assert.Len(t, s.Base(), 30)
	assert.Equal(t, -1, s.Player().Index())
	assert.False(t, s.Player().Playing())
	assert.NotZero(t, s.Sequence().Len())

	want := append([]int(nil), s.Base()...)
	sort.Ints(want)
	assert.Equal(t, want, s.Sequence().Final())
}

func TestNewRejectsUnknownAlgorithm(t *testing.T) {
	_, err := New(Options{Size: 10, Algorithm: "shell"})
	assert.ErrorIs(t, err, trace.ErrUnknownAlgorithm)
}

func TestSizeChangeWhilePlaying(t *testing.T) {
	s := newSession(t, 30)
	p := s.Player()
	p.Play()
	stale := p.Generation()
	p.Tick(stale)
	p.Tick(stale)
	require.Equal(t, 1, p.Index())

	changed, err := s.SetSize(10)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Len(t, s.Base(), 10)
	assert.Equal(t, -1, p.Index())
	assert.False(t, p.Playing())
	assert.Len(t, s.Frame().Array, 10)

	// the tick scheduled under the old array is dropped
	assert.False(t, p.Tick(stale))
	assert.Equal(t, -1, p.Index())
}

func TestSetSizeSameIsNoop(t *testing.T) {
	s := newSession(t, 20)
	before := s.Base()

	changed, err := s.SetSize(20)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, s.Base())
}

func TestSetSizeClamps(t *testing.T) {
	s := newSession(t, 20)

	_, err := s.SetSize(1)
	require.NoError(t, err)
	assert.Equal(t, arrays.MinSize, s.Size())

	_, err = s.SetSize(500)
	require.NoError(t, err)
	assert.Equal(t, arrays.MaxSize, s.Size())
}

func TestAlgorithmChangeKeepsArray(t *testing.T) {
	s := newSession(t, 15)
	before := append([]int(nil), s.Base()...)
	s.Player().StepForward()

	changed, err := s.SetAlgorithm(trace.Quick)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, before, s.Base())
	assert.Equal(t, trace.QuickSort(before), s.Sequence())
	assert.Equal(t, -1, s.Player().Index())

	_, err = s.SetAlgorithm("bogo")
	assert.ErrorIs(t, err, trace.ErrUnknownAlgorithm)
	assert.Equal(t, trace.Quick, s.Algorithm())
}

func TestSpeedChangeDoesNotRerecord(t *testing.T) {
	s := newSession(t, 15)
	p := s.Player()
	p.Play()
	p.Tick(p.Generation())
	seq := s.Sequence()

	s.SetSpeed(90)

	assert.Equal(t, seq, s.Sequence())
	assert.Equal(t, 0, p.Index())
	assert.True(t, p.Playing())
	assert.Equal(t, 90, p.Speed())
}

func TestShuffleAndPattern(t *testing.T) {
	s := newSession(t, 25)
	before := append([]int(nil), s.Base()...)

	require.NoError(t, s.Shuffle())
	assert.NotEqual(t, before, s.Base())
	assert.Len(t, s.Base(), 25)

	changed, err := s.SetPattern(arrays.Sorted)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, sort.IntsAreSorted(s.Base()))
	// bubble sort on sorted input only compares
	assert.Equal(t, 25*24/2, s.Sequence().Len())
}

func TestFromArray(t *testing.T) {
	s, err := FromArray([]int{5, 3, 1}, trace.Bubble, 10)
	require.NoError(t, err)

	assert.Equal(t, 9, s.Sequence().Len())
	assert.Equal(t, playback.Idle, s.Frame().State)
	assert.Equal(t, []int{5, 3, 1}, s.Frame().Array)
}

func TestSameSeedSameArrays(t *testing.T) {
	a := newSession(t, 40)
	b := newSession(t, 40)
	assert.Equal(t, a.Base(), b.Base())
	assert.Equal(t, a.Sequence(), b.Sequence())
}
