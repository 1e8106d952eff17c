package metrics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/trace"
)

func TestCollectBubble(t *testing.T) {
	got := Collect(trace.BubbleSort([]int{5, 3, 1}))

	assert.Equal(t, 3.0, got["comparisons"])
	assert.Equal(t, 3.0, got["swaps"])
	assert.Equal(t, 3.0, got["inversions"])
}

func TestCollectEmpty(t *testing.T) {
	got := Collect(nil)
	assert.Zero(t, got["comparisons"])
	assert.Zero(t, got["swaps"])
	assert.Zero(t, got["inversions"])
}

func TestCollectResetsBetweenRuns(t *testing.T) {
	c := NewComparisons()
	seq := trace.BubbleSort([]int{2, 1})

	Collect(seq, c)
	got := Collect(seq, c)
	assert.Equal(t, 1.0, got["comparisons"])
}

func TestSeriesMatchesRecount(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for trial := 0; trial < 30; trial++ {
		in := make([]int, 3+rng.Intn(25))
		for i := range in {
			in[i] = rng.Intn(10)
		}
		for _, seq := range []trace.Sequence{trace.BubbleSort(in), trace.QuickSort(in)} {
			s := NewSeries(seq)
			require.Equal(t, seq.Len(), s.Len())
			for i, st := range seq {
				require.Equal(t, arrays.Inversions(st.Array), s.Inversions[i], "step %d of %v", i, in)
			}
			assert.Zero(t, s.Inversions[s.Len()-1])
		}
	}
}

func TestSeriesRunningTotals(t *testing.T) {
	s := NewSeries(trace.BubbleSort([]int{5, 3, 1}))

	assert.Equal(t, []int{1, 1, 1, 2, 2, 2, 3, 3, 3}, s.Comparisons)
	assert.Equal(t, []int{0, 1, 1, 1, 2, 2, 2, 3, 3}, s.Swaps)
	assert.Equal(t, []int{3, 3, 2, 2, 2, 1, 1, 1, 0}, s.Inversions)

	c, w, v := s.At(-1, 3)
	assert.Equal(t, [3]int{0, 0, 3}, [3]int{c, w, v})
	c, w, v = s.At(4, 0)
	assert.Equal(t, [3]int{2, 2, 2}, [3]int{c, w, v})
}

func TestSwapDelta(t *testing.T) {
	assert.Equal(t, 0, swapDelta([]int{1, 2}, 0, 0))
	assert.Equal(t, -1, swapDelta([]int{2, 1}, 0, 1))
	assert.Equal(t, 1, swapDelta([]int{1, 2}, 1, 0))
	assert.Equal(t, -3, swapDelta([]int{3, 2, 1}, 0, 2))
	assert.Equal(t, 0, swapDelta([]int{4, 1, 4}, 0, 2))
	assert.Equal(t, -2, swapDelta([]int{3, 3, 1}, 0, 2))
	assert.Equal(t, -2, swapDelta([]int{3, 1, 1}, 0, 2))
	assert.Equal(t, 4, swapDelta([]int{1, 1, 2, 3}, 0, 3))
}

func TestSeriesWithDuplicates(t *testing.T) {
	for _, input := range [][]int{{3, 3, 1, 2}, {2, 2, 2, 1, 1}, {5, 1, 5, 1, 5, 1}} {
		for _, seq := range []trace.Sequence{trace.QuickSort(input), trace.BubbleSort(input)} {
			series := NewSeries(seq)
			for i, st := range seq {
				require.Equal(t, arrays.Inversions(st.Array), series.Inversions[i], "step %d of %v", i, input)
			}
			assert.Zero(t, series.Inversions[series.Len()-1])
		}
	}
}
