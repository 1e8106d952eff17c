// Package metrics derives counters from a recorded step sequence.
package metrics

import (
	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/trace"
)

type Metric interface {
	Name() string
	Observe(st trace.Step)
	Value() float64
	Reset()
}

// Defaults returns the metrics reported for every trace.
func Defaults() []Metric {
	return []Metric{NewComparisons(), NewSwaps(), NewInversions()}
}

// Collect observes every step of seq and returns the final metric values.
func Collect(seq trace.Sequence, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Defaults()
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, st := range seq {
			m.Observe(st)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Series holds per-step running totals. Entry i describes the sequence as
// seen at step i: counts include step i, Inversions is the inversion count of
// step i's array.
type Series struct {
	Comparisons []int
	Swaps       []int
	Inversions  []int
}

// Len returns the number of steps covered.
func (s Series) Len() int { return len(s.Comparisons) }

// At returns the counters at step i; outside the series it returns zero
// counters and the given fallback inversion count.
func (s Series) At(i int, fallbackInversions int) (comparisons, swaps, inversions int) {
	if i < 0 || i >= s.Len() {
		return 0, 0, fallbackInversions
	}
	return s.Comparisons[i], s.Swaps[i], s.Inversions[i]
}

// NewSeries computes running totals for seq in one pass. Inversions are
// updated incrementally from each swap instead of recounted per step.
func NewSeries(seq trace.Sequence) Series {
	n := seq.Len()
	s := Series{
		Comparisons: make([]int, n),
		Swaps:       make([]int, n),
		Inversions:  make([]int, n),
	}
	if n == 0 {
		return s
	}

	cmp, swp := 0, 0
	inv := arrays.Inversions(seq[0].Array)
	for i, st := range seq {
		if i > 0 {
			if prev := seq[i-1]; prev.Swapping != nil {
				inv += swapDelta(prev.Array, prev.Swapping[0], prev.Swapping[1])
			}
		}
		if st.Comparing != nil {
			cmp++
		}
		if st.Swapping != nil {
			swp++
		}
		s.Comparisons[i] = cmp
		s.Swaps[i] = swp
		s.Inversions[i] = inv
	}
	return s
}

// swapDelta is the change in inversion count caused by swapping a[i] and a[j].
func swapDelta(a []int, i, j int) int {
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	x, y := a[i], a[j]
	if x == y {
		return 0
	}
	lo, hi := x, y
	if lo > hi {
		lo, hi = hi, lo
	}
	// values strictly between lo and hi flip two pairs, values equal to
	// either end flip one
	between, equal := 0, 0
	for k := i + 1; k < j; k++ {
		switch {
		case a[k] > lo && a[k] < hi:
			between++
		case a[k] == lo || a[k] == hi:
			equal++
		}
	}
	d := 1 + 2*between + equal
	if x > y {
		return -d
	}
	return d
}
