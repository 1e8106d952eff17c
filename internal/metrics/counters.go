package metrics

import (
	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/trace"
)

type Comparisons struct {
	count int
}

func NewComparisons() *Comparisons { return &Comparisons{} }

func (c *Comparisons) Name() string { return "comparisons" }

func (c *Comparisons) Observe(st trace.Step) {
	if st.Comparing != nil {
		c.count++
	}
}

func (c *Comparisons) Value() float64 { return float64(c.count) }
func (c *Comparisons) Reset()         { c.count = 0 }

// Swaps counts swap announcements, including a quick sort element swapped
// with itself.
type Swaps struct {
	count int
}

func NewSwaps() *Swaps { return &Swaps{} }

func (s *Swaps) Name() string { return "swaps" }

func (s *Swaps) Observe(st trace.Step) {
	if st.Swapping != nil {
		s.count++
	}
}

func (s *Swaps) Value() float64 { return float64(s.count) }
func (s *Swaps) Reset()         { s.count = 0 }

// Inversions reports the inversion count of the first observed array, i.e.
// how much work the sort had to do.
type Inversions struct {
	value int
	seen  bool
}

func NewInversions() *Inversions { return &Inversions{} }

func (v *Inversions) Name() string { return "inversions" }

func (v *Inversions) Observe(st trace.Step) {
	if v.seen {
		return
	}
	v.value = arrays.Inversions(st.Array)
	v.seen = true
}

func (v *Inversions) Value() float64 { return float64(v.value) }

func (v *Inversions) Reset() {
	v.value = 0
	v.seen = false
}
