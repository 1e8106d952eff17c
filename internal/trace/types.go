package trace

// Pair is a pair of array indices highlighted by a step.
type Pair [2]int

// Step is one recorded snapshot of algorithm progress. Array is a private
// copy; Comparing and Swapping are never both set.
type Step struct {
	Array     []int `json:"array"`
	Comparing *Pair `json:"comparing"`
	Swapping  *Pair `json:"swapping"`
}

// Kind names the highlight carried by a step.
type Kind int

const (
	KindNone Kind = iota
	KindComparing
	KindSwapping
)

func (k Kind) String() string {
	switch k {
	case KindComparing:
		return "comparing"
	case KindSwapping:
		return "swapping"
	default:
		return "none"
	}
}

// Highlight returns the highlighted pair and its kind.
func (s Step) Highlight() (Pair, Kind) {
	switch {
	case s.Comparing != nil:
		return *s.Comparing, KindComparing
	case s.Swapping != nil:
		return *s.Swapping, KindSwapping
	}
	return Pair{}, KindNone
}

// Sequence is the full ordered trace of one (array, algorithm) execution.
type Sequence []Step

// Len returns the number of steps.
func (s Sequence) Len() int { return len(s) }

// At returns the step at index i. Indices outside [0, len-1] are "no step".
func (s Sequence) At(i int) (Step, bool) {
	if i < 0 || i >= len(s) {
		return Step{}, false
	}
	return s[i], true
}

// Frame returns the array to display at index i, falling back to base when
// there is no step at i.
func (s Sequence) Frame(i int, base []int) []int {
	if st, ok := s.At(i); ok {
		return st.Array
	}
	return base
}

// Final returns the array of the last step, or nil for an empty sequence.
func (s Sequence) Final() []int {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1].Array
}

func cloneInts(a []int) []int {
	c := make([]int, len(a))
	copy(c, a)
	return c
}
