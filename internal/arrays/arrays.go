// Package arrays generates input arrays for the recorder. All randomness in
// the program lives here; recording and playback are deterministic.
package arrays

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

const (
	MinSize = 5
	MaxSize = 100

	MinValue = 5
	MaxValue = 100
)

// ErrUnknownPattern is returned for an unrecognized pattern name.
var ErrUnknownPattern = errors.New("arrays: unknown pattern")

// Pattern shapes the initial ordering of a generated array.
type Pattern string

const (
	Random       Pattern = "random"
	Reversed     Pattern = "reversed"
	Sorted       Pattern = "sorted"
	NearlySorted Pattern = "nearly-sorted"
	FewUnique    Pattern = "few-unique"
)

// Patterns lists the supported patterns.
func Patterns() []Pattern {
	return []Pattern{Random, Reversed, Sorted, NearlySorted, FewUnique}
}

// ParsePattern resolves a pattern name. An empty name is Random.
func ParsePattern(name string) (Pattern, error) {
	if name == "" {
		return Random, nil
	}
	for _, p := range Patterns() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownPattern, name)
}

// Generate returns n values in [MinValue, MaxValue] arranged by p.
func Generate(rng *rand.Rand, n int, p Pattern) ([]int, error) {
	if n < 0 {
		n = 0
	}
	a := make([]int, n)

	switch p {
	case Random, "":
		fill(rng, a)
	case Sorted:
		fill(rng, a)
		sort.Ints(a)
	case Reversed:
		fill(rng, a)
		sort.Sort(sort.Reverse(sort.IntSlice(a)))
	case NearlySorted:
		fill(rng, a)
		sort.Ints(a)
		swaps := n / 10
		if swaps < 1 {
			swaps = 1
		}
		for i := 0; i < swaps && n > 1; i++ {
			j := rng.Intn(n - 1)
			a[j], a[j+1] = a[j+1], a[j]
		}
	case FewUnique:
		values := make([]int, 4)
		fill(rng, values)
		for i := range a {
			a[i] = values[rng.Intn(len(values))]
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, p)
	}
	return a, nil
}

func fill(rng *rand.Rand, a []int) {
	for i := range a {
		a[i] = MinValue + rng.Intn(MaxValue-MinValue+1)
	}
}

// ClampSize bounds n to [MinSize, MaxSize].
func ClampSize(n int) int {
	if n < MinSize {
		return MinSize
	}
	if n > MaxSize {
		return MaxSize
	}
	return n
}

// Inversions counts pairs i < j with a[i] > a[j].
func Inversions(a []int) int {
	n := 0
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if a[i] > a[j] {
				n++
			}
		}
	}
	return n
}
