package trace

import (
	"fmt"
	"sort"
	"strings"
)

// Algorithm identifies a recordable sorting algorithm.
type Algorithm string

const (
	Bubble Algorithm = "bubble"
	Quick  Algorithm = "quick"
)

var algorithms = map[Algorithm]func([]int) Sequence{
	Bubble: BubbleSort,
	Quick:  QuickSort,
}

var algorithmInfo = map[Algorithm]string{
	Bubble: "adjacent swaps, O(n²)",
	Quick:  "lomuto partition, last-element pivot",
}

// Parse resolves an algorithm name, case-insensitively.
func Parse(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := algorithms[alg]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	return alg, nil
}

// Record runs alg against a copy of a and returns its step sequence.
func Record(alg Algorithm, a []int) (Sequence, error) {
	fn, ok := algorithms[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
	return fn(a), nil
}

// Algorithms lists registered algorithms in name order.
func Algorithms() []Algorithm {
	names := make([]Algorithm, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Describe returns a one-line description of alg.
func Describe(alg Algorithm) string {
	return algorithmInfo[alg]
}

// Next cycles to the algorithm after alg.
func Next(alg Algorithm) Algorithm {
	all := Algorithms()
	for i, a := range all {
		if a == alg {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
