package automation

import (
	"context"
	"math/rand"
	"sync"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/trace"
)

// TrialResult is one recorded trial of an ensemble.
type TrialResult struct {
	Seed    int64
	Steps   int
	Metrics map[string]float64
}

// Ensemble records numRuns arrays of one size concurrently. Run i uses seed
// seedStart+i, so results do not depend on scheduling.
type Ensemble struct {
	alg       trace.Algorithm
	pattern   arrays.Pattern
	size      int
	numRuns   int
	seedStart int64
}

func NewEnsemble(alg trace.Algorithm, pattern arrays.Pattern, size, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{alg: alg, pattern: pattern, size: size, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]TrialResult, error) {
	results := make([]TrialResult, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			seed := e.seedStart + int64(idx)
			input, err := arrays.Generate(rand.New(rand.NewSource(seed)), e.size, e.pattern)
			if err != nil {
				errs[idx] = err
				return
			}
			seq, err := trace.Record(e.alg, input)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = TrialResult{Seed: seed, Steps: seq.Len(), Metrics: metrics.Collect(seq)}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
