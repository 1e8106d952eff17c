package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/trace"
)

// Scenario defines a batch of traces to record
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single recording in a scenario
type ScenarioStep struct {
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	Pattern   string `yaml:"pattern"`
	Seed      int64  `yaml:"seed"`
	Input     []int  `yaml:"input"`
	Save      bool   `yaml:"save"`
}

// Saver persists a recorded trace.
type Saver interface {
	Save(ctx context.Context, alg trace.Algorithm, pattern string, seed int64, input []int, seq trace.Sequence, metrics map[string]float64) (string, error)
}

// Result is the outcome of one scenario step.
type Result struct {
	Algorithm trace.Algorithm
	Input     []int
	Steps     int
	Metrics   map[string]float64
	SavedAs   string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// RunScenario records every step in order. saver may be nil when no step
// asks to be saved.
func RunScenario(ctx context.Context, scenario *Scenario, saver Saver, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		alg, err := trace.Parse(step.Algorithm)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		pattern, err := arrays.ParsePattern(step.Pattern)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		input := step.Input
		if len(input) == 0 {
			input, err = arrays.Generate(rand.New(rand.NewSource(step.Seed)), arrays.ClampSize(step.Size), pattern)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		seq, err := trace.Record(alg, input)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res := Result{
			Algorithm: alg,
			Input:     input,
			Steps:     seq.Len(),
			Metrics:   metrics.Collect(seq),
		}

		if step.Save {
			if saver == nil {
				return results, fmt.Errorf("step %d: save requested but no store configured", i+1)
			}
			id, err := saver.Save(ctx, alg, string(pattern), step.Seed, input, seq, res.Metrics)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.SavedAs = id
		}

		logger.Info("recorded scenario step", "scenario", scenario.Name, "step", i+1, "algorithm", alg, "size", len(input), "steps", res.Steps)
		results = append(results, res)
	}

	return results, nil
}

// SizeSweep records an algorithm across several sizes, averaging over trials
type SizeSweep struct {
	Algorithm trace.Algorithm
	Pattern   arrays.Pattern
	Sizes     []int
	Trials    int
	Seed      int64
}

// SweepResult holds averages for one size
type SweepResult struct {
	Size        int
	Steps       float64
	Comparisons float64
	Swaps       float64
}

// RunSweep executes a size sweep. Trials of one size run concurrently.
func RunSweep(ctx context.Context, sweep *SizeSweep) ([]SweepResult, error) {
	trials := sweep.Trials
	if trials < 1 {
		trials = 1
	}
	results := make([]SweepResult, 0, len(sweep.Sizes))

	for i, size := range sweep.Sizes {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		runs, err := NewEnsemble(sweep.Algorithm, sweep.Pattern, size, trials, sweep.Seed+int64(i*trials)).Run(ctx)
		if err != nil {
			return nil, err
		}

		res := SweepResult{Size: size}
		for _, r := range runs {
			res.Steps += float64(r.Steps)
			res.Comparisons += r.Metrics["comparisons"]
			res.Swaps += r.Metrics["swaps"]
		}
		res.Steps /= float64(trials)
		res.Comparisons /= float64(trials)
		res.Swaps /= float64(trials)

		results = append(results, res)
	}

	return results, nil
}
