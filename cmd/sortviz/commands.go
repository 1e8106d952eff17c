package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/automation"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/trace"
	"github.com/san-kum/sortviz/internal/viz"
)

var benchSizes = []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

func recordTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, done, err := newLogger(false)
	if err != nil {
		return err
	}
	defer done()

	sess, err := newSession(cfg, logger)
	if err != nil {
		return err
	}
	st, err := openStore(cfg.DataDir)
	if err != nil {
		return err
	}

	pat := string(sess.Pattern())
	if input != "" {
		pat = "input"
	}
	seq := sess.Sequence()
	id, err := st.Save(cmd.Context(), sess.Algorithm(), pat, cfg.Seed, sess.Base(), seq, metrics.Collect(seq, metrics.Defaults()...))
	if err != nil {
		return err
	}
	logger.Info("recorded trace", "id", id, "algorithm", sess.Algorithm(), "size", len(sess.Base()), "steps", seq.Len())
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func listTraces(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no traces found")
		return nil
	}

	tbl := newTable(out, "ID", "ALGO", "PATTERN", "SIZE", "STEPS", "TIME")
	for _, run := range runs {
		tbl.AddRow(run.ID, run.Algorithm, run.Pattern, run.Size, run.Steps, run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	tbl.Print()
	return nil
}

func showTrace(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id:        %s\n", meta.ID)
	fmt.Fprintf(out, "algorithm: %s (%s)\n", meta.Algorithm, trace.Describe(trace.Algorithm(meta.Algorithm)))
	fmt.Fprintf(out, "pattern:   %s\n", meta.Pattern)
	fmt.Fprintf(out, "seed:      %d\n", meta.Seed)
	fmt.Fprintf(out, "recorded:  %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "input:     %v\n", meta.Input)
	fmt.Fprintf(out, "steps:     %d\n", meta.Steps)

	names := make([]string, 0, len(meta.Metrics))
	for k := range meta.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(out, "%-10s %.0f\n", k+":", meta.Metrics[k])
	}
	return nil
}

func plotTrace(cmd *cobra.Command, args []string) error {
	meta, seq, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	if seq.Len() == 0 {
		return fmt.Errorf("no steps to plot")
	}

	series := metrics.NewSeries(seq)
	inversions := append([]int{arrays.Inversions(meta.Input)}, series.Inversions...)
	if plotSVG {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return writeOutput(cmd, export.SeriesToSVG(inversions, 800, 300, string(viz.GetTheme(cfg.Theme).Accent)))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "trace: %s\nalgorithm: %s\nsteps: %d\n\n", meta.ID, meta.Algorithm, seq.Len())

	plots := []struct {
		caption string
		values  []int
	}{
		{"inversions", inversions},
		{"comparisons", series.Comparisons},
		{"swaps", series.Swaps},
	}
	for _, p := range plots {
		data := make([]float64, len(p.values))
		for i, v := range p.values {
			data[i] = float64(v)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

// loadTrace returns the metadata and steps of a saved trace.
func loadTrace(id string) (*storage.TraceMetadata, trace.Sequence, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	seq, err := st.LoadSteps(id)
	if err != nil {
		return nil, nil, err
	}
	if err := trace.Validate(seq, len(meta.Input)); err != nil {
		return nil, nil, err
	}
	return meta, seq, nil
}

// writeOutput writes doc to outFile, or stdout when no file is set.
func writeOutput(cmd *cobra.Command, doc string) error {
	if outFile == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), doc)
		return err
	}
	return os.WriteFile(outFile, []byte(doc), 0644)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, seq, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		return storage.ExportJSONFile(outFile, meta.ID, trace.Algorithm(meta.Algorithm), meta.Input, seq, meta.Metrics)
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta.ID, trace.Algorithm(meta.Algorithm), meta.Input, seq, meta.Metrics)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, seq, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.WriteStepsCSV(cmd.OutOrStdout(), seq)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	meta, seq, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	if stepIndex >= seq.Len() {
		return fmt.Errorf("step %d out of range (trace has %d steps)", stepIndex, seq.Len())
	}

	p := playback.NewPlayer(seq, cfg.Speed)
	if stepIndex >= 0 {
		p.Seek(stepIndex)
	}
	svg := export.FrameToSVG(p.View(meta.Input), 800, 400, viz.GetTheme(cfg.Theme).Palette())
	return writeOutput(cmd, svg)
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := layerConfig(cmd)
	if err != nil {
		return err
	}
	if err := checkConfig(cfg); err != nil {
		return err
	}
	path := "sortviz.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pattern %s, 5 trials per size\n\n", cfg.Pattern)

	tbl := newTable(out, "ALGO", "SIZE", "STEPS", "COMPARISONS", "SWAPS")
	for _, alg := range trace.Algorithms() {
		results, err := automation.RunSweep(cmd.Context(), &automation.SizeSweep{
			Algorithm: alg,
			Pattern:   cfg.PatternValue(),
			Sizes:     benchSizes,
			Trials:    5,
			Seed:      cfg.Seed,
		})
		if err != nil {
			return err
		}
		for _, r := range results {
			tbl.AddRow(alg, r.Size, fmt.Sprintf("%.0f", r.Steps), fmt.Sprintf("%.0f", r.Comparisons), fmt.Sprintf("%.0f", r.Swaps))
		}
	}
	tbl.Print()
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger, done, err := newLogger(false)
	if err != nil {
		return err
	}
	defer done()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(dataDir)
	if err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), sc, st, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sc.Name != "" {
		fmt.Fprintf(out, "%s\n\n", sc.Name)
	}
	tbl := newTable(out, "ALGO", "SIZE", "STEPS", "COMPARISONS", "SWAPS", "SAVED")
	for _, r := range results {
		saved := r.SavedAs
		if saved == "" {
			saved = "-"
		}
		tbl.AddRow(r.Algorithm, len(r.Input), r.Steps, r.Metrics["comparisons"], r.Metrics["swaps"], saved)
	}
	tbl.Print()
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	tbl := newTable(cmd.OutOrStdout(), "PRESET", "ALGO", "SIZE", "PATTERN", "SPEED")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		tbl.AddRow(name, p.Algorithm, p.Size, p.Pattern, p.Speed)
	}
	tbl.Print()
	return nil
}
