package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/trace"
	"github.com/san-kum/sortviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	size       int
	algorithm  string
	pattern    string
	speed      int
	seed       int64
	theme      string
	input      string
	logLevel   string
	logFile    string
	headless   bool
	outFile    string
	stepIndex  int
	plotSVG    bool
	force      bool
)

// main registers commands and flags and runs the interactive menu when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "sortviz",
		Short:        "step-by-step sorting algorithm visualizer",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for saved traces")
	pf.StringVar(&configFile, "config", "", "YAML config file")
	pf.StringVar(&preset, "preset", "", "named preset (see presets)")
	pf.IntVar(&size, "size", config.DefaultSize, "array size (5-100)")
	pf.StringVar(&algorithm, "algo", config.DefaultAlgorithm, "algorithm: bubble or quick")
	pf.StringVar(&pattern, "pattern", config.DefaultPattern, "input pattern")
	pf.IntVar(&speed, "speed", config.DefaultSpeed, "playback speed (1-100 steps/s)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.StringVar(&input, "input", "", "explicit comma separated array, overrides size and pattern")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "log file for interactive mode")

	playCmd := &cobra.Command{
		Use:   "play [trace_id]",
		Short: "play a new or saved trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playTrace,
	}
	playCmd.Flags().BoolVar(&headless, "headless", false, "print frames instead of opening the TUI")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "print every recorded step",
		Args:  cobra.NoArgs,
		RunE:  printTrace,
	}

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record a trace and save it",
		Args:  cobra.NoArgs,
		RunE:  recordTrace,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved traces",
		Args:  cobra.NoArgs,
		RunE:  listTraces,
	}

	showCmd := &cobra.Command{
		Use:   "show [trace_id]",
		Short: "show trace metadata and metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  showTrace,
	}

	removeCmd := &cobra.Command{
		Use:   "rm [trace_id]",
		Short: "delete a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Remove(args[0])
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [trace_id]",
		Short: "plot inversions and counters over a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTrace,
	}
	plotCmd.Flags().BoolVar(&plotSVG, "svg", false, "write the inversion curve as SVG")
	plotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file for --svg (default stdout)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved settings to a YAML config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [trace_id]",
		Short: "export a saved trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [trace_id]",
		Short: "export the steps of a saved trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [trace_id]",
		Short: "render one step of a saved trace as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&stepIndex, "step", -1, "step index (-1 = unsorted input)")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare step counts across array sizes",
		Args:  cobra.NoArgs,
		RunE:  benchAlgorithms,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "record the traces listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	explainCmd := &cobra.Command{
		Use:   "explain [algorithm]",
		Short: "describe how an algorithm is recorded",
		Args:  cobra.MaximumNArgs(1),
		RunE:  explainAlgorithm,
	}

	rootCmd.AddCommand(playCmd, traceCmd, recordCmd, listCmd, showCmd, removeCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, benchCmd, batchCmd, presetsCmd, explainCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the config sources, picks a time based seed when none
// is set and validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := layerConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.ValidateTheme(viz.ThemeNames())
}

// layerConfig applies defaults, preset, config file and changed flags, in
// that order.
func layerConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("algo") {
		cfg.Algorithm = algorithm
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

// newLogger returns a stderr logger, or for the TUI a file logger or a
// discarding one. The returned func releases the log file.
func newLogger(tui bool) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	if !tui {
		return logging.New(level), func() {}, nil
	}
	if logFile == "" {
		return logging.NewNop(), func() {}, nil
	}
	logger, closer, err := logging.OpenFile(logFile, level)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}

func parseInput(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid input value %q: %w", f, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("invalid input value %d: must be non-negative", v)
		}
		out = append(out, v)
	}
	return out, nil
}

// newSession builds the session for cfg, or for --input when given.
func newSession(cfg *config.Config, logger *slog.Logger) (*session.Session, error) {
	if input != "" {
		a, err := parseInput(input)
		if err != nil {
			return nil, err
		}
		return session.FromArray(a, cfg.AlgorithmValue(), cfg.Speed)
	}
	return viz.SessionFromConfig(cfg, viz.Options{Logger: logger})
}

func openStore(dir string) (*storage.Store, error) {
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, done, err := newLogger(true)
	if err != nil {
		return err
	}
	defer done()
	st, err := openStore(cfg.DataDir)
	if err != nil {
		return err
	}
	return viz.RunInteractive(cfg, viz.Options{Theme: cfg.Theme, Seed: cfg.Seed, Store: st, Logger: logger})
}

func playTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, done, err := newLogger(!headless)
	if err != nil {
		return err
	}
	defer done()

	var sess *session.Session
	if len(args) == 1 {
		meta, err := storage.New(cfg.DataDir).Load(args[0])
		if err != nil {
			return err
		}
		alg, err := trace.Parse(meta.Algorithm)
		if err != nil {
			return err
		}
		sess, err = session.FromArray(meta.Input, alg, cfg.Speed)
		if err != nil {
			return err
		}
	} else if sess, err = newSession(cfg, logger); err != nil {
		return err
	}

	if !headless {
		st, err := openStore(cfg.DataDir)
		if err != nil {
			return err
		}
		return viz.RunPlayer(sess, viz.Options{Theme: cfg.Theme, Seed: cfg.Seed, Store: st, Logger: logger})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s sort, %d steps at speed %d\n", sess.Algorithm(), sess.Sequence().Len(), cfg.Speed)
	fmt.Fprintln(out, formatFrame(sess.Frame()))
	runner := playback.NewRunner(sess.Base(), sess.Sequence(), cfg.Speed,
		playback.WithLogger(logger),
		playback.WithFrameHandler(func(f playback.Frame) { fmt.Fprintln(out, formatFrame(f)) }),
	)
	return runner.Run(ctx)
}

func formatFrame(f playback.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%5d/%-5d %v", f.Index+1, f.Total, f.Array)
	if f.Kind != trace.KindNone {
		fmt.Fprintf(&b, "  %s %d,%d", f.Kind, f.Pair[0], f.Pair[1])
	}
	return b.String()
}

func printTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := newSession(cfg, logging.NewNop())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "input: %v\n", sess.Base())
	p := sess.Player()
	for i := 0; i < p.Len(); i++ {
		p.Seek(i)
		fmt.Fprintln(out, formatFrame(sess.Frame()))
	}
	fmt.Fprintf(out, "%d steps\n", p.Len())
	return nil
}
