package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/kinetic/internal/config"
	"github.com/san-kum/kinetic/internal/scroll"
	"github.com/san-kum/kinetic/internal/storage"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	dt         float64
	duration   float64
	mode       string
	minBound   float64
	maxBound   float64
	stepper    string
	gestureArg string
	scriptPath string
	paramSets  []string
	compress   bool
	outPath    string
	width      int
	height     int
	theme      string
	visible    int
	saveLive   bool
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	gridSpecs  []string
	tuneMetric string
)

// main registers the commands and runs the root. With no subcommand the
// live demo starts with a preset picker.
func main() {
	rootCmd := &cobra.Command{
		Use:           "kinetic",
		Short:         "inertial scrolling physics lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinetic", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "play a gesture against an effect and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEffect,
	}
	addEffectFlags(runCmd)
	runCmd.Flags().BoolVar(&compress, "compress", false, "store frames xz-compressed")

	batchCmd := &cobra.Command{
		Use:   "batch [glob]",
		Short: "play every gesture script matching a glob, in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	addEffectFlags(batchCmd)
	batchCmd.Flags().BoolVar(&compress, "compress", false, "store frames xz-compressed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot value, velocity and overscroll of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&width, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 400, "image height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum, ringing and phase portrait of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "drive an effect from the keyboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addEffectFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")
	liveCmd.Flags().IntVar(&visible, "rows", 16, "visible rows")
	liveCmd.Flags().BoolVar(&saveLive, "save", false, "save the session as a run on exit")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a saved run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")
	replayCmd.Flags().IntVar(&visible, "rows", 16, "visible rows")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [preset] ...",
		Short: "play one gesture against several presets",
		Args:  cobra.MinimumNArgs(2),
		RunE:  comparePresets,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame interval")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	compareCmd.Flags().StringVar(&stepper, "stepper", "single", "stepper (single, substep)")
	compareCmd.Flags().StringVar(&gestureArg, "gesture", config.DefaultGesture, "gesture generator")
	compareCmd.Flags().StringVar(&scriptPath, "script", "", "gesture script file")
	compareCmd.Flags().StringVar(&outPath, "svg", "", "also write the value traces as SVG")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "measure frame throughput and rest value across frame rates",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPreset,
	}
	addEffectFlags(benchCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "replay a gesture across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepPreset,
	}
	addEffectFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "spring_constant", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "from", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "to", 8, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid-search parameters for the best score on a gesture",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tunePreset,
	}
	addEffectFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&gridSpecs, "grid", nil, "parameter grid, name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "settle_time", "metric to minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list effect presets",
		RunE:  listPresets,
	}

	gesturesCmd := &cobra.Command{
		Use:   "gestures",
		Short: "list gesture generators",
		RunE:  listGestures,
	}

	rootCmd.AddCommand(runCmd, batchCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		analyzeCmd, liveCmd, replayCmd, compareCmd, benchCmd, sweepCmd, tuneCmd, presetsCmd, gesturesCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func addEffectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame interval")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&mode, "mode", "damped", "effect mode (inertial, bounded, damped)")
	cmd.Flags().Float64Var(&minBound, "min", config.DefaultMin, "lower content bound")
	cmd.Flags().Float64Var(&maxBound, "max", config.DefaultMax, "upper content bound")
	cmd.Flags().StringVar(&stepper, "stepper", "single", "stepper (single, substep)")
	cmd.Flags().StringVar(&gestureArg, "gesture", config.DefaultGesture, "gesture generator")
	cmd.Flags().StringVar(&scriptPath, "script", "", "gesture script file")
	cmd.Flags().StringArrayVar(&paramSets, "set", nil, "override a parameter, name=value (repeatable)")
}

// loadConfig resolves the effect config: a preset, or the defaults, then a
// config file, then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
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
	if flags.Changed("dt") {
		cfg.Frame.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Frame.Duration = duration
	}
	if flags.Changed("stepper") {
		cfg.Frame.Stepper = stepper
	}
	if flags.Changed("mode") {
		m, err := scroll.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		cfg.Mode = m
	}
	if flags.Changed("min") {
		cfg.Bounds.Min = minBound
	}
	if flags.Changed("max") {
		cfg.Bounds.Max = maxBound
	}
	if flags.Changed("gesture") {
		cfg.Gesture.Preset = gestureArg
		cfg.Gesture.Script = ""
	}
	if flags.Changed("script") {
		cfg.Gesture.Script = scriptPath
	}

	for _, set := range paramSets {
		name, raw, ok := strings.Cut(set, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want name=value", set)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", set, err)
		}
		p, err := cfg.Params.With(strings.TrimSpace(name), v)
		if err != nil {
			return nil, err
		}
		cfg.Params = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	st.SetCompression(compress)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runInfo(cfg *config.Config, gestureName string) storage.RunInfo {
	return storage.RunInfo{
		Name:     cfg.Name,
		Mode:     cfg.Mode.String(),
		Stepper:  cfg.Frame.Stepper,
		Gesture:  gestureName,
		Min:      cfg.Bounds.Min,
		Max:      cfg.Bounds.Max,
		Params:   cfg.Params,
		Dt:       cfg.Frame.Dt,
		Duration: cfg.Frame.Duration,
	}
}
