package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/kinetic/internal/analysis"
	"github.com/san-kum/kinetic/internal/config"
	"github.com/san-kum/kinetic/internal/export"
	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/gesture"
	"github.com/san-kum/kinetic/internal/metrics"
	"github.com/san-kum/kinetic/internal/optim"
	"github.com/san-kum/kinetic/internal/scroll"
)

func runEffect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	e, err := cfg.Build()
	if err != nil {
		return err
	}
	st, err := cfg.Stepper()
	if err != nil {
		return err
	}
	script, err := cfg.Script(gesture.NewRegistry())
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	d := frame.New(st)
	d.SetLogger(slog.Default().With("run", cfg.Name))
	for _, m := range metrics.Standard() {
		d.AddMetric(m)
	}

	fmt.Printf("playing %s against %s (%s)...\n", script.Name, cfg.Name, cfg.Mode)
	start := time.Now()

	result, err := d.Run(cmd.Context(), e, script, cfg.FrameConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := store.Save(runInfo(cfg, script.Name), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  ticks: %d\n", len(result.Frames), result.Ticks)
	if result.SettledAt >= 0 {
		fmt.Printf("settled at: %.3fs\n", result.SettledAt)
	} else {
		fmt.Println("settled at: still moving")
	}
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, m[name])
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	st, err := cfg.Stepper()
	if err != nil {
		return err
	}

	scripts, err := gesture.LoadGlob(args[0])
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return fmt.Errorf("no gesture scripts match %s", args[0])
	}

	sessions := make([]frame.Session, len(scripts))
	for i, s := range scripts {
		e, err := cfg.Build()
		if err != nil {
			return err
		}
		sessions[i] = frame.Session{Name: s.Name, Effect: e, Input: s}
	}

	en := frame.NewEnsemble(st, metrics.Standard)
	en.SetLogger(slog.Default().With("batch", args[0]))
	results, err := en.Run(cmd.Context(), sessions, cfg.FrameConfig())
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCRIPT\tRUN ID\tFRAMES\tSETTLED\tPEAK OS\tREST")
	for i, r := range results {
		runID, err := store.Save(runInfo(cfg, scripts[i].Name), r)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.2f\t%.2f\n",
			scripts[i].Name, runID, len(r.Frames), settled(r.SettledAt), r.Metrics["peak_overscroll"], r.Metrics["rest_value"])
	}
	return w.Flush()
}

func settled(t float64) string {
	if t < 0 {
		return "moving"
	}
	return fmt.Sprintf("%.3fs", t)
}

func comparePresets(cmd *cobra.Command, args []string) error {
	reg := gesture.NewRegistry()

	var script *gesture.Script
	var err error
	if scriptPath != "" {
		script, err = gesture.Load(scriptPath)
	} else {
		script, err = reg.Get(gestureArg, gesture.Spec{})
	}
	if err != nil {
		return err
	}

	st, err := frame.NewStepper(stepper, 3*config.DefaultDt)
	if err != nil {
		return err
	}

	sessions := make([]frame.Session, len(args))
	for i, name := range args {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		e, err := cfg.Build()
		if err != nil {
			return err
		}
		sessions[i] = frame.Session{Name: name, Effect: e, Input: script}
	}

	// Equal-length traces so they share the time axis.
	fc := frame.Config{Dt: dt, Duration: duration}
	results, err := frame.NewEnsemble(st, metrics.Standard).Run(cmd.Context(), sessions, fc)
	if err != nil {
		return err
	}

	fmt.Printf("comparing presets on %s (dt=%.4f, duration=%.1fs)\n\n", script.Name, dt, duration)
	fmt.Printf("%-14s  %10s  %10s  %10s  %10s\n", "preset", "peak_os", "settle_s", "rest", "travel")
	fmt.Println(strings.Repeat("-", 62))
	for i, r := range results {
		fmt.Printf("%-14s  %10.2f  %10.3f  %10.2f  %10.1f\n", args[i],
			r.Metrics["peak_overscroll"], r.Metrics["settle_time"], r.Metrics["rest_value"], r.Metrics["travel"])
	}

	if outPath == "" {
		return nil
	}
	palette := []string{"#00ccff", "#ff4488", "#88ff44", "#ffcc00", "#cc88ff", "#ff8800"}
	traces := make([]export.Trace, len(results))
	for i, r := range results {
		traces[i] = export.Trace{Name: args[i], Color: palette[i%len(palette)], Values: analysis.Values(r.Frames)}
	}
	svg := export.SeriesToSVG(results[0].Times, traces, []float64{config.DefaultMin, config.DefaultMax}, 800, 400)
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("\nwrote %s\n", outPath)
	return nil
}

// benchPreset replays the configured gesture at several frame rates with
// both steppers. The rest value column shows how far the outcome drifts
// with the frame rate.
func benchPreset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	script, err := cfg.Script(gesture.NewRegistry())
	if err != nil {
		return err
	}

	rates := []float64{30, 60, 120, 240}
	steppers := []frame.Stepper{frame.NewSingle(), frame.NewSubstep(cfg.Frame.MaxDt)}
	names := []string{"single", "substep"}

	fmt.Printf("benchmarking %s with %s\n\n", cfg.Name, script.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FPS\tSTEPPER\tFRAMES\tTICKS\tTIME\tFRAMES/SEC\tREST")

	for _, fps := range rates {
		for i, st := range steppers {
			e, err := cfg.Build()
			if err != nil {
				return err
			}
			d := frame.New(st)
			rest := metrics.NewRestValue()
			d.AddMetric(rest)

			fc := cfg.FrameConfig()
			fc.Dt = 1 / fps

			start := time.Now()
			result, err := d.Run(cmd.Context(), e, script, fc)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			perSec := float64(len(result.Frames)) / elapsed.Seconds()
			fmt.Fprintf(w, "%.0f\t%s\t%d\t%d\t%v\t%.0f\t%.2f\n",
				fps, names[i], len(result.Frames), result.Ticks, elapsed, perSec, rest.Value())
		}
	}
	return w.Flush()
}

func sweepPreset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	st, err := cfg.Stepper()
	if err != nil {
		return err
	}
	script, err := cfg.Script(gesture.NewRegistry())
	if err != nil {
		return err
	}

	sw := analysis.Sweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	points, err := sw.Run(cmd.Context(), cfg.Build, script, st, cfg.FrameConfig())
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s on %s with %s\n\n", sweepParam, cfg.Name, script.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK OS\tSETTLE\tREST\tTRAVEL\n", strings.ToUpper(sweepParam))
	for _, p := range points {
		fmt.Fprintf(w, "%.3f\t%.2f\t%s\t%.2f\t%.1f\n", p.Param, p.PeakOverscroll, settled(p.SettleTime), p.RestValue, p.Travel)
	}
	return w.Flush()
}

// parseGrid reads --grid flags of the form name=v1,v2,...
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || list == "" {
			return nil, nil, fmt.Errorf("invalid --grid %q, want name=v1,v2,...", spec)
		}
		var vals []float64
		for _, raw := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid --grid %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func tunePreset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(gridSpecs) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}
	names, ranges, err := parseGrid(gridSpecs)
	if err != nil {
		return err
	}
	st, err := cfg.Stepper()
	if err != nil {
		return err
	}
	script, err := cfg.Script(gesture.NewRegistry())
	if err != nil {
		return err
	}

	build := func(p scroll.Params) (*scroll.Effect, error) {
		c := cfg.Clone()
		c.Params = p
		return c.Build()
	}

	best, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), build, cfg.Params, script, st, cfg.FrameConfig(), optim.ByMetric(tuneMetric))
	if err != nil {
		return err
	}

	fmt.Printf("tuned %s on %s: tried %d, best %s = %.4f\n", cfg.Name, script.Name, best.Tried, tuneMetric, best.Score)
	for _, name := range names {
		fmt.Printf("  %s: %g\n", name, best.Values[name])
	}
	return nil
}
