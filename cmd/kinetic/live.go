package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/kinetic/internal/config"
	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/gesture"
	"github.com/san-kum/kinetic/internal/metrics"
	"github.com/san-kum/kinetic/internal/scroll"
	"github.com/san-kum/kinetic/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && configFile == "" {
		items := make([]viz.PickerItem, 0, len(config.Presets))
		for _, name := range config.ListPresets() {
			items = append(items, viz.PickerItem{Name: name, Description: config.Presets[name].Description})
		}
		name, err := viz.RunPicker(items)
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		args = []string{name}
	}

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

	m := viz.NewModel(e, st, viz.Options{Title: cfg.Name, Theme: theme, Visible: visible})
	if err := viz.Run(m); err != nil {
		return err
	}
	if m.Err() != nil {
		return m.Err()
	}
	if !saveLive {
		return nil
	}

	rec := m.Recording()
	if len(rec.Frames) == 0 {
		return nil
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	runID, err := store.Save(runInfo(cfg, "keyboard"), summarize(rec))
	if err != nil {
		return err
	}
	fmt.Printf("saved session as %s\n", runID)
	return nil
}

// summarize turns a live recording into a frame result, computing the
// standard metrics after the fact.
func summarize(rec *viz.Recording) *frame.Result {
	result := &frame.Result{
		Times:     rec.Times,
		Frames:    rec.Frames,
		SettledAt: -1,
		Metrics:   make(map[string]float64),
	}

	ms := metrics.Standard()
	for i, f := range rec.Frames {
		for _, m := range ms {
			m.Observe(f, rec.Times[i])
		}
		if f.Phase == scroll.Idle {
			if result.SettledAt < 0 {
				result.SettledAt = rec.Times[i]
			}
		} else {
			result.SettledAt = -1
		}
	}
	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}
	return result
}

func replayRun(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", meta.ID)
	}

	lo, hi := meta.Min, meta.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	rec := &viz.Recording{Times: times, Frames: frames}
	return viz.Run(viz.NewReplay(rec, lo, hi, viz.Options{Title: meta.ID, Theme: theme, Visible: visible}))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMODE\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Mode, p.Description)
	}
	return w.Flush()
}

func listGestures(cmd *cobra.Command, args []string) error {
	reg := gesture.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GESTURE\tDESCRIPTION")
	for _, name := range reg.List() {
		fmt.Fprintf(w, "%s\t%s\n", name, reg.Describe(name))
	}
	return w.Flush()
}
