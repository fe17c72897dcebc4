package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/kinetic/internal/analysis"
	"github.com/san-kum/kinetic/internal/export"
	"github.com/san-kum/kinetic/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODE\tGESTURE\tTIME\tFRAMES\tSETTLED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Name,
			run.Mode,
			run.Gesture,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			settled(run.SettledAt),
		)
	}
	return w.Flush()
}

func loadRun(id string) (*storage.RunMetadata, *storage.Store, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	return meta, st, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	frames, _, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("effect: %s (%s), gesture: %s\n", meta.Name, meta.Mode, meta.Gesture)
	fmt.Printf("frames: %d\n\n", len(frames))

	series := []struct {
		caption string
		data    []float64
	}{
		{"value", analysis.Values(frames)},
		{"velocity", analysis.Velocities(frames)},
		{"overscroll", analysis.Overscroll(frames)},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(args[0], outPath)
}

// output opens the --out file, or stdout when none was given.
func output() (io.WriteCloser, error) {
	if outPath == "" || outPath == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, times, frames); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}

	svg := export.TraceToSVG(times, frames, meta.Min, meta.Max, width, height)
	if svg == "" {
		return fmt.Errorf("run %s is too short to draw", meta.ID)
	}

	w, err := output()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	frames, _, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}
	if len(frames) < 4 {
		return fmt.Errorf("run %s has too few frames to analyze", meta.ID)
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("effect: %s (%s), gesture: %s\n\n", meta.Name, meta.Mode, meta.Gesture)

	overscroll := analysis.Overscroll(frames)
	ps := analysis.PowerSpectrum(overscroll)
	if len(ps) > 1 {
		plot := ps
		if len(plot) > 4 {
			plot = plot[:len(plot)/2]
		}
		fmt.Println(asciigraph.Plot(plot,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("overscroll power spectrum"),
		))
		fmt.Println()
	}

	freq := analysis.DominantFrequency(overscroll, meta.Dt)
	fmt.Printf("dominant overscroll frequency: %.3f hz\n", freq)
	fmt.Printf("velocity reversals: %d\n", analysis.ZeroCrossings(analysis.Velocities(frames)))
	fmt.Printf("overscroll sign changes: %d\n", analysis.ZeroCrossings(overscroll))
	fmt.Printf("overshoot ratio: %.3f\n", analysis.OvershootRatio(overscroll, 0))

	portrait := analysis.NewPhasePortrait(frames)
	fmt.Println("\nphase portrait (value across, velocity up):")
	fmt.Println(analysis.PhasePortraitToASCII(portrait, meta.Min, meta.Max, 70, 20))
	return nil
}
