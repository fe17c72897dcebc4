package main

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/kinetic/internal/scroll"
	"github.com/san-kum/kinetic/internal/viz"
)

func newTestCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	configFile, paramSets = "", nil
	cmd := &cobra.Command{Use: "test"}
	addEffectFlags(cmd)
	if err := cmd.ParseFlags(flags); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestLoadConfigPresetAndOverrides(t *testing.T) {
	cmd := newTestCmd(t, "--dt", "0.01", "--set", "friction=0.1", "--set", "spring_constant=4")

	cfg, err := loadConfig(cmd, []string{"rubber"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Name != "rubber" {
		t.Errorf("expected rubber, got %s", cfg.Name)
	}
	if cfg.Frame.Dt != 0.01 {
		t.Errorf("expected dt override, got %f", cfg.Frame.Dt)
	}
	if cfg.Frame.Duration != 5 {
		t.Errorf("expected preset duration kept, got %f", cfg.Frame.Duration)
	}
	if cfg.Params.Friction != 0.1 || cfg.Params.SpringConstant != 4 {
		t.Errorf("expected param overrides, got %+v", cfg.Params)
	}
	if cfg.Params.EdgeDamping != 0.1 {
		t.Errorf("expected preset edge damping kept, got %f", cfg.Params.EdgeDamping)
	}
}

func TestLoadConfigUnchangedFlagsKeepPreset(t *testing.T) {
	cmd := newTestCmd(t)

	cfg, err := loadConfig(cmd, []string{"clamped"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Mode != scroll.ModeBounded {
		t.Errorf("expected bounded mode from preset, got %s", cfg.Mode)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		args  []string
	}{
		{"unknown preset", nil, []string{"nope"}},
		{"bad set", []string{"--set", "friction"}, nil},
		{"unknown param", []string{"--set", "mass=1"}, nil},
		{"bad mode", []string{"--mode", "sideways"}, nil},
		{"bad stepper", []string{"--stepper", "rk4"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTestCmd(t, tt.flags...)
			if _, err := loadConfig(cmd, tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	rec := &viz.Recording{
		Times: []float64{0.1, 0.2, 0.3, 0.4},
		Frames: []scroll.State{
			{Value: 0, Phase: scroll.Manual, Manual: true},
			{Value: 50, Velocity: 300, Phase: scroll.FreeRunning},
			{Value: 60, Phase: scroll.Idle},
			{Value: 60, Phase: scroll.Idle},
		},
	}

	result := summarize(rec)
	if result.SettledAt != 0.3 {
		t.Errorf("expected settle at 0.3, got %f", result.SettledAt)
	}
	if result.Metrics["rest_value"] != 60 {
		t.Errorf("expected rest value 60, got %f", result.Metrics["rest_value"])
	}
	if result.Metrics["travel"] != 60 {
		t.Errorf("expected travel 60, got %f", result.Metrics["travel"])
	}
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"spring_constant=0.5, 2,4", "edge_damping=0.25"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(names) != 2 || names[0] != "spring_constant" || names[1] != "edge_damping" {
		t.Errorf("unexpected names: %v", names)
	}
	if len(ranges[0]) != 3 || ranges[0][1] != 2 || ranges[1][0] != 0.25 {
		t.Errorf("unexpected ranges: %v", ranges)
	}

	for _, bad := range []string{"spring_constant", "spring_constant=", "spring_constant=a,b"} {
		if _, _, err := parseGrid([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
