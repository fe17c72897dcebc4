package frame

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/kinetic/internal/scroll"
)

type step struct {
	t    float64
	kind string
	pos  float64
}

type testInput struct {
	steps []step
}

func (in *testInput) Feed(e Target, from, to float64) error {
	for _, s := range in.steps {
		if s.t < from || s.t >= to {
			continue
		}
		var err error
		switch s.kind {
		case "begin":
			e.BeginAt(s.pos, s.t)
		case "extend":
			err = e.ExtendAt(s.pos, s.t)
		case "end":
			err = e.EndAt(s.pos, s.t)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (in *testInput) Done(t float64) bool {
	return len(in.steps) == 0 || t > in.steps[len(in.steps)-1].t
}

type frameCounter struct{ n int }

func (c *frameCounter) Name() string                      { return "frames" }
func (c *frameCounter) Observe(s scroll.State, t float64) { c.n++ }
func (c *frameCounter) Value() float64                    { return float64(c.n) }
func (c *frameCounter) Reset()                            { c.n = 0 }

func TestDriverRun(t *testing.T) {
	e := scroll.NewInertial()
	e.Fling(600)

	d := New(NewSingle())
	d.AddMetric(&frameCounter{})

	cfg := Config{Dt: 0.1, Duration: 1.0}
	result, err := d.Run(context.Background(), e, nil, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if math.Abs(result.Times[10]-1.0) > 1e-9 {
		t.Errorf("expected last time 1.0, got %f", result.Times[10])
	}
	if result.Metrics["frames"] != 10 {
		t.Errorf("expected 10 observed frames, got %f", result.Metrics["frames"])
	}
	if result.Ticks == 0 {
		t.Error("expected the fling to tick")
	}
	if result.Frames[10].Value <= 0 {
		t.Errorf("expected positive travel, got %f", result.Frames[10].Value)
	}
}

func TestDriverStopWhenIdle(t *testing.T) {
	e := scroll.NewInertial()
	d := New(nil)

	cfg := Config{Dt: 0.1, Duration: 1.0, StopWhenIdle: true}
	result, err := d.Run(context.Background(), e, nil, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 2 {
		t.Errorf("expected run to stop after one frame, got %d frames", len(result.Frames))
	}
	if math.Abs(result.SettledAt-0.1) > 1e-9 {
		t.Errorf("expected settle at 0.1, got %f", result.SettledAt)
	}
}

func TestDriverWaitsForInput(t *testing.T) {
	e := scroll.NewDamped(0, 1000)
	in := &testInput{steps: []step{
		{0.05, "begin", 0},
		{0.10, "extend", -20},
		{0.15, "extend", -40},
		{0.20, "extend", -60},
		{0.25, "end", -80},
	}}

	cfg := Config{Dt: 1.0 / 60, Duration: 10, StopWhenIdle: true}
	result, err := New(NewSingle()).Run(context.Background(), e, in, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.SettledAt < 0.25 {
		t.Errorf("expected settle after the gesture ended, got %f", result.SettledAt)
	}
	last := result.Frames[len(result.Frames)-1]
	if last.Phase != scroll.Idle {
		t.Errorf("expected idle at the end, got %v", last.Phase)
	}
	if last.Overscroll != 0 {
		t.Errorf("expected overscroll recovered, got %f", last.Overscroll)
	}
	if result.Ticks == 0 {
		t.Error("expected ticks during recovery")
	}
}

func TestDriverInputError(t *testing.T) {
	e := scroll.NewInertial()
	in := &testInput{steps: []step{{0.05, "extend", 10}}}

	_, err := New(nil).Run(context.Background(), e, in, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, scroll.ErrNoGesture) {
		t.Fatalf("expected ErrNoGesture, got %v", err)
	}
	var se *StepError
	if !errors.As(err, &se) {
		t.Fatalf("expected StepError, got %T", err)
	}
	if se.Step != 0 {
		t.Errorf("expected failure in frame 0, got %d", se.Step)
	}
}

func TestDriverCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Run(ctx, scroll.NewInertial(), nil, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", DefaultConfig(), true},
		{"zero dt", Config{Dt: 0, Duration: 1}, false},
		{"negative duration", Config{Dt: 0.1, Duration: -1}, false},
		{"negative max dt", Config{Dt: 0.1, Duration: 1, MaxDt: -0.1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.cfg)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	e := scroll.NewInertial()
	e.Fling(600)

	calls := 0
	err := New(nil).RunWithCallback(context.Background(), e, nil, Config{Dt: 0.1, Duration: 10}, func(s scroll.State, t float64) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 callbacks, got %d", calls)
	}
}

func TestRunRealtime(t *testing.T) {
	e := scroll.NewInertial()
	e.Fling(600)

	var last float64
	frames := 0
	cfg := Config{Dt: 0.01, Duration: 0.05}
	err := New(NewSubstep(0.005)).RunRealtime(context.Background(), e, nil, cfg, func(s scroll.State, t float64) bool {
		frames++
		last = t
		return true
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if frames == 0 {
		t.Fatal("expected at least one frame")
	}
	if last < cfg.Duration {
		t.Errorf("expected run to reach %f, stopped at %f", cfg.Duration, last)
	}
}

func TestEnsemble(t *testing.T) {
	sessions := []Session{
		{Name: "slow", Effect: scroll.NewInertial()},
		{Name: "fast", Effect: scroll.NewInertial()},
		{Name: "still", Effect: scroll.NewInertial()},
	}
	sessions[0].Effect.Fling(100)
	sessions[1].Effect.Fling(1000)

	en := NewEnsemble(NewSingle(), func() []Metric { return []Metric{&frameCounter{}} })
	results, err := en.Run(context.Background(), sessions, Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Metrics["frames"] != 10 {
			t.Errorf("session %d: expected 10 frames, got %f", i, r.Metrics["frames"])
		}
	}
	slow := results[0].Frames[10].Value
	fast := results[1].Frames[10].Value
	if fast <= slow {
		t.Errorf("expected fast fling to travel further: slow=%f fast=%f", slow, fast)
	}
	if results[2].Frames[10].Value != 0 {
		t.Errorf("expected still session to stay put, got %f", results[2].Frames[10].Value)
	}
}
