package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/metrics"
	"github.com/san-kum/kinetic/internal/scroll"
)

// SweepPoint is the outcome of one parameter value.
type SweepPoint struct {
	Param          float64
	PeakOverscroll float64
	SettleTime     float64
	RestValue      float64
	Travel         float64
}

// Sweep replays the same input against effects that differ only in one
// parameter.
type Sweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// Run builds one effect per step with build, sets the swept parameter and
// plays input against all of them in parallel.
func (s Sweep) Run(ctx context.Context, build func() (*scroll.Effect, error), input frame.Input, stepper frame.Stepper, cfg frame.Config) ([]SweepPoint, error) {
	steps := s.Steps
	if steps <= 1 {
		steps = 2
	}
	stride := (s.Max - s.Min) / float64(steps-1)

	values := make([]float64, steps)
	sessions := make([]frame.Session, steps)
	for i := range sessions {
		values[i] = s.Min + float64(i)*stride
		e, err := build()
		if err != nil {
			return nil, err
		}
		if err := e.SetParam(s.Param, values[i]); err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", s.Param, values[i], err)
		}
		sessions[i] = frame.Session{
			Name:   fmt.Sprintf("%s=%g", s.Param, values[i]),
			Effect: e,
			Input:  input,
		}
	}

	results, err := frame.NewEnsemble(stepper, metrics.Standard).Run(ctx, sessions, cfg)
	if err != nil {
		return nil, err
	}

	points := make([]SweepPoint, steps)
	for i, r := range results {
		points[i] = SweepPoint{
			Param:          values[i],
			PeakOverscroll: r.Metrics["peak_overscroll"],
			SettleTime:     r.Metrics["settle_time"],
			RestValue:      r.Metrics["rest_value"],
			Travel:         r.Metrics["travel"],
		}
	}
	return points, nil
}
