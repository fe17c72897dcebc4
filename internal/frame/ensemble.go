package frame

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/san-kum/kinetic/internal/scroll"
)

// Session is one effect and the input played against it.
type Session struct {
	Name   string
	Effect *scroll.Effect
	Input  Input
}

// Ensemble runs independent sessions in parallel. Every session gets its
// own Driver; metrics come from a factory because they carry state.
type Ensemble struct {
	stepper Stepper
	metrics func() []Metric
	log     *slog.Logger
}

func NewEnsemble(stepper Stepper, metrics func() []Metric) *Ensemble {
	return &Ensemble{stepper: stepper, metrics: metrics, log: slog.Default()}
}

func (en *Ensemble) SetLogger(l *slog.Logger) { en.log = l }

func (en *Ensemble) Run(ctx context.Context, sessions []Session, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(sessions))
	errs := make([]error, len(sessions))

	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := sessions[idx]
			d := New(en.stepper)
			d.SetLogger(en.log.With("session", s.Name))
			if en.metrics != nil {
				for _, m := range en.metrics() {
					d.AddMetric(m)
				}
			}
			results[idx], errs[idx] = d.Run(ctx, s.Effect, s.Input, cfg)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", sessions[i].Name, err)
		}
	}

	return results, nil
}
