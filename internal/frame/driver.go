package frame

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/san-kum/kinetic/internal/scroll"
)

// Driver plays an input against an effect on a fixed frame clock.
type Driver struct {
	stepper   Stepper
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(stepper Stepper) *Driver {
	if stepper == nil {
		stepper = NewSingle()
	}
	return &Driver{
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       slog.Default(),
	}
}

func (d *Driver) AddMetric(m Metric)       { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer)   { d.observers = append(d.observers, o) }
func (d *Driver) SetLogger(l *slog.Logger) { d.log = l }
func (d *Driver) Stepper() Stepper         { return d.stepper }

// Run advances e for cfg.Duration seconds. The effect clock is bound to the
// simulated time so unstamped samples line up with scripted ones.
func (d *Driver) Run(ctx context.Context, e *scroll.Effect, in Input, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Times:     make([]float64, 0, steps+1),
		Frames:    make([]scroll.State, 0, steps+1),
		SettledAt: -1,
		Metrics:   make(map[string]float64),
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	t := 0.0
	e.SetClock(func() float64 { return t })

	result.Times = append(result.Times, t)
	result.Frames = append(result.Frames, e.State())

	d.log.Debug("frame run started", "effect", e.Name, "mode", e.Mode(), "steps", steps, "dt", cfg.Dt)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
		default:
		}

		next := t + cfg.Dt
		if in != nil {
			if err := in.Feed(e, t, next); err != nil {
				return result, &StepError{Step: i, Time: next, Wrapped: err}
			}
		}
		t = next
		result.Ticks += d.stepper.Advance(e, cfg.Dt)

		s := e.State()
		for _, m := range d.metrics {
			m.Observe(s, t)
		}
		for _, obs := range d.observers {
			obs.OnFrame(s, t)
		}
		result.Times = append(result.Times, t)
		result.Frames = append(result.Frames, s)

		if atRest(e, in, t) {
			if result.SettledAt < 0 {
				result.SettledAt = t
			}
			if cfg.StopWhenIdle {
				break
			}
		} else {
			result.SettledAt = -1
		}
	}

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	d.log.Debug("frame run finished", "effect", e.Name, "frames", len(result.Frames), "ticks", result.Ticks, "settled_at", result.SettledAt)
	return result, nil
}

// RunWithCallback streams frames to callback instead of collecting them.
// Returning false from callback stops the run.
func (d *Driver) RunWithCallback(ctx context.Context, e *scroll.Effect, in Input, cfg Config, callback func(scroll.State, float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	e.SetClock(func() float64 { return t })

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
		default:
		}

		next := t + cfg.Dt
		if in != nil {
			if err := in.Feed(e, t, next); err != nil {
				return &StepError{Time: next, Wrapped: err}
			}
		}
		t = next
		d.stepper.Advance(e, cfg.Dt)

		if !callback(e.State(), t) {
			return nil
		}
		if cfg.StopWhenIdle && atRest(e, in, t) {
			return nil
		}
	}
	return nil
}

// RunRealtime drives e from the wall clock, paced at cfg.Dt by a rate
// limiter. Each frame uses the measured elapsed time as dt, so frame
// jitter reaches the physics the way it would in a real UI loop.
func (d *Driver) RunRealtime(ctx context.Context, e *scroll.Effect, in Input, cfg Config, callback func(scroll.State, float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	period := time.Duration(cfg.Dt * float64(time.Second))
	limiter := rate.NewLimiter(rate.Every(period), 1)

	start := time.Now()
	t := 0.0
	e.SetClock(func() float64 { return t })

	for t < cfg.Duration {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrCanceled, err)
		}

		next := time.Since(start).Seconds()
		if in != nil {
			if err := in.Feed(e, t, next); err != nil {
				return &StepError{Time: next, Wrapped: err}
			}
		}
		dt := next - t
		t = next
		d.stepper.Advance(e, dt)

		if !callback(e.State(), t) {
			return nil
		}
		if cfg.StopWhenIdle && atRest(e, in, t) {
			return nil
		}
	}
	return nil
}

func atRest(e *scroll.Effect, in Input, t float64) bool {
	if e.TickPending() || e.Phase() != scroll.Idle {
		return false
	}
	if f, ok := in.(Finisher); ok {
		return f.Done(t)
	}
	return true
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.MaxDt < 0 {
		return fmt.Errorf("%w: max_dt must not be negative, got %f", ErrInvalidConfig, cfg.MaxDt)
	}
	return nil
}
