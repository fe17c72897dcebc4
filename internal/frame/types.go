package frame

import (
	"errors"
	"fmt"

	"github.com/san-kum/kinetic/internal/scroll"
)

// Target is the input surface of a scroll effect.
type Target interface {
	BeginAt(pos, t float64)
	ExtendAt(pos, t float64) error
	EndAt(pos, t float64) error
	Cancel()
	Fling(velocity float64)
}

// Input delivers the gesture events whose times fall in [from, to).
type Input interface {
	Feed(e Target, from, to float64) error
}

// Finisher is implemented by inputs that know when they have no more events.
type Finisher interface {
	Done(t float64) bool
}

type Metric interface {
	Name() string
	Observe(s scroll.State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s scroll.State, t float64)
}

type Config struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	// MaxDt splits longer frames into sub-steps when the Substep stepper
	// is used. Zero disables splitting.
	MaxDt float64 `yaml:"max_dt"`
	// StopWhenIdle ends the run once the input is exhausted and the
	// effect is at rest.
	StopWhenIdle bool `yaml:"stop_when_idle"`
}

func DefaultConfig() Config {
	return Config{
		Dt:           1.0 / 60,
		Duration:     5.0,
		MaxDt:        3 * scroll.DefaultStdDt,
		StopWhenIdle: true,
	}
}

type Result struct {
	Times  []float64
	Frames []scroll.State
	// Ticks counts Effect.Tick calls, sub-steps included.
	Ticks int
	// SettledAt is the time the effect came to rest for good, or -1.
	SettledAt float64
	Metrics   map[string]float64
}

var (
	ErrInvalidConfig = errors.New("frame: invalid config")
	ErrCanceled      = errors.New("frame: run canceled")
)

// StepError wraps an input failure with the frame it happened in.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
