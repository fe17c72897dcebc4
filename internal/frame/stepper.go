package frame

import (
	"fmt"
	"math"

	"github.com/san-kum/kinetic/internal/scroll"
)

// Stepper consumes an effect's pending tick request for one frame.
type Stepper interface {
	Advance(e *scroll.Effect, dt float64) int
}

// Single runs one tick per frame with the full frame duration.
type Single struct{}

func NewSingle() *Single { return &Single{} }

func (s *Single) Advance(e *scroll.Effect, dt float64) int {
	if !e.TakeTick() {
		return 0
	}
	e.Tick(dt)
	return 1
}

// Substep splits frames longer than MaxDt into equal sub-steps. Each
// sub-step after the first runs only if the previous one re-armed the
// effect, so a run that ends mid-frame stays ended.
type Substep struct {
	MaxDt float64
}

func NewSubstep(maxDt float64) *Substep { return &Substep{MaxDt: maxDt} }

func (s *Substep) Advance(e *scroll.Effect, dt float64) int {
	if !e.TakeTick() {
		return 0
	}
	n := 1
	if s.MaxDt > 0 && dt > s.MaxDt {
		n = int(math.Ceil(dt / s.MaxDt))
	}
	h := dt / float64(n)
	ticks := 0
	for i := 0; i < n; i++ {
		if i > 0 && !e.TakeTick() {
			break
		}
		e.Tick(h)
		ticks++
	}
	return ticks
}

// NewStepper maps a config name to a Stepper.
func NewStepper(name string, maxDt float64) (Stepper, error) {
	switch name {
	case "", "single":
		return NewSingle(), nil
	case "substep":
		return NewSubstep(maxDt), nil
	}
	return nil, fmt.Errorf("unknown stepper: %s", name)
}
