package scroll

import (
	"fmt"
	"math"
)

// Mode selects how an Effect responds at its bounds.
type Mode int

const (
	ModeInertial Mode = iota
	ModeBounded
	ModeDamped
)

var modeNames = map[Mode]string{
	ModeInertial: "inertial",
	ModeBounded:  "bounded",
	ModeDamped:   "damped",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a config name to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown scroll mode: %s", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) bounded() bool { return m == ModeBounded || m == ModeDamped }

func (m Mode) response() (response, error) {
	switch m {
	case ModeInertial:
		return inertial{}, nil
	case ModeBounded:
		return clampReset{}, nil
	case ModeDamped:
		return springDamp{}, nil
	}
	return nil, fmt.Errorf("unknown scroll mode: %d", int(m))
}

// response is the overscroll strategy plugged into an Effect.
type response interface {
	// project recomputes scroll and overscroll after the value changed.
	project(e *Effect)
	// distance adjusts an incoming distance before it is applied.
	distance(e *Effect, d float64) float64
	tick(e *Effect, dt float64)
	overscrollChanged(e *Effect)
}

type inertial struct{}

func (inertial) project(e *Effect)                     { e.scroll = e.value }
func (inertial) distance(e *Effect, d float64) float64 { return d }
func (inertial) tick(e *Effect, dt float64)            { e.decay(dt) }
func (inertial) overscrollChanged(e *Effect)           {}

// clampReset keeps the value inside the bounds. Leaving the range reports
// the excess as overscroll and pins the value at the bound.
type clampReset struct{}

func (clampReset) project(e *Effect) {
	lo, hi := e.Bounds()
	switch {
	case e.value < lo:
		e.setOverscroll(e.value - lo)
		e.clampTo(lo)
	case e.value > hi:
		e.setOverscroll(e.value - hi)
		e.clampTo(hi)
	default:
		e.scroll = e.value
		e.setOverscroll(0)
	}
}

func (clampReset) distance(e *Effect, d float64) float64 { return d }
func (clampReset) tick(e *Effect, dt float64)            { e.decay(dt) }
func (clampReset) overscrollChanged(e *Effect)           {}

// springDamp lets the value travel past the bounds; the excess becomes the
// spring displacement that pulls it back.
type springDamp struct{}

func (springDamp) project(e *Effect) {
	lo, hi := e.Bounds()
	e.scroll = e.value
	switch {
	case e.value < lo:
		e.setOverscroll(e.value - lo)
	case e.value > hi:
		e.setOverscroll(e.value - hi)
	default:
		e.setOverscroll(0)
	}
}

// distance makes motion heavier the further the value is past the edge.
func (springDamp) distance(e *Effect, d float64) float64 {
	if os := math.Abs(e.overscroll); os != 0 {
		d /= 1.0 + os/e.params.ReferenceScale
	}
	return d
}

func (springDamp) overscrollChanged(e *Effect) { e.requestTick() }

type settleTarget int

const (
	settleNone settleTarget = iota
	settleMin
	settleMax
)

func (springDamp) tick(e *Effect, dt float64) {
	p := e.params
	if math.Abs(e.velocity) <= p.MinVelocity && e.overscroll == 0 {
		e.velocity = 0
		if p.RoundValue {
			e.setValue(math.Round(e.value))
		}
		return
	}

	force := e.velocity * p.Friction * dt / p.StdDt
	if math.Abs(e.overscroll) > p.MinOverscroll {
		force += e.velocity * p.EdgeDamping
		force += e.overscroll * p.SpringConstant
	} else {
		e.setOverscroll(0)
	}

	target := settleNone
	if !e.manual {
		switch {
		case e.overscroll > 0 && e.velocity < 0:
			target = settleMax
		case e.overscroll < 0 && e.velocity > 0:
			target = settleMin
		}
	}

	e.velocity -= force
	if !e.manual {
		e.applyDistance(e.velocity * dt)
		lo, hi := e.Bounds()
		if target == settleMin && e.value > lo {
			e.setValue(lo)
			e.velocity = 0
			return
		}
		if target == settleMax && e.value < hi {
			e.setValue(hi)
			e.velocity = 0
			return
		}
	}
	e.requestTick()
}
