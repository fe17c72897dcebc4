package scroll

import (
	"fmt"
	"sort"
)

const (
	DefaultFriction       = 0.05
	DefaultMinDistance    = 0.1
	DefaultMinVelocity    = 0.5
	DefaultStdDt          = 0.017
	DefaultMaxHistory     = 5
	DefaultDragThreshold  = 20.0
	DefaultEdgeDamping    = 0.25
	DefaultSpringConstant = 2.0
	DefaultMinOverscroll  = 0.5
	DefaultReferenceScale = 200.0

	// releaseWindow is how far back End looks for the sample that anchors
	// the release velocity.
	releaseWindow = 10.0 / 60.0

	// minDuration floors the velocity divisor.
	minDuration = 1e-4
)

// Params holds every tunable constant of an Effect.
type Params struct {
	Friction       float64 `yaml:"friction" json:"friction"`
	MinDistance    float64 `yaml:"min_distance" json:"min_distance"`
	MinVelocity    float64 `yaml:"min_velocity" json:"min_velocity"`
	StdDt          float64 `yaml:"std_dt" json:"std_dt"`
	MaxHistory     int     `yaml:"max_history" json:"max_history"`
	DragThreshold  float64 `yaml:"drag_threshold" json:"drag_threshold"`
	EdgeDamping    float64 `yaml:"edge_damping" json:"edge_damping"`
	SpringConstant float64 `yaml:"spring_constant" json:"spring_constant"`
	MinOverscroll  float64 `yaml:"min_overscroll" json:"min_overscroll"`
	RoundValue     bool    `yaml:"round_value" json:"round_value"`
	// ReferenceScale is the overscroll distance at which manual drag is
	// halved, in density-independent units.
	ReferenceScale float64 `yaml:"reference_scale" json:"reference_scale"`
}

func DefaultParams() Params {
	return Params{
		Friction:       DefaultFriction,
		MinDistance:    DefaultMinDistance,
		MinVelocity:    DefaultMinVelocity,
		StdDt:          DefaultStdDt,
		MaxHistory:     DefaultMaxHistory,
		DragThreshold:  DefaultDragThreshold,
		EdgeDamping:    DefaultEdgeDamping,
		SpringConstant: DefaultSpringConstant,
		MinOverscroll:  DefaultMinOverscroll,
		RoundValue:     true,
		ReferenceScale: DefaultReferenceScale,
	}
}

// Validate rejects parameter sets whose divisors could be zero or whose
// thresholds are negative.
func (p Params) Validate() error {
	checks := []struct {
		name string
		val  float64
		ok   bool
	}{
		{"std_dt", p.StdDt, p.StdDt > 0},
		{"reference_scale", p.ReferenceScale, p.ReferenceScale > 0},
		{"max_history", float64(p.MaxHistory), p.MaxHistory >= 1},
		{"friction", p.Friction, p.Friction >= 0},
		{"min_distance", p.MinDistance, p.MinDistance >= 0},
		{"min_velocity", p.MinVelocity, p.MinVelocity >= 0},
		{"drag_threshold", p.DragThreshold, p.DragThreshold >= 0},
		{"edge_damping", p.EdgeDamping, p.EdgeDamping >= 0},
		{"spring_constant", p.SpringConstant, p.SpringConstant >= 0},
		{"min_overscroll", p.MinOverscroll, p.MinOverscroll >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return &ParamError{Name: c.name, Value: c.val, Wrapped: ErrInvalidParams}
		}
	}
	return nil
}

// Map returns the parameters keyed by their config names. RoundValue maps
// to 1 or 0.
func (p Params) Map() map[string]float64 {
	round := 0.0
	if p.RoundValue {
		round = 1
	}
	return map[string]float64{
		"friction":        p.Friction,
		"min_distance":    p.MinDistance,
		"min_velocity":    p.MinVelocity,
		"std_dt":          p.StdDt,
		"max_history":     float64(p.MaxHistory),
		"drag_threshold":  p.DragThreshold,
		"edge_damping":    p.EdgeDamping,
		"spring_constant": p.SpringConstant,
		"min_overscroll":  p.MinOverscroll,
		"round_value":     round,
		"reference_scale": p.ReferenceScale,
	}
}

// With returns a copy of p with the named parameter replaced.
func (p Params) With(name string, value float64) (Params, error) {
	switch name {
	case "friction":
		p.Friction = value
	case "min_distance":
		p.MinDistance = value
	case "min_velocity":
		p.MinVelocity = value
	case "std_dt":
		p.StdDt = value
	case "max_history":
		p.MaxHistory = int(value)
	case "drag_threshold":
		p.DragThreshold = value
	case "edge_damping":
		p.EdgeDamping = value
	case "spring_constant":
		p.SpringConstant = value
	case "min_overscroll":
		p.MinOverscroll = value
	case "round_value":
		p.RoundValue = value != 0
	case "reference_scale":
		p.ReferenceScale = value
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return p, p.Validate()
}

// ParamNames lists the tunable parameter names in sorted order.
func ParamNames() []string {
	m := DefaultParams().Map()
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
