package gesture

import (
	"fmt"
	"sort"
)

// Spec parameterizes a generated gesture. Zero fields take the
// generator's defaults. The wheel generator reads Distance as the fling
// velocity and Duration as the notch interval.
type Spec struct {
	Start    float64 `yaml:"start"`
	Distance float64 `yaml:"distance"`
	Duration float64 `yaml:"duration"`
}

type Generator struct {
	Description string
	Build       func(Spec) *Script
}

type Registry struct {
	generators map[string]Generator
}

const lead = 0.05

func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}

	r.Register("tap", Generator{"press and lift without moving far", func(s Spec) *Script {
		return Tap(lead, s.Start, withDefault(s.Distance, 5))
	}})
	r.Register("drag", Generator{"constant speed drag and release", func(s Spec) *Script {
		return Drag(lead, s.Start, withDefault(s.Distance, -300), withDefault(s.Duration, 0.5))
	}})
	r.Register("fling", Generator{"short accelerating swipe", func(s Spec) *Script {
		return Fling(lead, s.Start, withDefault(s.Distance, -400), withDefault(s.Duration, 0.15))
	}})
	r.Register("pull", Generator{"drag past the edge, hold, release", func(s Spec) *Script {
		return Pull(lead, s.Start, withDefault(s.Distance, -150), withDefault(s.Duration, 0.3), 0.3)
	}})
	r.Register("hold", Generator{"press and hold still", func(s Spec) *Script {
		return Hold(lead, s.Start, withDefault(s.Duration, 0.5))
	}})
	r.Register("interrupted", Generator{"drag that ends in cancel", func(s Spec) *Script {
		return Interrupted(lead, s.Start, withDefault(s.Distance, -200), withDefault(s.Duration, 0.2))
	}})
	r.Register("wheel", Generator{"three wheel notches", func(s Spec) *Script {
		return Wheel(lead, withDefault(s.Distance, 600), 3, withDefault(s.Duration, 0.1))
	}})

	return r
}

func (r *Registry) Register(name string, g Generator) {
	r.generators[name] = g
}

func (r *Registry) Get(name string, s Spec) (*Script, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown gesture: %s", name)
	}
	return g.Build(s), nil
}

func (r *Registry) Describe(name string) string {
	return r.generators[name].Description
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for k := range r.generators {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func withDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
