package config

import (
	"sort"

	"github.com/san-kum/kinetic/internal/scroll"
)

func preset(name, desc string, mode scroll.Mode, tune func(p *scroll.Params)) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Description = desc
	cfg.Mode = mode
	if tune != nil {
		tune(&cfg.Params)
	}
	return cfg
}

var Presets = map[string]*Config{
	"default":  preset("default", "spring-damped list with default tuning", scroll.ModeDamped, nil),
	"clamped":  preset("clamped", "hard stop at the edges", scroll.ModeBounded, nil),
	"inertial": preset("inertial", "unbounded flick scrolling", scroll.ModeInertial, nil),
	"stiff-edge": preset("stiff-edge", "edge kills the motion and leaves overscroll for a parent view", scroll.ModeDamped, func(p *scroll.Params) {
		p.SpringConstant = 0
		p.EdgeDamping = 1
	}),
	"frictionless": preset("frictionless", "no friction, a fling never stops", scroll.ModeInertial, func(p *scroll.Params) {
		p.Friction = 0
	}),
	"rubber": preset("rubber", "soft spring with long overscroll", scroll.ModeDamped, func(p *scroll.Params) {
		p.SpringConstant = 0.5
		p.EdgeDamping = 0.1
	}),
	"precise": preset("precise", "spring-damped without rounding the rest value", scroll.ModeDamped, func(p *scroll.Params) {
		p.RoundValue = false
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
