package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/gesture"
	"github.com/san-kum/kinetic/internal/scroll"
)

const (
	DefaultMin      = 0.0
	DefaultMax      = 1000.0
	DefaultDt       = 1.0 / 60
	DefaultDuration = 5.0
	DefaultGesture  = "fling"
)

type Config struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Mode        scroll.Mode     `yaml:"mode"`
	Bounds      BoundsConfig    `yaml:"bounds"`
	Params      scroll.Params   `yaml:"params"`
	Frame       FrameSettings   `yaml:"frame"`
	Gesture     GestureSettings `yaml:"gesture"`
}

type BoundsConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type FrameSettings struct {
	Dt           float64 `yaml:"dt"`
	Duration     float64 `yaml:"duration"`
	MaxDt        float64 `yaml:"max_dt"`
	Stepper      string  `yaml:"stepper"`
	StopWhenIdle bool    `yaml:"stop_when_idle"`
}

// GestureSettings picks the input: a script file when Script is set,
// otherwise the named generator.
type GestureSettings struct {
	Preset   string  `yaml:"preset"`
	Script   string  `yaml:"script,omitempty"`
	Start    float64 `yaml:"start"`
	Distance float64 `yaml:"distance"`
	Duration float64 `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:   "default",
		Mode:   scroll.ModeDamped,
		Bounds: BoundsConfig{Min: DefaultMin, Max: DefaultMax},
		Params: scroll.DefaultParams(),
		Frame: FrameSettings{
			Dt:           DefaultDt,
			Duration:     DefaultDuration,
			MaxDt:        3 * scroll.DefaultStdDt,
			Stepper:      "single",
			StopWhenIdle: true,
		},
		Gesture: GestureSettings{Preset: DefaultGesture},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Frame.Dt <= 0 || c.Frame.Duration <= 0 {
		return fmt.Errorf("%w: dt and duration must be positive", frame.ErrInvalidConfig)
	}
	if _, err := frame.NewStepper(c.Frame.Stepper, c.Frame.MaxDt); err != nil {
		return err
	}
	return nil
}

// Build creates the effect described by the config.
func (c *Config) Build() (*scroll.Effect, error) {
	e, err := scroll.New(c.Mode, c.Params)
	if err != nil {
		return nil, err
	}
	e.Name = c.Name
	e.SetBounds(c.Bounds.Min, c.Bounds.Max)
	return e, nil
}

func (c *Config) FrameConfig() frame.Config {
	return frame.Config{
		Dt:           c.Frame.Dt,
		Duration:     c.Frame.Duration,
		MaxDt:        c.Frame.MaxDt,
		StopWhenIdle: c.Frame.StopWhenIdle,
	}
}

func (c *Config) Stepper() (frame.Stepper, error) {
	return frame.NewStepper(c.Frame.Stepper, c.Frame.MaxDt)
}

// Script resolves the configured gesture input.
func (c *Config) Script(reg *gesture.Registry) (*gesture.Script, error) {
	if c.Gesture.Script != "" {
		return gesture.Load(c.Gesture.Script)
	}
	name := c.Gesture.Preset
	if name == "" {
		name = DefaultGesture
	}
	return reg.Get(name, gesture.Spec{
		Start:    c.Gesture.Start,
		Distance: c.Gesture.Distance,
		Duration: c.Gesture.Duration,
	})
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
