package gesture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinetic/internal/frame"
)

// Script is a timed sequence of input events played by the frame driver.
type Script struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Events      []Event `yaml:"events"`
}

// Validate checks that events are time ordered and that every extend or
// end belongs to a gesture opened by begin.
func (s *Script) Validate() error {
	if len(s.Events) == 0 {
		return ErrEmptyScript
	}

	open := false
	prev := 0.0
	for i, ev := range s.Events {
		if ev.T < 0 {
			return &EventError{Index: i, Event: ev, Wrapped: ErrNegativeTime}
		}
		if ev.T < prev {
			return &EventError{Index: i, Event: ev, Wrapped: ErrUnsorted}
		}
		prev = ev.T

		switch ev.Kind {
		case KindBegin:
			open = true
		case KindExtend:
			if !open {
				return &EventError{Index: i, Event: ev, Wrapped: ErrNoBegin}
			}
		case KindEnd, KindCancel:
			if !open {
				return &EventError{Index: i, Event: ev, Wrapped: ErrNoBegin}
			}
			open = false
		case KindFling:
			open = false
		default:
			return &EventError{Index: i, Event: ev, Wrapped: ErrUnknownKind}
		}
	}
	return nil
}

// Feed plays the events with from <= T < to against e.
func (s *Script) Feed(e frame.Target, from, to float64) error {
	start := sort.Search(len(s.Events), func(i int) bool { return s.Events[i].T >= from })
	for i := start; i < len(s.Events) && s.Events[i].T < to; i++ {
		if err := apply(e, s.Events[i]); err != nil {
			return &EventError{Index: i, Event: s.Events[i], Wrapped: err}
		}
	}
	return nil
}

// Done reports whether every event is before t.
func (s *Script) Done(t float64) bool {
	return len(s.Events) == 0 || s.Events[len(s.Events)-1].T < t
}

// Duration is the time of the last event.
func (s *Script) Duration() float64 {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].T
}

// Then returns a script that plays s, waits gap seconds, then plays next.
func (s *Script) Then(next *Script, gap float64) *Script {
	out := &Script{
		Name:   s.Name + "+" + next.Name,
		Events: make([]Event, 0, len(s.Events)+len(next.Events)),
	}
	out.Events = append(out.Events, s.Events...)
	offset := s.Duration() + gap
	for _, ev := range next.Events {
		ev.T += offset
		out.Events = append(out.Events, ev)
	}
	return out
}

func apply(e frame.Target, ev Event) error {
	switch ev.Kind {
	case KindBegin:
		e.BeginAt(ev.Pos, ev.T)
	case KindExtend:
		return e.ExtendAt(ev.Pos, ev.T)
	case KindEnd:
		return e.EndAt(ev.Pos, ev.T)
	case KindCancel:
		e.Cancel()
	case KindFling:
		e.Fling(ev.Velocity)
	default:
		return ErrUnknownKind
	}
	return nil
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

func (s *Script) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadGlob loads every script matching a doublestar pattern such as
// "gestures/**/*.yaml", sorted by path.
func LoadGlob(pattern string) ([]*Script, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(paths)

	scripts := make([]*Script, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}
