package gesture

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindBegin  Kind = "begin"
	KindExtend Kind = "extend"
	KindEnd    Kind = "end"
	KindCancel Kind = "cancel"
	KindFling  Kind = "fling"
)

// Event is one input sample. Pos is used by begin, extend and end;
// Velocity only by fling.
type Event struct {
	T        float64 `yaml:"t" json:"t"`
	Kind     Kind    `yaml:"kind" json:"kind"`
	Pos      float64 `yaml:"pos,omitempty" json:"pos,omitempty"`
	Velocity float64 `yaml:"velocity,omitempty" json:"velocity,omitempty"`
}

func (e Event) String() string {
	if e.Kind == KindFling {
		return fmt.Sprintf("%.3f %s v=%g", e.T, e.Kind, e.Velocity)
	}
	return fmt.Sprintf("%.3f %s pos=%g", e.T, e.Kind, e.Pos)
}

var (
	ErrEmptyScript  = errors.New("gesture: script has no events")
	ErrUnsorted     = errors.New("gesture: events out of order")
	ErrNegativeTime = errors.New("gesture: negative event time")
	ErrUnknownKind  = errors.New("gesture: unknown event kind")
	ErrNoBegin      = errors.New("gesture: manual event before begin")
)

// EventError points at the offending event of a script.
type EventError struct {
	Index   int
	Event   Event
	Wrapped error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("event %d (%s): %v", e.Index, e.Event, e.Wrapped)
}

func (e *EventError) Unwrap() error {
	return e.Wrapped
}
