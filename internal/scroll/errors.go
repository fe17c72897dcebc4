package scroll

import (
	"errors"
	"fmt"
)

var (
	// ErrNoGesture indicates Extend or End was called before any Begin.
	ErrNoGesture = errors.New("scroll: no gesture in progress (missing begin)")

	// ErrInvalidParams indicates a parameter set that cannot drive the physics.
	ErrInvalidParams = errors.New("scroll: invalid parameters")

	// ErrUnknownParam indicates SetParam was given a name it does not know.
	ErrUnknownParam = errors.New("scroll: unknown parameter")
)

// ParamError wraps a parameter failure with the offending field.
type ParamError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%g", e.Wrapped, e.Name, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
