package scroll

import (
	"math"
	"time"
)

// Phase is the coarse state of an Effect.
type Phase int

const (
	Idle Phase = iota
	Manual
	FreeRunning
)

func (p Phase) String() string {
	switch p {
	case Manual:
		return "manual"
	case FreeRunning:
		return "free"
	default:
		return "idle"
	}
}

// Clock reports the current time in seconds. It stamps samples recorded
// without an explicit time.
type Clock func() float64

// WallClock is the default Clock.
func WallClock() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// State is a snapshot of the observable fields of an Effect.
type State struct {
	Value        float64 `json:"value"`
	Velocity     float64 `json:"velocity"`
	Scroll       float64 `json:"scroll"`
	Overscroll   float64 `json:"overscroll"`
	Displacement float64 `json:"displacement"`
	Manual       bool    `json:"manual"`
	Phase        Phase   `json:"phase"`
}

// Effect is a single-axis kinetic scroll engine.
type Effect struct {
	// Name tags the effect in logs.
	Name string

	mode   Mode
	resp   response
	params Params
	clock  Clock

	value        float64
	velocity     float64
	manual       bool
	history      *History
	min, max     float64
	scroll       float64
	overscroll   float64
	displacement float64

	pending       bool
	onRequest     []func()
	valueObs      []func(float64)
	overscrollObs []func(float64)
}

// New creates an effect in the given mode. Bounds start at [0, 0].
func New(mode Mode, p Params) (*Effect, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	resp, err := mode.response()
	if err != nil {
		return nil, err
	}
	return &Effect{
		mode:    mode,
		resp:    resp,
		params:  p,
		clock:   WallClock,
		history: NewHistory(p.MaxHistory),
	}, nil
}

func mustNew(mode Mode) *Effect {
	e, err := New(mode, DefaultParams())
	if err != nil {
		panic(err)
	}
	return e
}

// NewInertial creates an unbounded effect with default parameters.
func NewInertial() *Effect {
	return mustNew(ModeInertial)
}

// NewBounded creates a clamping effect over [min, max].
func NewBounded(min, max float64) *Effect {
	e := mustNew(ModeBounded)
	e.SetBounds(min, max)
	return e
}

// NewDamped creates a spring-damped effect over [min, max].
func NewDamped(min, max float64) *Effect {
	e := mustNew(ModeDamped)
	e.SetBounds(min, max)
	return e
}

func (e *Effect) Mode() Mode            { return e.mode }
func (e *Effect) Params() Params        { return e.params }
func (e *Effect) Value() float64        { return e.value }
func (e *Effect) Velocity() float64     { return e.velocity }
func (e *Effect) Scroll() float64       { return e.scroll }
func (e *Effect) Overscroll() float64   { return e.overscroll }
func (e *Effect) Displacement() float64 { return e.displacement }
func (e *Effect) IsManual() bool        { return e.manual }
func (e *Effect) History() []Sample     { return e.history.Samples() }

// RawBounds returns the bounds as given, possibly inverted.
func (e *Effect) RawBounds() (min, max float64) { return e.min, e.max }

// Bounds returns the normalized bounds, lo <= hi.
func (e *Effect) Bounds() (lo, hi float64) {
	if e.min > e.max {
		return e.max, e.min
	}
	return e.min, e.max
}

// Phase derives the state machine position from the current fields.
func (e *Effect) Phase() Phase {
	switch {
	case e.manual:
		return Manual
	case e.pending || e.velocity != 0:
		return FreeRunning
	default:
		return Idle
	}
}

func (e *Effect) State() State {
	return State{
		Value:        e.value,
		Velocity:     e.velocity,
		Scroll:       e.scroll,
		Overscroll:   e.overscroll,
		Displacement: e.displacement,
		Manual:       e.manual,
		Phase:        e.Phase(),
	}
}

// SetClock replaces the clock used for unstamped samples.
func (e *Effect) SetClock(c Clock) {
	if c == nil {
		c = WallClock
	}
	e.clock = c
}

// SetBounds sets the content bounds. min > max is accepted and swapped
// wherever the bounds are used.
func (e *Effect) SetBounds(min, max float64) {
	e.min, e.max = min, max
	e.resp.project(e)
}

// SetValue moves the value directly, as a programmatic scroll.
func (e *Effect) SetValue(v float64) {
	e.setValue(v)
}

// SetParam updates one parameter by name.
func (e *Effect) SetParam(name string, value float64) error {
	p, err := e.params.With(name, value)
	if err != nil {
		return err
	}
	e.params = p
	e.history.Resize(p.MaxHistory)
	return nil
}

// GetParams returns the current parameters keyed by name.
func (e *Effect) GetParams() map[string]float64 {
	return e.params.Map()
}

// OnValue registers fn to run whenever the value changes.
func (e *Effect) OnValue(fn func(float64)) {
	e.valueObs = append(e.valueObs, fn)
}

// OnOverscroll registers fn to run whenever the overscroll changes.
func (e *Effect) OnOverscroll(fn func(float64)) {
	e.overscrollObs = append(e.overscrollObs, fn)
}

// OnTickRequest registers fn to run whenever a tick is requested. Repeated
// requests before TakeTick still call fn; the pending flag itself does not
// stack.
func (e *Effect) OnTickRequest(fn func()) {
	e.onRequest = append(e.onRequest, fn)
}

// TickPending reports whether a tick has been requested and not consumed.
func (e *Effect) TickPending() bool { return e.pending }

// TakeTick consumes the pending request. The frame driver calls it right
// before Tick.
func (e *Effect) TakeTick() bool {
	p := e.pending
	e.pending = false
	return p
}

func (e *Effect) requestTick() {
	e.pending = true
	for _, fn := range e.onRequest {
		fn()
	}
}

// Begin starts a manual gesture at pos, stamped with the effect clock.
func (e *Effect) Begin(pos float64) { e.BeginAt(pos, e.clock()) }

// BeginAt starts a manual gesture at pos and time t.
func (e *Effect) BeginAt(pos, t float64) {
	e.pending = false
	e.manual = true
	e.displacement = 0
	e.velocity = 0
	e.history.Reset(Sample{T: t, Pos: pos})
}

// Extend continues the gesture to pos.
func (e *Effect) Extend(pos float64) error { return e.ExtendAt(pos, e.clock()) }

// ExtendAt continues the gesture to pos at time t.
func (e *Effect) ExtendAt(pos, t float64) error {
	last, ok := e.history.Last()
	if !ok {
		return ErrNoGesture
	}
	distance := pos - last.Pos
	e.displacement += math.Abs(distance)
	e.applyDistance(distance)
	e.history.Push(Sample{T: t, Pos: pos})
	return nil
}

// End releases the gesture at pos.
func (e *Effect) End(pos float64) error { return e.EndAt(pos, e.clock()) }

// EndAt releases the gesture at pos and time t and estimates the release
// velocity from the history.
func (e *Effect) EndAt(pos, t float64) error {
	last, ok := e.history.Last()
	if !ok {
		return ErrNoGesture
	}
	distance := pos - last.Pos
	e.displacement += math.Abs(distance)
	e.manual = false

	if e.mode.bounded() && e.displacement <= e.params.DragThreshold {
		// tap, not a fling
		e.velocity = 0
		return nil
	}

	e.applyDistance(distance)

	newest := Sample{T: t, Pos: pos}
	anchor := e.history.At(0)
	for i := 0; i < e.history.Len(); i++ {
		s := e.history.At(i)
		if newest.T-s.T < releaseWindow {
			break
		}
		anchor = s
	}
	duration := math.Abs(newest.T - anchor.T)
	e.velocity = (newest.Pos - anchor.Pos) / math.Max(duration, minDuration)
	if e.mode == ModeBounded && e.overscroll*e.velocity > 0 {
		// pinned at the edge the pointer pulled past
		e.velocity = 0
		return nil
	}
	e.requestTick()
	return nil
}

// Cancel abandons the gesture without estimating a velocity. The effect
// keeps whatever velocity it had.
func (e *Effect) Cancel() {
	e.manual = false
	e.requestTick()
}

// Fling releases the effect with an explicit velocity, as a wheel or
// keyboard scroll would.
func (e *Effect) Fling(velocity float64) {
	e.manual = false
	e.velocity = velocity
	e.requestTick()
}

// Reset puts the value at pos, stops the motion, and collapses the history
// to a single sample at pos so the next velocity estimate does not span
// the jump.
func (e *Effect) Reset(pos float64) {
	e.setValue(pos)
	e.velocity = 0
	e.history.Reset(Sample{T: e.clock(), Pos: pos})
}

// Tick advances the simulation by dt seconds.
func (e *Effect) Tick(dt float64) {
	e.resp.tick(e, dt)
}

func (e *Effect) applyDistance(distance float64) {
	distance = e.resp.distance(e, distance)
	if math.Abs(distance) < e.params.MinDistance {
		e.velocity = 0
	}
	e.setValue(e.value + distance)
}

func (e *Effect) setValue(v float64) {
	if v == e.value {
		return
	}
	prev := e.value
	e.value = v
	e.resp.project(e)
	if e.value != prev {
		for _, fn := range e.valueObs {
			fn(e.value)
		}
	}
}

func (e *Effect) setOverscroll(o float64) {
	if o == e.overscroll {
		return
	}
	e.overscroll = o
	e.resp.overscrollChanged(e)
	for _, fn := range e.overscrollObs {
		fn(o)
	}
}

// clampTo pins the value at a bound after it left the range, keeping the
// overscroll that was just reported. History holds pointer positions, not
// values, so it collapses to the last pointer sample rather than the bound.
func (e *Effect) clampTo(pos float64) {
	e.value = pos
	e.scroll = pos
	e.velocity = 0
	if last, ok := e.history.Last(); ok {
		e.history.Reset(Sample{T: e.clock(), Pos: last.Pos})
	}
}

// decay is the friction step shared by the inertial and bounded modes.
func (e *Effect) decay(dt float64) {
	if math.Abs(e.velocity) <= e.params.MinVelocity {
		e.velocity = 0
		return
	}
	e.velocity -= e.velocity * e.params.Friction * dt / e.params.StdDt
	e.applyDistance(e.velocity * dt)
	e.requestTick()
}
