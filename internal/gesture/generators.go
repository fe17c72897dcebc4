package gesture

import "math"

// SampleRate is the touch sampling rate used by the generators, in Hz.
const SampleRate = 60.0

// Tap presses at pos and lifts after 0.1s having moved by wobble.
func Tap(at, pos, wobble float64) *Script {
	return &Script{
		Name: "tap",
		Events: []Event{
			{T: at, Kind: KindBegin, Pos: pos},
			{T: at + 0.1, Kind: KindEnd, Pos: pos + wobble},
		},
	}
}

// Drag moves from start by distance at constant speed over duration.
func Drag(at, start, distance, duration float64) *Script {
	s := &Script{Name: "drag"}
	s.Events = stroke(at, start, distance, duration, func(u float64) float64 { return u })
	last := s.Events[len(s.Events)-1]
	s.Events[len(s.Events)-1] = Event{T: last.T, Kind: KindEnd, Pos: last.Pos}
	return s
}

// Fling accelerates through the stroke, so the release is faster than the
// average speed.
func Fling(at, start, distance, duration float64) *Script {
	s := &Script{Name: "fling"}
	s.Events = stroke(at, start, distance, duration, func(u float64) float64 { return u * u })
	last := s.Events[len(s.Events)-1]
	s.Events[len(s.Events)-1] = Event{T: last.T, Kind: KindEnd, Pos: last.Pos}
	return s
}

// Pull drags by distance, holds still for hold seconds and releases. A
// hold longer than the release window lets go with zero velocity.
func Pull(at, start, distance, duration, hold float64) *Script {
	s := &Script{Name: "pull"}
	s.Events = stroke(at, start, distance, duration, func(u float64) float64 { return u })
	end := start + distance
	s.Events = append(s.Events, still(at+duration, end, hold)...)
	s.Events = append(s.Events, Event{T: at + duration + hold, Kind: KindEnd, Pos: end})
	return s
}

// Hold presses at pos without moving and lifts after duration.
func Hold(at, pos, duration float64) *Script {
	s := &Script{Name: "hold"}
	s.Events = append(s.Events, Event{T: at, Kind: KindBegin, Pos: pos})
	s.Events = append(s.Events, still(at, pos, duration)...)
	s.Events = append(s.Events, Event{T: at + duration, Kind: KindEnd, Pos: pos})
	return s
}

// Interrupted drags and then loses the touch, ending with cancel.
func Interrupted(at, start, distance, duration float64) *Script {
	s := &Script{Name: "interrupted"}
	s.Events = stroke(at, start, distance, duration, func(u float64) float64 { return u })
	s.Events = append(s.Events, Event{T: at + duration, Kind: KindCancel})
	return s
}

// Wheel sends count flings of the given velocity spaced by interval.
func Wheel(at, velocity float64, count int, interval float64) *Script {
	s := &Script{Name: "wheel"}
	for i := 0; i < count; i++ {
		s.Events = append(s.Events, Event{T: at + float64(i)*interval, Kind: KindFling, Velocity: velocity})
	}
	return s
}

// stroke samples begin plus extends along ease(u), u in [0, 1].
func stroke(at, start, distance, duration float64, ease func(float64) float64) []Event {
	n := int(math.Max(1, math.Round(duration*SampleRate)))
	events := make([]Event, 0, n+1)
	events = append(events, Event{T: at, Kind: KindBegin, Pos: start})
	for i := 1; i <= n; i++ {
		u := float64(i) / float64(n)
		events = append(events, Event{
			T:    at + u*duration,
			Kind: KindExtend,
			Pos:  start + distance*ease(u),
		})
	}
	return events
}

// still samples pos without motion over (at, at+duration).
func still(at, pos, duration float64) []Event {
	n := int(math.Round(duration * SampleRate))
	events := make([]Event, 0, n)
	for i := 1; i < n; i++ {
		events = append(events, Event{T: at + float64(i)/SampleRate, Kind: KindExtend, Pos: pos})
	}
	return events
}
