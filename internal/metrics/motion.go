package metrics

import (
	"math"

	"github.com/san-kum/kinetic/internal/scroll"
)

// Travel is the total distance the value moved, both directions counted.
type Travel struct {
	name    string
	sum     float64
	last    float64
	samples int
}

func NewTravel() *Travel {
	return &Travel{name: "travel"}
}

func (m *Travel) Name() string { return m.name }

func (m *Travel) Observe(s scroll.State, t float64) {
	if m.samples > 0 {
		m.sum += math.Abs(s.Value - m.last)
	}
	m.last = s.Value
	m.samples++
}

func (m *Travel) Value() float64 { return m.sum }

func (m *Travel) Reset() {
	m.sum = 0
	m.last = 0
	m.samples = 0
}

type PeakVelocity struct {
	name string
	peak float64
}

func NewPeakVelocity() *PeakVelocity {
	return &PeakVelocity{name: "peak_velocity"}
}

func (m *PeakVelocity) Name() string { return m.name }

func (m *PeakVelocity) Observe(s scroll.State, t float64) {
	m.peak = math.Max(m.peak, math.Abs(s.Velocity))
}

func (m *PeakVelocity) Value() float64 { return m.peak }
func (m *PeakVelocity) Reset()         { m.peak = 0 }

// RestValue is the value at the last observed frame.
type RestValue struct {
	name  string
	value float64
}

func NewRestValue() *RestValue {
	return &RestValue{name: "rest_value"}
}

func (m *RestValue) Name() string                      { return m.name }
func (m *RestValue) Observe(s scroll.State, t float64) { m.value = s.Value }
func (m *RestValue) Value() float64                    { return m.value }
func (m *RestValue) Reset()                            { m.value = 0 }

// Flings counts entries into free running with a nonzero velocity.
type Flings struct {
	name  string
	count int
	prev  scroll.Phase
}

func NewFlings() *Flings {
	return &Flings{name: "flings"}
}

func (m *Flings) Name() string { return m.name }

func (m *Flings) Observe(s scroll.State, t float64) {
	if s.Phase == scroll.FreeRunning && m.prev != scroll.FreeRunning && s.Velocity != 0 {
		m.count++
	}
	m.prev = s.Phase
}

func (m *Flings) Value() float64 { return float64(m.count) }

func (m *Flings) Reset() {
	m.count = 0
	m.prev = scroll.Idle
}
