package metrics

import "github.com/san-kum/kinetic/internal/scroll"

// SettleTime is the time the effect last came to rest, or -1 while it is
// still moving.
type SettleTime struct {
	name string
	at   float64
	idle bool
}

func NewSettleTime() *SettleTime {
	return &SettleTime{name: "settle_time", at: -1}
}

func (m *SettleTime) Name() string { return m.name }

func (m *SettleTime) Observe(s scroll.State, t float64) {
	if s.Phase != scroll.Idle {
		m.idle = false
		return
	}
	if !m.idle {
		m.at = t
		m.idle = true
	}
}

func (m *SettleTime) Value() float64 {
	if !m.idle {
		return -1
	}
	return m.at
}

func (m *SettleTime) Reset() {
	m.at = -1
	m.idle = false
}
