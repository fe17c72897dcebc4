package metrics

import (
	"math"

	"github.com/san-kum/kinetic/internal/scroll"
)

// PeakOverscroll is the largest overscroll magnitude seen.
type PeakOverscroll struct {
	name string
	peak float64
}

func NewPeakOverscroll() *PeakOverscroll {
	return &PeakOverscroll{name: "peak_overscroll"}
}

func (p *PeakOverscroll) Name() string { return p.name }

func (p *PeakOverscroll) Observe(s scroll.State, t float64) {
	p.peak = math.Max(p.peak, math.Abs(s.Overscroll))
}

func (p *PeakOverscroll) Value() float64 { return p.peak }

func (p *PeakOverscroll) Reset() { p.peak = 0 }

// EdgeTime is the fraction of frames spent past the bounds by more than
// threshold.
type EdgeTime struct {
	name      string
	threshold float64
	over      int
	samples   int
}

func NewEdgeTime(threshold float64) *EdgeTime {
	return &EdgeTime{
		name:      "edge_time",
		threshold: threshold,
	}
}

func (e *EdgeTime) Name() string {
	return e.name
}

func (e *EdgeTime) Observe(s scroll.State, t float64) {
	e.samples++
	if math.Abs(s.Overscroll) > e.threshold {
		e.over++
	}
}

func (e *EdgeTime) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.over) / float64(e.samples)
}

func (e *EdgeTime) Reset() {
	e.over = 0
	e.samples = 0
}
