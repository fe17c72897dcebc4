package metrics

import (
	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/scroll"
)

// Standard returns a fresh set of the metrics reported by run and batch.
func Standard() []frame.Metric {
	return []frame.Metric{
		NewPeakOverscroll(),
		NewEdgeTime(scroll.DefaultMinOverscroll),
		NewSettleTime(),
		NewTravel(),
		NewPeakVelocity(),
		NewRestValue(),
		NewFlings(),
	}
}
