package viz

const (
	fractionMin = -1.01
	fractionMax = 0.01
	jumpLimit   = 0.5
)

// Viewport turns an effect's scroll into the position of a window over
// content: 0 at the first row, 1 at the last. The raw ratio is clamped
// a hundredth past either end so the rubber band still shows, and a
// frame that moves the window by more than half the content is held at
// the previous position. Such jumps come from the span changing while a
// gesture is in flight, not from motion.
type Viewport struct {
	last float64
	seen bool
}

// Fraction maps scroll over a scrollable span. A zero span has nowhere
// to go, so the window is pinned to the top whatever the effect does.
func (v *Viewport) Fraction(scroll, span float64) float64 {
	if span <= 0 {
		v.last, v.seen = 0, true
		return 0
	}

	sy := -scroll / span
	if sy < fractionMin {
		sy = fractionMin
	}
	if sy > fractionMax {
		sy = fractionMax
	}

	if v.seen && (sy-v.last > jumpLimit || sy-v.last < -jumpLimit) {
		sy = v.last
	}
	v.last, v.seen = sy, true
	return -sy
}

// Reset forgets the previous frame so the next one may land anywhere.
func (v *Viewport) Reset() {
	v.last, v.seen = 0, false
}
