package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/kinetic/internal/scroll"
)

// PhasePortrait2D holds value against velocity for every frame of a run.
type PhasePortrait2D struct {
	Points []struct{ X, Y float64 }
}

// NewPhasePortrait builds the portrait of a recorded run.
func NewPhasePortrait(frames []scroll.State) *PhasePortrait2D {
	if len(frames) == 0 {
		return nil
	}
	portrait := &PhasePortrait2D{
		Points: make([]struct{ X, Y float64 }, 0, len(frames)),
	}
	for _, f := range frames {
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{
			X: f.Value,
			Y: f.Velocity,
		})
	}
	return portrait
}

// PhasePortraitToASCII plots the portrait with value across and velocity
// up. The content bounds lo and hi are drawn as dotted columns and zero
// velocity as a rule.
func PhasePortraitToASCII(portrait *PhasePortrait2D, lo, hi float64, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := math.Min(lo, hi), math.Max(lo, hi)
	minY, maxY := 0.0, 0.0
	for _, p := range portrait.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)

	col := func(x float64) int { return int((x - minX) / (maxX - minX) * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/(maxY-minY)*float64(height-1)) }

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	r0 := row(0)
	for c := 0; c < width; c++ {
		canvas[r0][c] = '─'
	}
	for _, b := range []float64{lo, hi} {
		c := col(b)
		for r := 0; r < height; r++ {
			canvas[r][c] = '┊'
		}
	}

	for _, p := range portrait.Points {
		r, c := row(p.Y), col(p.X)
		if r >= 0 && r < height && c >= 0 && c < width {
			canvas[r][c] = '•'
		}
	}

	var sb strings.Builder
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// pad widens [lo, hi] by a tenth on each side, or to unit width when empty.
func pad(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - span*0.1, hi + span*0.1
}
