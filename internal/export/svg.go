package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/kinetic/internal/scroll"
)

// Trace styles one recorded series.
type Trace struct {
	Name   string
	Color  string
	Values []float64
}

// TraceToSVG draws value and overscroll against time, with the content
// bounds as dashed guides.
func TraceToSVG(times []float64, frames []scroll.State, lo, hi float64, width, height int) string {
	values := make([]float64, len(frames))
	overscroll := make([]float64, len(frames))
	for i, f := range frames {
		values[i] = f.Value
		overscroll[i] = f.Overscroll
	}
	return SeriesToSVG(times, []Trace{
		{Name: "value", Color: "#00ccff", Values: values},
		{Name: "overscroll", Color: "#ff4488", Values: overscroll},
	}, []float64{lo, hi}, width, height)
}

// SeriesToSVG plots any number of traces that share the time axis. Guides
// are horizontal reference lines.
func SeriesToSVG(times []float64, traces []Trace, guides []float64, width, height int) string {
	if len(times) < 2 || len(traces) == 0 {
		return ""
	}

	minX, maxX := times[0], times[len(times)-1]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, tr := range traces {
		for _, v := range tr.Values {
			minY, maxY = math.Min(minY, v), math.Max(maxY, v)
		}
	}
	for _, g := range guides {
		minY, maxY = math.Min(minY, g), math.Max(maxY, g)
	}

	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	px := func(t float64) float64 { return (t - minX) / rangeX * float64(width) }
	py := func(v float64) float64 { return float64(height) - (v-minY)/rangeY*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, g := range guides {
		y := py(g)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, y, width, y))
	}

	for _, tr := range traces {
		n := len(tr.Values)
		if n > len(times) {
			n = len(times)
		}
		if n < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, tr.Name, tr.Color))
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(" L")
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(times[i]), py(tr.Values[i])))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
