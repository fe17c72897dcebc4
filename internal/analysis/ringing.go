package analysis

import "math"

// ZeroCrossings counts sign changes, ignoring exact zeros.
func ZeroCrossings(data []float64) int {
	count := 0
	prev := 0.0
	for _, v := range data {
		if v == 0 {
			continue
		}
		if prev != 0 && (v > 0) != (prev > 0) {
			count++
		}
		prev = v
	}
	return count
}

// OvershootRatio is the furthest excursion of data past target, in the
// direction it was travelling, relative to its starting distance. Zero
// means the trace never passed the target.
func OvershootRatio(data []float64, target float64) float64 {
	if len(data) == 0 {
		return 0
	}
	start := data[0] - target
	if start == 0 {
		return 0
	}

	worst := 0.0
	for _, v := range data {
		past := v - target
		if (past > 0) != (start > 0) {
			worst = math.Max(worst, math.Abs(past))
		}
	}
	return worst / math.Abs(start)
}
