package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/kinetic/internal/scroll"
)

// PowerSpectrum returns the magnitudes of the first half of the FFT of
// data after a Hann window. Any length works.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	buf := make([]complex128, n)
	for i, v := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = complex(v*window, 0)
	}
	spectrum := fft.FFT(buf)

	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest bin,
// skipping DC, for samples taken every dt seconds.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) / (float64(len(data)) * dt)
}

func Values(frames []scroll.State) []float64 {
	return column(frames, func(s scroll.State) float64 { return s.Value })
}

func Velocities(frames []scroll.State) []float64 {
	return column(frames, func(s scroll.State) float64 { return s.Velocity })
}

func Overscroll(frames []scroll.State) []float64 {
	return column(frames, func(s scroll.State) float64 { return s.Overscroll })
}

func column(frames []scroll.State, get func(scroll.State) float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = get(f)
	}
	return out
}
