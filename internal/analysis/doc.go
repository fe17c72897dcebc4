// Package analysis characterizes recorded scroll runs.
//
//   - [PowerSpectrum]: magnitude spectrum of a trace via FFT
//   - [DominantFrequency]: strongest non-DC frequency, for spring ringing
//   - [ZeroCrossings]: sign changes of a trace, such as overscroll
//   - [OvershootRatio]: how far a trace passed its target
//   - [NewPhasePortrait]: value against velocity
//   - [Sweep]: parameter sweep over identical gestures
//
// # Ringing
//
// A spring that is too soft for its damping crosses the edge repeatedly
// before settling. Counting zero crossings of the overscroll trace finds
// it:
//
//	os := analysis.Overscroll(result.Frames)
//	if analysis.ZeroCrossings(os) > 0 {
//	    // the content bounced back past the edge
//	}
package analysis
