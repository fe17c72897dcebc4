// Package viz is the terminal scroll demo.
//
// A [Model] renders a list of rows whose offset is the scroll of a
// [scroll.Effect]. Keyboard drags feed the effect; since terminals never
// report a key release, a drag ends once its keys stop for a moment and
// the effect flings from the estimated velocity. Beside the list sit a
// scrollbar whose thumb follows the [Viewport] on a harmonica spring, a
// velocity chart, and a Braille [Canvas] trace of the value.
//
// # Key Bindings
//
//	Up/Down   - Drag the list
//	PgUp/PgDn - Fling
//	Space     - Pause/Resume
//	R         - Reset
//	[ ]       - Step a replay
//	T         - Cycle color themes
//	?         - Show help overlay
//
// The same model replays recorded frames from [NewReplay]; [Picker] is
// the preset menu shown when no preset is named.
package viz
