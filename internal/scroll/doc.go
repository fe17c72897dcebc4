// Package scroll implements single-axis kinetic scrolling physics.
//
// An [Effect] turns a stream of pointer samples into a continuously updated
// position, velocity and boundary overscroll. The overscroll response is
// chosen at construction:
//
//   - [ModeInertial]: free value, friction decay after release
//   - [ModeBounded]: value clamped to [min, max], overscroll reported and reset
//   - [ModeDamped]: value may travel past the bounds and is pulled back by a
//     spring-damper
//
// # Driving an Effect
//
// Input handling calls [Effect.Begin], [Effect.Extend] and [Effect.End]
// (or [Effect.Cancel]). The effect never schedules itself; it raises an
// idempotent tick request that a frame clock consumes:
//
//	e := scroll.NewDamped(0, 1200)
//	e.Begin(300)
//	e.Extend(280)
//	e.End(250)
//	for e.TakeTick() {
//	    e.Tick(1.0 / 60)
//	}
//
// A 2D view composes two independent effects.
//
// # Thread Safety
//
// Effect instances are NOT thread-safe. Input calls and Tick must come from
// a single owner (typically the UI frame loop). Distinct effects share no
// state and may run in parallel.
//
// # Preconditions
//
// Inputs must be finite. NaN and Inf are not guarded and propagate.
package scroll
