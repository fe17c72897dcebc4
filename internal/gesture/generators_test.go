package gesture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/scroll"
)

func play(t *testing.T, e *scroll.Effect, s *Script, duration float64) *frame.Result {
	t.Helper()
	require.NoError(t, s.Validate())
	cfg := frame.Config{Dt: 1.0 / 60, Duration: duration, StopWhenIdle: true}
	result, err := frame.New(frame.NewSingle()).Run(context.Background(), e, s, cfg)
	require.NoError(t, err)
	return result
}

func TestGeneratorsValidate(t *testing.T) {
	t.Parallel()

	scripts := []*Script{
		Tap(0, 0, 3),
		Drag(0, 0, 100, 0.3),
		Fling(0, 0, 100, 0.1),
		Pull(0, 0, 100, 0.2, 0.3),
		Hold(0, 10, 0.5),
		Interrupted(0, 0, 100, 0.2),
		Wheel(0, 300, 3, 0.1),
	}
	for _, s := range scripts {
		assert.NoError(t, s.Validate(), s.Name)
	}
}

func TestDragReleaseVelocity(t *testing.T) {
	t.Parallel()

	e := scroll.NewInertial()
	s := Drag(0.05, 0, -300, 0.5)
	require.NoError(t, s.Feed(e, 0, 1))

	assert.InDelta(t, -600, e.Velocity(), 1)
	assert.InDelta(t, -300, e.Value(), 1e-9)
	assert.False(t, e.IsManual())
}

func TestFlingOutrunsDrag(t *testing.T) {
	t.Parallel()

	drag := scroll.NewInertial()
	fling := scroll.NewInertial()
	require.NoError(t, Drag(0, 0, -300, 0.3).Feed(drag, 0, 1))
	require.NoError(t, Fling(0, 0, -300, 0.3).Feed(fling, 0, 1))

	assert.Less(t, fling.Velocity(), drag.Velocity())
}

func TestTapDoesNotFling(t *testing.T) {
	t.Parallel()

	e := scroll.NewBounded(0, 1000)
	result := play(t, e, Tap(0.05, 0, 5), 1)

	assert.Equal(t, 0.0, e.Velocity())
	assert.Equal(t, scroll.Idle, e.Phase())
	assert.Zero(t, result.Ticks)
}

func TestPullRecoversFromEdge(t *testing.T) {
	t.Parallel()

	e := scroll.NewDamped(0, 1000)
	s := Pull(0.05, 0, -150, 0.3, 0.3)
	result := play(t, e, s, 10)

	peak := 0.0
	for _, f := range result.Frames {
		if f.Overscroll < peak {
			peak = f.Overscroll
		}
	}
	assert.Less(t, peak, -50.0)
	assert.Equal(t, 0.0, e.Overscroll())
	assert.GreaterOrEqual(t, e.Value(), 0.0)
	assert.Less(t, e.Value(), 5.0)
	assert.Greater(t, result.SettledAt, s.Duration())
}

func TestHoldIsATap(t *testing.T) {
	t.Parallel()

	e := scroll.NewDamped(0, 1000)
	play(t, e, Hold(0.05, 40, 0.5), 2)

	assert.Equal(t, 0.0, e.Value())
	assert.Equal(t, scroll.Idle, e.Phase())
}

func TestInterruptedEndsInCancel(t *testing.T) {
	t.Parallel()

	s := Interrupted(0, 0, -200, 0.2)
	assert.Equal(t, KindCancel, s.Events[len(s.Events)-1].Kind)

	e := scroll.NewInertial()
	require.NoError(t, s.Feed(e, 0, 1))
	assert.False(t, e.IsManual())
	assert.Equal(t, 0.0, e.Velocity())
	assert.InDelta(t, -200, e.Value(), 1e-9)
}

func TestWheelFlings(t *testing.T) {
	t.Parallel()

	s := Wheel(0, 600, 3, 0.1)
	require.Len(t, s.Events, 3)

	e := scroll.NewInertial()
	result := play(t, e, s, 5)
	assert.Greater(t, e.Value(), 0.0)
	assert.Greater(t, result.SettledAt, 0.2)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Equal(t, []string{"drag", "fling", "hold", "interrupted", "pull", "tap", "wheel"}, r.List())

	for _, name := range r.List() {
		s, err := r.Get(name, Spec{})
		require.NoError(t, err, name)
		assert.NoError(t, s.Validate(), name)
		assert.NotEmpty(t, r.Describe(name))
	}

	s, err := r.Get("drag", Spec{Start: 10, Distance: 50, Duration: 0.2})
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Events[0].Pos)
	assert.Equal(t, 60.0, s.Events[len(s.Events)-1].Pos)

	_, err = r.Get("pinch", Spec{})
	assert.Error(t, err)
}
