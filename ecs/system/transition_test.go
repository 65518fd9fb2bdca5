package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

// stepClock returns a settable step so a test can vary dt between ticks.
type stepClock struct{ dt float64 }

func (c *stepClock) Delta() float64 { return c.dt }

func newPosed(t *testing.T, w *ecs.World, pose component.Transform) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &pose))
	return e
}

func pose(t *testing.T, w *ecs.World, e ecs.Entity) component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return *tr
}

func TestTransitionHalfway(t *testing.T) {
	w := ecs.NewWorld()
	clock := &stepClock{dt: 0.25}
	ts := NewTransitionSystem(clock)

	start := component.IdentityTransform()
	e := newPosed(t, w, start)
	target := component.Transform{
		Position: mgl64.Vec3{0, 1, 0},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}),
		Scale:    mgl64.Vec3{5.5, 5.5, 5.5},
	}

	ts.Begin(w, e, target, 0.5)
	require.True(t, ts.Active(w, e))
	assert.True(t, pose(t, w, e).ApproxEqual(start), "begin does not move the entity")

	ts.Update(w)
	got := pose(t, w, e)
	assert.InDelta(t, 0.5, got.Position.Y(), 1e-9)
	assert.InDelta(t, 3.25, got.Scale.X(), 1e-9)
	want := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})
	assert.True(t, got.Rotation.ApproxEqualThreshold(want, 1e-9), "rotation %v, want %v", got.Rotation, want)
	assert.True(t, ts.Active(w, e))

	ts.Update(w)
	assert.True(t, pose(t, w, e).ApproxEqual(target))
	assert.Equal(t, target, pose(t, w, e), "final pose is exactly the target")
	assert.False(t, ts.Active(w, e), "job retired")
}

func TestTransitionNeverOvershoots(t *testing.T) {
	w := ecs.NewWorld()
	clock := &stepClock{dt: 0.3}
	ts := NewTransitionSystem(clock)

	e := newPosed(t, w, component.IdentityTransform())
	target := component.IdentityTransform()
	target.Position = mgl64.Vec3{10, 0, 0}
	ts.Begin(w, e, target, 1)

	prev := 0.0
	for range 10 {
		ts.Update(w)
		x := pose(t, w, e).Position.X()
		assert.GreaterOrEqual(t, x, prev)
		assert.LessOrEqual(t, x, 10.0)
		prev = x
	}
	assert.Equal(t, 10.0, prev)
	assert.False(t, ts.Active(w, e))
}

func TestTransitionRestartCancelsPrevious(t *testing.T) {
	w := ecs.NewWorld()
	clock := &stepClock{dt: 0.1}
	ts := NewTransitionSystem(clock)

	e := newPosed(t, w, component.IdentityTransform())
	first := component.IdentityTransform()
	first.Position = mgl64.Vec3{10, 0, 0}
	second := component.IdentityTransform()
	second.Position = mgl64.Vec3{-2, 0, 0}

	ts.Begin(w, e, first, 1)
	ts.Update(w)
	mid := pose(t, w, e).Position.X()
	require.InDelta(t, 1, mid, 1e-9)

	ts.Begin(w, e, second, 0.2)
	job, ok := ecs.Get(w, e, component.TransitionJobComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, mid, job.Start.Position.X(), 1e-9, "new job starts from the current pose")
	assert.Zero(t, job.Elapsed)

	for range 5 {
		ts.Update(w)
		assert.LessOrEqual(t, pose(t, w, e).Position.X(), mid, "never heads back to the first target")
	}
	assert.Equal(t, second, pose(t, w, e))
}

func TestTransitionSnapsWithoutDuration(t *testing.T) {
	for _, d := range []float64{0, -1, math.NaN()} {
		w := ecs.NewWorld()
		ts := NewTransitionSystem(FixedClock(0.016))
		e := newPosed(t, w, component.IdentityTransform())
		target := component.IdentityTransform()
		target.Scale = mgl64.Vec3{2, 2, 2}

		ts.Begin(w, e, target, d)
		assert.Equal(t, target, pose(t, w, e), "duration %v", d)
		assert.False(t, ts.Active(w, e), "duration %v", d)
	}
}

func TestTransitionIgnoresEntityWithoutTransform(t *testing.T) {
	w := ecs.NewWorld()
	ts := NewTransitionSystem(FixedClock(0.1))
	e := ecs.CreateEntity(w)

	ts.Begin(w, e, component.IdentityTransform(), 1)
	assert.False(t, ts.Active(w, e))
	assert.NotPanics(t, func() { ts.Update(w) })
}

func TestInterpolateShortestArc(t *testing.T) {
	from := component.IdentityTransform()
	to := component.IdentityTransform()
	// -q is the same orientation as q; slerp must not take the long way round.
	to.Rotation = mgl64.QuatRotate(0.2, mgl64.Vec3{0, 0, 1}).Scale(-1)

	mid := Interpolate(from, to, 0.5)
	want := mgl64.QuatRotate(0.1, mgl64.Vec3{0, 0, 1})
	assert.True(t, mid.Rotation.ApproxEqualThreshold(want, 1e-9) || mid.Rotation.ApproxEqualThreshold(want.Scale(-1), 1e-9))

	assert.Equal(t, from, Interpolate(from, to, -1))
	end := Interpolate(from, to, 2)
	assert.True(t, end.ApproxEqual(to))
}
