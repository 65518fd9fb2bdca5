package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/mrexhibit/common"
	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

// Clock supplies the time step of the current tick in seconds.
type Clock interface {
	Delta() float64
}

// FixedClock is a Clock with a constant step.
type FixedClock float64

func (c FixedClock) Delta() float64 { return float64(c) }

// TransitionSystem advances every TransitionJob once per tick and retires the
// ones that reached their target.
type TransitionSystem struct {
	clock Clock
}

func NewTransitionSystem(clock Clock) *TransitionSystem {
	return &TransitionSystem{clock: clock}
}

// Begin starts moving e from wherever it is now towards target, discarding
// any job already in flight on e. A non-positive duration snaps immediately.
func (ts *TransitionSystem) Begin(w *ecs.World, e ecs.Entity, target component.Transform, duration float64) {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ecs.Remove(w, e, component.TransitionJobComponent.Kind())

	if !(duration > 0) {
		*transform = target
		return
	}
	_ = ecs.Add(w, e, component.TransitionJobComponent.Kind(), &component.TransitionJob{
		Start:    *transform,
		Target:   target,
		Duration: duration,
	})
}

// Active reports whether e has a job in flight.
func (ts *TransitionSystem) Active(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.TransitionJobComponent.Kind())
}

func (ts *TransitionSystem) Update(w *ecs.World) {
	if w == nil || ts.clock == nil {
		return
	}
	dt := ts.clock.Delta()
	if dt < 0 {
		dt = 0
	}

	ecs.ForEach2(w, component.TransitionJobComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, job *component.TransitionJob, transform *component.Transform) {
		job.Elapsed += dt
		t := common.Clamp01(job.Elapsed / job.Duration)
		if t >= 1 {
			*transform = job.Target
			ecs.Remove(w, e, component.TransitionJobComponent.Kind())
			return
		}
		*transform = Interpolate(job.Start, job.Target, t)
	})
}

// Interpolate blends two poses: linear for position and scale, spherical for
// rotation along the shorter arc.
func Interpolate(from, to component.Transform, t float64) component.Transform {
	t = common.Clamp01(t)
	return component.Transform{
		Position: lerpVec3(from.Position, to.Position, t),
		Rotation: slerp(from.Rotation, to.Rotation, t),
		Scale:    lerpVec3(from.Scale, to.Scale, t),
	}
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		common.Lerp(a[0], b[0], t),
		common.Lerp(a[1], b[1], t),
		common.Lerp(a[2], b[2], t),
	}
}

func slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	q := mgl64.QuatSlerp(a, b, t)
	if math.IsNaN(q.W) {
		return a
	}
	return q
}
