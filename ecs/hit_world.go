package ecs

import (
	"github.com/jakecoffman/cp"
)

// HitWorld owns the Chipmunk space holding one pointer-query box per entity.
// Nothing is simulated; the space is only used for point queries.
type HitWorld struct {
	space  *cp.Space
	shapes map[Entity]*cp.Shape
	bodies map[Entity]*cp.Body
}

// NewHitWorld creates an empty hit-test space.
func NewHitWorld() *HitWorld {
	return &HitWorld{
		space:  cp.NewSpace(),
		shapes: make(map[Entity]*cp.Shape),
		bodies: make(map[Entity]*cp.Body),
	}
}

// Space returns the underlying Chipmunk space.
func (hw *HitWorld) Space() *cp.Space {
	if hw == nil {
		return nil
	}
	return hw.space
}

// Set places e's box centred at (x, y) with the given size, rebuilding the
// shape when the size changed. enabled decides whether queries can see it.
func (hw *HitWorld) Set(e Entity, x, y, width, height float64, enabled bool) {
	if hw == nil || width <= 0 || height <= 0 {
		return
	}
	body, ok := hw.bodies[e]
	if !ok {
		body = hw.space.AddBody(cp.NewKinematicBody())
		hw.bodies[e] = body
	}
	body.SetPosition(cp.Vector{X: x, Y: y})

	shape := hw.shapes[e]
	if shape != nil {
		bb := shape.BB()
		if !sameSize(bb, width, height) {
			hw.space.RemoveShape(shape)
			shape = nil
		}
	}
	if shape == nil {
		shape = hw.space.AddShape(cp.NewBox(body, width, height, 0))
		shape.UserData = e
		hw.shapes[e] = shape
	}
	if enabled {
		shape.SetFilter(cp.SHAPE_FILTER_ALL)
	} else {
		shape.SetFilter(cp.SHAPE_FILTER_NONE)
	}
	// Step refreshes the cached shape bounds; kinematic bodies at rest do
	// not move.
	hw.space.Step(1)
}

// Enabled reports whether e's box currently accepts queries.
func (hw *HitWorld) Enabled(e Entity) bool {
	if hw == nil {
		return false
	}
	shape, ok := hw.shapes[e]
	if !ok {
		return false
	}
	return shape.Filter != cp.SHAPE_FILTER_NONE
}

// Remove drops e's box.
func (hw *HitWorld) Remove(e Entity) {
	if hw == nil {
		return
	}
	if shape, ok := hw.shapes[e]; ok {
		hw.space.RemoveShape(shape)
		delete(hw.shapes, e)
	}
	if body, ok := hw.bodies[e]; ok {
		hw.space.RemoveBody(body)
		delete(hw.bodies, e)
	}
}

// Pick returns the enabled entity whose box contains (x, y).
func (hw *HitWorld) Pick(x, y float64) (Entity, bool) {
	if hw == nil {
		return 0, false
	}
	info := hw.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return 0, false
	}
	e, ok := info.Shape.UserData.(Entity)
	return e, ok
}

func sameSize(bb cp.BB, width, height float64) bool {
	const eps = 1e-9
	dw := (bb.R - bb.L) - width
	dh := (bb.T - bb.B) - height
	return dw > -eps && dw < eps && dh > -eps && dh < eps
}
