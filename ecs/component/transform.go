package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's local pose.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// IdentityTransform sits at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// ApproxEqual compares poses with mgl64's default epsilon. Rotations q and -q
// are the same orientation.
func (t Transform) ApproxEqual(o Transform) bool {
	if !t.Position.ApproxEqual(o.Position) || !t.Scale.ApproxEqual(o.Scale) {
		return false
	}
	return t.Rotation.ApproxEqual(o.Rotation) || t.Rotation.ApproxEqual(o.Rotation.Scale(-1))
}

var TransformComponent = NewComponent[Transform]()
