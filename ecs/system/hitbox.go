package system

import (
	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

// HitboxSystem mirrors each entity's pose and interactability onto its
// pointer-query box. Hidden entities are never hittable.
type HitboxSystem struct {
	hits *ecs.HitWorld
}

func NewHitboxSystem(hits *ecs.HitWorld) *HitboxSystem {
	return &HitboxSystem{hits: hits}
}

func (h *HitboxSystem) Update(w *ecs.World) {
	if w == nil || h.hits == nil {
		return
	}
	ecs.ForEach3(w, component.HitboxComponent.Kind(), component.TransformComponent.Kind(), component.VisibilityComponent.Kind(), func(e ecs.Entity, box *component.Hitbox, t *component.Transform, vis *component.Visibility) {
		h.hits.Set(e,
			t.Position.X(), t.Position.Y(),
			box.Width*abs(t.Scale.X()), box.Height*abs(t.Scale.Y()),
			vis.Visible && vis.Interactable,
		)
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
