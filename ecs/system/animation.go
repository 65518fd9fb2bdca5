package system

import (
	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

// AnimationSystem advances the playing clip of every animated entity.
type AnimationSystem struct {
	clock Clock
}

func NewAnimationSystem(clock Clock) *AnimationSystem {
	return &AnimationSystem{clock: clock}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil || a.clock == nil {
		return
	}
	dt := a.clock.Delta()

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, anim *component.Animation) {
		clip := anim.Clip()
		if !anim.Playing || clip == nil || clip.Frames <= 0 || clip.FPS <= 0 {
			return
		}

		frameTime := 1 / clip.FPS
		anim.Timer += dt
		for anim.Timer >= frameTime {
			anim.Timer -= frameTime
			anim.Frame++
			if anim.Frame < clip.Frames {
				continue
			}
			if clip.Loop {
				anim.Frame = 0
				continue
			}
			anim.Frame = clip.Frames - 1
			anim.Playing = false
			anim.Timer = 0
			return
		}
	})
}

// EntityAnimator drives one entity's Animation component through named
// states, the way an animator controller swaps override clips.
type EntityAnimator struct {
	world  *ecs.World
	entity ecs.Entity
}

func NewEntityAnimator(w *ecs.World, e ecs.Entity) *EntityAnimator {
	return &EntityAnimator{world: w, entity: e}
}

// Bind points state at clip. Binding the playing state restarts it on the
// next Play.
func (a *EntityAnimator) Bind(state string, clip *component.AnimationClip) {
	anim := a.animation()
	if anim == nil {
		return
	}
	if anim.Bindings == nil {
		anim.Bindings = make(map[string]*component.AnimationClip)
	}
	anim.Bindings[state] = clip
}

// Play restarts state from its first frame. A state with no clip bound still
// becomes current but does not advance.
func (a *EntityAnimator) Play(state string) {
	anim := a.animation()
	if anim == nil {
		return
	}
	anim.State = state
	anim.Frame = 0
	anim.Timer = 0
	anim.Playing = anim.Clip() != nil
}

// State returns the current state name and its clip.
func (a *EntityAnimator) State() (string, *component.AnimationClip) {
	anim := a.animation()
	if anim == nil {
		return "", nil
	}
	return anim.State, anim.Clip()
}

func (a *EntityAnimator) animation() *component.Animation {
	if a == nil {
		return nil
	}
	anim, ok := ecs.Get(a.world, a.entity, component.AnimationComponent.Kind())
	if !ok {
		anim = &component.Animation{}
		if err := ecs.Add(a.world, a.entity, component.AnimationComponent.Kind(), anim); err != nil {
			return nil
		}
	}
	return anim
}
