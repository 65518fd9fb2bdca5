package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

func TestHitboxSystemMirrorsPoseAndVisibility(t *testing.T) {
	w := ecs.NewWorld()
	hits := ecs.NewHitWorld()
	sys := NewHitboxSystem(hits)

	pose := component.IdentityTransform()
	pose.Position = mgl64.Vec3{2, 1, 0}
	pose.Scale = mgl64.Vec3{-0.5, 0.5, 0.5}
	e := newPosed(t, w, pose)
	require.NoError(t, ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{Width: 2, Height: 2}))
	vis := &component.Visibility{Visible: true, Interactable: true}
	require.NoError(t, ecs.Add(w, e, component.VisibilityComponent.Kind(), vis))

	sys.Update(w)
	got, ok := hits.Pick(2.4, 1.4)
	require.True(t, ok, "mirrored scale still gives a positive box")
	assert.Equal(t, e, got)
	_, ok = hits.Pick(2.8, 1)
	assert.False(t, ok, "box is scaled down to 1x1")

	vis.Interactable = false
	sys.Update(w)
	assert.False(t, hits.Enabled(e))

	vis.Interactable = true
	vis.Visible = false
	sys.Update(w)
	assert.False(t, hits.Enabled(e), "hidden exhibits cannot be picked")

	vis.Visible = true
	sys.Update(w)
	assert.True(t, hits.Enabled(e))
}
