package exhibit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

func TestRegistryOrderAndLookup(t *testing.T) {
	f := newFixture(t, 3, fixtureOptions{})

	got := f.reg.Controllers()
	require.Len(t, got, 3)
	for i := range got {
		assert.Same(t, f.controllers[i], got[i])
	}
	assert.Equal(t, 3, f.reg.Len())

	c, ok := f.reg.Lookup("Asian Elephant")
	require.True(t, ok)
	assert.Same(t, f.controllers[1], c)
	_, ok = f.reg.Lookup("Dodo")
	assert.False(t, ok)

	c, ok = f.reg.ByEntity(f.controllers[2].Entity())
	require.True(t, ok)
	assert.Same(t, f.controllers[2], c)
}

func TestRegistryControllersIsACopy(t *testing.T) {
	f := newFixture(t, 2, fixtureOptions{})
	got := f.reg.Controllers()
	got[0] = nil
	assert.NotNil(t, f.reg.Controllers()[0])
}

func TestRegistryIgnoresDuplicatesAndLateRegistration(t *testing.T) {
	f := newFixture(t, 0, fixtureOptions{})
	reg := NewRegistry(f.log)
	deps := Deps{World: f.world, Registry: reg, Logger: f.log}

	c := NewController(ecs.CreateEntity(f.world), testDescriptor(0), nil, deps, ControllerOptions{})
	reg.Register(c)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, f.warnings("exhibit already registered"))

	reg.Freeze()
	NewController(ecs.CreateEntity(f.world), testDescriptor(1), nil, deps, ControllerOptions{})
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, f.warnings("registry frozen, ignoring exhibit"))
}

func TestRegistryIsolateThenShowAll(t *testing.T) {
	f := newFixture(t, 4, fixtureOptions{})
	target := f.controllers[2]

	f.reg.Isolate(target)
	for _, c := range f.controllers {
		visible, interactable := c.Visibility()
		assert.Equal(t, c == target, visible)
		assert.Equal(t, c == target, interactable)
	}

	f.reg.ShowAll()
	for _, c := range f.controllers {
		visible, interactable := c.Visibility()
		assert.True(t, visible)
		assert.True(t, interactable)
	}

	f.reg.HideAll()
	for _, c := range f.controllers {
		visible, interactable := c.Visibility()
		assert.False(t, visible)
		assert.False(t, interactable)
	}
}

func TestRegistryCurrentActions(t *testing.T) {
	f := newFixture(t, 2, fixtureOptions{}).browse()

	// No current exhibit yet.
	f.reg.PlayCurrentAction(0)
	f.reg.ReturnCurrent()
	assert.Empty(t, f.audio.cues)

	x := f.controllers[1]
	x.OnSelect()
	f.reg.PlayCurrentAction(0)
	assert.Equal(t, ActionState(0), f.animators[1].state)

	f.reg.ReturnCurrent()
	assert.False(t, x.Selected())
	assert.Nil(t, f.reg.Current())
	assert.Equal(t, ModeSelectionBrowsing, f.coord.Mode())
}

func TestRegistryReplaceDescriptor(t *testing.T) {
	f := newFixture(t, 2, fixtureOptions{}).browse()
	c := f.controllers[0]

	next := *c.Descriptor()
	next.Family = "Felidae"
	next.Idle = &component.AnimationClip{Name: "idle2", Frames: 2, FPS: 2, Loop: true}

	require.True(t, f.reg.ReplaceDescriptor(&next))
	assert.Same(t, &next, c.Descriptor())
	assert.Same(t, next.Idle, f.animators[0].bound[IdleState])
	assert.Same(t, next.Idle, f.animators[0].playing)
	assert.Equal(t, 2, f.reg.Len())

	assert.False(t, f.reg.ReplaceDescriptor(&Descriptor{ID: "Dodo"}))
	assert.Equal(t, 1, f.warnings("no exhibit for reloaded descriptor"))
	assert.False(t, f.reg.ReplaceDescriptor(nil))
}

func TestRegistryReplaceDescriptorKeepsActionPlaying(t *testing.T) {
	f := newFixture(t, 1, fixtureOptions{}).browse()
	c := f.controllers[0]
	c.OnSelect()
	c.PlayAction(0)

	next := *c.Descriptor()
	next.Idle = &component.AnimationClip{Name: "idle2", Frames: 2, FPS: 2, Loop: true}
	require.True(t, f.reg.ReplaceDescriptor(&next))

	assert.Equal(t, ActionState(0), f.animators[0].state)
	assert.Same(t, next.Idle, f.animators[0].bound[IdleState])
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.Register(nil)
		r.Freeze()
		r.Isolate(nil)
		r.ShowAll()
		r.HideAll()
		r.ClearCurrent()
		r.ReturnCurrent()
		r.PlayCurrentAction(0)
	})
	assert.Zero(t, r.Len())
	assert.Nil(t, r.Selected())
	assert.Nil(t, r.Current())
	assert.False(t, r.ReplaceDescriptor(&Descriptor{}))
}
