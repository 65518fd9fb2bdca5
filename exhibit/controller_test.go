package exhibit

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

func assertPose(t *testing.T, want, got component.Transform) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want.Position[i], got.Position[i], 1e-9, "position[%d]", i)
		assert.InDelta(t, want.Scale[i], got.Scale[i], 1e-9, "scale[%d]", i)
	}
	// q and -q are the same rotation.
	dot := want.Rotation.Dot(got.Rotation)
	assert.InDelta(t, 1, dot*dot, 1e-9, "rotation")
}

func TestControllerCapturesOriginalPose(t *testing.T) {
	f := newFixture(t, 3, fixtureOptions{})
	for _, c := range f.controllers {
		assertPose(t, f.pose(c), c.OriginalPose())
	}

	c := f.controllers[1]
	sel := c.SelectedPose()
	assert.Equal(t, 0.0, sel.Position.X())
	assert.Equal(t, c.OriginalPose().Position.Y(), sel.Position.Y())
	assert.Equal(t, 0.0, sel.Position.Z())
	assert.Equal(t, mgl64.QuatIdent(), sel.Rotation)
	assert.InDelta(t, 0.3*5.5, sel.Scale.X(), 1e-12)
}

func TestControllerBindsIdleOnCreate(t *testing.T) {
	f := newFixture(t, 2, fixtureOptions{})
	for i, anim := range f.animators {
		assert.Equal(t, IdleState, anim.state)
		assert.Same(t, f.controllers[i].Descriptor().Idle, anim.playing)
	}
	assert.Zero(t, f.warnings("exhibit has no idle clip"))
}

func TestControllerWarnsWithoutIdleClip(t *testing.T) {
	f := newFixture(t, 2, fixtureOptions{noIdle: true})
	assert.Equal(t, 2, f.warnings("exhibit has no idle clip"))
	for _, anim := range f.animators {
		assert.Empty(t, anim.plays)
	}
}

func TestSelectFromBrowsing(t *testing.T) {
	f := newFixture(t, 3, fixtureOptions{}).browse()
	x := f.controllers[1]
	x.OnFocus()

	x.OnSelect()

	assert.True(t, x.Selected())
	assert.Nil(t, f.ui.tooltip, "tooltip cleared on select")
	assert.Equal(t, ModeEntityDetail, f.coord.Mode())
	assert.Equal(t, PanelDetail, f.ui.lastPanel())
	assert.Same(t, x.Descriptor(), f.ui.detail)
	assert.Same(t, x, f.reg.Current())
	assert.Equal(t, []string{"cue.wav"}, f.audio.cues)
	assert.Equal(t, 1, f.ui.hidden)

	for _, c := range f.controllers {
		visible, interactable := c.Visibility()
		assert.Equal(t, c == x, visible, c.Name())
		assert.Equal(t, c == x, interactable, c.Name())
	}

	assert.True(t, f.ts.Active(f.world, x.Entity()))
	f.settle()
	assert.False(t, f.ts.Active(f.world, x.Entity()))
	assertPose(t, x.SelectedPose(), f.pose(x))

	// Siblings never move.
	for _, c := range f.controllers {
		if c != x {
			assertPose(t, c.OriginalPose(), f.pose(c))
		}
	}
}

func TestSelectWhileSiblingSelected(t *testing.T) {
	f := newFixture(t, 3, fixtureOptions{}).browse()
	x, y := f.controllers[0], f.controllers[2]
	x.OnSelect()
	f.settle()
	panels := len(f.ui.panels)

	y.OnSelect()

	assert.True(t, x.Selected())
	assert.False(t, y.Selected())
	assert.Equal(t, ModeEntityDetail, f.coord.Mode())
	assert.Len(t, f.ui.panels, panels)
	assert.Same(t, x, f.reg.Current())
	assert.False(t, f.ts.Active(f.world, y.Entity()))
	visible, _ := y.Visibility()
	assert.False(t, visible)
	assert.Equal(t, 1, f.warnings("another exhibit is selected"))
}

func TestSelectTwiceIsNoop(t *testing.T) {
	f := newFixture(t, 2, fixtureOptions{}).browse()
	x := f.controllers[0]
	x.OnSelect()
	cues := len(f.audio.cues)

	x.OnSelect()

	assert.True(t, x.Selected())
	assert.Len(t, f.audio.cues, cues)
}

func TestDeselectRestoresBrowsing(t *testing.T) {
	f := newFixture(t, 3, fixtureOptions{}).browse()
	x := f.controllers[1]
	x.OnSelect()
	f.settle()
	x.PlayAction(0)

	x.OnDeselect()

	assert.False(t, x.Selected())
	assert.Equal(t, ModeSelectionBrowsing, f.coord.Mode())
	assert.Equal(t, PanelSelection, f.ui.lastPanel())
	assert.Equal(t, IdleState, f.animators[1].state)
	for _, c := range f.controllers {
		visible, interactable := c.Visibility()
		assert.True(t, visible, c.Name())
		assert.True(t, interactable, c.Name())
	}

	f.settle()
	assertPose(t, x.OriginalPose(), f.pose(x))
}

func TestDeselectMidTransitionReturnsFromCurrentPose(t *testing.T) {
	f := newFixture(t, 1, fixtureOptions{}).browse()
	x := f.controllers[0]
	x.OnSelect()
	f.ts.Update(f.world)
	f.ts.Update(f.world)
	mid := f.pose(x)

	x.OnDeselect()

	job, ok := ecs.Get(f.world, x.Entity(), component.TransitionJobComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, mid, job.Start)
	assertPose(t, x.OriginalPose(), job.Target)
}

func TestDeselectOfUnselectedSiblingIgnored(t *testing.T) {
	f := newFixture(t, 2, fixtureOptions{}).browse()
	x, y := f.controllers[0], f.controllers[1]
	x.OnSelect()

	y.OnDeselect()

	assert.True(t, x.Selected())
	assert.Equal(t, ModeEntityDetail, f.coord.Mode())
	visible, _ := y.Visibility()
	assert.False(t, visible)
	assert.Equal(t, 1, f.warnings("cannot deselect while another exhibit is selected"))
}

func TestAtMostOneSelected(t *testing.T) {
	f := newFixture(t, 3, fixtureOptions{}).browse()
	rng := rand.New(rand.NewPCG(7, 11))

	for step := range 500 {
		c := f.controllers[rng.IntN(len(f.controllers))]
		switch rng.IntN(4) {
		case 0, 1:
			c.OnSelect()
		case 2:
			c.OnDeselect()
		case 3:
			c.PlayAction(rng.IntN(4) - 1)
		}
		f.ts.Update(f.world)

		n := f.selectedCount()
		require.LessOrEqual(t, n, 1, "step %d", step)
		if n == 1 {
			require.Equal(t, ModeEntityDetail, f.coord.Mode(), "step %d", step)
			require.NotNil(t, f.reg.Selected())
		} else {
			require.Equal(t, ModeSelectionBrowsing, f.coord.Mode(), "step %d", step)
		}
	}
}

func TestPlayAction(t *testing.T) {
	tests := []struct {
		name  string
		index int
		state string
		warn  string
	}{
		{name: "first slot", index: 0, state: ActionState(0)},
		{name: "empty slot", index: 1, state: IdleState, warn: "animation slot is empty"},
		{name: "past end", index: 2, state: IdleState, warn: "invalid animation index"},
		{name: "negative", index: -1, state: IdleState, warn: "invalid animation index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1, fixtureOptions{}).browse()
			c := f.controllers[0]
			anim := f.animators[0]

			c.PlayAction(tt.index)

			assert.Equal(t, tt.state, anim.state)
			if tt.warn == "" {
				assert.Same(t, c.Descriptor().Actions[tt.index], anim.bound[tt.state])
				assert.Equal(t, []string{"cue.wav"}, f.audio.cues)
				return
			}
			assert.Equal(t, 1, f.warnings(tt.warn))
			assert.Empty(t, f.audio.cues)
			assert.Len(t, anim.bound, 1)
		})
	}
}

func TestActionStateNames(t *testing.T) {
	assert.Equal(t, "Action1", ActionState(0))
	assert.Equal(t, "Action9", ActionState(8))
}

func TestStopAnimationPlaysIdle(t *testing.T) {
	f := newFixture(t, 1, fixtureOptions{})
	c := f.controllers[0]
	c.PlayAction(0)
	c.StopAnimation()
	assert.Equal(t, IdleState, f.animators[0].state)
}

func TestFocusOnlyWhileBrowsing(t *testing.T) {
	f := newFixture(t, 2, fixtureOptions{})
	c := f.controllers[1]

	c.OnFocus()
	assert.Nil(t, f.ui.tooltip)
	assert.Nil(t, f.reg.Current())

	f.browse()
	c.OnFocus()
	assert.Same(t, c.Descriptor(), f.ui.tooltip)
	assert.Same(t, c, f.reg.Current())

	f.ui.tooltip = nil
	c.OnSelect()
	f.controllers[0].OnFocus()
	assert.Nil(t, f.ui.tooltip)
	assert.Same(t, c, f.reg.Current())
}

func TestMissingTransformUsesIdentity(t *testing.T) {
	f := newFixture(t, 0, fixtureOptions{})
	f.reg = NewRegistry(f.log)
	e := ecs.CreateEntity(f.world)

	c := NewController(e, testDescriptor(0), nil, Deps{World: f.world, Registry: f.reg, Logger: f.log}, ControllerOptions{})

	assertPose(t, component.IdentityTransform(), c.OriginalPose())
	assert.Equal(t, 1, f.warnings("exhibit has no transform, using identity"))
	visible, interactable := c.Visibility()
	assert.True(t, visible)
	assert.True(t, interactable)

	// No coordinator, presentation, audio or transitions: selection still
	// updates local state.
	c.OnSelect()
	assert.True(t, c.Selected())
	c.OnDeselect()
	assert.False(t, c.Selected())
}

func TestControllerWithoutDescriptor(t *testing.T) {
	f := newFixture(t, 0, fixtureOptions{})
	f.reg = NewRegistry(f.log)
	e := ecs.CreateEntity(f.world)

	c := NewController(e, nil, nil, Deps{World: f.world, Registry: f.reg, Logger: f.log}, ControllerOptions{})

	assert.Equal(t, e.String(), c.Name())
	assert.Equal(t, 1, f.warnings("exhibit has no descriptor"))
	c.PlayAction(0)
	assert.Equal(t, 1, f.warnings("invalid animation index"))
}
