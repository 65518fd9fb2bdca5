package exhibit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
	"github.com/milk9111/mrexhibit/ecs/system"
)

type recordingUI struct {
	panels  []PanelKind
	tooltip *Descriptor
	detail  *Descriptor
	hidden  int
}

func (u *recordingUI) ShowPanel(kind PanelKind)  { u.panels = append(u.panels, kind) }
func (u *recordingUI) ShowTooltip(d *Descriptor) { u.tooltip = d }
func (u *recordingUI) HideTooltip()              { u.tooltip = nil; u.hidden++ }
func (u *recordingUI) ShowDetail(d *Descriptor)  { u.detail = d }

func (u *recordingUI) lastPanel() PanelKind {
	if len(u.panels) == 0 {
		return -1
	}
	return u.panels[len(u.panels)-1]
}

type recordingAudio struct {
	cues []string
}

func (a *recordingAudio) PlayCue(ref string) {
	if ref == "" {
		return
	}
	a.cues = append(a.cues, ref)
}

type recordingAnimator struct {
	bound   map[string]*component.AnimationClip
	state   string
	playing *component.AnimationClip
	plays   []string
}

func newRecordingAnimator() *recordingAnimator {
	return &recordingAnimator{bound: make(map[string]*component.AnimationClip)}
}

func (a *recordingAnimator) Bind(state string, clip *component.AnimationClip) {
	a.bound[state] = clip
}

func (a *recordingAnimator) Play(state string) {
	a.state = state
	a.playing = a.bound[state]
	a.plays = append(a.plays, state)
}

// fixture is a browsing scene with a real world and transition engine.
type fixture struct {
	t     *testing.T
	world *ecs.World
	ts    *system.TransitionSystem
	reg   *Registry
	coord *Coordinator
	ui    *recordingUI
	audio *recordingAudio
	logs  *observer.ObservedLogs
	log   *zap.Logger
	quit  int

	controllers []*Controller
	animators   []*recordingAnimator
}

type fixtureOptions struct {
	skipAnchoring bool
	noIdle        bool
}

const tick = 0.1

func newFixture(t *testing.T, n int, opts fixtureOptions) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	f := &fixture{
		t:     t,
		world: ecs.NewWorld(),
		ts:    system.NewTransitionSystem(system.FixedClock(tick)),
		ui:    &recordingUI{},
		audio: &recordingAudio{},
		logs:  logs,
		log:   log,
	}
	f.reg = NewRegistry(log)
	f.coord = NewCoordinator(f.reg, f.ui, CoordinatorOptions{
		SkipAnchoring: opts.skipAnchoring,
		Quit:          func() { f.quit++ },
		Logger:        log,
	})

	deps := Deps{
		World:        f.world,
		Coordinator:  f.coord,
		Registry:     f.reg,
		Presentation: f.ui,
		Audio:        f.audio,
		Transitions:  f.ts,
		Logger:       log,
	}
	for i := range n {
		e := ecs.CreateEntity(f.world)
		pose := component.Transform{
			Position: mgl64.Vec3{float64(i) - 1, 0.5 + float64(i), 1},
			Rotation: mgl64.QuatRotate(0.3*float64(i+1), mgl64.Vec3{0, 1, 0}),
			Scale:    mgl64.Vec3{0.3, 0.3, 0.3},
		}
		require.NoError(t, ecs.Add(f.world, e, component.TransformComponent.Kind(), &pose))

		desc := testDescriptor(i)
		if opts.noIdle {
			desc.Idle = nil
		}
		anim := newRecordingAnimator()
		c := NewController(e, desc, anim, deps, ControllerOptions{ScaleFactor: 5.5, TransitionDuration: 0.5})
		f.controllers = append(f.controllers, c)
		f.animators = append(f.animators, anim)
	}
	f.reg.Freeze()
	return f
}

func testDescriptor(i int) *Descriptor {
	names := []string{"Tiger", "Asian Elephant", "Wreathed Hornbill", "Leatherback Sea Turtle"}
	return &Descriptor{
		ID:             names[i%len(names)],
		Kind:           component.ExhibitAnimal,
		Name:           names[i%len(names)],
		ScientificName: "Species " + names[i%len(names)],
		Status:         StatusEndangered,
		Idle:           &component.AnimationClip{Name: "idle", Frames: 4, FPS: 4, Loop: true},
		Actions: []*component.AnimationClip{
			{Name: "roar", Frames: 6, FPS: 12},
			nil,
		},
		Cue: "cue.wav",
	}
}

// browse puts the fixture in SelectionBrowsing with effects applied.
func (f *fixture) browse() *fixture {
	f.coord.Start()
	if f.coord.Mode() != ModeSelectionBrowsing {
		f.coord.Enter(ModeSelectionBrowsing)
	}
	return f
}

// settle runs the transition engine until every job is done.
func (f *fixture) settle() {
	for range 20 {
		f.ts.Update(f.world)
	}
}

func (f *fixture) pose(c *Controller) component.Transform {
	f.t.Helper()
	tr, ok := ecs.Get(f.world, c.Entity(), component.TransformComponent.Kind())
	require.True(f.t, ok)
	return *tr
}

func (f *fixture) selectedCount() int {
	n := 0
	for _, c := range f.controllers {
		if c.Selected() {
			n++
		}
	}
	return n
}

func (f *fixture) warnings(msg string) int {
	return f.logs.FilterMessage(msg).FilterLevelExact(zapcore.WarnLevel).Len()
}
