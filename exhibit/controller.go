package exhibit

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

const (
	IdleState = "Idle"

	DefaultScaleFactor        = 5.5
	DefaultTransitionDuration = 0.5
)

// ActionState names the animator state action index i plays in.
func ActionState(i int) string {
	return "Action" + strconv.Itoa(i+1)
}

// Deps are the shared services a controller calls into.
type Deps struct {
	World        *ecs.World
	Coordinator  *Coordinator
	Registry     *Registry
	Presentation Presentation
	Audio        Audio
	Transitions  Transitions
	Logger       *zap.Logger
}

// ControllerOptions tunes the selection pose animation.
type ControllerOptions struct {
	ScaleFactor        float64
	TransitionDuration float64
}

// Controller drives one exhibit entity through focus, select and deselect.
type Controller struct {
	entity   ecs.Entity
	desc     *Descriptor
	original component.Transform
	selected bool

	scaleFactor float64
	duration    float64

	world       *ecs.World
	coordinator *Coordinator
	registry    *Registry
	ui          Presentation
	audio       Audio
	animator    Animator
	transitions Transitions
	log         *zap.Logger
}

// NewController captures e's current Transform as its original pose, binds
// the idle clip and registers with deps.Registry.
func NewController(e ecs.Entity, desc *Descriptor, animator Animator, deps Deps, opts ControllerOptions) *Controller {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if desc == nil {
		log.Warn("exhibit has no descriptor", zap.Stringer("entity", e))
		desc = &Descriptor{ID: e.String()}
	}
	if animator == nil {
		animator = nopAnimator{}
	}
	c := &Controller{
		entity:      e,
		desc:        desc,
		scaleFactor: opts.ScaleFactor,
		duration:    opts.TransitionDuration,
		world:       deps.World,
		coordinator: deps.Coordinator,
		registry:    deps.Registry,
		ui:          deps.Presentation,
		audio:       deps.Audio,
		animator:    animator,
		transitions: deps.Transitions,
		log:         log.With(zap.String("exhibit", desc.Label())),
	}
	if c.ui == nil {
		c.ui = nopPresentation{}
	}
	if c.audio == nil {
		c.audio = nopAudio{}
	}
	if c.scaleFactor == 0 {
		c.scaleFactor = DefaultScaleFactor
	}

	if t, ok := ecs.Get(c.world, e, component.TransformComponent.Kind()); ok {
		c.original = *t
	} else {
		t := component.IdentityTransform()
		_ = ecs.Add(c.world, e, component.TransformComponent.Kind(), &t)
		c.original = t
		c.log.Warn("exhibit has no transform, using identity")
	}
	if !ecs.Has(c.world, e, component.VisibilityComponent.Kind()) {
		_ = ecs.Add(c.world, e, component.VisibilityComponent.Kind(), &component.Visibility{Visible: true, Interactable: true})
	}

	c.bindIdle()
	deps.Registry.Register(c)
	return c
}

func (c *Controller) bindIdle() {
	if c.desc.Idle == nil {
		c.log.Warn("exhibit has no idle clip")
		return
	}
	c.animator.Bind(IdleState, c.desc.Idle)
	c.animator.Play(IdleState)
	c.log.Debug("idle clip bound", zap.String("clip", c.desc.Idle.Name))
}

func (c *Controller) Entity() ecs.Entity { return c.entity }

func (c *Controller) Descriptor() *Descriptor { return c.desc }

func (c *Controller) Name() string { return c.desc.Label() }

func (c *Controller) Selected() bool { return c.selected }

// OriginalPose is the pose captured when the controller was built.
func (c *Controller) OriginalPose() component.Transform { return c.original }

// SelectedPose is where the exhibit moves when selected: centred on the
// anchor at its original height, unrotated, scaled up.
func (c *Controller) SelectedPose() component.Transform {
	return component.Transform{
		Position: mgl64.Vec3{0, c.original.Position.Y(), 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    c.original.Scale.Mul(c.scaleFactor),
	}
}

// OnFocus shows the tooltip while browsing.
func (c *Controller) OnFocus() {
	if c.coordinator == nil || c.coordinator.Mode() != ModeSelectionBrowsing {
		return
	}
	c.registry.setCurrent(c)
	c.ui.ShowTooltip(c.desc)
}

// OnSelect isolates this exhibit and brings it forward. Selecting twice, or
// while a sibling holds the selection, does nothing.
func (c *Controller) OnSelect() {
	if c.selected {
		c.log.Debug("already selected")
		return
	}
	if other := c.registry.Selected(); other != nil {
		c.log.Warn("another exhibit is selected", zap.String("selected", other.Name()))
		return
	}

	c.log.Info("selected")
	c.selected = true
	c.registry.setCurrent(c)

	if c.coordinator != nil {
		c.coordinator.Enter(ModeEntityDetail)
	}
	c.registry.Isolate(c)
	c.ui.HideTooltip()
	c.ui.ShowDetail(c.desc)
	c.audio.PlayCue(c.desc.Cue)
	c.beginTransition(c.SelectedPose())
}

// OnDeselect returns the exhibit to its original pose and reopens browsing.
// It is ignored while a different exhibit holds the selection.
func (c *Controller) OnDeselect() {
	if other := c.registry.Selected(); other != nil && other != c {
		c.log.Warn("cannot deselect while another exhibit is selected", zap.String("selected", other.Name()))
		return
	}

	c.log.Info("deselected")
	c.selected = false

	if c.coordinator != nil {
		c.coordinator.Enter(ModeSelectionBrowsing)
	}
	c.registry.ShowAll()
	c.ui.ShowPanel(PanelSelection)
	c.beginTransition(c.original)
	c.StopAnimation()
}

// PlayAction plays the action clip at index. Bad indexes and empty slots are
// logged and ignored.
func (c *Controller) PlayAction(index int) {
	if index < 0 || index >= len(c.desc.Actions) {
		c.log.Warn("invalid animation index", zap.Int("index", index), zap.Int("actions", len(c.desc.Actions)))
		return
	}
	clip := c.desc.Actions[index]
	if clip == nil {
		c.log.Warn("animation slot is empty", zap.Int("index", index))
		return
	}

	state := ActionState(index)
	c.animator.Bind(state, clip)
	c.animator.Play(state)
	c.audio.PlayCue(c.desc.Cue)
	c.log.Debug("playing action", zap.String("state", state), zap.String("clip", clip.Name))
}

// StopAnimation goes back to the idle state.
func (c *Controller) StopAnimation() {
	c.animator.Play(IdleState)
}

// SetInteractable toggles the exhibit's hit surface.
func (c *Controller) SetInteractable(enabled bool) {
	if vis := c.visibility(); vis != nil {
		vis.Interactable = enabled
	}
}

// SetVisible toggles drawing.
func (c *Controller) SetVisible(visible bool) {
	if vis := c.visibility(); vis != nil {
		vis.Visible = visible
	}
}

// Visibility reports the drawn and interactable flags.
func (c *Controller) Visibility() (visible, interactable bool) {
	vis := c.visibility()
	if vis == nil {
		return false, false
	}
	return vis.Visible, vis.Interactable
}

func (c *Controller) visibility() *component.Visibility {
	vis, ok := ecs.Get(c.world, c.entity, component.VisibilityComponent.Kind())
	if !ok {
		return nil
	}
	return vis
}

func (c *Controller) beginTransition(target component.Transform) {
	if c.transitions == nil {
		return
	}
	c.transitions.Begin(c.world, c.entity, target, c.duration)
}

func (c *Controller) setDescriptor(d *Descriptor) {
	idleChanged := c.desc.Idle != d.Idle
	c.desc = d
	if idleChanged && d.Idle != nil {
		c.animator.Bind(IdleState, d.Idle)
		if !c.selected {
			c.animator.Play(IdleState)
		}
	}
}
