package exhibit

import (
	"go.uber.org/zap"
)

// Mode is the application screen that gates what can be seen and selected.
type Mode int

const (
	ModeTitle Mode = iota
	ModeAnchoring
	ModeSelectionBrowsing
	ModeEntityDetail
)

func (m Mode) String() string {
	switch m {
	case ModeTitle:
		return "title"
	case ModeAnchoring:
		return "anchoring"
	case ModeSelectionBrowsing:
		return "selection_browsing"
	case ModeEntityDetail:
		return "entity_detail"
	default:
		return "unknown"
	}
}

// CoordinatorOptions configures a Coordinator.
type CoordinatorOptions struct {
	// SkipAnchoring starts in SelectionBrowsing and makes StartGame skip the
	// anchoring screen.
	SkipAnchoring bool
	// Quit is called by Quit. The mode is left untouched.
	Quit   func()
	Logger *zap.Logger
}

// Coordinator owns the current Mode. Every entry, including re-entry of the
// current mode, re-applies that mode's effects on the registry and panels.
type Coordinator struct {
	mode     Mode
	skip     bool
	registry *Registry
	ui       Presentation
	quit     func()
	log      *zap.Logger
}

// NewCoordinator sets the initial mode without applying its effects; call
// Start once the registry is populated.
func NewCoordinator(registry *Registry, ui Presentation, opts CoordinatorOptions) *Coordinator {
	if ui == nil {
		ui = nopPresentation{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &Coordinator{
		mode:     ModeTitle,
		skip:     opts.SkipAnchoring,
		registry: registry,
		ui:       ui,
		quit:     opts.Quit,
		log:      log,
	}
	if c.skip {
		c.mode = ModeSelectionBrowsing
	}
	return c
}

// Mode returns the current mode.
func (c *Coordinator) Mode() Mode {
	return c.mode
}

// Start applies the entry effects of the initial mode.
func (c *Coordinator) Start() {
	c.Enter(c.mode)
}

// Enter switches to m and applies its entry effects. Entering Title or
// SelectionBrowsing releases any selected exhibit first, so no exhibit stays
// selected while its siblings are shown or hidden wholesale.
func (c *Coordinator) Enter(m Mode) {
	if m == ModeTitle || m == ModeSelectionBrowsing {
		if sel := c.registry.Selected(); sel != nil {
			// Deselecting enters SelectionBrowsing itself.
			sel.OnDeselect()
			if m == ModeSelectionBrowsing {
				return
			}
		}
	}

	prev := c.mode
	c.mode = m
	c.log.Info("mode changed", zap.Stringer("from", prev), zap.Stringer("mode", m))

	switch m {
	case ModeTitle:
		c.ui.ShowPanel(PanelTitle)
		c.registry.HideAll()
	case ModeAnchoring:
		c.ui.ShowPanel(PanelAnchoring)
	case ModeSelectionBrowsing:
		c.ui.ShowPanel(PanelSelection)
		c.registry.ShowAll()
	case ModeEntityDetail:
		c.ui.ShowPanel(PanelDetail)
	default:
		c.log.Warn("unhandled mode", zap.Int("mode", int(m)))
	}
}

// StartGame leaves the title screen.
func (c *Coordinator) StartGame() {
	if c.skip {
		c.log.Debug("skipping anchoring")
		c.Enter(ModeSelectionBrowsing)
		return
	}
	c.Enter(ModeAnchoring)
}

// ConfirmAnchor accepts the placed anchor and opens browsing.
func (c *Coordinator) ConfirmAnchor() {
	c.Enter(ModeSelectionBrowsing)
}

// ReturnToSelection goes back to browsing, deselecting any selected exhibit.
func (c *Coordinator) ReturnToSelection() {
	c.Enter(ModeSelectionBrowsing)
}

// ReturnToTitle goes back to the title screen, releasing any selection first.
func (c *Coordinator) ReturnToTitle() {
	c.Enter(ModeTitle)
	c.registry.ClearCurrent()
}

// Refresh re-enters the current mode.
func (c *Coordinator) Refresh() {
	c.Enter(c.mode)
}

// Quit hands off to the process quit hook.
func (c *Coordinator) Quit() {
	c.log.Info("quit requested", zap.Stringer("mode", c.mode))
	if c.quit != nil {
		c.quit()
	}
}
