package exhibit

import (
	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

// PanelKind selects which top-level panel the presentation surface shows.
type PanelKind int

const (
	PanelTitle PanelKind = iota
	PanelAnchoring
	PanelSelection
	PanelDetail
)

func (p PanelKind) String() string {
	switch p {
	case PanelTitle:
		return "title"
	case PanelAnchoring:
		return "anchoring"
	case PanelSelection:
		return "selection"
	case PanelDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Presentation renders panels and exhibit details. Calls are fire-and-forget.
type Presentation interface {
	ShowPanel(kind PanelKind)
	ShowTooltip(d *Descriptor)
	HideTooltip()
	ShowDetail(d *Descriptor)
}

// Audio plays one-shot cues. An empty ref is ignored.
type Audio interface {
	PlayCue(ref string)
}

// Animator binds clips to named states on one entity and plays them.
type Animator interface {
	Bind(state string, clip *component.AnimationClip)
	Play(state string)
}

// Transitions schedules pose interpolation for an entity.
type Transitions interface {
	Begin(w *ecs.World, e ecs.Entity, target component.Transform, duration float64)
}

type nopPresentation struct{}

func (nopPresentation) ShowPanel(PanelKind) {}
func (nopPresentation) ShowTooltip(*Descriptor) {}
func (nopPresentation) HideTooltip() {}
func (nopPresentation) ShowDetail(*Descriptor) {}

type nopAudio struct{}

func (nopAudio) PlayCue(string) {}

type nopAnimator struct{}

func (nopAnimator) Bind(string, *component.AnimationClip) {}
func (nopAnimator) Play(string) {}
