package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/mrexhibit/common"
	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/exhibit"
)

var actionKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Input turns pointer and keyboard state into interaction events on the
// world queue.
type Input struct {
	hits        *ecs.HitWorld
	view        common.Viewport
	registry    *exhibit.Registry
	coordinator *exhibit.Coordinator
	hovered     ecs.Entity
	touches     []ebiten.TouchID
}

func NewInput(hits *ecs.HitWorld, view common.Viewport, registry *exhibit.Registry, coordinator *exhibit.Coordinator) *Input {
	return &Input{hits: hits, view: view, registry: registry, coordinator: coordinator}
}

// Hovered is the exhibit under the cursor, or zero.
func (i *Input) Hovered() ecs.Entity {
	return i.hovered
}

// Update queues events for this tick. captured is set while the pointer is
// over a UI panel, which then owns the click.
func (i *Input) Update(w *ecs.World, captured bool) {
	q := w.Events()

	over := ecs.Entity(0)
	if !captured {
		cx, cy := ebiten.CursorPosition()
		over = i.pick(cx, cy)
	}
	if over != i.hovered {
		i.hovered = over
		if over.Valid() {
			q.Push(ecs.Event{Kind: ecs.EventFocus, Entity: over})
		}
	}

	if !captured && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && over.Valid() {
		q.Push(ecs.Event{Kind: ecs.EventSelect, Entity: over})
	}

	// A tap focuses and selects in one go since touch has no hover.
	i.touches = inpututil.AppendJustPressedTouchIDs(i.touches[:0])
	for _, id := range i.touches {
		if captured {
			break
		}
		if e := i.pick(ebiten.TouchPosition(id)); e.Valid() {
			q.Push(ecs.Event{Kind: ecs.EventFocus, Entity: e})
			q.Push(ecs.Event{Kind: ecs.EventSelect, Entity: e})
		}
	}

	if i.coordinator.Mode() != exhibit.ModeEntityDetail {
		return
	}
	sel := i.registry.Selected()
	if sel == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		q.Push(ecs.Event{Kind: ecs.EventDeselect, Entity: sel.Entity()})
		return
	}
	for idx, key := range actionKeys {
		if inpututil.IsKeyJustPressed(key) {
			q.Push(ecs.Event{Kind: ecs.EventAction, Entity: sel.Entity(), Index: idx})
		}
	}
}

func (i *Input) pick(sx, sy int) ecs.Entity {
	x, y := i.view.ToWorld(float64(sx), float64(sy))
	e, ok := i.hits.Pick(x, y)
	if !ok {
		return 0
	}
	return e
}
