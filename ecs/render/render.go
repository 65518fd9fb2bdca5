// Package render draws exhibit entities onto the ebiten screen.
package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/mrexhibit/common"
	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
)

var (
	defaultFill    = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	highlightColor = color.NRGBA{R: 0xff, G: 0xf1, B: 0x76, A: 0xff}
	anchorColor    = color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
)

// minAxis keeps an exhibit turned edge-on from vanishing.
const minAxis = 0.25

// bobPixels is how far an animated exhibit moves over one clip cycle.
const bobPixels = 6

type RenderSystem struct {
	view      common.Viewport
	pixel     *ebiten.Image
	highlight ecs.Entity
}

func NewRenderSystem(view common.Viewport) *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{view: view, pixel: pixel}
}

// SetHighlight outlines e on the next Draw. Zero clears it.
func (r *RenderSystem) SetHighlight(e ecs.Entity) {
	r.highlight = e
}

type drawable struct {
	e   ecs.Entity
	t   *component.Transform
	box *component.Hitbox
}

// Draw paints every visible exhibit back to front, then the anchor marker.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}

	var items []drawable
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.HitboxComponent.Kind(), component.VisibilityComponent.Kind(), func(e ecs.Entity, t *component.Transform, box *component.Hitbox, vis *component.Visibility) {
		if !vis.Visible {
			return
		}
		items = append(items, drawable{e: e, t: t, box: box})
	})
	sort.SliceStable(items, func(i, j int) bool {
		zi, zj := items[i].t.Position.Z(), items[j].t.Position.Z()
		if zi != zj {
			return zi > zj
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		r.drawExhibit(w, screen, it)
	}

	ax, ay := r.view.ToScreen(0, 0)
	vector.StrokeLine(screen, float32(ax-12), float32(ay), float32(ax+12), float32(ay), 2, anchorColor, true)
	vector.StrokeLine(screen, float32(ax), float32(ay-12), float32(ax), float32(ay+12), 2, anchorColor, true)
}

func (r *RenderSystem) drawExhibit(w *ecs.World, screen *ebiten.Image, it drawable) {
	fill := defaultFill
	if app, ok := ecs.Get(w, it.e, component.AppearanceComponent.Kind()); ok {
		fill = app.Fill
	}

	// The projected X axis gives the on-screen roll, and its length how far
	// yaw has turned the exhibit away from the viewer.
	axis := it.t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	angle := math.Atan2(axis.Y(), axis.X())
	turn := math.Max(math.Hypot(axis.X(), axis.Y()), minAxis)

	wpx := it.box.Width * math.Abs(it.t.Scale.X()) * turn * r.view.PixelsPerUnit
	hpx := it.box.Height * math.Abs(it.t.Scale.Y()) * r.view.PixelsPerUnit
	sx, sy := r.view.ToScreen(it.t.Position.X(), it.t.Position.Y())
	sy += bob(w, it.e)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(wpx, hpx)
	op.GeoM.Rotate(-angle)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(fill)
	screen.DrawImage(r.pixel, op)

	if it.e == r.highlight {
		vector.StrokeRect(screen, float32(sx-wpx/2-3), float32(sy-hpx/2-3), float32(wpx+6), float32(hpx+6), 2, highlightColor, true)
	}
}

// bob offsets an animated exhibit along a sine of its clip progress.
func bob(w *ecs.World, e ecs.Entity) float64 {
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		return 0
	}
	clip := anim.Clip()
	if clip == nil || clip.Frames <= 0 {
		return 0
	}
	phase := float64(anim.Frame) / float64(clip.Frames)
	return math.Sin(2*math.Pi*phase) * bobPixels
}
