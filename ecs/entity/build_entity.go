package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/component"
	"github.com/milk9111/mrexhibit/exhibit"
	"github.com/milk9111/mrexhibit/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// buildContext collects the non-ECS parts of an exhibit while its components
// are built.
type buildContext struct {
	Name       string
	Descriptor *exhibit.Descriptor
	Options    exhibit.ControllerOptions
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":  addTransform,
	"descriptor": addDescriptor,
	"animation":  addAnimation,
	"audio":      addAudio,
	"hitbox":     addHitbox,
	"color":      addColor,
	"selection":  addSelection,
}

var componentBuildOrder = []string{
	"transform",
	"descriptor",
	"animation",
	"audio",
	"hitbox",
	"color",
	"selection",
}

// descriptorComponents only fill in the descriptor and never touch the world.
var descriptorComponents = map[string]bool{
	"descriptor": true,
	"animation":  true,
	"audio":      true,
}

func buildComponents(w *ecs.World, e ecs.Entity, spec entityPrefabSpec, ctx *buildContext, keep func(name string) bool) error {
	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		if keep == nil || keep(k) {
			remaining[k] = v
		}
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			return fmt.Errorf("add %q: %w", name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("no builder for component %q", names[0])
	}
	return nil
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	if spec.ScaleZ == 0 {
		spec.ScaleZ = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: mgl64.AnglesToQuat(
			mgl64.DegToRad(spec.Yaw),
			mgl64.DegToRad(spec.Pitch),
			mgl64.DegToRad(spec.Roll),
			mgl64.YXZ,
		).Normalize(),
		Scale: mgl64.Vec3{spec.ScaleX, spec.ScaleY, spec.ScaleZ},
	})
}

type descriptorSpec = prefabs.DescriptorComponentSpec

func addDescriptor(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[descriptorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode descriptor spec: %w", err)
	}
	kind, err := parseExhibitKind(spec.Kind)
	if err != nil {
		return err
	}
	status, err := exhibit.ParseConservationStatus(spec.Status)
	if err != nil {
		return err
	}

	d := ctx.Descriptor
	d.Kind = kind
	d.Name = spec.Name
	d.LocalName = spec.LocalName
	d.ScientificName = spec.ScientificName
	d.Family = spec.Family
	d.Status = status

	if w == nil {
		return nil
	}
	return ecs.Add(w, e, component.ExhibitComponent.Kind(), &component.Exhibit{Name: ctx.Name, Kind: kind})
}

func parseExhibitKind(v string) (component.ExhibitKind, error) {
	switch component.ExhibitKind(strings.ToLower(strings.TrimSpace(v))) {
	case "", component.ExhibitAnimal:
		return component.ExhibitAnimal, nil
	case component.ExhibitPlant:
		return component.ExhibitPlant, nil
	default:
		return "", fmt.Errorf("unknown exhibit kind %q", v)
	}
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(_ *ecs.World, _ ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if spec.Idle != nil {
		ctx.Descriptor.Idle = clipFromSpec(spec.Idle)
	}
	ctx.Descriptor.Actions = make([]*component.AnimationClip, len(spec.Actions))
	for i, a := range spec.Actions {
		if a != nil {
			ctx.Descriptor.Actions[i] = clipFromSpec(a)
		}
	}
	return nil
}

func clipFromSpec(spec *prefabs.ClipComponentSpec) *component.AnimationClip {
	return &component.AnimationClip{
		Name:   spec.Name,
		Frames: spec.Frames,
		FPS:    spec.FPS,
		Loop:   spec.Loop,
	}
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(_ *ecs.World, _ ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	ctx.Descriptor.Cue = spec.Cue
	return nil
}

type hitboxSpec = prefabs.HitboxComponentSpec

func addHitbox(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hitboxSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hitbox spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("hitbox must have a positive size, got %gx%g", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{Width: spec.Width, Height: spec.Height})
}

type colorSpec = prefabs.ColorComponentSpec

func addColor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode color spec: %w", err)
	}
	fill, err := parseHexColor(spec.Fill)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{Fill: fill})
}

type selectionSpec = prefabs.SelectionComponentSpec

func addSelection(_ *ecs.World, _ ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[selectionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode selection spec: %w", err)
	}
	if spec.ScaleFactor < 0 || spec.TransitionDuration < 0 {
		return fmt.Errorf("selection overrides must not be negative")
	}
	if spec.ScaleFactor > 0 {
		ctx.Options.ScaleFactor = spec.ScaleFactor
	}
	if spec.TransitionDuration > 0 {
		ctx.Options.TransitionDuration = spec.TransitionDuration
	}
	return nil
}

func parseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %q", v)
	}
	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}
	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse red component: %w", err)
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse green component: %w", err)
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse blue component: %w", err)
	}
	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse alpha component: %w", err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
