package entity

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/system"
	"github.com/milk9111/mrexhibit/exhibit"
	"github.com/milk9111/mrexhibit/prefabs"
)

// BuildExhibits creates one entity and controller per catalog entry, in
// catalog order, then freezes the registry. Controllers are only created once
// every entity built, so on error the entities are destroyed and the registry
// is left empty and unfrozen.
func BuildExhibits(catalog *prefabs.CatalogSpec, deps exhibit.Deps, opts exhibit.ControllerOptions) ([]*exhibit.Controller, error) {
	if deps.World == nil {
		return nil, fmt.Errorf("entity: build exhibits: world is nil")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("entity: build exhibits: registry is nil")
	}
	if catalog == nil || len(catalog.Exhibits) == 0 {
		return nil, fmt.Errorf("entity: build exhibits: %w", prefabs.ErrNoExhibits)
	}

	built := make([]ecs.Entity, 0, len(catalog.Exhibits))
	contexts := make([]*buildContext, 0, len(catalog.Exhibits))
	for _, spec := range catalog.Exhibits {
		e, ctx, err := buildExhibitEntity(deps.World, spec, opts)
		if err != nil {
			for _, b := range built {
				ecs.DestroyEntity(deps.World, b)
			}
			return nil, err
		}
		built = append(built, e)
		contexts = append(contexts, ctx)
	}

	controllers := make([]*exhibit.Controller, 0, len(built))
	for i, e := range built {
		ctx := contexts[i]
		animator := system.NewEntityAnimator(deps.World, e)
		controllers = append(controllers, exhibit.NewController(e, ctx.Descriptor, animator, deps, ctx.Options))
	}

	deps.Registry.Freeze()
	if deps.Logger != nil {
		deps.Logger.Info("exhibits built", zap.String("catalog", catalog.Name), zap.Int("count", len(controllers)))
	}
	return controllers, nil
}

func buildExhibitEntity(w *ecs.World, spec entityPrefabSpec, opts exhibit.ControllerOptions) (ecs.Entity, *buildContext, error) {
	e := ecs.CreateEntity(w)
	ctx := &buildContext{
		Name:       spec.Name,
		Descriptor: &exhibit.Descriptor{ID: spec.Name},
		Options:    opts,
	}
	if err := buildComponents(w, e, spec, ctx, nil); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, nil, fmt.Errorf("entity: build %s: %w", spec.Name, err)
	}
	return e, ctx, nil
}

// DescriptorFromSpec builds only the descriptor of an exhibit spec.
func DescriptorFromSpec(spec prefabs.EntityBuildSpec) (*exhibit.Descriptor, error) {
	ctx := &buildContext{
		Name:       spec.Name,
		Descriptor: &exhibit.Descriptor{ID: spec.Name},
	}
	err := buildComponents(nil, 0, spec, ctx, func(name string) bool { return descriptorComponents[name] })
	if err != nil {
		return nil, fmt.Errorf("entity: build %s: %w", spec.Name, err)
	}
	return ctx.Descriptor, nil
}

// ReloadDescriptors swaps in the descriptors of an edited catalog. Exhibits
// that are not already registered are skipped, since membership is fixed.
// It returns the number of descriptors replaced.
func ReloadDescriptors(catalog *prefabs.CatalogSpec, registry *exhibit.Registry) (int, error) {
	if catalog == nil {
		return 0, fmt.Errorf("entity: reload: %w", prefabs.ErrNoExhibits)
	}
	descs := make([]*exhibit.Descriptor, 0, len(catalog.Exhibits))
	for _, spec := range catalog.Exhibits {
		d, err := DescriptorFromSpec(spec)
		if err != nil {
			return 0, err
		}
		descs = append(descs, d)
	}

	replaced := 0
	for _, d := range descs {
		if registry.ReplaceDescriptor(d) {
			replaced++
		}
	}
	return replaced, nil
}
