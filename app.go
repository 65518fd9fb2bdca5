package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/mrexhibit/common"
	"github.com/milk9111/mrexhibit/config"
	"github.com/milk9111/mrexhibit/ecs"
	"github.com/milk9111/mrexhibit/ecs/entity"
	"github.com/milk9111/mrexhibit/ecs/render"
	"github.com/milk9111/mrexhibit/ecs/system"
	"github.com/milk9111/mrexhibit/exhibit"
	"github.com/milk9111/mrexhibit/operator"
	"github.com/milk9111/mrexhibit/prefabs"
)

// App holds the world and the services wired around it.
type App struct {
	cfg *config.Config
	log *zap.Logger

	world       *ecs.World
	hits        *ecs.HitWorld
	view        common.Viewport
	scheduler   *ecs.Scheduler
	transitions *system.TransitionSystem
	registry    *exhibit.Registry
	coordinator *exhibit.Coordinator

	panels  *Panels
	audio   *AudioService
	render  *render.RenderSystem
	input   *Input
	watcher *prefabs.Watcher

	quitRequested bool
}

func NewApp(cfg *config.Config, log *zap.Logger, console *operator.Console) (*App, error) {
	catalog, err := prefabs.LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:   cfg,
		log:   log,
		world: ecs.NewWorld(),
		hits:  ecs.NewHitWorld(),
		view:  common.DefaultViewport(),
	}

	clock := system.FixedClock(1 / float64(ebiten.TPS()))
	a.transitions = system.NewTransitionSystem(clock)
	a.registry = exhibit.NewRegistry(log.Named("registry"))
	a.audio = NewAudioService(cfg.Audio, log.Named("audio"))
	a.panels = NewPanels(PanelsOptions{
		MaxNameLength: cfg.MaxNameLength,
		Console:       console,
		Unlock:        operator.NewUnlock(cfg.Operator.Taps, seconds(cfg.Operator.TapWindow)),
		Click:         func() { a.audio.PlayCue(clickCue) },
		Logger:        log.Named("ui"),
	})
	a.coordinator = exhibit.NewCoordinator(a.registry, a.panels, exhibit.CoordinatorOptions{
		SkipAnchoring: cfg.SkipAnchoring,
		Quit:          func() { a.quitRequested = true },
		Logger:        log.Named("mode"),
	})
	a.panels.Bind(a.coordinator, a.registry)

	deps := exhibit.Deps{
		World:        a.world,
		Coordinator:  a.coordinator,
		Registry:     a.registry,
		Presentation: a.panels,
		Audio:        a.audio,
		Transitions:  a.transitions,
		Logger:       log.Named("exhibit"),
	}
	opts := exhibit.ControllerOptions{
		ScaleFactor:        cfg.ScaleFactor,
		TransitionDuration: cfg.TransitionDuration,
	}
	if _, err := entity.BuildExhibits(catalog, deps, opts); err != nil {
		return nil, err
	}

	a.scheduler = ecs.NewScheduler(
		exhibit.NewInteractionSystem(a.registry, log.Named("interaction")),
		a.transitions,
		system.NewAnimationSystem(clock),
		system.NewHitboxSystem(a.hits),
	)
	a.render = render.NewRenderSystem(a.view)
	a.input = NewInput(a.hits, a.view, a.registry, a.coordinator)

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Warn("catalog watch disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		} else {
			a.watcher = w
		}
	}

	a.audio.StartAmbience()
	a.coordinator.Start()
	// Seed hit surfaces before the first pointer query.
	a.scheduler.Update(a.world)
	return a, nil
}

// Update advances one tick. It returns ebiten.Termination once quit was
// requested.
func (a *App) Update() error {
	if a.quitRequested {
		return ebiten.Termination
	}
	a.drainWatcher()
	a.panels.Update()
	a.input.Update(a.world, a.panels.PointerCaptured())
	a.scheduler.Update(a.world)
	a.render.SetHighlight(a.input.Hovered())
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.render.Draw(a.world, screen)
	a.panels.Draw(screen)
}

func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			if filepath.Base(name) != filepath.Base(a.cfg.Catalog) {
				continue
			}
			if err := a.reload(); err != nil {
				a.log.Warn("catalog reload failed", zap.String("file", name), zap.Error(err))
			}
		case err, ok := <-a.watcher.Errors:
			if !ok {
				a.watcher = nil
				return
			}
			a.log.Warn("catalog watcher error", zap.Error(err))
		default:
			return
		}
	}
}

// reload swaps descriptor data in place and re-applies the current mode so
// open panels show the new text.
func (a *App) reload() error {
	catalog, err := prefabs.LoadCatalog(a.cfg.Catalog)
	if err != nil {
		return err
	}
	n, err := entity.ReloadDescriptors(catalog, a.registry)
	if err != nil {
		return err
	}
	a.log.Info("catalog reloaded", zap.String("catalog", a.cfg.Catalog), zap.Int("replaced", n))

	a.coordinator.Refresh()
	if sel := a.registry.Selected(); sel != nil {
		a.panels.ShowDetail(sel.Descriptor())
	}
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	a.audio.Close()
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
