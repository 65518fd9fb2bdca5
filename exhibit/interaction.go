package exhibit

import (
	"go.uber.org/zap"

	"github.com/milk9111/mrexhibit/ecs"
)

// InteractionSystem routes queued pointer events to their controllers, once
// per tick and in arrival order.
type InteractionSystem struct {
	registry *Registry
	log      *zap.Logger
}

func NewInteractionSystem(registry *Registry, log *zap.Logger) *InteractionSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &InteractionSystem{registry: registry, log: log}
}

func (s *InteractionSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		c, ok := s.registry.ByEntity(evt.Entity)
		if !ok {
			s.log.Debug("event for unknown entity", zap.Stringer("entity", evt.Entity), zap.String("kind", string(evt.Kind)))
			continue
		}
		switch evt.Kind {
		case ecs.EventFocus:
			c.OnFocus()
		case ecs.EventSelect:
			c.OnSelect()
		case ecs.EventDeselect:
			c.OnDeselect()
		case ecs.EventAction:
			c.PlayAction(evt.Index)
		default:
			s.log.Warn("unknown interaction", zap.String("kind", string(evt.Kind)))
		}
	}
}
