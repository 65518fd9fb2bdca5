package exhibit

import (
	"go.uber.org/zap"

	"github.com/milk9111/mrexhibit/ecs"
)

// Registry holds every exhibit controller in registration order. Membership
// is fixed once Freeze is called.
type Registry struct {
	controllers []*Controller
	byEntity    map[ecs.Entity]*Controller
	frozen      bool
	current     *Controller
	log         *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		byEntity: make(map[ecs.Entity]*Controller),
		log:      log,
	}
}

// Register appends c. Duplicates and registrations after Freeze are logged
// and ignored.
func (r *Registry) Register(c *Controller) {
	if r == nil || c == nil {
		return
	}
	if r.frozen {
		r.log.Warn("registry frozen, ignoring exhibit", zap.String("exhibit", c.Name()))
		return
	}
	if _, dup := r.byEntity[c.Entity()]; dup {
		r.log.Warn("exhibit already registered", zap.String("exhibit", c.Name()))
		return
	}
	r.controllers = append(r.controllers, c)
	r.byEntity[c.Entity()] = c
}

// Freeze ends registration.
func (r *Registry) Freeze() {
	if r == nil {
		return
	}
	r.frozen = true
	r.log.Debug("registry frozen", zap.Int("exhibits", len(r.controllers)))
}

// Controllers returns a copy of the registered controllers in order.
func (r *Registry) Controllers() []*Controller {
	if r == nil {
		return nil
	}
	return append([]*Controller(nil), r.controllers...)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.controllers)
}

// ByEntity finds the controller driving e.
func (r *Registry) ByEntity(e ecs.Entity) (*Controller, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.byEntity[e]
	return c, ok
}

// Lookup finds a controller by descriptor id.
func (r *Registry) Lookup(id string) (*Controller, bool) {
	if r == nil {
		return nil, false
	}
	for _, c := range r.controllers {
		if c.Descriptor().ID == id {
			return c, true
		}
	}
	return nil, false
}

// Isolate leaves only target visible and interactable.
func (r *Registry) Isolate(target *Controller) {
	if r == nil {
		return
	}
	for _, c := range r.controllers {
		on := c == target
		c.SetInteractable(on)
		c.SetVisible(on)
	}
}

// ShowAll makes every exhibit visible and interactable.
func (r *Registry) ShowAll() {
	r.setAll(true)
}

// HideAll hides every exhibit and disables its hit surface.
func (r *Registry) HideAll() {
	r.setAll(false)
}

func (r *Registry) setAll(on bool) {
	if r == nil {
		return
	}
	for _, c := range r.controllers {
		c.SetInteractable(on)
		c.SetVisible(on)
	}
}

// Selected returns the selected controller, or nil.
func (r *Registry) Selected() *Controller {
	if r == nil {
		return nil
	}
	for _, c := range r.controllers {
		if c.Selected() {
			return c
		}
	}
	return nil
}

// Current is the exhibit last focused or selected; the detail panel's
// buttons act on it.
func (r *Registry) Current() *Controller {
	if r == nil {
		return nil
	}
	return r.current
}

func (r *Registry) setCurrent(c *Controller) {
	if r == nil {
		return
	}
	r.current = c
}

// ClearCurrent forgets the current exhibit.
func (r *Registry) ClearCurrent() {
	r.setCurrent(nil)
}

// ReturnCurrent deselects the current exhibit and forgets it.
func (r *Registry) ReturnCurrent() {
	if r == nil || r.current == nil {
		return
	}
	c := r.current
	r.log.Debug("returning exhibit", zap.String("exhibit", c.Name()))
	c.OnDeselect()
	r.current = nil
}

// PlayCurrentAction plays action index on the current exhibit.
func (r *Registry) PlayCurrentAction(index int) {
	if r == nil || r.current == nil {
		return
	}
	r.current.PlayAction(index)
}

// ReplaceDescriptor swaps the descriptor of the exhibit with the same id.
// Membership is unchanged; unknown ids are reported as false.
func (r *Registry) ReplaceDescriptor(d *Descriptor) bool {
	if r == nil || d == nil {
		return false
	}
	c, ok := r.Lookup(d.ID)
	if !ok {
		r.log.Warn("no exhibit for reloaded descriptor", zap.String("id", d.ID))
		return false
	}
	c.setDescriptor(d)
	return true
}
