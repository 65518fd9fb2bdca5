package component

// Hitbox is the unscaled pointer-query rectangle centred on the entity.
type Hitbox struct {
	Width  float64
	Height float64
}

var HitboxComponent = NewComponent[Hitbox]()
