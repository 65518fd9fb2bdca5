package common

// Viewport maps anchor space (metres, +Y up, origin at the anchor) onto the
// base screen (pixels, +Y down).
type Viewport struct {
	OriginX, OriginY float64
	PixelsPerUnit    float64
}

// DefaultViewport puts the anchor near the bottom centre of the base screen.
func DefaultViewport() Viewport {
	return Viewport{
		OriginX:       BaseWidth / 2,
		OriginY:       BaseHeight - 100,
		PixelsPerUnit: 120,
	}
}

func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	return v.OriginX + x*v.PixelsPerUnit, v.OriginY - y*v.PixelsPerUnit
}

func (v Viewport) ToWorld(sx, sy float64) (float64, float64) {
	if v.PixelsPerUnit == 0 {
		return 0, 0
	}
	return (sx - v.OriginX) / v.PixelsPerUnit, (v.OriginY - sy) / v.PixelsPerUnit
}
