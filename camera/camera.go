// Package camera provides the world-to-screen viewport transform.
package camera

// Camera maps the origin-centered yard onto the screen. The whole clamp
// square stays visible; zoom is derived from the viewport, not user input.
type Camera struct {
	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Half-extent of the visible world square
	WorldHalf float32

	// Scale in pixels per world unit
	Zoom float32
}

// margin keeps a sliver of screen around the clamp boundary.
const margin = 0.95

// New creates a camera that fits a world square of the given half-extent
// into the viewport.
func New(viewportW, viewportH, worldHalf float32) *Camera {
	c := &Camera{WorldHalf: worldHalf}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize recomputes the scale for a new viewport size.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	span := 2 * c.WorldHalf
	zx := viewportW / span
	zy := viewportH / span
	if zy < zx {
		c.Zoom = zy * margin
	} else {
		c.Zoom = zx * margin
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + wx*c.Zoom
	sy = c.ViewportH/2 + wy*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = (sx - c.ViewportW/2) / c.Zoom
	wy = (sy - c.ViewportH/2) / c.Zoom
	return wx, wy
}

// Scale converts a world length to pixels.
func (c *Camera) Scale(d float32) float32 {
	return d * c.Zoom
}
