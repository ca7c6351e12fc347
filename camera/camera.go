// Package camera provides a 2D camera for viewing the world.
package camera

import "github.com/pthm-cable/forage/components"

// Camera maps world coordinates (origin-centered, y up) onto the screen
// (top-left origin, y down) with pan and zoom.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World rectangle; the camera center never leaves it
	Bounds components.Bounds

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world with the whole world in view
// when it fits, 1:1 otherwise.
func New(viewportW, viewportH float32, bounds components.Bounds) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		Bounds:    bounds,
		MaxZoom:   8.0,
	}
	c.updateMinZoom()
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole world fits the viewport.
func (c *Camera) fitZoom() float32 {
	return min(c.ViewportW/c.Bounds.Width(), c.ViewportH/c.Bounds.Height())
}

func (c *Camera) updateMinZoom() {
	// Allow zooming out a little past the fit so the edges are visible.
	c.MinZoom = c.fitZoom() * 0.5
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y - (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateMinZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Pan moves the camera by the given delta in screen pixels. Positive dy
// moves the view down the screen.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, c.Bounds.Left, c.Bounds.Right)
	c.Y = clamp(c.Y-dy/c.Zoom, c.Bounds.Bottom, c.Bounds.Top)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the world and fits it to the viewport.
func (c *Camera) Reset() {
	c.X = (c.Bounds.Left + c.Bounds.Right) / 2
	c.Y = (c.Bounds.Bottom + c.Bounds.Top) / 2
	c.Zoom = min(c.fitZoom(), 1.0)
}

// VisibleWorldBounds returns the world rectangle currently on screen.
func (c *Camera) VisibleWorldBounds() components.Bounds {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return components.Bounds{
		Left:   c.X - halfW,
		Right:  c.X + halfW,
		Bottom: c.Y - halfH,
		Top:    c.Y + halfH,
	}
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
