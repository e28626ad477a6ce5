// Package camera provides the world-to-screen projection for the demo view.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera projects world-space particle positions onto the screen with a
// simple perspective scale and an orbit angle around the vertical axis.
type Camera struct {
	// Target is the look-at point in world coordinates.
	Target r3.Vec

	// Yaw rotates the view around the vertical axis, radians.
	Yaw float64

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// FocalDepth controls perspective falloff: points FocalDepth world
	// units behind the target shrink to half scale.
	FocalDepth float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera looking at the origin with 1:1 zoom.
func New(viewportW, viewportH float64) *Camera {
	return &Camera{
		Zoom:       1.0,
		FocalDepth: 40.0,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		MinZoom:    0.25,
		MaxZoom:    8.0,
	}
}

// Project converts a world position to screen coordinates. The returned
// scale is the perspective size multiplier for the point, and visible is a
// conservative on-screen check with the given radius margin.
func (c *Camera) Project(w r3.Vec, radius float64) (sx, sy, scale float64, visible bool) {
	rel := r3.Sub(w, c.Target)
	if c.Yaw != 0 {
		rel = r3.Rotate(rel, c.Yaw, r3.Vec{Y: 1})
	}

	focal := c.FocalDepth
	if focal <= 0 {
		focal = 40.0
	}
	scale = focal / (focal + rel.Z) * c.Zoom
	if scale <= 0 {
		return 0, 0, 0, false
	}

	sx = c.ViewportW/2 + rel.X*scale
	// Screen Y grows downward; world Y grows upward.
	sy = c.ViewportH/2 - rel.Y*scale

	margin := radius * scale
	visible = sx >= -margin && sx <= c.ViewportW+margin &&
		sy >= -margin && sy <= c.ViewportH+margin
	return sx, sy, scale, visible
}

// Orbit rotates the view around the vertical axis.
func (c *Camera) Orbit(dYaw float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
}

// ZoomBy multiplies the zoom level, clamped to the configured range.
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom *= factor
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	if c.Zoom > c.MaxZoom {
		c.Zoom = c.MaxZoom
	}
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(w, h float64) {
	if w > 0 {
		c.ViewportW = w
	}
	if h > 0 {
		c.ViewportH = h
	}
}
