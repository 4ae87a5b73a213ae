// Package viewport maps device coordinates into the normalized field frame.
package viewport

import "github.com/pthm-cable/gradient/field"

// Viewport is the drawing area on screen.
// Normalized coordinates run from (0,0) at the top-left corner to (1,1) at
// the bottom-right, or bottom-left with FlipY. They are not clamped: points
// outside the area map outside [0,1].
type Viewport struct {
	// Origin of the drawing area in screen pixels
	X, Y float32

	// Size in screen pixels
	W, H float32

	FlipY bool
}

// New creates a viewport at the screen origin.
func New(w, h float32) *Viewport {
	return &Viewport{W: w, H: h}
}

// Normalize converts a screen position into field coordinates.
func (v *Viewport) Normalize(sx, sy float32) field.Vec2 {
	if v.W <= 0 || v.H <= 0 {
		return field.RestPosition
	}
	nx := float64((sx - v.X) / v.W)
	ny := float64((sy - v.Y) / v.H)
	if v.FlipY {
		ny = 1 - ny
	}
	return field.V(nx, ny)
}

// Denormalize converts field coordinates back into a screen position.
func (v *Viewport) Denormalize(p field.Vec2) (sx, sy float32) {
	ny := p.Y
	if v.FlipY {
		ny = 1 - ny
	}
	return v.X + float32(p.X)*v.W, v.Y + float32(ny)*v.H
}

// Contains reports whether a screen position lies inside the drawing area.
func (v *Viewport) Contains(sx, sy float32) bool {
	return sx >= v.X && sx < v.X+v.W && sy >= v.Y && sy < v.Y+v.H
}

// Resize updates the viewport size. Returns true if it changed.
func (v *Viewport) Resize(w, h float32) bool {
	if w == v.W && h == v.H {
		return false
	}
	v.W = w
	v.H = h
	return true
}

// PixelUV returns the field coordinate of the center of pixel (px, py) in a
// w×h raster covering the whole viewport.
func PixelUV(px, py, w, h int, flipY bool) field.Vec2 {
	u := (float64(px) + 0.5) / float64(w)
	t := (float64(py) + 0.5) / float64(h)
	if flipY {
		t = 1 - t
	}
	return field.V(u, t)
}
