package field

import (
	"fmt"
	"image/color"
	"math"
)

// Vec2 is a point or offset in field space.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Len2 returns the squared length.
func (a Vec2) Len2() float64 { return a.X*a.X + a.Y*a.Y }

// Len returns the Euclidean length.
func (a Vec2) Len() float64 { return math.Sqrt(a.Len2()) }

// RGB is a linear color with components nominally in [0,1].
// Intermediate stages may leave that range; clamp before display.
type RGB struct {
	R, G, B float64
}

func (c RGB) Add(o RGB) RGB { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c RGB) Scale(s float64) RGB { return RGB{c.R * s, c.G * s, c.B * s} }

// Offset adds s to every channel.
func (c RGB) Offset(s float64) RGB { return RGB{c.R + s, c.G + s, c.B + s} }

// Clamp01 clamps every channel to [0,1].
func (c RGB) Clamp01() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// RGBA converts to an opaque 8-bit color.
func (c RGB) RGBA() color.RGBA {
	c = c.Clamp01()
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// RGBFrom8 builds a color from 0-255 components.
func RGBFrom8(r, g, b uint8) RGB {
	return RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func fract(x float64) float64 {
	f := x - math.Floor(x)
	// x - floor(x) rounds to 1 for tiny negative x.
	if f >= 1 {
		return 0
	}
	return f
}
