// Package field implements the procedural color field: value noise, fBm,
// recursive domain warping, pointer dynamics and the multi-stop compositor.
//
// Everything in this package is deterministic. Evaluation functions are pure
// and allocation-free so they can run once per pixel per frame.
package field

import "math"

// Hash returns a pseudo-random value in [0,1) for a lattice point.
// Visual decorrelation only; not suitable for anything security related.
func Hash(p Vec2) float64 {
	return fract(math.Sin(p.X*12.9898+p.Y*4.1414) * 43758.5453)
}

// Noise returns smoothly interpolated value noise in [0,1).
func Noise(p Vec2) float64 {
	ix := math.Floor(p.X)
	iy := math.Floor(p.Y)
	fx := p.X - ix
	fy := p.Y - iy

	// Smoother-step interpolant hides the lattice.
	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	a := Hash(Vec2{ix, iy})
	b := Hash(Vec2{ix + 1, iy})
	c := Hash(Vec2{ix, iy + 1})
	d := Hash(Vec2{ix + 1, iy + 1})

	ab := a + (b-a)*ux
	cd := c + (d-c)*ux
	return ab + (cd-ab)*uy
}
