package field

// Params is the full parameter set of a field.
// It is read-only while frames are being evaluated.
type Params struct {
	Palette Palette
	Bands   []Band
	Octaves int
	Scale   float64 // uv to noise-space scale applied before warping
	Warp    []WarpPass
	Pointer PointerParams
	Post    Post
	Epsilon float64
}

// DefaultParams returns the stock background: three stops, two warp passes,
// five octaves.
func DefaultParams() Params {
	return Params{
		Palette: Palette{
			RGBFrom8(0xff, 0x6b, 0x6b),
			RGBFrom8(0x5f, 0x27, 0xcd),
			RGBFrom8(0x1d, 0xd1, 0xa1),
		},
		Bands:   DefaultBands(),
		Octaves: 5,
		Scale:   3.0,
		Warp:    DefaultWarpPasses(),
		Pointer: DefaultPointerParams(),
		Post:    DefaultPost(),
		Epsilon: DefaultEpsilon,
	}
}

// Stops returns the number of color stops that will be blended.
func (p *Params) Stops() int {
	n := len(p.Palette)
	if len(p.Bands) < n {
		n = len(p.Bands)
	}
	if n > MaxStops {
		n = MaxStops
	}
	return n
}

// Clone returns a deep copy safe to mutate independently.
func (p *Params) Clone() Params {
	c := *p
	c.Palette = append(Palette(nil), p.Palette...)
	c.Bands = append([]Band(nil), p.Bands...)
	c.Warp = append([]WarpPass(nil), p.Warp...)
	return c
}
