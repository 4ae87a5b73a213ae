package field

// WarpPass configures one domain-warp pass.
type WarpPass struct {
	TimeScale float64 // multiplies elapsed time for this pass
	Magnitude float64 // displacement gain applied to the fBm pair
	OffsetA   Vec2    // phase offset of the X displacement sample
	OffsetB   Vec2    // phase offset of the Y displacement sample
}

// DefaultWarpPasses returns the two-pass configuration used by default.
func DefaultWarpPasses() []WarpPass {
	return []WarpPass{
		{TimeScale: 0.06, Magnitude: 1.0, OffsetA: V(0.0, 0.0), OffsetB: V(5.2, 1.3)},
		{TimeScale: 0.11, Magnitude: 0.8, OffsetA: V(1.7, 9.2), OffsetB: V(8.3, 2.8)},
	}
}

// Warp displaces p by two decorrelated fBm samples taken at phase-shifted
// copies of p. The samples drift in opposite directions over time.
func Warp(p Vec2, t float64, pass WarpPass, octaves int) Vec2 {
	ts := t * pass.TimeScale
	n1 := FBM(p.Add(pass.OffsetA).Add(Vec2{ts, ts * 0.7}), octaves)
	n2 := FBM(p.Add(pass.OffsetB).Sub(Vec2{ts * 0.6, ts}), octaves)
	return p.Add(Vec2{n1, n2}.Scale(pass.Magnitude))
}

// WarpChain applies passes in order; each pass warps the output of the
// previous one. With no passes p is returned unchanged.
func WarpChain(p Vec2, t float64, passes []WarpPass, octaves int) Vec2 {
	for _, pass := range passes {
		p = Warp(p, t, pass, octaves)
	}
	return p
}
