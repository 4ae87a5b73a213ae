package field

// Sample exposes every stage of one field evaluation.
type Sample struct {
	Displaced Vec2 // uv after the pointer force
	Warped    Vec2 // noise-space coordinate after all warp passes
	Weights   [MaxStops]float64
	Stops     int
	Blend     RGB     // normalized palette blend
	Vignetted RGB     // Blend after vignette
	Grain     float64 // additive grain term
	PreGamma  RGB     // Vignetted plus grain
	Color     RGB     // final color, clamped to [0,1]
}

// Evaluate returns the field color at normalized coordinate uv.
// It is a pure function of its arguments.
func Evaluate(uv Vec2, t float64, ps PointerState, p *Params) RGB {
	return EvaluateDetail(uv, t, ps, p).Color
}

// EvaluateDetail runs the full pipeline and keeps intermediate stages:
// pointer force, warp chain, band weights, normalization, blend, then
// vignette, grain and gamma in that order.
func EvaluateDetail(uv Vec2, t float64, ps PointerState, p *Params) Sample {
	var s Sample
	s.Stops = p.Stops()

	s.Displaced = ps.Displace(uv, p.Pointer)
	s.Warped = WarpChain(s.Displaced.Scale(p.Scale), t, p.Warp, p.Octaves)

	if s.Stops == 0 {
		return s
	}

	w := s.Weights[:s.Stops]
	for i := range w {
		w[i] = BandWeight(s.Warped, t, p.Bands[i], p.Octaves)
	}
	Normalize(w, p.Epsilon)

	s.Blend = Blend(w, p.Palette)
	s.Vignetted = s.Blend
	if p.Post.Vignette != 0 {
		s.Vignetted = s.Blend.Scale(VignetteFactor(uv, p.Post.Vignette))
	}
	s.Grain = GrainTerm(uv, t, p.Post)
	s.PreGamma = s.Vignetted.Offset(s.Grain)
	s.Color = ApplyGamma(s.PreGamma, p.Post.Gamma).Clamp01()
	return s
}
