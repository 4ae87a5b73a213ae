package field

import "math"

// MaxStops is the largest palette the compositor blends.
const MaxStops = 4

// MaxOctaves and MaxWarpPasses bound the fBm and warp chain so every backend,
// including the GLSL one with fixed-size arrays, renders the same field.
const (
	MaxOctaves    = 8
	MaxWarpPasses = 4
)

// DefaultEpsilon keeps weight normalization defined when every weight is zero.
const DefaultEpsilon = 1e-4

// Palette is an ordered list of color stops; stop i is driven by band i.
type Palette []RGB

// Band shapes the weight field of one color stop.
type Band struct {
	Frequency float64 // scale applied to the warped coordinate
	Phase     Vec2    // static offset, decorrelates stops
	Drift     Vec2    // offset per second of elapsed time
	Lo, Hi    float64 // smoothstep edges
}

// DefaultBands returns four decorrelated bands, one per possible stop.
func DefaultBands() []Band {
	return []Band{
		{Frequency: 0.9, Phase: V(0.0, 0.0), Drift: V(0.020, 0.010), Lo: 0.30, Hi: 0.62},
		{Frequency: 1.3, Phase: V(3.7, 1.9), Drift: V(-0.015, 0.020), Lo: 0.32, Hi: 0.64},
		{Frequency: 0.7, Phase: V(7.1, 5.3), Drift: V(0.010, -0.018), Lo: 0.28, Hi: 0.60},
		{Frequency: 1.7, Phase: V(2.3, 8.9), Drift: V(-0.012, -0.011), Lo: 0.35, Hi: 0.66},
	}
}

// Post holds the post-processing stage parameters.
type Post struct {
	Vignette       float64 // radial falloff strength; 0 disables
	GrainEnabled   bool
	GrainGain      float64 // gain used while grain is enabled
	GrainFrequency float64
	GrainSpeed     float64
	Gamma          float64 // per-channel exponent applied last
}

// DefaultGrainGain is the grain gain of the stock "noise" toggle.
const DefaultGrainGain = 0.04

// DefaultPost returns the stock post-processing chain.
func DefaultPost() Post {
	return Post{
		Vignette:       1.1,
		GrainEnabled:   true,
		GrainGain:      DefaultGrainGain,
		GrainFrequency: 420,
		GrainSpeed:     37,
		Gamma:          1.3,
	}
}

// EffectiveGrain returns the grain gain in use, 0 while grain is disabled.
func (p Post) EffectiveGrain() float64 {
	if !p.GrainEnabled {
		return 0
	}
	return p.GrainGain
}

// Smoothstep is the Hermite step between edges lo and hi.
func Smoothstep(lo, hi, x float64) float64 {
	if hi == lo {
		if x < lo {
			return 0
		}
		return 1
	}
	t := clamp01((x - lo) / (hi - lo))
	return t * t * (3 - 2*t)
}

// BandWeight samples the shaped weight of band b at warped coordinate w.
func BandWeight(w Vec2, t float64, b Band, octaves int) float64 {
	q := w.Scale(b.Frequency).Add(b.Phase).Add(b.Drift.Scale(t))
	return Smoothstep(b.Lo, b.Hi, FBM(q, octaves))
}

// Normalize rescales weights in place so they sum to one.
//
// Each weight receives an eps/n share before dividing by sum+eps, so the
// result is a uniform blend when all raw weights are zero and is never a
// division by zero.
func Normalize(w []float64, eps float64) {
	n := len(w)
	if n == 0 {
		return
	}
	var sum float64
	for _, v := range w {
		sum += v
	}
	prior := eps / float64(n)
	inv := 1 / (sum + eps)
	for i := range w {
		w[i] = (w[i] + prior) * inv
	}
}

// Blend mixes palette colors by normalized weights.
func Blend(w []float64, palette Palette) RGB {
	var out RGB
	for i, v := range w {
		if i >= len(palette) {
			break
		}
		out = out.Add(palette[i].Scale(v))
	}
	return out
}

// VignetteFactor is the radial falloff at uv, clamped to [0,1].
func VignetteFactor(uv Vec2, strength float64) float64 {
	d := uv.Sub(V(0.5, 0.5))
	return clamp01(1 - strength*d.Len2())
}

// GrainTerm is the additive grain contribution at uv and time t.
func GrainTerm(uv Vec2, t float64, p Post) float64 {
	gain := p.EffectiveGrain()
	if gain == 0 {
		return 0
	}
	shift := t * p.GrainSpeed
	return Noise(uv.Scale(p.GrainFrequency).Add(Vec2{shift, shift})) * gain
}

// ApplyGamma raises each channel to exponent g. Negative channels clamp to 0.
func ApplyGamma(c RGB, g float64) RGB {
	if g == 1 {
		return c
	}
	return RGB{
		math.Pow(math.Max(c.R, 0), g),
		math.Pow(math.Max(c.G, 0), g),
		math.Pow(math.Max(c.B, 0), g),
	}
}
