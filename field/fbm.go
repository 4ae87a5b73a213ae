package field

// FBM sums octaves of Noise, doubling frequency and halving amplitude each
// octave from amplitude 0.5 and frequency 1.
//
// The result lies roughly in [0,1) but callers should shape it (Smoothstep)
// rather than rely on a hard range.
func FBM(p Vec2, octaves int) float64 {
	var sum float64
	amp := 0.5
	freq := 1.0
	for o := 0; o < octaves; o++ {
		sum += amp * Noise(p.Scale(freq))
		freq *= 2
		amp *= 0.5
	}
	return sum
}
