package field

import (
	"math"
	"testing"
)

func TestNormalizeSumsToOne(t *testing.T) {
	const delta = 1e-9
	cases := []struct {
		name    string
		weights []float64
	}{
		{"all zero", []float64{0, 0, 0}},
		{"single", []float64{0.7}},
		{"mixed", []float64{0.1, 0.0, 0.9, 0.4}},
		{"tiny", []float64{1e-12, 1e-12, 0}},
		{"saturated", []float64{1, 1, 1, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := append([]float64(nil), tc.weights...)
			Normalize(w, DefaultEpsilon)
			var sum float64
			for _, v := range w {
				if math.IsNaN(v) || v < 0 {
					t.Fatalf("invalid normalized weight %f", v)
				}
				sum += v
			}
			if sum <= 1-delta || sum > 1+1e-12 {
				t.Errorf("normalized sum = %.15f, want (1-δ, 1]", sum)
			}
		})
	}
}

func TestNormalizeAllZeroIsUniform(t *testing.T) {
	w := []float64{0, 0, 0, 0}
	Normalize(w, DefaultEpsilon)
	for i, v := range w {
		if math.Abs(v-0.25) > 1e-12 {
			t.Errorf("weight %d = %f, want 0.25", i, v)
		}
	}
}

func TestNormalizePreservesRatios(t *testing.T) {
	w := []float64{0.2, 0.6}
	Normalize(w, DefaultEpsilon)
	if w[1] <= w[0] {
		t.Errorf("expected ordering preserved, got %v", w)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		lo, hi, x, want float64
	}{
		{0, 1, -1, 0},
		{0, 1, 0, 0},
		{0, 1, 0.5, 0.5},
		{0, 1, 1, 1},
		{0, 1, 2, 1},
		{0.3, 0.3, 0.2, 0},
		{0.3, 0.3, 0.4, 1},
	}
	for _, tt := range tests {
		if got := Smoothstep(tt.lo, tt.hi, tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Smoothstep(%v,%v,%v) = %v, want %v", tt.lo, tt.hi, tt.x, got, tt.want)
		}
	}
}

func TestBlendWeights(t *testing.T) {
	palette := Palette{{1, 0, 0}, {0, 0, 1}}
	got := Blend([]float64{0.25, 0.75}, palette)
	want := RGB{0.25, 0, 0.75}
	if got != want {
		t.Errorf("Blend = %v, want %v", got, want)
	}
}

func TestVignetteFactorClamped(t *testing.T) {
	if f := VignetteFactor(V(0.5, 0.5), 5); f != 1 {
		t.Errorf("expected no falloff at center, got %f", f)
	}
	if f := VignetteFactor(V(-3, 4), 5); f != 0 {
		t.Errorf("expected clamp to 0 far away, got %f", f)
	}
	center := VignetteFactor(V(0.5, 0.5), 1.1)
	corner := VignetteFactor(V(0, 0), 1.1)
	if corner >= center {
		t.Errorf("expected darker corner: corner=%f center=%f", corner, center)
	}
}

func TestGrainDisabledIsZero(t *testing.T) {
	p := DefaultPost()
	p.GrainEnabled = false
	if g := GrainTerm(V(0.3, 0.7), 12.5, p); g != 0 {
		t.Errorf("expected no grain when disabled, got %f", g)
	}
}

func TestApplyGamma(t *testing.T) {
	c := ApplyGamma(RGB{0.5, -0.2, 1}, 2)
	if math.Abs(c.R-0.25) > 1e-12 || c.G != 0 || c.B != 1 {
		t.Errorf("unexpected gamma result %v", c)
	}
}

func TestBandsAreDecorrelated(t *testing.T) {
	bands := DefaultBands()
	var diff float64
	for i := 0; i < 64; i++ {
		w := V(float64(i)*0.21, float64(i)*0.13)
		diff += math.Abs(BandWeight(w, 0, bands[0], 5) - BandWeight(w, 0, bands[1], 5))
	}
	if diff < 1 {
		t.Errorf("expected independent band fields, total difference only %f", diff)
	}
}
