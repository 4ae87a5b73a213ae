package field

import (
	"math"
	"testing"
)

func TestHashRange(t *testing.T) {
	for y := -50; y < 50; y++ {
		for x := -50; x < 50; x++ {
			h := Hash(V(float64(x)*0.37, float64(y)*1.13))
			if h < 0 || h >= 1 {
				t.Fatalf("Hash(%d,%d) = %f, want [0,1)", x, y, h)
			}
		}
	}
}

func TestNoiseDeterministic(t *testing.T) {
	points := []Vec2{{0, 0}, {1.5, -2.25}, {123.456, 789.012}, {-0.001, 0.999}}
	for _, p := range points {
		a := Noise(p)
		b := Noise(p)
		if a != b {
			t.Errorf("Noise(%v) not deterministic: %f vs %f", p, a, b)
		}
		if a < 0 || a >= 1 {
			t.Errorf("Noise(%v) = %f, want [0,1)", p, a)
		}
	}
}

func TestNoiseMatchesHashAtLattice(t *testing.T) {
	for _, p := range []Vec2{{0, 0}, {3, 7}, {-4, 2}} {
		if got, want := Noise(p), Hash(p); math.Abs(got-want) > 1e-12 {
			t.Errorf("Noise(%v) = %f, want lattice hash %f", p, got, want)
		}
	}
}

func TestNoiseContinuous(t *testing.T) {
	// Crossing a lattice edge must not jump.
	const eps = 1e-6
	for _, x := range []float64{1, 2, -3} {
		left := Noise(V(x-eps, 0.4))
		right := Noise(V(x+eps, 0.4))
		if math.Abs(left-right) > 1e-4 {
			t.Errorf("discontinuity at x=%f: %f vs %f", x, left, right)
		}
	}
}

func TestFBMDeterministicAndBounded(t *testing.T) {
	for i := 0; i < 200; i++ {
		p := V(float64(i)*0.173, float64(i)*-0.311)
		a := FBM(p, 6)
		if b := FBM(p, 6); a != b {
			t.Fatalf("FBM(%v) not deterministic: %f vs %f", p, a, b)
		}
		// Amplitudes sum to 1 - 2^-octaves.
		if a < 0 || a >= 1 {
			t.Fatalf("FBM(%v) = %f, want [0,1)", p, a)
		}
	}
}

func TestFBMZeroOctaves(t *testing.T) {
	if got := FBM(V(1.2, 3.4), 0); got != 0 {
		t.Errorf("FBM with no octaves = %f, want 0", got)
	}
}

func TestFBMSingleOctaveIsHalfNoise(t *testing.T) {
	p := V(2.7, -1.1)
	if got, want := FBM(p, 1), 0.5*Noise(p); got != want {
		t.Errorf("FBM(p,1) = %f, want %f", got, want)
	}
}

func BenchmarkNoise(b *testing.B) {
	var sink float64
	for i := 0; i < b.N; i++ {
		sink += Noise(V(float64(i)*0.01, 0.5))
	}
	_ = sink
}

func BenchmarkFBM(b *testing.B) {
	var sink float64
	for i := 0; i < b.N; i++ {
		sink += FBM(V(float64(i)*0.01, 0.5), 5)
	}
	_ = sink
}
