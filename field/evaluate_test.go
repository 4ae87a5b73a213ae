package field

import (
	"math"
	"testing"
)

func TestWarpZeroPassesIsIdentity(t *testing.T) {
	p := V(1.25, -3.5)
	if got := WarpChain(p, 42, nil, 5); got != p {
		t.Errorf("WarpChain with no passes = %v, want %v", got, p)
	}
}

func TestWarpChainReproducible(t *testing.T) {
	passes := DefaultWarpPasses()
	p := V(0.3, 0.9)
	a := WarpChain(p, 7.5, passes, 5)
	b := WarpChain(p, 7.5, passes, 5)
	if a != b {
		t.Errorf("warp chain not reproducible: %v vs %v", a, b)
	}
	// Passes compose: the second pass warps the output of the first.
	manual := Warp(Warp(p, 7.5, passes[0], 5), 7.5, passes[1], 5)
	if manual != a {
		t.Errorf("expected chain == pass1(pass0(p)), got %v vs %v", a, manual)
	}
}

func TestWarpMovesWithTime(t *testing.T) {
	passes := DefaultWarpPasses()
	p := V(0.3, 0.9)
	if WarpChain(p, 0, passes, 5) == WarpChain(p, 30, passes, 5) {
		t.Errorf("expected warp to evolve over time")
	}
}

// Scenario: three stops, no pointer input, first frame.
func TestEvaluateAtRestMatchesDefaultState(t *testing.T) {
	p := DefaultParams()
	p.Palette = Palette{{1, 0, 0}, {0, 0, 1}, {0, 1, 0}}
	p.Pointer.MotionCoefficient = 0.08
	p.Pointer.DampingFactor = 0.85

	es := NewEngineState()
	es.Step(1234.5, p.Pointer)
	if es.Time.Elapsed != 0 {
		t.Fatalf("expected elapsed 0 on first frame, got %f", es.Time.Elapsed)
	}

	rest := PointerState{Current: V(0.5, 0.5), Target: V(0.5, 0.5)}
	center := V(0.5, 0.5)
	got := Evaluate(center, es.Time.Elapsed, es.Pointer, &p)
	want := Evaluate(center, 0, rest, &p)
	if got != want {
		t.Errorf("center color %v, want %v", got, want)
	}
}

// Scenario: grain off differs from grain on only by the grain term.
func TestGrainToggleIsAdditive(t *testing.T) {
	on := DefaultParams()
	off := on.Clone()
	off.Post.GrainEnabled = false

	ps := NewPointerState()
	ps.Velocity = V(0.2, 0.1)
	for _, uv := range []Vec2{{0.1, 0.2}, {0.5, 0.5}, {0.77, 0.31}} {
		a := EvaluateDetail(uv, 3.25, ps, &on)
		b := EvaluateDetail(uv, 3.25, ps, &off)
		if b.Grain != 0 {
			t.Fatalf("expected zero grain when off, got %f", b.Grain)
		}
		want := a.PreGamma.Offset(-a.Grain)
		if math.Abs(b.PreGamma.R-want.R) > 1e-12 ||
			math.Abs(b.PreGamma.G-want.G) > 1e-12 ||
			math.Abs(b.PreGamma.B-want.B) > 1e-12 {
			t.Errorf("uv=%v: grain-off %v, want grain-on minus grain %v", uv, b.PreGamma, want)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	p := DefaultParams()
	ps := NewPointerState()
	ps.Velocity = V(0.3, -0.2)
	a := Evaluate(V(0.4, 0.6), 12.0, ps, &p)
	b := Evaluate(V(0.4, 0.6), 12.0, ps, &p)
	if a != b {
		t.Errorf("Evaluate not deterministic: %v vs %v", a, b)
	}
}

func TestEvaluateWeightsNormalized(t *testing.T) {
	p := DefaultParams()
	p.Palette = append(p.Palette, RGB{1, 1, 1})
	ps := NewPointerState()
	for i := 0; i < 50; i++ {
		uv := V(float64(i%10)/10, float64(i/10)/5)
		s := EvaluateDetail(uv, float64(i), ps, &p)
		if s.Stops != 4 {
			t.Fatalf("expected 4 stops, got %d", s.Stops)
		}
		var sum float64
		for _, w := range s.Weights[:s.Stops] {
			sum += w
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("weights at %v sum to %f", uv, sum)
		}
	}
}

func TestEvaluateOutputInRange(t *testing.T) {
	p := DefaultParams()
	ps := NewPointerState()
	ps.Velocity = V(2, 2)
	for i := 0; i < 100; i++ {
		c := Evaluate(V(float64(i)/100, 1-float64(i)/100), float64(i)*0.5, ps, &p)
		for _, v := range []float64{c.R, c.G, c.B} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("channel out of range: %v", c)
			}
		}
	}
}

func TestEvaluatePointerDistortsLocally(t *testing.T) {
	p := DefaultParams()
	calm := NewPointerState()
	swiped := NewPointerState()
	swiped.Velocity = V(0.5, 0)

	near := V(0.5, 0.5)
	far := V(0.02, 0.02)

	if EvaluateDetail(near, 1, calm, &p).Warped == EvaluateDetail(near, 1, swiped, &p).Warped {
		t.Errorf("expected pointer velocity to distort the field near the pointer")
	}
	dn := EvaluateDetail(near, 1, swiped, &p).Displaced.Sub(near).Len()
	df := EvaluateDetail(far, 1, swiped, &p).Displaced.Sub(far).Len()
	if df >= dn {
		t.Errorf("expected weaker distortion far away: near=%g far=%g", dn, df)
	}
}

func TestEvaluateEmptyPaletteIsBlack(t *testing.T) {
	p := DefaultParams()
	p.Palette = nil
	if c := Evaluate(V(0.5, 0.5), 0, NewPointerState(), &p); c != (RGB{}) {
		t.Errorf("expected black for empty palette, got %v", c)
	}
}

func TestEvaluateDoesNotAllocate(t *testing.T) {
	p := DefaultParams()
	ps := NewPointerState()
	allocs := testing.AllocsPerRun(100, func() {
		_ = Evaluate(V(0.3, 0.4), 2.0, ps, &p)
	})
	if allocs != 0 {
		t.Errorf("expected zero allocations per evaluation, got %f", allocs)
	}
}

func TestTimeNeverRewinds(t *testing.T) {
	var ts TimeState
	ts.Advance(100)
	ts.Advance(101.5)
	ts.Advance(100.2)
	if ts.Elapsed != 1.5 {
		t.Errorf("expected elapsed 1.5 after stale timestamp, got %f", ts.Elapsed)
	}
}

func TestIndependentEngineStates(t *testing.T) {
	p := DefaultPointerParams()
	a := NewEngineState()
	b := NewEngineState()
	a.Pointer.OnMove(V(0.9, 0.9), p)
	a.Step(0, p)
	b.Step(0, p)
	if b.Pointer.Velocity.Len() != 0 {
		t.Errorf("expected independent instances, b picked up velocity %v", b.Pointer.Velocity)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	p := DefaultParams()
	ps := NewPointerState()
	var sink RGB
	for i := 0; i < b.N; i++ {
		sink = Evaluate(V(float64(i%512)/512, 0.5), 1.0, ps, &p)
	}
	_ = sink
}
