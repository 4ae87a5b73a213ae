package field

import (
	"math"
	"testing"
)

func TestPointerRestDefault(t *testing.T) {
	s := NewPointerState()
	p := DefaultPointerParams()
	for i := 0; i < 100; i++ {
		s.Step(p)
	}
	if s.Current != RestPosition {
		t.Errorf("expected pointer to rest at %v, got %v", RestPosition, s.Current)
	}
	if s.Velocity.Len() != 0 {
		t.Errorf("expected zero velocity without input, got %v", s.Velocity)
	}
}

func TestPointerImpulseAndDecay(t *testing.T) {
	s := NewPointerState()
	p := DefaultPointerParams()
	p.Gain = 5.0
	p.DampingFactor = 0.85

	s.OnMove(V(0.6, 0.5), p)
	if math.Abs(s.Velocity.X-0.5) > 1e-9 {
		t.Fatalf("expected velocity.x 0.5 after event, got %f", s.Velocity.X)
	}
	if s.Velocity.Y != 0 {
		t.Errorf("expected velocity.y 0, got %f", s.Velocity.Y)
	}

	s.Step(p)
	if want := 0.5 * 0.85; math.Abs(s.Velocity.X-want) > 1e-9 {
		t.Errorf("expected velocity.x %f after one frame, got %f", want, s.Velocity.X)
	}
}

func TestPointerDampingConvergence(t *testing.T) {
	for _, d := range []float64{0.5, 0.85, 0.95} {
		p := DefaultPointerParams()
		p.DampingFactor = d
		s := NewPointerState()
		s.Velocity = V(0.3, -0.4)
		v0 := s.Velocity.Len()

		n := 0
		for s.Velocity.Len() >= 1e-4 {
			s.Step(p)
			n++
			want := v0 * math.Pow(d, float64(n))
			if math.Abs(s.Velocity.Len()-want) > 1e-12 {
				t.Fatalf("d=%.2f frame %d: |v|=%g, want %g", d, n, s.Velocity.Len(), want)
			}
			if n > 10000 {
				t.Fatalf("d=%.2f: velocity did not decay below 1e-4", d)
			}
		}
		// Analytic bound: v0*d^n < 1e-4.
		bound := int(math.Ceil(math.Log(1e-4/v0) / math.Log(d)))
		if n != bound {
			t.Errorf("d=%.2f: took %d frames, expected %d", d, n, bound)
		}
	}
}

func TestPointerChaseMonotonic(t *testing.T) {
	for _, c := range []float64{0.01, 0.08, 0.5, 0.99} {
		p := DefaultPointerParams()
		p.MotionCoefficient = c
		s := NewPointerState()
		s.OnMove(V(0.9, 0.1), p)

		prev := s.Target.Sub(s.Current).Len()
		for i := 0; i < 2000; i++ {
			s.Step(p)
			if s.Current.X > s.Target.X || s.Current.Y < s.Target.Y {
				t.Fatalf("c=%.2f: overshoot at frame %d: current=%v target=%v", c, i, s.Current, s.Target)
			}
			dist := s.Target.Sub(s.Current).Len()
			if dist > prev {
				t.Fatalf("c=%.2f: distance grew at frame %d: %g > %g", c, i, dist, prev)
			}
			prev = dist
		}
		if prev > 1e-6 {
			t.Errorf("c=%.2f: did not converge, distance %g", c, prev)
		}
	}
}

func TestPointerDeferredTarget(t *testing.T) {
	p := DefaultPointerParams()
	p.ImmediateTarget = false
	s := NewPointerState()

	s.OnMove(V(0.2, 0.8), p)
	if s.Target != RestPosition {
		t.Fatalf("deferred mode moved target on event: %v", s.Target)
	}
	s.Step(p)
	if s.Target != V(0.2, 0.8) {
		t.Errorf("expected target applied on frame, got %v", s.Target)
	}
}

func TestPointerOverscanNotClamped(t *testing.T) {
	p := DefaultPointerParams()
	s := NewPointerState()
	s.OnMove(V(1.4, -0.3), p)
	if s.Target != V(1.4, -0.3) {
		t.Errorf("expected unclamped target, got %v", s.Target)
	}
}

func TestPointerForceIsLocal(t *testing.T) {
	p := DefaultPointerParams()
	s := NewPointerState()
	s.Velocity = V(0.4, 0)

	near := s.Displace(s.Current, p).Sub(s.Current).Len()
	farUV := V(0.0, 0.0)
	far := s.Displace(farUV, p).Sub(farUV).Len()

	if near <= far {
		t.Errorf("expected stronger displacement near pointer: near=%g far=%g", near, far)
	}
	if math.Abs(near-0.4*p.Force) > 1e-12 {
		t.Errorf("expected full force at pointer, got %g", near)
	}
	if s.Influence(farUV, p.Sharpness) > 0.05 {
		t.Errorf("expected small influence in the corner, got %g", s.Influence(farUV, p.Sharpness))
	}
}

func TestEventOrderMatters(t *testing.T) {
	p := DefaultPointerParams()
	a := NewPointerState()
	b := NewPointerState()

	a.OnMove(V(0.6, 0.5), p)
	a.OnMove(V(0.9, 0.5), p)

	b.OnMove(V(0.9, 0.5), p)
	b.OnMove(V(0.6, 0.5), p)

	if a.Target == b.Target {
		t.Errorf("expected final target to depend on event order")
	}
}
