package field

import "math"

// RestPosition is where the pointer settles when no input has arrived.
var RestPosition = Vec2{0.5, 0.5}

// PointerParams tunes pointer dynamics.
type PointerParams struct {
	MotionCoefficient float64 // chase rate of Current toward Target, (0,1]
	DampingFactor     float64 // per-frame velocity decay, (0,1)
	Gain              float64 // velocity impulse per unit of pointer travel
	Sharpness         float64 // Gaussian falloff constant k of the local force
	Force             float64 // scales the displacement applied to sample coordinates
	ImmediateTarget   bool    // move Target on the event instead of at the next frame
}

// DefaultPointerParams returns the parameters of the stock background.
func DefaultPointerParams() PointerParams {
	return PointerParams{
		MotionCoefficient: 0.08,
		DampingFactor:     0.85,
		Gain:              5.0,
		Sharpness:         12.0,
		Force:             0.35,
		ImmediateTarget:   true,
	}
}

// PointerState is the damped pointer signal that feeds the local force field.
// Positions are normalized to the viewport but not clamped.
type PointerState struct {
	Target   Vec2 // last requested position
	Current  Vec2 // damped position, lags Target
	Velocity Vec2 // inertial impulse, decays every frame
	Last     Vec2 // position of the previous event

	pending    Vec2
	hasPending bool
}

// NewPointerState returns a pointer at rest in the middle of the frame.
func NewPointerState() PointerState {
	return PointerState{
		Target:  RestPosition,
		Current: RestPosition,
		Last:    RestPosition,
	}
}

// OnMove records a pointer-move event at normalized position pos.
// Fast swipes produce large impulses because the increment is proportional
// to the distance travelled since the previous event.
func (s *PointerState) OnMove(pos Vec2, p PointerParams) {
	s.Velocity = s.Velocity.Add(pos.Sub(s.Last).Scale(p.Gain))
	s.Last = pos
	if p.ImmediateTarget {
		s.Target = pos
		return
	}
	s.pending = pos
	s.hasPending = true
}

// Step advances the dynamics by one frame.
func (s *PointerState) Step(p PointerParams) {
	if s.hasPending {
		s.Target = s.pending
		s.hasPending = false
	}
	s.Current = s.Current.Add(s.Target.Sub(s.Current).Scale(p.MotionCoefficient))
	s.Velocity = s.Velocity.Scale(p.DampingFactor)
}

// Influence returns the Gaussian weight exp(-k*|uv-Current|^2).
func (s PointerState) Influence(uv Vec2, k float64) float64 {
	return math.Exp(-k * uv.Sub(s.Current).Len2())
}

// Displace advects uv against the pointer velocity, weighted by Influence,
// so the field near the pointer is dragged along with the swipe while
// distant samples are left alone.
func (s PointerState) Displace(uv Vec2, p PointerParams) Vec2 {
	if s.Velocity.X == 0 && s.Velocity.Y == 0 {
		return uv
	}
	w := s.Influence(uv, p.Sharpness) * p.Force
	return uv.Sub(s.Velocity.Scale(w))
}
