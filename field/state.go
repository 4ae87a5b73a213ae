package field

// TimeState tracks elapsed seconds since the first frame. It never rewinds.
type TimeState struct {
	Elapsed float64

	origin  float64
	started bool
}

// Advance moves time to the host timestamp ts (seconds, any epoch).
// The first call pins the origin so elapsed time starts at zero.
// Timestamps older than the current time are ignored.
func (t *TimeState) Advance(ts float64) {
	if !t.started {
		t.origin = ts
		t.started = true
	}
	if e := ts - t.origin; e > t.Elapsed {
		t.Elapsed = e
	}
}

// EngineState is the mutable state of one field instance. It is owned by a
// single writer (the frame scheduler); independent instances do not share
// anything.
type EngineState struct {
	Time    TimeState
	Pointer PointerState
	Frame   uint64
}

// NewEngineState returns a state at rest with no frames run.
func NewEngineState() *EngineState {
	return &EngineState{Pointer: NewPointerState()}
}

// Step advances time to ts and runs one frame of pointer dynamics.
func (e *EngineState) Step(ts float64, p PointerParams) {
	e.Time.Advance(ts)
	e.Pointer.Step(p)
	e.Frame++
}
