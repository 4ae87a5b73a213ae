package viewport

// Touch is one active touch point in screen pixels.
type Touch struct {
	ID   int32
	X, Y float32
}

// TouchTracker reduces multi-touch input to a single pointer: the first
// finger down is followed until it lifts, then the next first touch is adopted.
type TouchTracker struct {
	id     int32
	active bool
}

// Update selects the primary touch from the currently active points.
// ok is false when no touch is active.
func (t *TouchTracker) Update(touches []Touch) (primary Touch, ok bool) {
	if len(touches) == 0 {
		t.active = false
		return Touch{}, false
	}
	if t.active {
		for _, tc := range touches {
			if tc.ID == t.id {
				return tc, true
			}
		}
	}
	t.id = touches[0].ID
	t.active = true
	return touches[0], true
}

// Active reports whether a touch is being followed.
func (t *TouchTracker) Active() bool {
	return t.active
}
