package viewport

import (
	"math"
	"testing"

	"github.com/pthm-cable/gradient/field"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestNormalizeCorners(t *testing.T) {
	vp := New(1280, 720)

	tests := []struct {
		sx, sy float32
		want   field.Vec2
	}{
		{0, 0, field.V(0, 0)},
		{640, 360, field.V(0.5, 0.5)},
		{1280, 720, field.V(1, 1)},
	}
	for _, tt := range tests {
		got := vp.Normalize(tt.sx, tt.sy)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("Normalize(%v,%v) = %v, want %v", tt.sx, tt.sy, got, tt.want)
		}
	}
}

func TestNormalizeAllowsOverscan(t *testing.T) {
	vp := New(100, 100)
	got := vp.Normalize(-50, 250)
	if !near(got.X, -0.5) || !near(got.Y, 2.5) {
		t.Errorf("expected unclamped (-0.5, 2.5), got %v", got)
	}
	if vp.Contains(-50, 250) {
		t.Errorf("overscan point reported inside viewport")
	}
}

func TestNormalizeRoundtrip(t *testing.T) {
	for _, flip := range []bool{false, true} {
		vp := &Viewport{X: 20, Y: 40, W: 800, H: 600, FlipY: flip}
		for _, p := range [][2]float32{{20, 40}, {100, 100}, {790, 610}} {
			uv := vp.Normalize(p[0], p[1])
			sx, sy := vp.Denormalize(uv)
			if math.Abs(float64(sx-p[0])) > 0.01 || math.Abs(float64(sy-p[1])) > 0.01 {
				t.Errorf("flip=%v roundtrip %v -> %v -> (%f,%f)", flip, p, uv, sx, sy)
			}
		}
	}
}

func TestFlipY(t *testing.T) {
	vp := &Viewport{W: 200, H: 100, FlipY: true}
	if got := vp.Normalize(0, 0); !near(got.Y, 1) {
		t.Errorf("expected top edge at y=1 when flipped, got %v", got)
	}
	if got := PixelUV(0, 0, 4, 4, true); !near(got.Y, 0.875) {
		t.Errorf("expected flipped pixel center 0.875, got %v", got)
	}
}

func TestResize(t *testing.T) {
	vp := New(1280, 720)
	if vp.Resize(1280, 720) {
		t.Errorf("expected no change for same size")
	}
	if !vp.Resize(640, 480) {
		t.Errorf("expected change")
	}
	if got := vp.Normalize(320, 240); !near(got.X, 0.5) || !near(got.Y, 0.5) {
		t.Errorf("expected center after resize, got %v", got)
	}
}

func TestZeroSizeRests(t *testing.T) {
	vp := New(0, 0)
	if got := vp.Normalize(10, 10); got != field.RestPosition {
		t.Errorf("expected rest position for empty viewport, got %v", got)
	}
}

func TestPixelUVCenters(t *testing.T) {
	got := PixelUV(1, 0, 2, 2, false)
	if !near(got.X, 0.75) || !near(got.Y, 0.25) {
		t.Errorf("PixelUV = %v, want (0.75, 0.25)", got)
	}
}

func TestTouchTrackerFollowsFirstFinger(t *testing.T) {
	var tr TouchTracker

	if _, ok := tr.Update(nil); ok {
		t.Fatal("expected no primary touch")
	}

	p, ok := tr.Update([]Touch{{ID: 7, X: 10, Y: 10}})
	if !ok || p.ID != 7 {
		t.Fatalf("expected touch 7, got %+v", p)
	}

	// A second finger lands first in the list; keep following 7.
	p, _ = tr.Update([]Touch{{ID: 3, X: 50, Y: 50}, {ID: 7, X: 12, Y: 11}})
	if p.ID != 7 || p.X != 12 {
		t.Errorf("expected to keep following touch 7, got %+v", p)
	}

	// First finger lifts; adopt the remaining one.
	p, _ = tr.Update([]Touch{{ID: 3, X: 51, Y: 50}})
	if p.ID != 3 {
		t.Errorf("expected to adopt touch 3, got %+v", p)
	}

	tr.Update(nil)
	if tr.Active() {
		t.Errorf("expected tracker inactive after all touches lift")
	}
}
