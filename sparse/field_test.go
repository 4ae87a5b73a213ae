package sparse

import (
	"math"
	"testing"

	"github.com/pthm-cable/gradient/field"
)

func TestSyncTracksPalette(t *testing.T) {
	f := New()
	f.Sync(3)
	if f.Len() != 3 {
		t.Fatalf("len = %d, want 3", f.Len())
	}
	f.Sync(4)
	if b, ok := f.BlobFor(3); !ok || b.Role != RoleOrbit {
		t.Errorf("expected orbit blob for fourth stop, got %+v", b)
	}
	f.Sync(1)
	if f.Len() != 1 {
		t.Fatalf("len = %d after shrink, want 1", f.Len())
	}
	if _, ok := f.BlobFor(1); ok {
		t.Errorf("expected removed blob to be gone")
	}
	if len(f.Points()) != 1 {
		t.Errorf("expected one drawable point")
	}
	f.Sync(9)
	if f.Len() != field.MaxStops {
		t.Errorf("len = %d, want capped at %d", f.Len(), field.MaxStops)
	}
}

func TestUpdateAnchorsFollowPointer(t *testing.T) {
	p := field.DefaultParams()
	ps := field.NewPointerState()
	ps.Current = field.V(0.2, 0.3)

	f := New()
	f.Update(0, ps, &p)

	byRole := map[Role]Point{}
	for _, pt := range f.Points() {
		byRole[pt.Role] = pt
	}

	follow := byRole[RoleFollow].Pos
	// sin(0)=0, cos(0)=1
	if math.Abs(follow.X-0.2) > 1e-12 || math.Abs(follow.Y-0.4) > 1e-12 {
		t.Errorf("follow anchor = %v, want (0.2, 0.4)", follow)
	}
	mirror := byRole[RoleMirror].Pos
	if math.Abs(mirror.X-0.8) > 1e-12 || math.Abs(mirror.Y-0.7) > 1e-12 {
		t.Errorf("mirror anchor = %v, want (0.8, 0.7)", mirror)
	}
	if byRole[RoleCenter].Pos != field.RestPosition {
		t.Errorf("center anchor = %v", byRole[RoleCenter].Pos)
	}
}

func TestUpdateTintsFromField(t *testing.T) {
	p := field.DefaultParams()
	ps := field.NewPointerState()
	f := New()
	f.Update(2.0, ps, &p)

	for _, pt := range f.Points() {
		want := field.Evaluate(pt.Pos, 2.0, ps, &p)
		if pt.Color != want {
			t.Errorf("stop %d tint %v, want field color %v", pt.Stop, pt.Color, want)
		}
		if pt.Alpha < minAlpha || pt.Alpha > 1 {
			t.Errorf("stop %d alpha %f out of range", pt.Stop, pt.Alpha)
		}
	}
}

func TestPointsDrawLargestFirst(t *testing.T) {
	p := field.DefaultParams()
	p.Palette = append(p.Palette, field.RGB{R: 1, G: 1, B: 1})
	f := New()
	f.Update(1, field.NewPointerState(), &p)

	pts := f.Points()
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Radius > pts[i-1].Radius {
			t.Errorf("points not sorted by radius: %v", pts)
		}
	}
	if pts[0].Role != RoleCenter {
		t.Errorf("expected center blob drawn first, got %v", pts[0].Role)
	}
}
