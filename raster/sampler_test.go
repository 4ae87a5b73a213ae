package raster

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/scheduler"
	"github.com/pthm-cable/gradient/viewport"
)

func TestSamplerMatchesEvaluate(t *testing.T) {
	p := field.DefaultParams()
	ps := field.NewPointerState()
	ps.Velocity = field.V(0.2, -0.1)

	s := NewSampler(16, 9, 1)
	s.Render(2.5, ps, &p)

	for _, px := range [][2]int{{0, 0}, {8, 4}, {15, 8}} {
		uv := viewport.PixelUV(px[0], px[1], 16, 9, false)
		want := field.Evaluate(uv, 2.5, ps, &p).RGBA()
		if got := s.At(px[0], px[1]); got != want {
			t.Errorf("pixel %v = %v, want %v", px, got, want)
		}
	}
}

func TestParallelMatchesSingleThreaded(t *testing.T) {
	p := field.DefaultParams()
	ps := field.NewPointerState()

	single := NewSampler(96, 64, 1)
	pool := NewSampler(96, 64, 4)
	defer pool.Close()

	a := single.Render(1.0, ps, &p)
	b := pool.Render(1.0, ps, &p)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d differs: %v vs %v", i, a[i], b[i])
		}
	}

	// Render again after a resize to exercise a reused pool.
	pool.Resize(80, 80)
	single.Resize(80, 80)
	a = single.Render(3.0, ps, &p)
	b = pool.Render(3.0, ps, &p)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("after resize pixel %d differs", i)
		}
	}
}

func TestSamplerResizeClamps(t *testing.T) {
	s := NewSampler(0, -3, 1)
	if w, h := s.Size(); w != 1 || h != 1 {
		t.Errorf("size = %dx%d, want 1x1", w, h)
	}
}

func TestPNGWriterWritesEveryNth(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	w, err := NewPNGWriter(NewSampler(8, 8, 1), dir, 2)
	if err != nil {
		t.Fatal(err)
	}

	p := field.DefaultParams()
	sched := scheduler.New(nil, &p, w, scheduler.Options{})
	for i := 0; i < 5; i++ {
		if err := sched.Tick(float64(i) / 60); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	if w.Written() != 3 {
		t.Fatalf("written = %d, want 3 (frames 1, 3, 5)", w.Written())
	}
	f, err := os.Open(filepath.Join(dir, "frame_000003.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding frame: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("frame size %v, want 8x8", b)
	}
}

func BenchmarkSampler(b *testing.B) {
	p := field.DefaultParams()
	ps := field.NewPointerState()
	s := NewSampler(320, 180, 0)
	defer s.Close()
	for i := 0; i < b.N; i++ {
		s.Render(float64(i)/60, ps, &p)
	}
}
