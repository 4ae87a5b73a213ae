package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/scheduler"
	"github.com/pthm-cable/gradient/sparse"
	"github.com/pthm-cable/gradient/viewport"
)

// SparseBackend draws the field as a few overlapping radial gradients.
// It costs a handful of field evaluations per frame instead of one per pixel.
type SparseBackend struct {
	blobs *sparse.Field
	vp    *viewport.Viewport
}

// NewSparseBackend creates a sparse backend drawing into vp.
func NewSparseBackend(vp *viewport.Viewport) *SparseBackend {
	return &SparseBackend{blobs: sparse.New(), vp: vp}
}

// Resize is a no-op; the viewport is shared with the input layer.
func (b *SparseBackend) Resize(w, h int32) {}

// Draw implements scheduler.Backend.
func (b *SparseBackend) Draw(f scheduler.Frame) error {
	if !rl.IsWindowReady() {
		return scheduler.ErrBackendLost
	}

	b.blobs.Update(f.Time, f.Pointer, f.Params)

	// Base wash is the field color at the frame center.
	base := field.Evaluate(field.RestPosition, f.Time, f.Pointer, f.Params).RGBA()
	rl.DrawRectangle(int32(b.vp.X), int32(b.vp.Y), int32(b.vp.W), int32(b.vp.H), base)

	extent := b.vp.W
	if b.vp.H > extent {
		extent = b.vp.H
	}
	for _, pt := range b.blobs.Points() {
		x, y := b.vp.Denormalize(pt.Pos)
		inner := pt.Color.RGBA()
		inner.A = uint8(pt.Alpha * 255)
		outer := color.RGBA{R: inner.R, G: inner.G, B: inner.B, A: 0}
		rl.DrawCircleGradient(int32(x), int32(y), float32(pt.Radius)*extent, inner, outer)
	}
	return nil
}

// Unload is a no-op; the sparse backend holds no GPU resources.
func (b *SparseBackend) Unload() {}
