// Package term renders the field in a truecolor terminal using half-block
// cells, two field samples per character.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gradient/raster"
	"github.com/pthm-cable/gradient/scheduler"
	"github.com/pthm-cable/gradient/viewport"
)

// halfBlock paints its foreground in the upper half of the cell and its
// background in the lower half.
const halfBlock = '▀'

// Backend draws frames onto a tcell screen.
type Backend struct {
	screen  tcell.Screen
	sampler *raster.Sampler
	vp      *viewport.Viewport
}

// NewBackend creates a terminal backend. The viewport is kept in cell units
// so mouse positions normalize against the same frame the sampler covers.
func NewBackend(screen tcell.Screen, workers int, flipY bool) *Backend {
	w, h := screen.Size()
	b := &Backend{
		screen:  screen,
		sampler: raster.NewSampler(w, h*2, workers),
		vp:      &viewport.Viewport{W: float32(w), H: float32(h), FlipY: flipY},
	}
	b.sampler.SetFlipY(flipY)
	return b
}

// Viewport returns the cell-space viewport.
func (b *Backend) Viewport() *viewport.Viewport {
	return b.vp
}

// Normalize converts a mouse cell position into field coordinates.
func (b *Backend) Normalize(x, y int) (nx, ny float64) {
	p := b.vp.Normalize(float32(x)+0.5, float32(y)+0.5)
	return p.X, p.Y
}

// Resize follows the screen size.
func (b *Backend) Resize() {
	w, h := b.screen.Size()
	b.vp.Resize(float32(w), float32(h))
	b.sampler.Resize(w, h*2)
}

// Draw implements scheduler.Backend.
func (b *Backend) Draw(f scheduler.Frame) error {
	w, h := b.screen.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	if sw, sh := b.sampler.Size(); sw != w || sh != h*2 {
		b.Resize()
	}

	b.sampler.Render(f.Time, f.Pointer, f.Params)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := b.sampler.At(x, y*2)
			bottom := b.sampler.At(x, y*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			b.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	b.screen.Show()
	return nil
}

// Close stops the sampler workers.
func (b *Backend) Close() {
	b.sampler.Close()
}
