package raster

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pthm-cable/gradient/scheduler"
)

// PNGWriter is a headless backend that renders every Every-th frame with a
// Sampler and writes it to Dir as frame_NNNNNN.png.
type PNGWriter struct {
	Sampler *Sampler
	Dir     string
	Every   uint64

	written int
}

// NewPNGWriter creates dir and returns a writer for it.
func NewPNGWriter(s *Sampler, dir string, every uint64) (*PNGWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating frame directory: %w", err)
	}
	if every == 0 {
		every = 1
	}
	return &PNGWriter{Sampler: s, Dir: dir, Every: every}, nil
}

// Draw implements scheduler.Backend.
func (w *PNGWriter) Draw(f scheduler.Frame) error {
	if (f.Index-1)%w.Every != 0 {
		return nil
	}
	w.Sampler.Render(f.Time, f.Pointer, f.Params)

	path := filepath.Join(w.Dir, fmt.Sprintf("frame_%06d.png", f.Index))
	file, err := os.Create(path)
	if err != nil {
		if os.IsNotExist(err) {
			// The output directory vanished; nothing later can succeed.
			return fmt.Errorf("creating %s: %w", path, scheduler.ErrBackendLost)
		}
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(file, w.Sampler.Image()); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	w.written++
	return nil
}

// Written returns the number of frames written.
func (w *PNGWriter) Written() int {
	return w.written
}
