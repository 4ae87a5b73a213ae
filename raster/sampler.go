// Package raster evaluates the field densely, once per pixel, on a pool of
// CPU workers.
package raster

import (
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/viewport"
)

// parallelThreshold is the minimum pixel count to use the worker pool.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 4096

// workChunk is a range of rows for a worker to fill.
type workChunk struct {
	start, end int
}

// frameJob is the read-only input shared by all workers for one frame.
type frameJob struct {
	t      float64
	ps     field.PointerState
	params *field.Params
}

// Sampler fills a w×h RGBA buffer with field colors.
// A Sampler is not safe for concurrent Render calls.
type Sampler struct {
	w, h   int
	flipY  bool
	pixels []color.RGBA
	job    frameJob

	numWorkers int

	// Worker pool channels
	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

// NewSampler creates a sampler. workers <= 0 uses GOMAXPROCS.
func NewSampler(w, h, workers int) *Sampler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	s := &Sampler{numWorkers: workers}
	s.Resize(w, h)
	return s
}

// SetFlipY makes row 0 the top of the field frame with y growing upward.
func (s *Sampler) SetFlipY(flip bool) {
	s.flipY = flip
}

// Resize reallocates the buffer if the size changed.
func (s *Sampler) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == s.w && h == s.h && s.pixels != nil {
		return
	}
	s.w, s.h = w, h
	s.pixels = make([]color.RGBA, w*h)
}

// Size returns the buffer dimensions.
func (s *Sampler) Size() (w, h int) {
	return s.w, s.h
}

// Pixels returns the buffer filled by the last Render, row-major.
func (s *Sampler) Pixels() []color.RGBA {
	return s.pixels
}

// At returns the color of pixel (x, y) from the last Render.
func (s *Sampler) At(x, y int) color.RGBA {
	return s.pixels[y*s.w+x]
}

// Render evaluates the field for every pixel at time t.
func (s *Sampler) Render(t float64, ps field.PointerState, p *field.Params) []color.RGBA {
	s.job = frameJob{t: t, ps: ps, params: p}

	if s.w*s.h < parallelThreshold || s.numWorkers == 1 {
		s.fillRows(0, s.h)
		return s.pixels
	}

	if !s.running {
		s.startWorkers()
	}

	chunkSize := (s.h + s.numWorkers - 1) / s.numWorkers
	dispatched := 0
	for w := 0; w < s.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > s.h {
			end = s.h
		}
		if start >= end {
			continue
		}
		s.workChan <- workChunk{start: start, end: end}
		dispatched++
	}
	for i := 0; i < dispatched; i++ {
		<-s.doneChan
	}
	return s.pixels
}

// Image copies the last frame into an image.RGBA.
func (s *Sampler) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	for i, c := range s.pixels {
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}

// Close stops the worker pool. The sampler can still render single-threaded
// or restart the pool on the next large Render.
func (s *Sampler) Close() {
	s.stopWorkers()
}

func (s *Sampler) fillRows(y0, y1 int) {
	job := s.job
	for y := y0; y < y1; y++ {
		row := s.pixels[y*s.w : (y+1)*s.w]
		for x := range row {
			uv := viewport.PixelUV(x, y, s.w, s.h, s.flipY)
			row[x] = field.Evaluate(uv, job.t, job.ps, job.params).RGBA()
		}
	}
}

// startWorkers launches persistent worker goroutines.
func (s *Sampler) startWorkers() {
	s.workChan = make(chan workChunk, s.numWorkers)
	s.doneChan = make(chan struct{}, s.numWorkers)
	s.stopChan = make(chan struct{})
	s.running = true

	for i := 0; i < s.numWorkers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (s *Sampler) stopWorkers() {
	if !s.running {
		return
	}
	close(s.stopChan)
	s.wg.Wait()
	close(s.workChan)
	close(s.doneChan)
	s.running = false
}

func (s *Sampler) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stopChan:
			return
		case chunk, ok := <-s.workChan:
			if !ok {
				return
			}
			s.fillRows(chunk.start, chunk.end)
			s.doneChan <- struct{}{}
		}
	}
}
