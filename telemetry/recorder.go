package telemetry

import (
	"log/slog"
	"sync"

	"github.com/pthm-cable/gradient/field"
)

// Recorder samples coverage and perf every N frames, logs them and writes
// them to the output manager. It is meant to be called from the frame
// observer, after the backend has drawn.
type Recorder struct {
	perf   *PerfCollector
	output *OutputManager
	every  uint64
	grid   int

	mu       sync.Mutex
	coverage Coverage
	stats    PerfStats
	rows     int
}

// NewRecorder creates a recorder sampling every `every` frames on a
// grid×grid probe. perf and output may be nil.
func NewRecorder(perf *PerfCollector, output *OutputManager, every, grid int) *Recorder {
	if every < 0 {
		every = 0
	}
	return &Recorder{perf: perf, output: output, every: uint64(every), grid: grid}
}

// Observe records frame if it falls on the sampling interval.
func (r *Recorder) Observe(frame uint64, t float64, ps field.PointerState, p *field.Params) {
	if r.every == 0 || frame%r.every != 0 {
		return
	}

	cov := MeasureCoverage(t, ps, p, r.grid)
	var stats PerfStats
	if r.perf != nil {
		stats = r.perf.Stats()
	}

	r.mu.Lock()
	r.coverage = cov
	r.stats = stats
	r.rows++
	r.mu.Unlock()

	slog.Info("frame",
		"frame", frame,
		"time", t,
		"balance", cov.Balance,
		"spread", cov.Spread(),
		"perf", stats,
	)

	if err := r.output.WriteFrame(NewFrameRecord(frame, t, ps, cov)); err != nil {
		slog.Error("failed to write frame", "error", err)
	}
	if r.perf != nil {
		if err := r.output.WritePerf(stats, frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Latest returns the most recent coverage and perf sample.
func (r *Recorder) Latest() (Coverage, PerfStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.coverage, r.stats
}

// Samples returns how many frames have been recorded.
func (r *Recorder) Samples() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}
