// Package scheduler drives a field instance frame by frame.
//
// A Scheduler owns one field.EngineState. Pointer events and parameter edits
// may arrive from any goroutine; they are queued and applied in arrival order
// at the start of the next tick, so the state has a single writer.
package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/telemetry"
)

// ErrBackendLost is returned by a Backend that can never draw again.
// The scheduler stops ticking once it sees it.
var ErrBackendLost = errors.New("render backend lost")

// Frame is everything a backend needs to draw one frame.
// Params must be treated as read-only.
type Frame struct {
	Index   uint64
	Time    float64
	Pointer field.PointerState
	Params  *field.Params
}

// Backend consumes frames. Errors are local to the frame unless they wrap
// ErrBackendLost.
type Backend interface {
	Draw(f Frame) error
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(f Frame) error

// Draw calls fn(f).
func (fn BackendFunc) Draw(f Frame) error { return fn(f) }

// Options configures optional scheduler collaborators.
type Options struct {
	Perf     *telemetry.PerfCollector
	Observer func(f Frame) // called after every frame unless the backend was lost
}

type command struct {
	move   bool
	pos    field.Vec2
	update func(p *field.Params)
}

// Scheduler advances time and pointer dynamics and hands frames to a backend.
type Scheduler struct {
	tickMu  sync.Mutex // serializes ticks and state reads
	state   *field.EngineState
	params  *field.Params
	backend Backend
	opts    Options

	queueMu sync.Mutex
	queue   []command

	lost       atomic.Bool
	drawErrors atomic.Uint64

	ctlMu   sync.Mutex // guards stopCh across Start and Stop
	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a scheduler that owns state and params.
// A nil state starts at rest.
func New(state *field.EngineState, params *field.Params, backend Backend, opts Options) *Scheduler {
	if state == nil {
		state = field.NewEngineState()
	}
	return &Scheduler{
		state:   state,
		params:  params,
		backend: backend,
		opts:    opts,
	}
}

// Submit queues a pointer-move event at normalized position pos.
func (s *Scheduler) Submit(pos field.Vec2) {
	s.queueMu.Lock()
	s.queue = append(s.queue, command{move: true, pos: pos})
	s.queueMu.Unlock()
}

// Configure queues a parameter edit. fn runs between frames, never while a
// backend is drawing.
func (s *Scheduler) Configure(fn func(p *field.Params)) {
	s.queueMu.Lock()
	s.queue = append(s.queue, command{update: fn})
	s.queueMu.Unlock()
}

// Flush applies queued events without advancing a frame.
func (s *Scheduler) Flush() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.drain()
}

// drain must be called with tickMu held.
func (s *Scheduler) drain() {
	s.queueMu.Lock()
	pending := s.queue
	s.queue = nil
	s.queueMu.Unlock()

	for _, c := range pending {
		if c.move {
			s.state.Pointer.OnMove(c.pos, s.params.Pointer)
			continue
		}
		if c.update != nil {
			c.update(s.params)
		}
	}
}

// Tick runs one frame at host timestamp ts (seconds).
// A failed draw is logged and counted; only ErrBackendLost is returned.
func (s *Scheduler) Tick(ts float64) error {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	if s.lost.Load() {
		return ErrBackendLost
	}

	perf := s.opts.Perf
	if perf != nil {
		perf.StartTick()
		perf.StartPhase(telemetry.PhasePointer)
	}

	s.drain()
	s.state.Step(ts, s.params.Pointer)

	frame := Frame{
		Index:   s.state.Frame,
		Time:    s.state.Time.Elapsed,
		Pointer: s.state.Pointer,
		Params:  s.params,
	}

	if perf != nil {
		perf.StartPhase(telemetry.PhaseEvaluate)
	}
	var lostErr error
	if s.backend != nil {
		if err := s.backend.Draw(frame); err != nil {
			if errors.Is(err, ErrBackendLost) {
				s.lost.Store(true)
				slog.Error("backend lost", "frame", frame.Index, "error", err)
				lostErr = fmt.Errorf("frame %d: %w", frame.Index, err)
			} else {
				s.drawErrors.Add(1)
				slog.Warn("frame draw failed", "frame", frame.Index, "error", err)
			}
		}
	}

	if perf != nil {
		perf.StartPhase(telemetry.PhasePresent)
	}
	if s.opts.Observer != nil && lostErr == nil {
		s.opts.Observer(frame)
	}
	if perf != nil {
		perf.EndTick()
		perf.RecordFrame()
	}
	return lostErr
}

// Start runs Tick on its own goroutine every interval using clock timestamps.
// Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(clock Clock, interval time.Duration) {
	if clock == nil {
		clock = SystemClock{}
	}
	s.ctlMu.Lock()
	defer s.ctlMu.Unlock()
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	stop := make(chan struct{})
	s.stopCh = stop
	s.wg.Add(1)
	go s.loop(clock, interval, stop)
}

func (s *Scheduler) loop(clock Clock, interval time.Duration, stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := s.Tick(Seconds(clock.Now())); errors.Is(err, ErrBackendLost) {
				s.running.Store(false)
				return
			}
		}
	}
}

// Stop halts the loop started by Start and waits for it to exit.
// Stopping a stopped scheduler is a no-op. Must not be called from a
// backend or observer.
func (s *Scheduler) Stop() {
	s.ctlMu.Lock()
	if s.running.CompareAndSwap(true, false) {
		close(s.stopCh)
	}
	s.ctlMu.Unlock()
	s.wg.Wait()
}

// Wait blocks until the loop exits on its own or via Stop.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Running reports whether the background loop is active.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Lost reports whether the backend signalled ErrBackendLost.
func (s *Scheduler) Lost() bool {
	return s.lost.Load()
}

// SetBackend swaps the backend between frames and clears a lost state.
func (s *Scheduler) SetBackend(b Backend) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.backend = b
	s.lost.Store(false)
}

// DrawErrors returns the number of frames whose draw failed.
func (s *Scheduler) DrawErrors() uint64 {
	return s.drawErrors.Load()
}

// Pointer returns a copy of the current pointer state.
func (s *Scheduler) Pointer() field.PointerState {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	return s.state.Pointer
}

// Elapsed returns elapsed field time in seconds.
func (s *Scheduler) Elapsed() float64 {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	return s.state.Time.Elapsed
}

// Frames returns the number of frames run.
func (s *Scheduler) Frames() uint64 {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	return s.state.Frame
}

// Params returns a deep copy of the current parameters.
func (s *Scheduler) Params() field.Params {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	return s.params.Clone()
}
