// Package app runs the interactive raylib window: input, scheduler, backend
// switching and the control panel.
package app

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/renderer"
	"github.com/pthm-cable/gradient/scheduler"
	"github.com/pthm-cable/gradient/telemetry"
	"github.com/pthm-cable/gradient/ui"
	"github.com/pthm-cable/gradient/viewport"
)

const panelWidth = 260

// App holds the window-side state around one scheduler.
type App struct {
	cfg  *config.Config
	opts Options

	vp      *viewport.Viewport
	touches viewport.TouchTracker
	sched   *scheduler.Scheduler
	backend renderer.Backend
	kind    string
	clock   scheduler.Clock
	start   time.Time

	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
	recorder *telemetry.Recorder

	panel *ui.ControlPanel
	hud   *ui.HUD
	stats *ui.StatsPanel

	showStats bool
	quit      bool
}

// New creates the app. The raylib window must already be open.
func New(cfg *config.Config, opts Options) (*App, error) {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	vp := viewport.New(w, h)
	vp.FlipY = cfg.Motion.FlipY

	backend, err := renderer.New(cfg, vp)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	a := &App{
		cfg:     cfg,
		opts:    opts,
		vp:      vp,
		backend: backend,
		kind:    cfg.Backend.Kind,
		clock:   scheduler.SystemClock{},
		perf:    telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:  output,
		hud:     ui.NewHUD(),
	}
	a.recorder = telemetry.NewRecorder(a.perf, output, cfg.Telemetry.LogEvery, cfg.Telemetry.ProbeGrid)

	px, py := ui.Place(ui.AnchorTopRight, int32(w), panelWidth, 10)
	a.panel = ui.NewControlPanel(px, py, panelWidth)
	a.stats = ui.NewStatsPanel(10, 70, 220)

	params := cfg.FieldParams()
	a.sched = scheduler.New(field.NewEngineState(), &params, backend, scheduler.Options{
		Perf: a.perf,
		Observer: func(f scheduler.Frame) {
			a.recorder.Observe(f.Index, f.Time, f.Pointer, f.Params)
		},
	})
	a.start = a.clock.Now()

	slog.Info("app started",
		"backend", a.kind,
		"width", w,
		"height", h,
		"stops", len(params.Palette),
	)
	return a, nil
}

// Frame handles input, renders one frame and draws the UI. It returns false
// once the app should close.
func (a *App) Frame() bool {
	a.handleInput()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	now := a.clock.Now()
	if err := a.sched.Tick(scheduler.Seconds(now)); err != nil {
		slog.Error("frame failed", "backend", a.kind, "error", err)
		a.recoverBackend()
	}

	a.drawUI()
	rl.EndDrawing()

	if a.opts.MaxFrames > 0 && a.sched.Frames() >= uint64(a.opts.MaxFrames) {
		slog.Info("max frames reached", "frames", a.sched.Frames())
		return false
	}
	return !a.quit
}

// recoverBackend rebuilds the current backend after it was lost.
func (a *App) recoverBackend() {
	if !a.sched.Lost() || !rl.IsWindowReady() {
		a.quit = true
		return
	}
	a.switchBackend(a.kind)
}

// switchBackend replaces the backend with a new one of the given kind.
func (a *App) switchBackend(kind string) {
	prev := a.cfg.Backend.Kind
	a.cfg.Backend.Kind = kind
	b, err := renderer.New(a.cfg, a.vp)
	if err != nil {
		a.cfg.Backend.Kind = prev
		slog.Error("failed to create backend", "kind", kind, "error", err)
		return
	}
	a.backend.Unload()
	a.backend = b
	a.kind = kind
	a.sched.SetBackend(b)
	slog.Info("backend switched", "kind", kind)
}

func (a *App) drawUI() {
	params := a.sched.Params()

	a.hud.Draw(ui.HUDData{
		Backend:    a.kind,
		Frame:      a.sched.Frames(),
		FPS:        rl.GetFPS(),
		Stops:      params.Stops(),
		Pointer:    a.sched.Pointer(),
		DrawErrors: a.sched.DrawErrors(),
	})
	a.hud.DrawControls(int32(a.vp.H), "[G] noise  [H] panel  [I] stats  [C] copy embed  [B] backend  [S] save  [F11] fullscreen")

	if a.showStats {
		cov, perf := a.recorder.Latest()
		a.stats.Draw(perf, cov, params.Palette)
	}

	res := a.panel.Draw(&params)
	for _, edit := range res.Edits {
		a.sched.Configure(edit)
	}
	if res.CopyEmbed {
		a.copyEmbed()
	}
}

// Unload releases the backend and closes output files.
func (a *App) Unload() {
	a.backend.Unload()
	if err := a.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("app stopped",
		"frames", a.sched.Frames(),
		"draw_errors", a.sched.DrawErrors(),
		"uptime", a.clock.Now().Sub(a.start).Round(time.Millisecond),
	)
}

// Scheduler exposes the scheduler driving the window.
func (a *App) Scheduler() *scheduler.Scheduler {
	return a.sched
}
