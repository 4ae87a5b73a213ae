// Termfield renders the field in a truecolor terminal. Move the mouse to
// push the field around, g toggles grain, q or Esc quits.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/scheduler"
	"github.com/pthm-cable/gradient/telemetry"
	"github.com/pthm-cable/gradient/term"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	fps := flag.Int("fps", 30, "Frames per second")
	logPath := flag.String("log", "", "Write JSON logs to this file (the terminal is in use)")
	flag.Parse()

	// The screen owns stdout, so logs go to a file or nowhere.
	logOut, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if *logPath != "" {
		logOut, err = os.Create(*logPath)
	}
	if err != nil {
		slog.Error("failed to open log", "error", err)
		os.Exit(1)
	}
	defer logOut.Close()
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init screen", "error", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	backend := term.NewBackend(screen, cfg.Backend.Workers, cfg.Motion.FlipY)
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	recorder := telemetry.NewRecorder(perf, nil, cfg.Telemetry.LogEvery, cfg.Telemetry.ProbeGrid)
	params := cfg.FieldParams()
	sched := scheduler.New(field.NewEngineState(), &params, backend, scheduler.Options{
		Perf: perf,
		Observer: func(f scheduler.Frame) {
			recorder.Observe(f.Index, f.Time, f.Pointer, f.Params)
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *fps <= 0 {
		*fps = 30
	}
	runErr := term.Run(ctx, screen, sched, backend, time.Second/time.Duration(*fps))

	screen.Fini()
	backend.Close()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		slog.Error("terminal run failed", "error", runErr)
		os.Exit(1)
	}
	slog.Info("terminal run finished", "frames", sched.Frames())
}
