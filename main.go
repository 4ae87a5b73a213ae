package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gradient/app"
	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/raster"
	"github.com/pthm-cable/gradient/scheduler"
	"github.com/pthm-cable/gradient/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Render without a window (PNG frames + CSV)")
	frames := flag.Int("frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and PNG frames")
	pngEvery := flag.Int("png-every", 0, "Headless: write every Nth frame as PNG (0 = none)")
	backend := flag.String("backend", "", "Backend kind: dense, shader or sparse (empty = use config)")
	pointerDemo := flag.Bool("pointer-demo", false, "Drive the pointer along a scripted path")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *backend != "" {
		cfg.Backend.Kind = *backend
		if err := cfg.Validate(); err != nil {
			slog.Error("invalid backend", "error", err)
			os.Exit(1)
		}
	}

	opts := app.Options{
		OutputDir:   *outputDir,
		PointerDemo: *pointerDemo,
		MaxFrames:   *frames,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *pngEvery); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Gradient")
	defer rl.CloseWindow()
	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a, err := app.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer a.Unload()

	for !rl.WindowShouldClose() {
		if !a.Frame() {
			break
		}
	}
}

// runHeadless renders with the CPU sampler. With a frame limit the run is
// stepped on synthetic timestamps and is reproducible; without one the
// scheduler loop runs on the wall clock until interrupted.
func runHeadless(cfg *config.Config, opts app.Options, pngEvery int) error {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		return err
	}

	scale := cfg.Backend.ResolutionScale
	w := int(float64(cfg.Screen.Width) * scale)
	h := int(float64(cfg.Screen.Height) * scale)
	sampler := raster.NewSampler(w, h, cfg.Backend.Workers)
	defer sampler.Close()
	sampler.SetFlipY(cfg.Motion.FlipY)

	var backend scheduler.Backend = scheduler.BackendFunc(func(f scheduler.Frame) error {
		sampler.Render(f.Time, f.Pointer, f.Params)
		return nil
	})
	var pngs *raster.PNGWriter
	if pngEvery > 0 && output == nil {
		slog.Warn("png frames need -output-dir, skipping")
	}
	if pngEvery > 0 && output != nil {
		pngs, err = raster.NewPNGWriter(sampler, filepath.Join(output.Dir(), "frames"), uint64(pngEvery))
		if err != nil {
			return err
		}
		backend = pngs
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	recorder := telemetry.NewRecorder(perf, output, cfg.Telemetry.LogEvery, cfg.Telemetry.ProbeGrid)
	params := cfg.FieldParams()
	sched := scheduler.New(field.NewEngineState(), &params, backend, scheduler.Options{
		Perf: perf,
		Observer: func(f scheduler.Frame) {
			recorder.Observe(f.Index, f.Time, f.Pointer, f.Params)
		},
	})

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	slog.Info("starting headless render",
		"width", w,
		"height", h,
		"frames", opts.MaxFrames,
		"fps", fps,
		"pointer_demo", opts.PointerDemo,
	)

	if opts.MaxFrames > 0 {
		for i := 1; i <= opts.MaxFrames; i++ {
			ts := float64(i) / float64(fps)
			if opts.PointerDemo {
				sched.Submit(field.V(app.DemoPointer(ts)))
			}
			if err := sched.Tick(ts); err != nil {
				return err
			}
		}
	} else {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		interval := time.Second / time.Duration(fps)
		sched.Start(scheduler.SystemClock{}, interval)
		go func() {
			sched.Wait()
			cancel()
		}()

		if opts.PointerDemo {
			start := time.Now()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
		demo:
			for {
				select {
				case <-ctx.Done():
					break demo
				case now := <-ticker.C:
					sched.Submit(field.V(app.DemoPointer(now.Sub(start).Seconds())))
				}
			}
		} else {
			<-ctx.Done()
		}
		sched.Stop()
		if sched.Lost() {
			return scheduler.ErrBackendLost
		}
	}

	written := 0
	if pngs != nil {
		written = pngs.Written()
	}
	slog.Info("headless render finished",
		"frames", sched.Frames(),
		"draw_errors", sched.DrawErrors(),
		"png_frames", written,
		"samples", recorder.Samples(),
	)
	return nil
}
