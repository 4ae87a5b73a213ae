package term

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/scheduler"
)

// Run drives sched from a tcell event loop until ctx is cancelled, the user
// quits (Esc, Ctrl-C or q) or the backend is lost. Events and ticks share one
// goroutine, so pointer events land strictly between frames.
func Run(ctx context.Context, screen tcell.Screen, sched *scheduler.Scheduler, b *Backend, interval time.Duration) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !handleEvent(ev, sched, b) {
				return nil
			}

		case now := <-ticker.C:
			if err := sched.Tick(scheduler.Seconds(now)); errors.Is(err, scheduler.ErrBackendLost) {
				return err
			}
		}
	}
}

// handleEvent returns false when the user asked to quit.
func handleEvent(ev tcell.Event, sched *scheduler.Scheduler, b *Backend) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'g':
				sched.Configure(func(p *field.Params) {
					p.Post.GrainEnabled = !p.Post.GrainEnabled
					slog.Info("grain toggled", "enabled", p.Post.GrainEnabled)
				})
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		nx, ny := b.Normalize(x, y)
		sched.Submit(field.V(nx, ny))

	case *tcell.EventResize:
		b.screen.Sync()
		b.Resize()
	}
	return true
}
