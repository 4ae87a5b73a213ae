package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/renderer"
	"github.com/pthm-cable/gradient/scheduler"
	"github.com/pthm-cable/gradient/snippet"
	"github.com/pthm-cable/gradient/ui"
	"github.com/pthm-cable/gradient/viewport"
)

// handleInput processes window, keyboard and pointer input. Everything is
// queued on the scheduler and applied at the start of the next frame.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.sched.Configure(ui.ToggleGrain())
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyI) {
		a.showStats = !a.showStats
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.copyEmbed()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.switchBackend(renderer.NextKind(a.kind))
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.saveConfig()
	}

	a.handlePointer()
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if !a.vp.Resize(w, h) {
		return
	}
	a.backend.Resize(int32(w), int32(h))
	px, py := ui.Place(ui.AnchorTopRight, int32(w), panelWidth, 10)
	a.panel.SetPosition(px, py)
}

// handlePointer submits the first active touch, or the mouse when no finger
// is down. Positions over the control panel are ignored.
func (a *App) handlePointer() {
	if a.opts.PointerDemo {
		x, y := DemoPointer(scheduler.Seconds(a.clock.Now()) - scheduler.Seconds(a.start))
		a.sched.Submit(field.V(x, y))
		return
	}

	count := rl.GetTouchPointCount()
	touches := make([]viewport.Touch, 0, count)
	for i := int32(0); i < count; i++ {
		pos := rl.GetTouchPosition(i)
		touches = append(touches, viewport.Touch{ID: rl.GetTouchPointId(i), X: pos.X, Y: pos.Y})
	}
	if t, ok := a.touches.Update(touches); ok {
		if !a.panel.Contains(t.X, t.Y) {
			a.sched.Submit(a.vp.Normalize(t.X, t.Y))
		}
		return
	}

	delta := rl.GetMouseDelta()
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	pos := rl.GetMousePosition()
	if a.panel.Contains(pos.X, pos.Y) {
		return
	}
	a.sched.Submit(a.vp.Normalize(pos.X, pos.Y))
}

// copyEmbed puts the embed snippet for the current parameters on the
// clipboard.
func (a *App) copyEmbed() {
	params := a.sched.Params()
	html := snippet.HTML(&params, snippet.Options{
		ScriptURL:   a.cfg.Embed.ScriptURL,
		ContainerID: a.cfg.Embed.ContainerID,
	})
	rl.SetClipboardText(html)
	slog.Info("embed copied", "colors", snippet.Colors(&params))
}

// saveConfig writes the runtime-edited parameters into the output directory.
func (a *App) saveConfig() {
	if a.output == nil {
		slog.Warn("config not saved: no output directory")
		return
	}
	params := a.sched.Params()
	a.cfg.ApplyFieldParams(&params)
	if err := a.output.WriteConfig(a.cfg); err != nil {
		slog.Error("failed to save config", "error", err)
		return
	}
	slog.Info("config saved", "path", a.output.Path("config.yaml"))
}
