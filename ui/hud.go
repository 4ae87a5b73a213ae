package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/telemetry"
)

// HUDData holds all the data needed to render the status line.
type HUDData struct {
	Backend    string
	Frame      uint64
	FPS        int32
	Stops      int
	Pointer    field.PointerState
	DrawErrors uint64
}

// HUD renders the status heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(
		fmt.Sprintf("%s | FPS: %d | Frame: %d | Stops: %d", data.Backend, data.FPS, data.Frame, data.Stops),
		10, 10, 16, rl.White,
	)
	rl.DrawText(
		fmt.Sprintf("Pointer: %.2f, %.2f | Speed: %.3f", data.Pointer.Current.X, data.Pointer.Current.Y, data.Pointer.Velocity.Len()),
		10, 30, 14, rl.LightGray,
	)
	if data.DrawErrors > 0 {
		rl.DrawText(fmt.Sprintf("Draw errors: %d", data.DrawErrors), 10, 48, 14, rl.Orange)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsPanel shows frame timing and per-stop coverage.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders perf stats and the coverage of each stop in palette.
func (s *StatsPanel) Draw(perf telemetry.PerfStats, cov telemetry.Coverage, palette field.Palette) {
	r := s.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight
	inner := s.width - pad*2

	height := lh*int32(5+len(cov.Stops)) + pad*2
	r.DrawPanel(s.x, s.y, s.width, height)

	x := s.x + pad
	y := s.y + pad
	y = r.DrawSectionHeader(x, y, "Frame")
	y = r.DrawLabelValue(x, y, "Avg", perf.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Eval", fmt.Sprintf("%.0f%%", perf.PhasePct[telemetry.PhaseEvaluate]))

	y = r.DrawSectionHeader(x, y+4, "Coverage")
	for i, st := range cov.Stops {
		fill := r.Theme.BarFill
		if i < len(palette) {
			fill = palette[i].RGBA()
		}
		y = r.DrawBar(x, y, fmt.Sprintf("Stop %d", i+1), float32(st.Dominant), inner, fill)
	}
	r.DrawLabelValue(x, y, "Balance", fmt.Sprintf("%.2f", cov.Balance))
}
