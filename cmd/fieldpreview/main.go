// Field preview tool - inspect the noise, warp and band layers of the field
// with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/viewport"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 192
)

// Layer selects which stage of the pipeline is shown.
type Layer int

const (
	LayerNoise Layer = iota // fBm of the unwarped coordinate
	LayerWarped             // fBm after the warp chain
	LayerBand               // shaped weight of one band
	LayerFinal              // full field color
	layerCount
)

var layerNames = [layerCount]string{"Noise", "Warped", "Band", "Final"}

// previewYAML is the part of the config the sliders edit.
type previewYAML struct {
	Noise config.NoiseConfig `yaml:"noise"`
	Warp  config.WarpConfig  `yaml:"warp"`
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defaults := cfg.FieldParams()
	params := defaults.Clone()
	passes := len(params.Warp)

	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	pixels := make([]color.RGBA, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	rl.SetTextureFilter(texture, rl.FilterBilinear)

	var t float64
	animating := false
	layer := LayerFinal
	band := 0
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			t += float64(rl.GetFrameTime())
			needsRegen = true
		}

		if needsRegen {
			render(pixels, &params, passes, layer, band, t)
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Layer: %s | Time: %.1f", layerNames[layer], t), 15, previewSize+25, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Field Layers", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for i := Layer(0); i < layerCount; i++ {
			label := layerNames[i]
			if i == layer {
				label = "[" + label + "]"
			}
			if gui.Button(rl.Rectangle{X: panelX + float32(i)*110, Y: panelY, Width: 100, Height: 26}, label) {
				layer = i
				needsRegen = true
			}
		}
		panelY += 40

		slider := func(label string, v, lo, hi float32, format string) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				v, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, next), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			if next != v {
				needsRegen = true
			}
			return next
		}

		params.Octaves = int(slider("Octaves (fBm detail)", float32(params.Octaves), 1, 8, "%.0f"))
		params.Scale = float64(slider("Scale (uv to noise space)", float32(params.Scale), 0.5, 8, "%.2f"))
		passes = int(slider("Warp passes", float32(passes), 0, float32(len(defaults.Warp)), "%.0f"))
		for i := 0; i < passes && i < len(params.Warp); i++ {
			params.Warp[i].Magnitude = float64(slider(fmt.Sprintf("Warp %d magnitude", i+1), float32(params.Warp[i].Magnitude), 0, 3, "%.2f"))
		}
		if layer == LayerBand {
			band = int(slider("Band", float32(band), 0, float32(params.Stops()-1), "%.0f"))
			b := &params.Bands[band]
			b.Lo = float64(slider("Band lo", float32(b.Lo), 0, 1, "%.2f"))
			b.Hi = float64(slider("Band hi", float32(b.Hi), 0, 1, "%.2f"))
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 260, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults.Clone()
			passes = len(params.Warp)
			band = 0
			t = 0
			needsRegen = true
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			if out, err := settingsYAML(&params, passes); err == nil {
				rl.SetClipboardText(out)
			} else {
				log.Printf("yaml: %v", err)
			}
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// render fills pixels with the selected layer at time t.
func render(pixels []color.RGBA, p *field.Params, passes int, layer Layer, band int, t float64) {
	if passes > len(p.Warp) {
		passes = len(p.Warp)
	}
	warp := p.Warp[:passes]
	ps := field.NewPointerState()

	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			uv := viewport.PixelUV(x, y, gridSize, gridSize, false)
			var c color.RGBA
			switch layer {
			case LayerNoise:
				c = ramp(field.FBM(uv.Scale(p.Scale), p.Octaves))
			case LayerWarped:
				w := field.WarpChain(uv.Scale(p.Scale), t, warp, p.Octaves)
				c = ramp(field.FBM(w, p.Octaves))
			case LayerBand:
				w := field.WarpChain(uv.Scale(p.Scale), t, warp, p.Octaves)
				c = ramp(field.BandWeight(w, t, p.Bands[band], p.Octaves))
			default:
				q := *p
				q.Warp = warp
				c = field.Evaluate(uv, t, ps, &q).RGBA()
			}
			pixels[y*gridSize+x] = c
		}
	}
}

// ramp maps [0,1] onto dark blue -> cyan -> yellow -> white.
func ramp(v float64) color.RGBA {
	f := float32(v)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	var r, g, b float32
	switch {
	case f < 0.25:
		t := f / 0.25
		r, g, b = 10+t*30, 20+t*60, 60+t*100
	case f < 0.5:
		t := (f - 0.25) / 0.25
		r, g, b = 40+t*20, 80+t*120, 160+t*40
	case f < 0.75:
		t := (f - 0.5) / 0.25
		r, g, b = 60+t*140, 200-t*40, 200-t*150
	default:
		t := (f - 0.75) / 0.25
		r, g, b = 200+t*55, 160+t*95, 50+t*205
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// settingsYAML renders the edited noise and warp sections as config YAML.
func settingsYAML(p *field.Params, passes int) (string, error) {
	out := previewYAML{
		Noise: config.NoiseConfig{Octaves: p.Octaves, Scale: p.Scale, Epsilon: p.Epsilon},
	}
	for i := 0; i < passes && i < len(p.Warp); i++ {
		w := p.Warp[i]
		out.Warp.Passes = append(out.Warp.Passes, config.WarpPassConfig{
			TimeScale: w.TimeScale,
			Magnitude: w.Magnitude,
			OffsetA:   [2]float64{w.OffsetA.X, w.OffsetA.Y},
			OffsetB:   [2]float64{w.OffsetB.X, w.OffsetB.Y},
		})
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
