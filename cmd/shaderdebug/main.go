// Shader debug tool - renders the GPU field shader to a PNG and compares it
// with the CPU sampler.
//
// Usage: go run ./cmd/shaderdebug -t 2.5 -out shader.png -cpu cpu.png
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/raster"
	"github.com/pthm-cable/gradient/renderer"
	"github.com/pthm-cable/gradient/scheduler"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "shader.png", "Output PNG path for the shader render")
	cpuPath := flag.String("cpu", "", "Also write the CPU render here and report the difference")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	t := flag.Float64("t", 0, "Field time in seconds")
	px := flag.Float64("px", 0.5, "Pointer x")
	py := flag.Float64("py", 0.5, "Pointer y")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	params := cfg.FieldParams()
	ps := field.NewPointerState()
	ps.Target = field.V(*px, *py)
	ps.Current = ps.Target
	frame := scheduler.Frame{Index: 1, Time: *t, Pointer: ps, Params: &params}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	backend := renderer.NewShaderBackend(int32(*width), int32(*height), cfg.Motion.FlipY)
	defer backend.Unload()

	// Create render texture
	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	drawErr := backend.Draw(frame)
	rl.EndTextureMode()
	if drawErr != nil {
		fmt.Fprintf(os.Stderr, "Shader draw failed: %v\n", drawErr)
		os.Exit(1)
	}

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)
	gpu := rl.LoadImageColors(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)
	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
	fmt.Printf("Shader rendered to: %s (%dx%d)\n", *outPath, *width, *height)

	if *cpuPath == "" {
		return
	}

	sampler := raster.NewSampler(*width, *height, 0)
	defer sampler.Close()
	sampler.SetFlipY(cfg.Motion.FlipY)
	cpu := sampler.Render(frame.Time, frame.Pointer, frame.Params)

	f, err := os.Create(*cpuPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *cpuPath, err)
		os.Exit(1)
	}
	if err := png.Encode(f, sampler.Image()); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Failed to encode %s: %v\n", *cpuPath, err)
		os.Exit(1)
	}
	f.Close()

	mean, worst := diff(gpu, cpu)
	fmt.Printf("CPU rendered to: %s | mean diff %.2f | max diff %d\n", *cpuPath, mean, worst)
}

// diff returns the mean and largest per-channel difference of two renders.
func diff(a, b []color.RGBA) (mean float64, worst int) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		for _, d := range [3]int{
			int(a[i].R) - int(b[i].R),
			int(a[i].G) - int(b[i].G),
			int(a[i].B) - int(b[i].B),
		} {
			d = int(math.Abs(float64(d)))
			sum += float64(d)
			if d > worst {
				worst = d
			}
		}
	}
	return sum / float64(n*3), worst
}
