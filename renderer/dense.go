package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gradient/raster"
	"github.com/pthm-cable/gradient/scheduler"
)

// DenseBackend evaluates the field on the CPU at a reduced resolution and
// stretches the result over the screen with bilinear filtering.
type DenseBackend struct {
	sampler *raster.Sampler
	tex     rl.Texture2D
	texW    int
	texH    int

	screenW, screenH float32
	resScale         float32
	initialized      bool
}

// NewDenseBackend creates a dense backend. resScale is the sampling
// resolution relative to the screen (0.25 samples every fourth pixel).
func NewDenseBackend(w, h int32, resScale float32, workers int, flipY bool) *DenseBackend {
	if resScale <= 0 || resScale > 1 {
		resScale = 1
	}
	d := &DenseBackend{
		screenW:  float32(w),
		screenH:  float32(h),
		resScale: resScale,
	}
	tw, th := d.textureSize()
	d.sampler = raster.NewSampler(tw, th, workers)
	d.sampler.SetFlipY(flipY)
	return d
}

func (d *DenseBackend) textureSize() (int, int) {
	return int(d.screenW * d.resScale), int(d.screenH * d.resScale)
}

// Init creates the texture (must be called after raylib window is created).
func (d *DenseBackend) Init() {
	if d.initialized {
		return
	}
	d.texW, d.texH = d.sampler.Size()

	img := rl.GenImageColor(d.texW, d.texH, rl.Black)
	d.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(d.tex, rl.FilterBilinear)
	rl.SetTextureWrap(d.tex, rl.WrapClamp)
	rl.UnloadImage(img)

	d.initialized = true
}

// Resize updates screen dimensions and reallocates the texture on change.
func (d *DenseBackend) Resize(w, h int32) {
	if float32(w) == d.screenW && float32(h) == d.screenH {
		return
	}
	d.screenW = float32(w)
	d.screenH = float32(h)
	d.sampler.Resize(d.textureSize())
	if d.initialized {
		rl.UnloadTexture(d.tex)
		d.initialized = false
	}
}

// Draw implements scheduler.Backend.
func (d *DenseBackend) Draw(f scheduler.Frame) error {
	if !rl.IsWindowReady() {
		return scheduler.ErrBackendLost
	}
	d.Init()

	pixels := d.sampler.Render(f.Time, f.Pointer, f.Params)
	rl.UpdateTexture(d.tex, pixels)

	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(d.texW), Height: float32(d.texH)}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: d.screenW, Height: d.screenH}
	rl.DrawTexturePro(d.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
	return nil
}

// Unload frees GPU resources and stops the sampler workers.
func (d *DenseBackend) Unload() {
	d.sampler.Close()
	if d.initialized {
		rl.UnloadTexture(d.tex)
		d.initialized = false
	}
}
