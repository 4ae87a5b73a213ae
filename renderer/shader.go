package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/scheduler"
)

//go:embed shaders/field.fs
var fieldShaderSource string

// Array sizes declared in shaders/field.fs.
const (
	shaderMaxPasses  = field.MaxWarpPasses
	shaderMaxOctaves = field.MaxOctaves
)

// ShaderBackend evaluates the field per pixel on the GPU.
type ShaderBackend struct {
	shader rl.Shader
	locs   shaderLocs

	screenW, screenH float32
	flipY            bool
	initialized      bool

	// Reused uniform buffers
	warpParams  [shaderMaxPasses * 4]float32
	warpOffsets [shaderMaxPasses * 4]float32
	palette     [field.MaxStops * 3]float32
	bandShape   [field.MaxStops * 4]float32
	bandMotion  [field.MaxStops * 4]float32
}

type shaderLocs struct {
	resolution, time, flipY               int32
	pointer, velocity, sharpness, force   int32
	octaves, scale, epsilon               int32
	passes, warpParams, warpOffsets       int32
	stops, palette, bandShape, bandMotion int32
	vignette, grain, gamma                int32
}

// NewShaderBackend creates a shader backend covering a w×h screen.
func NewShaderBackend(w, h int32, flipY bool) *ShaderBackend {
	return &ShaderBackend{screenW: float32(w), screenH: float32(h), flipY: flipY}
}

// Init compiles the shader (must be called after raylib window is created).
func (b *ShaderBackend) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", fieldShaderSource)

	loc := func(name string) int32 { return rl.GetShaderLocation(b.shader, name) }
	b.locs = shaderLocs{
		resolution:  loc("resolution"),
		time:        loc("time"),
		flipY:       loc("flipY"),
		pointer:     loc("pointer"),
		velocity:    loc("velocity"),
		sharpness:   loc("sharpness"),
		force:       loc("force"),
		octaves:     loc("octaves"),
		scale:       loc("scale"),
		epsilon:     loc("epsilon"),
		passes:      loc("passes"),
		warpParams:  loc("warpParams"),
		warpOffsets: loc("warpOffsets"),
		stops:       loc("stops"),
		palette:     loc("palette"),
		bandShape:   loc("bandShape"),
		bandMotion:  loc("bandMotion"),
		vignette:    loc("vignette"),
		grain:       loc("grain"),
		gamma:       loc("gammaExp"),
	}

	b.initialized = true
}

// Resize updates screen dimensions.
func (b *ShaderBackend) Resize(w, h int32) {
	b.screenW = float32(w)
	b.screenH = float32(h)
}

// Draw implements scheduler.Backend.
func (b *ShaderBackend) Draw(f scheduler.Frame) error {
	if !rl.IsWindowReady() {
		return scheduler.ErrBackendLost
	}
	b.Init()

	b.setUniforms(f)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)
	rl.EndShaderMode()
	return nil
}

func (b *ShaderBackend) setUniforms(f scheduler.Frame) {
	p := f.Params
	s := b.shader
	flip := float32(0)
	if b.flipY {
		flip = 1
	}

	rl.SetShaderValue(s, b.locs.resolution, []float32{b.screenW, b.screenH}, rl.ShaderUniformVec2)
	rl.SetShaderValue(s, b.locs.time, []float32{float32(f.Time)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, b.locs.flipY, []float32{flip}, rl.ShaderUniformFloat)

	rl.SetShaderValue(s, b.locs.pointer, vec2(f.Pointer.Current), rl.ShaderUniformVec2)
	rl.SetShaderValue(s, b.locs.velocity, vec2(f.Pointer.Velocity), rl.ShaderUniformVec2)
	rl.SetShaderValue(s, b.locs.sharpness, []float32{float32(p.Pointer.Sharpness)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, b.locs.force, []float32{float32(p.Pointer.Force)}, rl.ShaderUniformFloat)

	octaves := p.Octaves
	if octaves > shaderMaxOctaves {
		octaves = shaderMaxOctaves
	}
	rl.SetShaderValue(s, b.locs.octaves, []float32{float32(octaves)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, b.locs.scale, []float32{float32(p.Scale)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, b.locs.epsilon, []float32{float32(p.Epsilon)}, rl.ShaderUniformFloat)

	passes := len(p.Warp)
	if passes > shaderMaxPasses {
		passes = shaderMaxPasses
	}
	for i := 0; i < passes; i++ {
		w := p.Warp[i]
		b.warpParams[i*4] = float32(w.TimeScale)
		b.warpParams[i*4+1] = float32(w.Magnitude)
		b.warpOffsets[i*4] = float32(w.OffsetA.X)
		b.warpOffsets[i*4+1] = float32(w.OffsetA.Y)
		b.warpOffsets[i*4+2] = float32(w.OffsetB.X)
		b.warpOffsets[i*4+3] = float32(w.OffsetB.Y)
	}
	rl.SetShaderValue(s, b.locs.passes, []float32{float32(passes)}, rl.ShaderUniformFloat)
	rl.SetShaderValueV(s, b.locs.warpParams, b.warpParams[:], rl.ShaderUniformVec4, shaderMaxPasses)
	rl.SetShaderValueV(s, b.locs.warpOffsets, b.warpOffsets[:], rl.ShaderUniformVec4, shaderMaxPasses)

	stops := p.Stops()
	for i := 0; i < stops; i++ {
		c := p.Palette[i]
		b.palette[i*3] = float32(c.R)
		b.palette[i*3+1] = float32(c.G)
		b.palette[i*3+2] = float32(c.B)

		band := p.Bands[i]
		b.bandShape[i*4] = float32(band.Frequency)
		b.bandShape[i*4+1] = float32(band.Lo)
		b.bandShape[i*4+2] = float32(band.Hi)
		b.bandMotion[i*4] = float32(band.Phase.X)
		b.bandMotion[i*4+1] = float32(band.Phase.Y)
		b.bandMotion[i*4+2] = float32(band.Drift.X)
		b.bandMotion[i*4+3] = float32(band.Drift.Y)
	}
	rl.SetShaderValue(s, b.locs.stops, []float32{float32(stops)}, rl.ShaderUniformFloat)
	rl.SetShaderValueV(s, b.locs.palette, b.palette[:], rl.ShaderUniformVec3, field.MaxStops)
	rl.SetShaderValueV(s, b.locs.bandShape, b.bandShape[:], rl.ShaderUniformVec4, field.MaxStops)
	rl.SetShaderValueV(s, b.locs.bandMotion, b.bandMotion[:], rl.ShaderUniformVec4, field.MaxStops)

	grain := []float32{
		float32(p.Post.EffectiveGrain()),
		float32(p.Post.GrainFrequency),
		float32(p.Post.GrainSpeed),
	}
	rl.SetShaderValue(s, b.locs.vignette, []float32{float32(p.Post.Vignette)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, b.locs.grain, grain, rl.ShaderUniformVec3)
	rl.SetShaderValue(s, b.locs.gamma, []float32{float32(p.Post.Gamma)}, rl.ShaderUniformFloat)
}

// Unload frees GPU resources.
func (b *ShaderBackend) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}

func vec2(v field.Vec2) []float32 {
	return []float32{float32(v.X), float32(v.Y)}
}
