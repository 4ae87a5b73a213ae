// Package config provides configuration loading and access for the gradient field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gradient/field"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all field and application configuration.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Palette   []string        `yaml:"palette"`
	Motion    MotionConfig    `yaml:"motion"`
	Noise     NoiseConfig     `yaml:"noise"`
	Warp      WarpConfig      `yaml:"warp"`
	Bands     []BandConfig    `yaml:"bands"`
	Post      PostConfig      `yaml:"post"`
	Backend   BackendConfig   `yaml:"backend"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Embed     EmbedConfig     `yaml:"embed"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// MotionConfig holds pointer dynamics parameters.
type MotionConfig struct {
	Coefficient     float64 `yaml:"coefficient"`      // Smoothing rate of the damped pointer, (0,1]
	Damping         float64 `yaml:"damping"`          // Velocity decay per frame, (0,1)
	Gain            float64 `yaml:"gain"`             // Velocity impulse per unit of pointer travel
	Sharpness       float64 `yaml:"sharpness"`        // Gaussian falloff of the local force
	Force           float64 `yaml:"force"`            // Displacement strength of the local force
	ImmediateTarget bool    `yaml:"immediate_target"` // Move target on the event rather than next frame
	FlipY           bool    `yaml:"flip_y"`           // Normalize with y growing upward
}

// NoiseConfig holds fBm parameters.
type NoiseConfig struct {
	Octaves int     `yaml:"octaves"`
	Scale   float64 `yaml:"scale"`   // uv to noise-space scale
	Epsilon float64 `yaml:"epsilon"` // weight normalization guard
}

// WarpConfig holds the domain warp chain.
type WarpConfig struct {
	Passes []WarpPassConfig `yaml:"passes"`
}

// WarpPassConfig holds one warp pass.
type WarpPassConfig struct {
	TimeScale float64    `yaml:"time_scale"`
	Magnitude float64    `yaml:"magnitude"`
	OffsetA   [2]float64 `yaml:"offset_a"`
	OffsetB   [2]float64 `yaml:"offset_b"`
}

// BandConfig shapes the weight field of one color stop.
type BandConfig struct {
	Frequency float64    `yaml:"frequency"`
	Phase     [2]float64 `yaml:"phase"`
	Drift     [2]float64 `yaml:"drift"`
	Lo        float64    `yaml:"lo"`
	Hi        float64    `yaml:"hi"`
}

// PostConfig holds post-processing parameters.
type PostConfig struct {
	Vignette float64     `yaml:"vignette"`
	Gamma    float64     `yaml:"gamma"`
	Grain    GrainConfig `yaml:"grain"`
}

// GrainConfig holds film grain parameters.
type GrainConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Gain      float64 `yaml:"gain"`
	Frequency float64 `yaml:"frequency"`
	Speed     float64 `yaml:"speed"`
}

// BackendConfig selects how the field is displayed.
type BackendConfig struct {
	Kind            string  `yaml:"kind"`             // dense, shader or sparse
	ResolutionScale float64 `yaml:"resolution_scale"` // dense sampling resolution relative to the window
	Workers         int     `yaml:"workers"`          // dense sampler workers (0 = GOMAXPROCS)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // frames averaged by the perf collector
	LogEvery   int `yaml:"log_every"`   // frames between perf log lines (0 = never)
	ProbeGrid  int `yaml:"probe_grid"`  // coverage probe grid size per axis
}

// EmbedConfig holds embed snippet settings.
type EmbedConfig struct {
	ScriptURL   string `yaml:"script_url"`
	ContainerID string `yaml:"container_id"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Palette field.Palette // parsed palette colors
}

// Backend kinds.
const (
	BackendDense  = "dense"
	BackendShader = "shader"
	BackendSparse = "sparse"
)

// Validation errors.
var (
	ErrEmptyPalette    = errors.New("palette has no colors")
	ErrPaletteTooLarge = fmt.Errorf("palette has more than %d colors", field.MaxStops)
)

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	return Load("")
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse loads configuration from YAML bytes layered over the embedded defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	palette, err := ParsePalette(c.Palette)
	if err != nil {
		return err
	}
	c.Derived.Palette = palette

	if c.Backend.Kind == "" {
		c.Backend.Kind = BackendDense
	}
	if c.Backend.ResolutionScale <= 0 {
		c.Backend.ResolutionScale = 0.25
	}
	if c.Telemetry.ProbeGrid <= 0 {
		c.Telemetry.ProbeGrid = 16
	}
	return nil
}

// Validate rejects configurations the field cannot render.
func (c *Config) Validate() error {
	n := len(c.Derived.Palette)
	switch {
	case n == 0:
		return fmt.Errorf("invalid config: %w", ErrEmptyPalette)
	case n > field.MaxStops:
		return fmt.Errorf("invalid config: %w", ErrPaletteTooLarge)
	}
	if len(c.Bands) < n {
		return fmt.Errorf("invalid config: %d bands for %d palette colors", len(c.Bands), n)
	}
	if c.Noise.Octaves < 1 || c.Noise.Octaves > field.MaxOctaves {
		return fmt.Errorf("invalid config: noise.octaves must be in [1,%d], got %d", field.MaxOctaves, c.Noise.Octaves)
	}
	if len(c.Warp.Passes) > field.MaxWarpPasses {
		return fmt.Errorf("invalid config: at most %d warp passes, got %d", field.MaxWarpPasses, len(c.Warp.Passes))
	}
	if c.Motion.Damping <= 0 || c.Motion.Damping >= 1 {
		return fmt.Errorf("invalid config: motion.damping must be in (0,1), got %g", c.Motion.Damping)
	}
	if c.Motion.Coefficient <= 0 || c.Motion.Coefficient > 1 {
		return fmt.Errorf("invalid config: motion.coefficient must be in (0,1], got %g", c.Motion.Coefficient)
	}
	if c.Post.Gamma <= 0 {
		return fmt.Errorf("invalid config: post.gamma must be positive, got %g", c.Post.Gamma)
	}
	switch c.Backend.Kind {
	case BackendDense, BackendShader, BackendSparse:
	default:
		return fmt.Errorf("invalid config: unknown backend %q", c.Backend.Kind)
	}
	return nil
}

// FieldParams converts the configuration into field parameters.
func (c *Config) FieldParams() field.Params {
	p := field.Params{
		Palette: append(field.Palette(nil), c.Derived.Palette...),
		Octaves: c.Noise.Octaves,
		Scale:   c.Noise.Scale,
		Epsilon: c.Noise.Epsilon,
		Pointer: field.PointerParams{
			MotionCoefficient: c.Motion.Coefficient,
			DampingFactor:     c.Motion.Damping,
			Gain:              c.Motion.Gain,
			Sharpness:         c.Motion.Sharpness,
			Force:             c.Motion.Force,
			ImmediateTarget:   c.Motion.ImmediateTarget,
		},
		Post: field.Post{
			Vignette:       c.Post.Vignette,
			GrainEnabled:   c.Post.Grain.Enabled,
			GrainGain:      c.Post.Grain.Gain,
			GrainFrequency: c.Post.Grain.Frequency,
			GrainSpeed:     c.Post.Grain.Speed,
			Gamma:          c.Post.Gamma,
		},
	}
	if p.Epsilon <= 0 {
		p.Epsilon = field.DefaultEpsilon
	}

	for _, w := range c.Warp.Passes {
		p.Warp = append(p.Warp, field.WarpPass{
			TimeScale: w.TimeScale,
			Magnitude: w.Magnitude,
			OffsetA:   field.V(w.OffsetA[0], w.OffsetA[1]),
			OffsetB:   field.V(w.OffsetB[0], w.OffsetB[1]),
		})
	}
	for _, b := range c.Bands {
		p.Bands = append(p.Bands, field.Band{
			Frequency: b.Frequency,
			Phase:     field.V(b.Phase[0], b.Phase[1]),
			Drift:     field.V(b.Drift[0], b.Drift[1]),
			Lo:        b.Lo,
			Hi:        b.Hi,
		})
	}
	return p
}

// ApplyFieldParams writes tunable field values back into the config so a
// runtime-edited field can be saved with WriteYAML.
func (c *Config) ApplyFieldParams(p *field.Params) {
	c.Palette = c.Palette[:0]
	for _, col := range p.Palette {
		c.Palette = append(c.Palette, col.Hex())
	}
	c.Derived.Palette = append(field.Palette(nil), p.Palette...)

	c.Motion.Coefficient = p.Pointer.MotionCoefficient
	c.Motion.Damping = p.Pointer.DampingFactor
	c.Post.Grain.Enabled = p.Post.GrainEnabled
	c.Post.Gamma = p.Post.Gamma
	c.Post.Vignette = p.Post.Vignette

	// Palette edits reorder and append bands, so rebuild the list in full.
	c.Bands = make([]BandConfig, 0, len(p.Bands))
	for _, b := range p.Bands {
		c.Bands = append(c.Bands, BandConfig{
			Frequency: b.Frequency,
			Phase:     [2]float64{b.Phase.X, b.Phase.Y},
			Drift:     [2]float64{b.Drift.X, b.Drift.Y},
			Lo:        b.Lo,
			Hi:        b.Hi,
		})
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
