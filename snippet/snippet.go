// Package snippet formats the current field parameters for pasting into a
// page or a config file.
package snippet

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gradient/field"
)

// Default embed target.
const (
	DefaultScriptURL   = "https://YOUR_USERNAME.github.io/interactive-gradient/embed.js"
	DefaultContainerID = "interactive-gradient"
)

// Options controls where the embed script is loaded from.
type Options struct {
	ScriptURL   string
	ContainerID string
}

func (o Options) withDefaults() Options {
	if o.ScriptURL == "" {
		o.ScriptURL = DefaultScriptURL
	}
	if o.ContainerID == "" {
		o.ContainerID = DefaultContainerID
	}
	return o
}

// Colors returns the palette as a comma-separated hex list.
func Colors(p *field.Params) string {
	hex := make([]string, len(p.Palette))
	for i, c := range p.Palette {
		hex[i] = c.Hex()
	}
	return strings.Join(hex, ",")
}

// HTML renders the embed snippet for p.
func HTML(p *field.Params, opts Options) string {
	opts = opts.withDefaults()

	var sb strings.Builder
	fmt.Fprintf(&sb, "<div id=\"%s\"></div>\n", opts.ContainerID)
	fmt.Fprintf(&sb, "<script src=\"%s\"\n", opts.ScriptURL)
	fmt.Fprintf(&sb, "    data-colors=\"%s\"\n", Colors(p))
	fmt.Fprintf(&sb, "    data-noise=\"%t\"\n", p.Post.GrainEnabled)
	fmt.Fprintf(&sb, "    data-motion=\"%s\">\n", strconv.FormatFloat(p.Pointer.MotionCoefficient, 'g', -1, 64))
	sb.WriteString("</script>")
	return sb.String()
}

// Summary is the human-readable parameter summary.
type Summary struct {
	Colors     []string `yaml:"colors"`
	Noise      bool     `yaml:"noise"`
	GrainGain  float64  `yaml:"grain_gain"`
	Motion     float64  `yaml:"motion"`
	Damping    float64  `yaml:"damping"`
	Octaves    int      `yaml:"octaves"`
	WarpPasses int      `yaml:"warp_passes"`
	Vignette   float64  `yaml:"vignette"`
	Gamma      float64  `yaml:"gamma"`
}

// Summarize collects the summary fields of p.
func Summarize(p *field.Params) Summary {
	s := Summary{
		Colors:     make([]string, len(p.Palette)),
		Noise:      p.Post.GrainEnabled,
		GrainGain:  p.Post.EffectiveGrain(),
		Motion:     p.Pointer.MotionCoefficient,
		Damping:    p.Pointer.DampingFactor,
		Octaves:    p.Octaves,
		WarpPasses: len(p.Warp),
		Vignette:   p.Post.Vignette,
		Gamma:      p.Post.Gamma,
	}
	for i, c := range p.Palette {
		s.Colors[i] = c.Hex()
	}
	return s
}

// YAML renders the parameter summary of p.
func YAML(p *field.Params) ([]byte, error) {
	data, err := yaml.Marshal(Summarize(p))
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}
	return data, nil
}
