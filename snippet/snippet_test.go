package snippet

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gradient/field"
)

func TestHTMLDefaults(t *testing.T) {
	p := field.DefaultParams()
	got := HTML(&p, Options{})

	want := `<div id="interactive-gradient"></div>
<script src="https://YOUR_USERNAME.github.io/interactive-gradient/embed.js"
    data-colors="#ff6b6b,#5f27cd,#1dd1a1"
    data-noise="true"
    data-motion="0.08">
</script>`
	if got != want {
		t.Errorf("HTML mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestHTMLReflectsParams(t *testing.T) {
	p := field.DefaultParams()
	p.Palette = field.Palette{field.RGBFrom8(0, 0, 0)}
	p.Post.GrainEnabled = false
	p.Pointer.MotionCoefficient = 0.2

	got := HTML(&p, Options{ScriptURL: "https://example.com/e.js", ContainerID: "hero"})
	for _, part := range []string{
		`<div id="hero"></div>`,
		`src="https://example.com/e.js"`,
		`data-colors="#000000"`,
		`data-noise="false"`,
		`data-motion="0.2"`,
	} {
		if !strings.Contains(got, part) {
			t.Errorf("snippet missing %s:\n%s", part, got)
		}
	}
}

func TestYAMLSummary(t *testing.T) {
	p := field.DefaultParams()
	p.Post.GrainEnabled = false

	data, err := YAML(&p)
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}

	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if len(s.Colors) != 3 || s.Colors[1] != "#5f27cd" {
		t.Errorf("colors = %v", s.Colors)
	}
	if s.Noise || s.GrainGain != 0 {
		t.Errorf("grain disabled should report noise=false gain=0, got %v %v", s.Noise, s.GrainGain)
	}
	if s.Octaves != p.Octaves || s.WarpPasses != len(p.Warp) {
		t.Errorf("octaves/passes = %d/%d", s.Octaves, s.WarpPasses)
	}
}
