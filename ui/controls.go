package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gradient/field"
)

// PanelResult is what the user asked for during one Draw.
type PanelResult struct {
	Edits     []Edit
	CopyEmbed bool
}

// ControlPanel is the palette and motion editor.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
	selected int
}

// NewControlPanel creates a new control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition moves the panel.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool {
	return c.visible
}

// Selected returns the stop currently being edited.
func (c *ControlPanel) Selected() int {
	return c.selected
}

// Contains reports whether a screen position falls on the visible panel, so
// the caller can keep it from moving the pointer.
func (c *ControlPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x < float32(c.x+c.width) &&
		y >= float32(c.y) && y < float32(c.y+c.height)
}

// Draw renders the panel for p and collects the edits made this frame.
func (c *ControlPanel) Draw(p *field.Params) PanelResult {
	var res PanelResult
	if !c.visible {
		return res
	}

	r := c.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight
	inner := float32(c.width - pad*2)

	n := len(p.Palette)
	if c.selected >= n {
		c.selected = n - 1
	}

	r.DrawPanel(c.x, c.y, c.width, c.height)
	x := float32(c.x + pad)
	y := c.y + pad

	y = r.DrawSectionHeader(int32(x), y, "Palette")

	// Stop selector, one button per stop plus add/remove.
	btn := float32(28)
	for i := 0; i < n; i++ {
		bx := x + float32(i)*(btn+4)
		rl.DrawRectangle(int32(bx), y, int32(btn), 4, p.Palette[i].RGBA())
		label := fmt.Sprintf("%d", i+1)
		if i == c.selected {
			label = fmt.Sprintf("[%d]", i+1)
		}
		if gui.Button(rl.Rectangle{X: bx, Y: float32(y + 6), Width: btn, Height: 22}, label) {
			c.selected = i
		}
	}
	if gui.Button(rl.Rectangle{X: x + inner - 2*btn - 4, Y: float32(y + 6), Width: btn, Height: 22}, "+") && n < field.MaxStops {
		res.Edits = append(res.Edits, AddStop())
		c.selected = n
	}
	if gui.Button(rl.Rectangle{X: x + inner - btn, Y: float32(y + 6), Width: btn, Height: 22}, "-") && n > 1 {
		res.Edits = append(res.Edits, RemoveStop(c.selected))
		if c.selected > 0 {
			c.selected--
		}
	}
	y += 36

	if c.selected >= 0 && c.selected < n {
		col := p.Palette[c.selected]
		y = r.DrawColorSwatch(int32(x), y, fmt.Sprintf("Stop %d", c.selected+1), col.RGBA(), col.Hex())
		for _, ch := range []struct {
			label string
			id    Channel
			v     float64
		}{
			{"R", ChannelR, col.R},
			{"G", ChannelG, col.G},
			{"B", ChannelB, col.B},
		} {
			cur := float32(ch.v * 255)
			next := gui.SliderBar(
				rl.Rectangle{X: x + 16, Y: float32(y), Width: inner - 56, Height: 14},
				ch.label, "",
				cur, 0, 255,
			)
			rl.DrawText(fmt.Sprintf("%3.0f", next), int32(x+inner-34), y, r.Theme.FontSize, r.Theme.ValueColor)
			if int(next) != int(cur) {
				res.Edits = append(res.Edits, SetChannel(c.selected, ch.id, float64(next)/255))
			}
			y += lh
		}
	}
	y += 6

	y = r.DrawSectionHeader(int32(x), y, "Motion")
	motion := float32(p.Pointer.MotionCoefficient)
	if next := c.slider(x, y, inner, "Chase", motion, 0.01, 0.3); next != motion {
		res.Edits = append(res.Edits, SetMotion(float64(next)))
	}
	y += lh
	damping := float32(p.Pointer.DampingFactor)
	if next := c.slider(x, y, inner, "Damping", damping, 0.5, 0.99); next != damping {
		res.Edits = append(res.Edits, SetDamping(float64(next)))
	}
	y += lh + 6

	noise := "Noise: off"
	if p.Post.GrainEnabled {
		noise = "Noise: on"
	}
	half := (inner - 6) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 26}, noise) {
		res.Edits = append(res.Edits, ToggleGrain())
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 26}, "Copy embed") {
		res.CopyEmbed = true
	}
	y += 26 + pad

	c.height = y - c.y
	return res
}

func (c *ControlPanel) slider(x float32, y int32, inner float32, label string, v, lo, hi float32) float32 {
	r := c.renderer
	rl.DrawText(label, int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	next := gui.SliderBar(
		rl.Rectangle{X: x + float32(r.Theme.LabelWidth) - 8, Y: float32(y), Width: inner - float32(r.Theme.LabelWidth) - 32, Height: 14},
		"", "",
		v, lo, hi,
	)
	rl.DrawText(fmt.Sprintf("%.2f", next), int32(x+inner-34), y, r.Theme.FontSize, r.Theme.ValueColor)
	return next
}
