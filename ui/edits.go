package ui

import "github.com/pthm-cable/gradient/field"

// Edit mutates field parameters between frames. Edits are handed to
// scheduler.Configure so the render loop never sees a half-applied change.
type Edit func(p *field.Params)

// Channel selects one component of an RGB color.
type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
)

// extraStops are appended by AddStop when the palette grows.
var extraStops = field.Palette{
	field.RGBFrom8(0xfe, 0xca, 0x57),
	field.RGBFrom8(0x48, 0xdb, 0xfb),
	field.RGBFrom8(0xff, 0x9f, 0xf3),
	field.RGBFrom8(0x54, 0xa0, 0xff),
}

// SetChannel sets one channel of stop i to v in [0,1].
func SetChannel(i int, ch Channel, v float64) Edit {
	return func(p *field.Params) {
		if i < 0 || i >= len(p.Palette) {
			return
		}
		c := &p.Palette[i]
		switch ch {
		case ChannelR:
			c.R = v
		case ChannelG:
			c.G = v
		case ChannelB:
			c.B = v
		}
	}
}

// SetStop replaces the color of stop i.
func SetStop(i int, c field.RGB) Edit {
	return func(p *field.Params) {
		if i >= 0 && i < len(p.Palette) {
			p.Palette[i] = c
		}
	}
}

// AddStop appends a color stop, up to field.MaxStops. A band is added from
// the stock set when the palette would outgrow the configured bands.
func AddStop() Edit {
	return func(p *field.Params) {
		n := len(p.Palette)
		if n >= field.MaxStops {
			return
		}
		p.Palette = append(p.Palette, extraStops[n%len(extraStops)])
		if len(p.Bands) <= n {
			p.Bands = append(p.Bands, field.DefaultBands()[n])
		}
	}
}

// RemoveStop drops stop i, keeping at least one stop. Bands stay aligned
// with the remaining stops.
func RemoveStop(i int) Edit {
	return func(p *field.Params) {
		n := len(p.Palette)
		if n <= 1 || i < 0 || i >= n {
			return
		}
		p.Palette = append(p.Palette[:i], p.Palette[i+1:]...)
		if i < len(p.Bands) {
			band := p.Bands[i]
			p.Bands = append(p.Bands[:i], p.Bands[i+1:]...)
			p.Bands = append(p.Bands, band)
		}
	}
}

// ToggleGrain flips the grain stage on or off.
func ToggleGrain() Edit {
	return func(p *field.Params) {
		p.Post.GrainEnabled = !p.Post.GrainEnabled
	}
}

// SetMotion sets the pointer motion coefficient, clamped to (0,1].
func SetMotion(v float64) Edit {
	return func(p *field.Params) {
		if v <= 0 {
			v = 0.001
		}
		if v > 1 {
			v = 1
		}
		p.Pointer.MotionCoefficient = v
	}
}

// SetDamping sets the velocity damping factor, clamped to (0,1).
func SetDamping(v float64) Edit {
	return func(p *field.Params) {
		if v <= 0 {
			v = 0.001
		}
		if v >= 1 {
			v = 0.999
		}
		p.Pointer.DampingFactor = v
	}
}
