package app

import "math"

// Options holds run options that come from the command line rather than the
// config file.
type Options struct {
	OutputDir   string // CSV logs and config snapshot (empty = disabled)
	PointerDemo bool   // drive the pointer along a scripted path
	MaxFrames   int    // stop after N frames (0 = unlimited)
}

// DemoPointer returns the scripted pointer position at time t: a slow
// Lissajous figure that sweeps most of the frame.
func DemoPointer(t float64) (x, y float64) {
	return 0.5 + 0.35*math.Sin(t*0.7), 0.5 + 0.3*math.Sin(t*1.1+1)
}
