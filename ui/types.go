// Package ui draws the raygui control panel and the HUD over the field.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Selected       rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 12, G: 12, B: 16, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 64, B: 72, A: 255},
		SectionHeader:  rl.Color{R: 230, G: 230, B: 230, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		Selected:       rl.Color{R: 240, G: 200, B: 90, A: 255},
		BarBg:          rl.Color{R: 40, G: 40, B: 44, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     64,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
)

// Place returns the top-left corner of a panel of the given width anchored
// inside a screen of width screenW.
func Place(a PanelAnchor, screenW, width, margin int32) (x, y int32) {
	if a == AnchorTopRight {
		return screenW - width - margin, margin
	}
	return margin, margin
}
