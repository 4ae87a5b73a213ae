package config

import (
	"fmt"
	"strings"

	css "github.com/mazznoer/csscolorparser"

	"github.com/pthm-cable/gradient/field"
)

// ParseColor parses any CSS color string (hex, rgb(), hsl(), named).
// Alpha is ignored; the field is always opaque.
func ParseColor(s string) (field.RGB, error) {
	c, err := css.Parse(strings.TrimSpace(s))
	if err != nil {
		return field.RGB{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return field.RGB{R: c.R, G: c.G, B: c.B}, nil
}

// ParsePalette parses an ordered list of CSS colors.
func ParsePalette(colors []string) (field.Palette, error) {
	palette := make(field.Palette, 0, len(colors))
	for i, s := range colors {
		c, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		palette = append(palette, c)
	}
	return palette, nil
}

// SplitPalette parses a comma separated color list such as the embed
// snippet's data-colors attribute.
func SplitPalette(list string) (field.Palette, error) {
	if strings.TrimSpace(list) == "" {
		return nil, ErrEmptyPalette
	}
	return ParsePalette(splitColors(list))
}

// splitColors splits on commas outside parentheses so rgb(1,2,3) stays whole.
func splitColors(list string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range list {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, list[start:i])
				start = i + 1
			}
		}
	}
	return append(out, list[start:])
}
