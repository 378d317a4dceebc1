// Package colorutil provides shared color utilities for depth-line display.
package colorutil

import (
	"fmt"
	"hash/fnv"
	"image/color"
)

// Common plot colors for depth lines.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// palette is the rotation used for candidate depth lines. Black is reserved
// for instrument-imported lines.
var palette = []color.RGBA{Blue, Green, Cyan, Magenta, Yellow, Red}

// LineColor returns a stable palette color for a depth-line name, so the
// same name plots in the same color across sessions.
func LineColor(name string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(name))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Hex formats a color as #rrggbb for persistence and display.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses a #rrggbb string. The alpha channel is always opaque.
func ParseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	c.A = 255
	return c, nil
}
