package style

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor converts a "#rgb" or "#rrggbb" string to an opaque color.
// Unparseable input yields opaque black; style values are never rejected.
func ParseColor(hex string) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// WithAlpha returns hex at the given alpha (0..1, clamped).
func WithAlpha(hex string, alpha float64) color.NRGBA {
	c := ParseColor(hex)
	c.A = AlphaByte(alpha)
	return c
}

// AlphaByte converts a 0..1 alpha to a byte, clamping out-of-range input.
func AlphaByte(alpha float64) uint8 {
	if math.IsNaN(alpha) || alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return 0xff
	}
	return uint8(math.Round(alpha * 0xff))
}
