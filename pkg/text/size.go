// Package text derives title typography from a style configuration.
//
// Both functions here are pure: [FontSize] scales the base size by a step
// function of the title's character count, and [Style] turns glow, stroke
// and extrusion settings into a [Paint].
package text

import "unicode/utf8"

// MinFontSize is the floor applied by FontSize.
const MinFontSize = 40

// FontSize returns the display size for title. Longer titles shrink in
// steps; the width of the actual glyphs is not consulted, so unusually wide
// characters can still overflow.
func FontSize(title string, base float64) float64 {
	return max(MinFontSize, base*sizeMultiplier(utf8.RuneCountInString(title)))
}

func sizeMultiplier(n int) float64 {
	switch {
	case n < 8:
		return 1
	case n < 15:
		return 0.8
	case n < 25:
		return 0.6
	default:
		return 0.4
	}
}
