package compose

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/thumbstudio/pkg/layers"
)

// Separable blend functions B(backdrop, source) on 0..1 channels.
var blendFuncs = map[layers.Blend]func(cb, cs float64) float64{
	layers.BlendScreen: func(cb, cs float64) float64 {
		return cb + cs - cb*cs
	},
	layers.BlendMultiply: func(cb, cs float64) float64 {
		return cb * cs
	},
	layers.BlendOverlay: func(cb, cs float64) float64 {
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	},
}

// composite draws src over dst with mode and opacity. Both images must
// share bounds anchored at the origin. Unknown modes composite as normal.
func composite(dst, src *image.NRGBA, mode layers.Blend, opacity float64) {
	opacity = clampUnit(opacity)
	if opacity == 0 {
		return
	}
	fn, ok := blendFuncs[mode]
	if !ok {
		out := imaging.Overlay(dst, src, image.Point{}, opacity)
		copy(dst.Pix, out.Pix)
		return
	}

	n := min(len(dst.Pix), len(src.Pix))
	for i := 0; i+3 < n; i += 4 {
		as := float64(src.Pix[i+3]) / 255 * opacity
		if as == 0 {
			continue
		}
		ab := float64(dst.Pix[i+3]) / 255
		ao := as + ab*(1-as)
		for c := 0; c < 3; c++ {
			cs := float64(src.Pix[i+c]) / 255
			cb := float64(dst.Pix[i+c]) / 255
			mixed := (1-ab)*cs + ab*fn(cb, cs)
			co := as*mixed + (1-as)*ab*cb
			dst.Pix[i+c] = unit8(co / ao)
		}
		dst.Pix[i+3] = unit8(ao)
	}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return math.Min(1, v)
}
