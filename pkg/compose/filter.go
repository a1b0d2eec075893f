package compose

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/thumbstudio/pkg/layers"
)

// colorOp is an affine color transform v' = m·v + off on linear 0..1 RGB
// values, as the CSS filter functions define them.
type colorOp struct {
	m   [3][3]float64
	off float64
}

func diag(k, off float64) colorOp {
	return colorOp{m: [3][3]float64{{k, 0, 0}, {0, k, 0}, {0, 0, k}}, off: off}
}

func saturateOp(s float64) colorOp {
	return colorOp{m: [3][3]float64{
		{0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s},
		{0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s},
		{0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s},
	}}
}

func hueRotateOp(deg float64) colorOp {
	a := deg * math.Pi / 180
	c, s := math.Cos(a), math.Sin(a)
	return colorOp{m: [3][3]float64{
		{0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928},
		{0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283},
		{0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072},
	}}
}

func sepiaOp(amount float64) colorOp {
	k := 1 - min(1, amount)
	return colorOp{m: [3][3]float64{
		{0.393 + 0.607*k, 0.769 - 0.769*k, 0.189 - 0.189*k},
		{0.349 - 0.349*k, 0.686 + 0.314*k, 0.168 - 0.168*k},
		{0.272 - 0.272*k, 0.534 - 0.534*k, 0.131 + 0.869*k},
	}}
}

// toColorOp converts a non-blur filter step. Identity steps report false.
func toColorOp(op layers.FilterOp) (colorOp, bool) {
	switch op.Fn {
	case layers.FilterBrightness:
		if op.Amount == 100 {
			return colorOp{}, false
		}
		return diag(op.Amount/100, 0), true
	case layers.FilterContrast:
		if op.Amount == 100 {
			return colorOp{}, false
		}
		k := op.Amount / 100
		return diag(k, 0.5-0.5*k), true
	case layers.FilterSaturate:
		if op.Amount == 100 {
			return colorOp{}, false
		}
		return saturateOp(op.Amount / 100), true
	case layers.FilterHueRotate:
		if math.Mod(op.Amount, 360) == 0 {
			return colorOp{}, false
		}
		return hueRotateOp(op.Amount), true
	case layers.FilterSepia:
		if op.Amount == 0 {
			return colorOp{}, false
		}
		return sepiaOp(op.Amount / 100), true
	}
	return colorOp{}, false
}

// filterValid reports whether a chain would be accepted by a browser: a
// negative amount on any function other than hue-rotate invalidates the
// whole declaration, which then renders unfiltered.
func filterValid(f layers.Filter) bool {
	for _, op := range f {
		if op.Fn != layers.FilterHueRotate && op.Amount < 0 {
			return false
		}
		if math.IsNaN(op.Amount) || math.IsInf(op.Amount, 0) {
			return false
		}
	}
	return true
}

// applyFilter runs f over img. Consecutive color steps are fused into one
// pass with clamping between steps; blur radii are multiplied by scale.
func applyFilter(img *image.NRGBA, f layers.Filter, scale float64) *image.NRGBA {
	if !filterValid(f) {
		return img
	}
	var pending []colorOp
	flush := func() {
		if len(pending) == 0 {
			return
		}
		ops := pending
		pending = nil
		img = imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			v := [3]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
			for _, op := range ops {
				v = op.apply(v)
			}
			return color.NRGBA{R: unit8(v[0]), G: unit8(v[1]), B: unit8(v[2]), A: c.A}
		})
	}
	for _, op := range f {
		if op.Fn == layers.FilterBlur {
			flush()
			if sigma := op.Amount * scale; sigma > 0 {
				img = imaging.Blur(img, boundSigma(sigma, img.Bounds()))
			}
			continue
		}
		if c, ok := toColorOp(op); ok {
			pending = append(pending, c)
		}
	}
	flush()
	return img
}

func (op colorOp) apply(v [3]float64) [3]float64 {
	var out [3]float64
	for i := range out {
		x := op.m[i][0]*v[0] + op.m[i][1]*v[1] + op.m[i][2]*v[2] + op.off
		out[i] = math.Min(1, math.Max(0, x))
	}
	return out
}

// unit8 converts a 0..1 channel to a byte, clamping.
func unit8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

// boundSigma caps a blur sigma at the larger side of the blurred area. The
// kernel is sampled out to 3σ, and past the area's size every pixel already
// averages the whole area.
func boundSigma(sigma float64, r image.Rectangle) float64 {
	return min(sigma, float64(max(r.Dx(), r.Dy(), 1)))
}
