package compose

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/thumbstudio/pkg/asset"
	"github.com/matzehuels/thumbstudio/pkg/layers"
)

// latticeSpacing is the placeholder pattern period in on-screen pixels.
const latticeSpacing = 24.0

var (
	transparent  = color.NRGBA{}
	latticeColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x18}
)

// Paint renders the surface into dst at scale output pixels per on-screen
// pixel. dst is painted over, not cleared, and must be anchored at the
// origin.
func (s Surface) Paint(dst *image.NRGBA, scale float64) error {
	if dst.Bounds().Min != (image.Point{}) {
		return fmt.Errorf("paint target must start at the origin, got %v", dst.Bounds().Min)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return fmt.Errorf("invalid paint scale %v", scale)
	}
	p := &painter{
		surface:  s,
		scale:    scale,
		w:        dst.Bounds().Dx(),
		h:        dst.Bounds().Dy(),
		fitted:   map[*asset.Asset]*image.NRGBA{},
		filtered: map[string]*image.NRGBA{},
	}
	for _, l := range s.Stack {
		img, err := p.layer(l)
		if err != nil {
			return fmt.Errorf("paint %s layer: %w", l.Kind(), err)
		}
		if img != nil {
			composite(dst, img, l.Blend(), l.Opacity())
		}
	}
	return nil
}

// painter holds per-call state. Ghosts reuse the background's fitted and
// filtered rasters.
type painter struct {
	surface  Surface
	scale    float64
	w, h     int
	fitted   map[*asset.Asset]*image.NRGBA
	filtered map[string]*image.NRGBA
}

func (p *painter) canvas() *gg.Context { return gg.NewContext(p.w, p.h) }

func (p *painter) size() (float64, float64) { return float64(p.w), float64(p.h) }

func (p *painter) layer(l layers.Layer) (*image.NRGBA, error) {
	switch l := l.(type) {
	case layers.Background:
		return p.image(l.Source, l.Filter, l.Transform), nil
	case layers.Ghost:
		return p.image(l.Source, l.Filter, l.Transform), nil
	case layers.Placeholder:
		return p.placeholder(l), nil
	case layers.Gradient:
		w, h := p.size()
		return p.linear(l.Angle, l.From, l.To, w, h), nil
	case layers.LightLeak:
		return p.lightLeak(l), nil
	case layers.Dim:
		dc := p.canvas()
		dc.SetColor(l.Color)
		dc.Clear()
		return imaging.Clone(dc.Image()), nil
	case layers.Vignette:
		return p.vignette(l), nil
	case layers.Grain:
		dc := p.canvas()
		dc.SetFillStyle(grainPattern(l.TileSize * p.scale))
		dc.DrawRectangle(0, 0, float64(p.w), float64(p.h))
		dc.Fill()
		return imaging.Clone(dc.Image()), nil
	case layers.Scanlines:
		return p.scanlines(l), nil
	case layers.CinemaBars:
		w, h := p.size()
		bar := h * l.Fraction
		dc := p.canvas()
		dc.SetColor(l.Color)
		dc.DrawRectangle(0, 0, w, bar)
		dc.DrawRectangle(0, h-bar, w, bar)
		dc.Fill()
		return imaging.Clone(dc.Image()), nil
	case layers.Content:
		if p.surface.Block == nil {
			return nil, fmt.Errorf("content layer was not laid out")
		}
		return contentPainter{block: p.surface.Block, layer: l, scale: p.scale, w: p.w, h: p.h}.paint()
	case layers.Reflection:
		w, h := p.size()
		return p.linear(l.Angle, l.Color, transparent, w, h), nil
	default:
		return nil, fmt.Errorf("unknown layer %T", l)
	}
}

func (p *painter) image(src *asset.Asset, f layers.Filter, t layers.Transform) *image.NRGBA {
	if src == nil || src.Image == nil {
		return nil
	}
	img := p.filteredImage(src, f)
	if identity(t) {
		return img
	}
	if degenerate(t) {
		return nil
	}
	dc := p.canvas()
	dc.Translate(float64(p.w)/2, float64(p.h)/2)
	for _, op := range t {
		switch op.Fn {
		case layers.TransformScale:
			dc.Scale(op.X, op.Y)
		case layers.TransformRotate:
			dc.Rotate(gg.Radians(op.X))
		case layers.TransformTranslate:
			dc.Translate(op.X*p.scale, op.Y*p.scale)
		}
	}
	dc.DrawImageAnchored(img, 0, 0, 0.5, 0.5)
	return imaging.Clone(dc.Image())
}

func (p *painter) filteredImage(src *asset.Asset, f layers.Filter) *image.NRGBA {
	parts := make([]string, len(f))
	for i, op := range f {
		parts[i] = op.String()
	}
	key := fmt.Sprintf("%p|%s", src, strings.Join(parts, " "))
	if img, ok := p.filtered[key]; ok {
		return img
	}
	fitted, ok := p.fitted[src]
	if !ok {
		// Cover fit: fill the box, crop the overflow, keep the center.
		fitted = imaging.Fill(src.Image, p.w, p.h, imaging.Center, imaging.Lanczos)
		p.fitted[src] = fitted
	}
	img := applyFilter(fitted, f, p.scale)
	p.filtered[key] = img
	return img
}

func identity(t layers.Transform) bool {
	for _, op := range t {
		switch op.Fn {
		case layers.TransformScale:
			if op.X != 1 || op.Y != 1 {
				return false
			}
		case layers.TransformRotate:
			if math.Mod(op.X, 360) != 0 {
				return false
			}
		case layers.TransformTranslate:
			if op.X != 0 || op.Y != 0 {
				return false
			}
		}
	}
	return true
}

// degenerate reports transforms that collapse or are not finite; they
// render nothing.
func degenerate(t layers.Transform) bool {
	for _, op := range t {
		if math.IsNaN(op.X) || math.IsNaN(op.Y) || math.IsInf(op.X, 0) || math.IsInf(op.Y, 0) {
			return true
		}
		if op.Fn == layers.TransformScale && (op.X == 0 || op.Y == 0) {
			return true
		}
	}
	return false
}

// linear paints a CSS linear-gradient across a w×h canvas.
func (p *painter) linear(angle float64, from, to color.Color, w, h float64) *image.NRGBA {
	x0, y0, x1, y1 := gradientLine(angle, w, h)
	g := gg.NewLinearGradient(x0, y0, x1, y1)
	g.AddColorStop(0, from)
	g.AddColorStop(1, to)
	dc := p.canvas()
	dc.SetFillStyle(g)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
	return imaging.Clone(dc.Image())
}

func (p *painter) placeholder(l layers.Placeholder) *image.NRGBA {
	w, h := p.size()
	base := p.linear(cornerAngle(w, h), l.From, l.To, w, h)

	dc := p.canvas()
	dc.SetColor(latticeColor)
	dc.SetLineWidth(p.scale)
	step := latticeSpacing * p.scale
	for d := -h; d < w+h; d += step {
		dc.DrawLine(d, 0, d+h, h)
		dc.DrawLine(d+h, 0, d, h)
	}
	dc.Stroke()
	composite(base, imaging.Clone(dc.Image()), layers.BlendNormal, l.PatternOpacity)
	return base
}

func (p *painter) lightLeak(l layers.LightLeak) *image.NRGBA {
	w, h := p.size()
	bw, bh := w*l.BoxW, h*l.BoxH
	box := Rect{W: bw, H: bh}
	cx, cy := 0.0, 0.0
	if l.Corner == layers.CornerBottomRight {
		box.X, box.Y = w-bw, h-bh
		cx, cy = w, h
	}
	r := math.Hypot(bw, bh) * l.FadeAt
	if !(r > 0) {
		return nil
	}
	g := gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
	g.AddColorStop(0, l.Color)
	g.AddColorStop(1, transparent)

	dc := p.canvas()
	dc.SetFillStyle(g)
	dc.DrawRectangle(box.X, box.Y, box.W, box.H)
	dc.Fill()
	return imaging.Clone(dc.Image())
}

func (p *painter) vignette(l layers.Vignette) *image.NRGBA {
	w, h := p.size()
	cx, cy := w/2, h/2
	r := math.Hypot(cx, cy) * l.Outer
	if !(r > 0) {
		return nil
	}
	g := gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
	g.AddColorStop(0, transparent)
	g.AddColorStop(l.Inner/l.Outer, transparent)
	g.AddColorStop(1, color.Black)

	dc := p.canvas()
	dc.SetFillStyle(g)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
	return imaging.Clone(dc.Image())
}

// scanlines paints the last Line pixels of every Period, counting up from
// the bottom edge.
func (p *painter) scanlines(l layers.Scanlines) *image.NRGBA {
	if !(l.Period > 0) || l.Color.A == 0 {
		return nil
	}
	w, h := p.size()
	period := l.Period * p.scale
	gap := (l.Period - l.Line) * p.scale
	line := l.Line * p.scale

	dc := p.canvas()
	dc.SetColor(l.Color)
	for bottom := h - gap; bottom > 0; bottom -= period {
		dc.DrawRectangle(0, bottom-line, w, line)
	}
	dc.Fill()
	return imaging.Clone(dc.Image())
}
