package text

import (
	"image/color"

	"github.com/matzehuels/thumbstudio/pkg/style"
)

// Shadow is one text-shadow term. Blur is the CSS blur radius in pixels.
type Shadow struct {
	DX    float64     `json:"dx"`
	DY    float64     `json:"dy"`
	Blur  float64     `json:"blur"`
	Color color.NRGBA `json:"color"`
}

// Stroke is an outline painted around each glyph.
type Stroke struct {
	Width float64     `json:"width"`
	Color color.NRGBA `json:"color"`
}

// Paint is the complete paint style of the title. Shadows are listed
// front-most first, so painters draw them in reverse.
type Paint struct {
	Fill    color.NRGBA `json:"fill"`
	Shadows []Shadow    `json:"shadows,omitempty"`
	Stroke  *Stroke     `json:"stroke,omitempty"`
}

// glowUnit converts glow intensity to a blur radius in pixels.
const glowUnit = 10

// Glow alphas for the three concentric halo terms, inner to outer blur.
var glowAlphas = [3]float64{0.8, 0.6, 0.4}

// extrudeGlowAlpha is the alpha of the single halo kept on extruded text.
const extrudeGlowAlpha = 0.6

// MaxExtrudeDepth bounds the extrusion layers. Deeper copies sit further
// off the title than any surface is wide.
const MaxExtrudeDepth = 2048

// Style computes the title paint from cfg. Extrusion, glow and stroke
// compose: extrusion replaces the plain glow halo list, and the stroke never
// alters the shadow list.
func Style(cfg style.Config) Paint {
	p := Paint{Fill: style.ParseColor(cfg.TextColor)}
	blur := float64(cfg.GlowIntensity * glowUnit)

	switch {
	case cfg.Extrude:
		for i := 1; i <= min(cfg.ExtrudeDepth, MaxExtrudeDepth); i++ {
			d := float64(i)
			p.Shadows = append(p.Shadows, Shadow{DX: d, DY: d, Color: style.ParseColor(cfg.ExtrudeColor)})
		}
		if cfg.GlowIntensity > 0 {
			p.Shadows = append(p.Shadows, Shadow{Blur: blur, Color: style.WithAlpha(cfg.GlowColor, extrudeGlowAlpha)})
		}
	case cfg.GlowIntensity > 0:
		radii := [3]float64{blur * 0.5, blur, blur * 2}
		for i, r := range radii {
			p.Shadows = append(p.Shadows, Shadow{Blur: r, Color: style.WithAlpha(cfg.GlowColor, glowAlphas[i])})
		}
	}

	if cfg.Stroke {
		p.Stroke = &Stroke{Width: cfg.StrokeWidth, Color: style.ParseColor(cfg.StrokeColor)}
	}
	return p
}
