package compose

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/thumbstudio/pkg/fonts"
	"github.com/matzehuels/thumbstudio/pkg/layers"
)

// textRun is one line of text positioned in output pixels.
type textRun struct {
	face     font.Face
	text     string
	x        float64 // left edge
	baseline float64
	tracking float64
}

func (r textRun) draw(dc *gg.Context, c color.Color, dx, dy float64) {
	dc.SetFontFace(r.face)
	dc.SetColor(c)
	x := r.x + dx
	prev := rune(-1)
	for _, ch := range r.text {
		if prev >= 0 {
			x += float64(r.face.Kern(prev, ch)) / 64
		}
		dc.DrawString(string(ch), x, r.baseline+dy)
		adv, _ := r.face.GlyphAdvance(ch)
		x += float64(adv)/64 + r.tracking
		prev = ch
	}
}

// baseline centers the face's ascent+descent in a line box, the way CSS
// distributes half-leading.
func baseline(f font.Face, top, lineHeight float64) float64 {
	m := f.Metrics()
	asc, desc := float64(m.Ascent)/64, float64(m.Descent)/64
	return top + (lineHeight-(asc+desc))/2 + asc
}

// contentPainter renders the content block at one output scale.
type contentPainter struct {
	block *Block
	layer layers.Content
	scale float64
	w, h  int
}

func (cp contentPainter) paint() (*image.NRGBA, error) {
	rgba := image.NewRGBA(image.Rect(0, 0, cp.w, cp.h))
	dc := gg.NewContextForRGBA(rgba)

	if cp.block.Badge != nil {
		if err := cp.paintBadge(dc, rgba); err != nil {
			return nil, err
		}
	}
	if err := cp.paintTitle(dc, rgba); err != nil {
		return nil, err
	}
	if cp.block.SubtitleText != "" {
		if err := cp.paintSubtitle(dc); err != nil {
			return nil, err
		}
	}
	return imaging.Clone(rgba), nil
}

func (cp contentPainter) titleRuns() ([]textRun, error) {
	s := cp.scale
	b := cp.block
	face, err := fonts.Face(titleTypeface(cp.layer.Modern), cp.layer.TitleSize*s)
	if err != nil {
		return nil, err
	}
	tracking := TitleTracking * cp.layer.TitleSize * s
	runs := make([]textRun, 0, len(b.TitleLines))
	for i, line := range b.TitleLines {
		top := (b.TitleTop + float64(i)*b.LineHeight) * s
		w := runWidth(face, line, tracking)
		runs = append(runs, textRun{
			face:     face,
			text:     line,
			x:        alignedX(b.Align, b.AnchorX*s, w),
			baseline: baseline(face, top, b.LineHeight*s),
			tracking: tracking,
		})
	}
	return runs, nil
}

func (cp contentPainter) paintTitle(dc *gg.Context, dst *image.RGBA) error {
	runs, err := cp.titleRuns()
	if err != nil {
		return err
	}
	s := cp.scale
	paint := cp.layer.Paint
	drawAll := func(dc *gg.Context, c color.Color, dx, dy float64) {
		for _, r := range runs {
			r.draw(dc, c, dx, dy)
		}
	}

	top := cp.block.TitleTop * s
	bottom := top + float64(len(runs))*cp.block.LineHeight*s

	// The first shadow is the front-most.
	for i := len(paint.Shadows) - 1; i >= 0; i-- {
		sh := paint.Shadows[i]
		if sh.Blur <= 0 {
			drawAll(dc, sh.Color, sh.DX*s, sh.DY*s)
			continue
		}
		sigma := boundSigma(sh.Blur*s/2, dst.Bounds())
		margin := 3*sigma + cp.block.LineHeight*s
		y0 := clampCoord(top+sh.DY*s-margin, cp.h)
		y1 := clampCoord(bottom+sh.DY*s+margin+1, cp.h)
		band := image.Rect(0, y0, cp.w, y1).Intersect(dst.Bounds())
		if band.Empty() {
			continue
		}
		mask := gg.NewContext(cp.w, cp.h)
		drawAll(mask, sh.Color, sh.DX*s, sh.DY*s)
		blurInto(dst, mask.Image(), band, sigma)
	}

	if st := paint.Stroke; st != nil && st.Width > 0 {
		r := st.Width * s
		n := int(math.Min(math.Max(8, math.Ceil(2*math.Pi*r)), maxStrokeCopies))
		for k := 0; k < n; k++ {
			a := 2 * math.Pi * float64(k) / float64(n)
			drawAll(dc, st.Color, r*math.Cos(a), r*math.Sin(a))
		}
	}

	drawAll(dc, paint.Fill, 0, 0)
	return nil
}

// maxStrokeCopies bounds the glyph copies drawn around the stroke ring.
const maxStrokeCopies = 1024

// clampCoord converts v to a pixel coordinate within [0, hi].
func clampCoord(v float64, hi int) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(0, math.Min(v, float64(hi))))
}

// blurInto blurs the band of src and draws it over dst.
func blurInto(dst *image.RGBA, src image.Image, band image.Rectangle, sigma float64) {
	blurred := imaging.Blur(imaging.Crop(src, band), boundSigma(sigma, band))
	draw.Draw(dst, band, blurred, image.Point{}, draw.Over)
}

func (cp contentPainter) paintBadge(dc *gg.Context, dst *image.RGBA) error {
	s := cp.scale
	b := cp.block
	r := b.Badge.Scale(s)
	radius := r.H / 2
	accent := cp.layer.Badge.Accent
	soft := color.NRGBA{R: accent.R, G: accent.G, B: accent.B, A: 0x40}

	sigma := BadgeGlow * s / 2
	margin := 3 * sigma
	band := image.Rect(int(r.X-margin), int(r.Y-margin), int(r.X+r.W+margin)+1, int(r.Y+r.H+margin)+1).Intersect(dst.Bounds())
	if !band.Empty() && sigma > 0 {
		glow := gg.NewContext(cp.w, cp.h)
		glow.SetColor(soft)
		glow.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
		glow.Fill()
		blurInto(dst, glow.Image(), band, sigma)
	}

	dc.SetColor(soft)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
	dc.Fill()

	bw := BadgeBorder * s
	dc.SetColor(color.NRGBA{R: accent.R, G: accent.G, B: accent.B, A: 0xff})
	dc.SetLineWidth(bw)
	dc.DrawRoundedRectangle(r.X+bw/2, r.Y+bw/2, r.W-bw, r.H-bw, radius-bw/2)
	dc.Stroke()

	face, err := fonts.Face(fonts.Bold, BadgeFontSize*s)
	if err != nil {
		return err
	}
	top := r.Y + (BadgeBorder+BadgePadY)*s
	textRun{
		face:     face,
		text:     b.BadgeLabel,
		x:        r.X + (BadgeBorder+BadgePadX)*s,
		baseline: baseline(face, top, BadgeLineHeight*s),
		tracking: BadgeTracking * BadgeFontSize * s,
	}.draw(dc, color.White, 0, 0)
	return nil
}

// subtitleColor is 90% white text inside a 90% opacity element.
var subtitleColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 207}

func (cp contentPainter) paintSubtitle(dc *gg.Context) error {
	s := cp.scale
	b := cp.block
	size := cp.layer.SubtitleSize * s
	if size <= 0 {
		return nil
	}
	face, err := fonts.Face(fonts.Medium, size)
	if err != nil {
		return err
	}
	tracking := SubtitleTracking * size
	w := runWidth(face, b.SubtitleText, tracking)
	textRun{
		face:     face,
		text:     b.SubtitleText,
		x:        alignedX(b.Align, b.AnchorX*s, w),
		baseline: baseline(face, b.SubtitleTop*s, cp.layer.SubtitleSize*SubtitleLineHeight*s),
		tracking: tracking,
	}.draw(dc, subtitleColor, 0, 0)
	return nil
}
