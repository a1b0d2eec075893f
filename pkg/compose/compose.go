// Package compose lays out a layer stack on a 16:9 surface and paints it.
//
// [Compose] fixes the surface box for an on-screen width and resolves the
// geometry every layer needs (the content block is the only layer whose
// geometry depends on measured text). [Surface.Paint] then renders the
// layers in stack order into an RGBA target at any output scale:
//
//	surf, err := compose.Compose(stack, 1280)
//	dst := image.NewNRGBA(image.Rect(0, 0, 1024, 576))
//	err = surf.Paint(dst, 1024.0/1280)
//
// Each layer is painted into its own transparent buffer and composited with
// its blend mode and opacity, so switching one layer on or off never moves
// another.
package compose

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"

	"github.com/matzehuels/thumbstudio/pkg/fonts"
	"github.com/matzehuels/thumbstudio/pkg/layers"
	"github.com/matzehuels/thumbstudio/pkg/style"
)

// AspectRatio is width over height of every surface.
const AspectRatio = 16.0 / 9.0

// Content block metrics, in on-screen pixels.
const (
	BlockPadding = 48.0 // all sides
	BlockInset   = 64.0 // replaces the padding on the aligned side for left/right

	TitleLineHeight    = 1.1
	TitleTracking      = -0.025 // em
	SubtitleLineHeight = 1.5
	SubtitleTracking   = 0.2 // em
	SubtitleGap        = 16.0

	BadgeFontSize   = 12.0
	BadgeLineHeight = 16.0
	BadgeTracking   = 0.1 // em
	BadgePadX       = 16.0
	BadgePadY       = 6.0
	BadgeBorder     = 1.0
	BadgeGap        = 24.0
	BadgeGlow       = 20.0
)

// Rect is an axis-aligned rectangle in on-screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Scale returns r multiplied by s.
func (r Rect) Scale(s float64) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, W: r.W * s, H: r.H * s}
}

// Block is the resolved geometry of the content layer.
type Block struct {
	Align    style.Align // normalized to left, center or right
	AnchorX  float64     // left edge, center line or right edge, offset applied
	MaxWidth float64
	Top      float64
	Height   float64

	Badge      *Rect
	BadgeLabel string

	TitleTop   float64
	TitleLines []string
	LineHeight float64

	SubtitleTop  float64
	SubtitleText string
}

// Surface is a laid-out stack ready to paint.
type Surface struct {
	Width, Height float64
	Stack         layers.Stack
	Block         *Block
}

// Compose lays out stack on a surface width pixels wide. The height follows
// from the fixed aspect ratio.
func Compose(stack layers.Stack, width float64) (Surface, error) {
	s := Surface{Width: width, Height: width / AspectRatio, Stack: stack}
	for _, l := range stack {
		c, ok := l.(layers.Content)
		if !ok {
			continue
		}
		b, err := layoutContent(c, s.Width, s.Height)
		if err != nil {
			return Surface{}, fmt.Errorf("layout content: %w", err)
		}
		s.Block = b
	}
	return s, nil
}

// Box returns the surface rectangle.
func (s Surface) Box() Rect { return Rect{W: s.Width, H: s.Height} }

func normalizeAlign(a style.Align) style.Align {
	switch a {
	case style.AlignLeft, style.AlignRight:
		return a
	default:
		return style.AlignCenter
	}
}

func titleTypeface(modern bool) fonts.Typeface {
	if modern {
		return fonts.Bold
	}
	return fonts.BoldItalic
}

func layoutContent(c layers.Content, w, h float64) (*Block, error) {
	b := &Block{Align: normalizeAlign(c.Align)}

	left, right := BlockPadding, w-BlockPadding
	switch b.Align {
	case style.AlignLeft:
		left = BlockInset
		b.AnchorX = left
	case style.AlignRight:
		right = w - BlockInset
		b.AnchorX = right
	default:
		b.AnchorX = (left + right) / 2
	}
	b.AnchorX += c.OffsetX
	b.MaxWidth = max(0, right-left)

	height := 0.0
	if c.Badge != nil {
		face, err := fonts.Face(fonts.Bold, BadgeFontSize)
		if err != nil {
			return nil, err
		}
		label := strings.ToUpper(c.Badge.Label)
		bw := runWidth(face, label, BadgeTracking*BadgeFontSize) + 2*(BadgePadX+BadgeBorder)
		bh := BadgeLineHeight + 2*(BadgePadY+BadgeBorder)
		b.Badge = &Rect{X: alignedX(b.Align, b.AnchorX, bw), W: bw, H: bh}
		b.BadgeLabel = label
		height += bh + BadgeGap
	}

	face, err := fonts.Face(titleTypeface(c.Modern), c.TitleSize)
	if err != nil {
		return nil, err
	}
	b.TitleTop = height
	b.LineHeight = c.TitleSize * TitleLineHeight
	b.TitleLines = wrap(face, c.Title, TitleTracking*c.TitleSize, b.MaxWidth)
	height += float64(len(b.TitleLines)) * b.LineHeight

	if c.Subtitle != "" {
		height += SubtitleGap
		b.SubtitleTop = height
		b.SubtitleText = strings.ToUpper(c.Subtitle)
		height += c.SubtitleSize * SubtitleLineHeight
	}

	b.Height = height
	b.Top = (h-height)/2 + c.OffsetY
	if b.Badge != nil {
		b.Badge.Y = b.Top
	}
	b.TitleTop += b.Top
	b.SubtitleTop += b.Top
	return b, nil
}

// alignedX returns the left edge of a box of width w placed at anchor.
func alignedX(a style.Align, anchor, w float64) float64 {
	switch a {
	case style.AlignLeft:
		return anchor
	case style.AlignRight:
		return anchor - w
	default:
		return anchor - w/2
	}
}

func advance(f font.Face, prev, r rune) float64 {
	adv, _ := f.GlyphAdvance(r)
	w := float64(adv) / 64
	if prev >= 0 {
		w += float64(f.Kern(prev, r)) / 64
	}
	return w
}

// runWidth measures s with tracking added after every character.
func runWidth(f font.Face, s string, tracking float64) float64 {
	w := 0.0
	prev := rune(-1)
	for _, r := range s {
		w += advance(f, prev, r) + tracking
		prev = r
	}
	return w
}

// wrap breaks s into lines no wider than maxW at word boundaries. Explicit
// newlines always break. A single word wider than maxW gets its own line.
// An empty title still occupies one line.
func wrap(f font.Face, s string, tracking, maxW float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			next := line + " " + word
			if runWidth(f, next, tracking) > maxW {
				lines = append(lines, line)
				line = word
				continue
			}
			line = next
		}
		lines = append(lines, line)
	}
	return lines
}

// gradientLine returns the start and end points of a CSS linear gradient at
// angle degrees (0 = toward the top, clockwise) across a w×h box.
func gradientLine(angle, w, h float64) (x0, y0, x1, y1 float64) {
	a := angle * math.Pi / 180
	dx, dy := math.Sin(a), -math.Cos(a)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := w/2, h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

// cornerAngle is the CSS angle of "to bottom right" for a w×h box.
func cornerAngle(w, h float64) float64 {
	return 180 - math.Atan2(h, w)*180/math.Pi
}
