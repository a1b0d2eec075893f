package layers

import (
	"image/color"

	"github.com/matzehuels/thumbstudio/pkg/asset"
	"github.com/matzehuels/thumbstudio/pkg/style"
	"github.com/matzehuels/thumbstudio/pkg/text"
)

// Kind tags a layer variant.
type Kind string

// Layer kinds.
const (
	KindBackground  Kind = "background"
	KindPlaceholder Kind = "placeholder"
	KindGhost       Kind = "ghost"
	KindGradient    Kind = "gradient"
	KindLightLeak   Kind = "light-leak"
	KindDim         Kind = "dim"
	KindVignette    Kind = "vignette"
	KindGrain       Kind = "grain"
	KindScanlines   Kind = "scanlines"
	KindCinemaBars  Kind = "cinema-bars"
	KindContent     Kind = "content"
	KindReflection  Kind = "reflection"
)

// Slot is a layer's fixed position in the paint order, bottom first. Layers
// that come in pairs (ghosts, light leaks) share a slot and keep their
// emission order within it.
type Slot int

// Paint order.
const (
	SlotBackground Slot = iota + 1
	SlotGhost
	SlotGradient
	SlotLightLeak
	SlotDim
	SlotVignette
	SlotGrain
	SlotScanlines
	SlotCinemaBars
	SlotContent
	SlotReflection
)

// Blend is a compositing mode.
type Blend string

// Blend modes.
const (
	BlendNormal   Blend = "normal"
	BlendScreen   Blend = "screen"
	BlendMultiply Blend = "multiply"
	BlendOverlay  Blend = "overlay"
)

// Layer is one entry of a Stack. The concrete types below are the only
// implementations; consumers switch on them.
type Layer interface {
	Kind() Kind
	Slot() Slot
	Blend() Blend
	Opacity() float64
}

// Base carries the fields every layer has.
type Base struct {
	Z     Slot    `json:"z"`
	Mode  Blend   `json:"blend"`
	Alpha float64 `json:"opacity"`
}

func (b Base) Slot() Slot       { return b.Z }
func (b Base) Blend() Blend     { return b.Mode }
func (b Base) Opacity() float64 { return b.Alpha }

// Background is the user image, cover-fitted to the canvas, with its
// grading filter chain and geometric transform.
type Background struct {
	Base
	Source    *asset.Asset `json:"-"`
	Digest    string       `json:"source"`
	Filter    Filter       `json:"filter"`
	Transform Transform    `json:"transform"`
}

// Placeholder stands in for the background when no image is loaded.
type Placeholder struct {
	Base
	From           color.NRGBA `json:"from"`
	To             color.NRGBA `json:"to"`
	PatternOpacity float64     `json:"pattern_opacity"`
}

// GhostSide tells the two chromatic aberration copies apart.
type GhostSide string

const (
	GhostA GhostSide = "a" // shifted right, screen
	GhostB GhostSide = "b" // shifted left, hue-rotated, multiply
)

// Ghost is a duplicate of the background with one extra shift (and for B
// one extra hue rotation) appended to the background's own chains.
type Ghost struct {
	Base
	Side      GhostSide    `json:"side"`
	Source    *asset.Asset `json:"-"`
	Digest    string       `json:"source"`
	Filter    Filter       `json:"filter"`
	Transform Transform    `json:"transform"`
}

// Gradient is a full-canvas linear gradient. Angle follows CSS: 0 points
// up, 90 points right.
type Gradient struct {
	Base
	From  color.NRGBA `json:"from"`
	To    color.NRGBA `json:"to"`
	Angle float64     `json:"angle"`
}

// Corner anchors a light leak.
type Corner string

const (
	CornerTopLeft     Corner = "top-left"
	CornerBottomRight Corner = "bottom-right"
)

// LightLeak is a radial glow anchored in a corner. Its box is a fraction
// of the canvas; the glow fades out at FadeAt of the box diagonal.
type LightLeak struct {
	Base
	Corner Corner      `json:"corner"`
	BoxW   float64     `json:"box_w"`
	BoxH   float64     `json:"box_h"`
	Color  color.NRGBA `json:"color"`
	FadeAt float64     `json:"fade_at"`
}

// Dim is a uniform fill.
type Dim struct {
	Base
	Color color.NRGBA `json:"color"`
}

// Vignette darkens toward the edges. Stops are fractions of the distance
// from the center to the farthest corner.
type Vignette struct {
	Base
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// Grain tiles the embedded noise texture at TileSize pixels.
type Grain struct {
	Base
	TileSize float64 `json:"tile_size"`
}

// Scanlines repeats a stripe every Period pixels, measured from the bottom
// edge; the last Line pixels of each period are painted.
type Scanlines struct {
	Base
	Period float64     `json:"period"`
	Line   float64     `json:"line"`
	Color  color.NRGBA `json:"color"`
}

// CinemaBars are two full-width bands at the top and bottom.
type CinemaBars struct {
	Base
	Fraction float64     `json:"fraction"` // of canvas height, per bar
	Color    color.NRGBA `json:"color"`
}

// Badge is the pill above the title.
type Badge struct {
	Label  string      `json:"label"`
	Accent color.NRGBA `json:"accent"`
}

// Content is the text block: optional badge, title and optional subtitle.
type Content struct {
	Base
	Badge        *Badge      `json:"badge,omitempty"`
	Title        string      `json:"title"`
	TitleSize    float64     `json:"title_size"`
	Modern       bool        `json:"modern"`
	Paint        text.Paint  `json:"paint"`
	Subtitle     string      `json:"subtitle,omitempty"`
	SubtitleSize float64     `json:"subtitle_size"`
	Align        style.Align `json:"align"`
	OffsetX      float64     `json:"offset_x"`
	OffsetY      float64     `json:"offset_y"`
}

// Reflection is the fixed diagonal sheen on top of everything.
type Reflection struct {
	Base
	Angle float64     `json:"angle"`
	Color color.NRGBA `json:"color"`
}

func (Background) Kind() Kind  { return KindBackground }
func (Placeholder) Kind() Kind { return KindPlaceholder }
func (Ghost) Kind() Kind       { return KindGhost }
func (Gradient) Kind() Kind    { return KindGradient }
func (LightLeak) Kind() Kind   { return KindLightLeak }
func (Dim) Kind() Kind         { return KindDim }
func (Vignette) Kind() Kind    { return KindVignette }
func (Grain) Kind() Kind       { return KindGrain }
func (Scanlines) Kind() Kind   { return KindScanlines }
func (CinemaBars) Kind() Kind  { return KindCinemaBars }
func (Content) Kind() Kind     { return KindContent }
func (Reflection) Kind() Kind  { return KindReflection }
