package layers

import (
	"encoding/json"
	"image/color"

	"github.com/matzehuels/thumbstudio/pkg/asset"
	"github.com/matzehuels/thumbstudio/pkg/cache"
	"github.com/matzehuels/thumbstudio/pkg/style"
	"github.com/matzehuels/thumbstudio/pkg/text"
)

// Fixed paint parameters. Only the style config varies between renders.
const (
	GhostOpacity  = 0.5
	GhostHueShift = 120.0

	GrainOpacity  = 0.15
	GrainTileSize = 150.0

	ScanlinePeriod = 4.0
	ScanlineWidth  = 2.0

	CinemaBarFraction = 0.1

	VignetteInner = 0.4
	VignetteOuter = 1.4

	PlaceholderPatternOpacity = 0.3

	ReflectionAngle = 45.0
)

var (
	black        = color.NRGBA{A: 0xff}
	placeholderA = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	reflection   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x0d}
)

// Stack is an ordered layer list, bottom first.
type Stack []Layer

// Build derives the layer stack for cfg and the optional background a.
// It is pure: equal inputs give equal stacks, byte for byte.
func Build(cfg style.Config, a *asset.Asset) Stack {
	var s Stack

	if a != nil {
		filter := backgroundFilter(cfg)
		transform := backgroundTransform(cfg)
		s = append(s, Background{
			Base:      Base{Z: SlotBackground, Mode: BlendNormal, Alpha: 1},
			Source:    a,
			Digest:    a.Digest,
			Filter:    filter,
			Transform: transform,
		})
		if cfg.Chromatic {
			s = append(s,
				Ghost{
					Base:      Base{Z: SlotGhost, Mode: BlendScreen, Alpha: GhostOpacity},
					Side:      GhostA,
					Source:    a,
					Digest:    a.Digest,
					Filter:    filter,
					Transform: transform.Then(Translate(cfg.ChromaticAmount, 0)),
				},
				Ghost{
					Base:      Base{Z: SlotGhost, Mode: BlendMultiply, Alpha: GhostOpacity},
					Side:      GhostB,
					Source:    a,
					Digest:    a.Digest,
					Filter:    filter.Then(FilterOp{Fn: FilterHueRotate, Amount: GhostHueShift}),
					Transform: transform.Then(Translate(-cfg.ChromaticAmount, 0)),
				},
			)
		}
	} else {
		s = append(s, Placeholder{
			Base:           Base{Z: SlotBackground, Mode: BlendNormal, Alpha: 1},
			From:           placeholderA,
			To:             black,
			PatternOpacity: PlaceholderPatternOpacity,
		})
	}

	if cfg.Gradient {
		s = append(s, Gradient{
			Base:  Base{Z: SlotGradient, Mode: BlendOverlay, Alpha: cfg.GradientOpacity},
			From:  style.ParseColor(cfg.GradientColor1),
			To:    style.ParseColor(cfg.GradientColor2),
			Angle: cfg.GradientAngle,
		})
	}

	if cfg.LightLeak {
		s = append(s,
			LightLeak{
				Base:   Base{Z: SlotLightLeak, Mode: BlendNormal, Alpha: 0.6},
				Corner: CornerTopLeft,
				BoxW:   0.7,
				BoxH:   0.7,
				Color:  withAlphaByte(cfg.AccentColor, 0x60),
				FadeAt: 0.6,
			},
			LightLeak{
				Base:   Base{Z: SlotLightLeak, Mode: BlendNormal, Alpha: 0.5},
				Corner: CornerBottomRight,
				BoxW:   0.6,
				BoxH:   0.6,
				Color:  withAlphaByte(cfg.GlowColor, 0x50),
				FadeAt: 0.7,
			},
		)
	}

	s = append(s,
		Dim{
			Base:  Base{Z: SlotDim, Mode: BlendNormal, Alpha: cfg.DimOpacity},
			Color: black,
		},
		Vignette{
			Base:  Base{Z: SlotVignette, Mode: BlendNormal, Alpha: cfg.Vignette},
			Inner: VignetteInner,
			Outer: VignetteOuter,
		},
	)

	if cfg.Grain {
		s = append(s, Grain{
			Base:     Base{Z: SlotGrain, Mode: BlendNormal, Alpha: GrainOpacity},
			TileSize: GrainTileSize,
		})
	}
	if cfg.Scanlines {
		s = append(s, Scanlines{
			Base:   Base{Z: SlotScanlines, Mode: BlendNormal, Alpha: 1},
			Period: ScanlinePeriod,
			Line:   ScanlineWidth,
			Color:  color.NRGBA{A: style.AlphaByte(cfg.ScanlinesOpacity)},
		})
	}
	if cfg.CinemaBars {
		s = append(s, CinemaBars{
			Base:     Base{Z: SlotCinemaBars, Mode: BlendNormal, Alpha: 1},
			Fraction: CinemaBarFraction,
			Color:    black,
		})
	}

	s = append(s, content(cfg), Reflection{
		Base:  Base{Z: SlotReflection, Mode: BlendNormal, Alpha: 1},
		Angle: ReflectionAngle,
		Color: reflection,
	})
	return s
}

func backgroundFilter(cfg style.Config) Filter {
	return Filter{
		{Fn: FilterBrightness, Amount: cfg.Brightness},
		{Fn: FilterContrast, Amount: cfg.Contrast},
		{Fn: FilterSaturate, Amount: cfg.Saturation},
		{Fn: FilterBlur, Amount: cfg.Blur},
		{Fn: FilterHueRotate, Amount: cfg.HueRotate},
		{Fn: FilterSepia, Amount: cfg.Sepia},
	}
}

func backgroundTransform(cfg style.Config) Transform {
	return Transform{
		Scale(cfg.Zoom / 100),
		Rotate(cfg.Rotation),
		Translate(cfg.OffsetX, cfg.OffsetY),
	}
}

func content(cfg style.Config) Content {
	c := Content{
		Base:         Base{Z: SlotContent, Mode: BlendNormal, Alpha: 1},
		Title:        cfg.Title,
		TitleSize:    text.FontSize(cfg.Title, cfg.BaseFontSize),
		Modern:       cfg.Modern,
		Paint:        text.Style(cfg),
		Subtitle:     cfg.Subtitle,
		SubtitleSize: cfg.SubFontSize,
		Align:        cfg.Align,
		OffsetX:      cfg.TextOffsetX,
		OffsetY:      cfg.TextOffsetY,
	}
	if cfg.Badge != style.BadgeNone {
		c.Badge = &Badge{Label: string(cfg.Badge), Accent: style.ParseColor(cfg.AccentColor)}
	}
	return c
}

func withAlphaByte(hex string, a uint8) color.NRGBA {
	c := style.ParseColor(hex)
	c.A = a
	return c
}

// Kinds lists the layer kinds in paint order.
func (s Stack) Kinds() []Kind {
	out := make([]Kind, len(s))
	for i, l := range s {
		out[i] = l.Kind()
	}
	return out
}

// Has reports whether a layer of kind k is present.
func (s Stack) Has(k Kind) bool {
	for _, l := range s {
		if l.Kind() == k {
			return true
		}
	}
	return false
}

type taggedLayer struct {
	Kind  Kind  `json:"kind"`
	Layer Layer `json:"layer"`
}

// MarshalJSON encodes the stack as a list of {kind, layer} objects. The
// encoding is canonical: field order is fixed by the layer types and
// nothing map-ordered is involved.
func (s Stack) MarshalJSON() ([]byte, error) {
	out := make([]taggedLayer, len(s))
	for i, l := range s {
		out[i] = taggedLayer{Kind: l.Kind(), Layer: l}
	}
	return json.Marshal(out)
}

// Hash returns the hex sha256 of the canonical encoding.
func (s Stack) Hash() (string, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
