// Package style holds the thumbnail style configuration.
//
// A [Config] is a flat, comparable value: every field is independently
// settable and the renderer never rejects a value, it only renders it.
// Changes are expressed as a [Patch] (pointer fields, nil = unchanged) and
// merged with [Config.Apply]. Presets are named patches (see [Presets]).
package style

// Align is the horizontal alignment of the content block.
type Align string

// Alignment modes. Any other value renders as centered.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Badge is the label shown in the pill above the title.
type Badge string

// Badge labels. BadgeNone hides the pill.
const (
	BadgeNone Badge = ""
	BadgeLive Badge = "LIVE"
	Badge4K   Badge = "4K"
	BadgePro  Badge = "PRO"
	BadgeNew  Badge = "NEW"
	BadgeHot  Badge = "HOT"
	BadgeFire Badge = "🔥"
)

// Badges lists the selectable badge labels in display order.
func Badges() []Badge {
	return []Badge{BadgeNone, BadgeLive, Badge4K, BadgePro, BadgeNew, BadgeHot, BadgeFire}
}

// Config is the complete set of user-adjustable visual parameters for one
// thumbnail. Colors are hex strings, opacities are 0..1, magnitudes are
// pixels, degrees or percent as noted.
type Config struct {
	// Content
	Title    string `toml:"title" json:"title"`
	Subtitle string `toml:"subtitle" json:"subtitle"`
	Badge    Badge  `toml:"badge" json:"badge"`

	// Text colors and typography
	GlowColor     string  `toml:"glow_color" json:"glow_color"`
	AccentColor   string  `toml:"accent_color" json:"accent_color"`
	TextColor     string  `toml:"text_color" json:"text_color"`
	GlowIntensity int     `toml:"glow_intensity" json:"glow_intensity"`
	BaseFontSize  float64 `toml:"base_font_size" json:"base_font_size"`
	SubFontSize   float64 `toml:"sub_font_size" json:"sub_font_size"`
	Modern        bool    `toml:"modern" json:"modern"` // sans bold; false = italic

	// Text positioning
	Align       Align   `toml:"align" json:"align"`
	TextOffsetX float64 `toml:"text_offset_x" json:"text_offset_x"`
	TextOffsetY float64 `toml:"text_offset_y" json:"text_offset_y"`

	// Text stroke
	Stroke      bool    `toml:"stroke" json:"stroke"`
	StrokeColor string  `toml:"stroke_color" json:"stroke_color"`
	StrokeWidth float64 `toml:"stroke_width" json:"stroke_width"`

	// 3D extrusion
	Extrude      bool   `toml:"extrude" json:"extrude"`
	ExtrudeColor string `toml:"extrude_color" json:"extrude_color"`
	ExtrudeDepth int    `toml:"extrude_depth" json:"extrude_depth"`

	// Image grading (percent unless noted)
	Brightness float64 `toml:"brightness" json:"brightness"`
	Contrast   float64 `toml:"contrast" json:"contrast"`
	Saturation float64 `toml:"saturation" json:"saturation"`
	Blur       float64 `toml:"blur" json:"blur"`             // px
	HueRotate  float64 `toml:"hue_rotate" json:"hue_rotate"` // degrees
	Sepia      float64 `toml:"sepia" json:"sepia"`

	// Image geometry
	Zoom     float64 `toml:"zoom" json:"zoom"`         // percent, 100 = cover
	Rotation float64 `toml:"rotation" json:"rotation"` // degrees
	OffsetX  float64 `toml:"offset_x" json:"offset_x"`
	OffsetY  float64 `toml:"offset_y" json:"offset_y"`

	// Overlays
	DimOpacity       float64 `toml:"dim_opacity" json:"dim_opacity"`
	Vignette         float64 `toml:"vignette" json:"vignette"`
	Grain            bool    `toml:"grain" json:"grain"`
	CinemaBars       bool    `toml:"cinema_bars" json:"cinema_bars"`
	LightLeak        bool    `toml:"light_leak" json:"light_leak"`
	Scanlines        bool    `toml:"scanlines" json:"scanlines"`
	ScanlinesOpacity float64 `toml:"scanlines_opacity" json:"scanlines_opacity"`

	// Gradient overlay
	Gradient        bool    `toml:"gradient" json:"gradient"`
	GradientColor1  string  `toml:"gradient_color1" json:"gradient_color1"`
	GradientColor2  string  `toml:"gradient_color2" json:"gradient_color2"`
	GradientAngle   float64 `toml:"gradient_angle" json:"gradient_angle"`
	GradientOpacity float64 `toml:"gradient_opacity" json:"gradient_opacity"`

	// Chromatic aberration
	Chromatic       bool    `toml:"chromatic" json:"chromatic"`
	ChromaticAmount float64 `toml:"chromatic_amount" json:"chromatic_amount"`
}

// Default returns the initial style of a fresh session.
func Default() Config {
	return Config{
		Title:    "Exclusive",
		Subtitle: "Review 2024",
		Badge:    BadgeNew,

		GlowColor:     "#ffffff",
		AccentColor:   "#3b82f6",
		TextColor:     "#ffffff",
		GlowIntensity: 3,
		BaseFontSize:  120,
		SubFontSize:   24,
		Modern:        true,

		Align: AlignCenter,

		StrokeColor: "#000000",
		StrokeWidth: 2,

		ExtrudeColor: "#000000",
		ExtrudeDepth: 4,

		Brightness: 100,
		Contrast:   120,
		Saturation: 100,
		Sepia:      10,

		Zoom: 100,

		DimOpacity:       0.2,
		Vignette:         0.4,
		Grain:            true,
		CinemaBars:       true,
		LightLeak:        true,
		ScanlinesOpacity: 0.1,

		GradientColor1:  "#ff0080",
		GradientColor2:  "#7928ca",
		GradientAngle:   135,
		GradientOpacity: 0.3,

		Chromatic:       true,
		ChromaticAmount: 3,
	}
}
