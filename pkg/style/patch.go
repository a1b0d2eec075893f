package style

// Patch is a partial Config. Nil fields leave the target unchanged.
type Patch struct {
	Title            *string  `toml:"title" json:"title,omitempty"`
	Subtitle         *string  `toml:"subtitle" json:"subtitle,omitempty"`
	Badge            *Badge   `toml:"badge" json:"badge,omitempty"`
	GlowColor        *string  `toml:"glow_color" json:"glow_color,omitempty"`
	AccentColor      *string  `toml:"accent_color" json:"accent_color,omitempty"`
	TextColor        *string  `toml:"text_color" json:"text_color,omitempty"`
	GlowIntensity    *int     `toml:"glow_intensity" json:"glow_intensity,omitempty"`
	BaseFontSize     *float64 `toml:"base_font_size" json:"base_font_size,omitempty"`
	SubFontSize      *float64 `toml:"sub_font_size" json:"sub_font_size,omitempty"`
	Modern           *bool    `toml:"modern" json:"modern,omitempty"`
	Align            *Align   `toml:"align" json:"align,omitempty"`
	TextOffsetX      *float64 `toml:"text_offset_x" json:"text_offset_x,omitempty"`
	TextOffsetY      *float64 `toml:"text_offset_y" json:"text_offset_y,omitempty"`
	Stroke           *bool    `toml:"stroke" json:"stroke,omitempty"`
	StrokeColor      *string  `toml:"stroke_color" json:"stroke_color,omitempty"`
	StrokeWidth      *float64 `toml:"stroke_width" json:"stroke_width,omitempty"`
	Extrude          *bool    `toml:"extrude" json:"extrude,omitempty"`
	ExtrudeColor     *string  `toml:"extrude_color" json:"extrude_color,omitempty"`
	ExtrudeDepth     *int     `toml:"extrude_depth" json:"extrude_depth,omitempty"`
	Brightness       *float64 `toml:"brightness" json:"brightness,omitempty"`
	Contrast         *float64 `toml:"contrast" json:"contrast,omitempty"`
	Saturation       *float64 `toml:"saturation" json:"saturation,omitempty"`
	Blur             *float64 `toml:"blur" json:"blur,omitempty"`
	HueRotate        *float64 `toml:"hue_rotate" json:"hue_rotate,omitempty"`
	Sepia            *float64 `toml:"sepia" json:"sepia,omitempty"`
	Zoom             *float64 `toml:"zoom" json:"zoom,omitempty"`
	Rotation         *float64 `toml:"rotation" json:"rotation,omitempty"`
	OffsetX          *float64 `toml:"offset_x" json:"offset_x,omitempty"`
	OffsetY          *float64 `toml:"offset_y" json:"offset_y,omitempty"`
	DimOpacity       *float64 `toml:"dim_opacity" json:"dim_opacity,omitempty"`
	Vignette         *float64 `toml:"vignette" json:"vignette,omitempty"`
	Grain            *bool    `toml:"grain" json:"grain,omitempty"`
	CinemaBars       *bool    `toml:"cinema_bars" json:"cinema_bars,omitempty"`
	LightLeak        *bool    `toml:"light_leak" json:"light_leak,omitempty"`
	Scanlines        *bool    `toml:"scanlines" json:"scanlines,omitempty"`
	ScanlinesOpacity *float64 `toml:"scanlines_opacity" json:"scanlines_opacity,omitempty"`
	Gradient         *bool    `toml:"gradient" json:"gradient,omitempty"`
	GradientColor1   *string  `toml:"gradient_color1" json:"gradient_color1,omitempty"`
	GradientColor2   *string  `toml:"gradient_color2" json:"gradient_color2,omitempty"`
	GradientAngle    *float64 `toml:"gradient_angle" json:"gradient_angle,omitempty"`
	GradientOpacity  *float64 `toml:"gradient_opacity" json:"gradient_opacity,omitempty"`
	Chromatic        *bool    `toml:"chromatic" json:"chromatic,omitempty"`
	ChromaticAmount  *float64 `toml:"chromatic_amount" json:"chromatic_amount,omitempty"`
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T { return &v }

// Apply returns a copy of c with every non-nil field of p assigned.
// It is the only way configs change: setters, presets and style files
// all reduce to a Patch.
func (c Config) Apply(p Patch) Config {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Subtitle != nil {
		c.Subtitle = *p.Subtitle
	}
	if p.Badge != nil {
		c.Badge = *p.Badge
	}
	if p.GlowColor != nil {
		c.GlowColor = *p.GlowColor
	}
	if p.AccentColor != nil {
		c.AccentColor = *p.AccentColor
	}
	if p.TextColor != nil {
		c.TextColor = *p.TextColor
	}
	if p.GlowIntensity != nil {
		c.GlowIntensity = *p.GlowIntensity
	}
	if p.BaseFontSize != nil {
		c.BaseFontSize = *p.BaseFontSize
	}
	if p.SubFontSize != nil {
		c.SubFontSize = *p.SubFontSize
	}
	if p.Modern != nil {
		c.Modern = *p.Modern
	}
	if p.Align != nil {
		c.Align = *p.Align
	}
	if p.TextOffsetX != nil {
		c.TextOffsetX = *p.TextOffsetX
	}
	if p.TextOffsetY != nil {
		c.TextOffsetY = *p.TextOffsetY
	}
	if p.Stroke != nil {
		c.Stroke = *p.Stroke
	}
	if p.StrokeColor != nil {
		c.StrokeColor = *p.StrokeColor
	}
	if p.StrokeWidth != nil {
		c.StrokeWidth = *p.StrokeWidth
	}
	if p.Extrude != nil {
		c.Extrude = *p.Extrude
	}
	if p.ExtrudeColor != nil {
		c.ExtrudeColor = *p.ExtrudeColor
	}
	if p.ExtrudeDepth != nil {
		c.ExtrudeDepth = *p.ExtrudeDepth
	}
	if p.Brightness != nil {
		c.Brightness = *p.Brightness
	}
	if p.Contrast != nil {
		c.Contrast = *p.Contrast
	}
	if p.Saturation != nil {
		c.Saturation = *p.Saturation
	}
	if p.Blur != nil {
		c.Blur = *p.Blur
	}
	if p.HueRotate != nil {
		c.HueRotate = *p.HueRotate
	}
	if p.Sepia != nil {
		c.Sepia = *p.Sepia
	}
	if p.Zoom != nil {
		c.Zoom = *p.Zoom
	}
	if p.Rotation != nil {
		c.Rotation = *p.Rotation
	}
	if p.OffsetX != nil {
		c.OffsetX = *p.OffsetX
	}
	if p.OffsetY != nil {
		c.OffsetY = *p.OffsetY
	}
	if p.DimOpacity != nil {
		c.DimOpacity = *p.DimOpacity
	}
	if p.Vignette != nil {
		c.Vignette = *p.Vignette
	}
	if p.Grain != nil {
		c.Grain = *p.Grain
	}
	if p.CinemaBars != nil {
		c.CinemaBars = *p.CinemaBars
	}
	if p.LightLeak != nil {
		c.LightLeak = *p.LightLeak
	}
	if p.Scanlines != nil {
		c.Scanlines = *p.Scanlines
	}
	if p.ScanlinesOpacity != nil {
		c.ScanlinesOpacity = *p.ScanlinesOpacity
	}
	if p.Gradient != nil {
		c.Gradient = *p.Gradient
	}
	if p.GradientColor1 != nil {
		c.GradientColor1 = *p.GradientColor1
	}
	if p.GradientColor2 != nil {
		c.GradientColor2 = *p.GradientColor2
	}
	if p.GradientAngle != nil {
		c.GradientAngle = *p.GradientAngle
	}
	if p.GradientOpacity != nil {
		c.GradientOpacity = *p.GradientOpacity
	}
	if p.Chromatic != nil {
		c.Chromatic = *p.Chromatic
	}
	if p.ChromaticAmount != nil {
		c.ChromaticAmount = *p.ChromaticAmount
	}
	return c
}

// Merge returns a patch holding the fields of p overridden by q.
func (p Patch) Merge(q Patch) Patch {
	if q.Title != nil {
		p.Title = q.Title
	}
	if q.Subtitle != nil {
		p.Subtitle = q.Subtitle
	}
	if q.Badge != nil {
		p.Badge = q.Badge
	}
	if q.GlowColor != nil {
		p.GlowColor = q.GlowColor
	}
	if q.AccentColor != nil {
		p.AccentColor = q.AccentColor
	}
	if q.TextColor != nil {
		p.TextColor = q.TextColor
	}
	if q.GlowIntensity != nil {
		p.GlowIntensity = q.GlowIntensity
	}
	if q.BaseFontSize != nil {
		p.BaseFontSize = q.BaseFontSize
	}
	if q.SubFontSize != nil {
		p.SubFontSize = q.SubFontSize
	}
	if q.Modern != nil {
		p.Modern = q.Modern
	}
	if q.Align != nil {
		p.Align = q.Align
	}
	if q.TextOffsetX != nil {
		p.TextOffsetX = q.TextOffsetX
	}
	if q.TextOffsetY != nil {
		p.TextOffsetY = q.TextOffsetY
	}
	if q.Stroke != nil {
		p.Stroke = q.Stroke
	}
	if q.StrokeColor != nil {
		p.StrokeColor = q.StrokeColor
	}
	if q.StrokeWidth != nil {
		p.StrokeWidth = q.StrokeWidth
	}
	if q.Extrude != nil {
		p.Extrude = q.Extrude
	}
	if q.ExtrudeColor != nil {
		p.ExtrudeColor = q.ExtrudeColor
	}
	if q.ExtrudeDepth != nil {
		p.ExtrudeDepth = q.ExtrudeDepth
	}
	if q.Brightness != nil {
		p.Brightness = q.Brightness
	}
	if q.Contrast != nil {
		p.Contrast = q.Contrast
	}
	if q.Saturation != nil {
		p.Saturation = q.Saturation
	}
	if q.Blur != nil {
		p.Blur = q.Blur
	}
	if q.HueRotate != nil {
		p.HueRotate = q.HueRotate
	}
	if q.Sepia != nil {
		p.Sepia = q.Sepia
	}
	if q.Zoom != nil {
		p.Zoom = q.Zoom
	}
	if q.Rotation != nil {
		p.Rotation = q.Rotation
	}
	if q.OffsetX != nil {
		p.OffsetX = q.OffsetX
	}
	if q.OffsetY != nil {
		p.OffsetY = q.OffsetY
	}
	if q.DimOpacity != nil {
		p.DimOpacity = q.DimOpacity
	}
	if q.Vignette != nil {
		p.Vignette = q.Vignette
	}
	if q.Grain != nil {
		p.Grain = q.Grain
	}
	if q.CinemaBars != nil {
		p.CinemaBars = q.CinemaBars
	}
	if q.LightLeak != nil {
		p.LightLeak = q.LightLeak
	}
	if q.Scanlines != nil {
		p.Scanlines = q.Scanlines
	}
	if q.ScanlinesOpacity != nil {
		p.ScanlinesOpacity = q.ScanlinesOpacity
	}
	if q.Gradient != nil {
		p.Gradient = q.Gradient
	}
	if q.GradientColor1 != nil {
		p.GradientColor1 = q.GradientColor1
	}
	if q.GradientColor2 != nil {
		p.GradientColor2 = q.GradientColor2
	}
	if q.GradientAngle != nil {
		p.GradientAngle = q.GradientAngle
	}
	if q.GradientOpacity != nil {
		p.GradientOpacity = q.GradientOpacity
	}
	if q.Chromatic != nil {
		p.Chromatic = q.Chromatic
	}
	if q.ChromaticAmount != nil {
		p.ChromaticAmount = q.ChromaticAmount
	}
	return p
}

// Fields returns the toml names of the fields p sets, in declaration order.
func (p Patch) Fields() []string {
	var names []string
	if p.Title != nil {
		names = append(names, "title")
	}
	if p.Subtitle != nil {
		names = append(names, "subtitle")
	}
	if p.Badge != nil {
		names = append(names, "badge")
	}
	if p.GlowColor != nil {
		names = append(names, "glow_color")
	}
	if p.AccentColor != nil {
		names = append(names, "accent_color")
	}
	if p.TextColor != nil {
		names = append(names, "text_color")
	}
	if p.GlowIntensity != nil {
		names = append(names, "glow_intensity")
	}
	if p.BaseFontSize != nil {
		names = append(names, "base_font_size")
	}
	if p.SubFontSize != nil {
		names = append(names, "sub_font_size")
	}
	if p.Modern != nil {
		names = append(names, "modern")
	}
	if p.Align != nil {
		names = append(names, "align")
	}
	if p.TextOffsetX != nil {
		names = append(names, "text_offset_x")
	}
	if p.TextOffsetY != nil {
		names = append(names, "text_offset_y")
	}
	if p.Stroke != nil {
		names = append(names, "stroke")
	}
	if p.StrokeColor != nil {
		names = append(names, "stroke_color")
	}
	if p.StrokeWidth != nil {
		names = append(names, "stroke_width")
	}
	if p.Extrude != nil {
		names = append(names, "extrude")
	}
	if p.ExtrudeColor != nil {
		names = append(names, "extrude_color")
	}
	if p.ExtrudeDepth != nil {
		names = append(names, "extrude_depth")
	}
	if p.Brightness != nil {
		names = append(names, "brightness")
	}
	if p.Contrast != nil {
		names = append(names, "contrast")
	}
	if p.Saturation != nil {
		names = append(names, "saturation")
	}
	if p.Blur != nil {
		names = append(names, "blur")
	}
	if p.HueRotate != nil {
		names = append(names, "hue_rotate")
	}
	if p.Sepia != nil {
		names = append(names, "sepia")
	}
	if p.Zoom != nil {
		names = append(names, "zoom")
	}
	if p.Rotation != nil {
		names = append(names, "rotation")
	}
	if p.OffsetX != nil {
		names = append(names, "offset_x")
	}
	if p.OffsetY != nil {
		names = append(names, "offset_y")
	}
	if p.DimOpacity != nil {
		names = append(names, "dim_opacity")
	}
	if p.Vignette != nil {
		names = append(names, "vignette")
	}
	if p.Grain != nil {
		names = append(names, "grain")
	}
	if p.CinemaBars != nil {
		names = append(names, "cinema_bars")
	}
	if p.LightLeak != nil {
		names = append(names, "light_leak")
	}
	if p.Scanlines != nil {
		names = append(names, "scanlines")
	}
	if p.ScanlinesOpacity != nil {
		names = append(names, "scanlines_opacity")
	}
	if p.Gradient != nil {
		names = append(names, "gradient")
	}
	if p.GradientColor1 != nil {
		names = append(names, "gradient_color1")
	}
	if p.GradientColor2 != nil {
		names = append(names, "gradient_color2")
	}
	if p.GradientAngle != nil {
		names = append(names, "gradient_angle")
	}
	if p.GradientOpacity != nil {
		names = append(names, "gradient_opacity")
	}
	if p.Chromatic != nil {
		names = append(names, "chromatic")
	}
	if p.ChromaticAmount != nil {
		names = append(names, "chromatic_amount")
	}
	return names
}
