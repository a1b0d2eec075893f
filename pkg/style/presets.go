package style

import (
	"fmt"
	"strings"
)

// PresetID names a bundled preset.
type PresetID string

// Bundled presets.
const (
	PresetNone      PresetID = "none"
	PresetCinematic PresetID = "cinematic"
	PresetNeon      PresetID = "neon"
	PresetVintage   PresetID = "vintage"
	PresetDramatic  PresetID = "dramatic"
	PresetCool      PresetID = "cool"
	PresetWarm      PresetID = "warm"
)

// Preset is a named partial style. Applying it replaces exactly the fields
// its Patch sets.
type Preset struct {
	ID    PresetID
	Name  string
	Icon  string
	Patch Patch
}

// Presets returns the bundled presets in display order. PresetNone resets
// the grading fields to their neutral values.
func Presets() []Preset {
	return []Preset{
		{
			ID: PresetNone, Name: "Default", Icon: "✨",
			Patch: Patch{
				Brightness:    Ptr(100.0),
				Contrast:      Ptr(100.0),
				Saturation:    Ptr(100.0),
				Vignette:      Ptr(0.4),
				CinemaBars:    Ptr(false),
				DimOpacity:    Ptr(0.2),
				Gradient:      Ptr(false),
				GlowIntensity: Ptr(3),
				Sepia:         Ptr(0.0),
				HueRotate:     Ptr(0.0),
				Grain:         Ptr(true),
			},
		},
		{
			ID: PresetCinematic, Name: "Cinematic", Icon: "🎬",
			Patch: Patch{
				Contrast:   Ptr(120.0),
				Saturation: Ptr(90.0),
				Vignette:   Ptr(0.6),
				CinemaBars: Ptr(true),
				DimOpacity: Ptr(0.3),
			},
		},
		{
			ID: PresetNeon, Name: "Neon", Icon: "💜",
			Patch: Patch{
				Saturation:      Ptr(150.0),
				Gradient:        Ptr(true),
				GradientColor1:  Ptr("#ff0080"),
				GradientColor2:  Ptr("#00ffff"),
				GradientOpacity: Ptr(0.25),
				GlowIntensity:   Ptr(5),
			},
		},
		{
			ID: PresetVintage, Name: "Vintage", Icon: "📷",
			Patch: Patch{
				Sepia:      Ptr(30.0),
				Saturation: Ptr(80.0),
				Contrast:   Ptr(110.0),
				Grain:      Ptr(true),
				Vignette:   Ptr(0.5),
			},
		},
		{
			ID: PresetDramatic, Name: "Dramatic", Icon: "⚡",
			Patch: Patch{
				Contrast:   Ptr(140.0),
				Brightness: Ptr(90.0),
				Vignette:   Ptr(0.7),
				DimOpacity: Ptr(0.25),
			},
		},
		{
			ID: PresetCool, Name: "Cool", Icon: "❄️",
			Patch: Patch{
				HueRotate:       Ptr(180.0),
				Saturation:      Ptr(90.0),
				Gradient:        Ptr(true),
				GradientColor1:  Ptr("#0066ff"),
				GradientColor2:  Ptr("#00ccff"),
				GradientOpacity: Ptr(0.2),
			},
		},
		{
			ID: PresetWarm, Name: "Warm", Icon: "🔥",
			Patch: Patch{
				HueRotate:       Ptr(20.0),
				Saturation:      Ptr(120.0),
				Gradient:        Ptr(true),
				GradientColor1:  Ptr("#ff6600"),
				GradientColor2:  Ptr("#ffcc00"),
				GradientOpacity: Ptr(0.15),
			},
		},
	}
}

// LookupPreset finds a preset by ID, case-insensitively.
func LookupPreset(id string) (Preset, bool) {
	want := PresetID(strings.ToLower(strings.TrimSpace(id)))
	for _, p := range Presets() {
		if p.ID == want {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetIDs returns the IDs of all bundled presets in display order.
func PresetIDs() []PresetID {
	presets := Presets()
	ids := make([]PresetID, len(presets))
	for i, p := range presets {
		ids[i] = p.ID
	}
	return ids
}

// ApplyPreset applies the preset with the given ID to c.
func (c Config) ApplyPreset(id PresetID) (Config, error) {
	p, ok := LookupPreset(string(id))
	if !ok {
		return c, fmt.Errorf("unknown preset %q", id)
	}
	return c.Apply(p.Patch), nil
}
