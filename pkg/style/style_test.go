package style

import (
	"image/color"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/thumbstudio/pkg/errors"
)

func TestApplyOnlyTouchesPatchedFields(t *testing.T) {
	base := Default()
	got := base.Apply(Patch{Title: Ptr("Hi"), Vignette: Ptr(0.9)})

	if got.Title != "Hi" {
		t.Errorf("Title = %q, want %q", got.Title, "Hi")
	}
	if got.Vignette != 0.9 {
		t.Errorf("Vignette = %v, want 0.9", got.Vignette)
	}

	got.Title, got.Vignette = base.Title, base.Vignette
	if got != base {
		t.Errorf("Apply changed fields outside the patch:\n got %+v\nwant %+v", got, base)
	}
}

func TestApplyEmptyPatchIsIdentity(t *testing.T) {
	c := Default()
	if got := c.Apply(Patch{}); got != c {
		t.Errorf("Apply(Patch{}) = %+v, want unchanged", got)
	}
}

func TestApplyIsPermissive(t *testing.T) {
	got := Default().Apply(Patch{
		DimOpacity:   Ptr(-3.0),
		Zoom:         Ptr(0.0),
		ExtrudeDepth: Ptr(-2),
		Align:        Ptr(Align("diagonal")),
	})
	if got.DimOpacity != -3 || got.Zoom != 0 || got.ExtrudeDepth != -2 || got.Align != "diagonal" {
		t.Errorf("out-of-range values were altered: %+v", got)
	}
}

func TestDefaultResetPreset(t *testing.T) {
	dirty := Default().Apply(Patch{
		Brightness:    Ptr(10.0),
		Contrast:      Ptr(300.0),
		Saturation:    Ptr(0.0),
		Vignette:      Ptr(1.0),
		CinemaBars:    Ptr(true),
		DimOpacity:    Ptr(0.9),
		Gradient:      Ptr(true),
		GlowIntensity: Ptr(10),
		Sepia:         Ptr(100.0),
		HueRotate:     Ptr(270.0),
		Grain:         Ptr(false),
		Title:         Ptr("kept"),
	})

	got, err := dirty.ApplyPreset(PresetNone)
	if err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"Brightness", got.Brightness, 100.0},
		{"Contrast", got.Contrast, 100.0},
		{"Saturation", got.Saturation, 100.0},
		{"Vignette", got.Vignette, 0.4},
		{"CinemaBars", got.CinemaBars, false},
		{"DimOpacity", got.DimOpacity, 0.2},
		{"Gradient", got.Gradient, false},
		{"GlowIntensity", got.GlowIntensity, 3},
		{"Sepia", got.Sepia, 0.0},
		{"HueRotate", got.HueRotate, 0.0},
		{"Grain", got.Grain, true},
		{"Title", got.Title, "kept"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestPresetsApplyOnlyTheirFields(t *testing.T) {
	for _, p := range Presets() {
		t.Run(string(p.ID), func(t *testing.T) {
			base := Default()
			got := base.Apply(p.Patch)
			touched := map[string]bool{}
			for _, f := range p.Patch.Fields() {
				touched[f] = true
			}
			if len(touched) == 0 {
				t.Fatal("preset sets no fields")
			}

			gv, bv := reflect.ValueOf(got), reflect.ValueOf(base)
			typ := gv.Type()
			for i := 0; i < typ.NumField(); i++ {
				tag := strings.Split(typ.Field(i).Tag.Get("toml"), ",")[0]
				if touched[tag] {
					continue
				}
				if gv.Field(i).Interface() != bv.Field(i).Interface() {
					t.Errorf("field %s changed but is not in the preset", tag)
				}
			}
		})
	}
}

func TestLookupPreset(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
	}{
		{"neon", true},
		{" Cinematic ", true},
		{"none", true},
		{"sepia", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := LookupPreset(tt.input)
			if ok != tt.wantOK {
				t.Errorf("LookupPreset(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
		})
	}

	if _, err := Default().ApplyPreset("bogus"); err == nil {
		t.Error("ApplyPreset(bogus) should fail")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"#3b82f6", color.NRGBA{0x3b, 0x82, 0xf6, 0xff}},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#000000", color.NRGBA{0, 0, 0, 0xff}},
		{"not-a-color", color.NRGBA{0, 0, 0, 0xff}},
		{"", color.NRGBA{0, 0, 0, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseColor(tt.input); got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		alpha float64
		want  uint8
	}{
		{0.8, 204},
		{0.6, 153},
		{0.4, 102},
		{-1, 0},
		{2, 255},
	}
	for _, tt := range tests {
		if got := WithAlpha("#ffffff", tt.alpha).A; got != tt.want {
			t.Errorf("WithAlpha(%v).A = %d, want %d", tt.alpha, got, tt.want)
		}
	}
}

func TestDecodeFile(t *testing.T) {
	src := `
preset = "neon"

[style]
title = "Launch Day"
badge = "LIVE"
glow_intensity = 6
zoom = 150
`
	f, err := DecodeFile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	got := f.Resolve(Default())

	if got.Title != "Launch Day" {
		t.Errorf("Title = %q, want %q", got.Title, "Launch Day")
	}
	if got.Badge != BadgeLive {
		t.Errorf("Badge = %q, want %q", got.Badge, BadgeLive)
	}
	if got.GlowIntensity != 6 {
		t.Errorf("GlowIntensity = %d, want 6 (file overrides preset)", got.GlowIntensity)
	}
	if got.Zoom != 150 {
		t.Errorf("Zoom = %v, want 150", got.Zoom)
	}
	if !got.Gradient || got.GradientColor2 != "#00ffff" {
		t.Errorf("neon preset not applied: gradient=%v color2=%s", got.Gradient, got.GradientColor2)
	}
}

func TestDecodeFileErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode errors.Code
	}{
		{"syntax", "title = ", errors.ErrCodeInvalidInput},
		{"unknown key", "[style]\ntitel = \"x\"\n", errors.ErrCodeInvalidInput},
		{"unknown preset", "preset = \"noir\"\n", errors.ErrCodeInvalidPreset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFile(strings.NewReader(tt.src))
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("DecodeFile code = %v, want %v (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestExampleStyleFiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "styles", "*.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example style files")
	}
	for _, p := range paths {
		t.Run(filepath.Base(p), func(t *testing.T) {
			f, err := LoadFile(p)
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			cfg := f.Resolve(Default())
			if f.Style.Title == nil || cfg.Title != *f.Style.Title {
				t.Errorf("Title = %q, want the file's title", cfg.Title)
			}
		})
	}
}
