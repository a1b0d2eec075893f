package text

import (
	"image/color"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/thumbstudio/pkg/style"
)

func TestFontSize(t *testing.T) {
	tests := []struct {
		name  string
		title string
		base  float64
		want  float64
	}{
		{"short", "Hi", 120, 120},
		{"seven chars", "1234567", 120, 120},
		{"exactly eight", "12345678", 100, 80},
		{"fourteen", strings.Repeat("a", 14), 100, 80},
		{"fifteen", strings.Repeat("a", 15), 100, 60},
		{"twenty four", strings.Repeat("a", 24), 100, 60},
		{"twenty five", strings.Repeat("a", 25), 100, 40},
		{"thirty", strings.Repeat("a", 30), 120, 48},
		{"floor", strings.Repeat("a", 30), 50, 40},
		{"empty", "", 120, 120},
		{"runes not bytes", "日本語のタイトル", 100, 80},
		{"tiny base floors", "Hi", 10, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FontSize(tt.title, tt.base); got != tt.want {
				t.Errorf("FontSize(%q, %v) = %v, want %v", tt.title, tt.base, got, tt.want)
			}
		})
	}
}

func cfgWith(p style.Patch) style.Config {
	return style.Default().Apply(p)
}

func TestStyleFlat(t *testing.T) {
	p := Style(cfgWith(style.Patch{
		GlowIntensity: style.Ptr(0),
		Stroke:        style.Ptr(false),
		Extrude:       style.Ptr(false),
		TextColor:     style.Ptr("#ff0000"),
	}))
	if len(p.Shadows) != 0 {
		t.Errorf("len(Shadows) = %d, want 0", len(p.Shadows))
	}
	if p.Stroke != nil {
		t.Errorf("Stroke = %+v, want nil", p.Stroke)
	}
	if want := (color.NRGBA{0xff, 0, 0, 0xff}); p.Fill != want {
		t.Errorf("Fill = %v, want %v", p.Fill, want)
	}
}

func TestStyleGlow(t *testing.T) {
	p := Style(cfgWith(style.Patch{
		GlowIntensity: style.Ptr(5),
		Extrude:       style.Ptr(false),
		GlowColor:     style.Ptr("#00ff00"),
	}))
	want := []Shadow{
		{Blur: 25, Color: color.NRGBA{0, 0xff, 0, 204}},
		{Blur: 50, Color: color.NRGBA{0, 0xff, 0, 153}},
		{Blur: 100, Color: color.NRGBA{0, 0xff, 0, 102}},
	}
	if !reflect.DeepEqual(p.Shadows, want) {
		t.Errorf("Shadows = %+v, want %+v", p.Shadows, want)
	}
}

func TestStyleExtrude(t *testing.T) {
	tests := []struct {
		name      string
		glow      int
		depth     int
		wantTerms int
		wantHalo  bool
	}{
		{"with glow", 3, 4, 5, true},
		{"without glow", 0, 4, 4, false},
		{"zero depth keeps halo", 2, 0, 1, true},
		{"negative depth", 0, -3, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Style(cfgWith(style.Patch{
				Extrude:       style.Ptr(true),
				ExtrudeDepth:  style.Ptr(tt.depth),
				ExtrudeColor:  style.Ptr("#112233"),
				GlowIntensity: style.Ptr(tt.glow),
			}))
			if len(p.Shadows) != tt.wantTerms {
				t.Fatalf("len(Shadows) = %d, want %d", len(p.Shadows), tt.wantTerms)
			}
			for i := 0; i < max(tt.depth, 0); i++ {
				s := p.Shadows[i]
				d := float64(i + 1)
				if s.DX != d || s.DY != d || s.Blur != 0 {
					t.Errorf("Shadows[%d] = %+v, want offset (%v,%v) blur 0", i, s, d, d)
				}
				if s.Color != (color.NRGBA{0x11, 0x22, 0x33, 0xff}) {
					t.Errorf("Shadows[%d].Color = %v", i, s.Color)
				}
			}
			if tt.wantHalo {
				last := p.Shadows[len(p.Shadows)-1]
				if last.Blur != float64(tt.glow*10) || last.Color.A != 153 {
					t.Errorf("halo = %+v, want blur %d alpha 153", last, tt.glow*10)
				}
			}
		})
	}
}

func TestStyleExtrudeDepthBound(t *testing.T) {
	p := Style(cfgWith(style.Patch{
		Extrude:       style.Ptr(true),
		ExtrudeDepth:  style.Ptr(1000000000),
		GlowIntensity: style.Ptr(0),
	}))
	if len(p.Shadows) != MaxExtrudeDepth {
		t.Errorf("len(Shadows) = %d, want %d", len(p.Shadows), MaxExtrudeDepth)
	}
}

func TestStrokeIsIndependent(t *testing.T) {
	for _, base := range []style.Patch{
		{GlowIntensity: style.Ptr(0)},
		{GlowIntensity: style.Ptr(4)},
		{Extrude: style.Ptr(true), GlowIntensity: style.Ptr(2)},
	} {
		without := Style(cfgWith(base))
		withPatch := base
		withPatch.Stroke = style.Ptr(true)
		withPatch.StrokeWidth = style.Ptr(3.0)
		with := Style(cfgWith(withPatch))

		if !reflect.DeepEqual(with.Shadows, without.Shadows) {
			t.Errorf("stroke changed shadow list: %+v vs %+v", with.Shadows, without.Shadows)
		}
		if with.Stroke == nil || with.Stroke.Width != 3 {
			t.Errorf("Stroke = %+v, want width 3", with.Stroke)
		}
	}
}
