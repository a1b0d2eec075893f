package studio

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/matzehuels/thumbstudio/pkg/errors"
	"github.com/matzehuels/thumbstudio/pkg/layers"
	"github.com/matzehuels/thumbstudio/pkg/style"
)

func encodePNG(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// gatedReader blocks its first Read until gate is closed.
type gatedReader struct {
	gate chan struct{}
	r    *bytes.Reader
}

func (g *gatedReader) Read(p []byte) (int, error) {
	<-g.gate
	return g.r.Read(p)
}

func gated(data []byte) (*gatedReader, func()) {
	g := &gatedReader{gate: make(chan struct{}), r: bytes.NewReader(data)}
	return g, func() { close(g.gate) }
}

type recorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *recorder) Notify(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

func TestNewDefaults(t *testing.T) {
	s := New(Options{})
	if s.Config() != style.Default() {
		t.Error("New should start from style.Default()")
	}
	if s.Asset() != nil {
		t.Error("New should start without an asset")
	}

	cfg := style.Default()
	cfg.Title = "Custom"
	if got := New(Options{Config: &cfg}).Config().Title; got != "Custom" {
		t.Errorf("Title = %q, want %q", got, "Custom")
	}
}

func TestApply(t *testing.T) {
	s := New(Options{})
	before := s.Config()
	got := s.Apply(style.Patch{Title: style.Ptr("Launch"), Grain: style.Ptr(false)})

	want := before
	want.Title = "Launch"
	want.Grain = false
	if got != want {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}
	if s.Config() != want {
		t.Error("Config does not reflect the applied patch")
	}
}

func TestApplyPreset(t *testing.T) {
	s := New(Options{})
	cfg, err := s.ApplyPreset(style.PresetCinematic)
	if err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if cfg.Contrast != 120 || cfg.Vignette != 0.6 || !cfg.CinemaBars {
		t.Errorf("cinematic not applied: contrast=%v vignette=%v bars=%v", cfg.Contrast, cfg.Vignette, cfg.CinemaBars)
	}

	before := s.Config()
	if _, err := s.ApplyPreset("sparkly"); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("ApplyPreset(unknown) error = %v, want %v", err, errors.ErrCodeInvalidPreset)
	}
	if s.Config() != before {
		t.Error("unknown preset changed the style")
	}
}

func TestUpload(t *testing.T) {
	s := New(Options{})
	res := <-s.Upload(context.Background(), bytes.NewReader(encodePNG(t, color.NRGBA{R: 0xff, A: 0xff})))
	if res.Err != nil {
		t.Fatalf("Upload: %v", res.Err)
	}
	if s.Asset() != res.Asset {
		t.Error("uploaded asset is not current")
	}
	if !s.Stack().Has(layers.KindBackground) {
		t.Error("stack should have a background after upload")
	}

	s.ClearAsset()
	if s.Asset() != nil {
		t.Error("ClearAsset left an asset")
	}
	if !s.Stack().Has(layers.KindPlaceholder) {
		t.Error("stack should fall back to the placeholder")
	}
}

func TestUploadLastCompletionWins(t *testing.T) {
	s := New(Options{})
	red := encodePNG(t, color.NRGBA{R: 0xff, A: 0xff})
	blue := encodePNG(t, color.NRGBA{B: 0xff, A: 0xff})

	first, releaseFirst := gated(red)
	second, releaseSecond := gated(blue)
	chFirst := s.Upload(context.Background(), first)
	chSecond := s.Upload(context.Background(), second)

	// The later upload finishes first; the earlier one lands on top of it.
	releaseSecond()
	b := <-chSecond
	if s.Asset() != b.Asset {
		t.Fatal("second upload did not take effect")
	}
	releaseFirst()
	a := <-chFirst
	if a.Err != nil || b.Err != nil {
		t.Fatalf("uploads failed: %v, %v", a.Err, b.Err)
	}
	if s.Asset() != a.Asset {
		t.Error("last completed upload is not current")
	}
}

func TestUploadFailureKeepsAsset(t *testing.T) {
	rec := &recorder{}
	s := New(Options{Notifier: rec})
	good := <-s.Upload(context.Background(), bytes.NewReader(encodePNG(t, color.NRGBA{G: 0xff, A: 0xff})))
	if good.Err != nil {
		t.Fatal(good.Err)
	}

	bad := <-s.Upload(context.Background(), bytes.NewReader([]byte("not an image")))
	if !errors.Is(bad.Err, errors.ErrCodeUploadRead) {
		t.Errorf("error = %v, want %v", bad.Err, errors.ErrCodeUploadRead)
	}
	if s.Asset() != good.Asset {
		t.Error("failed upload replaced the asset")
	}
	if rec.count() != 1 {
		t.Errorf("notifications = %d, want 1", rec.count())
	}
}

func TestUploadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	if err := os.WriteFile(path, encodePNG(t, color.NRGBA{R: 0x40, A: 0xff}), 0644); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	s := New(Options{Notifier: rec})
	if res := <-s.UploadFile(context.Background(), path); res.Err != nil {
		t.Fatalf("UploadFile: %v", res.Err)
	}
	if s.Asset() == nil {
		t.Fatal("UploadFile did not set the asset")
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "missing.png"), errors.ErrCodeFileNotFound},
		{"wrong type", filepath.Join(dir, "notes.txt"), errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := <-s.UploadFile(context.Background(), tt.path)
			if !errors.Is(res.Err, tt.code) {
				t.Errorf("error = %v, want %v", res.Err, tt.code)
			}
		})
	}
	if rec.count() != len(tests) {
		t.Errorf("notifications = %d, want %d", rec.count(), len(tests))
	}
}

func TestSurfaceIsSnapshot(t *testing.T) {
	s := New(Options{})
	surf, err := s.Surface(context.Background(), 1280)
	if err != nil {
		t.Fatalf("Surface: %v", err)
	}
	if surf.Width != 1280 || surf.Height != 720 {
		t.Errorf("surface = %vx%v, want 1280x720", surf.Width, surf.Height)
	}
	if !surf.Stack.Has(layers.KindCinemaBars) {
		t.Fatal("default surface should have cinema bars")
	}

	s.Apply(style.Patch{CinemaBars: style.Ptr(false)})
	if !surf.Stack.Has(layers.KindCinemaBars) {
		t.Error("edit after Surface changed the captured stack")
	}
	next, _ := s.Surface(context.Background(), 1280)
	if next.Stack.Has(layers.KindCinemaBars) {
		t.Error("next surface should reflect the edit")
	}
}

func TestConcurrentEdits(t *testing.T) {
	s := New(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Apply(style.Patch{TextOffsetX: style.Ptr(float64(i))})
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()
	if x := s.Config().TextOffsetX; x < 0 || x > 7 {
		t.Errorf("TextOffsetX = %v, want one of the written values", x)
	}
}
