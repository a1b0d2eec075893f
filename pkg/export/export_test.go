package export

import (
	"bytes"
	"context"
	stderrors "errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/thumbstudio/pkg/asset"
	"github.com/matzehuels/thumbstudio/pkg/cache"
	"github.com/matzehuels/thumbstudio/pkg/compose"
	"github.com/matzehuels/thumbstudio/pkg/errors"
	"github.com/matzehuels/thumbstudio/pkg/layers"
	"github.com/matzehuels/thumbstudio/pkg/style"
)

func surface(t *testing.T, width float64) compose.Surface {
	t.Helper()
	s, err := compose.Compose(layers.Build(style.Default(), nil), width)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return s
}

func dimSurface(t *testing.T, width float64) compose.Surface {
	t.Helper()
	stack := layers.Stack{layers.Dim{
		Base:  layers.Base{Z: layers.SlotDim, Mode: layers.BlendNormal, Alpha: 0.5},
		Color: color.NRGBA{R: 0xff, A: 0xff},
	}}
	s, err := compose.Compose(stack, width)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return s
}

func TestNewRequest(t *testing.T) {
	tests := []struct {
		width     float64
		wantScale float64
		wantErr   bool
	}{
		{1024, 1, false},
		{512, 2, false},
		{1280, 0.8, false},
		{0, 0, true},
		{-10, 0, true},
		{math.NaN(), 0, true},
		{math.Inf(1), 0, true},
	}
	for _, tt := range tests {
		req, err := NewRequest(tt.width)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeExportCapture) {
				t.Errorf("NewRequest(%v) error = %v, want %v", tt.width, err, errors.ErrCodeExportCapture)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NewRequest(%v): %v", tt.width, err)
		}
		if math.Abs(req.Scale-tt.wantScale) > 1e-12 {
			t.Errorf("NewRequest(%v).Scale = %v, want %v", tt.width, req.Scale, tt.wantScale)
		}
		if req.Width != Width || req.Height != Height {
			t.Errorf("NewRequest(%v) size = %dx%d, want %dx%d", tt.width, req.Width, req.Height, Width, Height)
		}
	}
}

func TestRasterizerOutputSize(t *testing.T) {
	for _, w := range []float64{640, 1024, 1600} {
		s := dimSurface(t, w)
		req, err := NewRequest(w)
		if err != nil {
			t.Fatal(err)
		}
		data, err := Rasterizer{}.Capture(context.Background(), s, req)
		if err != nil {
			t.Fatalf("Capture(%v): %v", w, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		b := img.Bounds()
		if b.Dx() != Width || b.Dy() != Height {
			t.Errorf("width %v: output = %dx%d, want %dx%d", w, b.Dx(), b.Dy(), Width, Height)
		}
		// Half-opacity red over the black underlay.
		r, g, _, a := img.At(Width/2, Height/2).RGBA()
		if a>>8 != 0xff || g != 0 || r>>8 < 0x7e || r>>8 > 0x81 {
			t.Errorf("width %v: center = r%d g%d a%d, want opaque half red", w, r>>8, g>>8, a>>8)
		}
	}
}

func TestRasterizerFullStack(t *testing.T) {
	s := surface(t, 1280)
	req, _ := NewRequest(s.Width)
	data, err := Rasterizer{}.Capture(context.Background(), s, req)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != Width || cfg.Height != Height {
		t.Errorf("output = %dx%d, want %dx%d", cfg.Width, cfg.Height, Width, Height)
	}
}

func TestFileName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	if got, want := FileName(ts), "Thumbnail_1024x576_1700000000123.png"; got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
}

func TestFileSinkUniqueNames(t *testing.T) {
	dir := t.TempDir()
	fixed := time.UnixMilli(1700000000000)
	sink := &FileSink{Dir: dir, Now: func() time.Time { return fixed }}

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		d, err := sink.Deliver(context.Background(), []byte("png"))
		if err != nil {
			t.Fatalf("Deliver: %v", err)
		}
		if seen[d.Name] {
			t.Errorf("duplicate name %q", d.Name)
		}
		seen[d.Name] = true
		if _, err := os.Stat(d.Path); err != nil {
			t.Errorf("delivered file missing: %v", err)
		}
	}

	// A fresh sink over the same directory must not overwrite.
	other := &FileSink{Dir: dir, Now: func() time.Time { return fixed }}
	d, err := other.Deliver(context.Background(), []byte("png"))
	if err != nil {
		t.Fatal(err)
	}
	if seen[d.Name] {
		t.Errorf("second sink reused name %q", d.Name)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 4 {
		t.Errorf("files = %d, want 4", len(entries))
	}
}

type countingCapturer struct {
	calls   atomic.Int32
	release chan struct{}
	started chan struct{}
	err     error
}

func (c *countingCapturer) Capture(ctx context.Context, s compose.Surface, req Request) ([]byte, error) {
	c.calls.Add(1)
	if c.started != nil {
		c.started <- struct{}{}
	}
	if c.release != nil {
		<-c.release
	}
	if c.err != nil {
		return nil, c.err
	}
	return []byte("png"), nil
}

func TestExporterIdempotent(t *testing.T) {
	dir := t.TempDir()
	fixed := time.UnixMilli(1700000000000)
	e := NewExporter(Rasterizer{}, &FileSink{Dir: dir, Now: func() time.Time { return fixed }})
	s := dimSurface(t, 800)

	first, err := e.Export(context.Background(), s)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	second, err := e.Export(context.Background(), s)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Error("two exports of the same surface differ")
	}
	if first.Name == second.Name {
		t.Errorf("exports share name %q", first.Name)
	}
	if e.State() != Idle {
		t.Errorf("State = %v, want %v", e.State(), Idle)
	}
}

func TestExporterReentrancy(t *testing.T) {
	c := &countingCapturer{release: make(chan struct{}), started: make(chan struct{}, 1)}
	e := NewExporter(c, NewFileSink(t.TempDir()))
	s := dimSurface(t, 1024)

	ch, ok := e.Trigger(context.Background(), s)
	if !ok {
		t.Fatal("first Trigger was rejected")
	}
	<-c.started
	if e.State() != Exporting {
		t.Errorf("State = %v, want %v", e.State(), Exporting)
	}

	if _, err := e.Export(context.Background(), s); !errors.Is(err, errors.ErrCodeExportBusy) {
		t.Errorf("Export while busy error = %v, want %v", err, errors.ErrCodeExportBusy)
	}
	if _, ok := e.Trigger(context.Background(), s); ok {
		t.Error("Trigger while busy was accepted")
	}

	close(c.release)
	out := <-ch
	if out.Err != nil {
		t.Fatalf("export: %v", out.Err)
	}
	if got := c.calls.Load(); got != 1 {
		t.Errorf("captures = %d, want 1", got)
	}
	if e.State() != Idle {
		t.Errorf("State = %v, want %v", e.State(), Idle)
	}
}

func TestExporterConcurrentTriggers(t *testing.T) {
	c := &countingCapturer{release: make(chan struct{})}
	e := NewExporter(c, NewFileSink(t.TempDir()))
	s := dimSurface(t, 1024)

	var wg sync.WaitGroup
	var accepted atomic.Int32
	chans := make(chan (<-chan Outcome), 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ch, ok := e.Trigger(context.Background(), s); ok {
				accepted.Add(1)
				chans <- ch
			}
		}()
	}
	wg.Wait()
	close(c.release)
	close(chans)
	for ch := range chans {
		<-ch
	}
	if got := accepted.Load(); got != 1 {
		t.Errorf("accepted triggers = %d, want 1", got)
	}
}

func TestExporterFailure(t *testing.T) {
	dir := t.TempDir()
	var notified []error
	c := &countingCapturer{err: stderrors.New("gpu on fire")}
	e := NewExporter(c, NewFileSink(dir), WithNotifier(NotifierFunc(func(err error) {
		notified = append(notified, err)
	})))

	_, err := e.Export(context.Background(), dimSurface(t, 1024))
	if !errors.Is(err, errors.ErrCodeExportCapture) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeExportCapture)
	}
	if len(notified) != 1 {
		t.Errorf("notifications = %d, want 1", len(notified))
	}
	if e.State() != Idle {
		t.Errorf("State = %v, want %v", e.State(), Idle)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("files after failed export = %d, want 0", len(entries))
	}
}

func TestExporterZeroWidth(t *testing.T) {
	dir := t.TempDir()
	c := &countingCapturer{}
	e := NewExporter(c, NewFileSink(dir))
	s := dimSurface(t, 1024)
	s.Width = 0

	if _, err := e.Export(context.Background(), s); !errors.Is(err, errors.ErrCodeExportCapture) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeExportCapture)
	}
	if got := c.calls.Load(); got != 0 {
		t.Errorf("captures = %d, want 0", got)
	}
}

func TestExporterCancelled(t *testing.T) {
	c := &countingCapturer{}
	e := NewExporter(c, NewFileSink(t.TempDir()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Export(ctx, dimSurface(t, 1024)); err == nil {
		t.Error("Export with cancelled context succeeded")
	}
	if got := c.calls.Load(); got != 0 {
		t.Errorf("captures = %d, want 0", got)
	}
}

func TestExporterDeliveryFailure(t *testing.T) {
	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	e := NewExporter(&countingCapturer{}, NewFileSink(blocker))
	if _, err := e.Export(context.Background(), dimSurface(t, 1024)); !errors.Is(err, errors.ErrCodeExportDelivery) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeExportDelivery)
	}
	if e.State() != Idle {
		t.Errorf("State = %v, want %v", e.State(), Idle)
	}
}

func TestFileSinkStatError(t *testing.T) {
	sink := NewFileSink(t.TempDir())
	sink.stat = func(string) (os.FileInfo, error) { return nil, fs.ErrPermission }

	e := NewExporter(&countingCapturer{}, sink)
	surf := dimSurface(t, 1024)
	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), surf)
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, errors.ErrCodeExportDelivery) {
			t.Errorf("error = %v, want %v", err, errors.ErrCodeExportDelivery)
		}
		if !stderrors.Is(err, fs.ErrPermission) {
			t.Errorf("error = %v, want it to wrap %v", err, fs.ErrPermission)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Deliver did not return")
	}
	if e.State() != Idle {
		t.Errorf("State = %v, want %v", e.State(), Idle)
	}
}

func testAsset(t *testing.T) *asset.Asset {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	a, err := asset.Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestRasterizerExtremeValues(t *testing.T) {
	tests := []struct {
		name  string
		patch style.Patch
	}{
		{"huge blur", style.Patch{Blur: style.Ptr(1e9)}},
		{"huge glow", style.Patch{Extrude: style.Ptr(false), GlowIntensity: style.Ptr(100000000)}},
		{"huge stroke and extrusion", style.Patch{
			Stroke:       style.Ptr(true),
			StrokeWidth:  style.Ptr(1e9),
			Extrude:      style.Ptr(true),
			ExtrudeDepth: style.Ptr(1000000000),
		}},
	}
	a := testAsset(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := compose.Compose(layers.Build(style.Default().Apply(tt.patch), a), 1024)
			if err != nil {
				t.Fatalf("Compose: %v", err)
			}
			req, _ := NewRequest(s.Width)

			type out struct {
				data []byte
				err  error
			}
			done := make(chan out, 1)
			go func() {
				data, err := Rasterizer{}.Capture(context.Background(), s, req)
				done <- out{data, err}
			}()
			select {
			case o := <-done:
				if o.err != nil {
					t.Fatalf("Capture: %v", o.err)
				}
				cfg, err := png.DecodeConfig(bytes.NewReader(o.data))
				if err != nil {
					t.Fatal(err)
				}
				if cfg.Width != Width || cfg.Height != Height {
					t.Errorf("output = %dx%d, want %dx%d", cfg.Width, cfg.Height, Width, Height)
				}
			case <-time.After(2 * time.Minute):
				t.Fatal("Capture did not return")
			}
		})
	}
}

func TestCachedCapturer(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &countingCapturer{}
	c := NewCachedCapturer(inner, fc, nil)
	s := dimSurface(t, 512)
	req, _ := NewRequest(s.Width)

	first, err := c.Capture(context.Background(), s, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Capture(context.Background(), s, req)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached bytes differ from first capture")
	}
	if got := inner.calls.Load(); got != 1 {
		t.Errorf("inner captures = %d, want 1", got)
	}

	// A different scale is a different render.
	req2, _ := NewRequest(1024)
	if _, err := c.Capture(context.Background(), s, req2); err != nil {
		t.Fatal(err)
	}
	if got := inner.calls.Load(); got != 2 {
		t.Errorf("inner captures = %d, want 2", got)
	}
}
