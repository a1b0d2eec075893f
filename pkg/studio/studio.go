// Package studio holds the state of one editing session: the current
// style and the optional background image.
//
// Edits are last-write-wins. The mutex only makes concurrent access memory
// safe; it does not order writers. Uploads are read in the background with
// no single-flight guard: when two overlap, whichever read completes last
// becomes the background image.
package studio

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbstudio/pkg/asset"
	"github.com/matzehuels/thumbstudio/pkg/compose"
	"github.com/matzehuels/thumbstudio/pkg/errors"
	"github.com/matzehuels/thumbstudio/pkg/layers"
	"github.com/matzehuels/thumbstudio/pkg/observability"
	"github.com/matzehuels/thumbstudio/pkg/style"
)

// Notifier receives user-visible failures, such as an unreadable upload.
type Notifier interface {
	Notify(err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(err error)

// Notify calls f(err).
func (f NotifierFunc) Notify(err error) { f(err) }

// Snapshot is a consistent view of the session.
type Snapshot struct {
	Config style.Config
	Asset  *asset.Asset
}

// UploadResult reports a finished upload.
type UploadResult struct {
	Asset *asset.Asset
	Err   error
}

// Studio is a single editing session. The zero value is not usable; call New.
type Studio struct {
	mu    sync.Mutex
	cfg   style.Config
	asset *asset.Asset

	notify Notifier
	logger *log.Logger
}

// Options configures a Studio.
type Options struct {
	Config   *style.Config // nil means style.Default()
	Notifier Notifier
	Logger   *log.Logger
}

// New returns a session with the given options.
func New(opts Options) *Studio {
	s := &Studio{
		cfg:    style.Default(),
		notify: opts.Notifier,
		logger: opts.Logger,
	}
	if opts.Config != nil {
		s.cfg = *opts.Config
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return s
}

// Config returns the current style.
func (s *Studio) Config() style.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Asset returns the current background image, or nil.
func (s *Studio) Asset() *asset.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asset
}

// Snapshot returns the style and asset as of one instant.
func (s *Studio) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Config: s.cfg, Asset: s.asset}
}

// Apply merges p into the current style and returns the result.
func (s *Studio) Apply(p style.Patch) style.Config {
	s.mu.Lock()
	s.cfg = s.cfg.Apply(p)
	cfg := s.cfg
	s.mu.Unlock()

	if fields := p.Fields(); len(fields) > 0 {
		s.logger.Debug("style changed", "fields", fields)
		observability.Studio().OnStyleChange(context.Background(), fields)
	}
	return cfg
}

// ApplyPreset applies a bundled preset. Unknown IDs leave the style as is.
func (s *Studio) ApplyPreset(id style.PresetID) (style.Config, error) {
	p, ok := style.LookupPreset(string(id))
	if !ok {
		return s.Config(), errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q", id)
	}
	s.logger.Debug("applying preset", "preset", p.ID)
	return s.Apply(p.Patch), nil
}

// ClearAsset removes the background image. An upload still in flight will
// set a new one when it completes.
func (s *Studio) ClearAsset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asset = nil
}

// Upload reads r in the background and, once decoded, makes it the
// background image. The channel
// receives exactly one result. A failed read leaves the current asset in
// place and is reported to the notifier. If r is an io.Closer it is closed
// after reading.
func (s *Studio) Upload(ctx context.Context, r io.Reader) <-chan UploadResult {
	ch := make(chan UploadResult, 1)
	go func() {
		ch <- s.read(ctx, r)
	}()
	return ch
}

// UploadFile is Upload over the contents of path.
func (s *Studio) UploadFile(ctx context.Context, path string) <-chan UploadResult {
	if err := errors.ValidateImagePath(path); err != nil {
		ch := make(chan UploadResult, 1)
		s.fail(ctx, 0, err)
		ch <- UploadResult{Err: err}
		return ch
	}
	f, err := os.Open(path)
	if err != nil {
		ch := make(chan UploadResult, 1)
		err = errors.Wrap(errors.ErrCodeUploadRead, err, "open %s", path)
		s.fail(ctx, 0, err)
		ch <- UploadResult{Err: err}
		return ch
	}
	return s.Upload(ctx, f)
}

func (s *Studio) read(ctx context.Context, r io.Reader) UploadResult {
	start := time.Now()
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	if err := ctx.Err(); err != nil {
		err = errors.Wrap(errors.ErrCodeUploadRead, err, "upload cancelled")
		s.fail(ctx, time.Since(start), err)
		return UploadResult{Err: err}
	}

	a, err := asset.Read(r)
	if err != nil {
		s.fail(ctx, time.Since(start), err)
		return UploadResult{Err: err}
	}

	s.mu.Lock()
	s.asset = a
	s.mu.Unlock()

	s.logger.Debug("upload read", "id", a.ID, "mime", a.MIME, "width", a.Width(), "height", a.Height())
	observability.Studio().OnUploadComplete(ctx, len(a.DataURL), time.Since(start), nil)
	return UploadResult{Asset: a}
}

func (s *Studio) fail(ctx context.Context, d time.Duration, err error) {
	s.logger.Warn("upload failed", "error", err)
	observability.Studio().OnUploadComplete(ctx, 0, d, err)
	if s.notify != nil {
		s.notify.Notify(err)
	}
}

// Stack builds the layer stack for the current state.
func (s *Studio) Stack() layers.Stack {
	snap := s.Snapshot()
	return layers.Build(snap.Config, snap.Asset)
}

// Surface builds and lays out the current state at the given on-screen
// width. The result is a snapshot; later edits do not affect it.
func (s *Studio) Surface(ctx context.Context, width float64) (compose.Surface, error) {
	stack := s.Stack()
	start := time.Now()
	observability.Render().OnComposeStart(ctx, len(stack))
	surf, err := compose.Compose(stack, width)
	observability.Render().OnComposeComplete(ctx, time.Since(start), err)
	return surf, err
}
