package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbstudio/pkg/cache"
	"github.com/matzehuels/thumbstudio/pkg/compose"
	"github.com/matzehuels/thumbstudio/pkg/export"
	"github.com/matzehuels/thumbstudio/pkg/studio"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete resolve → compose → export pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	opts.Logger.Debug("starting pipeline", "options", opts.Describe())

	result := &Result{}

	// Stages 1 and 2: Resolve and Compose
	s, err := r.session(ctx, opts, result)
	if err != nil {
		return nil, err
	}
	composeStart := time.Now()
	surf, err := s.Surface(ctx, opts.DisplayWidth)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Surface = surf
	result.Stats.Layers = len(surf.Stack)
	result.Stats.ComposeTime = time.Since(composeStart)
	if h, err := surf.Stack.Hash(); err == nil {
		result.StackHash = h
	}

	opts.Logger.Info("composed surface",
		"layers", result.Stats.Layers,
		"width", surf.Width,
		"height", surf.Height,
		"duration", result.Stats.ComposeTime)

	// Stage 3: Export
	exportStart := time.Now()
	c := r.cache(opts)
	capt := &hitRecorder{inner: export.NewCachedCapturer(nil, c, r.Keyer)}
	exp := export.NewExporter(capt, export.NewFileSink(opts.OutDir),
		export.WithLogger(opts.Logger),
		export.WithNotifier(opts.Notifier))
	res, err := exp.Export(ctx, surf)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Export = res
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.RenderHit = capt.hit

	opts.Logger.Info("exported thumbnail",
		"path", res.Path,
		"bytes", len(res.Data),
		"cached", capt.hit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Compose runs the resolve and compose stages only.
func (r *Runner) Compose(ctx context.Context, opts Options) (compose.Surface, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForCompose(); err != nil {
		return compose.Surface{}, fmt.Errorf("invalid options: %w", err)
	}
	s, err := r.session(ctx, opts, &Result{})
	if err != nil {
		return compose.Surface{}, err
	}
	return s.Surface(ctx, opts.DisplayWidth)
}

// session resolves the style and image into a fresh studio session.
func (r *Runner) session(ctx context.Context, opts Options, result *Result) (*studio.Studio, error) {
	start := time.Now()
	cfg, err := opts.ResolveStyle()
	if err != nil {
		return nil, fmt.Errorf("resolve style: %w", err)
	}
	result.Config = cfg

	s := studio.New(studio.Options{Config: &cfg, Logger: opts.Logger})
	if opts.ImagePath != "" {
		up := <-s.UploadFile(ctx, opts.ImagePath)
		if up.Err != nil {
			return nil, fmt.Errorf("read image: %w", up.Err)
		}
		opts.Logger.Info("loaded image",
			"path", opts.ImagePath,
			"width", up.Asset.Width(),
			"height", up.Asset.Height())
	}
	result.Stats.ResolveTime = time.Since(start)
	return s, nil
}

func (r *Runner) cache(opts Options) cache.Cache {
	if opts.NoCache {
		return cache.NewNullCache()
	}
	return r.Cache
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hitRecorder remembers whether the last capture came from the cache.
type hitRecorder struct {
	inner *export.CachedCapturer
	hit   bool
}

func (h *hitRecorder) Capture(ctx context.Context, s compose.Surface, req export.Request) ([]byte, error) {
	data, hit, err := h.inner.CaptureWithCacheInfo(ctx, s, req)
	h.hit = hit
	return data, err
}
