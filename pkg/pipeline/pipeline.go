// Package pipeline provides the one-shot thumbnail pipeline for thumbstudio.
//
// This package implements the complete resolve → compose → export pipeline
// behind the CLI. Centralizing it keeps the CLI thin and gives tests a
// single entry point that exercises every stage.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Build the style from defaults, an optional TOML style file,
//     an optional preset and flag overrides; read the optional image
//  2. Compose: Build the layer stack and lay it out at the display width
//  3. Export: Capture at 1024×576 (through the render cache) and write the
//     PNG into the output directory
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    StylePath: "launch.toml",
//	    ImagePath: "bg.jpg",
//	    Preset:    "neon",
//	    OutDir:    "out",
//	})
//	fmt.Println(result.Export.Path)
//
// Run only the first two stages, for inspection:
//
//	surf, err := runner.Compose(ctx, opts)
package pipeline

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbstudio/pkg/compose"
	"github.com/matzehuels/thumbstudio/pkg/errors"
	"github.com/matzehuels/thumbstudio/pkg/export"
	"github.com/matzehuels/thumbstudio/pkg/style"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultDisplayWidth is the on-screen width the surface is laid out at.
	// It only affects the capture scale, never the output size.
	DefaultDisplayWidth = 1280.0

	// DefaultOutDir is where exports are written.
	DefaultOutDir = "."
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Resolve options
	StylePath string         `json:"style_path,omitempty"` // TOML style file
	Preset    style.PresetID `json:"preset,omitempty"`     // applied after the style file
	Patch     style.Patch    `json:"patch"`                // applied last
	ImagePath string         `json:"image_path,omitempty"`

	// Compose options
	DisplayWidth float64 `json:"display_width,omitempty"`

	// Export options
	OutDir  string `json:"out_dir,omitempty"`
	NoCache bool   `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger     `json:"-"`
	Notifier export.Notifier `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Config is the resolved style.
	Config style.Config

	// Surface is the composed surface that was captured.
	Surface compose.Surface

	// StackHash is the content hash of the layer stack.
	StackHash string

	// Export is the delivered file.
	Export export.Result

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the render came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Layers      int
	ResolveTime time.Duration
	ComposeTime time.Duration
	ExportTime  time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidatePreset checks that id names a bundled preset. Empty is valid.
func ValidatePreset(id style.PresetID) error {
	if id == "" {
		return nil
	}
	if _, ok := style.LookupPreset(string(id)); !ok {
		return errors.New(errors.ErrCodeInvalidPreset, "invalid preset: %q (must be one of: %s)", id, presetList())
	}
	return nil
}

// ValidateDisplayWidth checks that w can size a surface.
func ValidateDisplayWidth(w float64) error {
	if !(w > 0) || math.IsInf(w, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid display width: %v (must be a positive number of pixels)", w)
	}
	return nil
}

func presetList() string {
	ids := style.PresetIDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCompose(); err != nil {
		return err
	}
	o.SetExportDefaults()
	if err := errors.ValidateOutputDir(o.OutDir); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCompose validates and sets defaults for the first two stages.
func (o *Options) ValidateForCompose() error {
	o.SetComposeDefaults()
	if err := ValidatePreset(o.Preset); err != nil {
		return err
	}
	if o.ImagePath != "" {
		if err := errors.ValidateImagePath(o.ImagePath); err != nil {
			return err
		}
	}
	return ValidateDisplayWidth(o.DisplayWidth)
}

// SetComposeDefaults sets default values for composition.
func (o *Options) SetComposeDefaults() {
	if o.DisplayWidth == 0 {
		o.DisplayWidth = DefaultDisplayWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetExportDefaults sets default values for export.
func (o *Options) SetExportDefaults() {
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ResolveStyle returns the style described by o: defaults, then the style
// file, then the preset, then the patch.
func (o *Options) ResolveStyle() (style.Config, error) {
	cfg := style.Default()
	if o.StylePath != "" {
		f, err := style.LoadFile(o.StylePath)
		if err != nil {
			return style.Config{}, err
		}
		cfg = f.Resolve(cfg)
	}
	if o.Preset != "" {
		var err error
		if cfg, err = cfg.ApplyPreset(o.Preset); err != nil {
			return style.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "apply preset")
		}
	}
	return cfg.Apply(o.Patch), nil
}

// Describe returns a one-line summary of o for logs.
func (o *Options) Describe() string {
	img := o.ImagePath
	if img == "" {
		img = "(placeholder)"
	}
	return fmt.Sprintf("image=%s preset=%s width=%v", img, o.Preset, o.DisplayWidth)
}
