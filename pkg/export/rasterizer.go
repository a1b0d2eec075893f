// Package export captures composed surfaces at the canonical thumbnail
// resolution and delivers them as files.
//
// Capture is independent of the on-screen size: [NewRequest] derives the
// scale that maps the surface's current width onto [Width] output pixels,
// so every export is exactly [Width]×[Height] with an opaque black
// underlay. The [Exporter] is a two-state machine (idle, exporting)
// guarded by a single in-flight flag; a trigger that arrives while an
// export is running does nothing.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/thumbstudio/pkg/compose"
	"github.com/matzehuels/thumbstudio/pkg/errors"
	"github.com/matzehuels/thumbstudio/pkg/observability"
)

// Canonical export resolution.
const (
	Width  = 1024
	Height = 576
)

// Background fills the output under any transparent region.
var Background = color.NRGBA{A: 0xff}

// Request describes one capture.
type Request struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Scale      float64     `json:"scale"` // output pixels per on-screen pixel
	Background color.NRGBA `json:"background"`
}

// NewRequest returns the capture request for a surface that is currently
// widthActual pixels wide on screen.
func NewRequest(widthActual float64) (Request, error) {
	if !(widthActual > 0) || math.IsInf(widthActual, 0) {
		return Request{}, errors.New(errors.ErrCodeExportCapture, "cannot capture a surface %v pixels wide", widthActual)
	}
	return Request{
		Width:      Width,
		Height:     Height,
		Scale:      Width / widthActual,
		Background: Background,
	}, nil
}

// Capturer turns a surface into encoded image bytes.
type Capturer interface {
	Capture(ctx context.Context, s compose.Surface, req Request) ([]byte, error)
}

// Rasterizer is the built-in Capturer. It paints into an opaque canvas
// and encodes PNG.
type Rasterizer struct{}

// Capture paints s at req.Scale and returns PNG bytes. Any failure, a
// panic while painting included, is reported as an ExportCaptureFailure.
func (Rasterizer) Capture(ctx context.Context, s compose.Surface, req Request) (data []byte, err error) {
	start := time.Now()
	observability.Render().OnCaptureStart(ctx, req.Width, req.Height, req.Scale)
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, errors.New(errors.ErrCodeExportCapture, "paint panicked: %v", r)
		}
		observability.Render().OnCaptureComplete(ctx, len(data), time.Since(start), err)
	}()

	if req.Width <= 0 || req.Height <= 0 {
		return nil, errors.New(errors.ErrCodeExportCapture, "invalid capture size %dx%d", req.Width, req.Height)
	}
	dst := imaging.New(req.Width, req.Height, req.Background)
	if err := s.Paint(dst, req.Scale); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportCapture, err, "paint %dx%d", req.Width, req.Height)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportCapture, err, "encode png")
	}
	return buf.Bytes(), nil
}

// FileName returns the delivery name for a capture taken at t.
func FileName(t time.Time) string { return nameAt(t.UnixMilli()) }

func nameAt(ms int64) string {
	return fmt.Sprintf("Thumbnail_%dx%d_%d.png", Width, Height, ms)
}
