// Package asset holds user-supplied background images.
//
// An [Asset] keeps the encoded upload as a data URL (the reference the rest
// of the system passes around) together with the decoded raster. Assets are
// immutable; a new upload produces a new Asset and nothing carries over.
package asset

import (
	"bytes"
	"encoding/base64"
	"image"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/matzehuels/thumbstudio/pkg/cache"
	"github.com/matzehuels/thumbstudio/pkg/errors"
)

// MaxUploadBytes bounds a single upload read.
const MaxUploadBytes = 64 << 20

// Asset is a decoded background image.
type Asset struct {
	ID      string      // per-upload identifier, for logs only
	MIME    string      // sniffed content type
	DataURL string      // data:<mime>;base64,<payload>
	Digest  string      // hex sha256 of the encoded bytes
	Image   image.Image // decoded raster, EXIF orientation applied
}

// Width returns the native pixel width.
func (a *Asset) Width() int { return a.Image.Bounds().Dx() }

// Height returns the native pixel height.
func (a *Asset) Height() int { return a.Image.Bounds().Dy() }

// Decode builds an Asset from encoded image bytes.
func Decode(data []byte) (*Asset, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeUploadRead, "image is empty")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUploadRead, err, "decode image")
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New(errors.ErrCodeUploadRead, "image has no pixels")
	}

	mime := http.DetectContentType(data)
	return &Asset{
		ID:      uuid.NewString(),
		MIME:    mime,
		DataURL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		Digest:  cache.Hash(data),
		Image:   img,
	}, nil
}

// Read reads r fully and decodes it.
func Read(r io.Reader) (*Asset, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUploadRead, err, "read image")
	}
	if len(data) > MaxUploadBytes {
		return nil, errors.New(errors.ErrCodeUploadRead, "image exceeds %d bytes", MaxUploadBytes)
	}
	return Decode(data)
}

// FromDataURL decodes an Asset from a base64 data URL.
func FromDataURL(s string) (*Asset, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, errors.New(errors.ErrCodeUploadRead, "not a data URL")
	}
	_, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, errors.New(errors.ErrCodeUploadRead, "data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUploadRead, err, "decode data URL")
	}
	return Decode(data)
}
