package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// imageExtensions are the upload types accepted by the file-type filter.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// ValidateImagePath performs the upstream file-type filtering for uploads.
// It does not inspect file contents; decoding failures surface later as
// UPLOAD_READ_FAILED.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be a supported raster type
//   - The file must exist and not be a directory
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "image path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		return New(ErrCodeInvalidPath, "unsupported image type %q", ext)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "image not found: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "image path is a directory: %s", path)
	}
	return nil
}

// ValidateOutputDir checks that dir is usable as an export destination.
// A missing directory is accepted; the file sink creates it.
func ValidateOutputDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "output path is not a directory: %s", dir)
	}
	return nil
}
