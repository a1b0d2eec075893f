package style

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/thumbstudio/pkg/errors"
)

// File is the decoded form of a TOML style file. The file names an optional
// preset applied first and then overrides individual fields:
//
//	preset = "neon"
//
//	[style]
//	title = "Launch Day"
//	badge = "LIVE"
//	glow_intensity = 6
type File struct {
	Preset PresetID `toml:"preset"`
	Style  Patch    `toml:"style"`
}

// LoadFile reads a TOML style file from path.
func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return File{}, errors.New(errors.ErrCodeFileNotFound, "style file not found: %s", path)
	}
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open style file")
	}
	defer f.Close()
	return DecodeFile(f)
}

// DecodeFile decodes a TOML style file. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func DecodeFile(r io.Reader) (File, error) {
	var sf File
	md, err := toml.NewDecoder(r).Decode(&sf)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse style file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return File{}, errors.New(errors.ErrCodeInvalidInput, "unknown style keys: %s", strings.Join(keys, ", "))
	}
	if sf.Preset != "" {
		if _, ok := LookupPreset(string(sf.Preset)); !ok {
			return File{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q", sf.Preset)
		}
	}
	return sf, nil
}

// Resolve applies the file's preset and then its field overrides to base.
func (f File) Resolve(base Config) Config {
	if p, ok := LookupPreset(string(f.Preset)); ok {
		base = base.Apply(p.Patch)
	}
	return base.Apply(f.Style)
}
