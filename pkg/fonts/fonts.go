// Package fonts provides the embedded typefaces used to draw thumbnail text.
//
// The Go font family ships inside golang.org/x/image, so rendering needs no
// system fonts and produces the same glyphs on every machine.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Typeface selects one of the embedded fonts.
type Typeface int

const (
	Regular    Typeface = iota
	Medium              // subtitles
	Bold                // modern titles, badges
	BoldItalic          // classic titles
)

func (t Typeface) String() string {
	switch t {
	case Regular:
		return "regular"
	case Medium:
		return "medium"
	case Bold:
		return "bold"
	case BoldItalic:
		return "bold-italic"
	default:
		return fmt.Sprintf("typeface(%d)", int(t))
	}
}

var sources = map[Typeface][]byte{
	Regular:    goregular.TTF,
	Medium:     gomedium.TTF,
	Bold:       gobold.TTF,
	BoldItalic: gobolditalic.TTF,
}

// Parsed fonts are shared; faces are not (truetype faces cache glyphs and
// are not safe for concurrent use).
var (
	parsed   = map[Typeface]*truetype.Font{}
	parsedMu sync.Mutex
)

// Font returns the parsed font for t.
func Font(t Typeface) (*truetype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[t]; ok {
		return f, nil
	}
	src, ok := sources[t]
	if !ok {
		return nil, fmt.Errorf("unknown typeface %s", t)
	}
	f, err := truetype.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s font: %w", t, err)
	}
	parsed[t] = f
	return f, nil
}

// Face returns a new face of t at size pixels (72 DPI, so points == pixels).
func Face(t Typeface, size float64) (font.Face, error) {
	f, err := Font(t)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
