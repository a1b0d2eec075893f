package compose

import (
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// grainTileSize is the native size of the noise tile.
const grainTileSize = 50

// grainPalette is the tile's color table: mostly transparent black, with
// near-opaque dark grays and blacks scattered in.
var grainPalette = color.Palette{
	color.NRGBA{},
	color.NRGBA{R: 0x39, G: 0x39, B: 0x39, A: 0xf7},
	color.NRGBA{},
	color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xfe},
	color.NRGBA{A: 0xfe},
	color.NRGBA{A: 0xfd},
	color.NRGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xfd},
	color.NRGBA{A: 0xfd},
}

var grainTile = sync.OnceValue(func() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, grainTileSize, grainTileSize), grainPalette)
	for y := 0; y < grainTileSize; y++ {
		for x := 0; x < grainTileSize; x++ {
			img.SetColorIndex(x, y, uint8(mix(uint32(y*grainTileSize+x))%uint32(len(grainPalette))))
		}
	}
	return img
})

// mix is a fixed integer hash (splitmix32 finalizer).
func mix(x uint32) uint32 {
	x += 0x9e3779b9
	x = (x ^ x>>16) * 0x85ebca6b
	x = (x ^ x>>13) * 0xc2b2ae35
	return x ^ x>>16
}

// grainPattern returns the tile resized to size output pixels as a
// repeating fill.
func grainPattern(size float64) gg.Pattern {
	n := max(1, int(size+0.5))
	return gg.NewSurfacePattern(imaging.Resize(grainTile(), n, n, imaging.Linear), gg.RepeatBoth)
}
