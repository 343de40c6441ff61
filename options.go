package silhouette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/silhouette/utils"
)

// DefaultMinClusterSize is the smallest 8-connected cluster Clean keeps.
const DefaultMinClusterSize = 5

// White is the default mask foreground.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

type Options struct {
	// Clusters smaller than this are erased from every variant.
	// Values <= 1 disable cleaning.
	MinClusterSize int
	// RGB painted into every mask pixel. Alpha is ignored.
	Foreground color.NRGBA
	// Number of variants rendered concurrently for one source.
	// 1 renders sequentially. Output is identical either way.
	Workers int
	// Number of palette layer variants (white_layer_N). 0 disables them.
	Layers int
	// Palette extraction method for layer variants.
	PaletteMethod utils.PaletteMethod
	// Edge/contour backend. nil selects the build's default backend.
	Extractor Extractor
}

func DefaultOptions() Options {
	return Options{
		MinClusterSize: DefaultMinClusterSize,
		Foreground:     White,
		Workers:        1,
		Layers:         0,
		PaletteMethod:  utils.PaletteMethodDominantColor,
	}
}

// ParseForeground parses a "#rrggbb" hex string into an opaque colour.
func ParseForeground(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse foreground %q: %w", hex, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func (o Options) extractor() Extractor {
	if o.Extractor != nil {
		return o.Extractor
	}
	return defaultExtractor(o.Foreground)
}

func (o Options) workers() int {
	return max(o.Workers, 1)
}
