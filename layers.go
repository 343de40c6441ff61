package silhouette

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/silhouette/utils"
)

// PaletteLayers extracts a k-colour palette from src, sorts it darkest
// first and returns one raw mask per palette entry. Every visible pixel
// lands in the mask of its nearest palette colour in CIE Lab and keeps its
// alpha.
func PaletteLayers(src *Bitmap, k int, method utils.PaletteMethod, fg color.NRGBA) ([]*Bitmap, []colorful.Color) {
	if !src.Valid() || k <= 0 {
		return nil, nil
	}
	palette := utils.ExtractPalette(src.NRGBA(), k, method)
	if len(palette) == 0 {
		return nil, nil
	}
	utils.SortPaletteByBrightness(palette)

	layers := make([]*Bitmap, len(palette))
	for i := range layers {
		layers[i] = NewBitmap(src.W, src.H, fg)
	}
	nearest := make(map[uint32]int)
	for i := 0; i < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		if a == 0 {
			continue
		}
		r, g, b := src.Pix[i], src.Pix[i+1], src.Pix[i+2]
		key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		idx, ok := nearest[key]
		if !ok {
			idx = nearestColor(colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, palette)
			nearest[key] = idx
		}
		layers[idx].Pix[i+3] = a
	}
	return layers, palette
}

// nearestColor returns the index of the palette entry closest to c in Lab.
// Ties go to the earlier (darker) entry.
func nearestColor(c colorful.Color, palette []colorful.Color) int {
	best, bestD := 0, c.DistanceLab(palette[0])
	for i, p := range palette[1:] {
		if d := c.DistanceLab(p); d < bestD {
			best, bestD = i+1, d
		}
	}
	return best
}
