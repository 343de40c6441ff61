package silhouette

import "image/color"

// Predicate decides whether a visible pixel belongs to a variant.
type Predicate func(r, g, b uint8) bool

// Classify paints every visible pixel accepted by p white, keeping its
// source alpha. All other pixels become fully transparent.
func Classify(src *Bitmap, p Predicate) *Bitmap {
	return ClassifyColor(src, p, White)
}

// ClassifyColor is Classify with an explicit foreground colour.
func ClassifyColor(src *Bitmap, p Predicate, fg color.NRGBA) *Bitmap {
	out := emptyLike(src, fg)
	if !src.Valid() || p == nil {
		return out
	}
	for i := 0; i < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		if a == 0 {
			continue
		}
		if p(src.Pix[i], src.Pix[i+1], src.Pix[i+2]) {
			out.Pix[i+3] = a
		}
	}
	return out
}

// Brightness is the mean of the three colour channels.
func Brightness(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}
