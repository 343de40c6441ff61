package silhouette

import (
	"image"

	"github.com/disintegration/imaging"
)

// smoothMoreKernel is the 5x5 "smooth more" low-pass kernel. It sums to 100.
var smoothMoreKernel = [25]float64{
	1, 1, 1, 1, 1,
	1, 5, 5, 5, 1,
	1, 5, 44, 5, 1,
	1, 5, 5, 5, 1,
	1, 1, 1, 1, 1,
}

// Smooth applies a fixed-strength antialiasing blur to all four channels.
// Edge pixels are replicated.
func Smooth(src *Bitmap) *Bitmap {
	if !src.Valid() {
		return emptyLike(src, White)
	}
	opts := &imaging.ConvolveOptions{Normalize: true}

	// imaging convolves RGB and copies alpha through, so alpha gets its own
	// pass through a gray view.
	rgb := imaging.Convolve5x5(src.NRGBA(), smoothMoreKernel, opts)
	alpha := imaging.Convolve5x5(alphaView(src), smoothMoreKernel, opts)

	out := &Bitmap{W: src.W, H: src.H, Pix: make([]uint8, len(src.Pix))}
	for y := range src.H {
		for x := range src.W {
			off := pixOffset(src.W, x, y)
			rOff := rgb.PixOffset(x, y)
			out.Pix[off] = rgb.Pix[rOff]
			out.Pix[off+1] = rgb.Pix[rOff+1]
			out.Pix[off+2] = rgb.Pix[rOff+2]
			out.Pix[off+3] = alpha.Pix[alpha.PixOffset(x, y)]
		}
	}
	return out
}

// alphaView returns the alpha plane of b as an opaque gray image.
func alphaView(b *Bitmap) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, b.W, b.H))
	for i := range b.W * b.H {
		g.Pix[i] = b.Pix[i*4+3]
	}
	return g
}
