package silhouette

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// grayPlane is a single-channel 8-bit image, row-major.
type grayPlane struct {
	W, H int
	Pix  []uint8
}

func newGrayPlane(w, h int) *grayPlane {
	return &grayPlane{W: w, H: h, Pix: make([]uint8, w*h)}
}

// luminance projects b onto ITU-R 601 luma, ignoring alpha.
func luminance(b *Bitmap) *grayPlane {
	return grayFromNRGBA(imaging.Grayscale(b.NRGBA()))
}

// grayFromNRGBA takes the red channel of an image whose channels are equal.
func grayFromNRGBA(img *image.NRGBA) *grayPlane {
	bounds := img.Bounds()
	g := newGrayPlane(bounds.Dx(), bounds.Dy())
	for y := range g.H {
		for x := range g.W {
			g.Pix[labelOffset(g.W, x, y)] = img.Pix[img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)]
		}
	}
	return g
}

func (g *grayPlane) image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	copy(img.Pix, g.Pix)
	return img
}

// at returns the value at (x, y) with coordinates clamped to the plane.
func (g *grayPlane) at(x, y int) uint8 {
	x = clampInt(x, 0, g.W-1)
	y = clampInt(y, 0, g.H-1)
	return g.Pix[labelOffset(g.W, x, y)]
}

// blur applies a gaussian low-pass of the given sigma.
func (g *grayPlane) blur(sigma float64) *grayPlane {
	return grayFromNRGBA(imaging.Blur(g.image(), sigma))
}

// mask converts a binary plane (non-zero = foreground) into an opaque/
// transparent mask.
func (g *grayPlane) mask(fg color.NRGBA) *Bitmap {
	out := NewBitmap(g.W, g.H, fg)
	for i, v := range g.Pix {
		if v != 0 {
			out.Pix[i*4+3] = 255
		}
	}
	return out
}
