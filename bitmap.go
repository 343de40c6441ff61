package silhouette

import (
	"image"
	"image/color"
)

// Bitmap is a W×H grid of straight (non-premultiplied) RGBA pixels stored
// interleaved in Pix, four bytes per pixel, row-major.
type Bitmap struct {
	W, H int
	Pix  []uint8
}

// NewBitmap allocates a fully transparent bitmap whose RGB is set to fg.
func NewBitmap(w, h int, fg color.NRGBA) *Bitmap {
	w = max(w, 0)
	h = max(h, 0)
	b := &Bitmap{W: w, H: h, Pix: make([]uint8, w*h*4)}
	if fg.R == 0 && fg.G == 0 && fg.B == 0 {
		return b
	}
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = fg.R
		b.Pix[i+1] = fg.G
		b.Pix[i+2] = fg.B
	}
	return b
}

// FromImage copies any image.Image into a new Bitmap.
func FromImage(img image.Image) *Bitmap {
	if img == nil {
		return &Bitmap{}
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	b := &Bitmap{W: w, H: h, Pix: make([]uint8, w*h*4)}
	if src, ok := img.(*image.NRGBA); ok {
		for y := range h {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			copy(b.Pix[y*w*4:(y+1)*w*4], row[:w*4])
		}
		return b
	}
	for y := range h {
		for x := range w {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			off := pixOffset(w, x, y)
			b.Pix[off] = c.R
			b.Pix[off+1] = c.G
			b.Pix[off+2] = c.B
			b.Pix[off+3] = c.A
		}
	}
	return b
}

// NRGBA returns a copy of the bitmap as an *image.NRGBA.
func (b *Bitmap) NRGBA() *image.NRGBA {
	if !b.Valid() {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	img := image.NewNRGBA(image.Rect(0, 0, b.W, b.H))
	copy(img.Pix, b.Pix)
	return img
}

// Valid reports whether b has a positive area and a pixel buffer that
// matches its dimensions.
func (b *Bitmap) Valid() bool {
	return b != nil && b.W > 0 && b.H > 0 && len(b.Pix) == b.W*b.H*4
}

func (b *Bitmap) Bounds() image.Rectangle {
	if b == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, b.W, b.H)
}

func (b *Bitmap) In(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// At returns the pixel at (x, y), or a zero colour outside the bitmap.
func (b *Bitmap) At(x, y int) color.NRGBA {
	if !b.In(x, y) {
		return color.NRGBA{}
	}
	off := pixOffset(b.W, x, y)
	return color.NRGBA{R: b.Pix[off], G: b.Pix[off+1], B: b.Pix[off+2], A: b.Pix[off+3]}
}

// Set writes c at (x, y). Writes outside the bitmap are ignored.
func (b *Bitmap) Set(x, y int, c color.NRGBA) {
	if !b.In(x, y) {
		return
	}
	off := pixOffset(b.W, x, y)
	b.Pix[off] = c.R
	b.Pix[off+1] = c.G
	b.Pix[off+2] = c.B
	b.Pix[off+3] = c.A
}

func (b *Bitmap) Alpha(x, y int) uint8 {
	if !b.In(x, y) {
		return 0
	}
	return b.Pix[pixOffset(b.W, x, y)+3]
}

func (b *Bitmap) Clone() *Bitmap {
	if b == nil {
		return nil
	}
	c := &Bitmap{W: b.W, H: b.H, Pix: make([]uint8, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// VisibleCount returns the number of pixels with alpha > 0.
func (b *Bitmap) VisibleCount() int {
	if !b.Valid() {
		return 0
	}
	n := 0
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] > 0 {
			n++
		}
	}
	return n
}

// Equal reports whether b and o have the same size and identical pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.W != o.W || b.H != o.H || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

func pixOffset(w, x, y int) int {
	return (y*w + x) * 4
}

func labelOffset(w, x, y int) int {
	return y*w + x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// emptyLike returns a transparent mask sized like b, or a zero-area bitmap
// when b is not valid.
func emptyLike(b *Bitmap, fg color.NRGBA) *Bitmap {
	if !b.Valid() {
		return &Bitmap{Pix: []uint8{}}
	}
	return NewBitmap(b.W, b.H, fg)
}
