package silhouette

import (
	"image/color"

	"github.com/disintegration/imaging"
)

// findEdgesKernel is a 3x3 Laplacian.
var findEdgesKernel = [9]float64{
	-1, -1, -1,
	-1, 8, -1,
	-1, -1, -1,
}

const (
	edgeThreshold = 50
	lineWidth     = 2
)

// GradientEdges returns a mask that is opaque everywhere except on strong
// luminance edges, which become transparent.
func GradientEdges(src *Bitmap, fg color.NRGBA) *Bitmap {
	if !src.Valid() {
		return emptyLike(src, fg)
	}
	edges := grayFromNRGBA(imaging.Convolve3x3(imaging.Grayscale(src.NRGBA()), findEdgesKernel, nil))
	out := NewBitmap(src.W, src.H, fg)
	for i, v := range edges.Pix {
		if v <= edgeThreshold {
			out.Pix[i*4+3] = 255
		}
	}
	return out
}

// LineSegments detects straight segments with Canny + probabilistic Hough and
// draws them as opaque strokes on a transparent canvas.
func LineSegments(src *Bitmap, fg color.NRGBA) *Bitmap {
	if !src.Valid() {
		return emptyLike(src, fg)
	}
	segs := DetectLines(src, DefaultHoughParams())
	return strokeSegments(src.W, src.H, segs, lineWidth).mask(fg)
}

// DetectLines returns the straight segments found in src's luminance edges.
func DetectLines(src *Bitmap, p HoughParams) []Segment {
	if !src.Valid() {
		return nil
	}
	return houghLinesP(canny(luminance(src), cannyLow, cannyHigh), p)
}
