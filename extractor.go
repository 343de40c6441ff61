package silhouette

import (
	"image/color"
)

// Extractor builds the edge and contour masks. Implementations return raw
// masks; cleaning and smoothing are applied by the caller. They must not
// modify src and must be deterministic.
type Extractor interface {
	Name() string
	Edges(src *Bitmap) (*Bitmap, error)
	Lines(src *Bitmap) (*Bitmap, error)
	Thick(src *Bitmap) (*Bitmap, error)
	Curved(src *Bitmap) (*Bitmap, error)
}

// NativeExtractor is the pure Go backend.
type NativeExtractor struct {
	Foreground color.NRGBA
}

func (NativeExtractor) Name() string { return "native" }

func (e NativeExtractor) Edges(src *Bitmap) (*Bitmap, error) {
	if !src.Valid() {
		return nil, ErrInvalidBitmap
	}
	return GradientEdges(src, e.Foreground), nil
}

func (e NativeExtractor) Lines(src *Bitmap) (*Bitmap, error) {
	if !src.Valid() {
		return nil, ErrInvalidBitmap
	}
	return LineSegments(src, e.Foreground), nil
}

func (e NativeExtractor) Thick(src *Bitmap) (*Bitmap, error) {
	if !src.Valid() {
		return nil, ErrInvalidBitmap
	}
	return ThickContours(src, e.Foreground), nil
}

func (e NativeExtractor) Curved(src *Bitmap) (*Bitmap, error) {
	if !src.Valid() {
		return nil, ErrInvalidBitmap
	}
	return CurvedContours(src, e.Foreground), nil
}
