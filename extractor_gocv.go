//go:build gocv

package silhouette

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

func defaultExtractor(fg color.NRGBA) Extractor {
	return CVExtractor{Foreground: fg}
}

// CVExtractor runs the line and contour pipelines through OpenCV. Gradient
// edges are shared with the native backend.
type CVExtractor struct {
	Foreground color.NRGBA
}

func (CVExtractor) Name() string { return "opencv" }

var strokeColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func (e CVExtractor) Edges(src *Bitmap) (*Bitmap, error) {
	if !src.Valid() {
		return nil, ErrInvalidBitmap
	}
	return GradientEdges(src, e.Foreground), nil
}

func (e CVExtractor) Lines(src *Bitmap) (*Bitmap, error) {
	gray, err := grayMat(src)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, cannyLow, cannyHigh)

	lines := gocv.NewMat()
	defer lines.Close()
	p := DefaultHoughParams()
	gocv.HoughLinesPWithParams(edges, &lines, float32(p.Rho), float32(p.Theta), p.Threshold,
		float32(p.MinLineLength), float32(p.MaxLineGap))

	canvas := blankMat(src)
	defer canvas.Close()
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		gocv.Line(&canvas, image.Pt(int(v[0]), int(v[1])), image.Pt(int(v[2]), int(v[3])), strokeColor, lineWidth)
	}
	return matMask(canvas, e.Foreground)
}

func (e CVExtractor) Thick(src *Bitmap) (*Bitmap, error) {
	bin, err := adaptiveBinaryMat(src)
	if err != nil {
		return nil, err
	}
	defer bin.Close()

	closed := morphClose(bin, thickCloseKernel)
	defer closed.Close()
	dilated := dilateMat(closed, finalDilateKernel)
	defer dilated.Close()
	return matMask(dilated, e.Foreground)
}

func (e CVExtractor) Curved(src *Bitmap) (*Bitmap, error) {
	bin, err := adaptiveBinaryMat(src)
	if err != nil {
		return nil, err
	}
	defer bin.Close()

	closed := morphClose(bin, curvedCloseKernel)
	defer closed.Close()

	contours := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	simplified := gocv.NewPointsVector()
	defer simplified.Close()
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		approx := gocv.ApproxPolyDP(c, curveEpsilonRatio*gocv.ArcLength(c, true), true)
		simplified.Append(approx)
		approx.Close()
	}

	canvas := blankMat(src)
	defer canvas.Close()
	if simplified.Size() > 0 {
		gocv.FillPoly(&canvas, simplified, strokeColor)
	}
	dilated := dilateMat(canvas, finalDilateKernel)
	defer dilated.Close()
	return matMask(dilated, e.Foreground)
}

func grayMat(src *Bitmap) (gocv.Mat, error) {
	if !src.Valid() {
		return gocv.NewMat(), ErrInvalidBitmap
	}
	m, err := gocv.ImageGrayToMatGray(luminance(src).image())
	if err != nil {
		return m, fmt.Errorf("convert luminance to mat: %w", err)
	}
	return m, nil
}

func adaptiveBinaryMat(src *Bitmap) (gocv.Mat, error) {
	gray, err := grayMat(src)
	if err != nil {
		return gray, err
	}
	defer gray.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	bin := gocv.NewMat()
	gocv.AdaptiveThreshold(blurred, &bin, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinaryInv,
		adaptiveBlockSize, adaptiveOffset)
	return bin, nil
}

func morphClose(src gocv.Mat, k int) gocv.Mat {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(k, k))
	defer kernel.Close()
	dst := gocv.NewMat()
	gocv.MorphologyEx(src, &dst, gocv.MorphClose, kernel)
	return dst
}

func dilateMat(src gocv.Mat, k int) gocv.Mat {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(k, k))
	defer kernel.Close()
	dst := gocv.NewMat()
	gocv.Dilate(src, &dst, kernel)
	return dst
}

func blankMat(src *Bitmap) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), src.H, src.W, gocv.MatTypeCV8U)
}

// matMask converts a single-channel 8-bit Mat into a mask.
func matMask(m gocv.Mat, fg color.NRGBA) (*Bitmap, error) {
	w, h := m.Cols(), m.Rows()
	pix := m.ToBytes()
	if len(pix) != w*h {
		return nil, fmt.Errorf("unexpected mat layout: %dx%d with %d bytes", w, h, len(pix))
	}
	return (&grayPlane{W: w, H: h, Pix: pix}).mask(fg), nil
}
