package silhouette

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func planeFrom(w, h int, pts ...image.Point) *grayPlane {
	g := newGrayPlane(w, h)
	for _, p := range pts {
		g.Pix[labelOffset(w, p.X, p.Y)] = 255
	}
	return g
}

func planeRect(w, h int, r image.Rectangle) *grayPlane {
	g := newGrayPlane(w, h)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.Pix[labelOffset(w, x, y)] = 255
		}
	}
	return g
}

func countSet(g *grayPlane) int {
	n := 0
	for _, v := range g.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// darkSquare returns a white w×w bitmap with a black square covering r.
func darkSquare(w int, r image.Rectangle) *Bitmap {
	src := NewBitmap(w, w, color.NRGBA{})
	for y := range w {
		for x := range w {
			if image.Pt(x, y).In(r) {
				src.Set(x, y, opaque(0, 0, 0))
			} else {
				src.Set(x, y, opaque(255, 255, 255))
			}
		}
	}
	return src
}

func TestTraceBoundarySquare(t *testing.T) {
	g := planeRect(5, 5, image.Rect(1, 1, 4, 4))
	got := traceBoundary(g, image.Pt(1, 1))
	want := []image.Point{
		{1, 1}, {2, 1}, {3, 1}, {3, 2}, {3, 3}, {2, 3}, {1, 3}, {1, 2},
	}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTraceBoundarySinglePixel(t *testing.T) {
	g := planeFrom(3, 3, image.Pt(1, 1))
	got := traceBoundary(g, image.Pt(1, 1))
	if !slices.Equal(got, []image.Point{{1, 1}}) {
		t.Errorf("expected single point, got %v", got)
	}
}

func TestExternalContoursSkipsEnclosedComponents(t *testing.T) {
	g := newGrayPlane(9, 9)
	for i := 1; i <= 7; i++ {
		g.Pix[labelOffset(9, i, 1)] = 255
		g.Pix[labelOffset(9, i, 7)] = 255
		g.Pix[labelOffset(9, 1, i)] = 255
		g.Pix[labelOffset(9, 7, i)] = 255
	}
	g.Pix[labelOffset(9, 4, 4)] = 255

	contours := externalContours(g)
	if len(contours) != 1 {
		t.Fatalf("expected 1 external contour, got %d", len(contours))
	}
	if contours[0][0] != image.Pt(1, 1) {
		t.Errorf("expected contour to start at (1,1), got %v", contours[0][0])
	}
	if len(contours[0]) != 24 {
		t.Errorf("expected 24 boundary points, got %d", len(contours[0]))
	}
}

func TestExternalContoursSeparateComponents(t *testing.T) {
	g := planeFrom(10, 4, image.Pt(1, 1), image.Pt(5, 1), image.Pt(8, 2))
	if n := len(externalContours(g)); n != 3 {
		t.Errorf("expected 3 contours, got %d", n)
	}
	if externalContours(newGrayPlane(0, 0)) != nil {
		t.Error("expected no contours on an empty plane")
	}
}

func TestSimplifyClosedSquare(t *testing.T) {
	var ring []r2.Vec
	for x := 0; x < 4; x++ {
		ring = append(ring, r2.Vec{X: float64(x)})
	}
	for y := 0; y < 4; y++ {
		ring = append(ring, r2.Vec{X: 4, Y: float64(y)})
	}
	for x := 4; x > 0; x-- {
		ring = append(ring, r2.Vec{X: float64(x), Y: 4})
	}
	for y := 4; y > 0; y-- {
		ring = append(ring, r2.Vec{Y: float64(y)})
	}

	got := simplifyClosed(ring, 0.1)
	want := []r2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if l := arcLength(want, true); l != 16 {
		t.Errorf("expected perimeter 16, got %v", l)
	}
	if l := arcLength(want, false); l != 12 {
		t.Errorf("expected open length 12, got %v", l)
	}
}

func TestDouglasPeuckerKeepsEndpoints(t *testing.T) {
	line := []r2.Vec{{X: 0}, {X: 1, Y: 0.05}, {X: 2}, {X: 3, Y: 2}, {X: 4}}
	got := douglasPeucker(line, 0.5)
	want := []r2.Vec{{X: 0}, {X: 2}, {X: 3, Y: 2}, {X: 4}}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFillPolygons(t *testing.T) {
	square := []r2.Vec{{X: 2, Y: 2}, {X: 7, Y: 2}, {X: 7, Y: 7}, {X: 2, Y: 7}}
	g := fillPolygons(10, 10, [][]r2.Vec{square})
	if n := countSet(g); n != 36 {
		t.Errorf("expected 36 filled pixels, got %d", n)
	}
	for _, p := range []image.Point{{2, 2}, {7, 7}, {4, 5}} {
		if g.Pix[labelOffset(10, p.X, p.Y)] == 0 {
			t.Errorf("expected %v filled", p)
		}
	}
	for _, p := range []image.Point{{1, 1}, {8, 8}, {1, 5}} {
		if g.Pix[labelOffset(10, p.X, p.Y)] != 0 {
			t.Errorf("expected %v empty", p)
		}
	}
}

func TestMorphology(t *testing.T) {
	single := planeFrom(7, 7, image.Pt(3, 3))
	grown := dilate(single, 3)
	if n := countSet(grown); n != 9 {
		t.Errorf("expected 3x3 after dilation, got %d pixels", n)
	}
	if n := countSet(erode(grown, 3)); n != 1 {
		t.Errorf("expected single pixel after erosion, got %d", n)
	}

	gap := planeFrom(7, 5, image.Pt(2, 2), image.Pt(4, 2))
	closed := closeRect(gap, 3)
	want := planeFrom(7, 5, image.Pt(2, 2), image.Pt(3, 2), image.Pt(4, 2))
	if !slices.Equal(closed.Pix, want.Pix) {
		t.Errorf("expected one-pixel gap closed, got %v", closed.Pix)
	}

	if same := dilate(gap, 1); !slices.Equal(same.Pix, gap.Pix) {
		t.Error("expected k=1 to copy the plane")
	}
}

func TestAdaptiveThresholdInv(t *testing.T) {
	g := newGrayPlane(15, 15)
	for i := range g.Pix {
		g.Pix[i] = 200
	}
	if n := countSet(adaptiveThresholdInv(g, adaptiveBlockSize, adaptiveOffset)); n != 0 {
		t.Errorf("expected nothing on a uniform plane, got %d", n)
	}
	g.Pix[labelOffset(15, 7, 7)] = 0
	out := adaptiveThresholdInv(g, adaptiveBlockSize, adaptiveOffset)
	if n := countSet(out); n != 1 || out.Pix[labelOffset(15, 7, 7)] == 0 {
		t.Errorf("expected only the dark pixel, got %d pixels", n)
	}
}

func TestContoursOnDarkSquare(t *testing.T) {
	src := darkSquare(20, image.Rect(6, 6, 14, 14))
	before := src.Clone()
	for _, tc := range []struct {
		name string
		fn   func(*Bitmap, color.NRGBA) *Bitmap
	}{
		{"thick", ThickContours},
		{"curved", CurvedContours},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := tc.fn(src, White)
			if out.W != 20 || out.H != 20 {
				t.Fatalf("expected 20x20, got %dx%d", out.W, out.H)
			}
			if out.Alpha(10, 10) != 255 {
				t.Error("expected square interior in the mask")
			}
			if out.Alpha(0, 0) != 0 || out.Alpha(19, 19) != 0 {
				t.Error("expected background corners empty")
			}
			if !tc.fn(src, White).Equal(out) {
				t.Error("expected identical output on a second run")
			}
			if !src.Equal(before) {
				t.Error("expected source untouched")
			}
		})
	}
}

func TestContoursOnUniformImage(t *testing.T) {
	src := darkSquare(12, image.Rectangle{})
	if n := ThickContours(src, White).VisibleCount(); n != 0 {
		t.Errorf("expected empty thick mask, got %d", n)
	}
	if n := CurvedContours(src, White).VisibleCount(); n != 0 {
		t.Errorf("expected empty curved mask, got %d", n)
	}
}
