package silhouette

import (
	"image"
	"image/color"
	"testing"
)

// band returns a 100x100 white bitmap with a black horizontal band on rows
// 48-51 spanning x 10-89.
func band() *Bitmap {
	src := NewBitmap(100, 100, color.NRGBA{})
	for y := range 100 {
		for x := range 100 {
			if y >= 48 && y <= 51 && x >= 10 && x <= 89 {
				src.Set(x, y, opaque(0, 0, 0))
			} else {
				src.Set(x, y, opaque(255, 255, 255))
			}
		}
	}
	return src
}

func TestGradientEdges(t *testing.T) {
	src := darkSquare(10, image.Rect(0, 0, 5, 10))
	out := GradientEdges(src, White)
	tests := []struct {
		x, y int
		want uint8
	}{
		{2, 5, 255},
		{4, 5, 255},
		{5, 5, 0},
		{8, 5, 255},
		{0, 0, 255},
	}
	for _, tt := range tests {
		if got := out.Alpha(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d): expected alpha %d, got %d", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestGradientEdgesUniform(t *testing.T) {
	src := darkSquare(6, image.Rectangle{})
	if n := GradientEdges(src, White).VisibleCount(); n != 36 {
		t.Errorf("expected fully opaque mask, got %d visible", n)
	}
}

func TestCannyKeepsOneEdgePerSide(t *testing.T) {
	edges := canny(luminance(band()), cannyLow, cannyHigh)
	at := func(x, y int) uint8 { return edges.Pix[labelOffset(100, x, y)] }
	if at(50, 47) != 255 {
		t.Error("expected top edge on row 47")
	}
	if at(50, 48) != 0 {
		t.Error("expected row 48 suppressed")
	}
	if at(50, 51) != 255 {
		t.Error("expected bottom edge on row 51")
	}
	if at(50, 20) != 0 || at(50, 49) != 0 {
		t.Error("expected flat regions without edges")
	}
}

func TestCannySmallPlane(t *testing.T) {
	if n := countSet(canny(newGrayPlane(2, 2), cannyLow, cannyHigh)); n != 0 {
		t.Errorf("expected no edges, got %d", n)
	}
}

func TestDetectLines(t *testing.T) {
	segs := DetectLines(band(), DefaultHoughParams())
	if len(segs) == 0 {
		t.Fatal("expected at least one segment")
	}
	found := false
	for _, s := range segs {
		if s.P0.Y == s.P1.Y && abs(s.P1.X-s.P0.X) >= 50 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a long horizontal segment, got %v", segs)
	}
	again := DetectLines(band(), DefaultHoughParams())
	if len(again) != len(segs) {
		t.Fatalf("expected %d segments on a second run, got %d", len(segs), len(again))
	}
	for i := range segs {
		if segs[i] != again[i] {
			t.Errorf("segment %d differs between runs: %v vs %v", i, segs[i], again[i])
		}
	}
}

func TestHoughRejectsBadParams(t *testing.T) {
	p := DefaultHoughParams()
	p.Rho = 0
	if segs := houghLinesP(planeRect(10, 10, image.Rect(0, 5, 10, 6)), p); segs != nil {
		t.Errorf("expected nil, got %v", segs)
	}
}

func TestLineSegmentsAreOpaque(t *testing.T) {
	out := LineSegments(band(), White)
	if out.Alpha(50, 47) != 255 {
		t.Errorf("expected an opaque stroke on row 47, got alpha %d", out.Alpha(50, 47))
	}
	if out.Alpha(50, 20) != 0 || out.Alpha(5, 90) != 0 {
		t.Error("expected empty background")
	}
}

func TestStrokeSegments(t *testing.T) {
	g := strokeSegments(20, 20, []Segment{{P0: image.Pt(2, 10), P1: image.Pt(17, 10)}}, lineWidth)
	for x := 2; x <= 17; x++ {
		if g.Pix[labelOffset(20, x, 10)] == 0 {
			t.Errorf("expected (%d,10) stroked", x)
		}
	}
	if g.Pix[labelOffset(20, 10, 13)] != 0 || g.Pix[labelOffset(20, 10, 7)] != 0 {
		t.Error("expected stroke limited to its width")
	}
	if countSet(strokeSegments(20, 20, nil, lineWidth)) != 0 {
		t.Error("expected blank plane without segments")
	}
}
