package silhouette

import (
	"image/color"
	"testing"
)

// halves paints the left half of a w×h bitmap with a and the right half
// with b, fully opaque.
func halves(w, h int, a, b color.NRGBA) *Bitmap {
	src := NewBitmap(w, h, color.NRGBA{})
	for y := range h {
		for x := range w {
			if x < w/2 {
				src.Set(x, y, a)
			} else {
				src.Set(x, y, b)
			}
		}
	}
	return src
}

func TestAnalyzeDominant(t *testing.T) {
	tests := []struct {
		name   string
		a, b   color.NRGBA
		want   Characteristic
		labelA string
		labelB string
	}{
		{"brightness", opaque(0, 0, 0), opaque(255, 255, 255), CharBrightness, "light", "dark"},
		{"saturation", opaque(200, 0, 200), opaque(100, 100, 100), CharSaturation, "saturated", "muted"},
		{"temperature", opaque(255, 0, 0), opaque(0, 0, 255), CharTemperature, "warm", "cool"},
		{"tie", opaque(100, 100, 100), opaque(100, 100, 100), CharBrightness, "light", "dark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := Analyze(halves(8, 4, tt.a, tt.b))
			if !ok {
				t.Fatal("expected samples")
			}
			if a.Samples != 32 {
				t.Errorf("expected 32 samples, got %d", a.Samples)
			}
			if a.Dominant != tt.want {
				t.Errorf("expected %v dominant, got %v", tt.want, a.Dominant)
			}
			la, lb := a.Dominant.Labels()
			if la != tt.labelA || lb != tt.labelB {
				t.Errorf("expected labels %s/%s, got %s/%s", tt.labelA, tt.labelB, la, lb)
			}
		})
	}
}

func TestAnalyzeStats(t *testing.T) {
	a, ok := Analyze(halves(2, 1, opaque(0, 0, 0), opaque(90, 90, 90)))
	if !ok {
		t.Fatal("expected samples")
	}
	s := a.Stats[CharBrightness]
	if s.Mean != 45 || s.Variance != 2025 || s.Spread != 4050 {
		t.Errorf("expected mean 45, variance 2025, spread 4050, got %+v", s)
	}
}

func TestAnalyzeAlphaFloor(t *testing.T) {
	src := NewBitmap(3, 3, White)
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = SplitAlphaFloor
	}
	if _, ok := Analyze(src); ok {
		t.Error("expected no samples at the alpha floor")
	}
	if res, ok := Split(src, DefaultMinClusterSize); ok || res != nil {
		t.Error("expected Split to produce nothing")
	}
	src.Pix[3] = SplitAlphaFloor + 1
	if a, ok := Analyze(src); !ok || a.Samples != 1 {
		t.Errorf("expected exactly one sample, got %d (ok=%v)", a.Samples, ok)
	}
}

func TestSplitUniformGoesToLowerSide(t *testing.T) {
	src := halves(4, 4, opaque(100, 100, 100), opaque(100, 100, 100))
	res, ok := Split(src, DefaultMinClusterSize)
	if !ok {
		t.Fatal("expected a split")
	}
	if res.Dominant != CharBrightness {
		t.Errorf("expected brightness, got %v", res.Dominant)
	}
	if n := res.A.VisibleCount(); n != 0 {
		t.Errorf("expected empty upper mask, got %d visible", n)
	}
	if n := res.B.VisibleCount(); n != 16 {
		t.Errorf("expected full lower mask, got %d visible", n)
	}
}

func TestSplitUniformFractionalBrightness(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		size int
	}{
		{"200,40,41 64x64", opaque(200, 40, 41), 64},
		{"1,1,2 48x48", opaque(1, 1, 2), 48},
		{"200,40,41 16x16", opaque(200, 40, 41), 16},
		{"200,40,41 256x256", opaque(200, 40, 41), 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := halves(tt.size, tt.size, tt.c, tt.c)
			a, ok := Analyze(src)
			if !ok {
				t.Fatal("expected samples")
			}
			if a.Dominant != CharBrightness {
				t.Errorf("expected brightness dominant, got %v", a.Dominant)
			}
			if v := CharBrightness.Value(tt.c.R, tt.c.G, tt.c.B); v != a.Stats[CharBrightness].Mean {
				t.Errorf("expected mean equal to the pixel value %v, got %v", v, a.Stats[CharBrightness].Mean)
			}

			maskA, maskB := partition(src, a.Dominant, a.Stats[a.Dominant].total, a.Samples, White)
			if n := maskA.VisibleCount(); n != 0 {
				t.Errorf("expected empty upper mask, got %d visible", n)
			}
			if n := maskB.VisibleCount(); n != tt.size*tt.size {
				t.Errorf("expected %d pixels in the lower mask, got %d", tt.size*tt.size, n)
			}

			res, ok := Split(src, DefaultMinClusterSize)
			if !ok {
				t.Fatal("expected a split")
			}
			if res.A.VisibleCount() != 0 || res.B.VisibleCount() != tt.size*tt.size {
				t.Errorf("expected everything in %q, got %d/%d", res.LabelB, res.A.VisibleCount(), res.B.VisibleCount())
			}
		})
	}
}

func TestPartitionIsComplementary(t *testing.T) {
	src := halves(8, 4, opaque(255, 0, 0), opaque(0, 0, 255))
	src.Set(0, 0, color.NRGBA{R: 255, A: 20})
	a, _ := Analyze(src)
	maskA, maskB := partition(src, a.Dominant, a.Stats[a.Dominant].total, a.Samples, White)
	for y := range 4 {
		for x := range 8 {
			inA, inB := maskA.Alpha(x, y) != 0, maskB.Alpha(x, y) != 0
			if x == 0 && y == 0 {
				if inA || inB {
					t.Error("expected pixel under the alpha floor in neither mask")
				}
				continue
			}
			if inA == inB {
				t.Fatalf("pixel (%d,%d): expected exactly one mask", x, y)
			}
			if inA != (x < 4) {
				t.Errorf("pixel (%d,%d): expected warm pixels in the upper mask", x, y)
			}
		}
	}
}

func TestSplitCleansAndSmooths(t *testing.T) {
	src := halves(8, 8, opaque(0, 0, 0), opaque(255, 255, 255))
	// A lone bright speck inside the dark half.
	src.Set(1, 1, opaque(255, 255, 255))
	res, ok := SplitColor(src, DefaultMinClusterSize, White)
	if !ok {
		t.Fatal("expected a split")
	}
	if res.LabelA != "light" || res.LabelB != "dark" {
		t.Errorf("expected light/dark, got %s/%s", res.LabelA, res.LabelB)
	}
	if a := res.A.Alpha(1, 1); a > 128 {
		t.Errorf("expected speck removed from light mask, got alpha %d", a)
	}
	if res.A.Alpha(6, 4) != 255 || res.B.Alpha(1, 4) != 255 {
		t.Error("expected interiors fully opaque")
	}
}
