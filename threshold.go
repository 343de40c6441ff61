package silhouette

import "math"

// Adaptive threshold defaults shared by the contour variants.
const (
	adaptiveBlockSize = 11
	adaptiveOffset    = 2
)

// adaptiveThresholdInv binarizes g against the mean of each pixel's
// blockSize×blockSize neighbourhood (edges replicated). A pixel is foreground
// (255) when it is at least offset darker than its local mean.
func adaptiveThresholdInv(g *grayPlane, blockSize, offset int) *grayPlane {
	w, h := g.W, g.H
	out := newGrayPlane(w, h)
	if w == 0 || h == 0 {
		return out
	}
	if blockSize < 3 || blockSize%2 == 0 {
		blockSize = max(3, blockSize|1)
	}
	r := blockSize / 2

	// Summed-area table over the plane padded by r on every side.
	pw, ph := w+2*r, h+2*r
	sat := make([]int64, (pw+1)*(ph+1))
	for y := range ph {
		var row int64
		for x := range pw {
			row += int64(g.at(x-r, y-r))
			sat[(y+1)*(pw+1)+x+1] = sat[y*(pw+1)+x+1] + row
		}
	}
	area := float64(blockSize * blockSize)
	for y := range h {
		for x := range w {
			// Window [x, x+blockSize) in padded coordinates.
			x0, y0 := x, y
			x1, y1 := x+blockSize, y+blockSize
			sum := sat[y1*(pw+1)+x1] - sat[y0*(pw+1)+x1] - sat[y1*(pw+1)+x0] + sat[y0*(pw+1)+x0]
			mean := int(math.Round(float64(sum) / area))
			if int(g.Pix[labelOffset(w, x, y)]) <= mean-offset {
				out.Pix[labelOffset(w, x, y)] = 255
			}
		}
	}
	return out
}
