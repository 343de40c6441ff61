package silhouette

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	contourBlurSigma  = 1.1 // matches a 5x5 gaussian kernel
	thickCloseKernel  = 7
	curvedCloseKernel = 5
	finalDilateKernel = 3
)

// ThickContours blurs the luminance of src, binarizes it with an adaptive
// mean threshold, closes gaps with a 7x7 square and dilates once.
func ThickContours(src *Bitmap, fg color.NRGBA) *Bitmap {
	if !src.Valid() {
		return emptyLike(src, fg)
	}
	bin := adaptiveBinary(src)
	bin = closeRect(bin, thickCloseKernel)
	bin = dilate(bin, finalDilateKernel)
	return bin.mask(fg)
}

// CurvedContours binarizes like ThickContours with a 5x5 closing, then fills
// every external contour after simplifying it to 0.5% of its perimeter.
func CurvedContours(src *Bitmap, fg color.NRGBA) *Bitmap {
	if !src.Valid() {
		return emptyLike(src, fg)
	}
	bin := adaptiveBinary(src)
	bin = closeRect(bin, curvedCloseKernel)

	var polys [][]r2.Vec
	for _, c := range externalContours(bin) {
		pts := make([]r2.Vec, len(c))
		for i, p := range c {
			pts[i] = r2.Vec{X: float64(p.X), Y: float64(p.Y)}
		}
		eps := curveEpsilonRatio * arcLength(pts, true)
		polys = append(polys, simplifyClosed(pts, eps))
	}
	filled := fillPolygons(src.W, src.H, polys)
	return dilate(filled, finalDilateKernel).mask(fg)
}

func adaptiveBinary(src *Bitmap) *grayPlane {
	return adaptiveThresholdInv(luminance(src).blur(contourBlurSigma), adaptiveBlockSize, adaptiveOffset)
}

// mooreDirs lists the 8 neighbour steps clockwise (y axis down), from east.
var mooreDirs = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// externalContours returns the outer boundary of every 8-connected
// foreground component that is not enclosed by another component. Each
// contour starts at the component's top-left pixel and runs clockwise.
func externalContours(bin *grayPlane) [][]image.Point {
	w, h := bin.W, bin.H
	if w == 0 || h == 0 {
		return nil
	}
	outside := outerBackground(bin)
	visited := newBitset(w * h)
	stack := make([]int, 0, 64)

	var contours [][]image.Point
	for y := range h {
		for x := range w {
			start := labelOffset(w, x, y)
			if visited.has(start) || bin.Pix[start] == 0 {
				continue
			}
			stack = append(stack[:0], start)
			visited.set(start)
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := cur%w, cur/w
				for _, d := range neighbours8 {
					nx, ny := cx+d[0], cy+d[1]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					n := labelOffset(w, nx, ny)
					if !visited.has(n) && bin.Pix[n] != 0 {
						visited.set(n)
						stack = append(stack, n)
					}
				}
			}
			// The pixel above a component's first pixel is background; the
			// component is external when that background reaches the border.
			if y == 0 || outside[labelOffset(w, x, y-1)] {
				contours = append(contours, traceBoundary(bin, image.Pt(x, y)))
			}
		}
	}
	return contours
}

// outerBackground marks background pixels 4-connected to the plane border.
func outerBackground(bin *grayPlane) []bool {
	w, h := bin.W, bin.H
	outside := make([]bool, w*h)
	var stack []int
	push := func(x, y int) {
		i := labelOffset(w, x, y)
		if !outside[i] && bin.Pix[i] == 0 {
			outside[i] = true
			stack = append(stack, i)
		}
	}
	for x := range w {
		push(x, 0)
		push(x, h-1)
	}
	for y := range h {
		push(0, y)
		push(w-1, y)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := cur%w, cur/w
		if cx > 0 {
			push(cx-1, cy)
		}
		if cx < w-1 {
			push(cx+1, cy)
		}
		if cy > 0 {
			push(cx, cy-1)
		}
		if cy < h-1 {
			push(cx, cy+1)
		}
	}
	return outside
}

// traceBoundary follows the outer boundary of the component containing
// start with Moore-neighbour tracing. start must be the component's first
// pixel in row-major order. Tracing stops when start is left again in the
// same direction as the first move.
func traceBoundary(bin *grayPlane, start image.Point) []image.Point {
	fg := func(p image.Point) bool {
		return p.X >= 0 && p.X < bin.W && p.Y >= 0 && p.Y < bin.H && bin.Pix[labelOffset(bin.W, p.X, p.Y)] != 0
	}
	pts := []image.Point{start}
	cur := start
	searchFrom := 5 // west of start is background, so begin north-west
	firstDir := -1
	limit := 4*bin.W*bin.H + 16
	for range limit {
		d := -1
		for k := range 8 {
			dir := (searchFrom + k) % 8
			if fg(cur.Add(mooreDirs[dir])) {
				d = dir
				break
			}
		}
		if d < 0 {
			return pts
		}
		if cur == start && firstDir >= 0 && d == firstDir {
			break
		}
		if firstDir < 0 {
			firstDir = d
		}
		cur = cur.Add(mooreDirs[d])
		pts = append(pts, cur)
		searchFrom = (d + 6) % 8
	}
	if len(pts) > 1 && pts[len(pts)-1] == start {
		pts = pts[:len(pts)-1]
	}
	return pts
}
