package silhouette

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// fillPolygons rasterizes closed polygons whose vertices are pixel
// coordinates. Interior pixels covered at least halfway and every pixel on
// the polygon outline become foreground.
func fillPolygons(w, h int, polys [][]r2.Vec) *grayPlane {
	out := newGrayPlane(w, h)
	if w == 0 || h == 0 {
		return out
	}
	z := vector.NewRasterizer(w, h)
	drawn := false
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		z.MoveTo(float32(poly[0].X+0.5), float32(poly[0].Y+0.5))
		for _, p := range poly[1:] {
			z.LineTo(float32(p.X+0.5), float32(p.Y+0.5))
		}
		z.ClosePath()
		drawn = true
	}
	if drawn {
		coverage := image.NewAlpha(image.Rect(0, 0, w, h))
		z.DrawOp = draw.Src
		z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})
		for i, a := range coverage.Pix {
			if a >= 0x80 {
				out.Pix[i] = 255
			}
		}
	}
	// Vertices sit on pixel centres so outline pixels are only half covered.
	for _, poly := range polys {
		for i, p := range poly {
			plotLine(out, p, poly[(i+1)%len(poly)])
		}
	}
	return out
}

// strokeSegments draws each segment as a square-capped stroke of the given
// width. Pixels covered at least halfway become foreground.
func strokeSegments(w, h int, segs []Segment, width float64) *grayPlane {
	out := newGrayPlane(w, h)
	if w == 0 || h == 0 || len(segs) == 0 {
		return out
	}
	z := vector.NewRasterizer(w, h)
	half := width / 2
	for _, s := range segs {
		a := r2.Vec{X: float64(s.P0.X) + 0.5, Y: float64(s.P0.Y) + 0.5}
		b := r2.Vec{X: float64(s.P1.X) + 0.5, Y: float64(s.P1.Y) + 0.5}
		dir := r2.Sub(b, a)
		if r2.Norm(dir) == 0 {
			dir = r2.Vec{X: 1}
		}
		u := r2.Scale(half, r2.Unit(dir))
		n := r2.Vec{X: -u.Y, Y: u.X}
		a = r2.Sub(a, u)
		b = r2.Add(b, u)
		corners := [4]r2.Vec{r2.Add(a, n), r2.Add(b, n), r2.Sub(b, n), r2.Sub(a, n)}
		z.MoveTo(float32(corners[0].X), float32(corners[0].Y))
		for _, c := range corners[1:] {
			z.LineTo(float32(c.X), float32(c.Y))
		}
		z.ClosePath()
	}
	coverage := image.NewAlpha(image.Rect(0, 0, w, h))
	z.DrawOp = draw.Src
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})
	for i, a := range coverage.Pix {
		if a >= 0x80 {
			out.Pix[i] = 255
		}
	}
	return out
}

// plotLine sets every pixel on the Bresenham line between p and q.
func plotLine(g *grayPlane, p, q r2.Vec) {
	x0, y0 := int(math.Round(p.X)), int(math.Round(p.Y))
	x1, y1 := int(math.Round(q.X)), int(math.Round(q.Y))
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if x0 >= 0 && x0 < g.W && y0 >= 0 && y0 < g.H {
			g.Pix[labelOffset(g.W, x0, y0)] = 255
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}
