package silhouette

import (
	"image"
	"math"
	"math/rand/v2"
)

// HoughParams bounds the probabilistic Hough line detector.
type HoughParams struct {
	Rho           float64 // distance resolution in pixels
	Theta         float64 // angle resolution in radians
	Threshold     int     // accumulator votes needed for a candidate line
	MinLineLength int     // shorter segments are dropped
	MaxLineGap    int     // largest gap bridged between collinear points
}

// DefaultHoughParams matches the line variant: 1px, 1°, 50 votes, 20px
// minimum length, 10px gap.
func DefaultHoughParams() HoughParams {
	return HoughParams{
		Rho:           1,
		Theta:         math.Pi / 180,
		Threshold:     50,
		MinLineLength: 20,
		MaxLineGap:    10,
	}
}

// Segment is a detected line segment with inclusive pixel endpoints.
type Segment struct {
	P0, P1 image.Point
}

// houghSeed keeps the point visiting order, and so the detected lines,
// identical between runs.
const houghSeed = 0x5eed

// houghLinesP runs the progressive probabilistic Hough transform over the
// non-zero pixels of edges.
func houghLinesP(edges *grayPlane, p HoughParams) []Segment {
	w, h := edges.W, edges.H
	if w == 0 || h == 0 || p.Rho <= 0 || p.Theta <= 0 {
		return nil
	}
	numAngle := int(math.Round(math.Pi / p.Theta))
	numRho := int(math.Round(float64((w+h)*2+1) / p.Rho))
	rhoOffset := (numRho - 1) / 2
	irho := 1 / p.Rho

	cosTab := make([]float64, numAngle)
	sinTab := make([]float64, numAngle)
	for n := range numAngle {
		ang := float64(n) * p.Theta
		cosTab[n] = math.Cos(ang) * irho
		sinTab[n] = math.Sin(ang) * irho
	}

	accum := make([]int, numAngle*numRho)
	mask := make([]bool, w*h)
	var points []image.Point
	for y := range h {
		for x := range w {
			if edges.Pix[labelOffset(w, x, y)] != 0 {
				mask[labelOffset(w, x, y)] = true
				points = append(points, image.Pt(x, y))
			}
		}
	}
	rng := rand.New(rand.NewPCG(houghSeed, uint64(w)<<32|uint64(h)))
	rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })

	vote := func(x, y, delta int) {
		for n := range numAngle {
			r := int(math.Round(float64(x)*cosTab[n]+float64(y)*sinTab[n])) + rhoOffset
			accum[n*numRho+r] += delta
		}
	}

	var lines []Segment
	for _, pt := range points {
		// The seed stays in the mask: it bounds its own line and an accepted
		// line takes its vote back like every other point on it.
		if !mask[labelOffset(w, pt.X, pt.Y)] {
			continue
		}
		maxVal, maxN := p.Threshold-1, 0
		for n := range numAngle {
			r := int(math.Round(float64(pt.X)*cosTab[n]+float64(pt.Y)*sinTab[n])) + rhoOffset
			accum[n*numRho+r]++
			if v := accum[n*numRho+r]; v > maxVal {
				maxVal, maxN = v, n
			}
		}
		if maxVal < p.Threshold {
			continue
		}

		// Walk along the line direction from pt in both senses.
		a := -math.Sin(float64(maxN) * p.Theta)
		b := math.Cos(float64(maxN) * p.Theta)
		var dx0, dy0 float64
		if math.Abs(a) > math.Abs(b) {
			dx0 = math.Copysign(1, a)
			dy0 = b / math.Abs(a)
		} else {
			dy0 = math.Copysign(1, b)
			dx0 = a / math.Abs(b)
		}

		var ends [2]image.Point
		for k := range 2 {
			dx, dy := dx0, dy0
			if k == 1 {
				dx, dy = -dx, -dy
			}
			gap := 0
			fx, fy := float64(pt.X), float64(pt.Y)
			for {
				x, y := int(math.Round(fx)), int(math.Round(fy))
				if x < 0 || x >= w || y < 0 || y >= h {
					break
				}
				if mask[labelOffset(w, x, y)] {
					gap = 0
					ends[k] = image.Pt(x, y)
				} else if gap++; gap > p.MaxLineGap {
					break
				}
				fx += dx
				fy += dy
			}
		}

		good := abs(ends[1].X-ends[0].X) >= p.MinLineLength ||
			abs(ends[1].Y-ends[0].Y) >= p.MinLineLength

		for k := range 2 {
			dx, dy := dx0, dy0
			if k == 1 {
				dx, dy = -dx, -dy
			}
			fx, fy := float64(pt.X), float64(pt.Y)
			for {
				x, y := int(math.Round(fx)), int(math.Round(fy))
				if x < 0 || x >= w || y < 0 || y >= h {
					break
				}
				i := labelOffset(w, x, y)
				if mask[i] {
					if good {
						vote(x, y, -1)
					}
					mask[i] = false
				}
				if x == ends[k].X && y == ends[k].Y {
					break
				}
				fx += dx
				fy += dy
			}
		}

		if good {
			lines = append(lines, Segment{P0: ends[0], P1: ends[1]})
		}
	}
	return lines
}
