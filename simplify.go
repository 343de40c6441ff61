package silhouette

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// curveEpsilonRatio scales the simplification tolerance to a contour's
// perimeter.
const curveEpsilonRatio = 0.005

// arcLength returns the perimeter of a polyline, closing it when closed.
func arcLength(pts []r2.Vec, closed bool) float64 {
	if len(pts) < 2 {
		return 0
	}
	var l float64
	for i := 1; i < len(pts); i++ {
		l += r2.Norm(r2.Sub(pts[i], pts[i-1]))
	}
	if closed {
		l += r2.Norm(r2.Sub(pts[0], pts[len(pts)-1]))
	}
	return l
}

// simplifyClosed reduces a closed polygon with the Douglas-Peucker algorithm.
// The ring is split at the vertex farthest from the first one and each half
// is simplified independently.
func simplifyClosed(pts []r2.Vec, epsilon float64) []r2.Vec {
	if len(pts) < 3 {
		return append([]r2.Vec(nil), pts...)
	}
	far, farD := 0, -1.0
	for i, p := range pts {
		if d := r2.Norm2(r2.Sub(p, pts[0])); d > farD {
			far, farD = i, d
		}
	}
	if far == 0 {
		return []r2.Vec{pts[0]}
	}
	first := douglasPeucker(pts[:far+1], epsilon)
	second := douglasPeucker(append(append([]r2.Vec(nil), pts[far:]...), pts[0]), epsilon)
	out := append(first[:len(first)-1:len(first)-1], second[:len(second)-1]...)
	return out
}

// douglasPeucker keeps both endpoints of an open polyline and every vertex
// farther than epsilon from the simplified chord. It uses an explicit stack.
func douglasPeucker(pts []r2.Vec, epsilon float64) []r2.Vec {
	n := len(pts)
	if n <= 2 {
		return append([]r2.Vec(nil), pts...)
	}
	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true
	type span struct{ a, b int }
	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		idx, maxD := -1, epsilon
		for i := s.a + 1; i < s.b; i++ {
			if d := segmentDistance(pts[i], pts[s.a], pts[s.b]); d > maxD {
				idx, maxD = i, d
			}
		}
		if idx < 0 {
			continue
		}
		keep[idx] = true
		stack = append(stack, span{s.a, idx}, span{idx, s.b})
	}
	out := make([]r2.Vec, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

// segmentDistance returns the distance from p to the segment ab.
func segmentDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	t := r2.Dot(r2.Sub(p, a), ab) / l2
	t = max(0, min(1, t))
	return r2.Norm(r2.Sub(p, r2.Add(a, r2.Scale(t, ab))))
}
