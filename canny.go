package silhouette

// Canny edge detection over a gray plane: 3x3 Sobel, L1 gradient magnitude,
// non-maximum suppression and hysteresis with 8-connectivity.

const (
	cannyLow  = 50
	cannyHigh = 150
)

func canny(g *grayPlane, low, high int) *grayPlane {
	w, h := g.W, g.H
	out := newGrayPlane(w, h)
	if w < 3 || h < 3 {
		return out
	}

	gx := make([]int, w*h)
	gy := make([]int, w*h)
	mag := make([]int, w*h)
	for y := range h {
		for x := range w {
			p00, p10, p20 := int(g.at(x-1, y-1)), int(g.at(x, y-1)), int(g.at(x+1, y-1))
			p01, p21 := int(g.at(x-1, y)), int(g.at(x+1, y))
			p02, p12, p22 := int(g.at(x-1, y+1)), int(g.at(x, y+1)), int(g.at(x+1, y+1))
			dx := (p20 + 2*p21 + p22) - (p00 + 2*p01 + p02)
			dy := (p02 + 2*p12 + p22) - (p00 + 2*p10 + p20)
			i := labelOffset(w, x, y)
			gx[i], gy[i] = dx, dy
			mag[i] = abs(dx) + abs(dy)
		}
	}

	// 0 = suppressed, 1 = weak, 2 = strong
	state := make([]uint8, w*h)
	stack := make([]int, 0, 256)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := labelOffset(w, x, y)
			m := mag[i]
			if m <= low {
				continue
			}
			var a, b int
			switch gradientSector(gx[i], gy[i]) {
			case 0:
				a, b = mag[i-1], mag[i+1]
			case 1:
				a, b = mag[i-w+1], mag[i+w-1]
			case 2:
				a, b = mag[i-w], mag[i+w]
			default:
				a, b = mag[i-w-1], mag[i+w+1]
			}
			if m <= a || m < b {
				continue
			}
			if m > high {
				state[i] = 2
				stack = append(stack, i)
			} else {
				state[i] = 1
			}
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for _, d := range neighbours8 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			n := labelOffset(w, nx, ny)
			if state[n] == 1 {
				state[n] = 2
				stack = append(stack, n)
			}
		}
	}
	for i, s := range state {
		if s == 2 {
			out.Pix[i] = 255
		}
	}
	return out
}

// gradientSector quantizes the gradient direction into 0°, 45°, 90° and
// 135° sectors (y axis pointing down).
func gradientSector(dx, dy int) int {
	// tan(22.5°) ≈ 0.4142, tan(67.5°) ≈ 2.4142, in 1/1024 fixed point.
	const tan22, tan67 = 424, 2472
	ax, ay := abs(dx), abs(dy)
	switch {
	case ay*1024 <= ax*tan22:
		return 0
	case ay*1024 >= ax*tan67:
		return 2
	case (dx > 0) == (dy > 0):
		return 3
	default:
		return 1
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
