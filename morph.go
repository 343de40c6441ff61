package silhouette

// Binary morphology with square structuring elements over planes where
// non-zero means foreground. Pixels outside the plane never influence the
// result.

func dilate(g *grayPlane, k int) *grayPlane {
	return morphRect(g, k, true)
}

func erode(g *grayPlane, k int) *grayPlane {
	return morphRect(g, k, false)
}

// closeRect fills gaps narrower than a k×k square.
func closeRect(g *grayPlane, k int) *grayPlane {
	return erode(dilate(g, k), k)
}

// morphRect applies a k×k max (dilate) or min (erode) filter as two
// separable 1-D passes.
func morphRect(g *grayPlane, k int, grow bool) *grayPlane {
	if k <= 1 || g.W == 0 || g.H == 0 {
		out := newGrayPlane(g.W, g.H)
		copy(out.Pix, g.Pix)
		return out
	}
	lo := -(k - 1) / 2
	hi := k / 2
	tmp := newGrayPlane(g.W, g.H)
	for y := range g.H {
		for x := range g.W {
			tmp.Pix[labelOffset(g.W, x, y)] = window(grow, lo, hi, x, g.W, func(i int) uint8 {
				return g.Pix[labelOffset(g.W, i, y)]
			})
		}
	}
	out := newGrayPlane(g.W, g.H)
	for y := range g.H {
		for x := range g.W {
			out.Pix[labelOffset(g.W, x, y)] = window(grow, lo, hi, y, g.H, func(i int) uint8 {
				return tmp.Pix[labelOffset(g.W, x, i)]
			})
		}
	}
	return out
}

func window(grow bool, lo, hi, c, n int, at func(int) uint8) uint8 {
	var v uint8
	if !grow {
		v = 255
	}
	for d := lo; d <= hi; d++ {
		i := c + d
		if i < 0 || i >= n {
			continue
		}
		p := at(i)
		if grow && p > v {
			v = p
		} else if !grow && p < v {
			v = p
		}
	}
	return v
}
