package silhouette

import (
	"image/color"
)

// neighbours8 lists the 8-connected offsets.
var neighbours8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Clean erases every 8-connected cluster of visible pixels smaller than
// minClusterSize. The input is not modified.
func Clean(mask *Bitmap, minClusterSize int) *Bitmap {
	return CleanColor(mask, minClusterSize, White)
}

// CleanColor is Clean with an explicit foreground for erased pixels.
func CleanColor(mask *Bitmap, minClusterSize int, fg color.NRGBA) *Bitmap {
	if !mask.Valid() {
		return emptyLike(mask, fg)
	}
	out := mask.Clone()
	if minClusterSize <= 1 {
		return out
	}
	forEachCluster(mask, func(members []int) {
		if len(members) >= minClusterSize {
			return
		}
		for _, idx := range members {
			off := idx * 4
			out.Pix[off] = fg.R
			out.Pix[off+1] = fg.G
			out.Pix[off+2] = fg.B
			out.Pix[off+3] = 0
		}
	})
	return out
}

// Clusters returns the size of every 8-connected cluster of visible pixels,
// in the row-major order of each cluster's first pixel.
func Clusters(mask *Bitmap) []int {
	if !mask.Valid() {
		return nil
	}
	var sizes []int
	forEachCluster(mask, func(members []int) {
		sizes = append(sizes, len(members))
	})
	return sizes
}

// forEachCluster grows each cluster once with an explicit stack and passes
// its pixel indices to fn. The members slice is reused between calls.
func forEachCluster(mask *Bitmap, fn func(members []int)) {
	w, h := mask.W, mask.H
	visited := newBitset(w * h)
	stack := make([]int, 0, 64)
	members := make([]int, 0, 64)

	for y := range h {
		for x := range w {
			start := labelOffset(w, x, y)
			if visited.has(start) || mask.Pix[start*4+3] == 0 {
				continue
			}
			members = members[:0]
			stack = append(stack[:0], start)
			visited.set(start)
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				members = append(members, cur)
				cx, cy := cur%w, cur/w
				for _, d := range neighbours8 {
					nx, ny := cx+d[0], cy+d[1]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					nIdx := labelOffset(w, nx, ny)
					if visited.has(nIdx) || mask.Pix[nIdx*4+3] == 0 {
						continue
					}
					visited.set(nIdx)
					stack = append(stack, nIdx)
				}
			}
			fn(members)
		}
	}
}

type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) has(i int) bool { return b[i>>6]&(1<<(uint(i)&63)) != 0 }
func (b bitset) set(i int)      { b[i>>6] |= 1 << (uint(i) & 63) }
