package utils

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod maps "kmeans" and "dominantcolor" to their method.
// Anything else selects dominantcolor.
func ParsePaletteMethod(s string) PaletteMethod {
	if s == "kmeans" {
		return PaletteMethodKMeans
	}
	return PaletteMethodDominantColor
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest by
// relative luminance.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		ya, yb := Luminance(a), Luminance(b)
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

// Luminance returns the relative luminance of c.
func Luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ExtractPalette returns up to k representative colors of the visible
// pixels of img. The kmeans method falls back to dominantcolor when it
// yields nothing.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		slog.Warn("kmeans returned an empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		// Keep callers working on images with no usable pixels.
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}
	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: c.Weight})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// ExtractKMeansPalette clusters the visible pixels of img in RGB. Large
// images are subsampled.
func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	const maxSamples = 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}
	// Most populated clusters first.
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k colors, seeding with the
// heaviest and then preferring candidates far (in Lab) from those already
// chosen, scaled by their weight.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		maxW = max(maxW, w)
		items = append(items, item{col: c.Col.Clamped(), w: w})
	}
	k = min(k, len(items))

	selected := make([]bool, len(items))
	picked := make([]int, 0, k)
	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[seed].w {
			seed = i
		}
	}
	selected[seed] = true
	picked = append(picked, seed)

	for len(picked) < k {
		bestIdx, bestScore := -1, -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD := math.MaxFloat64
			for _, s := range picked {
				minD = min(minD, items[i].col.DistanceLab(items[s].col))
			}
			score := minD * (0.55 + 0.45*math.Sqrt(items[i].w/maxW))
			if score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		picked = append(picked, bestIdx)
	}

	out := make([]colorful.Color, 0, len(picked))
	for _, idx := range picked {
		out = append(out, items[idx].col)
	}
	return out
}
