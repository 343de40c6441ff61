package silhouette

import (
	"image/color"

	"gonum.org/v1/gonum/stat"
)

// SplitAlphaFloor is the alpha a pixel must exceed to take part in Split.
// It is stricter than the classifier's alpha > 0 rule.
const SplitAlphaFloor = 30

type Characteristic int

const (
	CharBrightness Characteristic = iota
	CharSaturation
	CharTemperature
)

var characteristics = [...]Characteristic{CharBrightness, CharSaturation, CharTemperature}

func (c Characteristic) String() string {
	switch c {
	case CharSaturation:
		return "saturation"
	case CharTemperature:
		return "temperature"
	default:
		return "brightness"
	}
}

// Labels returns the (above mean, at or below mean) label pair.
func (c Characteristic) Labels() (string, string) {
	switch c {
	case CharSaturation:
		return "saturated", "muted"
	case CharTemperature:
		return "warm", "cool"
	default:
		return "light", "dark"
	}
}

// Value measures c for one pixel.
func (c Characteristic) Value(r, g, b uint8) float64 {
	return float64(c.scaled(r, g, b)) / float64(c.scale())
}

// scaled is Value multiplied by scale, which is always an integer.
func (c Characteristic) scaled(r, g, b uint8) int64 {
	switch c {
	case CharSaturation:
		return int64(max(r, g, b)) - int64(min(r, g, b))
	case CharTemperature:
		return int64(r) - int64(b)
	default:
		return int64(r) + int64(g) + int64(b)
	}
}

func (c Characteristic) scale() int64 {
	if c == CharBrightness {
		return 3
	}
	return 1
}

// Sample holds the characteristics of one visible pixel.
type Sample struct {
	Brightness  float64
	Saturation  float64
	Temperature float64
	Alpha       uint8
}

// Stats aggregates one characteristic over all samples. Spread is the sum
// of squared deviations from Mean; only its relative size matters.
type Stats struct {
	Mean     float64
	Variance float64
	Spread   float64

	// total is the exact sum of the scaled values.
	total int64
}

// Analysis is the outcome of the statistics pass of Split.
type Analysis struct {
	Samples  int
	Stats    [3]Stats // indexed by Characteristic
	Dominant Characteristic
}

// Analyze computes per-characteristic statistics over pixels with alpha
// above SplitAlphaFloor. ok is false when there are no such pixels.
func Analyze(src *Bitmap) (a Analysis, ok bool) {
	if !src.Valid() {
		return Analysis{}, false
	}
	samples, totals := collectSamples(src)
	if len(samples) == 0 {
		return Analysis{}, false
	}
	cols := [3][]float64{
		make([]float64, len(samples)),
		make([]float64, len(samples)),
		make([]float64, len(samples)),
	}
	for i, s := range samples {
		cols[CharBrightness][i] = s.Brightness
		cols[CharSaturation][i] = s.Saturation
		cols[CharTemperature][i] = s.Temperature
	}
	a.Samples = len(samples)
	n := float64(len(samples))
	for _, c := range characteristics {
		_, variance := stat.PopMeanVariance(cols[c], nil)
		variance = max(variance, 0)
		// The mean comes from the exact integer total so that a uniform
		// image has every value equal to it.
		a.Stats[c] = Stats{
			Mean:     float64(totals[c]) / (float64(c.scale()) * n),
			Variance: variance,
			Spread:   variance * n,
			total:    totals[c],
		}
	}
	// Strict comparison keeps the earliest characteristic on ties.
	a.Dominant = CharBrightness
	for _, c := range characteristics[1:] {
		if a.Stats[c].Spread > a.Stats[a.Dominant].Spread {
			a.Dominant = c
		}
	}
	return a, true
}

// collectSamples returns the samples above SplitAlphaFloor and, per
// characteristic, the exact sum of their scaled values.
func collectSamples(src *Bitmap) ([]Sample, [3]int64) {
	var totals [3]int64
	samples := make([]Sample, 0, src.W*src.H)
	for i := 0; i < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		if a <= SplitAlphaFloor {
			continue
		}
		r, g, b := src.Pix[i], src.Pix[i+1], src.Pix[i+2]
		for _, c := range characteristics {
			totals[c] += c.scaled(r, g, b)
		}
		samples = append(samples, Sample{
			Brightness:  CharBrightness.Value(r, g, b),
			Saturation:  CharSaturation.Value(r, g, b),
			Temperature: CharTemperature.Value(r, g, b),
			Alpha:       a,
		})
	}
	return samples, totals
}

// SplitResult holds the two complementary masks of Split.
type SplitResult struct {
	Analysis
	LabelA, LabelB string
	A, B           *Bitmap
}

// Split partitions the visible pixels of src along its dominant
// characteristic: pixels above the mean go to A, the rest to B. Both masks
// are cleaned with minClusterSize and smoothed. ok is false, and nothing is
// produced, when src has no pixel above SplitAlphaFloor.
func Split(src *Bitmap, minClusterSize int) (*SplitResult, bool) {
	return SplitColor(src, minClusterSize, White)
}

// SplitColor is Split with an explicit foreground colour.
func SplitColor(src *Bitmap, minClusterSize int, fg color.NRGBA) (*SplitResult, bool) {
	a, ok := Analyze(src)
	if !ok {
		return nil, false
	}
	maskA, maskB := partition(src, a.Dominant, a.Stats[a.Dominant].total, a.Samples, fg)
	res := &SplitResult{Analysis: a}
	res.LabelA, res.LabelB = a.Dominant.Labels()
	res.A = Smooth(CleanColor(maskA, minClusterSize, fg))
	res.B = Smooth(CleanColor(maskB, minClusterSize, fg))
	return res, true
}

// partition returns the raw (uncleaned) masks for the > mean and <= mean
// sides of c, where the mean is total/n in scaled units. The comparison is
// done in integers.
func partition(src *Bitmap, c Characteristic, total int64, n int, fg color.NRGBA) (*Bitmap, *Bitmap) {
	maskA := NewBitmap(src.W, src.H, fg)
	maskB := NewBitmap(src.W, src.H, fg)
	for i := 0; i < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		if a <= SplitAlphaFloor {
			continue
		}
		if c.scaled(src.Pix[i], src.Pix[i+1], src.Pix[i+2])*int64(n) > total {
			maskA.Pix[i+3] = a
		} else {
			maskB.Pix[i+3] = a
		}
	}
	return maskA, maskB
}
