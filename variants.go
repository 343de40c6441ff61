package silhouette

import "fmt"

// VariantSpec pairs an output suffix with the predicate that selects its
// pixels.
type VariantSpec struct {
	Suffix    string
	Predicate Predicate
}

// Extractor-driven variant suffixes.
const (
	SuffixEdges  = "white_edges"
	SuffixLines  = "white_lines"
	SuffixThick  = "white_thick"
	SuffixCurved = "white_curved"
)

// Catalogue returns the classifier-driven variants in output order.
func Catalogue() []VariantSpec {
	return []VariantSpec{
		{"white", func(r, g, b uint8) bool { return Brightness(r, g, b) < 128 }},
		{"white_alt", func(r, g, b uint8) bool { return Brightness(r, g, b) >= 128 }},
		{"white_original", func(r, g, b uint8) bool { return true }},
		{"white_no_black", func(r, g, b uint8) bool { return Brightness(r, g, b) > 30 }},
		{"white_no_white", func(r, g, b uint8) bool { return Brightness(r, g, b) < 225 }},
		{"white_only", func(r, g, b uint8) bool { return Brightness(r, g, b) >= 225 }},
		{"white_pix", pixPredicate},
	}
}

// pixPredicate keeps dark and mid tones plus near-white highlights.
func pixPredicate(r, g, b uint8) bool {
	v := Brightness(r, g, b)
	return v <= 60 || (v > 60 && v < 130) || (v >= 200 && r > 200 && g > 200 && b > 200)
}

func layerSuffix(i int) string {
	return fmt.Sprintf("white_layer_%d", i)
}
