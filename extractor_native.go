//go:build !gocv

package silhouette

import "image/color"

func defaultExtractor(fg color.NRGBA) Extractor {
	return NativeExtractor{Foreground: fg}
}
