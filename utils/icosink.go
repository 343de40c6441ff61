package utils

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"slices"

	ico "github.com/sergeymakinen/go-ico"
	xdraw "golang.org/x/image/draw"
)

// DefaultIconSizes are the square sizes written into each icon file.
var DefaultIconSizes = []int{16, 24, 32, 48, 64, 128, 256}

// maxIconSize is the largest edge the ICO format can store.
const maxIconSize = 256

// ICOSink writes images as multi-resolution .ico files into Dir.
type ICOSink struct {
	Dir   string
	Sizes []int
}

func NewICOSink(dir string) *ICOSink {
	return &ICOSink{Dir: dir, Sizes: DefaultIconSizes}
}

// Save writes img to Dir/name.ico. Every configured size that does not
// exceed the larger edge of img is included; an image smaller than every
// size is stored at its own size.
func (s *ICOSink) Save(name string, img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("save %s: empty image", name)
	}
	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, IconSet(img, s.Sizes)); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return writeFileAtomic(filepath.Join(s.Dir, name+".ico"), buf.Bytes())
}

// IconSet scales img into one square image per usable size, smallest first.
func IconSet(img image.Image, sizes []int) []image.Image {
	b := img.Bounds()
	edge := max(b.Dx(), b.Dy())
	var usable []int
	for _, sz := range sizes {
		if sz > 0 && sz <= edge && sz <= maxIconSize && !slices.Contains(usable, sz) {
			usable = append(usable, sz)
		}
	}
	if len(usable) == 0 {
		usable = append(usable, min(edge, maxIconSize))
	}
	slices.Sort(usable)
	out := make([]image.Image, 0, len(usable))
	for _, sz := range usable {
		out = append(out, ScaleSquare(img, sz))
	}
	return out
}

// ScaleSquare fits src into a size×size transparent canvas, keeping its
// aspect ratio and centring it.
func ScaleSquare(src image.Image, size int) *image.NRGBA {
	sb := src.Bounds()
	scale := math.Min(float64(size)/float64(sb.Dx()), float64(size)/float64(sb.Dy()))
	newW := max(1, int(math.Round(float64(sb.Dx())*scale)))
	newH := max(1, int(math.Round(float64(sb.Dy())*scale)))

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	offX := (size - newW) / 2
	offY := (size - newH) / 2
	dr := image.Rect(offX, offY, offX+newW, offY+newH)
	if dr.Size() == sb.Size() {
		xdraw.Copy(dst, dr.Min, src, sb, xdraw.Src, nil)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dr, src, sb, xdraw.Src, nil)
	return dst
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
