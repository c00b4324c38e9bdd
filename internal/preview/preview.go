// Package preview produces display-sized copies of session images.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// DefaultMaxDim is the bounding box used by the side-by-side panes.
const DefaultMaxDim = 600

var placeholderGray = color.RGBA{R: 240, G: 240, B: 240, A: 255}

// FitSize returns width and height scaled by min(maxDim/w, maxDim/h),
// truncated, never below 1.
func FitSize(width, height, maxDim int) (int, int) {
	if width <= 0 || height <= 0 || maxDim <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(maxDim)/float64(width), float64(maxDim)/float64(height))
	w := int(float64(width) * scale)
	h := int(float64(height) * scale)
	return max(w, 1), max(h, 1)
}

// Fit converts mat to an RGBA image scaled into a maxDim x maxDim box. The
// Mat itself is left untouched.
func Fit(mat gocv.Mat, maxDim int) (image.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("cannot preview empty image")
	}
	if maxDim <= 0 {
		return nil, fmt.Errorf("invalid preview size %d", maxDim)
	}

	src, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert mat to image: %w", err)
	}

	return Scale(src, maxDim), nil
}

// Scale resizes src into a maxDim x maxDim box preserving aspect ratio.
func Scale(src image.Image, maxDim int) *image.RGBA {
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxDim)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Placeholder is shown before any image is loaded.
func Placeholder(maxDim int) *image.RGBA {
	w, h := FitSize(4, 3, maxDim)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderGray), image.Point{}, draw.Src)
	return img
}
