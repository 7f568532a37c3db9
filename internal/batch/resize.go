package batch

import (
	"image"

	"github.com/disintegration/imaging"
)

// ResizeOptions optionally scales each source photo before watermarking.
// ScalePercent wins over explicit dimensions; a single dimension preserves
// the aspect ratio.
type ResizeOptions struct {
	Width        int
	Height       int
	ScalePercent float64
}

func resize(img image.Image, o ResizeOptions) image.Image {
	if o.ScalePercent > 0 {
		w := int(float64(img.Bounds().Dx()) * o.ScalePercent / 100)
		h := int(float64(img.Bounds().Dy()) * o.ScalePercent / 100)
		if w < 1 || h < 1 {
			return img
		}
		return imaging.Resize(img, w, h, imaging.Lanczos)
	}
	if o.Width <= 0 && o.Height <= 0 {
		return img
	}
	// imaging keeps the aspect ratio when one dimension is zero.
	w, h := o.Width, o.Height
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
