package renderer

import "image"

// Layer is an ephemeral watermark pixel buffer with per-pixel alpha, owned by
// a single render call and discarded after compositing. An empty layer means
// the watermark could not be produced (e.g. missing watermark image file) and
// compositing degrades to a no-op.
type Layer struct {
	Image *image.NRGBA
}

// Empty reports whether the layer holds no pixels.
func (l Layer) Empty() bool {
	return l.Image == nil
}

// Size returns the layer dimensions, or the zero point for an empty layer.
func (l Layer) Size() image.Point {
	if l.Image == nil {
		return image.Point{}
	}
	return image.Pt(l.Image.Bounds().Dx(), l.Image.Bounds().Dy())
}
