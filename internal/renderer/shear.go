package renderer

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// shearHorizontal applies an affine horizontal shear, expanding the canvas so
// nothing clips. A positive factor leans the top of the image to the right,
// matching how true italic cuts slant.
func shearHorizontal(src *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 0 {
		return src
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	extra := int(math.Ceil(math.Abs(factor) * float64(h)))
	dst := image.NewNRGBA(image.Rect(0, 0, w+extra, h))

	// The matrix maps source points into destination space; rows further from
	// the bottom shift further along x.
	var m f64.Aff3
	if factor > 0 {
		m = f64.Aff3{1, -factor, factor * float64(h), 0, 1, 0}
	} else {
		m = f64.Aff3{1, -factor, 0, 0, 1, 0}
	}
	xdraw.ApproxBiLinear.Transform(dst, m, src, b, xdraw.Over, nil)
	return dst
}
