// Package compositor merges a rendered watermark layer onto a photo.
package compositor

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/lzzz0001/photo-homework/internal/position"
	"github.com/lzzz0001/photo-homework/internal/renderer"
	"github.com/lzzz0001/photo-homework/internal/watermark"
)

// layerRenderer builds a watermark layer for a config.
type layerRenderer interface {
	Render(cfg watermark.Config) renderer.Layer
}

// Compositor applies a watermark config to photos. It never mutates its
// input; Apply always returns a fresh image.
type Compositor struct {
	renderer layerRenderer
}

// New creates a Compositor over the given renderer.
func New(r layerRenderer) *Compositor {
	return &Compositor{renderer: r}
}

// Apply renders the configured watermark, resolves its placement, and
// alpha-composites it onto a copy of photo. The layer's own per-pixel alpha,
// already opacity-scaled by the renderer, is the blend mask. If the renderer
// yields no layer the unmodified copy is returned: a malformed watermark is a
// silent no-op, not a failure.
func (c *Compositor) Apply(photo image.Image, cfg watermark.Config) *image.NRGBA {
	base := imaging.Clone(photo)

	layer := c.renderer.Render(cfg)
	if layer.Empty() {
		return base
	}

	canvas := image.Pt(base.Bounds().Dx(), base.Bounds().Dy())
	at := position.ResolveConfig(canvas, layer.Size(), cfg)

	// Overlay crops the layer against the canvas, so off-canvas or negative
	// placements are fine.
	return imaging.Overlay(base, layer.Image, at, 1.0)
}
