// Package position computes watermark placement on a target canvas.
package position

import (
	"image"

	"github.com/lzzz0001/photo-homework/internal/watermark"
)

// Resolve returns the top-left point at which a layer of the given size is
// placed on a canvas of the given size. It is a pure function.
//
// Named anchors use, per axis: margin on the near edge, (canvas-layer)/2
// truncating for center, canvas-layer-margin on the far edge. No clamping is
// applied anywhere: a custom coordinate may be off-canvas, and a layer larger
// than the canvas yields a negative offset. Both are valid; the compositing
// primitive crops at paste time.
func Resolve(canvas, layer image.Point, anchor watermark.Anchor, marginX, marginY int) image.Point {
	if anchor == watermark.AnchorCustom {
		// Custom coordinates are carried separately in the config; callers
		// use ResolveConfig. Resolve with AnchorCustom falls back to origin.
		return image.Point{}
	}

	left := marginX
	hcenter := (canvas.X - layer.X) / 2
	right := canvas.X - layer.X - marginX

	top := marginY
	vcenter := (canvas.Y - layer.Y) / 2
	bottom := canvas.Y - layer.Y - marginY

	switch anchor {
	case watermark.AnchorTopLeft:
		return image.Pt(left, top)
	case watermark.AnchorTopCenter:
		return image.Pt(hcenter, top)
	case watermark.AnchorTopRight:
		return image.Pt(right, top)
	case watermark.AnchorCenterLeft:
		return image.Pt(left, vcenter)
	case watermark.AnchorCenter:
		return image.Pt(hcenter, vcenter)
	case watermark.AnchorCenterRight:
		return image.Pt(right, vcenter)
	case watermark.AnchorBottomLeft:
		return image.Pt(left, bottom)
	case watermark.AnchorBottomCenter:
		return image.Pt(hcenter, bottom)
	case watermark.AnchorBottomRight:
		return image.Pt(right, bottom)
	default:
		return image.Pt(left, top)
	}
}

// ResolveConfig resolves placement for a config, honoring custom coordinates.
func ResolveConfig(canvas, layer image.Point, cfg watermark.Config) image.Point {
	if cfg.Anchor == watermark.AnchorCustom {
		return image.Pt(cfg.CustomX, cfg.CustomY)
	}
	return Resolve(canvas, layer, cfg.Anchor, cfg.MarginX, cfg.MarginY)
}
