// Package renderer builds standalone watermark layers from a config.
package renderer

import (
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/lzzz0001/photo-homework/internal/fontkit"
	"github.com/lzzz0001/photo-homework/internal/watermark"
)

const (
	// DefaultItalicShear is the horizontal shear factor applied when a script
	// font has no italic cut and the slant is simulated geometrically.
	DefaultItalicShear = 0.3

	// basePadding keeps anti-aliased edges of stroke and shadow inside the
	// layer bounds.
	basePadding = 5

	// largeSizeThreshold is the point size from which glyph overshoot starts
	// to clip without extra padding.
	largeSizeThreshold = 64
)

// fontResolver resolves a logical font request to a usable face.
type fontResolver interface {
	Resolve(req fontkit.Request) fontkit.Handle
}

// Renderer produces watermark layers. It holds no per-render state; every
// Render call is independent and side-effect-free except for reading the
// watermark image file in the image branch.
type Renderer struct {
	fonts       fontResolver
	italicShear float64
}

// New creates a Renderer backed by the given font resolver.
func New(fonts fontResolver) *Renderer {
	return &Renderer{fonts: fonts, italicShear: DefaultItalicShear}
}

// SetItalicShear overrides the simulated-italic shear factor.
func (r *Renderer) SetItalicShear(factor float64) {
	if factor > 0 {
		r.italicShear = factor
	}
}

// Render builds the layer for the active variant of the config. It never
// returns an error: a malformed configuration yields an empty layer, which
// the compositor treats as a no-op.
func (r *Renderer) Render(cfg watermark.Config) Layer {
	if cfg.Kind == watermark.KindImage {
		return r.renderImage(cfg)
	}
	return r.renderText(cfg)
}

func (r *Renderer) renderText(cfg watermark.Config) Layer {
	if cfg.Text == "" {
		return Layer{}
	}

	script := fontkit.DetectScript(cfg.Text)
	handle := r.fonts.Resolve(fontkit.Request{
		Family: cfg.FontFamily,
		Size:   cfg.FontSize,
		Bold:   cfg.Bold,
		Italic: cfg.Italic,
		Script: script,
	})

	// Measure the tight box of the text as drawn with this face, then grow it
	// by the stroke on every side.
	mc := gg.NewContext(1, 1)
	mc.SetFontFace(handle.Face)
	tw, th := mc.MeasureString(cfg.Text)
	textW := int(math.Ceil(tw)) + 2*cfg.StrokeWidth
	textH := int(math.Ceil(th)) + 2*cfg.StrokeWidth

	padding := cfg.StrokeWidth
	if abs(cfg.ShadowOffset.X) > padding {
		padding = abs(cfg.ShadowOffset.X)
	}
	if abs(cfg.ShadowOffset.Y) > padding {
		padding = abs(cfg.ShadowOffset.Y)
	}
	padding += basePadding
	if cfg.FontSize >= largeSizeThreshold {
		// Large point sizes overshoot their metrics box.
		padding += cfg.FontSize / 5
	}

	dc := gg.NewContext(textW+2*padding, textH+2*padding)
	dc.SetFontFace(handle.Face)

	alpha := cfg.Alpha()
	ascent := handle.Face.Metrics().Ascent.Ceil()
	baseX := float64(padding + cfg.StrokeWidth)
	baseY := float64(padding + cfg.StrokeWidth + ascent)

	if cfg.ShadowOffset != (watermark.Offset{}) {
		dc.SetColor(cfg.ShadowColor.WithAlpha(alpha))
		dc.DrawString(cfg.Text, baseX+float64(cfg.ShadowOffset.X), baseY+float64(cfg.ShadowOffset.Y))
	}

	if cfg.StrokeWidth > 0 {
		// Outline by repeated offset draws, the usual raster approximation.
		dc.SetColor(cfg.StrokeColor.WithAlpha(alpha))
		for dx := -cfg.StrokeWidth; dx <= cfg.StrokeWidth; dx++ {
			for dy := -cfg.StrokeWidth; dy <= cfg.StrokeWidth; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				dc.DrawString(cfg.Text, baseX+float64(dx), baseY+float64(dy))
			}
		}
	}

	dc.SetColor(cfg.TextColor.WithAlpha(alpha))
	dc.DrawString(cfg.Text, baseX, baseY)

	img := imaging.Clone(dc.Image())
	if cfg.Rotation != 0 {
		img = imaging.Rotate(img, float64(cfg.Rotation), color.NRGBA{})
	}
	if script == fontkit.ScriptCJK && cfg.Italic && !handle.TrueItalic {
		img = shearHorizontal(img, r.italicShear)
	}
	return Layer{Image: img}
}

func (r *Renderer) renderImage(cfg watermark.Config) Layer {
	src, err := imaging.Open(cfg.ImagePath)
	if err != nil {
		// Missing or unreadable watermark file is a configuration error, not
		// a crash: the caller gets an empty layer and composites nothing.
		return Layer{}
	}

	img := imaging.Clone(src) // guarantees an alpha channel

	if cfg.ScaleFactor > 0 && cfg.ScaleFactor != 1.0 {
		w := int(float64(img.Bounds().Dx()) * cfg.ScaleFactor)
		h := int(float64(img.Bounds().Dy()) * cfg.ScaleFactor)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	if op := cfg.ClampedOpacity(); op < 100 {
		// Multiply the existing alpha rather than replacing it, so a
		// semi-transparent watermark image becomes proportionally fainter.
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = uint8(int(img.Pix[i]) * op / 100)
		}
	}

	if cfg.Rotation != 0 {
		img = imaging.Rotate(img, float64(cfg.Rotation), color.NRGBA{})
	}
	return Layer{Image: img}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
