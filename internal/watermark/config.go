package watermark

import "image/color"

// Kind selects which variant of the config is active.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// String returns the stable token used by the template codec.
func (k Kind) String() string {
	if k == KindImage {
		return "image"
	}
	return "text"
}

// ParseKind maps a codec token back to a Kind. Unknown tokens fall back to text.
func ParseKind(s string) Kind {
	if s == "image" {
		return KindImage
	}
	return KindText
}

// Anchor names a placement reference point on the target photo.
// The nine named anchors are the cartesian product of {left,center,right}
// and {top,center,bottom}; AnchorCustom uses the config's explicit coordinate.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
	AnchorCustom
)

var anchorNames = map[Anchor]string{
	AnchorTopLeft:      "top_left",
	AnchorTopCenter:    "top_center",
	AnchorTopRight:     "top_right",
	AnchorCenterLeft:   "center_left",
	AnchorCenter:       "center",
	AnchorCenterRight:  "center_right",
	AnchorBottomLeft:   "bottom_left",
	AnchorBottomCenter: "bottom_center",
	AnchorBottomRight:  "bottom_right",
	AnchorCustom:       "custom",
}

// String returns the stable snake_case token used by the template codec.
func (a Anchor) String() string {
	if s, ok := anchorNames[a]; ok {
		return s
	}
	return "bottom_right"
}

// ParseAnchor maps a codec token back to an Anchor.
// Unknown tokens fall back to the bottom-right default.
func ParseAnchor(s string) Anchor {
	for a, name := range anchorNames {
		if name == s {
			return a
		}
	}
	return AnchorBottomRight
}

// RGB is a plain color triple; alpha is always derived from opacity at render time.
type RGB struct {
	R, G, B uint8
}

// WithAlpha returns the color with the given alpha channel applied.
func (c RGB) WithAlpha(a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Offset is a pixel displacement pair, used for shadow offsets.
type Offset struct {
	X, Y int
}

// Config describes a single watermark. It is a value object: callers populate
// it fully and pass it by value, render calls never mutate it. Exactly one of
// the text or image field sets is active, selected by Kind; the inactive set
// is ignored, not validated.
type Config struct {
	Kind     Kind
	Anchor   Anchor
	CustomX  int // used when Anchor == AnchorCustom
	CustomY  int
	Opacity  int // 0-100, clamped at render time
	Rotation int // degrees counter-clockwise, 0 = no transform
	MarginX  int // named anchors only
	MarginY  int

	// Text variant.
	Text         string
	FontFamily   string
	FontSize     int
	Bold         bool
	Italic       bool
	TextColor    RGB
	StrokeWidth  int
	StrokeColor  RGB
	ShadowOffset Offset
	ShadowColor  RGB

	// Image variant.
	ImagePath   string
	ScaleFactor float64
}

// Default returns a config with the application's baseline settings:
// white semi-transparent text in the bottom-right corner.
func Default() Config {
	return Config{
		Kind:         KindText,
		Anchor:       AnchorBottomRight,
		Opacity:      50,
		MarginX:      20,
		MarginY:      20,
		Text:         "Watermark",
		FontFamily:   "Arial",
		FontSize:     36,
		TextColor:    RGB{255, 255, 255},
		StrokeWidth:  2,
		StrokeColor:  RGB{0, 0, 0},
		ShadowOffset: Offset{2, 2},
		ShadowColor:  RGB{0, 0, 0},
		ScaleFactor:  1.0,
	}
}

// ClampedOpacity returns the opacity limited to [0, 100].
func (c Config) ClampedOpacity() int {
	switch {
	case c.Opacity < 0:
		return 0
	case c.Opacity > 100:
		return 100
	default:
		return c.Opacity
	}
}

// Alpha converts the clamped opacity into an 8-bit alpha value.
func (c Config) Alpha() uint8 {
	return uint8(255 * c.ClampedOpacity() / 100)
}
