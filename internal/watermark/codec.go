package watermark

// Flat key/value codec for template persistence. The key set is stable across
// versions: removing or renaming a key breaks previously saved templates, so
// new fields may only be added, and every field has a default for missing keys.

// ToMap flattens the config into primitive values suitable for JSON storage.
// Colors become 3-element int slices, offsets 2-element int slices.
func (c Config) ToMap() map[string]any {
	return map[string]any{
		"watermark_type": c.Kind.String(),
		"position":       c.Anchor.String(),
		"opacity":        c.Opacity,
		"rotation":       c.Rotation,
		"custom_x":       c.CustomX,
		"custom_y":       c.CustomY,

		"text":          c.Text,
		"font_family":   c.FontFamily,
		"font_size":     c.FontSize,
		"font_bold":     c.Bold,
		"font_italic":   c.Italic,
		"text_color":    []int{int(c.TextColor.R), int(c.TextColor.G), int(c.TextColor.B)},
		"stroke_width":  c.StrokeWidth,
		"stroke_color":  []int{int(c.StrokeColor.R), int(c.StrokeColor.G), int(c.StrokeColor.B)},
		"shadow_offset": []int{c.ShadowOffset.X, c.ShadowOffset.Y},
		"shadow_color":  []int{int(c.ShadowColor.R), int(c.ShadowColor.G), int(c.ShadowColor.B)},

		"watermark_image_path": c.ImagePath,
		"scale_factor":         c.ScaleFactor,

		"margin_x": c.MarginX,
		"margin_y": c.MarginY,
	}
}

// FromMap rebuilds a config from a flat mapping. Missing or malformed keys take
// the Default() value for that field, so templates written by older versions
// still load.
func FromMap(m map[string]any) Config {
	d := Default()
	c := Config{
		Kind:     ParseKind(asString(m["watermark_type"], d.Kind.String())),
		Anchor:   ParseAnchor(asString(m["position"], d.Anchor.String())),
		Opacity:  asInt(m["opacity"], d.Opacity),
		Rotation: asInt(m["rotation"], d.Rotation),
		CustomX:  asInt(m["custom_x"], d.CustomX),
		CustomY:  asInt(m["custom_y"], d.CustomY),

		Text:         asString(m["text"], d.Text),
		FontFamily:   asString(m["font_family"], d.FontFamily),
		FontSize:     asInt(m["font_size"], d.FontSize),
		Bold:         asBool(m["font_bold"], d.Bold),
		Italic:       asBool(m["font_italic"], d.Italic),
		TextColor:    asRGB(m["text_color"], d.TextColor),
		StrokeWidth:  asInt(m["stroke_width"], d.StrokeWidth),
		StrokeColor:  asRGB(m["stroke_color"], d.StrokeColor),
		ShadowOffset: asOffset(m["shadow_offset"], d.ShadowOffset),
		ShadowColor:  asRGB(m["shadow_color"], d.ShadowColor),

		ImagePath:   asString(m["watermark_image_path"], d.ImagePath),
		ScaleFactor: asFloat(m["scale_factor"], d.ScaleFactor),

		MarginX: asInt(m["margin_x"], d.MarginX),
		MarginY: asInt(m["margin_y"], d.MarginY),
	}
	return c
}

// JSON numbers decode as float64 and slices as []any, so every accessor
// accepts both native and decoded shapes.

func asString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func asBool(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func asInt(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

func asFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}

func asIntSlice(v any, size int) ([]int, bool) {
	switch s := v.(type) {
	case []int:
		if len(s) == size {
			return s, true
		}
	case []any:
		if len(s) != size {
			return nil, false
		}
		out := make([]int, size)
		for i, e := range s {
			out[i] = asInt(e, 0)
		}
		return out, true
	}
	return nil, false
}

func asRGB(v any, def RGB) RGB {
	s, ok := asIntSlice(v, 3)
	if !ok {
		return def
	}
	return RGB{uint8(clamp255(s[0])), uint8(clamp255(s[1])), uint8(clamp255(s[2]))}
}

func asOffset(v any, def Offset) Offset {
	s, ok := asIntSlice(v, 2)
	if !ok {
		return def
	}
	return Offset{X: s[0], Y: s[1]}
}

func clamp255(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	default:
		return n
	}
}
