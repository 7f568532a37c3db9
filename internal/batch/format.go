package batch

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a batch output encoding.
type Format int

const (
	JPEG Format = iota
	PNG
)

// ParseFormat maps a config token to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "JPEG", "JPG":
		return JPEG, nil
	case "PNG":
		return PNG, nil
	default:
		return JPEG, fmt.Errorf("unsupported output format %q", s)
	}
}

// Extension returns the output filename extension for the format.
func (f Format) Extension() string {
	if f == PNG {
		return ".png"
	}
	return ".jpg"
}

// Opaque reports whether the format cannot represent transparency, in which
// case any alpha channel is flattened before encoding.
func (f Format) Opaque() bool {
	return f == JPEG
}

func (f Format) String() string {
	if f == PNG {
		return "PNG"
	}
	return "JPEG"
}

// supportedInputExts are the photo formats the exporter will read.
var supportedInputExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// SupportedInput reports whether path has a readable image extension.
func SupportedInput(path string) bool {
	return supportedInputExts[strings.ToLower(filepath.Ext(path))]
}

// OutputName builds the deterministic output filename for an input path:
// prefix + stem + suffix + format extension.
func OutputName(inputPath, prefix, suffix string, f Format) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return prefix + stem + suffix + f.Extension()
}
