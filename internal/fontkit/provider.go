package fontkit

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Provider supplies raw font data for a logical font name. Implementations
// decide where the data comes from: a directory on disk, embedded assets, or
// a platform font enumeration API.
type Provider interface {
	Lookup(name string) ([]byte, error)
}

// DirProvider probes a list of directories for font files matching a logical
// name, trying the common TrueType and OpenType extensions.
type DirProvider struct {
	dirs []string
}

// NewDirProvider creates a provider over the given font directories.
// Directories that do not exist are simply skipped at lookup time.
func NewDirProvider(dirs ...string) *DirProvider {
	return &DirProvider{dirs: dirs}
}

// SystemDirs returns the conventional font locations for the current set of
// supported platforms. Probing is harmless where a directory is absent.
func SystemDirs() []string {
	return []string{
		"C:/Windows/Fonts",
		"/usr/share/fonts/truetype",
		"/usr/share/fonts/TTF",
		"/System/Library/Fonts",
		"/System/Library/Fonts/Supplemental",
		"/Library/Fonts",
	}
}

var fontExtensions = []string{".ttf", ".otf"}

// Lookup searches each directory for name with a known font extension.
func (p *DirProvider) Lookup(name string) ([]byte, error) {
	for _, dir := range p.dirs {
		for _, ext := range fontExtensions {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("font %q not found in %d dirs", name, len(p.dirs))
}

// Builtin serves the embedded Go font family. It guarantees the resolver
// always has parseable font data even on a machine with no font store at all.
type Builtin struct{}

var builtinFonts = map[string][]byte{
	"goregular":    goregular.TTF,
	"gobold":       gobold.TTF,
	"goitalic":     goitalic.TTF,
	"gobolditalic": gobolditalic.TTF,
}

// Lookup returns the embedded TTF data for one of the Go font cuts.
func (Builtin) Lookup(name string) ([]byte, error) {
	data, ok := builtinFonts[name]
	if !ok {
		return nil, fmt.Errorf("no builtin font %q", name)
	}
	return data, nil
}

// builtinName maps a style to the matching embedded Go font cut.
func builtinName(bold, italic bool) string {
	switch {
	case bold && italic:
		return "gobolditalic"
	case bold:
		return "gobold"
	case italic:
		return "goitalic"
	default:
		return "goregular"
	}
}
