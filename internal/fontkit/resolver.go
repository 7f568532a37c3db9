package fontkit

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Request describes a logical font lookup.
type Request struct {
	Family string
	Size   int
	Bold   bool
	Italic bool
	Script Script
}

// Handle is a resolved, usable font. TrueItalic reports whether the face is a
// genuine italic cut; when the caller asked for italic and TrueItalic is
// false, any slant has to be produced geometrically by the renderer.
type Handle struct {
	Face       font.Face
	Name       string
	TrueItalic bool
}

// DefaultCJKFamilies is the fallback family order tried for CJK content,
// independent of the requested family. Most Latin families carry no CJK
// glyphs, so the requested family is not even a candidate here.
var DefaultCJKFamilies = []string{
	"msyh",
	"simhei",
	"simsun",
	"NotoSansCJK-Regular",
	"wqy-microhei",
}

// familyAliases maps normalized family names to their on-disk spellings.
var familyAliases = map[string][]string{
	"times new roman": {"times"},
	"microsoft yahei": {"msyh"},
	"courier new":     {"cour"},
	"dejavu sans":     {"DejaVuSans"},
}

// genericFamilies are probed when neither the requested family nor its
// aliases exist, before falling back to the embedded Go fonts.
var genericFamilies = []string{"arial", "DejaVuSans", "helvetica"}

// Resolver maps font requests to loadable faces through an ordered provider
// chain. Resolve never fails: the chain ends in embedded font data and,
// should even that not parse at the requested size, a built-in bitmap face.
type Resolver struct {
	providers   []Provider
	cjkFamilies []string
	parsed      map[string]*opentype.Font
}

// NewResolver creates a resolver over the given providers, consulted in
// order. The embedded Builtin provider is always appended last.
func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{
		providers:   append(providers, Builtin{}),
		cjkFamilies: DefaultCJKFamilies,
		parsed:      make(map[string]*opentype.Font),
	}
}

// SetCJKFamilies overrides the CJK fallback family order.
func (r *Resolver) SetCJKFamilies(families []string) {
	if len(families) > 0 {
		r.cjkFamilies = families
	}
}

// candidate is one name to probe, tagged with whether it is an italic cut.
type candidate struct {
	name   string
	italic bool
}

// Resolve walks the candidate list for the request and returns the first
// font that loads. The result is always usable.
func (r *Resolver) Resolve(req Request) Handle {
	for _, c := range r.candidates(req) {
		if face := r.load(c.name, req.Size); face != nil {
			return Handle{Face: face, Name: c.name, TrueItalic: c.italic}
		}
	}
	// Every provider failed to produce parseable data; the bitmap face keeps
	// the never-fails contract.
	return Handle{Face: basicfont.Face7x13, Name: "basicfont"}
}

// candidates produces the ordered probe list for a request.
//
// CJK content gets a dedicated family list first. CJK typefaces generally
// ship no italic cut, so italic is dropped from their style suffix and those
// candidates are never marked TrueItalic; the renderer shears instead.
func (r *Resolver) candidates(req Request) []candidate {
	var out []candidate

	if req.Script == ScriptCJK {
		for _, fam := range r.cjkFamilies {
			for _, suffix := range styleSuffixes(req.Bold, false) {
				out = append(out, candidate{name: fam + suffix})
			}
			out = append(out, candidate{name: fam})
		}
	}

	family := strings.ToLower(strings.TrimSpace(req.Family))
	spellings := []string{strings.ReplaceAll(family, " ", "")}
	spellings = append(spellings, familyAliases[family]...)

	styled := req.Bold || req.Italic
	for _, base := range spellings {
		if base == "" {
			continue
		}
		if styled {
			for _, suffix := range styleSuffixes(req.Bold, req.Italic) {
				out = append(out, candidate{name: base + suffix, italic: req.Italic})
			}
		}
		out = append(out, candidate{name: base})
	}

	for _, g := range genericFamilies {
		out = append(out, candidate{name: g})
	}

	// Embedded last resort. For CJK the regular cut is forced: the Go italic
	// cut is a true italic, but it has no CJK glyphs anyway and the slant
	// policy for that script is geometric shear downstream.
	if req.Script == ScriptCJK {
		out = append(out, candidate{name: builtinName(req.Bold, false)})
	} else {
		out = append(out, candidate{name: builtinName(req.Bold, req.Italic), italic: req.Italic})
	}
	return out
}

// styleSuffixes returns the filename suffixes tried for a style, most
// specific first (Windows font files use both "bd" and "b" conventions).
func styleSuffixes(bold, italic bool) []string {
	switch {
	case bold && italic:
		return []string{"bi", "z"}
	case bold:
		return []string{"bd", "b"}
	case italic:
		return []string{"i"}
	default:
		return nil
	}
}

// load fetches and parses a font by name, then builds a face at the size.
// Parsed fonts are cached; face construction is per call.
func (r *Resolver) load(name string, size int) font.Face {
	fnt, ok := r.parsed[name]
	if !ok {
		data := r.lookup(name)
		if data == nil {
			return nil
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			return nil
		}
		fnt = parsed
		r.parsed[name] = fnt
	}

	if size <= 0 {
		size = 12
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	return face
}

func (r *Resolver) lookup(name string) []byte {
	for _, p := range r.providers {
		if data, err := p.Lookup(name); err == nil && len(data) > 0 {
			return data
		}
	}
	return nil
}
