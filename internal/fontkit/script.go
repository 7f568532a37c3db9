package fontkit

import "unicode"

// Script is the writing system governing font fallback. It is detected from
// the content itself rather than requested by the caller, because the choice
// of fallback families depends on which glyphs must exist.
type Script int

const (
	ScriptLatin Script = iota
	ScriptCJK
)

// DetectScript inspects the codepoints of s and reports the script that
// drives font selection. A single CJK rune is enough to switch the whole
// string to CJK fallback, since Latin families lack those glyphs entirely
// while CJK families carry Latin glyphs too.
func DetectScript(s string) Script {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			return ScriptCJK
		}
		// Fullwidth and halfwidth forms ship with CJK typefaces.
		if r >= 0xFF00 && r <= 0xFFEF {
			return ScriptCJK
		}
	}
	return ScriptLatin
}
