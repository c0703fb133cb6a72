package measure

// widthRatio gives the average glyph advance width as a fraction of the em
// square for a given fallback-chain role. These are static approximations
// (no real glyph outlines are consulted) calibrated so CJK full-width
// glyphs measure roughly twice as wide as Latin proportional glyphs,
// consistent with the additional per-string CJK multiplier applied by
// Measure.
var widthRatio = map[string]float64{
	RoleBrand:     0.52,
	RoleLatin:     0.52,
	RoleCJK:       1.0,
	RoleArabic:    0.58,
	RoleHebrew:    0.56,
	RoleUniversal: 0.6,
}

const boldWidthBoost = 1.08

// lineHeightRatio converts a point size into a single line's raw text
// height in inches (ascent + descent, before Fit's 1.3x line-height
// factor is applied across wrapped lines).
const lineHeightRatio = 1.15

// coverage reports whether the family bound to role can render r directly,
// without falling back. Brand and Latin families cover Latin script plus
// shared punctuation/digits/space; the script-specific families cover
// their own script plus that same shared set; universal covers everything.
func coverage(role string, r rune) bool {
	if role == RoleUniversal {
		return true
	}
	shared := roleForRune(r) == RoleLatin
	if shared {
		return true
	}
	return roleForRune(r) == role
}

// resolveRole walks the fallback chain starting at requested, returning
// the first role whose family covers r. Falls through to RoleUniversal,
// which always covers.
func resolveRole(requested string, r rune) string {
	if _, known := widthRatio[requested]; !known {
		requested = RoleBrand
	}
	if coverage(requested, r) {
		return requested
	}
	for _, role := range DefaultFallbackChain {
		if role == requested {
			continue
		}
		if coverage(role, r) {
			return role
		}
	}
	return RoleUniversal
}

// Measure computes the width and height, in inches, that text occupies
// set in family at fontSizePt, optionally bold. It never errors: code
// points the requested family can't render are measured using whichever
// fallback-chain family does cover them (§4.1).
func Measure(text string, family string, fontSizePt float64, bold bool) (widthIn, heightIn float64) {
	if text == "" || fontSizePt <= 0 {
		return 0, fontSizePt * lineHeightRatio / 72
	}

	emIn := fontSizePt / 72

	var totalEm float64
	for _, r := range text {
		role := resolveRole(family, r)
		ratio := widthRatio[role]
		totalEm += ratio
	}

	widthIn = totalEm * emIn
	if bold {
		widthIn *= boldWidthBoost
	}

	// The CJK-heavy multiplier from §4.1: a string with a high proportion
	// of CJK/Hiragana/Katakana/Hangul code points lays out wider still,
	// reflecting the larger inter-character spacing typical of those
	// scripts when mixed with Latin punctuation.
	widthIn *= 1 + 0.8*cjkRatio(text)

	heightIn = fontSizePt * lineHeightRatio / 72
	return widthIn, heightIn
}
