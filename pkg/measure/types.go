package measure

import "fmt"

// MeasuredText is the result of fitting a run of text into a bounded
// width. It is immutable once returned by Fit.
type MeasuredText struct {
	// Original is the text as supplied, before wrapping or truncation.
	Original string

	// Lines holds the text after wrapping, in reading order. Never more
	// than three entries (§3 invariant).
	Lines []string

	// FontSizePt is the font size, in points, the text was fit at.
	FontSizePt float64

	// HeightIn is the total block height the wrapped lines occupy, in
	// inches, including the 1.3x line-height factor (§4.1).
	HeightIn float64

	// Fits reports whether the text fit within the requested bounds at
	// some size in [min, max]. When false, Lines holds a truncated,
	// ellipsized single line and HeightIn is computed for that line at
	// the minimum size.
	Fits bool
}

// Validate checks the invariants §3 places on MeasuredText: positive
// height and at most three lines.
func (m *MeasuredText) Validate() error {
	if m.HeightIn <= 0 {
		return fmt.Errorf("measure: height must be > 0, got %v", m.HeightIn)
	}
	if len(m.Lines) > 3 {
		return fmt.Errorf("measure: at most 3 lines, got %d", len(m.Lines))
	}
	return nil
}

// FontFamily names a font in the fallback chain. The zero value is the
// empty string, which Measure treats as "use the chain's first entry".
type FontFamily string

// Default font-fallback-chain roles, per §4.1 and the font-fallback-chain
// configuration option in §6. Measure maps a family name that is not one
// of these roles to RoleBrand, and always walks DefaultFallbackChain.
const (
	RoleBrand     = "brand"
	RoleLatin     = "latin"
	RoleCJK       = "cjk"
	RoleArabic    = "arabic"
	RoleHebrew    = "hebrew"
	RoleUniversal = "universal"
)

// DefaultFallbackChain is the role order Measure consults when the
// requested family lacks coverage for a code point, per §4.1.
var DefaultFallbackChain = []string{
	RoleBrand, RoleLatin, RoleCJK, RoleArabic, RoleHebrew, RoleUniversal,
}
