// Package units converts between the double-precision inch coordinate
// system used internally by the layout engine and the fixed-point units
// the external file formats require. All internal geometry stays in
// inches; conversion happens only at the renderer boundary, per §4.2.
package units

import "math"

// EMUPerInch is the number of English Metric Units in one inch. This is
// the fixed-point unit OOXML presentation formats use for every length.
const EMUPerInch = 914400

// EMUPerPoint is the number of EMU in one typographic point (1/72 inch).
const EMUPerPoint = 12700

// Canvas constants, exact per §6.
const (
	SlideWidthIn  = 13.333
	SlideHeightIn = 7.5

	MarginTopIn    = 0.8
	MarginBottomIn = 0.5
	MarginLeftIn   = 0.6
	MarginRightIn  = 0.6

	TitleBandHeightIn = 0.9

	GutterHorizontalIn = 0.25
	GutterVerticalIn   = 0.2

	BlockMinWidthIn  = 1.5
	BlockMinHeightIn = 0.7
	BlockMaxWidthIn  = 3.5
	BlockMaxHeightIn = 1.8

	CrossCutBandHeightIn = 0.6

	ConnectorEndpointInsetIn = 0.1

	// TextPaddingIn is the internal horizontal padding subtracted from a
	// block's max-width before text is fit inside it, per §4.1.
	TextPaddingIn = 0.15
)

// ContentWidth returns the usable width inside the margins.
func ContentWidth() float64 {
	return SlideWidthIn - MarginLeftIn - MarginRightIn
}

// ContentHeight returns the usable height inside the margins and title band.
func ContentHeight() float64 {
	return SlideHeightIn - MarginTopIn - MarginBottomIn - TitleBandHeightIn
}

// InchesToEMU converts an inch measurement to EMU, rounding to the nearest
// integer as the format requires.
func InchesToEMU(inches float64) int64 {
	return int64(math.Round(inches * EMUPerInch))
}

// PointsToEMU converts a point measurement (font sizes, stroke widths) to EMU.
func PointsToEMU(points float64) int64 {
	return int64(math.Round(points * EMUPerPoint))
}

// EMUToInches is the inverse of InchesToEMU, used by tests and by the
// editable-slide renderer's round-trip checks.
func EMUToInches(emu int64) float64 {
	return float64(emu) / EMUPerInch
}
