package layout

import (
	"math"

	"github.com/infogen/core/pkg/measure"
	"github.com/infogen/core/pkg/units"
)

// minFitSizePt and maxFitSizePt bound the font-size scan every archetype's
// block labels use, per §4.3's shared pre-step.
const (
	minFitSizePt = 10.0
	maxFitSizePt = 24.0
)

// BlockSize is the shared pre-step result for one entity's block: its
// estimated width and height plus the fitted label text.
type BlockSize struct {
	WidthIn, HeightIn float64
	Text              measure.MeasuredText
}

// EstimateBlockSize implements the common pre-step in §4.3: an initial
// width is derived from the content width divided across n columns, the
// label is fit inside it (bold, 10-24pt), and the resulting height is the
// fitted text height plus padding, clamped to the block min/max.
func EstimateBlockSize(label string, n int, contentWidthIn, paddingIn float64, deps Deps) BlockSize {
	if n < 1 {
		n = 1
	}
	width := (contentWidthIn - float64(n-1)*units.GutterHorizontalIn) / float64(n)
	width = clamp(width, units.BlockMinWidthIn, units.BlockMaxWidthIn)

	mt := measure.Fit(label, width, deps.FontFamily, minFitSizePt, maxFitSizePt, true)

	height := math.Max(units.BlockMinHeightIn, mt.HeightIn+2*paddingIn)
	height = math.Min(height, units.BlockMaxHeightIn)

	return BlockSize{WidthIn: width, HeightIn: height, Text: mt}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// contentOrigin returns the top-left corner of the content area, inside
// the margins and below the title band.
func contentOrigin() (x, y float64) {
	return units.MarginLeftIn, units.MarginTopIn + units.TitleBandHeightIn
}

// buildTitle returns the title (and, if non-empty, subtitle) elements
// every solver places identically in the title band above the content area.
func buildTitle(title, subtitle, fontFamily, textColor string) []PositionedElement {
	var out []PositionedElement
	if title != "" {
		mt := measure.Fit(title, units.ContentWidth(), fontFamily, 20, 32, true)
		out = append(out, PositionedElement{
			ID:   "title",
			Kind: KindTitle,
			X:    units.MarginLeftIn, Y: units.MarginTopIn,
			W: units.ContentWidth(), H: units.TitleBandHeightIn * 0.6,
			Fill: "", Text: &mt, Opacity: 1, Z: 10,
		})
	}
	if subtitle != "" {
		mt := measure.Fit(subtitle, units.ContentWidth(), fontFamily, 12, 16, false)
		out = append(out, PositionedElement{
			ID:   "subtitle",
			Kind: KindSubtitle,
			X:    units.MarginLeftIn, Y: units.MarginTopIn + units.TitleBandHeightIn*0.6,
			W: units.ContentWidth(), H: units.TitleBandHeightIn * 0.4,
			Fill: "", Text: &mt, Opacity: 1, Z: 10,
		})
	}
	return out
}
