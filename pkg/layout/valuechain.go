package layout

import (
	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/units"
)

func init() {
	Register(brief.ValueChain, solveValueChain)
}

// chevronOverlapFraction is the fraction of a block's width its chevron
// tip overlaps the next block by, per §4.3.
const chevronOverlapFraction = 0.1

// solveValueChain places entities left-to-right in a single row as a
// chevron chain: each block after the first overlaps the previous one's
// tip by chevronOverlapFraction*blockWidth, rendered via z-order so later
// chevrons sit on top and cover the seam.
func solveValueChain(b *brief.Brief, deps Deps) (*PositionedLayout, error) {
	layout := &PositionedLayout{
		WidthIn: units.SlideWidthIn, HeightIn: units.SlideHeightIn,
		Background: "#" + b.Theme.Background,
		Title:      b.Title, Subtitle: b.Subtitle,
	}
	layout.Elements = append(layout.Elements, buildTitle(b.Title, b.Subtitle, b.Theme.FontFamily, b.Theme.Text)...)

	entities := b.Entities
	n := len(entities)
	if n == 0 {
		return layout, nil
	}

	contentX, contentY := contentOrigin()
	contentW := units.ContentWidth()
	contentH := units.ContentHeight()

	// Effective per-block width accounting for the chevron overlaps: the
	// chain's total span is n*w - (n-1)*overlap*w = contentW.
	w := contentW / (float64(n) - float64(n-1)*chevronOverlapFraction)
	overlap := w * chevronOverlapFraction

	rowH := contentH
	if rowH > units.BlockMaxHeightIn {
		rowH = units.BlockMaxHeightIn
	}
	y := contentY + (contentH-rowH)/2

	x := contentX
	for i, e := range entities {
		size := EstimateBlockSize(e.Label, n, contentW, b.Theme.PaddingIn, deps)
		h := rowH
		if size.HeightIn < h {
			h = size.HeightIn
		}
		ey := y + (rowH-h)/2
		mt := size.Text
		layout.Elements = append(layout.Elements, PositionedElement{
			ID: e.ID, Kind: KindChevron,
			X: x, Y: ey, W: w, H: h,
			Fill: "#" + FillForEmphasis(e.Emphasis, b.Theme),
			CornerRadiusIn: b.Theme.CornerRadiusIn,
			Text:           &mt, Opacity: 1, Z: i + 1,
		})
		x += w - overlap
	}

	return layout, nil
}
