package layout

import (
	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/units"
)

func init() {
	Register(brief.TechStack, solveTechStack)
}

// solveTechStack stacks entities in n rows x 1 col, full width minus
// inset, bottom row = infrastructure and top row = application, per
// §4.3's tech-stack table. Entity order in the Brief is bottom-up: the
// first entity is the lowest layer.
func solveTechStack(b *brief.Brief, deps Deps) (*PositionedLayout, error) {
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

	rowH := (contentH - float64(n-1)*units.GutterVerticalIn) / float64(n)
	rowH = clamp(rowH, units.BlockMinHeightIn, units.BlockMaxHeightIn)

	inset := units.TextPaddingIn
	rowW := contentW - 2*inset

	// Row i in the Brief (0 = bottom / infrastructure) is drawn at
	// y position counted up from the bottom of the content area.
	for i, e := range entities {
		rowFromBottom := i
		y := contentY + contentH - float64(rowFromBottom+1)*rowH - float64(rowFromBottom)*units.GutterVerticalIn
		size := EstimateBlockSize(e.Label, 1, rowW, b.Theme.PaddingIn, deps)
		h := size.HeightIn
		if h > rowH {
			h = rowH
		}
		ey := y + (rowH-h)/2
		fill := "#" + FillForEmphasis(e.Emphasis, b.Theme)
		mt := size.Text
		layout.Elements = append(layout.Elements, PositionedElement{
			ID: e.ID, Kind: KindBlock,
			X: contentX + inset, Y: ey, W: rowW, H: h,
			Fill: fill, CornerRadiusIn: b.Theme.CornerRadiusIn,
			Text: &mt, Opacity: 1, Z: 1,
		})
	}

	return layout, nil
}
