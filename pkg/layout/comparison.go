package layout

import (
	"fmt"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/measure"
	"github.com/infogen/core/pkg/units"
)

func init() {
	Register(brief.Comparison, solveComparison)
}

// headerFractionOf shrinks the header row/column to this fraction of a
// regular cell's size, per §4.3's "header row/col smaller".
const headerFractionOf = 0.6

// solveComparison lays out a (M+1) cols x (N+1) rows grid: the Brief's
// layers are the comparison subjects (columns), its entities are the
// criteria rows; every cell in row i carries that entity's own label,
// repeated across the columns.
func solveComparison(b *brief.Brief, deps Deps) (*PositionedLayout, error) {
	layout := &PositionedLayout{
		WidthIn: units.SlideWidthIn, HeightIn: units.SlideHeightIn,
		Background: "#" + b.Theme.Background,
		Title:      b.Title, Subtitle: b.Subtitle,
	}
	layout.Elements = append(layout.Elements, buildTitle(b.Title, b.Subtitle, b.Theme.FontFamily, b.Theme.Text)...)

	rows := b.Entities
	cols := b.Layers
	if len(cols) == 0 {
		// No explicit subjects: use one column headed by the Brief's title,
		// degrading to a simple list of the entities.
		cols = []brief.Layer{{ID: "subject", Label: b.Title}}
	}
	m := len(cols)
	n := len(rows)
	if n == 0 {
		return layout, nil
	}

	contentX, contentY := contentOrigin()
	contentW := units.ContentWidth()
	contentH := units.ContentHeight()

	regularColW := contentW / (float64(m) + headerFractionOf)
	headerColW := regularColW * headerFractionOf
	regularRowH := contentH / (float64(n) + headerFractionOf)
	headerRowH := regularRowH * headerFractionOf

	// Header row (subject names), offset one header-column to the right.
	x := contentX + headerColW
	for j, c := range cols {
		mt := measure.Fit(c.Label, regularColW-2*units.TextPaddingIn, deps.FontFamily, 10, 16, true)
		layout.Elements = append(layout.Elements, PositionedElement{
			ID: fmt.Sprintf("header-col-%d", j), Kind: KindLabel,
			X: x, Y: contentY, W: regularColW, H: headerRowH,
			Fill: "#" + Lighten(b.Theme.Secondary, 0.15),
			Text: &mt, Opacity: 1, Z: 1,
		})
		x += regularColW
	}

	y := contentY + headerRowH
	for i, r := range rows {
		// Header column (criterion label).
		hmt := measure.Fit(r.Label, headerColW-2*units.TextPaddingIn, deps.FontFamily, 10, 16, true)
		layout.Elements = append(layout.Elements, PositionedElement{
			ID: fmt.Sprintf("header-row-%d", i), Kind: KindLabel,
			X: contentX, Y: y, W: headerColW, H: regularRowH,
			Fill: "#" + Lighten(b.Theme.Secondary, 0.15),
			Text: &hmt, Opacity: 1, Z: 1,
		})

		tint := (i%2 == 1)
		cx := contentX + headerColW
		for _, c := range cols {
			fill := b.Theme.Background
			if tint {
				fill = Lighten(b.Theme.Primary, 0.45)
			}
			cellMt := measure.Fit(r.Label, regularColW-2*units.TextPaddingIn, deps.FontFamily, 9, 14, false)
			layout.Elements = append(layout.Elements, PositionedElement{
				ID: fmt.Sprintf("cell-%s-%d", c.ID, i), Kind: KindBlock,
				X: cx, Y: y, W: regularColW, H: regularRowH,
				Fill: "#" + fill, Text: &cellMt, Opacity: 1, Z: 1,
			})
			cx += regularColW
		}
		y += regularRowH
	}

	return layout, nil
}
