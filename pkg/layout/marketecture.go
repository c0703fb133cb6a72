package layout

import (
	"fmt"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/measure"
	"github.com/infogen/core/pkg/units"
)

func init() {
	Register(brief.Marketecture, solveMarketecture)
}

// solveMarketecture places business-unit entities in one centered main
// row and renders each cross-cutting layer as a full-width band behind
// them, per §4.3's marketecture table.
func solveMarketecture(b *brief.Brief, deps Deps) (*PositionedLayout, error) {
	layout := &PositionedLayout{
		WidthIn: units.SlideWidthIn, HeightIn: units.SlideHeightIn,
		Background: "#" + b.Theme.Background,
		Title:      b.Title, Subtitle: b.Subtitle,
	}
	layout.Elements = append(layout.Elements, buildTitle(b.Title, b.Subtitle, b.Theme.FontFamily, b.Theme.Text)...)

	crossCut, crossCutMembers := splitCrossCutLayers(b)
	var topLayer, bottomLayer *brief.Layer
	if len(crossCut) > 0 {
		topLayer = &crossCut[0]
	}
	if len(crossCut) > 1 {
		bottomLayer = &crossCut[1]
	}

	contentX, contentY := contentOrigin()
	contentW := units.ContentWidth()
	contentH := units.ContentHeight()

	mainY := contentY
	mainH := contentH
	if topLayer != nil {
		mainY += units.CrossCutBandHeightIn
		mainH -= units.CrossCutBandHeightIn
	}
	if bottomLayer != nil {
		mainH -= units.CrossCutBandHeightIn
	}

	mainEntities := mainEntitiesExcluding(b, crossCutMembers)
	n := len(mainEntities)
	if n == 0 {
		n = 1
	}

	x := contentX
	for _, e := range mainEntities {
		size := EstimateBlockSize(e.Label, n, contentW, b.Theme.PaddingIn, deps)
		h := size.HeightIn
		if h > mainH {
			h = mainH
		}
		y := mainY + (mainH-h)/2
		fill := "#" + FillForEmphasis(e.Emphasis, b.Theme)
		mt := size.Text
		layout.Elements = append(layout.Elements, PositionedElement{
			ID: e.ID, Kind: KindBlock,
			X: x, Y: y, W: size.WidthIn, H: h,
			Fill: fill, CornerRadiusIn: b.Theme.CornerRadiusIn,
			Text: &mt, Opacity: 1, Z: 1,
		})
		x += size.WidthIn + units.GutterHorizontalIn
	}

	if topLayer != nil {
		addCrossCutBand(layout, *topLayer, b, contentX, contentY, contentW, deps)
	}
	if bottomLayer != nil {
		addCrossCutBand(layout, *bottomLayer, b, contentX, contentY+contentH-units.CrossCutBandHeightIn, contentW, deps)
	}

	return layout, nil
}

// splitCrossCutLayers returns the Brief's cross-cutting layers and the set
// of entity ids they cover (those entities are rendered via the band
// label, not as a separate block in the main row).
func splitCrossCutLayers(b *brief.Brief) ([]brief.Layer, map[string]bool) {
	members := make(map[string]bool)
	var layers []brief.Layer
	for _, l := range b.Layers {
		if l.Position == brief.LayerCrossCutting {
			layers = append(layers, l)
			for _, m := range l.Members {
				members[m] = true
			}
		}
	}
	return layers, members
}

func mainEntitiesExcluding(b *brief.Brief, excluded map[string]bool) []brief.Entity {
	var out []brief.Entity
	for _, e := range b.Entities {
		if !excluded[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// addCrossCutBand appends a full-width band behind the main row (z=-1)
// labeled with the layer's name, per §4.3.
func addCrossCutBand(layout *PositionedLayout, l brief.Layer, b *brief.Brief, x, y, w float64, deps Deps) {
	mt := measure.Fit(l.Label, w, deps.FontFamily, 12, 18, true)
	layout.Elements = append(layout.Elements, PositionedElement{
		ID: fmt.Sprintf("band-%s", l.ID), Kind: KindBand,
		X: x, Y: y, W: w, H: units.CrossCutBandHeightIn,
		Fill: "#" + Lighten(b.Theme.Secondary, 0.1),
		CornerRadiusIn: b.Theme.CornerRadiusIn,
		Text:           &mt, Opacity: 1, Z: -1, LayerID: l.ID,
	})
}
