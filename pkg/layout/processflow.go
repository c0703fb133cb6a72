package layout

import (
	"fmt"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/units"
)

func init() {
	Register(brief.ProcessFlow, solveProcessFlow)
}

// uTurnThreshold is the entity count above which process-flow wraps onto
// a second row with a U-turn, per §4.3 and §9's Open Questions (taken
// from the source, not exposed as configuration absent product evidence).
const uTurnThreshold = 6

// solveProcessFlow lays out entities in reading order along one row, or
// two rows with the bottom row reversed (right-to-left) and a U-turn
// connector when there are more than uTurnThreshold entities.
func solveProcessFlow(b *brief.Brief, deps Deps) (*PositionedLayout, error) {
	layout := &PositionedLayout{
		WidthIn: units.SlideWidthIn, HeightIn: units.SlideHeightIn,
		Background: "#" + b.Theme.Background,
		Title:      b.Title, Subtitle: b.Subtitle,
	}
	layout.Elements = append(layout.Elements, buildTitle(b.Title, b.Subtitle, b.Theme.FontFamily, b.Theme.Text)...)

	entities := b.Entities
	contentX, contentY := contentOrigin()
	contentW := units.ContentWidth()
	contentH := units.ContentHeight()

	if len(entities) <= uTurnThreshold {
		placeFlowRow(layout, entities, b, deps, contentX, contentY, contentW, contentH, false)
		connectRow(layout, entities, false)
		return layout, nil
	}

	top := entities[:uTurnThreshold]
	bottom := entities[uTurnThreshold:]
	rowH := contentH / 2

	placeFlowRow(layout, top, b, deps, contentX, contentY, contentW, rowH, false)
	placeFlowRow(layout, bottom, b, deps, contentX, contentY+rowH, contentW, rowH, true)

	connectRow(layout, top, false)
	connectRow(layout, bottom, true)
	connectUTurn(layout, top[len(top)-1], bottom[0])

	return layout, nil
}

// placeFlowRow places entities left-to-right (or, if reversed, assigns
// cells right-to-left while keeping the slice order) across one row.
func placeFlowRow(layout *PositionedLayout, entities []brief.Entity, b *brief.Brief, deps Deps, x, y, w, h float64, reversed bool) {
	n := len(entities)
	if n == 0 {
		return
	}
	cellW := (w - float64(n-1)*units.GutterHorizontalIn) / float64(n)
	for i, e := range entities {
		col := i
		if reversed {
			col = n - 1 - i
		}
		cellX := x + float64(col)*(cellW+units.GutterHorizontalIn)
		size := EstimateBlockSize(e.Label, n, w, b.Theme.PaddingIn, deps)
		blockW := size.WidthIn
		if blockW > cellW {
			blockW = cellW
		}
		blockH := size.HeightIn
		if blockH > h {
			blockH = h
		}
		ex := cellX + (cellW-blockW)/2
		ey := y + (h-blockH)/2
		mt := size.Text
		layout.Elements = append(layout.Elements, PositionedElement{
			ID: e.ID, Kind: KindBlock,
			X: ex, Y: ey, W: blockW, H: blockH,
			Fill: "#" + FillForEmphasis(e.Emphasis, b.Theme),
			CornerRadiusIn: b.Theme.CornerRadiusIn,
			Text:           &mt, Opacity: 1, Z: 1,
		})
	}
}

// connectRow draws arrows between adjacent entities in reading order: from
// the right edge of block i to the left edge of block i+1, at the
// vertical midpoint, per §4.3.
func connectRow(layout *PositionedLayout, entities []brief.Entity, reversed bool) {
	for i := 0; i+1 < len(entities); i++ {
		from := findElement(layout, entities[i].ID)
		to := findElement(layout, entities[i+1].ID)
		if from == nil || to == nil {
			continue
		}
		var startX, endX float64
		if reversed {
			startX, endX = from.X, to.Right()
		} else {
			startX, endX = from.Right(), to.X
		}
		midY := (from.Y + from.Bottom()) / 2
		layout.Connectors = append(layout.Connectors, PositionedConnector{
			ID:     fmt.Sprintf("conn-%s-%s", entities[i].ID, entities[i+1].ID),
			FromID: entities[i].ID, ToID: entities[i+1].ID,
			StartX: startX, StartY: midY, EndX: endX, EndY: midY,
			Style: brief.ConnectorArrow, Color: "#333333", StrokeWidthPt: 1.5,
		})
	}
}

// connectUTurn draws the wrap-around connector from the last entity of
// the top row to the first entity of the bottom row.
func connectUTurn(layout *PositionedLayout, last, first brief.Entity) {
	from := findElement(layout, last.ID)
	to := findElement(layout, first.ID)
	if from == nil || to == nil {
		return
	}
	layout.Connectors = append(layout.Connectors, PositionedConnector{
		ID:     fmt.Sprintf("conn-uturn-%s-%s", last.ID, first.ID),
		FromID: last.ID, ToID: first.ID,
		StartX: from.Right(), StartY: (from.Y + from.Bottom()) / 2,
		EndX: to.Right(), EndY: (to.Y + to.Bottom()) / 2,
		Style: brief.ConnectorArrow, Color: "#333333", StrokeWidthPt: 1.5,
	})
}

func findElement(layout *PositionedLayout, id string) *PositionedElement {
	for i := range layout.Elements {
		if layout.Elements[i].ID == id {
			return &layout.Elements[i]
		}
	}
	return nil
}
