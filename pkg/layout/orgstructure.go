package layout

import (
	"fmt"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/units"
)

func init() {
	Register(brief.OrgStructure, solveOrgStructure)
}

// solveOrgStructure lays out one row per level of a tree built from the
// Brief's Connections (parent From -> child To). Each level's entities are
// spaced evenly across the full content width in the order they were
// reached; a child is not positioned beneath its own parent. Entities
// unreached from any root form one extra row below the deepest level so
// every entity is always placed.
func solveOrgStructure(b *brief.Brief, deps Deps) (*PositionedLayout, error) {
	layout := &PositionedLayout{
		WidthIn: units.SlideWidthIn, HeightIn: units.SlideHeightIn,
		Background: "#" + b.Theme.Background,
		Title:      b.Title, Subtitle: b.Subtitle,
	}
	layout.Elements = append(layout.Elements, buildTitle(b.Title, b.Subtitle, b.Theme.FontFamily, b.Theme.Text)...)

	if len(b.Entities) == 0 {
		return layout, nil
	}

	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, c := range b.Connections {
		children[c.From] = append(children[c.From], c.To)
		hasParent[c.To] = true
	}

	var roots []string
	for _, e := range b.Entities {
		if !hasParent[e.ID] {
			roots = append(roots, e.ID)
		}
	}
	if len(roots) == 0 {
		roots = []string{b.Entities[0].ID}
	}

	var levels [][]string
	levels = append(levels, roots)
	placed := make(map[string]bool)
	for _, r := range roots {
		placed[r] = true
	}
	for depth := 0; ; depth++ {
		var next []string
		for _, id := range levels[depth] {
			for _, c := range children[id] {
				if !placed[c] {
					next = append(next, c)
					placed[c] = true
				}
			}
		}
		if len(next) == 0 {
			break
		}
		levels = append(levels, next)
	}

	var unreached []string
	for _, e := range b.Entities {
		if !placed[e.ID] {
			unreached = append(unreached, e.ID)
		}
	}
	if len(unreached) > 0 {
		levels = append(levels, unreached)
	}

	entityByID := make(map[string]brief.Entity, len(b.Entities))
	for _, e := range b.Entities {
		entityByID[e.ID] = e
	}

	contentX, contentY := contentOrigin()
	contentW := units.ContentWidth()
	contentH := units.ContentHeight()
	nLevels := len(levels)
	rowH := (contentH - float64(nLevels-1)*units.GutterVerticalIn) / float64(nLevels)

	centerX := make(map[string]float64)
	centerY := make(map[string]float64)
	topY := make(map[string]float64)

	for depth, ids := range levels {
		n := len(ids)
		y := contentY + float64(depth)*(rowH+units.GutterVerticalIn)
		for i, id := range ids {
			e, ok := entityByID[id]
			if !ok {
				continue
			}
			size := EstimateBlockSize(e.Label, n, contentW, b.Theme.PaddingIn, deps)
			h := size.HeightIn
			if h > rowH {
				h = rowH
			}
			cellW := contentW / float64(n)
			x := contentX + float64(i)*cellW + (cellW-size.WidthIn)/2
			ey := y + (rowH-h)/2
			mt := size.Text
			layout.Elements = append(layout.Elements, PositionedElement{
				ID: id, Kind: KindBlock,
				X: x, Y: ey, W: size.WidthIn, H: h,
				Fill: "#" + FillForEmphasis(e.Emphasis, b.Theme),
				CornerRadiusIn: b.Theme.CornerRadiusIn,
				Text:           &mt, Opacity: 1, Z: 1,
			})
			centerX[id] = x + size.WidthIn/2
			centerY[id] = ey + h
			topY[id] = ey
		}
	}

	// One connector per parent-child edge, anchored at the parent's
	// bottom-center and the child's top-center. The renderer is free to
	// draw this as an orthogonal elbow (vertical-horizontal-vertical, per
	// §4.3) since both endpoints already sit on the shapes' boundaries.
	connIdx := 0
	for parent, kids := range children {
		py, ok := centerY[parent]
		px := centerX[parent]
		if !ok {
			continue
		}
		for _, k := range kids {
			kx, ok := centerX[k]
			if !ok {
				continue
			}
			connIdx++
			layout.Connectors = append(layout.Connectors, PositionedConnector{
				ID:     fmt.Sprintf("conn-org-%d", connIdx),
				FromID: parent, ToID: k,
				StartX: px, StartY: py, EndX: kx, EndY: topY[k],
				Style: brief.ConnectorPlain, Color: "#333333", StrokeWidthPt: 1.25,
			})
		}
	}

	return layout, nil
}
