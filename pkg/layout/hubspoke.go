package layout

import (
	"fmt"
	"math"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/units"
)

func init() {
	Register(brief.HubSpoke, solveHubSpoke)
}

// hubSpokeRadiusFactor is the satellite orbit radius as a fraction of
// min(content-width, content-height), per §4.3.
const hubSpokeRadiusFactor = 0.35

// solveHubSpoke places the first primary-emphasis entity (or, absent one,
// the first entity) at the content center as the hub, and arranges the
// rest as satellites on a circle around it, starting at the top (270°)
// and proceeding clockwise, per §4.3.
func solveHubSpoke(b *brief.Brief, deps Deps) (*PositionedLayout, error) {
	layout := &PositionedLayout{
		WidthIn: units.SlideWidthIn, HeightIn: units.SlideHeightIn,
		Background: "#" + b.Theme.Background,
		Title:      b.Title, Subtitle: b.Subtitle,
	}
	layout.Elements = append(layout.Elements, buildTitle(b.Title, b.Subtitle, b.Theme.FontFamily, b.Theme.Text)...)

	entities := b.Entities
	if len(entities) == 0 {
		return layout, nil
	}

	hubIdx := 0
	for i, e := range entities {
		if e.Emphasis == brief.EmphasisPrimary {
			hubIdx = i
			break
		}
	}
	hub := entities[hubIdx]
	satellites := make([]brief.Entity, 0, len(entities)-1)
	for i, e := range entities {
		if i != hubIdx {
			satellites = append(satellites, e)
		}
	}

	contentX, contentY := contentOrigin()
	contentW := units.ContentWidth()
	contentH := units.ContentHeight()
	centerX := contentX + contentW/2
	centerY := contentY + contentH/2
	radius := hubSpokeRadiusFactor * math.Min(contentW, contentH)

	hubSize := EstimateBlockSize(hub.Label, 1, contentW/3, b.Theme.PaddingIn, deps)
	hmt := hubSize.Text
	layout.Elements = append(layout.Elements, PositionedElement{
		ID: hub.ID, Kind: KindBlock,
		X: centerX - hubSize.WidthIn/2, Y: centerY - hubSize.HeightIn/2,
		W: hubSize.WidthIn, H: hubSize.HeightIn,
		Fill: "#" + FillForEmphasis(hub.Emphasis, b.Theme),
		CornerRadiusIn: b.Theme.CornerRadiusIn,
		Text:           &hmt, Opacity: 1, Z: 2,
	})

	n := len(satellites)
	for k, e := range satellites {
		angleDeg := 270.0 + float64(k)*360.0/float64(n)
		angle := angleDeg * math.Pi / 180
		sx := centerX + radius*math.Cos(angle)
		sy := centerY + radius*math.Sin(angle)

		size := EstimateBlockSize(e.Label, n, contentW, b.Theme.PaddingIn, deps)
		mt := size.Text
		ex := sx - size.WidthIn/2
		ey := sy - size.HeightIn/2
		layout.Elements = append(layout.Elements, PositionedElement{
			ID: e.ID, Kind: KindBlock,
			X: ex, Y: ey, W: size.WidthIn, H: size.HeightIn,
			Fill: "#" + FillForEmphasis(e.Emphasis, b.Theme),
			CornerRadiusIn: b.Theme.CornerRadiusIn,
			Text:           &mt, Opacity: 1, Z: 1,
		})

		inset := 2 * connectorEndpointInsetIn
		startX, startY := edgePointTowards(centerX, centerY, hubSize.WidthIn+inset, hubSize.HeightIn+inset, sx, sy)
		endX, endY := edgePointTowards(sx, sy, size.WidthIn+inset, size.HeightIn+inset, centerX, centerY)
		layout.Connectors = append(layout.Connectors, PositionedConnector{
			ID:     fmt.Sprintf("conn-%s-%s", hub.ID, e.ID),
			FromID: hub.ID, ToID: e.ID,
			StartX: startX, StartY: startY, EndX: endX, EndY: endY,
			Style: brief.ConnectorPlain, Color: "#333333", StrokeWidthPt: 1.25,
		})
	}

	return layout, nil
}

// edgePointTowards returns the point on the rectangle centered at
// (cx, cy) with the given width/height where a ray toward (tx, ty) exits
// the shape, used to anchor hub-spoke connectors on the shape boundary
// rather than its center.
func edgePointTowards(cx, cy, w, h, tx, ty float64) (x, y float64) {
	dx := tx - cx
	dy := ty - cy
	if dx == 0 && dy == 0 {
		return cx, cy
	}
	halfW, halfH := w/2, h/2
	scaleX := math.MaxFloat64
	if dx != 0 {
		scaleX = math.Abs(halfW / dx)
	}
	scaleY := math.MaxFloat64
	if dy != 0 {
		scaleY = math.Abs(halfH / dy)
	}
	scale := math.Min(scaleX, scaleY)
	return cx + dx*scale, cy + dy*scale
}
