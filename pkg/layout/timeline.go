package layout

import (
	"fmt"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/measure"
	"github.com/infogen/core/pkg/units"
)

func init() {
	Register(brief.Timeline, solveTimeline)
}

const (
	timelineMarkerDiameterIn = 0.25
	timelineDescGapIn        = 0.15
	timelineDescHeightIn     = 1.2
)

// solveTimeline draws a horizontal line at the content area's vertical
// midpoint, with n equally spaced markers; descriptions alternate above
// and below the line, per §4.3.
func solveTimeline(b *brief.Brief, deps Deps) (*PositionedLayout, error) {
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
	midY := contentY + contentH/2

	layout.Elements = append(layout.Elements, PositionedElement{
		ID: "timeline-axis", Kind: KindLabel,
		X: contentX, Y: midY - 0.015, W: contentW, H: 0.03,
		Fill: "#" + b.Theme.Secondary, Opacity: 1, Z: 0,
	})

	descW := contentW / float64(n)
	if n == 1 {
		descW = contentW
	}

	step := contentW
	if n > 1 {
		step = (contentW - descW) / float64(n-1)
	}

	for i, e := range entities {
		cx := contentX
		if n > 1 {
			cx = contentX + descW/2 + float64(i)*step
		} else {
			cx = contentX + contentW/2
		}
		fill := "#" + FillForEmphasis(e.Emphasis, b.Theme)
		layout.Elements = append(layout.Elements, PositionedElement{
			ID: e.ID, Kind: KindBlock,
			X: cx - timelineMarkerDiameterIn/2, Y: midY - timelineMarkerDiameterIn/2,
			W: timelineMarkerDiameterIn, H: timelineMarkerDiameterIn,
			Fill: fill, CornerRadiusIn: timelineMarkerDiameterIn / 2,
			Opacity: 1, Z: 2,
		})

		mt := measure.Fit(e.Label, descW-2*units.TextPaddingIn, deps.FontFamily, 9, 14, false)
		descX := cx - descW/2
		var descY float64
		if i%2 == 0 {
			descY = midY - timelineDescGapIn - timelineDescHeightIn
		} else {
			descY = midY + timelineDescGapIn
		}
		layout.Elements = append(layout.Elements, PositionedElement{
			ID: fmt.Sprintf("desc-%s", e.ID), Kind: KindLabel,
			X: descX, Y: descY, W: descW, H: timelineDescHeightIn,
			Text: &mt, Opacity: 1, Z: 1,
		})
	}

	return layout, nil
}
