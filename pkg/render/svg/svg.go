// Package svg renders a PositionedLayout to a self-contained SVG document,
// per §4.7: a viewBox in inches × 96, a <rect> (rounded where the element
// has a corner radius) for every element with a fill, carrying a stable id
// and a data-kind attribute, <text> nodes for every label, and <line>
// connectors, with a marker-end arrowhead on arrow-style connectors.
//
// The drawing calls follow the same ajstarks/svgo idiom the teacher's
// dungeon exporter uses (svg.New(buf), canvas.Start/Rect/Circle/Line/Text,
// one joined "key:value;key:value" style string per shape). svgo's shape
// methods only ever emit a style attribute from their variadic args, so id
// and data-kind are written straight to the shared buffer around each
// call instead.
package svg

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/layout"
)

// pxPerInch is the fixed scale of the document's coordinate space.
const pxPerInch = 96.0

// arrowMarkerID names the single arrowhead marker every document declares,
// referenced by connectors whose style calls for one.
const arrowMarkerID = "infogen-arrow"

const defaultStrokeColor = "#333333"

// Render converts a PositionedLayout into a complete SVG document.
func Render(l *layout.PositionedLayout) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("svg: nil layout")
	}

	buf := new(bytes.Buffer)
	canvas := svgo.New(buf)

	w, h := inToPx(l.WidthIn), inToPx(l.HeightIn)
	canvas.Startview(w, h, 0, 0, w, h)

	defineMarkers(buf)

	bg := l.Background
	if bg == "" {
		bg = "#ffffff"
	}
	canvas.Rect(0, 0, w, h, "fill:"+bg)

	elements := make([]layout.PositionedElement, len(l.Elements))
	copy(elements, l.Elements)
	sort.SliceStable(elements, func(i, j int) bool { return elements[i].Z < elements[j].Z })

	for i := range elements {
		drawElement(buf, canvas, &elements[i])
	}
	for i := range l.Connectors {
		drawConnector(buf, canvas, &l.Connectors[i])
	}

	canvas.End()
	return buf.Bytes(), nil
}

func inToPx(v float64) int {
	return int(math.Round(v * pxPerInch))
}

// defineMarkers declares the arrowhead marker inside a <defs> block. Written
// directly to buf since svgo has no marker helper of its own.
func defineMarkers(buf *bytes.Buffer) {
	fmt.Fprint(buf, "<defs>\n")
	fmt.Fprintf(buf, `<marker id="%s" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M0,0 L10,5 L0,10 z" fill="%s"/></marker>`+"\n",
		arrowMarkerID, defaultStrokeColor)
	fmt.Fprint(buf, "</defs>\n")
}

// drawElement renders one element's background shape (when it has a fill)
// and text (when it has measured text), wrapped in a <g id data-kind> pair
// so every shape in the document is addressable and classifiable.
func drawElement(buf *bytes.Buffer, canvas *svgo.SVG, el *layout.PositionedElement) {
	fmt.Fprintf(buf, `<g id=%q data-kind=%q>`+"\n", el.ID, el.Kind)

	if el.Fill != "" {
		drawShape(canvas, el)
	}
	if el.Text != nil {
		drawText(canvas, el, textColorFor(el))
	}

	fmt.Fprint(buf, "</g>\n")
}

func drawShape(canvas *svgo.SVG, el *layout.PositionedElement) {
	x, y, w, h := inToPx(el.X), inToPx(el.Y), inToPx(el.W), inToPx(el.H)
	style := shapeStyle(el)

	if el.CornerRadiusIn > 0 {
		r := inToPx(el.CornerRadiusIn)
		canvas.Roundrect(x, y, w, h, r, r, style)
		return
	}
	canvas.Rect(x, y, w, h, style)
}

func shapeStyle(el *layout.PositionedElement) string {
	parts := []string{"fill:" + el.Fill}
	if el.Stroke != "" {
		parts = append(parts, "stroke:"+el.Stroke, fmt.Sprintf("stroke-width:%.2f", el.StrokeWidthPt))
	}
	if el.Opacity > 0 && el.Opacity < 1 {
		parts = append(parts, fmt.Sprintf("opacity:%.2f", el.Opacity))
	}
	return strings.Join(parts, ";")
}

// textColorFor chooses a readable color against el.Fill, falling back to a
// dark default for text-only elements (titles, subtitles, unfilled labels)
// that carry no background of their own.
func textColorFor(el *layout.PositionedElement) string {
	if el.Fill == "" {
		return "#1a1a1a"
	}
	hex := strings.TrimPrefix(el.Fill, "#")
	return "#" + layout.ContrastText(hex, brief.Theme{})
}

// drawText lays out a MeasuredText's wrapped lines centered vertically
// within el's box. Title and subtitle elements, which span the full
// content width and are meant to read left to right, anchor at the left
// edge instead of centering.
func drawText(canvas *svgo.SVG, el *layout.PositionedElement, color string) {
	mt := el.Text
	fontPx := mt.FontSizePt * 96.0 / 72.0
	lineHeight := fontPx * 1.3
	blockHeight := lineHeight * float64(len(mt.Lines))

	x := el.X * pxPerInch
	y := el.Y * pxPerInch
	w := el.W * pxPerInch
	h := el.H * pxPerInch

	anchor := "middle"
	tx := x + w/2
	if el.Kind == layout.KindTitle || el.Kind == layout.KindSubtitle {
		anchor = "start"
		tx = x
	}

	weight := ""
	if el.Kind == layout.KindTitle {
		weight = ";font-weight:bold"
	}

	style := fmt.Sprintf("text-anchor:%s;font-size:%.1fpx;fill:%s%s", anchor, fontPx, color, weight)
	top := y + h/2 - blockHeight/2

	for i, line := range mt.Lines {
		baseline := top + lineHeight*(float64(i)+1) - lineHeight*0.25
		canvas.Text(int(math.Round(tx)), int(math.Round(baseline)), line, style)
	}
}

func drawConnector(buf *bytes.Buffer, canvas *svgo.SVG, c *layout.PositionedConnector) {
	fmt.Fprintf(buf, `<g id=%q data-kind="connector">`+"\n", c.ID)

	x1, y1 := inToPx(c.StartX), inToPx(c.StartY)
	x2, y2 := inToPx(c.EndX), inToPx(c.EndY)

	color := c.Color
	if color == "" {
		color = defaultStrokeColor
	}
	strokeWidth := c.StrokeWidthPt
	if strokeWidth <= 0 {
		strokeWidth = 1
	}

	style := fmt.Sprintf("stroke:%s;stroke-width:%.2f;fill:none", color, strokeWidth)
	if c.Style == brief.ConnectorDashed {
		style += ";stroke-dasharray:6,4"
	}
	switch c.Style {
	case brief.ConnectorArrow:
		style += fmt.Sprintf(";marker-end:url(#%s)", arrowMarkerID)
	case brief.ConnectorBidirectional:
		style += fmt.Sprintf(";marker-end:url(#%s);marker-start:url(#%s)", arrowMarkerID, arrowMarkerID)
	}

	canvas.Line(x1, y1, x2, y2, style)

	if c.Label != nil {
		drawConnectorLabel(canvas, c)
	}

	fmt.Fprint(buf, "</g>\n")
}

func drawConnectorLabel(canvas *svgo.SVG, c *layout.PositionedConnector) {
	mt := c.Label
	midX := inToPx((c.StartX + c.EndX) / 2)
	midY := (c.StartY + c.EndY) / 2 * pxPerInch
	fontPx := mt.FontSizePt * 96.0 / 72.0
	lineHeight := fontPx * 1.3

	style := fmt.Sprintf("text-anchor:middle;font-size:%.1fpx;fill:%s", fontPx, defaultStrokeColor)
	for i, line := range mt.Lines {
		y := midY + lineHeight*float64(i)
		canvas.Text(midX, int(math.Round(y)), line, style)
	}
}
