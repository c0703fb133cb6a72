package slide

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/layout"
	"github.com/infogen/core/pkg/measure"
	"github.com/infogen/core/pkg/units"
)

// maxCornerAdjustment caps how round a rectangle's corners may be, per
// §4.7's "corner adjustment = min(0.15, corner-radius/height)".
const maxCornerAdjustment = 0.15

// buildSlideDoc renders l's elements and connectors, in ascending z-order,
// into the single p:sld part.
func buildSlideDoc(l *layout.PositionedLayout) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	sld := doc.CreateElement("p:sld")
	sld.CreateAttr("xmlns:a", "http://schemas.openxmlformats.org/drawingml/2006/main")
	sld.CreateAttr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")
	sld.CreateAttr("xmlns:p", "http://schemas.openxmlformats.org/presentationml/2006/main")

	cSld := sld.CreateElement("p:cSld")
	bg := cSld.CreateElement("p:bg")
	bgPr := bg.CreateElement("p:bgPr")
	fill := bgPr.CreateElement("a:solidFill")
	fill.CreateElement("a:srgbClr").CreateAttr("val", hexOf(l.Background, "FFFFFF"))
	bgPr.CreateElement("a:effectLst")

	spTree := cSld.CreateElement("p:spTree")
	nvGrpSpPr := spTree.CreateElement("p:nvGrpSpPr")
	nvGrpSpPr.CreateElement("p:cNvPr").CreateAttr("id", "1")
	nvGrpSpPr.CreateElement("p:cNvPr").CreateAttr("name", "")
	nvGrpSpPr.CreateElement("p:cNvGrpSpPr")
	nvGrpSpPr.CreateElement("p:nvPr")
	spTree.CreateElement("p:grpSpPr")

	elements := make([]layout.PositionedElement, len(l.Elements))
	copy(elements, l.Elements)
	sort.SliceStable(elements, func(i, j int) bool { return elements[i].Z < elements[j].Z })

	nextID := 2
	for i := range elements {
		writeShape(spTree, &elements[i], &nextID)
	}
	for i := range l.Connectors {
		writeConnector(spTree, &l.Connectors[i], &nextID)
	}

	return doc, nil
}

func hexOf(hex, fallback string) string {
	h := strings.TrimPrefix(hex, "#")
	if h == "" {
		h = fallback
	}
	return strings.ToUpper(h)
}

// writeShape emits one p:sp for el: a filled/stroked rounded-rectangle (when
// el.Fill is set) carrying el.Text as a pre-wrapped, vertically-centered
// text body (when el.Text is set). Kind never gates what's drawn — see
// pkg/render/svg for the same data-driven rule and why.
func writeShape(parent *etree.Element, el *layout.PositionedElement, nextID *int) {
	id := *nextID
	*nextID++

	sp := parent.CreateElement("p:sp")
	nvSpPr := sp.CreateElement("p:nvSpPr")
	cNvPr := nvSpPr.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", fmt.Sprintf("%d", id))
	cNvPr.CreateAttr("name", el.ID)
	nvSpPr.CreateElement("p:cNvSpPr")
	nvSpPr.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", emuAttr(el.X))
	off.CreateAttr("y", emuAttr(el.Y))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", emuAttr(el.W))
	ext.CreateAttr("cy", emuAttr(el.H))

	if el.Fill != "" {
		geom := spPr.CreateElement("a:prstGeom")
		if el.CornerRadiusIn > 0 {
			geom.CreateAttr("prst", "roundRect")
			avLst := geom.CreateElement("a:avLst")
			adj := el.CornerRadiusIn / el.H
			if adj > maxCornerAdjustment {
				adj = maxCornerAdjustment
			}
			gd := avLst.CreateElement("a:gd")
			gd.CreateAttr("name", "adj")
			gd.CreateAttr("fmla", fmt.Sprintf("val %d", int(adj*100000)))
		} else {
			geom.CreateAttr("prst", "rect")
			geom.CreateElement("a:avLst")
		}

		solidFill := spPr.CreateElement("a:solidFill")
		solidFill.CreateElement("a:srgbClr").CreateAttr("val", hexOf(el.Fill, "FFFFFF"))

		ln := spPr.CreateElement("a:ln")
		if el.Stroke != "" {
			if el.StrokeWidthPt > 0 {
				ln.CreateAttr("w", fmt.Sprintf("%d", units.PointsToEMU(el.StrokeWidthPt)))
			}
			ln.CreateElement("a:solidFill").CreateElement("a:srgbClr").CreateAttr("val", hexOf(el.Stroke, "000000"))
		} else {
			ln.CreateElement("a:noFill")
		}
	} else {
		spPr.CreateElement("a:prstGeom").CreateAttr("prst", "rect")
		spPr.CreateElement("a:noFill")
	}

	writeTextBody(sp, el.Text, textAnchorFor(el.Kind), el.Kind == layout.KindTitle)
}

// textAnchorFor left-anchors title/subtitle paragraphs and centers every
// other kind, matching pkg/render/svg's anchoring rule.
func textAnchorFor(kind layout.ElementKind) string {
	if kind == layout.KindTitle || kind == layout.KindSubtitle {
		return "l"
	}
	return "ctr"
}

// writeTextBody writes a p:txBody with word-wrap enabled, autofit disabled,
// vertical centering, and one a:p per wrapped line. A text frame must never
// be empty, so a nil or lineless MeasuredText still gets a single space.
func writeTextBody(sp *etree.Element, t *measure.MeasuredText, align string, bold bool) {
	txBody := sp.CreateElement("p:txBody")
	bodyPr := txBody.CreateElement("a:bodyPr")
	bodyPr.CreateAttr("anchor", "ctr")
	bodyPr.CreateAttr("wrap", "square")
	bodyPr.CreateElement("a:noAutofit")
	txBody.CreateElement("a:lstStyle")

	lines := []string{""}
	sizePt := 12.0
	rtl := false
	if t != nil {
		sizePt = t.FontSizePt
		if len(t.Lines) > 0 {
			lines = t.Lines
		}
		rtl = measure.IsRTL(t.Original)
	}

	for _, line := range lines {
		if line == "" {
			line = " "
		}
		p := txBody.CreateElement("a:p")
		pPr := p.CreateElement("a:pPr")
		pPr.CreateAttr("algn", align)
		if rtl {
			pPr.CreateAttr("rtl", "1")
		}
		r := p.CreateElement("a:r")
		rPr := r.CreateElement("a:rPr")
		rPr.CreateAttr("lang", "en-US")
		rPr.CreateAttr("sz", fmt.Sprintf("%d", int(sizePt*100)))
		if bold {
			rPr.CreateAttr("b", "1")
		}
		r.CreateElement("a:t").SetText(line)
	}
}

// writeConnector emits a plain (non-auto-binding) line shape between the
// connector's endpoints, with arrowheads and dash style per §4.7.
func writeConnector(parent *etree.Element, c *layout.PositionedConnector, nextID *int) {
	id := *nextID
	*nextID++

	minX, maxX := c.StartX, c.EndX
	flipH := false
	if minX > maxX {
		minX, maxX = maxX, minX
		flipH = true
	}
	minY, maxY := c.StartY, c.EndY
	flipV := false
	if minY > maxY {
		minY, maxY = maxY, minY
		flipV = true
	}
	cx, cy := maxX-minX, maxY-minY

	sp := parent.CreateElement("p:sp")
	nvSpPr := sp.CreateElement("p:nvSpPr")
	cNvPr := nvSpPr.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", fmt.Sprintf("%d", id))
	cNvPr.CreateAttr("name", c.ID)
	nvSpPr.CreateElement("p:cNvSpPr")
	nvSpPr.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	if flipH {
		xfrm.CreateAttr("flipH", "1")
	}
	if flipV {
		xfrm.CreateAttr("flipV", "1")
	}
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", emuAttr(minX))
	off.CreateAttr("y", emuAttr(minY))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", emuAttr(cx))
	ext.CreateAttr("cy", emuAttr(cy))

	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "line")
	geom.CreateElement("a:avLst")

	ln := spPr.CreateElement("a:ln")
	if c.StrokeWidthPt > 0 {
		ln.CreateAttr("w", fmt.Sprintf("%d", units.PointsToEMU(c.StrokeWidthPt)))
	}
	ln.CreateElement("a:solidFill").CreateElement("a:srgbClr").CreateAttr("val", hexOf(c.Color, "333333"))

	if c.Style == brief.ConnectorDashed {
		ln.CreateElement("a:prstDash").CreateAttr("val", "dash")
	}

	switch c.Style {
	case brief.ConnectorArrow:
		ln.CreateElement("a:tailEnd").CreateAttr("type", "triangle")
	case brief.ConnectorBidirectional:
		ln.CreateElement("a:headEnd").CreateAttr("type", "triangle")
		ln.CreateElement("a:tailEnd").CreateAttr("type", "triangle")
	}

	writeTextBody(sp, c.Label, "ctr", false)
}

func emuAttr(inches float64) string {
	return fmt.Sprintf("%d", units.InchesToEMU(inches))
}
