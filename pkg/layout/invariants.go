package layout

import "math"

// maxScalingAttempts bounds how many uniform-shrink passes EnforceInvariants
// will try before giving up and recording a violation warning instead of
// looping forever.
const maxScalingAttempts = 6

// scaleFactor is applied to block widths on each failed pass, per §4.3:
// "scale block widths down uniformly until invariants hold".
const scaleFactor = 0.92

// EnforceInvariants checks the global invariants §4.3 and §8 place on a
// PositionedLayout (containment, block non-overlap, connector endpoint
// insets). If containment or non-overlap is violated it uniformly shrinks
// block widths and retries; connector insets are only checked and warned
// about, never adjusted.
// It never returns an error: a layout that still violates an invariant
// after every attempt is recorded as a warning rather than failed, since
// solver guarantees would have to be broken for that to happen (§4.3,
// §7's LayoutUnsatisfiable is reserved for that theoretical case).
func EnforceInvariants(layout *PositionedLayout) {
	scaled := false
	for attempt := 0; attempt < maxScalingAttempts; attempt++ {
		if checkContainment(layout) && checkNoBlockOverlap(layout) {
			break
		}
		scaleBlockWidths(layout, scaleFactor)
		scaled = true
	}
	if scaled {
		layout.AddWarning("layout", "uniform-scaling-applied",
			"block widths were scaled down to satisfy containment/overlap invariants")
	}
	if !checkContainment(layout) {
		layout.AddWarning("layout", "containment-violation",
			"an element exceeds canvas bounds after scaling")
	}
	if !checkNoBlockOverlap(layout) {
		layout.AddWarning("layout", "overlap-violation",
			"two block elements overlap after scaling")
	}
	if !checkConnectorInsets(layout) {
		layout.AddWarning("layout", "connector-inset-violation",
			"a connector endpoint does not clear its shape by the required inset")
	}
}

func checkContainment(layout *PositionedLayout) bool {
	for i := range layout.Elements {
		if !layout.Elements[i].Contains(layout.WidthIn, layout.HeightIn) {
			return false
		}
	}
	return true
}

func checkNoBlockOverlap(layout *PositionedLayout) bool {
	blocks := make([]*PositionedElement, 0, len(layout.Elements))
	for i := range layout.Elements {
		if layout.Elements[i].Kind == KindBlock {
			blocks = append(blocks, &layout.Elements[i])
		}
	}
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Overlaps(blocks[j]) {
				return false
			}
		}
	}
	return true
}

const connectorEndpointInsetIn = 0.1

func checkConnectorInsets(layout *PositionedLayout) bool {
	byID := make(map[string]*PositionedElement, len(layout.Elements))
	for i := range layout.Elements {
		byID[layout.Elements[i].ID] = &layout.Elements[i]
	}
	for _, c := range layout.Connectors {
		if from, ok := byID[c.FromID]; ok && !clearsByInset(c.StartX, c.StartY, from) {
			return false
		}
		if to, ok := byID[c.ToID]; ok && !clearsByInset(c.EndX, c.EndY, to) {
			return false
		}
	}
	return true
}

// clearsByInset reports whether point (x,y) lies at least
// connectorEndpointInsetIn outside e's bounding box in every direction it
// could be closest to.
func clearsByInset(x, y float64, e *PositionedElement) bool {
	dx := 0.0
	switch {
	case x < e.X:
		dx = e.X - x
	case x > e.Right():
		dx = x - e.Right()
	}
	dy := 0.0
	switch {
	case y < e.Y:
		dy = e.Y - y
	case y > e.Bottom():
		dy = y - e.Bottom()
	}
	if dx == 0 && dy == 0 {
		// Point lies inside or exactly on the shape: no clearance at all.
		return false
	}
	return math.Hypot(dx, dy) >= connectorEndpointInsetIn-1e-9
}

// scaleBlockWidths shrinks every block-kind element's width by factor
// around its own center, widening the gutters between siblings without
// moving the layout's overall anchor points.
func scaleBlockWidths(layout *PositionedLayout, factor float64) {
	for i := range layout.Elements {
		e := &layout.Elements[i]
		if e.Kind != KindBlock {
			continue
		}
		newW := e.W * factor
		e.X += (e.W - newW) / 2
		e.W = newW
	}
}
