package layout

import (
	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/measure"
)

// ElementKind is the closed set of shapes a PositionedElement may be.
type ElementKind string

const (
	KindBlock    ElementKind = "block"
	KindBand     ElementKind = "band"
	KindTitle    ElementKind = "title"
	KindSubtitle ElementKind = "subtitle"
	KindLabel    ElementKind = "label"

	// KindChevron is a value-chain segment. It is exempt from the
	// no-overlap invariant: chevron tips are required to overlap their
	// neighbor by design (§4.3), unlike every other block-kind element.
	KindChevron ElementKind = "chevron"
)

// PositionedElement is an axis-aligned rectangle, in inches, relative to
// the slide origin, plus everything a renderer needs to draw it.
type PositionedElement struct {
	ID string
	Kind ElementKind

	X, Y, W, H float64

	Fill           string
	Stroke         string
	StrokeWidthPt  float64
	CornerRadiusIn float64

	Text *measure.MeasuredText

	Opacity float64
	Z       int

	LayerID string // empty when this element doesn't belong to a layer
}

// Right and Bottom return the element's far edges.
func (e *PositionedElement) Right() float64  { return e.X + e.W }
func (e *PositionedElement) Bottom() float64 { return e.Y + e.H }

// Overlaps reports whether e and other's bounding boxes intersect.
// Touching edges do not count as overlapping.
func (e *PositionedElement) Overlaps(other *PositionedElement) bool {
	if e.Right() <= other.X || other.Right() <= e.X {
		return false
	}
	if e.Bottom() <= other.Y || other.Bottom() <= e.Y {
		return false
	}
	return true
}

// Contains reports whether e's rectangle fully lies within the width x
// height canvas rooted at the origin.
func (e *PositionedElement) Contains(width, height float64) bool {
	return e.X >= 0 && e.Y >= 0 && e.Right() <= width+1e-9 && e.Bottom() <= height+1e-9
}

// PositionedConnector is a line (or arrow) between two points, in inches.
type PositionedConnector struct {
	ID string

	// FromID and ToID name the elements this connector joins, used by
	// EnforceInvariants to check the endpoint-inset invariant and by
	// renderers that bind connectors to shapes. Both are required.
	FromID, ToID string

	StartX, StartY float64
	EndX, EndY     float64

	Style brief.ConnectorStyle
	Color string

	StrokeWidthPt float64

	Label *measure.MeasuredText
}

// Warning is a non-fatal, stage-attributed note travelling alongside a
// result, per §7.
type Warning struct {
	Code    string
	Message string
	Stage   string
}

// PositionedLayout is the render-ready geometry produced by a solver. It
// is the one-way contract both renderers consume; nothing downstream
// writes back into it.
type PositionedLayout struct {
	WidthIn, HeightIn float64
	Background        string

	Title    string
	Subtitle string

	Elements   []PositionedElement
	Connectors []PositionedConnector

	Warnings []Warning
}

// AddWarning appends a warning, used by solvers to record degraded
// placement (uniform scaling, truncated text) without failing.
func (l *PositionedLayout) AddWarning(stage, code, message string) {
	l.Warnings = append(l.Warnings, Warning{Code: code, Message: message, Stage: stage})
}

// Solver is a pure function mapping a Brief to a PositionedLayout, per
// §4.3. Implementations must be deterministic and must never return a
// nil layout; degraded results carry warnings instead.
type Solver func(b *brief.Brief, deps Deps) (*PositionedLayout, error)

// Deps bundles the shared services a solver needs from outside its own
// package: text measurement and the canvas's font-fallback family names.
// Kept as a struct (rather than positional args) so new shared services
// can be threaded through without changing every solver's signature.
type Deps struct {
	FontFamily string
}
