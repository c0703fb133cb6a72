package brief

// Archetype is the closed set of diagram families a Brief may target.
type Archetype string

// The closed archetype set, per §4.3.
const (
	Marketecture  Archetype = "marketecture"
	ProcessFlow   Archetype = "process-flow"
	TechStack     Archetype = "tech-stack"
	Comparison    Archetype = "comparison"
	Timeline      Archetype = "timeline"
	OrgStructure  Archetype = "org-structure"
	ValueChain    Archetype = "value-chain"
	HubSpoke      Archetype = "hub-spoke"
)

// Archetypes lists every member of the closed set, in the order they
// appear in §4.3's table.
var Archetypes = []Archetype{
	Marketecture, ProcessFlow, TechStack, Comparison,
	Timeline, HubSpoke, OrgStructure, ValueChain,
}

// Valid reports whether a is one of the closed archetype set.
func (a Archetype) Valid() bool {
	for _, known := range Archetypes {
		if a == known {
			return true
		}
	}
	return false
}

// Emphasis is an entity's visual weight class, mapped to a theme role by
// the layout engine (§4.3).
type Emphasis string

const (
	EmphasisNormal    Emphasis = "normal"
	EmphasisPrimary   Emphasis = "primary"
	EmphasisSecondary Emphasis = "secondary"
	EmphasisAccent    Emphasis = "accent"
)

// LayerPosition places a cross-cutting or banded layer relative to the
// main entity row.
type LayerPosition string

const (
	LayerTop          LayerPosition = "top"
	LayerMiddle       LayerPosition = "middle"
	LayerBottom       LayerPosition = "bottom"
	LayerCrossCutting LayerPosition = "cross-cutting"
)

// ConnectorStyle controls how a Connection renders.
type ConnectorStyle string

const (
	ConnectorArrow         ConnectorStyle = "arrow"
	ConnectorDashed        ConnectorStyle = "dashed"
	ConnectorBidirectional ConnectorStyle = "bidirectional"
	ConnectorPlain         ConnectorStyle = "plain"
)

// SchemaVersion is the current wire version of Brief, per §6.
const SchemaVersion = 1

// Entity is one labeled node in a Brief.
type Entity struct {
	ID          string
	Label       string
	Description string // empty when absent
	Group       string // empty when absent
	Emphasis    Emphasis
}

// Layer groups entities into a cross-cutting or positioned band.
type Layer struct {
	ID       string
	Label    string
	Position LayerPosition
	Members  []string // entity ids
}

// Connection links two entities.
type Connection struct {
	From  string
	To    string
	Label string // empty when absent
	Style ConnectorStyle
}

// Theme is the Brief's color and typography palette. Hex fields are
// 6-character lowercase, without a leading "#", per §3's invariant and
// §4.6's normalization rule.
type Theme struct {
	Primary      string
	Secondary    string
	Accent       string
	Background   string
	Text         string
	FontFamily   string
	CornerRadiusIn float64
	PaddingIn    float64
}

// Brief is the structured plan the Reasoning Service produces and the
// layout solvers consume. It is immutable once validated.
type Brief struct {
	SchemaVersion int
	DiagramType   Archetype
	Title         string
	Subtitle      string
	Entities      []Entity
	Layers        []Layer
	Connections   []Connection
	Theme         Theme
	LayoutHint    string
}
