package brief

import (
	"fmt"
	"regexp"

	"github.com/infogen/core/pkg/apperr"
)

var hexColorRE = regexp.MustCompile(`^[0-9a-f]{6}$`)

// IsValidHex reports whether s is a 6-character lowercase hex color
// without a leading "#", per §3's invariant.
func IsValidHex(s string) bool {
	return hexColorRE.MatchString(s)
}

// Validate enforces every invariant §3 places on a Brief: unique entity
// ids, connection endpoints and layer members that reference existing
// entities, a recognized archetype, and lowercase 6-hex theme colors.
// Entity count below 1 is also rejected here (§7, InputInvalid).
func (b *Brief) Validate() error {
	if !b.DiagramType.Valid() {
		return apperr.Newf("brief", apperr.InputInvalid, "unknown diagram-type %q", b.DiagramType)
	}
	if len(b.Entities) < 1 {
		return apperr.Newf("brief", apperr.InputInvalid, "brief must contain at least one entity")
	}

	seen := make(map[string]bool, len(b.Entities))
	for _, e := range b.Entities {
		if e.ID == "" {
			return apperr.Newf("brief", apperr.InputInvalid, "entity id must not be empty")
		}
		if seen[e.ID] {
			return apperr.Newf("brief", apperr.InputInvalid, "duplicate entity id %q", e.ID)
		}
		seen[e.ID] = true
		if !validEmphasis(e.Emphasis) {
			return apperr.Newf("brief", apperr.InputInvalid, "entity %q: invalid emphasis %q", e.ID, e.Emphasis)
		}
	}

	for _, l := range b.Layers {
		if !validLayerPosition(l.Position) {
			return apperr.Newf("brief", apperr.InputInvalid, "layer %q: invalid position %q", l.ID, l.Position)
		}
		for _, m := range l.Members {
			if !seen[m] {
				return apperr.Newf("brief", apperr.InputInvalid, "layer %q references unknown entity %q", l.ID, m)
			}
		}
	}

	for i, c := range b.Connections {
		if !seen[c.From] {
			return apperr.Newf("brief", apperr.InputInvalid, "connection %d: unknown source entity %q", i, c.From)
		}
		if !seen[c.To] {
			return apperr.Newf("brief", apperr.InputInvalid, "connection %d: unknown target entity %q", i, c.To)
		}
		if !validConnectorStyle(c.Style) {
			return apperr.Newf("brief", apperr.InputInvalid, "connection %d: invalid style %q", i, c.Style)
		}
	}

	if err := b.Theme.validate(); err != nil {
		return err
	}

	return nil
}

func (t *Theme) validate() error {
	for name, hex := range map[string]string{
		"primary": t.Primary, "secondary": t.Secondary, "accent": t.Accent,
		"background": t.Background, "text": t.Text,
	} {
		if !IsValidHex(hex) {
			return apperr.Newf("brief", apperr.InputInvalid, "theme.%s must be 6-char lowercase hex, got %q", name, hex)
		}
	}
	if t.CornerRadiusIn < 0 {
		return apperr.Newf("brief", apperr.InputInvalid, "theme.corner-radius must be >= 0, got %v", t.CornerRadiusIn)
	}
	if t.PaddingIn < 0 {
		return apperr.Newf("brief", apperr.InputInvalid, "theme.padding must be >= 0, got %v", t.PaddingIn)
	}
	return nil
}

func validEmphasis(e Emphasis) bool {
	switch e {
	case EmphasisNormal, EmphasisPrimary, EmphasisSecondary, EmphasisAccent:
		return true
	}
	return false
}

func validLayerPosition(p LayerPosition) bool {
	switch p {
	case LayerTop, LayerMiddle, LayerBottom, LayerCrossCutting:
		return true
	}
	return false
}

func validConnectorStyle(s ConnectorStyle) bool {
	switch s {
	case ConnectorArrow, ConnectorDashed, ConnectorBidirectional, ConnectorPlain:
		return true
	}
	return false
}

// EntityByID returns the entity with the given id, or false if none exists.
func (b *Brief) EntityByID(id string) (Entity, bool) {
	for _, e := range b.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// String implements fmt.Stringer for debug logging.
func (b *Brief) String() string {
	return fmt.Sprintf("Brief{type=%s entities=%d layers=%d connections=%d}",
		b.DiagramType, len(b.Entities), len(b.Layers), len(b.Connections))
}
