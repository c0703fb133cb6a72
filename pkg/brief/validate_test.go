package brief

import "testing"

func validTheme() Theme {
	return Theme{
		Primary: "0073e6", Secondary: "1a1a2e", Accent: "ff6b35",
		Background: "ffffff", Text: "1a1a1a", FontFamily: "Inter",
		CornerRadiusIn: 0.05, PaddingIn: 0.1,
	}
}

func TestBrief_Validate_OK(t *testing.T) {
	b := &Brief{
		SchemaVersion: SchemaVersion,
		DiagramType:   Marketecture,
		Entities: []Entity{
			{ID: "a", Label: "A", Emphasis: EmphasisPrimary},
			{ID: "b", Label: "B", Emphasis: EmphasisNormal},
		},
		Layers: []Layer{
			{ID: "l1", Label: "Layer", Position: LayerCrossCutting, Members: []string{"a"}},
		},
		Connections: []Connection{
			{From: "a", To: "b", Style: ConnectorArrow},
		},
		Theme: validTheme(),
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestBrief_Validate_DuplicateEntityID(t *testing.T) {
	b := &Brief{
		DiagramType: Marketecture,
		Entities: []Entity{
			{ID: "a", Label: "A", Emphasis: EmphasisNormal},
			{ID: "a", Label: "A2", Emphasis: EmphasisNormal},
		},
		Theme: validTheme(),
	}
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for duplicate entity id")
	}
}

func TestBrief_Validate_UnknownConnectionEndpoint(t *testing.T) {
	b := &Brief{
		DiagramType: Marketecture,
		Entities:    []Entity{{ID: "a", Label: "A", Emphasis: EmphasisNormal}},
		Connections: []Connection{{From: "a", To: "missing", Style: ConnectorArrow}},
		Theme:       validTheme(),
	}
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for unknown connection endpoint")
	}
}

func TestBrief_Validate_UnknownLayerMember(t *testing.T) {
	b := &Brief{
		DiagramType: Marketecture,
		Entities:    []Entity{{ID: "a", Label: "A", Emphasis: EmphasisNormal}},
		Layers:      []Layer{{ID: "l1", Position: LayerTop, Members: []string{"ghost"}}},
		Theme:       validTheme(),
	}
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for unknown layer member")
	}
}

func TestBrief_Validate_BadHexColor(t *testing.T) {
	theme := validTheme()
	theme.Primary = "#0073E6" // uppercase, leading #
	b := &Brief{
		DiagramType: Marketecture,
		Entities:    []Entity{{ID: "a", Label: "A", Emphasis: EmphasisNormal}},
		Theme:       theme,
	}
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for malformed hex color")
	}
}

func TestBrief_Validate_NoEntities(t *testing.T) {
	b := &Brief{DiagramType: Marketecture, Theme: validTheme()}
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for zero entities")
	}
}

func TestBrief_Validate_UnknownArchetype(t *testing.T) {
	b := &Brief{
		DiagramType: "not-a-real-archetype",
		Entities:    []Entity{{ID: "a", Label: "A", Emphasis: EmphasisNormal}},
		Theme:       validTheme(),
	}
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for unknown archetype")
	}
}
