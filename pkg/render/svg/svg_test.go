package svg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/layout"
)

func testTheme() brief.Theme {
	return brief.Theme{
		Primary: "2255aa", Secondary: "44aa88", Accent: "cc6633",
		Background: "ffffff", Text: "1a1a1a",
		FontFamily: "Inter", CornerRadiusIn: 0.05, PaddingIn: 0.1,
	}
}

func nEntities(n int) []brief.Entity {
	out := make([]brief.Entity, n)
	for i := range out {
		out[i] = brief.Entity{ID: fmt.Sprintf("e%d", i), Label: fmt.Sprintf("Entity %d", i), Emphasis: brief.EmphasisNormal}
	}
	return out
}

func briefFor(archetype brief.Archetype, n int) *brief.Brief {
	return &brief.Brief{
		SchemaVersion: brief.SchemaVersion,
		DiagramType:   archetype,
		Title:         "Test Diagram",
		Subtitle:      "a subtitle",
		Entities:      nEntities(n),
		Theme:         testTheme(),
	}
}

func TestRenderNilLayout(t *testing.T) {
	if _, err := Render(nil); err == nil {
		t.Error("expected an error for a nil layout, got nil")
	}
}

func TestRenderProducesWellFormedSVG(t *testing.T) {
	deps := layout.Deps{FontFamily: "Inter"}
	out, err := layout.Run(briefFor(brief.HubSpoke, 5), deps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := Render(out)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	doc := string(data)
	if !strings.Contains(doc, "<svg") || !strings.Contains(doc, "</svg>") {
		t.Fatal("output is not a wrapped <svg>...</svg> document")
	}
	if !strings.Contains(doc, "viewBox=") {
		t.Error("expected a viewBox attribute")
	}
	if !strings.Contains(doc, "<defs>") {
		t.Error("expected an arrowhead marker defs block")
	}

	for _, e := range out.Elements {
		idAttr := fmt.Sprintf("id=%q", e.ID)
		if !strings.Contains(doc, idAttr) {
			t.Errorf("missing %s for element %s", idAttr, e.ID)
		}
		kindAttr := fmt.Sprintf("data-kind=%q", string(e.Kind))
		if !strings.Contains(doc, kindAttr) {
			t.Errorf("missing %s for element %s", kindAttr, e.ID)
		}
	}
}

func TestRenderEveryArchetype(t *testing.T) {
	deps := layout.Deps{FontFamily: "Inter"}
	for _, a := range brief.Archetypes {
		a := a
		t.Run(string(a), func(t *testing.T) {
			out, err := layout.Run(briefFor(a, 6), deps)
			if err != nil {
				t.Fatalf("Run(%s): %v", a, err)
			}
			data, err := Render(out)
			if err != nil {
				t.Fatalf("Render(%s): %v", a, err)
			}
			if len(data) == 0 {
				t.Errorf("Render(%s) produced no output", a)
			}
		})
	}
}

func TestRenderTextNeverUsesPaths(t *testing.T) {
	deps := layout.Deps{FontFamily: "Inter"}
	out, err := layout.Run(briefFor(brief.ProcessFlow, 4), deps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := Render(out)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(data), "<text") {
		t.Error("expected at least one <text> node for the title/labels")
	}
	if n := strings.Count(string(data), "<path"); n != 1 {
		t.Errorf("expected the arrow marker to be the only <path>, got %d", n)
	}
}

func TestConnectorsCarryStableIDs(t *testing.T) {
	deps := layout.Deps{FontFamily: "Inter"}
	out, err := layout.Run(briefFor(brief.HubSpoke, 4), deps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Connectors) == 0 {
		t.Fatal("hub-spoke should have connectors")
	}
	data, err := Render(out)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := string(data)
	for _, c := range out.Connectors {
		idAttr := fmt.Sprintf("id=%q", c.ID)
		if !strings.Contains(doc, idAttr) {
			t.Errorf("missing %s for connector %s", idAttr, c.ID)
		}
	}
}
