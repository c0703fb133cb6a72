package slide

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
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

func expectedParts() []string {
	return []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/slides/slide1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/theme/theme1.xml",
	}
}

func TestRenderNilLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(nil, &buf); err == nil {
		t.Error("expected an error for a nil layout, got nil")
	}
}

func TestRenderProducesValidZipWithRequiredParts(t *testing.T) {
	deps := layout.Deps{FontFamily: "Inter"}
	out, err := layout.Run(briefFor(brief.HubSpoke, 5), deps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var buf bytes.Buffer
	if err := Render(out, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a valid zip archive: %v", err)
	}

	present := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		present[f.Name] = true
	}
	for _, name := range expectedParts() {
		if !present[name] {
			t.Errorf("missing required part %q", name)
		}
	}
}

func TestSlidePartCarriesEveryElementAndConnector(t *testing.T) {
	deps := layout.Deps{FontFamily: "Inter"}
	out, err := layout.Run(briefFor(brief.HubSpoke, 4), deps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var buf bytes.Buffer
	if err := Render(out, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}

	var slideXML string
	for _, f := range zr.File {
		if f.Name == "ppt/slides/slide1.xml" {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open slide1.xml: %v", err)
			}
			data, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatalf("read slide1.xml: %v", err)
			}
			slideXML = string(data)
		}
	}
	if slideXML == "" {
		t.Fatal("ppt/slides/slide1.xml not found in archive")
	}

	for _, e := range out.Elements {
		if !strings.Contains(slideXML, fmt.Sprintf("name=%q", e.ID)) {
			t.Errorf("missing shape named %q", e.ID)
		}
	}
	for _, c := range out.Connectors {
		if !strings.Contains(slideXML, fmt.Sprintf("name=%q", c.ID)) {
			t.Errorf("missing connector shape named %q", c.ID)
		}
		if !strings.Contains(slideXML, `prst="line"`) {
			t.Error("expected at least one line-geometry connector")
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
			var buf bytes.Buffer
			if err := Render(out, &buf); err != nil {
				t.Fatalf("Render(%s): %v", a, err)
			}
			if buf.Len() == 0 {
				t.Errorf("Render(%s) produced no output", a)
			}
		})
	}
}
