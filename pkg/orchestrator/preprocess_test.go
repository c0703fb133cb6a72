package orchestrator

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/beevik/etree"
)

func TestNormalizePalette(t *testing.T) {
	got := normalizePalette([]string{"#FF0000", "00ff00", "not-a-color", "0000FF", ""})
	want := []string{"ff0000", "00ff00", "0000ff"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizePalette_CapsAtTen(t *testing.T) {
	raw := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		raw = append(raw, "ff0000")
	}
	got := normalizePalette(raw)
	if len(got) != maxPaletteColors {
		t.Fatalf("expected %d entries, got %d", maxPaletteColors, len(got))
	}
}

// solidHalvesPNG builds a small PNG split into a red left half and a blue
// right half, giving k-means two unambiguous, well-separated clusters.
func solidHalvesPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x < 10 {
				img.Set(x, y, color.RGBA{R: 200, G: 20, B: 20, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 20, G: 20, B: 200, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestExtractLogoPalette_TwoDominantColors(t *testing.T) {
	logo := solidHalvesPNG(t)

	palette, err := extractLogoPalette(logo)
	if err != nil {
		t.Fatalf("extractLogoPalette: %v", err)
	}
	if len(palette) == 0 {
		t.Fatal("expected at least one extracted color")
	}

	foundRed, foundBlue := false, false
	for _, hex := range palette {
		if hex == "c81414" {
			foundRed = true
		}
		if hex == "1414c8" {
			foundBlue = true
		}
	}
	if !foundRed || !foundBlue {
		t.Errorf("expected both the red and blue half to surface, got %v", palette)
	}
}

func TestExtractLogoPalette_DeterministicAcrossCalls(t *testing.T) {
	logo := solidHalvesPNG(t)

	first, err := extractLogoPalette(logo)
	if err != nil {
		t.Fatalf("extractLogoPalette (first): %v", err)
	}
	second, err := extractLogoPalette(logo)
	if err != nil {
		t.Fatalf("extractLogoPalette (second): %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("palette length varied across calls: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d varied across calls: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestExtractLogoPalette_RejectsUndecodableBytes(t *testing.T) {
	_, err := extractLogoPalette([]byte("not an image"))
	if err == nil {
		t.Fatal("expected an error for undecodable logo bytes")
	}
}

// themeXML builds a minimal ppt/theme/theme1.xml using the same
// prefixed-tag convention pkg/render/slide writes with, so the etree
// queries in extractTemplateTheme exercise real, representative markup.
func themeXML(t *testing.T) []byte {
	t.Helper()
	doc := etree.NewDocument()
	scheme := doc.CreateElement("a:clrScheme")
	scheme.CreateElement("a:dk2").CreateElement("a:srgbClr").CreateAttr("val", "1A2B3C")
	scheme.CreateElement("a:accent1").CreateElement("a:srgbClr").CreateAttr("val", "FF9900")
	scheme.CreateElement("a:lt1").CreateElement("a:srgbClr").CreateAttr("val", "FFFFFF")
	fontScheme := doc.CreateElement("a:fontScheme")
	fontScheme.CreateElement("a:majorFont").CreateElement("a:latin").CreateAttr("typeface", "Calibri")

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("writing theme doc: %v", err)
	}
	return buf.Bytes()
}

func zipWithTheme(t *testing.T, theme []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("ppt/theme/theme1.xml")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := w.Write(theme); err != nil {
		t.Fatalf("writing theme XML: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTemplateTheme_ReadsColorsAndFont(t *testing.T) {
	templateBytes := zipWithTheme(t, themeXML(t))

	snap, ok := extractTemplateTheme(templateBytes)
	if !ok {
		t.Fatal("expected a theme snapshot to be found")
	}
	if snap.Primary != "1a2b3c" {
		t.Errorf("Primary: got %q, want %q", snap.Primary, "1a2b3c")
	}
	if snap.Accent != "ff9900" {
		t.Errorf("Accent: got %q, want %q", snap.Accent, "ff9900")
	}
	if snap.Background != "ffffff" {
		t.Errorf("Background: got %q, want %q", snap.Background, "ffffff")
	}
	if snap.FontFamily != "Calibri" {
		t.Errorf("FontFamily: got %q, want %q", snap.FontFamily, "Calibri")
	}
}

func TestExtractTemplateTheme_NoThemePart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("ppt/slides/slide1.xml")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := w.Write([]byte("<p:sld/>")); err != nil {
		t.Fatalf("writing slide XML: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}

	_, ok := extractTemplateTheme(buf.Bytes())
	if ok {
		t.Fatal("expected no snapshot when the archive carries no theme part")
	}
}

func TestExtractTemplateTheme_NotAZip(t *testing.T) {
	_, ok := extractTemplateTheme([]byte("plainly not a zip archive"))
	if ok {
		t.Fatal("expected no snapshot for unparsable bytes")
	}
}
