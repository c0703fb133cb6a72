package themes

import (
	"path/filepath"
	"testing"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/reasoning"
)

func testPreset() reasoning.BrandPreset {
	return reasoning.BrandPreset{
		Name: "acme",
		Theme: brief.Theme{
			Primary: "2255aa", Secondary: "44aa88", Accent: "cc6633",
			Background: "ffffff", Text: "1a1a1a", FontFamily: "Inter",
		},
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)

	if err := l.Save("caller1", testPreset()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := l.Load("caller1", "acme")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Theme.Primary != "2255aa" {
		t.Errorf("got primary %q", got.Theme.Primary)
	}
}

func TestLoadReadsThroughCacheMissFromDisk(t *testing.T) {
	dir := t.TempDir()
	f := FromBrandPreset(testPreset())
	path := filepath.Join(dir, "caller2", "acme.yml")
	if err := SavePresetFile(path, f); err != nil {
		t.Fatalf("SavePresetFile: %v", err)
	}

	l := NewLoader(dir)
	got, err := l.Load("caller2", "acme")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "acme" {
		t.Errorf("got name %q", got.Name)
	}
}

func TestLoadRejectsPathTraversal(t *testing.T) {
	l := NewLoader(t.TempDir())
	if _, err := l.Load("../escape", "acme"); err == nil {
		t.Error("expected an error for a traversal-like caller id")
	}
	if _, err := l.Load("caller1", "../../etc/passwd"); err == nil {
		t.Error("expected an error for a traversal-like preset name")
	}
}

func TestValidateRejectsMissingColors(t *testing.T) {
	f := PresetFile{Name: "x"}
	if err := f.Validate(); err == nil {
		t.Error("expected an error for missing colors")
	}
}
