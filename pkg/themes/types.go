// Package themes persists and loads a caller's saved BrandPresets: named
// snapshots of a brief.Theme plus a logo hash, kept as one YAML file per
// preset under a caller's directory. Grounded on the teacher's theme-pack
// YAML loader (same gopkg.in/yaml.v3 library, same validate-on-load
// discipline), repurposed from dungeon theme packs to brand identity
// snapshots per SPEC_FULL §3/§4.6's BrandPreset.
package themes

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/reasoning"
)

// PresetFile is the on-disk YAML shape of a saved BrandPreset.
type PresetFile struct {
	Name       string `yaml:"name"`
	LogoHash   string `yaml:"logo_hash"`
	CreatedAt  string `yaml:"created_at"`
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary"`
	Accent     string `yaml:"accent"`
	Background string `yaml:"background"`
	Text       string `yaml:"text"`
	FontFamily string `yaml:"font_family"`
	CornerIn   float64 `yaml:"corner_radius_in"`
	PaddingIn  float64 `yaml:"padding_in"`
}

// ToBrandPreset converts the on-disk form into the reasoning package's
// request-time type.
func (f *PresetFile) ToBrandPreset() reasoning.BrandPreset {
	return reasoning.BrandPreset{
		Name:      f.Name,
		LogoHash:  f.LogoHash,
		CreatedAt: f.CreatedAt,
		Theme: brief.Theme{
			Primary: f.Primary, Secondary: f.Secondary, Accent: f.Accent,
			Background: f.Background, Text: f.Text, FontFamily: f.FontFamily,
			CornerRadiusIn: f.CornerIn, PaddingIn: f.PaddingIn,
		},
	}
}

// FromBrandPreset builds the on-disk form from a live BrandPreset,
// stamping CreatedAt if the caller left it empty.
func FromBrandPreset(p reasoning.BrandPreset) PresetFile {
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return PresetFile{
		Name: p.Name, LogoHash: p.LogoHash, CreatedAt: p.CreatedAt,
		Primary: p.Theme.Primary, Secondary: p.Theme.Secondary, Accent: p.Theme.Accent,
		Background: p.Theme.Background, Text: p.Theme.Text, FontFamily: p.Theme.FontFamily,
		CornerIn: p.Theme.CornerRadiusIn, PaddingIn: p.Theme.PaddingIn,
	}
}

// Validate checks the fields a persisted preset must carry.
func (f *PresetFile) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("themes: name is required")
	}
	if f.Primary == "" || f.Secondary == "" || f.Accent == "" {
		return fmt.Errorf("themes: primary, secondary, and accent colors are required")
	}
	return nil
}

// LoadPresetFile reads and validates a single preset YAML file.
func LoadPresetFile(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file: %w", err)
	}

	var f PresetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing preset YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// SavePresetFile writes f as YAML to path, creating parent directories as
// needed.
func SavePresetFile(path string, f PresetFile) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating preset directory: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding preset YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
