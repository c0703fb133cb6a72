package reasoning

import (
	"fmt"
	"strings"
)

// archetypeCatalogue documents the closed archetype set for the system
// message, in the order §4.3's table lists them.
var archetypeCatalogue = []struct {
	name string
	desc string
}{
	{"marketecture", "business-unit blocks in a main row, optional cross-cutting bands above/below spanning the full width"},
	{"process-flow", "a left-to-right sequence of steps, wrapping into a U-turn second row past six steps"},
	{"tech-stack", "layers stacked bottom-up, infrastructure at the bottom, application at the top"},
	{"comparison", "a grid with subjects as columns and criteria as rows"},
	{"timeline", "entities placed along a horizontal axis in chronological order"},
	{"org-structure", "a tree with one row per level, connected parent to child"},
	{"value-chain", "a horizontal chain of overlapping chevrons"},
	{"hub-spoke", "one central entity with the rest arranged around it on a circle"},
}

// buildSystemMessage renders the fixed archetype catalogue, spatial/style
// rules, and the language instruction, per §4.6.
func buildSystemMessage(language string) string {
	var b strings.Builder
	b.WriteString("You are the reasoning stage of a diagram generator. Given a prompt, ")
	b.WriteString("produce a single JSON object describing a Brief: diagram_type, title, subtitle, ")
	b.WriteString("entities, optional layers, optional connections, and a theme.\n\n")

	b.WriteString("Choose diagram_type from exactly one of:\n")
	for _, a := range archetypeCatalogue {
		fmt.Fprintf(&b, "- %s: %s\n", a.name, a.desc)
	}

	b.WriteString("\nSpatial rules: entities are abstract nodes, not positions — placement is computed ")
	b.WriteString("downstream. Emphasis values are normal, primary, secondary, accent; use primary for ")
	b.WriteString("the single most important entity in hub-spoke and marketecture diagrams.\n")

	b.WriteString("\nStyle rules: communicate with shapes, text, and spatial relationships only. ")
	b.WriteString("Never describe or request stock imagery, icons, or photographs.\n")

	fmt.Fprintf(&b, "\nProduce all entity and label text in %s, matching the language of the prompt.\n", language)

	b.WriteString("\nRespond with JSON only, no surrounding prose.")
	return b.String()
}

// buildUserMessage renders the raw prompt plus any extracted palette and
// brand-preset snapshot, per §4.6.
func buildUserMessage(req Request) string {
	var b strings.Builder
	b.WriteString(req.Prompt)

	if len(req.Palette) > 0 {
		n := len(req.Palette)
		if n > 5 {
			n = 5
		}
		fmt.Fprintf(&b, "\n\nPreferred palette (use as theme colors where sensible): %s",
			strings.Join(req.Palette[:n], ", "))
	}

	if req.BrandPreset != nil {
		p := req.BrandPreset
		fmt.Fprintf(&b, "\n\nBrand preset %q: primary #%s, secondary #%s, accent #%s, font %s.",
			p.Name, p.Theme.Primary, p.Theme.Secondary, p.Theme.Accent, p.Theme.FontFamily)
	}

	if len(req.Images) > 0 {
		b.WriteString("\n\nAn image is attached; incorporate any legible structure it depicts.")
	}

	return b.String()
}
