// Package classifier picks the LLM gateway tier a generation request
// should run at, per §4.5. It is a pure function over the request's
// prompt, attachments, and any diagram-type hint the caller supplied
// (the raw prompt alone is never enough to pick a good tier up front).
package classifier

import (
	"strings"

	"github.com/infogen/core/pkg/gateway"
)

// lexicon is scanned case-folded against the prompt when no diagram-type
// hint resolves the tier outright, per §4.5 rule 4. Order does not
// matter; hits are counted, not weighted.
var lexicon = []string{
	"marketecture", "architecture", "ecosystem", "cross-cutting",
	"integration", "platform", "multi-layer", "hierarchy",
	"organizational", "value chain", "business units",
}

// fastHintedArchetypes get FAST unless the caller's entity-count hint
// exceeds entityCountFastCeiling, per §4.5 rule 2.
var fastHintedArchetypes = map[string]bool{
	"process-flow": true, "timeline": true, "comparison": true,
}

// premiumHintedArchetypes always get PREMIUM, per §4.5 rule 3.
var premiumHintedArchetypes = map[string]bool{
	"marketecture": true, "org-structure": true, "hub-spoke": true, "value-chain": true,
}

// entityCountFastCeiling is the entity-count-hint threshold above which a
// FAST-hinted archetype escalates to STANDARD, per §4.5 rule 2.
const entityCountFastCeiling = 8

// Request bundles the inputs the classifier's rules read. DiagramTypeHint
// and EntityCountHint are empty/zero when the caller supplied no hint;
// absence is meaningful, not an error.
type Request struct {
	Prompt          string
	HasImages       bool
	DiagramTypeHint string
	EntityCountHint int
}

// Classify applies §4.5's ordered rules and returns the tier the request
// should run at.
func Classify(req Request) gateway.Tier {
	if req.HasImages {
		return gateway.VISION
	}

	if fastHintedArchetypes[req.DiagramTypeHint] {
		if req.EntityCountHint > entityCountFastCeiling {
			return gateway.STANDARD
		}
		return gateway.FAST
	}

	if premiumHintedArchetypes[req.DiagramTypeHint] {
		return gateway.PREMIUM
	}

	hits := countLexiconHits(req.Prompt)
	switch {
	case hits >= 2:
		return gateway.PREMIUM
	case hits == 1:
		return gateway.STANDARD
	default:
		return gateway.FAST
	}
}

func countLexiconHits(prompt string) int {
	folded := strings.ToLower(prompt)
	hits := 0
	for _, term := range lexicon {
		if strings.Contains(folded, term) {
			hits++
		}
	}
	return hits
}
