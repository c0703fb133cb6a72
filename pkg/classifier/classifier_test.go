package classifier

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/infogen/core/pkg/gateway"
)

func TestClassifyImagesAlwaysVision(t *testing.T) {
	got := Classify(Request{Prompt: "anything", HasImages: true, DiagramTypeHint: "marketecture"})
	if got != gateway.VISION {
		t.Errorf("expected VISION, got %s", got)
	}
}

func TestClassifyFastHintedArchetype(t *testing.T) {
	got := Classify(Request{Prompt: "a simple flow", DiagramTypeHint: "process-flow", EntityCountHint: 4})
	if got != gateway.FAST {
		t.Errorf("expected FAST, got %s", got)
	}
}

func TestClassifyFastHintedArchetypeEscalatesOnEntityCount(t *testing.T) {
	got := Classify(Request{Prompt: "a big flow", DiagramTypeHint: "timeline", EntityCountHint: 9})
	if got != gateway.STANDARD {
		t.Errorf("expected STANDARD, got %s", got)
	}
}

func TestClassifyFastHintedArchetypeAtCeilingStillFast(t *testing.T) {
	got := Classify(Request{Prompt: "exactly at ceiling", DiagramTypeHint: "comparison", EntityCountHint: entityCountFastCeiling})
	if got != gateway.FAST {
		t.Errorf("expected FAST at the ceiling boundary, got %s", got)
	}
}

func TestClassifyPremiumHintedArchetype(t *testing.T) {
	for _, a := range []string{"marketecture", "org-structure", "hub-spoke", "value-chain"} {
		got := Classify(Request{Prompt: "irrelevant text", DiagramTypeHint: a})
		if got != gateway.PREMIUM {
			t.Errorf("archetype %s: expected PREMIUM, got %s", a, got)
		}
	}
}

func TestClassifyLexiconScan(t *testing.T) {
	cases := []struct {
		prompt string
		want   gateway.Tier
	}{
		{"Show our marketing funnel", gateway.FAST},
		{"Describe the platform for our app", gateway.STANDARD},
		{"Explain our cross-cutting architecture and integration approach", gateway.PREMIUM},
	}
	for _, c := range cases {
		got := Classify(Request{Prompt: c.prompt})
		if got != c.want {
			t.Errorf("prompt %q: expected %s, got %s", c.prompt, c.want, got)
		}
	}
}

func TestClassifyLexiconCaseInsensitive(t *testing.T) {
	got := Classify(Request{Prompt: "Our ECOSYSTEM and ARCHITECTURE need a diagram"})
	if got != gateway.PREMIUM {
		t.Errorf("expected PREMIUM for case-folded lexicon hits, got %s", got)
	}
}

var archetypeHints = []string{
	"", "marketecture", "process-flow", "tech-stack", "comparison",
	"timeline", "org-structure", "value-chain", "hub-spoke",
}

func genRequest(t *rapid.T) Request {
	prompt := rapid.OneOf(
		rapid.StringMatching(`[A-Za-z ,.]{0,120}`),
		rapid.StringMatching(`[\p{Han}\p{Hiragana}\p{Katakana} ]{0,60}`),
		rapid.StringMatching(`[\p{Arabic}\p{Hebrew} ]{0,60}`),
	).Draw(t, "prompt")
	return Request{
		Prompt:          prompt,
		HasImages:       rapid.Bool().Draw(t, "hasImages"),
		DiagramTypeHint: rapid.SampledFrom(archetypeHints).Draw(t, "hint"),
		EntityCountHint: rapid.IntRange(0, 30).Draw(t, "entityCountHint"),
	}
}

// TestClassifyDeterministic checks §8's classifier-determinism property:
// Classify is a pure function of its Request, so calling it repeatedly on
// the same input (regardless of prompt length or script) always yields
// the same tier.
func TestClassifyDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		req := genRequest(t)
		first := Classify(req)
		for i := 0; i < 5; i++ {
			if got := Classify(req); got != first {
				t.Fatalf("Classify not deterministic: call 1 = %s, call %d = %s (req=%+v)", first, i+2, got, req)
			}
		}
	})
}

// TestClassifyAlwaysValidTier checks that Classify never returns a tier
// outside the closed gateway.Tier set, across arbitrary hint/prompt/image
// combinations.
func TestClassifyAlwaysValidTier(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		req := genRequest(t)
		got := Classify(req)
		switch got {
		case gateway.FAST, gateway.STANDARD, gateway.PREMIUM, gateway.VISION:
		default:
			t.Fatalf("Classify returned unexpected tier %q for req=%+v", got, req)
		}
		if req.HasImages && got != gateway.VISION {
			t.Fatalf("HasImages=true must always force VISION, got %s", got)
		}
	})
}
