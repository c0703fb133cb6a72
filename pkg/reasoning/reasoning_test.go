package reasoning

import (
	"context"
	"strings"
	"testing"

	"github.com/infogen/core/pkg/apperr"
	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/classifier"
	"github.com/infogen/core/pkg/gateway"
)

// scriptedProvider returns content from a fixed list on successive calls,
// letting a test simulate an initial bad response followed by a repair.
type scriptedProvider struct {
	name     string
	contents []string
	calls    int
}

func (p *scriptedProvider) Name() string { return p.name }

func (p *scriptedProvider) Complete(ctx context.Context, req gateway.CompletionRequest) (gateway.CompletionResult, error) {
	idx := p.calls
	p.calls++
	if idx >= len(p.contents) {
		idx = len(p.contents) - 1
	}
	return gateway.CompletionResult{Content: p.contents[idx]}, nil
}

func testService(t *testing.T, providerName string, contents []string) *Service {
	t.Helper()
	p := &scriptedProvider{name: providerName, contents: contents}
	gateway.RegisterProvider(p)

	g := gateway.New()
	chain := []gateway.ModelRef{{Provider: providerName, Model: "test-model"}}
	g.ChainsByTier = map[gateway.Tier][]gateway.ModelRef{
		gateway.FAST: chain, gateway.STANDARD: chain, gateway.PREMIUM: chain, gateway.VISION: chain,
	}
	return New(g)
}

func testTheme() brief.Theme {
	return brief.Theme{
		Primary: "2255aa", Secondary: "44aa88", Accent: "cc6633",
		Background: "ffffff", Text: "1a1a1a",
		FontFamily: "Inter", CornerRadiusIn: 0.05, PaddingIn: 0.1,
	}
}

const validBriefJSON = `{
	"schema_version": 1,
	"diagram_type": "hub-spoke",
	"title": "T",
	"subtitle": "S",
	"entities": [
		{"id": "a", "label": "A", "emphasis": "primary"},
		{"id": "b", "label": "B", "emphasis": "normal"}
	],
	"theme": {
		"primary": "#2255AA", "secondary": "44aa88", "accent": "cc6633",
		"background": "ffffff", "text": "1a1a1a", "font_family": "Inter",
		"corner_radius_in": 0.05, "padding_in": 0.1
	}
}`

func TestGenerateHappyPath(t *testing.T) {
	svc := testService(t, "ok-provider", []string{validBriefJSON})

	res, err := svc.Generate(context.Background(), "caller1", Request{Prompt: "draw a hub and spoke diagram"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Brief.DiagramType != "hub-spoke" {
		t.Errorf("got diagram type %q", res.Brief.DiagramType)
	}
	if res.Brief.Theme.Primary != "2255aa" {
		t.Errorf("expected normalized lowercase hex, got %q", res.Brief.Theme.Primary)
	}
}

func TestGenerateDeduplicatesEntityIDs(t *testing.T) {
	dup := `{"schema_version":1,"diagram_type":"hub-spoke","title":"T","entities":[
		{"id":"a","label":"A","emphasis":"primary"},
		{"id":"a","label":"A2","emphasis":"normal"}
	],"theme":{"primary":"2255aa","secondary":"44aa88","accent":"cc6633","background":"ffffff","text":"1a1a1a"}}`

	svc := testService(t, "dup-provider", []string{dup})
	res, err := svc.Generate(context.Background(), "caller1", Request{Prompt: "x"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Brief.Entities[0].ID != "a" || res.Brief.Entities[1].ID != "a-2" {
		t.Errorf("expected deduped ids [a a-2], got [%s %s]", res.Brief.Entities[0].ID, res.Brief.Entities[1].ID)
	}
}

func TestGenerateRetriesOnceThenRejects(t *testing.T) {
	svc := testService(t, "bad-provider", []string{"not json", "still not json"})

	_, err := svc.Generate(context.Background(), "caller1", Request{Prompt: "x"})
	if apperr.KindOf(err) != apperr.BriefRejected {
		t.Fatalf("expected BriefRejected, got %v", err)
	}
}

func TestGenerateRepairsOnSecondAttempt(t *testing.T) {
	svc := testService(t, "repair-provider", []string{"not json", validBriefJSON})

	res, err := svc.Generate(context.Background(), "caller1", Request{Prompt: "x"})
	if err != nil {
		t.Fatalf("expected repair to succeed, got %v", err)
	}
	if res.Brief.DiagramType != "hub-spoke" {
		t.Errorf("got %q", res.Brief.DiagramType)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		prompt string
		want   string
	}{
		{"Build a marketecture of our business units", "en"},
		{"日本語でマーケティングの図を作成してください", "ja"},
		{"أنشئ رسماً تخطيطياً للأعمال", "ar"},
	}
	for _, c := range cases {
		if got := DetectLanguage(c.prompt); got != c.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", c.prompt, got, c.want)
		}
	}
}

func TestBuildUserMessageIncludesPaletteAndBrand(t *testing.T) {
	msg := buildUserMessage(Request{
		Prompt:      "a prompt",
		Palette:     []string{"112233", "445566"},
		BrandPreset: &BrandPreset{Name: "Acme", Theme: testTheme()},
	})
	if !strings.Contains(msg, "112233") || !strings.Contains(msg, "Acme") {
		t.Errorf("expected palette and brand name in message, got %q", msg)
	}
}

func TestClassifierChosenTierHasAWiredChain(t *testing.T) {
	// Sanity check that testService's chain-by-tier map covers whatever
	// tier the classifier actually picks for a vision-flagged request.
	tier := classifier.Classify(classifier.Request{HasImages: true})
	if tier != gateway.VISION {
		t.Fatalf("expected VISION for images, got %v", tier)
	}
}
