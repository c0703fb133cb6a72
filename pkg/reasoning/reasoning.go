// Package reasoning builds the system/user messages for a Brief request,
// invokes the LLM Gateway, and validates and parses the returned JSON into
// a brief.Brief, per §4.6. It never imports a provider SDK: the gateway is
// the only thing it talks to.
package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/infogen/core/pkg/apperr"
	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/classifier"
	"github.com/infogen/core/pkg/gateway"
)

// BrandPreset is a caller's saved brand identity. The orchestrator's
// preprocessing step looks one up and, when present, merges it into the
// user message so entities inherit the caller's palette and font choice
// without the prompt having to restate them (SPEC_FULL §3).
type BrandPreset struct {
	Name      string
	Theme     brief.Theme
	LogoHash  string
	CreatedAt string // RFC 3339; kept as a string so this package stays time-source-free
}

// Request is everything the Reasoning Service needs to produce a Brief.
type Request struct {
	Prompt          string
	DiagramTypeHint string
	EntityCountHint int

	// Palette holds caller-supplied hex colors (with or without a leading
	// '#'); the first five, if any, are offered to the model as a hint.
	Palette []string

	BrandPreset *BrandPreset
	Images      []gateway.ImageInput

	// Language is a BCP-47 tag; when empty it is detected from Prompt.
	Language string
}

// Result bundles the validated Brief with the gateway call that produced
// it, so the orchestrator can fold cost/token/cache-hit data into its
// GenerationRecord without a second round trip.
type Result struct {
	Brief    *brief.Brief
	Response gateway.LLMResponse
	Tier     gateway.Tier
}

// maxAttempts is "one retry" per §4.6: the first parse/validate attempt
// plus a single repair attempt before BriefRejected.
const maxAttempts = 2

// Service is the Reasoning Service façade: one Gateway, reused across
// requests.
type Service struct {
	Gateway *gateway.Gateway
}

// New returns a Service backed by gw.
func New(gw *gateway.Gateway) *Service {
	return &Service{Gateway: gw}
}

// Generate builds the messages, classifies the tier, invokes the gateway,
// and returns a validated, normalized Brief.
func (s *Service) Generate(ctx context.Context, callerID string, req Request) (*Result, error) {
	language := req.Language
	if language == "" {
		language = DetectLanguage(req.Prompt)
	}

	tier := classifier.Classify(classifier.Request{
		Prompt:          req.Prompt,
		HasImages:       len(req.Images) > 0,
		DiagramTypeHint: req.DiagramTypeHint,
		EntityCountHint: req.EntityCountHint,
	})

	system := buildSystemMessage(language)
	user := buildUserMessage(req)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := s.Gateway.Complete(ctx, system, user, tier, gateway.CompleteOptions{
			ResponseIsJSON: true,
			Images:         req.Images,
			Temperature:    0.4,
			MaxTokens:      4096,
			CallerID:       callerID,
		})
		if err != nil {
			return nil, err
		}

		b, err := parseAndValidate(resp.Content)
		if err == nil {
			return &Result{Brief: b, Response: resp, Tier: tier}, nil
		}
		lastErr = err

		user = fmt.Sprintf("%s\n\nThe previous response failed validation: %v\nReturn corrected JSON only.", user, err)
	}

	return nil, apperr.New("reasoning", apperr.BriefRejected, lastErr)
}

// wireBrief mirrors brief.Brief's shape with JSON tags; the gateway's raw
// content is parsed into this before being converted and validated.
type wireBrief struct {
	SchemaVersion int            `json:"schema_version"`
	DiagramType   string         `json:"diagram_type"`
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle"`
	Entities      []wireEntity   `json:"entities"`
	Layers        []wireLayer    `json:"layers"`
	Connections   []wireConn     `json:"connections"`
	Theme         wireTheme      `json:"theme"`
	LayoutHint    string         `json:"layout_hint"`
}

type wireEntity struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Group       string `json:"group"`
	Emphasis    string `json:"emphasis"`
}

type wireLayer struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Position string   `json:"position"`
	Members  []string `json:"members"`
}

type wireConn struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
	Style string `json:"style"`
}

type wireTheme struct {
	Primary        string  `json:"primary"`
	Secondary      string  `json:"secondary"`
	Accent         string  `json:"accent"`
	Background     string  `json:"background"`
	Text           string  `json:"text"`
	FontFamily     string  `json:"font_family"`
	CornerRadiusIn float64 `json:"corner_radius_in"`
	PaddingIn      float64 `json:"padding_in"`
}

// parseAndValidate decodes content as JSON, maps it onto a brief.Brief
// with normalized colors and de-duplicated entity ids, then validates it.
func parseAndValidate(content string) (*brief.Brief, error) {
	var w wireBrief
	if err := json.Unmarshal([]byte(content), &w); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	b := &brief.Brief{
		SchemaVersion: brief.SchemaVersion,
		DiagramType:   brief.Archetype(w.DiagramType),
		Title:         w.Title,
		Subtitle:      w.Subtitle,
		LayoutHint:    w.LayoutHint,
		Theme: brief.Theme{
			Primary:        normalizeHex(w.Theme.Primary),
			Secondary:      normalizeHex(w.Theme.Secondary),
			Accent:         normalizeHex(w.Theme.Accent),
			Background:     normalizeHex(w.Theme.Background),
			Text:           normalizeHex(w.Theme.Text),
			FontFamily:     w.Theme.FontFamily,
			CornerRadiusIn: w.Theme.CornerRadiusIn,
			PaddingIn:      w.Theme.PaddingIn,
		},
	}

	ids := make(map[string]int, len(w.Entities))
	for _, e := range w.Entities {
		id := dedupeID(ids, e.ID)
		b.Entities = append(b.Entities, brief.Entity{
			ID: id, Label: e.Label, Description: e.Description,
			Group: e.Group, Emphasis: brief.Emphasis(e.Emphasis),
		})
	}
	for _, l := range w.Layers {
		b.Layers = append(b.Layers, brief.Layer{
			ID: l.ID, Label: l.Label, Position: brief.LayerPosition(l.Position), Members: l.Members,
		})
	}
	for _, c := range w.Connections {
		b.Connections = append(b.Connections, brief.Connection{
			From: c.From, To: c.To, Label: c.Label, Style: brief.ConnectorStyle(c.Style),
		})
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// normalizeHex lowercases and strips a leading '#', per §4.6.
func normalizeHex(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "#"))
}

// dedupeID returns id unchanged the first time it's seen; subsequent
// collisions are suffixed "-2", "-3", ... per §4.6.
func dedupeID(seen map[string]int, id string) string {
	seen[id]++
	if seen[id] == 1 {
		return id
	}
	return fmt.Sprintf("%s-%d", id, seen[id])
}
