package providers

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/infogen/core/pkg/gateway"
)

// Gemini adapts google.golang.org/genai to gateway.Provider. It backs
// the FAST and VISION tier chains' default entries.
type Gemini struct {
	client *genai.Client
}

// NewGemini builds an adapter from an API key, using the Gemini
// Developer API backend rather than Vertex AI.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Complete(ctx context.Context, req gateway.CompletionRequest) (gateway.CompletionResult, error) {
	var parts []*genai.Part
	var config genai.GenerateContentConfig

	for _, m := range req.Messages {
		if m.Role == "system" {
			config.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
			continue
		}
		parts = append(parts, genai.NewPartFromText(m.Content))
	}
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes([]byte(img.DataBase64), img.MediaType))
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if req.MaxTokens > 0 {
		maxTokens := int32(req.MaxTokens)
		config.MaxOutputTokens = maxTokens
	}
	if req.ResponseIsJSON {
		config.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, &config)
	if err != nil {
		return gateway.CompletionResult{}, classifyGeminiError(err)
	}
	text := resp.Text()
	if text == "" {
		return gateway.CompletionResult{}, &gateway.ProviderError{
			Kind: gateway.ErrMalformed, Err: errors.New("gemini: response contained no text"),
		}
	}

	var inTok, outTok int
	if resp.UsageMetadata != nil {
		inTok = int(resp.UsageMetadata.PromptTokenCount)
		outTok = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return gateway.CompletionResult{Content: text, InputTokens: inTok, OutputTokens: outTok}, nil
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return &gateway.ProviderError{Kind: gateway.ErrTransient, Err: err}
		case 500, 503:
			return &gateway.ProviderError{Kind: gateway.ErrUnavailable, Err: err}
		}
	}
	return &gateway.ProviderError{Kind: gateway.ErrMalformed, Err: err}
}
