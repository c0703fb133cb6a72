// Package providers holds the gateway.Provider adapters for each
// upstream LLM SDK. This is the only package (besides pkg/gateway
// itself) permitted to import a provider's SDK, per §4.6's boundary.
package providers

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/infogen/core/pkg/gateway"
)

// Anthropic adapts the anthropic-sdk-go client to gateway.Provider.
type Anthropic struct {
	client anthropic.Client
}

// NewAnthropic builds an adapter from an API key.
func NewAnthropic(apiKey string) *Anthropic {
	return &Anthropic{client: anthropic.NewClient(option.WithAPIKey(apiKey))}
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) Complete(ctx context.Context, req gateway.CompletionRequest) (gateway.CompletionResult, error) {
	var system string
	var userBlocks []anthropic.ContentBlockParamUnion
	for _, m := range req.Messages {
		if m.Role == "system" {
			system = m.Content
			continue
		}
		userBlocks = append(userBlocks, anthropic.NewTextBlock(m.Content))
	}
	for _, img := range req.Images {
		userBlocks = append(userBlocks, anthropic.NewImageBlockBase64(img.MediaType, img.DataBase64))
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(userBlocks...),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return gateway.CompletionResult{}, classifyError(err)
	}

	var content string
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += text.Text
		}
	}
	if content == "" {
		return gateway.CompletionResult{}, &gateway.ProviderError{
			Kind: gateway.ErrMalformed, Err: errors.New("anthropic: response contained no text block"),
		}
	}

	return gateway.CompletionResult{
		Content:      content,
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
	}, nil
}

// classifyError maps an anthropic SDK error to the gateway's
// retry/abandon classification, per §4.4 step 3.
func classifyError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429:
			return &gateway.ProviderError{Kind: gateway.ErrTransient, Err: err}
		case 500, 502, 503, 529:
			return &gateway.ProviderError{Kind: gateway.ErrUnavailable, Err: err}
		}
	}
	return &gateway.ProviderError{Kind: gateway.ErrMalformed, Err: err}
}
