package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/infogen/core/pkg/gateway"
)

// OpenAI adapts the openai-go/v3 client to gateway.Provider.
type OpenAI struct {
	client openai.Client
}

// NewOpenAI builds an adapter from an API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, req gateway.CompletionRequest) (gateway.CompletionResult, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			if len(req.Images) == 0 {
				messages = append(messages, openai.UserMessage(m.Content))
				continue
			}
			parts := []openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(m.Content),
			}
			for _, img := range req.Images {
				dataURL := fmt.Sprintf("data:%s;base64,%s", img.MediaType, img.DataBase64)
				parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}))
			}
			messages = append(messages, openai.UserMessage(parts))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(req.Model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.ResponseIsJSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return gateway.CompletionResult{}, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return gateway.CompletionResult{}, &gateway.ProviderError{
			Kind: gateway.ErrMalformed, Err: errors.New("openai: response contained no choices"),
		}
	}

	return gateway.CompletionResult{
		Content:      resp.Choices[0].Message.Content,
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429:
			return &gateway.ProviderError{Kind: gateway.ErrTransient, Err: err}
		case 500, 502, 503:
			return &gateway.ProviderError{Kind: gateway.ErrUnavailable, Err: err}
		}
	}
	return &gateway.ProviderError{Kind: gateway.ErrMalformed, Err: err}
}
