package gateway

import "context"

// Message is one turn of the conversation sent to a provider, per §4.4's
// complete(system, user, ...) operation.
type Message struct {
	Role    string // "system" or "user"
	Content string
}

// ImageInput is a base64-encoded image attached to a vision call.
type ImageInput struct {
	MediaType string
	DataBase64 string
}

// CompletionRequest is one attempt against a single provider-model, built
// by Complete from the caller's public request plus the model identifier
// being tried.
type CompletionRequest struct {
	Model          string
	Messages       []Message
	Images         []ImageInput
	ResponseIsJSON bool
	Temperature    float64
	MaxTokens      int
}

// CompletionResult is a successful provider response before cost/cache
// bookkeeping is applied.
type CompletionResult struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Provider adapts one upstream LLM API to the gateway's normalized
// request/response shape. Each adapter owns exactly one upstream SDK
// client, per §4.6's "no provider SDK is referenced directly" boundary:
// only pkg/gateway is allowed to import them.
type Provider interface {
	// Name identifies the provider in the registry and in logging. Cost
	// lookups are keyed by model, not by this name.
	Name() string

	// Complete sends one request and returns the raw result, or an error.
	// A *ProviderError carries the classification the fallback loop acts
	// on; any other error abandons the model on the first try.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)
}

// ProviderErrorKind is how Complete's fallback loop decides whether to
// retry the same model or abandon it for the next in the chain, per §4.4
// step 3. No kind ends the chain early; AllModelsFailed is returned only
// after every model has been tried.
type ProviderErrorKind int

const (
	// ErrTransient covers rate-limiting: retried on the same model with
	// exponential backoff before abandoning it.
	ErrTransient ProviderErrorKind = iota
	// ErrUnavailable covers service outages: the model is abandoned
	// immediately, no retry.
	ErrUnavailable
	// ErrMalformed covers transport failures and unparsable responses:
	// the model is abandoned immediately, no retry.
	ErrMalformed
)

// ProviderError wraps an upstream failure with the classification the
// fallback loop needs, without leaking the originating SDK's error type
// past pkg/gateway.
type ProviderError struct {
	Kind ProviderErrorKind
	Err  error
}

func (e *ProviderError) Error() string { return e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }
