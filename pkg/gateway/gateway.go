// Package gateway is the single point of contact with upstream LLM
// providers, per §4.4. It owns tier selection's downstream consequence
// (the fallback chain), response caching, cost accounting, and the
// provider-SDK boundary: nothing outside this package imports an
// upstream provider's SDK.
package gateway

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/infogen/core/pkg/apperr"
)

// retryBackoff is the exponential backoff schedule applied to a single
// model's rate-limited attempts, per §4.4 step 3.
var retryBackoff = []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}

// maxAttemptsPerModel bounds how many tries a single model gets before
// the chain moves on, per §4.4 step 3 ("up to 3 tries").
const maxAttemptsPerModel = 3

// CompleteOptions configures one call to Complete, mirroring §4.4's
// complete(system, user, tier, {...}) public operation.
type CompleteOptions struct {
	ResponseIsJSON bool
	Images         []ImageInput
	Temperature    float64
	MaxTokens      int
	SkipCache      bool

	// CallerID identifies the caller for the daily cost counter §4.4 step
	// 4 increments; empty disables cost accounting for this call.
	CallerID string
}

// LLMResponse is the public result of a successful Complete call.
type LLMResponse struct {
	Content      string
	Model        string
	Provider     string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	CacheHit     bool
	LatencyMS    int64
}

// CostTracker records the caller's daily cost, rolling 30-day retention,
// per §4.4 step 4. Implemented in pkg/metering; the gateway only depends
// on this narrow interface so it never imports the metering package's
// plan-enforcement concerns.
type CostTracker interface {
	RecordCost(ctx context.Context, callerID string, usd float64) error
}

// Gateway is the stateful façade Complete hangs off: cache, cost tracker,
// and logger are injected so tests can swap a MemoryCache and a no-op
// tracker in for the production Redis-backed ones.
type Gateway struct {
	Cache        Cache
	CostTracker  CostTracker // nil disables cost accounting
	Logger       *zap.Logger
	ChainsByTier map[Tier][]ModelRef // nil uses the package default Chains
}

// New returns a Gateway ready for production use: a Redis-free
// MemoryCache, no cost tracker, and a no-op logger. Callers replace these
// fields with the shared infrastructure before serving real traffic.
func New() *Gateway {
	return &Gateway{
		Cache:  NewMemoryCache(),
		Logger: zap.NewNop(),
	}
}

func (g *Gateway) chain(tier Tier) []ModelRef {
	if g.ChainsByTier != nil {
		if c, ok := g.ChainsByTier[tier]; ok {
			return c
		}
	}
	return Chains[tier]
}

// Complete implements §4.4's protocol: cache lookup, then iteration over
// the tier's fallback chain with per-model retry/backoff, cost
// accounting, and caching of the result.
func (g *Gateway) Complete(ctx context.Context, system, user string, tier Tier, opts CompleteOptions) (LLMResponse, error) {
	cacheable := !opts.SkipCache && len(opts.Images) == 0
	var cacheKey string
	if cacheable {
		cacheKey = CacheKey(tier, system, user)
		start := time.Now()
		if resp, hit, err := g.Cache.Get(ctx, cacheKey); err == nil && hit {
			resp.CacheHit = true
			resp.LatencyMS = time.Since(start).Milliseconds()
			resp.CostUSD = 0
			resp.InputTokens = 0
			resp.OutputTokens = 0
			return resp, nil
		}
	}

	req := CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Images:         opts.Images,
		ResponseIsJSON: opts.ResponseIsJSON,
		Temperature:    opts.Temperature,
		MaxTokens:      opts.MaxTokens,
	}

	var lastErr error
	for _, ref := range g.chain(tier) {
		if ctx.Err() != nil {
			return LLMResponse{}, apperr.New("gateway", apperr.Timeout, ctx.Err())
		}
		provider, ok := GetProvider(ref.Provider)
		if !ok {
			continue
		}
		req.Model = ref.Model

		result, err := g.attemptModel(ctx, provider, req)
		if err != nil {
			lastErr = multierr.Append(lastErr, err)
			g.Logger.Warn("gateway: model attempt failed",
				zap.String("provider", ref.Provider), zap.String("model", ref.Model), zap.Error(err))
			continue
		}

		resp := LLMResponse{
			Content:      result.Content,
			Model:        ref.Model,
			Provider:     ref.Provider,
			InputTokens:  result.InputTokens,
			OutputTokens: result.OutputTokens,
			CostUSD:      CostUSD(ref.Model, result.InputTokens, result.OutputTokens),
		}

		if cacheable {
			if err := g.Cache.Set(ctx, cacheKey, resp, DefaultCacheTTL); err != nil {
				g.Logger.Warn("gateway: cache write failed", zap.Error(err))
			}
		}
		if g.CostTracker != nil && opts.CallerID != "" {
			if err := g.CostTracker.RecordCost(ctx, opts.CallerID, resp.CostUSD); err != nil {
				g.Logger.Warn("gateway: cost tracking failed", zap.Error(err))
			}
		}

		return resp, nil
	}

	return LLMResponse{}, apperr.New("gateway", apperr.AllModelsFailed, lastErr)
}

// attemptModel runs the per-model retry loop: up to maxAttemptsPerModel
// tries with exponential backoff, but only on rate-limit responses.
// Service-unavailable and malformed/transport errors abandon the model
// on the first try, per §4.4 step 3.
func (g *Gateway) attemptModel(ctx context.Context, provider Provider, req CompletionRequest) (CompletionResult, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttemptsPerModel; attempt++ {
		result, err := provider.Complete(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var perr *ProviderError
		if !asProviderError(err, &perr) || perr.Kind != ErrTransient {
			return CompletionResult{}, lastErr
		}
		if attempt == maxAttemptsPerModel-1 {
			break
		}
		select {
		case <-ctx.Done():
			return CompletionResult{}, ctx.Err()
		case <-time.After(retryBackoff[attempt]):
		}
	}
	return CompletionResult{}, lastErr
}

func asProviderError(err error, target **ProviderError) bool {
	pe, ok := err.(*ProviderError)
	if ok {
		*target = pe
	}
	return ok
}
