package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/infogen/core/pkg/apperr"
)

// fakeProvider lets tests script a sequence of results/errors per call.
type fakeProvider struct {
	name  string
	calls int
	plan  []func() (CompletionResult, error)
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error) {
	idx := f.calls
	f.calls++
	if idx >= len(f.plan) {
		return CompletionResult{}, errors.New("fakeProvider: no more scripted calls")
	}
	return f.plan[idx]()
}

func testGateway(chain []ModelRef) *Gateway {
	g := New()
	g.ChainsByTier = map[Tier][]ModelRef{FAST: chain}
	return g
}

func TestCompleteCacheHit(t *testing.T) {
	// gpt-4o carries a real entry in CostPerMillionTokens so a cache hit
	// that forgot to zero cost/tokens would show it.
	ok := &fakeProvider{name: "ok", plan: []func() (CompletionResult, error){
		func() (CompletionResult, error) { return CompletionResult{Content: "hi", InputTokens: 100, OutputTokens: 100}, nil },
	}}
	RegisterProvider(ok)
	defer delete(registry, "ok")

	g := testGateway([]ModelRef{{Provider: "ok", Model: "gpt-4o"}})

	resp1, err := g.Complete(context.Background(), "sys", "user", FAST, CompleteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if resp1.CacheHit {
		t.Error("first call should not be a cache hit")
	}
	if resp1.CostUSD == 0 {
		t.Error("first call should carry the real, nonzero cost of a priced model")
	}

	resp2, err := g.Complete(context.Background(), "sys", "user", FAST, CompleteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !resp2.CacheHit {
		t.Error("second identical call should be a cache hit")
	}
	if ok.calls != 1 {
		t.Errorf("expected provider called once, got %d", ok.calls)
	}
	if resp2.CostUSD != 0 {
		t.Errorf("cache-hit response must carry cost = 0, got %v", resp2.CostUSD)
	}
	if resp2.InputTokens != 0 || resp2.OutputTokens != 0 {
		t.Errorf("cache-hit response must carry zero token counts, got in=%d out=%d", resp2.InputTokens, resp2.OutputTokens)
	}
}

func TestCompleteFallsBackOnUnavailable(t *testing.T) {
	failing := &fakeProvider{name: "failing", plan: []func() (CompletionResult, error){
		func() (CompletionResult, error) {
			return CompletionResult{}, &ProviderError{Kind: ErrUnavailable, Err: errors.New("503")}
		},
	}}
	backup := &fakeProvider{name: "backup", plan: []func() (CompletionResult, error){
		func() (CompletionResult, error) { return CompletionResult{Content: "from backup"}, nil },
	}}
	RegisterProvider(failing)
	RegisterProvider(backup)
	defer delete(registry, "failing")
	defer delete(registry, "backup")

	g := testGateway([]ModelRef{
		{Provider: "failing", Model: "m1"},
		{Provider: "backup", Model: "m2"},
	})

	resp, err := g.Complete(context.Background(), "sys", "user", FAST, CompleteOptions{SkipCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "from backup" {
		t.Errorf("expected fallback result, got %q", resp.Content)
	}
	if failing.calls != 1 {
		t.Errorf("unavailable model should be abandoned after one try, got %d calls", failing.calls)
	}
}

func TestCompleteRetriesOnRateLimit(t *testing.T) {
	attempts := 0
	limited := &fakeProvider{name: "limited", plan: []func() (CompletionResult, error){
		func() (CompletionResult, error) {
			attempts++
			return CompletionResult{}, &ProviderError{Kind: ErrTransient, Err: errors.New("429")}
		},
		func() (CompletionResult, error) {
			attempts++
			return CompletionResult{Content: "recovered"}, nil
		},
	}}
	RegisterProvider(limited)
	defer delete(registry, "limited")

	g := testGateway([]ModelRef{{Provider: "limited", Model: "m1"}})
	origBackoff := retryBackoff
	retryBackoff = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
	defer func() { retryBackoff = origBackoff }()

	resp, err := g.Complete(context.Background(), "sys", "user", FAST, CompleteOptions{SkipCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "recovered" {
		t.Errorf("expected recovery after retry, got %q", resp.Content)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestCompleteAllModelsFailedSurfacesKind(t *testing.T) {
	dead := &fakeProvider{name: "dead", plan: []func() (CompletionResult, error){
		func() (CompletionResult, error) {
			return CompletionResult{}, &ProviderError{Kind: ErrMalformed, Err: errors.New("bad json")}
		},
	}}
	RegisterProvider(dead)
	defer delete(registry, "dead")

	g := testGateway([]ModelRef{{Provider: "dead", Model: "m1"}})
	_, err := g.Complete(context.Background(), "sys", "user", FAST, CompleteOptions{SkipCache: true})
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperr.KindOf(err) != apperr.AllModelsFailed {
		t.Errorf("expected AllModelsFailed, got %v", err)
	}
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey(FAST, "sys", "user")
	b := CacheKey(FAST, "sys", "user")
	if a != b {
		t.Error("CacheKey must be deterministic")
	}
	c := CacheKey(STANDARD, "sys", "user")
	if a == c {
		t.Error("CacheKey must vary with tier")
	}
}

func TestCostUSD(t *testing.T) {
	cost := CostUSD("gpt-4o", 1_000_000, 1_000_000)
	want := 2.50 + 10.00
	if cost != want {
		t.Errorf("CostUSD: got %v want %v", cost, want)
	}
	if CostUSD("unknown-model", 1000, 1000) != 0 {
		t.Error("unknown model should cost 0")
	}
}
