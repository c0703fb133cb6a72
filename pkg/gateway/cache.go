package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/infogen/core/pkg/store"
)

// DefaultCacheTTL is the response cache's default lifetime, per §4.4 step 4.
const DefaultCacheTTL = time.Hour

// CacheKey derives the lookup key for a non-image, non-skip-cache call:
// SHA-256(tier ‖ system ‖ user), per §4.4 step 2.
func CacheKey(tier Tier, system, user string) string {
	h := sha256.New()
	h.Write([]byte(tier.String()))
	h.Write([]byte{0})
	h.Write([]byte(system))
	h.Write([]byte{0})
	h.Write([]byte(user))
	return hex.EncodeToString(h.Sum(nil))
}

// Cache stores completed LLMResponses keyed by CacheKey.
type Cache interface {
	Get(ctx context.Context, key string) (LLMResponse, bool, error)
	Set(ctx context.Context, key string, resp LLMResponse, ttl time.Duration) error
}

// storeCache adapts the shared pkg/store.Store capability (also used by
// pkg/metering's rate limiter and cost counters, per §4.8) into the
// gateway's narrower Cache interface.
type storeCache struct {
	backing store.Store
}

// NewMemoryCache returns a Cache backed by an in-process store.Memory,
// for tests and single-instance deployments without Redis configured.
func NewMemoryCache() Cache {
	return &storeCache{backing: store.NewMemory()}
}

// NewCache adapts any store.Store (e.g. a store.Redis shared with
// pkg/metering) into a gateway Cache.
func NewCache(backing store.Store) Cache {
	return &storeCache{backing: backing}
}

func cacheStoreKey(key string) string { return "llmcache:" + key }

func (c *storeCache) Get(ctx context.Context, key string) (LLMResponse, bool, error) {
	raw, ok, err := c.backing.Get(ctx, cacheStoreKey(key))
	if err != nil || !ok {
		return LLMResponse{}, false, err
	}
	var resp LLMResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return LLMResponse{}, false, err
	}
	return resp, true, nil
}

func (c *storeCache) Set(ctx context.Context, key string, resp LLMResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.backing.SetWithTTL(ctx, cacheStoreKey(key), raw, ttl)
}
